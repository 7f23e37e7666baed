// Package transferdelivery manages delivery layer of transfers.
package transferdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/web"
)

var (
	// ErrMissingRecipient indicates that neither a recipient id nor a routing pair was given.
	ErrMissingRecipient = errors.New("to_account_id or sort_code and account_number are required")
	// ErrMissingSender indicates an id addressed transfer without the sender id.
	ErrMissingSender = errors.New("from_account_id is required with to_account_id")
)

// Service provides service layer interface needed by transfer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transferdelivery
type Service interface {
	Transfer(ctx context.Context, fromUsername string, arg domain.CreateTransferParams) (domain.TransferResult, error)
	TransferToRouting(ctx context.Context, fromUsername string, arg domain.RoutingTransferParams) (domain.TransferResult, error)
}

// Handler facilitates transfer delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transfer handler.
func NewHandler(ts Service) *Handler {
	return &Handler{
		service: ts,
	}
}

type request struct {
	FromAccountID int32           `json:"from_account_id" binding:"omitempty,min=1"`
	ToAccountID   int32           `json:"to_account_id" binding:"omitempty,min=1"`
	SortCode      string          `json:"sort_code" binding:"omitempty,sortcode"`
	AccountNumber string          `json:"account_number" binding:"omitempty,accountnumber"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description" binding:"max=140"`
}

type data struct {
	Transfer domain.TransferResult `json:"transfer"`
}

type response struct {
	Data data `json:"data,omitempty"`
}

// Create handles http request to create a transfer between two accounts.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req request
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})
			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := middleware.Payload(gctx)

	var (
		result domain.TransferResult
		err    error
	)

	switch {
	case req.ToAccountID != 0:
		if req.FromAccountID == 0 {
			gctx.JSON(http.StatusBadRequest, web.Error(ErrMissingSender))
			return
		}

		result, err = h.service.Transfer(ctx, authPayload.Username, domain.CreateTransferParams{
			FromAccountID: req.FromAccountID,
			ToAccountID:   req.ToAccountID,
			Amount:        req.Amount,
			Description:   req.Description,
		})
	case req.SortCode != "" && req.AccountNumber != "":
		result, err = h.service.TransferToRouting(ctx, authPayload.Username, domain.RoutingTransferParams{
			FromAccountID: req.FromAccountID,
			To:            domain.Routing{SortCode: req.SortCode, AccountNumber: req.AccountNumber},
			Amount:        req.Amount,
			Description:   req.Description,
		})
	default:
		gctx.JSON(http.StatusBadRequest, web.Error(ErrMissingRecipient))
		return
	}

	if err != nil {
		l.Info().Err(err).Send()

		switch err {
		case domain.ErrInvalidOwner:
			gctx.JSON(http.StatusUnauthorized, web.Error(err))
			return
		case domain.ErrInvalidAmount,
			domain.ErrInsufficientBalance,
			domain.ErrSelfTransfer:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrRecipientNotFound,
			domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrNoLedgerHistory:
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		case domain.ErrTransferFailed:
			gctx.JSON(http.StatusInternalServerError, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{result}})
}
