// Package mandatedelivery manages delivery layer of standing orders and direct debits.
package mandatedelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/web"
)

// Service provides service layer interface needed by mandate delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package mandatedelivery
type Service interface {
	Create(ctx context.Context, username string, arg domain.CreateMandateParams) (domain.Mandate, error)
	List(ctx context.Context, username string) ([]domain.Mandate, error)
	Delete(ctx context.Context, username string, id int64) error
}

// Handler facilitates mandate delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns mandate handler.
func NewHandler(ms Service) *Handler {
	return &Handler{
		service: ms,
	}
}

func badRequest(gctx *gin.Context, l *zerolog.Logger, err error) {
	l.Info().Err(err).Send()

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})
		return
	}

	gctx.JSON(http.StatusBadRequest, web.Error(err))
}

type createRequest struct {
	Recipient       string          `json:"recipient" binding:"required,alphanum"`
	ReferenceNumber string          `json:"reference_number" binding:"required,max=64"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType string          `json:"transaction_type" binding:"required,oneof=SO DD"`
	Frequency       string          `json:"frequency" binding:"required,frequency"`
	FirstDueDate    string          `json:"first_due_date" binding:"omitempty,datetime=2006-01-02"`
}

// Create handles http request to set up a mandate.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		badRequest(gctx, l, err)
		return
	}

	arg := domain.CreateMandateParams{
		Recipient:       req.Recipient,
		ReferenceNumber: req.ReferenceNumber,
		Amount:          req.Amount,
		TransactionType: domain.EntryType(req.TransactionType),
		Frequency:       domain.Frequency(req.Frequency),
	}

	if req.FirstDueDate != "" {
		// Validated by the binding tag.
		arg.FirstDueDate, _ = time.Parse(time.DateOnly, req.FirstDueDate)
	}

	authPayload := middleware.Payload(gctx)

	mandate, err := h.service.Create(ctx, authPayload.Username, arg)
	if err != nil {
		switch err {
		case domain.ErrInvalidAmount,
			domain.ErrInvalidFrequency,
			domain.ErrInvalidTransactionType,
			domain.ErrSelfTransfer:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrRecipientNotFound, domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: mandate})
}

// List handles http request to list the caller mandates.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	authPayload := middleware.Payload(gctx)

	mandates, err := h.service.List(ctx, authPayload.Username)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := web.Response{
		Data: struct {
			Mandates []domain.Mandate `json:"mandates"`
		}{
			Mandates: mandates,
		},
	}

	gctx.JSON(http.StatusOK, res)
}

type deleteRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// Delete handles http request to cancel a mandate.
func (h *Handler) Delete(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req deleteRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		badRequest(gctx, l, err)
		return
	}

	authPayload := middleware.Payload(gctx)

	if err := h.service.Delete(ctx, authPayload.Username, req.ID); err != nil {
		switch err {
		case domain.ErrAccountNotFound, domain.ErrMandateNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.Status(http.StatusNoContent)
}
