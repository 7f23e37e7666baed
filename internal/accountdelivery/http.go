// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

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
	"github.com/go-petr/pet-ledger/pkg/tokenpkg"
	"github.com/go-petr/pet-ledger/pkg/web"
)

// ErrPartialRouting indicates that only one half of the routing pair was given.
var ErrPartialRouting = errors.New("sort_code and account_number must be given together")

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Open(ctx context.Context, password string, arg domain.OpenAccountParams) (domain.AccountWithBalance, error)
	CheckPassword(ctx context.Context, username, password string) (domain.Account, error)
	GetByUsername(ctx context.Context, username string) (domain.Account, error)
	Me(ctx context.Context, username string) (domain.AccountWithBalance, error)
}

// LedgerService provides the account statement.
type LedgerService interface {
	Statement(ctx context.Context, accountID, pageSize, pageID int32) ([]domain.Entry, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service       Service
	ledger        LedgerService
	tokenMaker    tokenpkg.Maker
	tokenDuration time.Duration
}

// NewHandler returns account handler.
func NewHandler(as Service, ls LedgerService, tm tokenpkg.Maker, tokenDuration time.Duration) *Handler {
	return &Handler{
		service:       as,
		ledger:        ls,
		tokenMaker:    tm,
		tokenDuration: tokenDuration,
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

type loginRequest struct {
	Username string `json:"username" binding:"required,alphanum"`
	Password string `json:"password" binding:"required,min=6"`
}

// Login handles http login request and returns an access token.
func (h *Handler) Login(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req loginRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		badRequest(gctx, l, err)
		return
	}

	account, err := h.service.CheckPassword(ctx, req.Username, req.Password)
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrWrongPassword:
			gctx.JSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	accessToken, payload, err := h.tokenMaker.CreateToken(account.Username, account.Role, h.tokenDuration)
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := web.Response{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: &payload.ExpiredAt,
		Data: struct {
			Account domain.Account `json:"account"`
		}{
			Account: account,
		},
	}

	gctx.JSON(http.StatusOK, res)
}

type openRequest struct {
	Username       string          `json:"username" binding:"required,alphanum"`
	Password       string          `json:"password" binding:"required,min=6"`
	FullName       string          `json:"full_name" binding:"required"`
	Email          string          `json:"email" binding:"required,email"`
	Role           string          `json:"role" binding:"omitempty,oneof=client admin"`
	SortCode       string          `json:"sort_code" binding:"omitempty,sortcode"`
	AccountNumber  string          `json:"account_number" binding:"omitempty,accountnumber"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// Open handles http request to open and seed an account.
func (h *Handler) Open(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req openRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		badRequest(gctx, l, err)
		return
	}

	if (req.SortCode == "") != (req.AccountNumber == "") {
		badRequest(gctx, l, ErrPartialRouting)
		return
	}

	arg := domain.OpenAccountParams{
		Username:       req.Username,
		FullName:       req.FullName,
		Email:          req.Email,
		Role:           req.Role,
		Routing:        domain.Routing{SortCode: req.SortCode, AccountNumber: req.AccountNumber},
		OpeningBalance: req.OpeningBalance,
	}

	account, err := h.service.Open(ctx, req.Password, arg)
	if err != nil {
		switch err {
		case domain.ErrInvalidOpeningBalance:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrUsernameAlreadyExists, domain.ErrEmailAlreadyExists, domain.ErrRoutingAlreadyExists:
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: account})
}

// Me handles http request to get the caller account with its balance.
func (h *Handler) Me(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	authPayload := middleware.Payload(gctx)

	account, err := h.service.Me(ctx, authPayload.Username)
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound, domain.ErrNoLedgerHistory:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: account})
}

type statementRequest struct {
	PageID   int32 `form:"page_id" binding:"required,min=1"`
	PageSize int32 `form:"page_size" binding:"required,min=1,max=100"`
}

// Statement handles http request to list the caller ledger entries.
func (h *Handler) Statement(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req statementRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		badRequest(gctx, l, err)
		return
	}

	authPayload := middleware.Payload(gctx)

	account, err := h.service.GetByUsername(ctx, authPayload.Username)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	entries, err := h.ledger.Statement(ctx, account.ID, req.PageSize, req.PageID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	res := web.Response{
		Data: struct {
			Entries []domain.Entry `json:"entries"`
		}{
			Entries: entries,
		},
	}

	gctx.JSON(http.StatusOK, res)
}
