// Package loandelivery manages delivery layer of loans.
package loandelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/web"
)

// Service provides service layer interface needed by loan delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package loandelivery
type Service interface {
	Products() []domain.LoanProduct
	Apply(ctx context.Context, username, productID string) (domain.LoanGrant, error)
	List(ctx context.Context, username string) ([]domain.Loan, error)
}

// Handler facilitates loan delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns loan handler.
func NewHandler(ls Service) *Handler {
	return &Handler{
		service: ls,
	}
}

// Products handles http request to list the loan offers.
func (h *Handler) Products(gctx *gin.Context) {
	res := web.Response{
		Data: struct {
			Products []domain.LoanProduct `json:"products"`
		}{
			Products: h.service.Products(),
		},
	}

	gctx.JSON(http.StatusOK, res)
}

type applyRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// Apply handles http request to take a loan.
func (h *Handler) Apply(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req applyRequest
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

	grant, err := h.service.Apply(ctx, authPayload.Username, req.ProductID)
	if err != nil {
		l.Info().Err(err).Send()

		switch err {
		case domain.ErrLoanProductNotFound, domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrLoanInProgress:
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		case domain.ErrSelfTransfer, domain.ErrInsufficientBalance, domain.ErrNoLedgerHistory:
			gctx.JSON(http.StatusUnprocessableEntity, web.Error(err))
			return
		case domain.ErrTransferFailed:
			gctx.JSON(http.StatusInternalServerError, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: grant})
}

// List handles http request to list the caller loans.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	authPayload := middleware.Payload(gctx)

	loans, err := h.service.List(ctx, authPayload.Username)
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
			Loans []domain.Loan `json:"loans"`
		}{
			Loans: loans,
		},
	}

	gctx.JSON(http.StatusOK, res)
}
