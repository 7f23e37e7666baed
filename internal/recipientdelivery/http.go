// Package recipientdelivery manages delivery layer of the address book.
package recipientdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/internal/recipientservice"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/web"
)

// Service provides service layer interface needed by recipient delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package recipientdelivery
type Service interface {
	Create(ctx context.Context, username, name string, routing domain.Routing) (domain.Recipient, error)
	List(ctx context.Context, username string) ([]domain.Recipient, error)
	Delete(ctx context.Context, username string, id int64) error
}

// Handler facilitates recipient delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns recipient handler.
func NewHandler(rs Service) *Handler {
	return &Handler{
		service: rs,
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
	Name          string `json:"name" binding:"required,max=100"`
	SortCode      string `json:"sort_code" binding:"required,sortcode"`
	AccountNumber string `json:"account_number" binding:"required,accountnumber"`
}

// Create handles http request to add a payee to the address book.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		badRequest(gctx, l, err)
		return
	}

	authPayload := middleware.Payload(gctx)
	routing := domain.Routing{SortCode: req.SortCode, AccountNumber: req.AccountNumber}

	recipient, err := h.service.Create(ctx, authPayload.Username, req.Name, routing)
	if err != nil {
		switch err {
		case recipientservice.ErrInvalidRouting:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: recipient})
}

// List handles http request to list the address book.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	authPayload := middleware.Payload(gctx)

	recipients, err := h.service.List(ctx, authPayload.Username)
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
			Recipients []domain.Recipient `json:"recipients"`
		}{
			Recipients: recipients,
		},
	}

	gctx.JSON(http.StatusOK, res)
}

type deleteRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// Delete handles http request to remove a payee from the address book.
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
		case domain.ErrAccountNotFound, domain.ErrRecipientEntryNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.Status(http.StatusNoContent)
}
