// Package processordelivery exposes recurring processing to operators.
package processordelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/processor"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/web"
)

// ErrFutureAsOf indicates a processing day that has not started yet.
var ErrFutureAsOf = errors.New("as_of must not be after today")

// Service runs a tick under the processing lease.
//
//go:generate mockgen -source http.go -destination http_mock.go -package processordelivery
type Service interface {
	Run(ctx context.Context, asOf time.Time) (domain.TickReport, error)
}

// Handler facilitates processor delivery layer logic.
type Handler struct {
	service Service
	now     func() time.Time
}

// NewHandler returns processor handler.
func NewHandler(s Service) *Handler {
	return &Handler{service: s, now: time.Now}
}

type tickRequest struct {
	AsOf string `form:"as_of" binding:"omitempty,datetime=2006-01-02"`
}

// Tick handles http request to run recurring processing for a day.
func (h *Handler) Tick(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req tickRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})
			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	asOf := h.now()

	if req.AsOf != "" {
		var err error

		asOf, err = time.Parse(time.DateOnly, req.AsOf)
		if err != nil {
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		if asOf.After(domain.DateOf(h.now())) {
			l.Info().Err(ErrFutureAsOf).Str("as_of", req.AsOf).Send()
			gctx.JSON(http.StatusBadRequest, web.Error(ErrFutureAsOf))

			return
		}
	}

	report, err := h.service.Run(ctx, asOf)

	switch {
	case err == nil:
		gctx.JSON(http.StatusOK, web.Response{Data: report})
	case errors.Is(err, processor.ErrTickInProgress):
		gctx.JSON(http.StatusConflict, web.Error(processor.ErrTickInProgress))
	case errors.Is(err, processor.ErrFetchDue):
		gctx.JSON(http.StatusInternalServerError, web.Response{Error: processor.ErrFetchDue.Error(), Data: report})
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}
