// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/accountdelivery"
	"github.com/go-petr/pet-ledger/internal/accountrepo"
	"github.com/go-petr/pet-ledger/internal/accountservice"
	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/ledgerrepo"
	"github.com/go-petr/pet-ledger/internal/ledgerservice"
	"github.com/go-petr/pet-ledger/internal/loandelivery"
	"github.com/go-petr/pet-ledger/internal/loanproduct"
	"github.com/go-petr/pet-ledger/internal/loanrepo"
	"github.com/go-petr/pet-ledger/internal/loanservice"
	"github.com/go-petr/pet-ledger/internal/mandatedelivery"
	"github.com/go-petr/pet-ledger/internal/mandaterepo"
	"github.com/go-petr/pet-ledger/internal/mandateservice"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/internal/processor"
	"github.com/go-petr/pet-ledger/internal/processordelivery"
	"github.com/go-petr/pet-ledger/internal/processorrepo"
	"github.com/go-petr/pet-ledger/internal/recipientdelivery"
	"github.com/go-petr/pet-ledger/internal/recipientrepo"
	"github.com/go-petr/pet-ledger/internal/recipientservice"
	"github.com/go-petr/pet-ledger/internal/transferdelivery"
	"github.com/go-petr/pet-ledger/internal/transferrepo"
	"github.com/go-petr/pet-ledger/internal/transferservice"
	"github.com/go-petr/pet-ledger/pkg/configpkg"
	"github.com/go-petr/pet-ledger/pkg/routingpkg"
	"github.com/go-petr/pet-ledger/pkg/tokenpkg"
)

// Server holds db connection, handlers router, the tick scheduler and configuration.
type Server struct {
	DB        *sql.DB
	Engine    *gin.Engine
	Scheduler *processor.Scheduler
	Config    configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
//
// The locker guards processing ticks, so instances sharing a database should share it too.
func New(conn *sql.DB, locker processor.Locker, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	catalog, err := loanproduct.Load(config.LoanProductsFile)
	if err != nil {
		return nil, errors.New("cannot load loan products")
	}

	tokenMaker, err := tokenpkg.NewMaker(config.TokenKind, config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	accountRepo := accountrepo.NewRepoPGS(conn)
	ledgerRepo := ledgerrepo.NewRepoPGS(conn)
	transferRepo := transferrepo.NewRepoPGS(conn)
	recipientRepo := recipientrepo.NewRepoPGS(conn)
	mandateRepo := mandaterepo.NewRepoPGS(conn)
	loanRepo := loanrepo.NewRepoPGS(conn)
	processorRepo := processorrepo.NewRepoPGS(conn)

	ledgerService := ledgerservice.New(ledgerRepo)
	accountService := accountservice.New(accountRepo, ledgerService)
	transferService := transferservice.New(transferRepo, accountService, ledgerService)
	recipientService := recipientservice.New(recipientRepo, accountService)
	mandateService := mandateservice.New(mandateRepo, accountService)
	loanService := loanservice.New(loanRepo, catalog, accountService, config.LenderAccountID)

	ticker := processor.New(processorRepo, accountService, config.LenderAccountID, config.ProcessorMaxCatchUp)
	scheduler := processor.NewScheduler(ticker, locker, logger, processor.SchedulerConfig{
		Schedule:   config.ProcessorSchedule,
		RunOnStart: config.ProcessorRunOnStart,
		LockTTL:    config.ProcessorLockTTL,
	})

	accountHandler := accountdelivery.NewHandler(accountService, ledgerService, tokenMaker, config.AccessTokenDuration)
	transferHandler := transferdelivery.NewHandler(transferService)
	recipientHandler := recipientdelivery.NewHandler(recipientService)
	mandateHandler := mandatedelivery.NewHandler(mandateService)
	loanHandler := loandelivery.NewHandler(loanService)
	processorHandler := processordelivery.NewHandler(scheduler)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validators := map[string]validator.Func{
			"sortcode":      routingpkg.ValidSortCode,
			"accountnumber": routingpkg.ValidAccountNumber,
			"frequency":     mandatedelivery.ValidFrequency,
		}

		for tag, fn := range validators {
			if err := v.RegisterValidation(tag, fn); err != nil {
				return nil, errors.New("cannot register " + tag + " validator")
			}
		}
	}

	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/accounts/login", accountHandler.Login)

	authRoutes := engine.Group("/", middleware.AuthMiddleware(tokenMaker))
	adminRoutes := authRoutes.Group("/", middleware.RequireRole(domain.RoleAdmin))

	adminRoutes.POST("/accounts", accountHandler.Open)
	authRoutes.GET("/accounts/me", accountHandler.Me)
	authRoutes.GET("/accounts/me/entries", accountHandler.Statement)

	authRoutes.POST("/transfers", transferHandler.Create)

	authRoutes.POST("/recipients", recipientHandler.Create)
	authRoutes.GET("/recipients", recipientHandler.List)
	authRoutes.DELETE("/recipients/:id", recipientHandler.Delete)

	authRoutes.POST("/mandates", mandateHandler.Create)
	authRoutes.GET("/mandates", mandateHandler.List)
	authRoutes.DELETE("/mandates/:id", mandateHandler.Delete)

	authRoutes.GET("/loans/products", loanHandler.Products)
	authRoutes.POST("/loans", loanHandler.Apply)
	authRoutes.GET("/loans", loanHandler.List)

	adminRoutes.POST("/admin/ticks", processorHandler.Tick)

	server := &Server{
		DB:        conn,
		Engine:    engine,
		Scheduler: scheduler,
		Config:    config,
	}

	return server, nil
}
