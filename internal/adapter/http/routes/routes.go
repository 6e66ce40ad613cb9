package routes

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	_ "salespipeline/docs" // generated by swag init
	"salespipeline/internal/adapter/http/handlers"
	"salespipeline/internal/infrastructure/bootstrap"
	"salespipeline/internal/infrastructure/config"
	"salespipeline/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 10 * time.Second

// Run builds the dependencies from the environment and serves until ctx is
// cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	container, err := bootstrap.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to build dependencies: %w", err)
	}
	defer func() {
		if err := container.Close(); err != nil {
			log.Printf("[http] close dependencies err=%v", err)
		}
	}()
	return Serve(ctx, container)
}

// Serve blocks until the HTTP server stops. The contract sweep runs alongside
// it when CONTRACT_SWEEP_INTERVAL is set.
func Serve(ctx context.Context, c *bootstrap.Container) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go usecase.RunContractSweep(ctx, c.Reconcile, c.Config.ContractSweepInterval)

	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(c.Config.Port),
		Handler: NewRouter(c),
	}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("[http] listening port=%d", c.Config.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Printf("[http] shutting down")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()
		return srv.Shutdown(shutdownCtx)
	}
}

// NewRouter wires every handler on a fresh engine.
func NewRouter(c *bootstrap.Container) *gin.Engine {
	router := gin.New()
	setMiddlewares(router)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes(router, c)
	return router
}

func getRoutes(router *gin.Engine, c *bootstrap.Container) {
	quoteRequestHandler := handlers.NewQuoteRequestHandler(c.QuoteRequests, c.Quotes, c.DealSync)
	quoteHandler := handlers.NewQuoteHandler(c.Quotes, c.DealSync, c.EnvelopeSync)
	contractHandler := handlers.NewContractHandler(c.Contracts, c.Reconcile)
	auditHandler := handlers.NewAuditHandler(c.Audit)
	webhookHandler := handlers.NewWebhookHandler(c.Dispatcher, c.Audit, c.Config.CRM.WebhookSecret, c.Config.ESignature.WebhookSecret)

	// Provider callbacks
	addWebhookRoutes(router.Group(PathWebhooks), webhookHandler)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPipelineRoutes(v1, quoteRequestHandler, quoteHandler, contractHandler)
	addAuditRoutes(v1, auditHandler)
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
