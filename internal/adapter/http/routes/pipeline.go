package routes

import (
	"salespipeline/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathQuoteRequests = "/quote-requests"
	PathQuotes        = "/quotes"
	PathContracts     = "/contracts"
	PathAuditLog      = "/audit-log"
	PathWebhooks      = "/webhooks"
)

func addPipelineRoutes(rg *gin.RouterGroup, quoteRequestHandler *handlers.QuoteRequestHandler, quoteHandler *handlers.QuoteHandler, contractHandler *handlers.ContractHandler) {
	quoteRequests := rg.Group(PathQuoteRequests)
	{
		quoteRequests.POST("", quoteRequestHandler.CreateQuoteRequest)
		quoteRequests.GET("", quoteRequestHandler.ListQuoteRequests)
		quoteRequests.GET("/:id", quoteRequestHandler.GetQuoteRequest)
		quoteRequests.POST("/:id/assign", quoteRequestHandler.AssignQuoteRequest)
		quoteRequests.POST("/:id/review", quoteRequestHandler.StartReview)
		quoteRequests.POST("/:id/close", quoteRequestHandler.CloseQuoteRequest)
		quoteRequests.POST("/:id/deal-sync", quoteRequestHandler.SyncDeal)
		quoteRequests.POST("/:id/quotes", quoteRequestHandler.CreateQuote)
	}

	quotes := rg.Group(PathQuotes)
	{
		quotes.GET("", quoteHandler.ListQuotes)
		quotes.GET("/:id", quoteHandler.GetQuote)
		quotes.PATCH("/:id/pricing", quoteHandler.UpdatePricing)
		quotes.POST("/:id/send", quoteHandler.MarkSent)
		quotes.POST("/:id/deal-amount-sync", quoteHandler.SyncDealAmount)
		quotes.POST("/:id/contracts", quoteHandler.SendContract)
	}

	contracts := rg.Group(PathContracts)
	{
		contracts.GET("", contractHandler.ListContracts)
		contracts.POST("/reconcile", contractHandler.Reconcile)
		contracts.GET("/:id", contractHandler.GetContract)
	}
}

func addAuditRoutes(rg *gin.RouterGroup, auditHandler *handlers.AuditHandler) {
	rg.GET(PathAuditLog, auditHandler.ListAuditLog)
}

func addWebhookRoutes(rg *gin.RouterGroup, webhookHandler *handlers.WebhookHandler) {
	rg.POST("/crm", webhookHandler.HandleCRM)
	rg.POST("/esignature", webhookHandler.HandleESignature)
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", handlers.Ping)
}
