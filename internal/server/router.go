// Package server assembles the HTTP surface of the portal.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "fundportal/internal/docs" // Import swagger docs
	"fundportal/internal/handlers"
	"fundportal/internal/middleware"
	"fundportal/internal/models"
	"fundportal/internal/services"
	"fundportal/internal/validator"
)

// Services bundles the services the router exposes.
type Services struct {
	Users           services.UserServicer
	Investors       services.InvestorServicer
	Dashboard       services.DashboardServicer
	Contributions   services.RecordServicer[models.CapitalContribution]
	Fees            services.RecordServicer[models.FeeCharge]
	Distributions   services.RecordServicer[models.Distribution]
	NAVs            services.RecordServicer[models.NAVStatement]
	CoInvestments   services.RecordServicer[models.CoInvestment]
	Drawdowns       services.DrawdownServicer
	Documents       services.DocumentServicer
	FundInvestments services.FundInvestmentServicer
	Updates         services.UpdateServicer
	Audit           services.AuditServicer
}

// Options configures NewRouter.
type Options struct {
	// OpsAPIKey guards /ops routes. Empty disables them.
	OpsAPIKey string
	// Fund is served on /portal/fund.
	Fund models.FundInformation
}

// NewRouter wires every handler onto a new gin engine.
func NewRouter(svc Services, opts Options) *gin.Engine {
	validator.Register()

	authHandler := handlers.NewAuthHandler(svc.Users, svc.Investors, svc.Audit)
	portalHandler := handlers.NewPortalHandler(handlers.PortalServices{
		Investors:       svc.Investors,
		Dashboard:       svc.Dashboard,
		Contributions:   svc.Contributions,
		Fees:            svc.Fees,
		Distributions:   svc.Distributions,
		NAVs:            svc.NAVs,
		CoInvestments:   svc.CoInvestments,
		Drawdowns:       svc.Drawdowns,
		Documents:       svc.Documents,
		FundInvestments: svc.FundInvestments,
		Updates:         svc.Updates,
	})
	investorHandler := handlers.NewInvestorHandler(svc.Investors, svc.Dashboard, svc.Audit)
	drawdownHandler := handlers.NewDrawdownHandler(svc.Drawdowns, svc.Audit)
	documentHandler := handlers.NewDocumentHandler(svc.Documents, svc.Audit)
	updateHandler := handlers.NewUpdateHandler(svc.Updates, svc.Audit)
	fundInvestmentHandler := handlers.NewFundInvestmentHandler(svc.FundInvestments, svc.Audit)
	fundHandler := handlers.NewFundHandler(opts.Fund)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	session := auth.Group("", middleware.AuthMiddleware())
	session.POST("/logout", authHandler.Logout)
	session.GET("/me", authHandler.Me)

	// Investor portal
	portal := v1.Group("/portal", middleware.AuthMiddleware())
	portal.GET("/summary", portalHandler.GetSummary)
	portal.GET("/contributions", portalHandler.GetContributions)
	portal.GET("/fees", portalHandler.GetFees)
	portal.GET("/distributions", portalHandler.GetDistributions)
	portal.GET("/nav", portalHandler.GetNAVStatements)
	portal.GET("/notices", portalHandler.GetNotices)
	portal.GET("/notices/pending", portalHandler.GetPendingNotices)
	portal.GET("/documents", portalHandler.GetDocuments)
	portal.GET("/documents/:id/view", portalHandler.ViewDocument)
	portal.GET("/documents/:id/download", portalHandler.DownloadDocument)
	portal.GET("/fund", fundHandler.GetFund)
	portal.GET("/fund-investments", portalHandler.GetFundInvestments)
	portal.GET("/co-investments", portalHandler.GetCoInvestments)
	portal.GET("/updates", portalHandler.GetUpdates)
	portal.GET("/statement", portalHandler.GetStatement)

	// Administration
	admin := v1.Group("/admin", middleware.AuthMiddleware(), middleware.RequireRole(models.RoleAdmin))
	admin.POST("/users", authHandler.CreateUser)

	investors := admin.Group("/investors")
	investors.POST("", investorHandler.CreateInvestor)
	investors.GET("", investorHandler.GetInvestors)
	investors.GET("/:id", investorHandler.GetInvestor)
	investors.PUT("/:id", investorHandler.UpdateInvestor)
	investors.DELETE("/:id", investorHandler.DeleteInvestor)
	investors.GET("/:id/summary", investorHandler.GetInvestorSummary)
	investors.GET("/:id/statement", investorHandler.GetInvestorStatement)

	investor := investors.Group("/:id")
	handlers.NewRecordHandler("contribution", svc.Contributions, svc.Audit).Register(investor, "/contributions")
	handlers.NewRecordHandler("fee", svc.Fees, svc.Audit).Register(investor, "/fees")
	handlers.NewRecordHandler("distribution", svc.Distributions, svc.Audit).Register(investor, "/distributions")
	handlers.NewRecordHandler("nav_statement", svc.NAVs, svc.Audit).Register(investor, "/nav")
	handlers.NewRecordHandler("co_investment", svc.CoInvestments, svc.Audit).Register(investor, "/co-investments")

	notices := investor.Group("/notices")
	notices.POST("", drawdownHandler.CreateNotice)
	notices.GET("", drawdownHandler.GetNotices)
	notices.GET("/:noticeId", drawdownHandler.GetNotice)
	notices.PUT("/:noticeId", drawdownHandler.UpdateNotice)
	notices.DELETE("/:noticeId", drawdownHandler.DeleteNotice)
	notices.POST("/:noticeId/send", drawdownHandler.SendNotice)
	notices.POST("/:noticeId/payments", drawdownHandler.RecordPayment)
	admin.POST("/notices/mark-overdue", drawdownHandler.MarkOverdue)

	documents := investor.Group("/documents")
	documents.POST("", documentHandler.UploadDocument)
	documents.GET("", documentHandler.GetDocuments)
	documents.GET("/:docId", documentHandler.GetDocument)
	documents.PUT("/:docId", documentHandler.UpdateDocument)
	documents.DELETE("/:docId", documentHandler.DeleteDocument)

	updates := investor.Group("/updates")
	updates.POST("", updateHandler.PostUpdate)
	updates.GET("", updateHandler.GetUpdates)
	updates.DELETE("/:updateId", updateHandler.DeleteUpdate)

	fundInvestments := admin.Group("/fund-investments")
	fundInvestments.POST("", fundInvestmentHandler.CreateFundInvestment)
	fundInvestments.GET("", fundInvestmentHandler.GetFundInvestments)
	fundInvestments.GET("/summary", fundInvestmentHandler.GetSummary)
	fundInvestments.GET("/:id", fundInvestmentHandler.GetFundInvestment)
	fundInvestments.PUT("/:id", fundInvestmentHandler.UpdateFundInvestment)
	fundInvestments.DELETE("/:id", fundInvestmentHandler.DeleteFundInvestment)

	// Scheduled jobs
	ops := router.Group("/ops", middleware.OpsAuthMiddleware(opts.OpsAPIKey))
	ops.POST("/mark-overdue", drawdownHandler.MarkOverdue)

	return router
}
