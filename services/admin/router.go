package main

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// routerDeps agrupa o que o roteador precisa montar
type routerDeps struct {
	auth         *AuthHandler
	catalog      *CatalogHandler
	transactions *TransactionHandler
	tokens       TokenParser
	uploadDir    string
	serviceName  string
	logger       *zap.Logger
}

func setupRouter(deps routerDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if deps.serviceName != "" {
		r.Use(otelgin.Middleware(deps.serviceName))
	}
	r.Use(RequestLogger(deps.logger))

	r.GET("/health", HealthCheck)
	if deps.uploadDir != "" {
		r.Static("/uploads", deps.uploadDir)
	}

	api := r.Group("/api")
	requireAuth := Authenticate(deps.tokens)

	authGroup := api.Group("/auth")
	authGroup.POST("/signin", deps.auth.SignIn)
	authGroup.POST("/initiate-admin-user", deps.auth.InitiateAdmin)

	banks := api.Group("/banks")
	banks.GET("", deps.catalog.ListBanks)
	banks.GET("/:id", deps.catalog.GetBank)
	banks.POST("", requireAuth, deps.catalog.CreateBank)
	banks.PUT("/:id", requireAuth, deps.catalog.UpdateBank)
	banks.DELETE("/:id", requireAuth, deps.catalog.DeleteBank)

	categories := api.Group("/categories")
	categories.GET("", deps.catalog.ListCategories)
	categories.GET("/:id", deps.catalog.GetCategory)
	categories.POST("", requireAuth, deps.catalog.CreateCategory)
	categories.PUT("/:id", requireAuth, deps.catalog.UpdateCategory)
	categories.DELETE("/:id", requireAuth, deps.catalog.DeleteCategory)

	products := api.Group("/products")
	products.GET("", deps.catalog.ListProducts)
	products.GET("/:id", deps.catalog.GetProduct)
	products.POST("", requireAuth, deps.catalog.CreateProduct)
	products.PUT("/:id", requireAuth, deps.catalog.UpdateProduct)
	products.DELETE("/:id", requireAuth, deps.catalog.DeleteProduct)

	transactions := api.Group("/transactions")
	transactions.POST("", deps.transactions.CreateTransaction)
	transactions.GET("", requireAuth, deps.transactions.ListTransactions)
	transactions.GET("/:id", requireAuth, deps.transactions.GetTransaction)
	transactions.PATCH("/:id", requireAuth, deps.transactions.UpdateTransactionStatus)

	return r
}
