package routes

import (
	"github.com/gin-gonic/gin"
	coreport "github.com/kiarash-moradi/mlm-dashboard/internal/domain/port/core"
	"github.com/kiarash-moradi/mlm-dashboard/internal/infrastructure/adapter/api/handler"
	"github.com/kiarash-moradi/mlm-dashboard/internal/infrastructure/adapter/api/middleware"
	"github.com/kiarash-moradi/mlm-dashboard/internal/infrastructure/adapter/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	treeHandler *handler.TreeHandler,
	commissionHandler *handler.CommissionHandler,
	walletHandler *handler.WalletHandler,
	storeHandler *handler.StoreHandler,
) {
	treeRoutes := router.Group("/tree")
	{
		treeRoutes.GET("/:userId/binary", treeHandler.GetBinaryTree)
		treeRoutes.GET("/:userId/sponsor", treeHandler.GetSponsorTree)
	}

	commissionRoutes := router.Group("/commission")
	{
		commissionRoutes.GET("/:userId/earnings", commissionHandler.GetEarnings)
		commissionRoutes.GET("/:userId/ancestors", commissionHandler.GetAncestorBonuses)
		commissionRoutes.GET("/:userId/indirects", commissionHandler.GetIndirectBonuses)
		commissionRoutes.GET("/:userId/affiliate-sales", commissionHandler.GetAffiliateSales)
	}

	router.GET("/commission-rates/:packageId", commissionHandler.GetPackageRate)

	walletRoutes := router.Group("/wallet")
	{
		walletRoutes.GET("/:userId/balance", walletHandler.GetBalance)
		walletRoutes.GET("/:userId/statement", walletHandler.GetStatement)
		walletRoutes.POST("/:userId/topup", walletHandler.Topup)
		walletRoutes.POST("/:userId/withdraw", walletHandler.Withdraw)
	}

	storeRoutes := router.Group("/store")
	{
		storeRoutes.POST("/:userId/checkout", storeHandler.Checkout)
		storeRoutes.POST("/:userId/orders", storeHandler.PlaceOrder)
		storeRoutes.POST("/:userId/orders/complete", storeHandler.CompleteOrders)
		storeRoutes.POST("/:userId/orders/:orderId/cancel", storeHandler.CancelOrder)
		storeRoutes.POST("/:userId/packages/:packageId/purchase", storeHandler.PurchasePackage)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, m *metrics.Metrics) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics(m))
	router.Use(middleware.CORS())
}
