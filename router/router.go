package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/tablefactory/order-app/controllers"
	"github.com/tablefactory/order-app/middlewares"
	"github.com/tablefactory/order-app/models"
	"github.com/tablefactory/order-app/services"
)

func SetupRouter(db *gorm.DB, estimator *services.DeliveryEstimator, notifier *services.Notifier) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.PrometheusMiddleware())
	r.Use(middlewares.NewRateLimiter(100, 60).RateLimit())

	userCtrl := controllers.NewUserController(db)
	orderCtrl := controllers.NewOrderController(db, estimator, notifier)
	billCtrl := controllers.NewBillController(db)
	notificationCtrl := controllers.NewNotificationController(db)
	stockCtrl := controllers.NewStockController(db)
	adminCtrl := controllers.NewAdminController(db, estimator)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Rate limiter for login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// WebSocket event stream (token passed as query param)
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("/:role", controllers.EventStreamHandler)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())

	api.POST("/logout", userCtrl.Logout)
	api.GET("/profile", userCtrl.GetProfile)
	api.GET("/users", userCtrl.GetAllUsers)
	api.GET("/delivery-people",
		middlewares.RequireRoles(models.RoleSales),
		userCtrl.GetDeliveryPeople)

	// ORDERS
	api.POST("/orders",
		middlewares.RequireRoles(models.RoleSales, models.RoleCustomer),
		orderCtrl.CreateOrder)
	api.GET("/orders", orderCtrl.GetAllOrders) // listing is role scoped inside
	api.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	api.PATCH("/orders/:order_id",
		middlewares.RequireRoles(models.RoleSales),
		orderCtrl.UpdateOrder)
	api.DELETE("/orders/:order_id",
		middlewares.RequireRoles(models.RoleSales),
		orderCtrl.DeleteOrder)
	api.GET("/orders/:order_id/estimate", orderCtrl.GetDeliveryEstimate)
	api.POST("/orders/:order_id/assign",
		middlewares.RequireRoles(models.RoleSales),
		orderCtrl.AssignOrder)
	api.POST("/orders/:order_id/ready",
		middlewares.RequireRoles(models.RoleProduction),
		orderCtrl.MarkReady)
	api.POST("/orders/:order_id/complete",
		middlewares.RequireRoles(models.RoleDelivery),
		orderCtrl.CompleteOrder)

	// PRODUCTION
	api.GET("/production/queue",
		middlewares.RequireRoles(models.RoleProduction, models.RoleSales),
		orderCtrl.GetProductionQueue)

	// BILLS (sales/admin)
	bills := api.Group("/bills")
	bills.Use(middlewares.RequireRoles(models.RoleSales))
	{
		bills.POST("", billCtrl.CreateBill)
		bills.GET("", billCtrl.GetAllBills)
		bills.GET("/:bill_id", billCtrl.GetBillByID)
		bills.PATCH("/:bill_id", billCtrl.UpdateBill)
		bills.DELETE("/:bill_id", billCtrl.DeleteBill)
		bills.GET("/:bill_id/pdf", middlewares.BillLoggerMiddleware(), billCtrl.ExportBillPDF)
	}

	// NOTIFICATIONS
	api.GET("/notifications", notificationCtrl.GetNotifications)
	api.POST("/notifications", notificationCtrl.CreateNotification)
	api.POST("/notifications/:notification_id/read", notificationCtrl.MarkNotificationRead)
	api.DELETE("/notifications/:notification_id", notificationCtrl.DeleteNotification)

	// STOCK (production/admin)
	stock := api.Group("/stock")
	stock.Use(middlewares.RequireRoles(models.RoleProduction))
	{
		stock.GET("", stockCtrl.GetStock)
		stock.POST("", stockCtrl.CreateStockItem)
		stock.PATCH("/:stock_id/adjust", stockCtrl.AdjustStock)
		stock.DELETE("/:stock_id", stockCtrl.DeleteStockItem)
	}

	// ADMIN
	api.GET("/dashboard/stats", adminCtrl.GetDashboardStats)
	api.GET("/dashboard/analytics", adminCtrl.GetAnalytics)
	api.GET("/dashboard/orders-chart", adminCtrl.GetOrdersChart)

	return r
}
