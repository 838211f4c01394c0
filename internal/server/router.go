package server

import (
	"net/http"
	"time"

	"github.com/fekuna/omnipos-restaurant-service/internal/auth"
	categoryH "github.com/fekuna/omnipos-restaurant-service/internal/category/handler"
	inventoryH "github.com/fekuna/omnipos-restaurant-service/internal/inventory/handler"
	menuH "github.com/fekuna/omnipos-restaurant-service/internal/menu/handler"
	orderH "github.com/fekuna/omnipos-restaurant-service/internal/order/handler"
	paymentH "github.com/fekuna/omnipos-restaurant-service/internal/payment/handler"
	reportH "github.com/fekuna/omnipos-restaurant-service/internal/report/handler"
	tableH "github.com/fekuna/omnipos-restaurant-service/internal/table/handler"
	userH "github.com/fekuna/omnipos-restaurant-service/internal/user/handler"
	"github.com/fekuna/omnipos-restaurant-service/pkg/logger"
	"github.com/fekuna/omnipos-restaurant-service/pkg/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	User      *userH.UserHandler
	Table     *tableH.TableHandler
	Category  *categoryH.CategoryHandler
	Menu      *menuH.MenuHandler
	Order     *orderH.OrderHandler
	Payment   *paymentH.PaymentHandler
	Inventory *inventoryH.InventoryHandler
	Report    *reportH.ReportHandler
}

// NewRouter binds every route to the operation its caller must be allowed
// to perform. Only health, login and register are public.
func NewRouter(corsOrigins []string, guard *auth.Guard, h *Handlers, log logger.ZapLogger) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(log),
		middleware.Recovery(log),
		cors.New(cors.Config{
			AllowOrigins:     corsOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept-Language", middleware.RequestIDHeader},
			ExposeHeaders:    []string{"X-Total-Count", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	a := r.Group("/auth")
	a.POST("/login", h.User.Login)
	a.POST("/register", h.User.Register)

	users := r.Group("/users")
	users.GET("", guard.Require(auth.OpUserList), h.User.List)
	users.POST("", guard.Require(auth.OpUserCreate), h.User.Create)
	users.GET("/profile", guard.Require(auth.OpUserProfile), h.User.Profile)
	users.GET("/:id", guard.Require(auth.OpUserGet), h.User.Get)
	users.PATCH("/:id", guard.Require(auth.OpUserUpdate), h.User.Update)
	users.PATCH("/:id/deactivate", guard.Require(auth.OpUserDeactivate), h.User.Deactivate)
	users.DELETE("/:id", guard.Require(auth.OpUserDelete), h.User.Delete)

	tables := r.Group("/tables")
	tables.GET("", guard.Require(auth.OpTableRead), h.Table.List)
	tables.POST("", guard.Require(auth.OpTableCreate), h.Table.Create)
	tables.GET("/available", guard.Require(auth.OpTableRead), h.Table.ListAvailable)
	tables.GET("/:id", guard.Require(auth.OpTableRead), h.Table.Get)
	tables.PATCH("/:id", guard.Require(auth.OpTableUpdate), h.Table.Update)
	tables.DELETE("/:id", guard.Require(auth.OpTableDelete), h.Table.Delete)
	tables.POST("/:id/open", guard.Require(auth.OpTableOpen), h.Table.Open)
	tables.POST("/:id/close", guard.Require(auth.OpTableClose), h.Table.Close)
	tables.POST("/:id/reserve", guard.Require(auth.OpTableReserve), h.Table.Reserve)

	categories := r.Group("/menu/categories")
	categories.GET("", guard.Require(auth.OpMenuRead), h.Category.List)
	categories.POST("", guard.Require(auth.OpMenuWrite), h.Category.Create)
	categories.GET("/:id", guard.Require(auth.OpMenuRead), h.Category.Get)
	categories.PATCH("/:id", guard.Require(auth.OpMenuWrite), h.Category.Update)
	categories.DELETE("/:id", guard.Require(auth.OpMenuWrite), h.Category.Delete)

	items := r.Group("/menu/items")
	items.GET("", guard.Require(auth.OpMenuRead), h.Menu.List)
	items.POST("", guard.Require(auth.OpMenuWrite), h.Menu.Create)
	items.GET("/category/:categoryId", guard.Require(auth.OpMenuRead), h.Menu.ListByCategory)
	items.GET("/:id", guard.Require(auth.OpMenuRead), h.Menu.Get)
	items.PATCH("/:id", guard.Require(auth.OpMenuWrite), h.Menu.Update)
	items.DELETE("/:id", guard.Require(auth.OpMenuWrite), h.Menu.Delete)

	orders := r.Group("/orders")
	orders.GET("", guard.Require(auth.OpOrderRead), h.Order.List)
	orders.POST("", guard.Require(auth.OpOrderCreate), h.Order.Create)
	orders.GET("/status/:status", guard.Require(auth.OpOrderRead), h.Order.ListByStatus)
	orders.GET("/table/:tableId", guard.Require(auth.OpOrderRead), h.Order.ListByTable)
	orders.GET("/:id", guard.Require(auth.OpOrderRead), h.Order.Get)
	orders.GET("/:id/total", guard.Require(auth.OpOrderRead), h.Order.Total)
	orders.PATCH("/:id", guard.Require(auth.OpOrderUpdate), h.Order.Update)
	orders.PATCH("/:id/status/:status", guard.Require(auth.OpOrderUpdateStatus), h.Order.UpdateStatus)
	orders.DELETE("/:id", guard.Require(auth.OpOrderDelete), h.Order.Delete)

	payments := r.Group("/payments")
	payments.GET("", guard.Require(auth.OpPaymentRead), h.Payment.List)
	payments.POST("", guard.Require(auth.OpPaymentCreate), h.Payment.Create)
	payments.GET("/status/:status", guard.Require(auth.OpPaymentRead), h.Payment.ListByStatus)
	payments.GET("/order/:orderId", guard.Require(auth.OpPaymentRead), h.Payment.ListByOrder)
	payments.GET("/table/:tableId/bill", guard.Require(auth.OpTableBill), h.Payment.TableBill)
	payments.GET("/:id", guard.Require(auth.OpPaymentRead), h.Payment.Get)
	payments.PATCH("/:id", guard.Require(auth.OpPaymentUpdate), h.Payment.Update)
	payments.POST("/:id/process", guard.Require(auth.OpPaymentProcess), h.Payment.Process)
	payments.POST("/:id/refund", guard.Require(auth.OpPaymentRefund), h.Payment.Refund)
	payments.DELETE("/:id", guard.Require(auth.OpPaymentDelete), h.Payment.Delete)

	inventory := r.Group("/inventory")
	inventory.GET("", guard.Require(auth.OpInventoryRead), h.Inventory.List)
	inventory.POST("", guard.Require(auth.OpInventoryWrite), h.Inventory.Create)
	inventory.GET("/low-stock", guard.Require(auth.OpInventoryRead), h.Inventory.ListLowStock)
	inventory.POST("/ingredients", guard.Require(auth.OpInventoryWrite), h.Inventory.AddIngredient)
	inventory.GET("/ingredients/menu-item/:menuItemId", guard.Require(auth.OpInventoryRead), h.Inventory.ListIngredients)
	inventory.DELETE("/ingredients/:id", guard.Require(auth.OpInventoryWrite), h.Inventory.RemoveIngredient)
	inventory.GET("/:id", guard.Require(auth.OpInventoryRead), h.Inventory.Get)
	inventory.PATCH("/:id", guard.Require(auth.OpInventoryWrite), h.Inventory.Update)
	inventory.PATCH("/:id/stock/:quantity", guard.Require(auth.OpInventoryStock), h.Inventory.UpdateStock)
	inventory.DELETE("/:id", guard.Require(auth.OpInventoryWrite), h.Inventory.Delete)

	reports := r.Group("/reports")
	reports.GET("/sales", guard.Require(auth.OpReportRead), h.Report.ListSales)
	reports.POST("/sales/generate", guard.Require(auth.OpReportGenerate), h.Report.GenerateSales)
	reports.GET("/sales/:id", guard.Require(auth.OpReportRead), h.Report.GetSales)
	reports.GET("/performance", guard.Require(auth.OpReportRead), h.Report.ListPerformance)
	reports.POST("/performance/generate", guard.Require(auth.OpReportGenerate), h.Report.GeneratePerformance)
	reports.GET("/performance/:id", guard.Require(auth.OpReportRead), h.Report.GetPerformance)

	return r
}
