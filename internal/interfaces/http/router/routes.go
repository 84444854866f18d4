package router

import (
	"github.com/gin-gonic/gin"
	"github.com/restopos/backend/internal/domain/identity"
	"github.com/restopos/backend/internal/interfaces/http/handler"
	"github.com/restopos/backend/internal/interfaces/http/middleware"
)

// Handlers holds every HTTP handler the API exposes
type Handlers struct {
	Health        *handler.HealthHandler
	Auth          *handler.AuthHandler
	User          *handler.UserHandler
	Settings      *handler.SettingsHandler
	Category      *handler.CategoryHandler
	Product       *handler.ProductHandler
	Floor         *handler.FloorHandler
	Sale          *handler.SaleHandler
	Kitchen       *handler.KitchenHandler
	KitchenStream *handler.KitchenStreamHandler
	Inventory     *handler.InventoryHandler
	Period        *handler.PeriodHandler
	Payroll       *handler.PayrollHandler
	Investment    *handler.InvestmentHandler
	Report        *handler.ReportHandler
}

// APIConfig configures authentication for the API routes
type APIConfig struct {
	// Auth authenticates every protected route
	Auth gin.HandlerFunc
	// LoginLimit, when set, guards POST /auth/login
	LoginLimit gin.HandlerFunc
}

// NewAPI builds the /api/v1 route table. Admin passes every role guard.
func NewAPI(engine *gin.Engine, h Handlers, cfg APIConfig) *Router {
	var (
		admin   = middleware.RequireAdmin()
		cashier = middleware.RequireRoles(identity.RoleCashier)
		floor   = middleware.RequireRoles(identity.RoleCashier, identity.RoleWaiter)
		kitchen = middleware.RequireRoles(identity.RoleKitchen, identity.RoleWaiter, identity.RoleCashier)
	)

	r := NewRouter(engine, WithAPIVersion("v1"))
	if cfg.Auth != nil {
		r.Use(cfg.Auth)
	}

	health := NewDomainGroup("health", "/health")
	health.GET("", h.Health.Health)
	health.GET("/ready", h.Health.Ready)

	login := []gin.HandlerFunc{h.Auth.Login}
	if cfg.LoginLimit != nil {
		login = append([]gin.HandlerFunc{cfg.LoginLimit}, login...)
	}
	publicAuth := NewDomainGroup("auth", "/auth")
	publicAuth.POST("/login", login...)
	publicAuth.POST("/refresh", h.Auth.Refresh)

	r.RegisterPublic(health).RegisterPublic(publicAuth)

	authRoutes := NewDomainGroup("auth", "/auth")
	authRoutes.POST("/logout", h.Auth.Logout)
	authRoutes.GET("/me", h.Auth.Me)
	authRoutes.PUT("/password", h.Auth.ChangePassword)

	users := NewDomainGroup("users", "/users").Use(admin)
	users.GET("", h.User.List)
	users.POST("", h.User.Create)
	users.GET("/:id", h.User.GetByID)
	users.PUT("/:id", h.User.Update)
	users.PUT("/:id/password", h.User.SetPassword)
	users.POST("/:id/activate", h.User.Activate)
	users.POST("/:id/deactivate", h.User.Deactivate)

	settings := NewDomainGroup("config", "/config")
	settings.GET("", h.Settings.List)
	settings.GET("/:key", h.Settings.Get)
	settings.PUT("", admin, h.Settings.Update)

	categories := NewDomainGroup("categories", "/categories")
	categories.GET("", h.Category.List)
	categories.GET("/:id", h.Category.GetByID)
	categories.POST("", admin, h.Category.Create)
	categories.PUT("/:id", admin, h.Category.Update)
	categories.DELETE("/:id", admin, h.Category.Delete)

	products := NewDomainGroup("products", "/products")
	products.GET("", h.Product.List)
	products.GET("/:id", h.Product.GetByID)
	products.GET("/:id/image/url", h.Product.ImageURL)
	products.POST("", admin, h.Product.Create)
	products.PUT("/:id", admin, h.Product.Update)
	products.DELETE("/:id", admin, h.Product.Delete)
	products.PUT("/:id/modifiers", admin, h.Product.SetModifiers)
	products.POST("/:id/stock", admin, h.Product.AdjustStock)
	products.POST("/:id/image/upload-url", admin, h.Product.ImageUploadURL)
	products.PUT("/:id/image", admin, h.Product.AttachImage)
	products.GET("/:id/recipe", admin, h.Product.GetRecipe)
	products.PUT("/:id/recipe", admin, h.Product.SetRecipe)

	zones := NewDomainGroup("zones", "/zones")
	zones.GET("", h.Floor.ListZones)
	zones.GET("/:id", h.Floor.GetZone)
	zones.POST("", admin, h.Floor.CreateZone)
	zones.PUT("/:id", admin, h.Floor.UpdateZone)
	zones.DELETE("/:id", admin, h.Floor.DeleteZone)

	tables := NewDomainGroup("tables", "/tables")
	tables.GET("", h.Floor.ListTables)
	tables.GET("/:id", h.Floor.GetTable)
	tables.POST("", admin, h.Floor.CreateTable)
	tables.PUT("/:id", admin, h.Floor.UpdateTable)
	tables.DELETE("/:id", admin, h.Floor.DeleteTable)
	tables.PUT("/:id/status", floor, h.Floor.SetTableStatus)

	sales := NewDomainGroup("sales", "/sales")
	sales.GET("", floor, h.Sale.List)
	sales.POST("", floor, h.Sale.Create)
	sales.GET("/:id", floor, h.Sale.GetByID)
	sales.GET("/:id/receipt", floor, h.Sale.Receipt)
	sales.POST("/:id/items", floor, h.Sale.AddItems)
	sales.POST("/:id/cancel", floor, h.Sale.Cancel)
	sales.POST("/:id/close", cashier, h.Sale.Close)
	sales.POST("/:id/invoice", cashier, h.Sale.CreateInvoice)
	sales.POST("/:id/void", admin, h.Sale.Void)

	invoices := NewDomainGroup("invoices", "/invoices").Use(cashier)
	invoices.GET("", h.Sale.ListInvoices)
	invoices.GET("/:id", h.Sale.GetInvoice)

	kitchenRoutes := NewDomainGroup("kitchen", "/kitchen").Use(kitchen)
	kitchenRoutes.GET("/orders", h.Kitchen.List)
	kitchenRoutes.GET("/orders/:id", h.Kitchen.GetByID)
	kitchenRoutes.PUT("/orders/:id/status", h.Kitchen.UpdateStatus)
	kitchenRoutes.GET("/stream", h.KitchenStream.Stream)

	inventory := NewDomainGroup("inventory", "/inventory").Use(admin)
	inventory.GET("/items", h.Inventory.ListItems)
	inventory.POST("/items", h.Inventory.CreateItem)
	inventory.GET("/items/:id", h.Inventory.GetItem)
	inventory.PUT("/items/:id", h.Inventory.UpdateItem)
	inventory.DELETE("/items/:id", h.Inventory.DeleteItem)
	inventory.POST("/items/:id/adjust", h.Inventory.AdjustItem)
	inventory.GET("/low-stock", h.Inventory.LowStock)
	inventory.GET("/purchases", h.Inventory.ListPurchases)
	inventory.POST("/purchases", h.Inventory.CreatePurchase)

	periods := NewDomainGroup("periods", "/periods").Use(cashier)
	periods.GET("", h.Period.List)
	periods.GET("/current", h.Period.Current)
	periods.GET("/:id", h.Period.GetByID)
	periods.POST("/open", h.Period.Open)
	periods.POST("/current/withdrawals", h.Period.Withdraw)
	periods.POST("/current/close", h.Period.Close)

	employees := NewDomainGroup("employees", "/employees").Use(admin)
	employees.GET("", h.Payroll.ListEmployees)
	employees.POST("", h.Payroll.CreateEmployee)
	employees.GET("/:id", h.Payroll.GetEmployee)
	employees.PUT("/:id", h.Payroll.UpdateEmployee)
	employees.DELETE("/:id", h.Payroll.DeleteEmployee)

	payroll := NewDomainGroup("payroll", "/payroll").Use(admin)
	payroll.GET("", h.Payroll.ListEntries)
	payroll.POST("", h.Payroll.CreateEntry)
	payroll.GET("/:id", h.Payroll.GetEntry)
	payroll.PUT("/:id", h.Payroll.UpdateEntry)
	payroll.DELETE("/:id", h.Payroll.DeleteEntry)
	payroll.POST("/:id/pay", h.Payroll.PayEntry)

	investments := NewDomainGroup("investments", "/investments").Use(admin)
	investments.GET("", h.Investment.List)
	investments.POST("", h.Investment.Create)
	investments.GET("/:id", h.Investment.GetByID)
	investments.PUT("/:id", h.Investment.Update)
	investments.DELETE("/:id", h.Investment.Delete)

	reports := NewDomainGroup("reports", "/reports").Use(admin)
	reports.GET("/summary", h.Report.Summary)
	reports.GET("/daily", h.Report.Daily)
	reports.GET("/hourly", h.Report.Hourly)
	reports.GET("/products", h.Report.Products)
	reports.GET("/categories", h.Report.Categories)
	reports.GET("/taxes", h.Report.Taxes)
	reports.GET("/profit-loss", h.Report.ProfitAndLoss)
	reports.GET("/inventory", h.Report.Inventory)
	reports.GET("/periods/:id", h.Report.Period)

	r.Register(authRoutes).
		Register(users).
		Register(settings).
		Register(categories).
		Register(products).
		Register(zones).
		Register(tables).
		Register(sales).
		Register(invoices).
		Register(kitchenRoutes).
		Register(inventory).
		Register(periods).
		Register(employees).
		Register(payroll).
		Register(investments).
		Register(reports)

	r.Setup()
	return r
}
