package router

import (
	"github.com/gin-gonic/gin"
	"github.com/shopdesk/backend/internal/interfaces/http/handler"
)

// Handlers are the API handlers mounted by ShopRoutes
type Handlers struct {
	Auth     *handler.AuthHandler
	Catalog  *handler.CatalogHandler
	Customer *handler.CustomerHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
	Payment  *handler.PaymentHandler
	Review   *handler.ReviewHandler
	Report   *handler.ReportHandler
	Feed     *handler.DashboardFeedHandler
}

// Guards are the middleware placed in front of protected routes. Any of
// them may be nil.
type Guards struct {
	// Authenticate validates the bearer token
	Authenticate gin.HandlerFunc
	// AuthenticateFeed also accepts the token as ?access_token=
	AuthenticateFeed gin.HandlerFunc
	RequireCustomer  gin.HandlerFunc
	RequireStaff     gin.HandlerFunc
	// AuthLimit throttles the credential endpoints
	AuthLimit gin.HandlerFunc
}

// ShopRoutes builds the route groups of the storefront and the back office
func ShopRoutes(h Handlers, g Guards) []RouteRegistrar {
	auth := NewDomainGroup("auth", "/auth")
	auth.POST("/staff/login", g.AuthLimit, h.Auth.StaffLogin)
	auth.POST("/customer/login", g.AuthLimit, h.Auth.CustomerLogin)
	auth.POST("/customer/signup", g.AuthLimit, h.Auth.CustomerSignup)
	auth.POST("/refresh", g.AuthLimit, h.Auth.RefreshToken)
	auth.POST("/logout", g.Authenticate, h.Auth.Logout)
	auth.PUT("/password", g.Authenticate, h.Auth.ChangePassword)

	catalog := NewDomainGroup("catalog", "/catalog")
	catalog.GET("/categories", h.Catalog.ListCategories)
	catalog.GET("/categories/:id", h.Catalog.GetCategory)
	catalog.GET("/products", h.Catalog.ListProducts)
	catalog.GET("/products/:id", h.Catalog.GetProduct)
	catalog.GET("/products/:id/reviews", h.Review.List)
	catalog.POST("/products/:id/reviews", g.Authenticate, g.RequireCustomer, h.Review.Submit)

	cart := NewDomainGroup("cart", "/cart").Use(g.Authenticate, g.RequireCustomer)
	cart.GET("", h.Cart.Get)
	cart.POST("/items", h.Cart.AddItem)
	cart.PUT("/items/:item_id", h.Cart.UpdateItem)
	cart.DELETE("/items/:item_id", h.Cart.RemoveItem)
	cart.POST("/checkout", h.Cart.Checkout)

	orders := NewDomainGroup("orders", "/orders").Use(g.Authenticate, g.RequireCustomer)
	orders.GET("", h.Order.ListMine)
	orders.GET("/:id", h.Order.GetMine)

	return []RouteRegistrar{auth, catalog, cart, orders, adminRoutes(h, g)}
}

func adminRoutes(h Handlers, g Guards) *DomainGroup {
	admin := NewDomainGroup("admin", "/admin")

	// the feed authenticates on its own so browsers can pass the token in the query
	admin.GET("/ws/dashboard", g.AuthenticateFeed, g.RequireStaff, h.Feed.Connect)

	staff := admin.Group("staff", "").Use(g.Authenticate, g.RequireStaff)

	staff.POST("/categories", h.Catalog.CreateCategory)
	staff.PUT("/categories/:id", h.Catalog.UpdateCategory)
	staff.DELETE("/categories/:id", h.Catalog.DeleteCategory)

	staff.GET("/products", h.Catalog.AdminListProducts)
	staff.POST("/products", h.Catalog.CreateProduct)
	staff.GET("/products/:id", h.Catalog.AdminGetProduct)
	staff.PUT("/products/:id", h.Catalog.UpdateProduct)
	staff.PUT("/products/:id/stock", h.Catalog.UpdateStock)
	staff.DELETE("/products/:id", h.Catalog.DeleteProduct)

	staff.GET("/customers", h.Customer.List)
	staff.POST("/customers", h.Customer.Create)
	staff.GET("/customers/:id", h.Customer.Get)
	staff.PUT("/customers/:id", h.Customer.Update)
	staff.DELETE("/customers/:id", h.Customer.Delete)
	staff.POST("/customers/:id/activate", h.Customer.Activate)
	staff.POST("/customers/:id/deactivate", h.Customer.Deactivate)

	staff.GET("/orders", h.Order.List)
	staff.POST("/orders", h.Order.Create)
	staff.GET("/orders/summary", h.Order.Summary)
	staff.GET("/orders/:id", h.Order.Get)
	staff.PUT("/orders/:id/status", h.Order.UpdateStatus)
	staff.GET("/orders/:id/payments", h.Payment.ListByOrder)

	staff.GET("/payments", h.Payment.List)
	staff.POST("/payments", h.Payment.Record)
	staff.GET("/payments/:id", h.Payment.Get)
	staff.PUT("/payments/:id/status", h.Payment.UpdateStatus)

	staff.GET("/dashboard/overview", h.Report.Overview)
	staff.GET("/dashboard/analytics", h.Report.Analytics)
	staff.GET("/dashboard/inventory", h.Report.Inventory)
	staff.GET("/reports/orders/export", h.Report.ExportOrders)
	staff.GET("/reports/payments/export", h.Report.ExportPayments)

	return admin
}
