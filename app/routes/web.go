package routes

import (
	"github.com/shashiranjanraj/saborexpress/app/api"
	"github.com/shashiranjanraj/saborexpress/app/controllers"
	"github.com/shashiranjanraj/saborexpress/app/models"
	"github.com/shashiranjanraj/saborexpress/app/stores"
	"github.com/shashiranjanraj/saborexpress/pkg/ctx"
	"github.com/shashiranjanraj/saborexpress/pkg/rbac"
	"github.com/shashiranjanraj/saborexpress/pkg/router"
	"github.com/shashiranjanraj/saborexpress/pkg/storage"
	"github.com/shashiranjanraj/saborexpress/pkg/workerpool"
)

// Deps are what the storefront handlers need.
type Deps struct {
	API  *api.Client
	Pool *workerpool.Pool
	Disk storage.Disk
}

// RegisterWeb mounts every storefront route. stores.Middleware must already
// be in the router's middleware stack.
func RegisterWeb(r *router.Router, d Deps) {
	menu := controllers.NewMenuController(d.API)
	cart := controllers.NewCartController(d.API)
	auth := controllers.NewAuthController()
	checkout := controllers.NewCheckoutController(d.API)
	orders := controllers.NewOrderController(d.API)
	invoices := controllers.NewInvoiceController(d.API)
	profile := controllers.NewProfileController(d.API)
	adminMenu := controllers.NewAdminMenuController(d.API, d.Disk)
	adminOrders := controllers.NewAdminOrderController(d.API, d.Pool)
	adminInvoices := controllers.NewAdminInvoiceController(d.API)

	// Public
	r.Get("/menu", "menu.index", ctx.Wrap(menu.Index))
	r.Get("/menu/{key}", "menu.show", ctx.Wrap(menu.Show))

	c := r.Group("/cart")
	c.Get("/", "cart.show", ctx.Wrap(cart.Show))
	c.Delete("/", "cart.clear", ctx.Wrap(cart.Clear))
	c.Post("/items", "cart.add", ctx.Wrap(cart.Add))
	c.Patch("/items/{index}", "cart.adjust", ctx.Wrap(cart.Adjust))
	c.Put("/items/{index}/notes", "cart.notes", ctx.Wrap(cart.Notes))
	c.Delete("/items/{index}", "cart.remove", ctx.Wrap(cart.Remove))

	r.Post("/login", "auth.login", ctx.Wrap(auth.Login))
	r.Post("/register", "auth.register", ctx.Wrap(auth.Register))
	r.Post("/password/recover", "auth.recover", ctx.Wrap(auth.Recover))
	r.Post("/logout", "auth.logout", ctx.Wrap(auth.Logout))

	// Signed in
	account := r.Group("/", rbac.Require(stores.Identity, rbac.DefaultPolicy()))
	account.Post("/checkout", "checkout", ctx.Wrap(checkout.Store))
	account.Get("/orders", "orders.index", ctx.Wrap(orders.Index))
	account.Get("/orders/{id}", "orders.show", ctx.Wrap(orders.Show))
	account.Delete("/orders/{id}", "orders.cancel", ctx.Wrap(orders.Cancel))
	account.Post("/orders/{id}/invoice", "orders.invoice", ctx.Wrap(orders.Invoice))
	account.Post("/orders/{id}/items", "orders.items.add", ctx.Wrap(orders.AddItem))
	account.Delete("/orders/{id}/items/{nombre}", "orders.items.remove", ctx.Wrap(orders.RemoveItem))
	account.Put("/orders/{id}/confirm", "orders.confirm", ctx.Wrap(orders.Confirm))
	account.Get("/invoices", "invoices.index", ctx.Wrap(invoices.Index))
	account.Get("/invoices/{id}", "invoices.show", ctx.Wrap(invoices.Show))
	account.Get("/profile", "profile.show", ctx.Wrap(profile.Show))
	account.Put("/profile", "profile.update", ctx.Wrap(profile.Update))
	account.Put("/profile/password", "profile.password", ctx.Wrap(profile.Password))
	account.Put("/profile/address", "profile.address", ctx.Wrap(profile.Address))

	// Administrators
	admin := r.Group("/admin", rbac.Require(stores.Identity, rbac.DefaultPolicy(string(models.RoleAdmin))))
	admin.Get("/menu", "admin.menu.index", ctx.Wrap(adminMenu.Index))
	admin.Post("/menu", "admin.menu.store", ctx.Wrap(adminMenu.Store))
	admin.Put("/menu/{key}", "admin.menu.update", ctx.Wrap(adminMenu.Update))
	admin.Delete("/menu/{key}", "admin.menu.destroy", ctx.Wrap(adminMenu.Destroy))
	admin.Put("/menu/{key}/availability", "admin.menu.availability", ctx.Wrap(adminMenu.Availability))
	admin.Post("/menu/{key}/image", "admin.menu.image", ctx.Wrap(adminMenu.Image))
	admin.Get("/orders", "admin.orders.index", ctx.Wrap(adminOrders.Index))
	admin.Put("/orders/{id}/status", "admin.orders.status", ctx.Wrap(adminOrders.UpdateStatus))
	admin.Get("/invoices", "admin.invoices.index", ctx.Wrap(adminInvoices.Index))
}
