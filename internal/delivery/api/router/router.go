// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	CatalogHandler    *handler.CatalogHandler
	CartHandler       *handler.CartHandler
	OrderHandler      *handler.OrderHandler
	ReviewHandler     *handler.ReviewHandler
	AdminHandler      *handler.AdminHandler
	MediaHandler      *handler.MediaHandler
	SessionMiddleware *middleware.SessionMiddleware
	AdminAuth         *middleware.AdminAuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	catalogHandler    *handler.CatalogHandler
	cartHandler       *handler.CartHandler
	orderHandler      *handler.OrderHandler
	reviewHandler     *handler.ReviewHandler
	adminHandler      *handler.AdminHandler
	mediaHandler      *handler.MediaHandler
	sessionMiddleware *middleware.SessionMiddleware
	adminAuth         *middleware.AdminAuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		catalogHandler:    params.CatalogHandler,
		cartHandler:       params.CartHandler,
		orderHandler:      params.OrderHandler,
		reviewHandler:     params.ReviewHandler,
		adminHandler:      params.AdminHandler,
		mediaHandler:      params.MediaHandler,
		sessionMiddleware: params.SessionMiddleware,
		adminAuth:         params.AdminAuth,
	}
}

// RegisterRoutes sets up all the routes for the application.
// Static segments win over :item_id in echo's router, so /store/ and /cart/ never reach ItemDetail.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)
	e.GET("/media/*", r.mediaHandler.Serve)

	// Catalog pages
	e.GET("/", r.catalogHandler.Home)
	e.GET("/store/", r.catalogHandler.Store)
	e.GET("/:item_id/", r.catalogHandler.ItemDetail)
	e.GET("/:item_id/qr/", r.catalogHandler.ItemQRCode)
	e.GET("/:item_id/reviews/", r.catalogHandler.ItemReviews)
	e.POST("/create_review/:item_id/", r.reviewHandler.CreateReview)

	// Session-scoped routes
	withSession := r.sessionMiddleware.Attach
	e.GET("/cart/", r.cartHandler.Cart, withSession)
	e.GET("/order/", r.cartHandler.Cart, withSession)
	e.GET("/wishlist/", r.cartHandler.Wishlist, withSession)
	e.GET("/add_to_cart/:item_id/", r.cartHandler.AddToCart, withSession)
	e.GET("/add_to_wishlist/:item_id/", r.cartHandler.AddToWishlist, withSession)
	e.GET("/remove_from_cart/:line_id/", r.cartHandler.RemoveFromCart, withSession)
	e.GET("/plus_quantity/:line_id/", r.cartHandler.PlusQuantity, withSession)
	e.GET("/minus_quantity/:line_id/", r.cartHandler.MinusQuantity, withSession)
	e.POST("/make_order/", r.orderHandler.MakeOrder, withSession)

	// Catalog management
	admin := e.Group("/admin", r.adminAuth.Authenticate)
	{
		admin.POST("/categories", r.adminHandler.CreateCategory)
		admin.DELETE("/categories/:id", r.adminHandler.DeleteCategory)
		admin.POST("/brands", r.adminHandler.CreateBrand)
		admin.POST("/colors", r.adminHandler.CreateColor)
		admin.POST("/items", r.adminHandler.CreateItem)
		admin.POST("/items/:id/images", r.adminHandler.AddItemImage)
		admin.POST("/items/:id/stock", r.adminHandler.AddStock)
	}
}
