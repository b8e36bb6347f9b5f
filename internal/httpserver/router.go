package httpserver

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"teapos/internal/cart"
	"teapos/internal/checkout"
	"teapos/internal/domain"
	"teapos/internal/logging"
	"teapos/internal/receipt"
	catalogsvc "teapos/internal/service/catalog"
	ordersvc "teapos/internal/service/order"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Deps holds everything the handlers call into.
type Deps struct {
	DB          pinger
	Catalog     catalogService
	Carts       cartSessions
	Checkouts   checkoutFlows
	Orders      orderService
	Feed        http.Handler
	Receipt     receipt.Options
	CORSOrigins []string
	Logger      *logrus.Entry
}

type pinger interface {
	Ping(ctx context.Context) error
}

type catalogService interface {
	LoadCategories(ctx context.Context) []domain.Category
	LoadMenuItems(ctx context.Context, categoryID string) []domain.MenuItem
	LoadSizes(ctx context.Context) []domain.SizeOption
	LoadToppings(ctx context.Context) []domain.ToppingOption
	Levels() domain.Levels
	MenuItem(ctx context.Context, id string) (domain.MenuItem, error)
	Size(ctx context.Context, id string) (domain.SizeOption, error)
	Topping(ctx context.Context, id string) (domain.ToppingOption, error)

	AddCategory(ctx context.Context, name string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id, name string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	AddMenuItem(ctx context.Context, in catalogsvc.MenuItemInput) (*domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id string, in catalogsvc.MenuItemInput) (*domain.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id string) error
	AddSize(ctx context.Context, in catalogsvc.OptionInput) (*domain.SizeOption, error)
	UpdateSize(ctx context.Context, id string, in catalogsvc.OptionInput) (*domain.SizeOption, error)
	DeleteSize(ctx context.Context, id string) error
	AddTopping(ctx context.Context, in catalogsvc.OptionInput) (*domain.ToppingOption, error)
	UpdateTopping(ctx context.Context, id string, in catalogsvc.OptionInput) (*domain.ToppingOption, error)
	DeleteTopping(ctx context.Context, id string) error
}

type cartSessions interface {
	Get(ctx context.Context, id string) *cart.Session
}

type checkoutFlows interface {
	Get(ctx context.Context, sessionID string) *checkout.Flow
}

type orderService interface {
	List(ctx context.Context, f ordersvc.Filter) ([]domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, next domain.OrderStatus, changedBy string) (*domain.Order, error)
	UpdatePaymentStatus(ctx context.Context, id string, next domain.PaymentStatus) (*domain.Order, error)
	History(ctx context.Context, id string) ([]domain.StatusLog, error)
	Summary(ctx context.Context, from, to time.Time) (*domain.SalesSummary, error)
}

type handler struct {
	deps   Deps
	logger *logrus.Entry
}

// buildRouter wires routes for the API.
func buildRouter(accessLog io.Writer, deps Deps) (*gin.Engine, error) {
	if deps.Catalog == nil || deps.Carts == nil || deps.Checkouts == nil || deps.Orders == nil {
		return nil, errors.New("httpserver: catalog, carts, checkouts and orders are required")
	}
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.LoggerWithWriter(accessLog), gin.Recovery(), corsMiddleware(deps.CORSOrigins))

	h := &handler{deps: deps, logger: logging.OrDiscard(deps.Logger).WithField("component", "http")}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.DB))

	catalog := router.Group("/catalog")
	catalog.GET("/categories", h.listCategories)
	catalog.GET("/categories/:id/items", h.listMenuItems)
	catalog.GET("/sizes", h.listSizes)
	catalog.GET("/toppings", h.listToppings)
	catalog.GET("/levels", h.levels)

	admin := router.Group("/admin")
	admin.POST("/categories", h.createCategory)
	admin.PUT("/categories/:id", h.updateCategory)
	admin.DELETE("/categories/:id", h.deleteCategory)
	admin.POST("/menu-items", h.createMenuItem)
	admin.PUT("/menu-items/:id", h.updateMenuItem)
	admin.DELETE("/menu-items/:id", h.deleteMenuItem)
	admin.POST("/sizes", h.createSize)
	admin.PUT("/sizes/:id", h.updateSize)
	admin.DELETE("/sizes/:id", h.deleteSize)
	admin.POST("/toppings", h.createTopping)
	admin.PUT("/toppings/:id", h.updateTopping)
	admin.DELETE("/toppings/:id", h.deleteTopping)

	sessions := router.Group("/sessions/:sessionID")
	sessions.GET("/cart", h.getCart)
	sessions.POST("/cart/items", h.addCartItem)
	sessions.DELETE("/cart/items/:index", h.removeCartItem)
	sessions.DELETE("/cart", h.clearCart)
	sessions.GET("/checkout", h.getCheckout)
	sessions.POST("/checkout", h.checkout)
	sessions.DELETE("/checkout", h.dismissCheckout)

	router.GET("/orders", h.listOrders)
	router.GET("/orders/:id", h.getOrder)
	router.GET("/orders/:id/history", h.orderHistory)
	router.GET("/orders/:id/receipt", h.orderReceipt)
	router.PATCH("/orders/:id/status", h.updateOrderStatus)
	router.PATCH("/orders/:id/payment-status", h.updatePaymentStatus)
	router.GET("/reports/summary", h.salesSummary)

	if deps.Feed != nil {
		router.GET("/ws/orders", gin.WrapH(deps.Feed))
	}

	return router, nil
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Changed-By"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
