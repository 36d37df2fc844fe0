package httpserver

import (
	"context"
	"errors"
	"time"

	"jugadubazar/internal/domain"
	cartsvc "jugadubazar/internal/service/cart"
	checkoutsvc "jugadubazar/internal/service/checkout"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type materialService interface {
	List(ctx context.Context, category string) ([]domain.Material, error)
	Get(ctx context.Context, id string) (*domain.Material, error)
}

type categoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
}

type cartService interface {
	Create(ctx context.Context) (*cartsvc.View, error)
	Get(ctx context.Context, cartID string) (*cartsvc.View, error)
	AddItem(ctx context.Context, cartID string, in cartsvc.AddItemInput) (*cartsvc.View, error)
	UpdateQuantity(ctx context.Context, cartID, productID string, qty int) (*cartsvc.View, error)
	RemoveItem(ctx context.Context, cartID, productID string) (*cartsvc.View, error)
	Clear(ctx context.Context, cartID string) (*cartsvc.View, error)
	Quote(ctx context.Context, cartID, strategy string) (domain.Quote, error)
	Instructions(ctx context.Context, cartID string) ([]domain.SupplierInstructions, error)
	UpdateInstructions(ctx context.Context, cartID, supplierKey string, in cartsvc.InstructionsInput) (domain.SupplierInstructions, error)
}

type checkoutService interface {
	Checkout(ctx context.Context, cartID string, in checkoutsvc.Input) (domain.OrderConfirmation, error)
}

type orderReader interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}

type httpObserver interface {
	Observe(method, route string, status int, elapsed time.Duration)
}

// Deps holds the services the handlers call into.
type Deps struct {
	MaterialSvc materialService
	CategorySvc categoryService
	CartSvc     cartService
	CheckoutSvc checkoutService
	Orders      orderReader
}

// Options carries the router settings that are not services.
type Options struct {
	AllowedOrigins []string
	Gatherer       prometheus.Gatherer
	HTTPMetrics    httpObserver
}

// buildRouter wires routes for the API.
func buildRouter(logger zerolog.Logger, db *pgxpool.Pool, opts Options, deps Deps) (*gin.Engine, error) {
	if deps.MaterialSvc == nil || deps.CategorySvc == nil || deps.CartSvc == nil || deps.CheckoutSvc == nil || deps.Orders == nil {
		return nil, errors.New("httpserver: missing service dependency")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestLogger(logger, opts.HTTPMetrics), gin.Recovery())
	if len(opts.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	var ready pinger
	if db != nil {
		ready = db
	}
	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(ready))
	if opts.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	router.GET("/materials", listMaterialsHandler(deps.MaterialSvc))
	router.GET("/materials/:materialId", getMaterialHandler(deps.MaterialSvc))
	router.GET("/categories", listCategoriesHandler(deps.CategorySvc))

	router.POST("/carts", createCartHandler(deps.CartSvc))
	carts := router.Group("/carts/:cartId", cartMiddleware(deps.CartSvc))
	carts.GET("", getCartHandler())
	carts.POST("/items", addItemHandler(deps.CartSvc))
	carts.PATCH("/items/:productId", updateItemHandler(deps.CartSvc))
	carts.DELETE("/items/:productId", removeItemHandler(deps.CartSvc))
	carts.DELETE("/items", clearCartHandler(deps.CartSvc))
	carts.GET("/quote", quoteHandler(deps.CartSvc))
	carts.GET("/instructions", listInstructionsHandler(deps.CartSvc))
	carts.PUT("/instructions/:supplierKey", updateInstructionsHandler(deps.CartSvc))
	carts.POST("/checkout", checkoutHandler(deps.CheckoutSvc))

	router.GET("/orders/:orderId", getOrderHandler(deps.Orders))

	return router, nil
}
