package shopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route binds one HTTP operation to its handler. Protected routes pass through
// the session middleware before the handler runs.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
	Protected   bool
}

// Routes is the list of the server's HTTP operations.
type Routes []Route

// ApiHandleFunctions groups the per-context API handlers.
type ApiHandleFunctions struct {
	UsersAPI         UsersAPI
	ProductsAPI      ProductsAPI
	CartAPI          CartAPI
	OrdersAPI        OrdersAPI
	ReviewsAPI       ReviewsAPI
	NotificationsAPI NotificationsAPI
}

// NewRouter returns a gin engine with all API routes registered. Global
// middleware must be supplied here so it applies to every route; the auth
// middleware guards only routes marked protected.
func NewRouter(handlers ApiHandleFunctions, auth gin.HandlerFunc, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.Default()
	router.Use(middleware...)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	for _, route := range getRoutes(handlers) {
		if route.HandlerFunc == nil {
			continue
		}
		chain := []gin.HandlerFunc{}
		if route.Protected && auth != nil {
			chain = append(chain, auth)
		}
		chain = append(chain, route.HandlerFunc)
		router.Handle(route.Method, route.Pattern, chain...)
	}
	return router
}

func getRoutes(handlers ApiHandleFunctions) Routes {
	return Routes{
		{"Signup", http.MethodPost, "/api/users/signup", handlers.UsersAPI.Signup, false},
		{"Login", http.MethodPost, "/api/users/login", handlers.UsersAPI.Login, false},
		{"Logout", http.MethodPost, "/api/users/logout", handlers.UsersAPI.Logout, true},
		{"Me", http.MethodGet, "/api/users/me", handlers.UsersAPI.Me, true},

		{"ListProducts", http.MethodGet, "/api/products", handlers.ProductsAPI.ListProducts, false},
		{"GetProduct", http.MethodGet, "/api/products/:id", handlers.ProductsAPI.GetProduct, false},
		{"CreateProduct", http.MethodPost, "/api/products", handlers.ProductsAPI.CreateProduct, true},
		{"UpdateProduct", http.MethodPut, "/api/products/:id", handlers.ProductsAPI.UpdateProduct, true},
		{"DeleteProduct", http.MethodDelete, "/api/products/:id", handlers.ProductsAPI.DeleteProduct, true},

		{"ListCart", http.MethodGet, "/api/cart", handlers.CartAPI.ListCart, true},
		{"AddToCart", http.MethodPost, "/api/cart", handlers.CartAPI.AddToCart, true},
		{"UpdateCartItem", http.MethodPatch, "/api/cart/:itemId", handlers.CartAPI.UpdateCartItem, true},
		{"RemoveCartItem", http.MethodDelete, "/api/cart/:itemId", handlers.CartAPI.RemoveCartItem, true},

		{"PlaceOrder", http.MethodPost, "/api/orders", handlers.OrdersAPI.PlaceOrder, true},
		{"ListMyOrders", http.MethodGet, "/api/orders", handlers.OrdersAPI.ListMyOrders, true},
		{"CheckPurchase", http.MethodGet, "/api/orders/check-purchase", handlers.OrdersAPI.CheckPurchase, true},
		{"GetOrder", http.MethodGet, "/api/orders/:id", handlers.OrdersAPI.GetOrder, true},

		{"ListProductReviews", http.MethodGet, "/api/products/:id/reviews", handlers.ReviewsAPI.ListProductReviews, false},
		{"CreateReview", http.MethodPost, "/api/products/:id/reviews", handlers.ReviewsAPI.CreateReview, true},
		{"ListMyReviews", http.MethodGet, "/api/reviews/me", handlers.ReviewsAPI.ListMyReviews, true},
		{"UpdateReview", http.MethodPut, "/api/reviews/:id", handlers.ReviewsAPI.UpdateReview, true},
		{"DeleteReview", http.MethodDelete, "/api/reviews/:id", handlers.ReviewsAPI.DeleteReview, true},

		{"ListNotifications", http.MethodGet, "/api/notifications", handlers.NotificationsAPI.ListNotifications, true},
		{"MarkNotificationRead", http.MethodPost, "/api/notifications/:id/read", handlers.NotificationsAPI.MarkRead, true},
	}
}
