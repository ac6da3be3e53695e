package router

import (
	"myStoreCloud/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.GET("/email-verification/:code", handler.VerifyEmail)
	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)

	users.POST("/logout", handler.Logout, authRequired)
	users.GET("/me", handler.GetProfile, authRequired)
	users.PUT("/me", handler.UpdateProfile, authRequired)
}

func SetupStoreRoutes(api *echo.Group, handler *rest.StoreHandler, authRequired echo.MiddlewareFunc, ownerOnly echo.MiddlewareFunc) {
	stores := api.Group("/stores", authRequired, ownerOnly)

	stores.POST("", handler.Create)
	stores.GET("", handler.ListMine)
	stores.PUT("/:id", handler.Update)
	stores.DELETE("/:id", handler.Delete)
}

// Storefront routes are tenant scoped: the store is resolved from the
// X-Store header or the request subdomain.

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler, tenant echo.MiddlewareFunc, authRequired echo.MiddlewareFunc, ownerOnly echo.MiddlewareFunc) {
	reco := api.Group("/recommendations", tenant)

	reco.GET("", handler.Recommend)
	reco.POST("/feedback", handler.Feedback)
	reco.GET("/analytics", handler.Analytics, authRequired, ownerOnly)
}

func SetupBehaviorRoutes(api *echo.Group, handler *rest.BehaviorHandler, tenant echo.MiddlewareFunc) {
	api.POST("/events", handler.TrackEvent, tenant)
	api.POST("/views", handler.TrackView, tenant)
}

func SetupProductRoutes(api *echo.Group, productHandler *rest.ProductHandler, categoryHandler *rest.CategoryHandler, tenant echo.MiddlewareFunc, authRequired echo.MiddlewareFunc, ownerOnly echo.MiddlewareFunc) {
	products := api.Group("/products", tenant)

	products.GET("", productHandler.List)
	products.GET("/:id", productHandler.Get)
	products.POST("", productHandler.Create, authRequired, ownerOnly)
	products.PUT("/:id", productHandler.Update, authRequired, ownerOnly)
	products.DELETE("/:id", productHandler.Delete, authRequired, ownerOnly)
	products.PUT("/:id/categories", categoryHandler.AssignToProduct, authRequired, ownerOnly)
}

func SetupCategoryRoutes(api *echo.Group, handler *rest.CategoryHandler, tenant echo.MiddlewareFunc, authRequired echo.MiddlewareFunc, ownerOnly echo.MiddlewareFunc) {
	categories := api.Group("/categories", tenant)

	categories.GET("", handler.List)
	categories.POST("", handler.Create, authRequired, ownerOnly)
	categories.DELETE("/:id", handler.Delete, authRequired, ownerOnly)
}

func SetupOrdersRoutes(api *echo.Group, handler *rest.OrdersHandler, tenant echo.MiddlewareFunc, authRequired echo.MiddlewareFunc, ownerOnly echo.MiddlewareFunc) {
	orders := api.Group("/orders", tenant)

	orders.POST("", handler.Create)
	orders.GET("/:id", handler.Get)
	orders.PUT("/:id/status", handler.UpdateStatus, authRequired, ownerOnly)
}

func SetupCustomerRoutes(api *echo.Group, customerHandler *rest.CustomerHandler, ordersHandler *rest.OrdersHandler, recoHandler *rest.RecommendationHandler, tenant echo.MiddlewareFunc) {
	customers := api.Group("/customers", tenant)

	customers.POST("", customerHandler.Create)
	customers.GET("/:id", customerHandler.Get)
	customers.GET("/:id/orders", ordersHandler.ListByCustomer)
	customers.POST("/:id/preferences/refresh", recoHandler.RefreshPreferences)
}
