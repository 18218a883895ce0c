package routes

import (
	"github.com/gin-gonic/gin"

	"storefront-ui/controllers"
	"storefront-ui/middleware"
)

func RegisterRoutes(r *gin.Engine, ctrl *controllers.StorefrontController) {
	r.GET("/health", ctrl.Health)

	// Public pages - guests get the full read path
	r.GET("/", ctrl.Home)
	r.GET("/login", ctrl.LoginPage)
	r.GET("/register", ctrl.RegisterPage)
	r.GET("/checkout", ctrl.CheckoutPage)
	r.GET("/logout", ctrl.Logout)

	// Credential forms, throttled per client IP
	authForms := r.Group("/", middleware.AuthFormRateLimit())
	{
		authForms.POST("/login", ctrl.LoginSubmit)
		authForms.POST("/register", ctrl.RegisterSubmit)
	}

	// Buyer routes - gate policy decides placeholder vs redirect
	r.GET("/orders", middleware.Gate(middleware.ClassBuyerOrders), ctrl.Orders)
	r.POST("/checkout", middleware.Gate(middleware.ClassCheckout), ctrl.CheckoutSubmit)

	// Seller routes - always redirect guests to login
	seller := r.Group("/seller", middleware.Gate(middleware.ClassSeller))
	{
		seller.GET("", ctrl.SellerDashboard)
		seller.POST("/products", ctrl.ProductSave)
		seller.POST("/products/delete", ctrl.ProductDelete)
	}
}
