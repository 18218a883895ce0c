package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-ui/logger"
	"storefront-ui/middleware"
	"storefront-ui/models"
)

// Home renders the public product catalog. Guests get the full page;
// the greeting upgrades when a session is present.
func (sc *StorefrontController) Home(c *gin.Context) {
	data := gin.H{
		"Greeting": sc.greeting(c, "Hello"),
		"LoggedIn": middleware.GetSession(c) != nil,
	}

	products, err := sc.shop.Storefront(c.Request.Context())
	if err != nil {
		logger.Log.Error("failed to load products", zap.Error(err))
		data["LoadError"] = "Failed to load products. Please try again later."
	} else {
		data["Products"] = products
	}

	c.HTML(http.StatusOK, "home.html", data)
}

// LoginPage renders the login form. A registered=1 query parameter
// carries the post-registration notice across the redirect.
func (sc *StorefrontController) LoginPage(c *gin.Context) {
	data := gin.H{}
	if c.Query("registered") == "1" {
		data["Notice"] = "Registration successful! Please log in."
	}
	c.HTML(http.StatusOK, "login.html", data)
}

// RegisterPage renders the registration form.
func (sc *StorefrontController) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{})
}

// CheckoutPage renders the checkout form for the product identified by
// the id/name/price query parameters - the sole mechanism for carrying
// a selection between pages. Without an id there is nothing to buy.
func (sc *StorefrontController) CheckoutPage(c *gin.Context) {
	productID := c.Query("id")
	if productID == "" {
		c.Redirect(http.StatusFound, "/")
		return
	}

	name := c.Query("name")
	if name == "" {
		name = "Unknown Product"
	}
	price := c.Query("price")
	if price == "" {
		price = "0"
	}

	c.HTML(http.StatusOK, "checkout.html", gin.H{
		"Greeting":    sc.greeting(c, "Welcome"),
		"ProductID":   productID,
		"ProductName": name,
		"Price":       price,
		"Quantity":    "1",
		"Address":     "",
	})
}

// Orders renders the buyer's order history. Per the gate policy a guest
// gets the signed-in placeholder without any authenticated request.
func (sc *StorefrontController) Orders(c *gin.Context) {
	data := gin.H{
		"Greeting": sc.greeting(c, "Welcome"),
	}

	sess := middleware.GetSession(c)
	if sess == nil {
		data["Placeholder"] = "Please log in to view your orders."
		c.HTML(http.StatusOK, "orders.html", data)
		return
	}

	orders, err := sc.shop.BuyerOrders(c.Request.Context(), sess.AccessToken)
	if err != nil {
		logger.Log.Error("failed to load orders", zap.Error(err))
		data["LoadError"] = errorMessage(err)
		c.HTML(http.StatusOK, "orders.html", data)
		return
	}

	data["Orders"] = orders
	c.HTML(http.StatusOK, "orders.html", data)
}

// SellerDashboard renders product management plus order history for a
// seller. The role check goes through the user-info endpoint; any
// doubt sends the visitor back to login.
func (sc *StorefrontController) SellerDashboard(c *gin.Context) {
	sess := middleware.GetSession(c)
	ctx := c.Request.Context()

	user, err := sc.shop.CurrentUser(ctx, sess.AccessToken)
	if err != nil || !user.IsSeller {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	data := gin.H{
		"Greeting": "Welcome, " + user.Username,
		"Form":     editFormFromQuery(c),
	}

	products, err := sc.shop.SellerProducts(ctx, sess.AccessToken)
	if err != nil {
		logger.Log.Error("failed to load seller products", zap.Error(err))
		data["ProductsError"] = "Failed to load products. Please try again later."
	} else {
		data["Products"] = products
	}

	orders, err := sc.shop.SellerOrders(ctx, sess.AccessToken)
	if err != nil {
		logger.Log.Error("failed to load seller orders", zap.Error(err))
		data["OrdersError"] = "Failed to load orders. Please try again later."
	} else {
		data["Orders"] = orders
	}

	c.HTML(http.StatusOK, "seller_dashboard.html", data)
}

// editFormFromQuery prefills the product form from the values an Edit
// link passed through the rendered markup. An empty edit ID means a
// blank add form.
func editFormFromQuery(c *gin.Context) models.ProductForm {
	return models.ProductForm{
		EditID:      c.Query("edit_id"),
		Name:        c.Query("name"),
		Description: c.Query("description"),
		Price:       c.Query("price"),
		Stock:       c.Query("stock"),
	}
}

// Health reports liveness.
func (sc *StorefrontController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
