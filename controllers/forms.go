package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-ui/clients"
	"storefront-ui/logger"
	"storefront-ui/middleware"
	"storefront-ui/models"
	"storefront-ui/session"
)

// LoginSubmit exchanges the form credentials for a session and routes
// the user by role: sellers to the dashboard, buyers to the storefront.
// A user with neither role gets a message and stays put.
func (sc *StorefrontController) LoginSubmit(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	sess, err := sc.shop.Login(c.Request.Context(), username, password)
	if err != nil {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Error":    errorMessage(err),
			"Username": username,
		})
		return
	}

	id := session.NewID()
	if err := sc.store.Save(c.Request.Context(), id, sess); err != nil {
		logger.Log.Error("failed to persist session", zap.Error(err))
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Error":    genericErrorMessage,
			"Username": username,
		})
		return
	}
	session.SetCookie(c, id, int(sc.sessionTTL.Seconds()))

	switch {
	case sess.IsSeller:
		c.Redirect(http.StatusFound, "/seller")
	case sess.IsBuyer:
		c.Redirect(http.StatusFound, "/")
	default:
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Error": "Role not recognized. Please contact support.",
		})
	}
}

// RegisterSubmit forwards the registration. The buyer flag is derived
// from the seller checkbox: whoever is not a seller registers as a
// buyer.
func (sc *StorefrontController) RegisterSubmit(c *gin.Context) {
	isSeller := c.PostForm("is_seller") != ""
	form := models.RegisterForm{
		Username: c.PostForm("username"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
		IsSeller: isSeller,
		IsBuyer:  !isSeller,
	}

	if err := sc.shop.Register(c.Request.Context(), form); err != nil {
		c.HTML(http.StatusOK, "register.html", gin.H{
			"Error":    errorMessage(err),
			"Username": form.Username,
			"Email":    form.Email,
			"IsSeller": form.IsSeller,
		})
		return
	}

	c.Redirect(http.StatusFound, "/login?registered=1")
}

// CheckoutSubmit places an order. The gate policy has already redirected
// guests to login before this handler runs.
func (sc *StorefrontController) CheckoutSubmit(c *gin.Context) {
	sess := middleware.GetSession(c)

	productID := c.PostForm("product_id")
	address := c.PostForm("address")
	quantityStr := c.PostForm("quantity")

	renderErr := func(msg string) {
		c.HTML(http.StatusOK, "checkout.html", gin.H{
			"Greeting":    "Welcome, " + sess.Username,
			"ProductID":   productID,
			"ProductName": c.PostForm("product_name"),
			"Price":       c.PostForm("price"),
			"Quantity":    quantityStr,
			"Address":     address,
			"Error":       msg,
		})
	}

	quantity, err := strconv.Atoi(quantityStr)
	if err != nil || quantity < 1 {
		renderErr("Please enter a valid quantity.")
		return
	}

	req := clients.OrderRequest{
		ProductID: productID,
		Quantity:  quantity,
		Address:   address,
	}
	if err := sc.shop.PlaceOrder(c.Request.Context(), sess.AccessToken, req); err != nil {
		logger.Log.Warn("order submission failed", zap.Error(err))
		renderErr(errorMessage(err))
		return
	}

	c.Redirect(http.StatusFound, "/orders")
}

// ProductSave adds or edits a seller product. The hidden product_id
// field is the edit-mode flag: present means PUT to the edit endpoint,
// absent means POST to add. Success redirects back to the dashboard,
// which re-fetches the list and resets the form.
func (sc *StorefrontController) ProductSave(c *gin.Context) {
	sess := middleware.GetSession(c)

	form := models.ProductForm{
		EditID:      c.PostForm("product_id"),
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Price:       c.PostForm("price"),
		Stock:       c.PostForm("stock"),
	}
	if file, err := c.FormFile("image"); err == nil {
		form.Image = file
	}

	if err := sc.shop.SaveProduct(c.Request.Context(), sess.AccessToken, form); err != nil {
		logger.Log.Warn("product save failed", zap.Error(err))
		sc.renderSellerDashboard(c, sess, form, "Failed to save product: "+errorMessage(err))
		return
	}

	c.Redirect(http.StatusFound, "/seller")
}

// ProductDelete removes one product and reloads the dashboard. The
// confirmation prompt lives on the form in the template; by the time
// this runs the seller has confirmed.
func (sc *StorefrontController) ProductDelete(c *gin.Context) {
	sess := middleware.GetSession(c)

	productID, err := strconv.ParseInt(c.PostForm("product_id"), 10, 64)
	if err != nil {
		sc.renderSellerDashboard(c, sess, models.ProductForm{}, "Invalid product.")
		return
	}

	if err := sc.shop.DeleteProduct(c.Request.Context(), sess.AccessToken, productID); err != nil {
		logger.Log.Warn("product delete failed", zap.Error(err))
		sc.renderSellerDashboard(c, sess, models.ProductForm{}, "Failed to delete product: "+errorMessage(err))
		return
	}

	c.Redirect(http.StatusFound, "/seller")
}

// Logout clears the stored session and drops the cookie.
func (sc *StorefrontController) Logout(c *gin.Context) {
	if id := middleware.GetSessionID(c); id != "" {
		if err := sc.store.Clear(c.Request.Context(), id); err != nil {
			logger.Log.Warn("failed to clear session", zap.Error(err))
		}
	}
	session.DropCookie(c)
	c.Redirect(http.StatusFound, "/login")
}

// renderSellerDashboard re-renders the dashboard after a failed form
// action, keeping the submitted values and showing the error banner.
// List loads stay best-effort so the page remains interactive.
func (sc *StorefrontController) renderSellerDashboard(c *gin.Context, sess *models.Session, form models.ProductForm, errMsg string) {
	ctx := c.Request.Context()

	data := gin.H{
		"Greeting": "Welcome, " + sess.Username,
		"Form":     form,
		"Error":    errMsg,
	}

	if products, err := sc.shop.SellerProducts(ctx, sess.AccessToken); err == nil {
		data["Products"] = products
	} else {
		data["ProductsError"] = "Failed to load products. Please try again later."
	}
	if orders, err := sc.shop.SellerOrders(ctx, sess.AccessToken); err == nil {
		data["Orders"] = orders
	} else {
		data["OrdersError"] = "Failed to load orders. Please try again later."
	}

	c.HTML(http.StatusOK, "seller_dashboard.html", data)
}
