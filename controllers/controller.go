package controllers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"storefront-ui/clients"
	"storefront-ui/middleware"
	"storefront-ui/session"
)

// StorefrontController serves every page and form of the storefront.
// Each handler runs one request/render cycle: load data through the
// shop client, render a template, and never let an upstream failure
// escape as anything worse than a placeholder or an error banner.
type StorefrontController struct {
	shop       *clients.ShopClient
	store      *session.Store
	sessionTTL time.Duration
}

func NewStorefrontController(shop *clients.ShopClient, store *session.Store, sessionTTL time.Duration) *StorefrontController {
	return &StorefrontController{
		shop:       shop,
		store:      store,
		sessionTTL: sessionTTL,
	}
}

const genericErrorMessage = "An error occurred. Please try again."

// errorMessage surfaces the backend's own message when there is one and
// falls back to a generic string for network or decode failures.
func errorMessage(err error) string {
	var apiErr *clients.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return genericErrorMessage
}

// greeting is best-effort decoration, never a gate: any failure on the
// user-info call falls back to the guest label.
func (sc *StorefrontController) greeting(c *gin.Context, prefix string) string {
	guest := prefix + ", Guest"

	sess := middleware.GetSession(c)
	if sess == nil || sess.AccessToken == "" {
		return guest
	}

	user, err := sc.shop.CurrentUser(c.Request.Context(), sess.AccessToken)
	if err != nil {
		return guest
	}
	return prefix + ", " + user.Username
}
