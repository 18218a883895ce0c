package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CookieName is the session ID cookie.
const CookieName = "sid"

// ReadCookie returns the session ID from the request, or "" when the
// visitor has none.
func ReadCookie(c *gin.Context) string {
	id, err := c.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return id
}

// SetCookie issues the session ID cookie for the given lifetime.
func SetCookie(c *gin.Context, id string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, id, maxAge, "/", "", false, true)
}

// DropCookie expires the session ID cookie.
func DropCookie(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}
