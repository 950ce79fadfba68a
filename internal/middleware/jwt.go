package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/academic-portal/internal/service"
)

const (
	// PortalCookie holds the signed dashboard session token.
	PortalCookie = "portal_session"

	// ContextKeyPortalClaims is the Gin context key for portal claims.
	ContextKeyPortalClaims = "portal_claims"
)

// TokenValidator validates portal session tokens.
type TokenValidator interface {
	ValidatePortalToken(token string) (*service.PortalClaims, error)
}

// PortalSession reads the session cookie and, when it carries a valid
// token, stores the claims on the context. Invalid cookies are cleared.
// Requests are never rejected here.
func PortalSession(auth TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(PortalCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, err := auth.ValidatePortalToken(token)
		if err != nil {
			ClearPortalCookie(c)
			c.Next()
			return
		}

		c.Set(ContextKeyPortalClaims, claims)
		c.Next()
	}
}

// RequirePortalSession redirects anonymous users to the login dialog,
// keeping the student they were looking at.
func RequirePortalSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetPortalClaims(c) != nil {
			c.Next()
			return
		}

		q := url.Values{"dialog": {"login"}}
		if id := c.PostForm("studentId"); id != "" {
			q.Set("studentId", id)
		}
		c.Redirect(http.StatusSeeOther, "/?"+q.Encode())
		c.Abort()
	}
}

// GetPortalClaims retrieves the portal claims from the Gin context.
func GetPortalClaims(c *gin.Context) *service.PortalClaims {
	val, exists := c.Get(ContextKeyPortalClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*service.PortalClaims)
	if !ok {
		return nil
	}
	return claims
}

// SetPortalCookie stores token for maxAge seconds.
func SetPortalCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(PortalCookie, token, maxAge, "/", "", c.Request.TLS != nil, true)
}

// ClearPortalCookie expires the session cookie.
func ClearPortalCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(PortalCookie, "", -1, "/", "", c.Request.TLS != nil, true)
}
