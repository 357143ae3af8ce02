package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/pucknotes/server/internal/app/models"
	"github.com/pucknotes/server/internal/app/services"
	jwtauth "github.com/pucknotes/server/internal/pkg/auth"
)

const accountKey = "account"

// AuthMiddleware resolves the bearer token of each request to the acting account
type AuthMiddleware struct {
	sessionService services.SessionService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(sessionService services.SessionService) *AuthMiddleware {
	return &AuthMiddleware{
		sessionService: sessionService,
	}
}

// LoadAccount never rejects a request. A missing, invalid or revoked token simply leaves
// the request anonymous and the services decide what an anonymous caller may do.
func (m *AuthMiddleware) LoadAccount() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token != "" {
			if acct := m.sessionService.CurrentAccount(c.Request.Context(), token); acct != nil {
				c.Set(accountKey, acct)
			}
		}
		c.Next()
	}
}

// BearerToken returns the token from the Authorization header, or "" when absent
func BearerToken(c *gin.Context) string {
	token, err := jwtauth.ExtractBearerToken(c.GetHeader("Authorization"))
	if err != nil {
		return ""
	}
	return token
}

// CurrentAccount returns the account loaded by LoadAccount, or nil for anonymous requests
func CurrentAccount(c *gin.Context) *models.Account {
	v, ok := c.Get(accountKey)
	if !ok {
		return nil
	}
	acct, _ := v.(*models.Account)
	return acct
}
