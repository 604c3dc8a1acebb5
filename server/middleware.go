package shopserver

import (
	"strings"

	"github.com/gin-gonic/gin"

	userdomain "github.com/myjhye/shop/internal/domains/users/domain"
	userports "github.com/myjhye/shop/internal/domains/users/ports"
	apierrors "github.com/myjhye/shop/internal/shared/errors"
)

const contextUserKey = "shop.current_user"

// NewAuthMiddleware resolves the bearer token to an account and stores it on
// the request context. Requests without a live session are rejected.
func NewAuthMiddleware(users userports.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			respondProblem(c, apierrors.ErrUnauthorized.WithDetail("missing bearer token"))
			c.Abort()
			return
		}
		user, err := users.Authenticate(c.Request.Context(), token)
		if err != nil {
			respondProblem(c, apierrors.ErrUnauthorized.WithDetail("invalid or expired session"))
			c.Abort()
			return
		}
		c.Set(contextUserKey, user)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

// currentUser returns the authenticated account set by the auth middleware.
func currentUser(c *gin.Context) (*userdomain.User, bool) {
	value, ok := c.Get(contextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*userdomain.User)
	return user, ok
}

func mustCurrentUser(c *gin.Context) (*userdomain.User, bool) {
	user, ok := currentUser(c)
	if !ok || user == nil {
		respondProblem(c, apierrors.ErrUnauthorized.WithDetail("authentication required"))
		c.Abort()
		return nil, false
	}
	return user, true
}
