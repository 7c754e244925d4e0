package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	jwtpkg "github.com/inkwell-org/backend/internal/jwt"
	ormpkg "github.com/inkwell-org/backend/internal/orm"
)

const identityKey = "identity"

// UserStore is the slice of the persistence layer the middleware needs to
// provision authors on their first authenticated request.
type UserStore interface {
	SelectUserByID(id string) (*ormpkg.User, error)
	InsertUser(user *ormpkg.User) error
}

// NewAuthMiddleware verifies the bearer token, provisions the user row if it
// is the caller's first request, and stores the identity on the request
// context. Requests without a valid token are rejected with 401 before any
// handler runs.
func NewAuthMiddleware(logger *zap.Logger, jwt *jwtpkg.JWT, users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		identity, err := jwt.ParseAccessToken(token)
		if err != nil {
			logger.Warn("invalid access token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}

		if err := provisionUser(users, identity); err != nil {
			logger.Error("error provisioning user", zap.String("user_id", identity.UserID.String()), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

func provisionUser(users UserStore, identity *jwtpkg.Identity) error {
	_, err := users.SelectUserByID(identity.UserID.String())
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	err = users.InsertUser(&ormpkg.User{
		ID:    identity.UserID,
		Email: identity.Email,
		Name:  identity.Name,
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Two first requests raced; the row exists now.
		return nil
	}
	return err
}

// GetIdentity returns the authenticated identity set by the middleware.
func GetIdentity(c *gin.Context) (*jwtpkg.Identity, error) {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil, errors.New("no identity on request context")
	}
	identity, ok := value.(*jwtpkg.Identity)
	if !ok {
		return nil, errors.New("malformed identity on request context")
	}
	return identity, nil
}

// GetUserUUID returns the authenticated caller's user id.
func GetUserUUID(c *gin.Context) (uuid.UUID, error) {
	identity, err := GetIdentity(c)
	if err != nil {
		return uuid.Nil, err
	}
	return identity.UserID, nil
}
