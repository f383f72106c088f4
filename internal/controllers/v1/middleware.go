package v1

import (
	"strings"
	"time"

	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const contextUser = "user"

// Authenticate verifies the bearer token and stores the authenticated user
// in the request context.
func (co Controller) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			httputil.NewError(c, 401, errInvalidToken)
			c.Abort()
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, co.keyFunc, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid || claims.Subject == "" {
			httputil.NewError(c, 401, errInvalidToken)
			c.Abort()
			return
		}

		// Tokens minted for other purposes share the signing key but carry
		// an audience, like the Splitwise OAuth state. Only plain access
		// tokens pass here.
		if len(claims.Audience) != 0 {
			httputil.NewError(c, 401, errInvalidToken)
			c.Abort()
			return
		}

		var user models.User
		err = models.DB.Where(&models.User{Username: claims.Subject}).First(&user).Error
		if err != nil {
			httputil.NewError(c, 401, errInvalidToken)
			c.Abort()
			return
		}

		c.Set(contextUser, user)
		c.Next()
	}
}

func (co Controller) keyFunc(_ *jwt.Token) (any, error) {
	return []byte(co.Config.SecretKey), nil
}

// currentUser returns the user set by the Authenticate middleware.
func currentUser(c *gin.Context) models.User {
	return c.MustGet(contextUser).(models.User)
}

// newAccessToken issues a signed JWT for the user.
func (co Controller) newAccessToken(username string) (string, error) {
	now := time.Now().In(time.UTC)

	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(co.Config.TokenLifetime)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(co.Config.SecretKey))
}
