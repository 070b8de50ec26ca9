package middleware

import (
	"errors"
	"legal_aid_backend/internal/config"
	"legal_aid_backend/internal/model"
	"legal_aid_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("account", claims)
		c.Next()
	}
}

func RoleMiddleware(roles ...model.AccountRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetAccountFromContext(c)
		if claims == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}

		util.Forbidden(c)
		c.Abort()
	}
}

// GraceChecker deactivates unsupervised juniors whose grace window lapsed.
type GraceChecker interface {
	CheckGracePeriod(accountID uint) error
}

// GracePeriodMiddleware gates every authenticated request from a junior.
// A lapsed account is flagged inactive and the request rejected; there is no
// background job doing this.
func GracePeriodMiddleware(checker GraceChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetAccountFromContext(c)
		if claims == nil || claims.Role != model.Junior {
			c.Next()
			return
		}

		if err := checker.CheckGracePeriod(claims.AccountID); err != nil {
			if errors.Is(err, util.ErrGracePeriodExpired) {
				util.Error(c, 403, err.Error())
			} else {
				util.InternalServerError(c)
			}
			c.Abort()
			return
		}

		c.Next()
	}
}

type AccountActivityRepo interface {
	UpdateLastActive(accountID uint) error
}

func ActivityMiddleware(repo AccountActivityRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetAccountFromContext(c)
		if claims != nil {
			// Async update, keeps the request path unblocked.
			go repo.UpdateLastActive(claims.AccountID)
		}
		c.Next()
	}
}
