package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lanovatechnologie-a11y/Lotato/internal/models"
	"github.com/lanovatechnologie-a11y/Lotato/internal/services"
	"github.com/lanovatechnologie-a11y/Lotato/internal/utils"
)

const (
	// ContextClaims is the gin context key for the verified token claims.
	ContextClaims = "claims"
	// ContextAccount is the gin context key for the re-checked account.
	ContextAccount = "account"
)

// AuthMiddleware resolves the caller identity on every protected request:
// extract bearer token, refuse denylisted tokens, verify the signature and
// re-check the account against the store. Tokens are stateless, so the
// active flag must be re-read here rather than trusted from the claims.
type AuthMiddleware struct {
	tokens   *utils.TokenManager
	denylist *services.DenylistService
	db       *gorm.DB
}

func NewAuthMiddleware(tokens *utils.TokenManager, denylist *services.DenylistService, db *gorm.DB) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, denylist: denylist, db: db}
}

func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := utils.ExtractToken(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(err.Error()))
			c.Abort()
			return
		}

		if m.denylist != nil {
			isDenylisted, err := m.denylist.IsDenylisted(c.Request.Context(), tokenString)
			if err != nil {
				c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to check token status"))
				c.Abort()
				return
			}
			if isDenylisted {
				c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Token has been revoked"))
				c.Abort()
				return
			}
		}

		claims, err := m.tokens.Validate(tokenString)
		if err != nil {
			status := "Invalid token"
			if errors.Is(err, utils.ErrTokenExpired) {
				status = "Token has expired"
			}
			c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(status))
			c.Abort()
			return
		}

		var account models.Account
		if err := m.db.First(&account, claims.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Account not found"))
			c.Abort()
			return
		}
		if !account.IsActive {
			c.JSON(http.StatusForbidden, utils.NewErrorResponse("Account is disabled"))
			c.Abort()
			return
		}

		c.Set(ContextClaims, claims)
		c.Set(ContextAccount, account)
		c.Next()
	}
}

// GetClaims reads the verified claims set by Authenticate.
func GetClaims(c *gin.Context) (*utils.Claims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.Claims)
	return claims, ok
}

// GetAccount reads the re-checked account set by Authenticate.
func GetAccount(c *gin.Context) (models.Account, bool) {
	v, ok := c.Get(ContextAccount)
	if !ok {
		return models.Account{}, false
	}
	account, ok := v.(models.Account)
	return account, ok
}

// RequireRole rejects callers whose role differs from the expected one.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok || claims.Role != role {
			c.JSON(http.StatusForbidden, utils.NewErrorResponse("Forbidden"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSupervisorLevel rejects callers who are not supervisors of the
// exact numeric level.
func RequireSupervisorLevel(level int) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok || claims.Role != models.RoleSupervisor || claims.SupervisorLevel != level {
			c.JSON(http.StatusForbidden, utils.NewErrorResponse("Forbidden"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAnyRole admits callers holding one of the listed roles.
func RequireAnyRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if ok {
			for _, role := range roles {
				if claims.Role == role {
					c.Next()
					return
				}
			}
		}
		c.JSON(http.StatusForbidden, utils.NewErrorResponse("Forbidden"))
		c.Abort()
	}
}
