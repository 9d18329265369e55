package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/shelkesanchit/Suvidha-sub000/internal/models"
	appErrors "github.com/shelkesanchit/Suvidha-sub000/pkg/errors"
	"github.com/shelkesanchit/Suvidha-sub000/pkg/response"
)

// RequireRoles enforces role-based access control for admin routes.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		claims := CurrentUser(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// DepartmentAccess blocks staff from acting outside their own vertical.
// SUPERADMIN passes everywhere. Must run after JWT and Department.
func DepartmentAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := CurrentUser(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		dept := CurrentDepartment(c)
		if dept == "" || !claims.CanAccess(dept) {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "no access to this department"))
			c.Abort()
			return
		}
		c.Next()
	}
}
