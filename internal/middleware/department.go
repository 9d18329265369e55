package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/shelkesanchit/Suvidha-sub000/internal/models"
	appErrors "github.com/shelkesanchit/Suvidha-sub000/pkg/errors"
	"github.com/shelkesanchit/Suvidha-sub000/pkg/response"
)

// ContextDepartmentKey is the gin context key storing the resolved department.
const ContextDepartmentKey = "currentDepartment"

// Department resolves the :dept path segment into a Department and rejects
// unknown verticals before any handler runs.
func Department() gin.HandlerFunc {
	return func(c *gin.Context) {
		dept, err := models.ParseDepartment(c.Param("dept"))
		if err != nil {
			response.Error(c, appErrors.ErrUnknownDepartment)
			c.Abort()
			return
		}
		c.Set(ContextDepartmentKey, dept)
		c.Next()
	}
}

// CurrentDepartment returns the department resolved by Department.
func CurrentDepartment(c *gin.Context) models.Department {
	value, ok := c.Get(ContextDepartmentKey)
	if !ok {
		return ""
	}
	dept, ok := value.(models.Department)
	if !ok {
		return ""
	}
	return dept
}
