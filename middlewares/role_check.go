package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tablefactory/order-app/models"
	"github.com/tablefactory/order-app/utils"
)

// RequireRoles allows the request through when the authenticated role is
// one of the listed roles. Admin passes every gate.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleInterface, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			c.Abort()
			return
		}

		role, _ := roleInterface.(string)
		if role == models.RoleAdmin {
			c.Next()
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		utils.RespondError(c, http.StatusForbidden, fmt.Errorf("%s access required", rolesLabel(roles)))
		c.Abort()
	}
}

func rolesLabel(roles []string) string {
	if len(roles) == 1 {
		return roles[0]
	}
	label := ""
	for i, role := range roles {
		if i > 0 {
			label += "/"
		}
		label += role
	}
	return label
}
