package middleware

import (
	"net/http"

	"go-hrm/internal/authz"
	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Authorize gates a route on a single permission. Entity-level company
// scoping happens later, in the service, against the loaded record; this
// middleware only answers "may this role ever perform this action".
func Authorize(svc authz.Service, res authz.Resource, act authz.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Missing auth context", nil)
			c.Abort()
			return
		}

		allowed, err := svc.Can(actor, res, act)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, err.Error(), nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
				"You do not have permission to access this resource",
				authz.Permission(res, act),
			)
			c.Abort()
			return
		}

		c.Next()
	}
}
