package department

import (
	"go-hrm/internal/authz"
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	authzService authz.Service,
) {
	departments := r.Group("/departments")

	departments.Use(middleware.AuthMiddleware())

	{
		departments.GET("", middleware.Authorize(authzService, authz.ResourceDepartments, authz.ActionView), h.GetAll)
		departments.POST("", middleware.Authorize(authzService, authz.ResourceDepartments, authz.ActionCreate), h.Create)
		departments.GET("/tree", middleware.Authorize(authzService, authz.ResourceDepartments, authz.ActionView), h.GetTree)
		departments.GET("/without-manager", middleware.Authorize(authzService, authz.ResourceDepartments, authz.ActionView), h.GetWithoutManager)
		departments.GET("/code/:code", middleware.Authorize(authzService, authz.ResourceDepartments, authz.ActionView), h.GetByCode)
		departments.GET("/:id", middleware.Authorize(authzService, authz.ResourceDepartments, authz.ActionView), h.GetById)
		departments.PUT("/:id", middleware.Authorize(authzService, authz.ResourceDepartments, authz.ActionUpdate), h.Update)
		departments.DELETE("/:id", middleware.Authorize(authzService, authz.ResourceDepartments, authz.ActionDelete), h.Delete)
		departments.POST("/:id/move", middleware.Authorize(authzService, authz.ResourceDepartments, authz.ActionUpdate), h.Move)
		departments.POST("/:id/toggle-active", middleware.Authorize(authzService, authz.ResourceDepartments, authz.ActionUpdate), h.ToggleActive)
		departments.POST("/:id/manager", middleware.Authorize(authzService, authz.ResourceDepartments, authz.ActionUpdate), h.SetManager)
		departments.GET("/:id/ancestors", middleware.Authorize(authzService, authz.ResourceDepartments, authz.ActionView), h.GetAncestors)
		departments.GET("/:id/descendants", middleware.Authorize(authzService, authz.ResourceDepartments, authz.ActionView), h.GetDescendants)
		departments.GET("/:id/statistics", middleware.Authorize(authzService, authz.ResourceDepartments, authz.ActionView), h.GetStatistics)
	}
}
