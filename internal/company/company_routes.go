package company

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
	companies := r.Group("/companies")

	companies.Use(middleware.AuthMiddleware())

	{
		companies.GET("", middleware.Authorize(authzService, authz.ResourceCompanies, authz.ActionView), h.GetAll)
		companies.POST("", middleware.Authorize(authzService, authz.ResourceCompanies, authz.ActionCreate), h.Create)
		companies.GET("/:id", middleware.Authorize(authzService, authz.ResourceCompanies, authz.ActionView), h.GetById)
		companies.PUT("/:id", middleware.Authorize(authzService, authz.ResourceCompanies, authz.ActionUpdate), h.Update)
		companies.DELETE("/:id", middleware.Authorize(authzService, authz.ResourceCompanies, authz.ActionDelete), h.Delete)
		companies.POST("/:id/toggle-active", middleware.Authorize(authzService, authz.ResourceCompanies, authz.ActionUpdate), h.ToggleActive)
		companies.GET("/:id/statistics", middleware.Authorize(authzService, authz.ResourceCompanies, authz.ActionView), h.GetStatistics)
		companies.PUT("/:id/settings", middleware.Authorize(authzService, authz.ResourceCompanies, authz.ActionManageSettings), h.UpdateSettings)
		companies.POST("/:id/settings", middleware.Authorize(authzService, authz.ResourceCompanies, authz.ActionManageSettings), h.SetSetting)
	}
}
