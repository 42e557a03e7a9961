package jobtitle

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
	titles := r.Group("/job-titles")

	titles.Use(middleware.AuthMiddleware())

	{
		titles.GET("", middleware.Authorize(authzService, authz.ResourceJobTitles, authz.ActionView), h.GetAll)
		titles.POST("", middleware.Authorize(authzService, authz.ResourceJobTitles, authz.ActionCreate), h.Create)
		titles.GET("/levels", middleware.Authorize(authzService, authz.ResourceJobTitles, authz.ActionView), h.GetLevels)
		titles.GET("/code/:code", middleware.Authorize(authzService, authz.ResourceJobTitles, authz.ActionView), h.GetByCode)
		titles.GET("/:id", middleware.Authorize(authzService, authz.ResourceJobTitles, authz.ActionView), h.GetById)
		titles.PUT("/:id", middleware.Authorize(authzService, authz.ResourceJobTitles, authz.ActionUpdate), h.Update)
		titles.DELETE("/:id", middleware.Authorize(authzService, authz.ResourceJobTitles, authz.ActionDelete), h.Delete)
		titles.POST("/:id/toggle-active", middleware.Authorize(authzService, authz.ResourceJobTitles, authz.ActionUpdate), h.ToggleActive)
		titles.GET("/:id/statistics", middleware.Authorize(authzService, authz.ResourceJobTitles, authz.ActionView), h.GetStatistics)
	}
}
