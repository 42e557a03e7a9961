package location

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
	locations := r.Group("/locations")

	locations.Use(middleware.AuthMiddleware())

	{
		locations.GET("", middleware.Authorize(authzService, authz.ResourceLocations, authz.ActionView), h.GetAll)
		locations.POST("", middleware.Authorize(authzService, authz.ResourceLocations, authz.ActionCreate), h.Create)
		locations.GET("/headquarters", middleware.Authorize(authzService, authz.ResourceLocations, authz.ActionView), h.GetHeadquarters)
		locations.GET("/countries", middleware.Authorize(authzService, authz.ResourceLocations, authz.ActionView), h.GetCountries)
		locations.GET("/:id", middleware.Authorize(authzService, authz.ResourceLocations, authz.ActionView), h.GetById)
		locations.PUT("/:id", middleware.Authorize(authzService, authz.ResourceLocations, authz.ActionUpdate), h.Update)
		locations.DELETE("/:id", middleware.Authorize(authzService, authz.ResourceLocations, authz.ActionDelete), h.Delete)
		locations.POST("/:id/headquarters", middleware.Authorize(authzService, authz.ResourceLocations, authz.ActionUpdate), h.SetHeadquarters)
		locations.GET("/:id/statistics", middleware.Authorize(authzService, authz.ResourceLocations, authz.ActionView), h.GetStatistics)
	}
}
