package employee

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
	employees := r.Group("/employees")

	employees.Use(middleware.AuthMiddleware())

	{
		employees.GET("", middleware.Authorize(authzService, authz.ResourceEmployees, authz.ActionView), h.GetAll)
		employees.POST("", middleware.Authorize(authzService, authz.ResourceEmployees, authz.ActionCreate), h.Create)
		employees.GET("/me", middleware.Authorize(authzService, authz.ResourceEmployees, authz.ActionView), h.GetMe)
		employees.GET("/options", middleware.Authorize(authzService, authz.ResourceEmployees, authz.ActionViewAll), h.GetOptions)
		employees.GET("/deleted", middleware.Authorize(authzService, authz.ResourceEmployees, authz.ActionViewAll), h.GetDeleted)
		employees.GET("/statistics", middleware.Authorize(authzService, authz.ResourceEmployees, authz.ActionViewAll), h.GetStatistics)
		employees.GET("/number/:number", middleware.Authorize(authzService, authz.ResourceEmployees, authz.ActionView), h.GetByNumber)
		employees.GET("/department/:departmentId", middleware.Authorize(authzService, authz.ResourceEmployees, authz.ActionViewDepartment), h.GetByDepartment)
		employees.GET("/:id", middleware.Authorize(authzService, authz.ResourceEmployees, authz.ActionView), h.GetById)
		employees.PUT("/:id", middleware.Authorize(authzService, authz.ResourceEmployees, authz.ActionUpdate), h.Update)
		employees.DELETE("/:id", middleware.Authorize(authzService, authz.ResourceEmployees, authz.ActionDelete), h.Delete)
		employees.POST("/:id/restore", middleware.Authorize(authzService, authz.ResourceEmployees, authz.ActionRestore), h.Restore)
		employees.PUT("/:id/status", middleware.Authorize(authzService, authz.ResourceEmployees, authz.ActionUpdate), h.UpdateStatus)
		employees.POST("/:id/terminate", middleware.Authorize(authzService, authz.ResourceEmployees, authz.ActionUpdate), h.Terminate)
		employees.GET("/:id/managers", middleware.Authorize(authzService, authz.ResourceEmployees, authz.ActionView), h.GetManagers)
		employees.GET("/:id/direct-reports", middleware.Authorize(authzService, authz.ResourceEmployees, authz.ActionView), h.GetDirectReports)
		employees.GET("/:id/emergency-contacts", middleware.Authorize(authzService, authz.ResourceEmployees, authz.ActionView), h.ListContacts)
		employees.POST("/:id/emergency-contacts", middleware.Authorize(authzService, authz.ResourceEmployees, authz.ActionUpdate), h.AddContact)
		employees.PUT("/:id/emergency-contacts/:contactId", middleware.Authorize(authzService, authz.ResourceEmployees, authz.ActionUpdate), h.UpdateContact)
		employees.DELETE("/:id/emergency-contacts/:contactId", middleware.Authorize(authzService, authz.ResourceEmployees, authz.ActionUpdate), h.DeleteContact)
	}
}
