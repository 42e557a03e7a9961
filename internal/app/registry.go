package app

import (
	"go-hrm/internal/authz"
	"go-hrm/internal/company"
	"go-hrm/internal/department"
	"go-hrm/internal/employee"
	"go-hrm/internal/jobtitle"
	"go-hrm/internal/location"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/middleware"
	"go-hrm/internal/shared/counter"
	"go-hrm/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	companyRepo := company.NewRepository(db)
	locationRepo := location.NewRepository(db)
	departmentRepo := department.NewRepository(db)
	jobTitleRepo := jobtitle.NewRepository(db)
	employeeRepo := employee.NewRepository(db)
	userRepo := user.NewRepository(db)
	counterRepo := counter.NewRepository(db)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Authorization ---
	authzService, err := authz.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	companyService := company.NewService(db, companyRepo, logger)
	locationService := location.NewService(db, locationRepo, logger)
	departmentService := department.NewService(db, departmentRepo, rdb, logger)
	jobTitleService := jobtitle.NewService(db, jobTitleRepo, rdb, logger)
	employeeService := employee.NewService(db, employeeRepo, userRepo, counterRepo, outboxRepo, authzService, rdb, logger)

	// --- Handlers ---
	companyHandler := company.NewHandler(companyService)
	locationHandler := location.NewHandler(locationService)
	departmentHandler := department.NewHandler(departmentService)
	jobTitleHandler := jobtitle.NewHandler(jobTitleService)
	employeeHandler := employee.NewHandler(employeeService)

	// --- Routes ---
	router.Use(middleware.ContextLogger(logger))

	api := router.Group("/api/v1")
	{
		company.RegisterRoutes(api, companyHandler, authzService)
		location.RegisterRoutes(api, locationHandler, authzService)
		department.RegisterRoutes(api, departmentHandler, authzService)
		jobtitle.RegisterRoutes(api, jobTitleHandler, authzService)
		employee.RegisterRoutes(api, employeeHandler, authzService)
	}

	return nil
}
