package routes

import (
	"time"

	"grievance-portal-backend/internal/api/handlers"
	"grievance-portal-backend/internal/api/middleware"
	"grievance-portal-backend/internal/auth"
	"grievance-portal-backend/internal/config"
	"grievance-portal-backend/internal/mailer"
	"grievance-portal-backend/internal/realtime"
	"grievance-portal-backend/internal/repository"
	"grievance-portal-backend/internal/service"
	"grievance-portal-backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config, hub *realtime.Hub) *gin.Engine {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg))

	// Initialize validator
	validator := validator.New()

	// Initialize repositories
	organizationRepo := repository.NewOrganizationRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	userRepo := repository.NewUserRepository(db)
	grievanceRepo := repository.NewGrievanceRepository(db)
	txManager := repository.NewTxManager(db)

	// Initialize collaborators
	authService := auth.NewService(cfg.JWTSecret)
	smtpMailer := mailer.NewSMTP(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})
	uploader := storage.NewLocalStore(cfg.UploadDir, cfg.UploadBaseURL)

	// Initialize services
	organizationService := service.NewOrganizationService(organizationRepo, validator)
	departmentService := service.NewDepartmentService(departmentRepo, userRepo, txManager, validator)
	roleService := service.NewRoleService(roleRepo, userRepo, txManager, validator)
	userService := service.NewUserService(
		userRepo, organizationRepo, roleRepo, departmentRepo, txManager,
		authService, smtpMailer, time.Duration(cfg.OTPTTLMinutes)*time.Minute, validator,
	)
	grievanceService := service.NewGrievanceService(
		grievanceRepo, departmentRepo, userRepo, txManager, uploader, hub, validator,
	)

	// Initialize auth middleware
	authMiddleware := auth.NewMiddleware(authService, userRepo, roleRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	organizationHandler := handlers.NewOrganizationHandler(organizationService)
	departmentHandler := handlers.NewDepartmentHandler(departmentService)
	roleHandler := handlers.NewRoleHandler(roleService)
	userHandler := handlers.NewUserHandler(userService)
	grievanceHandler := handlers.NewGrievanceHandler(grievanceService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Realtime notification broadcast
	router.GET("/ws/notifications", gin.WrapH(hub))

	v1 := router.Group("/api/v1")
	{
		// Public routes: organization onboarding and sign-in
		organizations := v1.Group("/organizations")
		{
			organizations.POST("", organizationHandler.Create)
			organizations.POST("/update", organizationHandler.Update)
		}

		users := v1.Group("/users")
		{
			users.POST("/login", userHandler.Login)
			users.POST("/generate-otp", userHandler.GenerateOTP)
			users.POST("/create-super-admin", userHandler.CreateSuperAdmin)

			authed := users.Group("", authMiddleware.RequireAuth())
			{
				authed.GET("/profile", userHandler.Profile)
				authed.PATCH("/profile/update", userHandler.UpdateProfile)
				authed.POST("/check-username", userHandler.CheckUsername)
				authed.POST("/check-email", userHandler.CheckEmail)
				authed.POST("/check-employee-id", userHandler.CheckEmployeeID)

				authed.POST("/create", authMiddleware.RequirePermission(auth.PermCreateUser), userHandler.Create)
				authed.GET("/details/:id", authMiddleware.RequirePermission(auth.PermViewUser), userHandler.Details)
				authed.PATCH("/update/:id", authMiddleware.RequirePermission(auth.PermUpdateUser), userHandler.Update)
				authed.DELETE("/delete/:id", authMiddleware.RequirePermission(auth.PermDeleteUser), userHandler.Delete)
			}
		}

		roles := v1.Group("/roles", authMiddleware.RequireAuth())
		{
			roles.GET("/reset-permissions", roleHandler.ResetPermissions)
			roles.POST("/create", authMiddleware.RequirePermission(auth.PermCreateRole), roleHandler.Create)
			roles.PATCH("/update/:id", authMiddleware.RequirePermission(auth.PermUpdateRole), roleHandler.Update)
			roles.DELETE("/delete/:id", authMiddleware.RequirePermission(auth.PermDeleteRole), roleHandler.Delete)
			roles.GET("/details/:id", authMiddleware.RequirePermission(auth.PermViewRole), roleHandler.Details)
			roles.POST("/all", authMiddleware.RequirePermission(auth.PermViewRole), roleHandler.All)
		}

		departments := v1.Group("/departments", authMiddleware.RequireAuth())
		{
			departments.POST("/create", authMiddleware.RequirePermission(auth.PermCreateDepartment), departmentHandler.Create)
			departments.PATCH("/update/:id", authMiddleware.RequirePermission(auth.PermUpdateDepartment), departmentHandler.Update)
			departments.DELETE("/delete/:id", authMiddleware.RequirePermission(auth.PermDeleteDepartment), departmentHandler.Delete)
			departments.GET("/details/:id", departmentHandler.Details)
			departments.GET("", departmentHandler.List)
		}

		grievances := v1.Group("/grievances", authMiddleware.RequireAuth())
		{
			grievances.POST("/create", grievanceHandler.Create)
			grievances.PUT("/update/:id", grievanceHandler.Update)
			grievances.DELETE("/delete/:id", authMiddleware.RequirePermission(auth.PermDeleteGrievance), grievanceHandler.Delete)
			grievances.GET("/get/:id", grievanceHandler.Get)
		}
	}

	return router
}
