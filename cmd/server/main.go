package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"crm-backend/internal/auth"
	"crm-backend/internal/config"
	"crm-backend/internal/database"
	"crm-backend/internal/handlers"
	"crm-backend/internal/middleware"
	"crm-backend/internal/repository"
	"crm-backend/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if cfg.DBDriver == "postgres" {
		if err := database.AddIndexes(database.GetDB()); err != nil {
			log.Fatalf("Failed to add indexes: %v", err)
		}
	}

	db := database.GetDB()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrgRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	documentRepo := repository.NewDocumentRepository(db)

	// Initialize auth components
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)
	resolver := auth.NewResolver(tokens, userRepo, orgRepo, profileRepo)

	// Initialize services
	authService := services.NewAuthService(userRepo, orgRepo, profileRepo, tokens)
	orgService := services.NewOrgService(orgRepo, profileRepo)
	userService := services.NewUserService(userRepo, profileRepo)
	leadService := services.NewLeadService(leadRepo, profileRepo)
	teamService := services.NewTeamService(teamRepo, profileRepo)
	documentService := services.NewDocumentService(documentRepo, teamRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	orgHandler := handlers.NewOrgHandler(orgService)
	userHandler := handlers.NewUserHandler(userService)
	leadHandler := handlers.NewLeadHandler(leadService)
	teamHandler := handlers.NewTeamHandler(teamService)
	documentHandler := handlers.NewDocumentHandler(documentService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "CRM API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	api.Use(middleware.ResolveContext(resolver))
	{
		// Auth routes (public except me/password)
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", authHandler.Signup)
			authGroup.POST("/login", authHandler.Login)
			authGroup.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
			authGroup.POST("/password", middleware.RequireAuth(), authHandler.ChangePassword)
		}

		// Organization routes (protected)
		orgs := api.Group("/org")
		orgs.Use(middleware.RequireAuth())
		{
			orgs.POST("", orgHandler.CreateOrg)
			orgs.GET("", orgHandler.ListOrgs)
			orgs.GET("/profile", orgHandler.GetProfile)
		}

		// User administration routes (org admin only)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth(), middleware.RequireOrgAdmin())
		{
			users.GET("", userHandler.ListUsers)
			users.POST("", userHandler.CreateUser)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		// Password reset allows self-service, so it sits outside the
		// org-admin gate; authorization happens in the service.
		api.POST("/users/:id/password", middleware.RequireAuth(), userHandler.ResetPassword)

		// Lead routes (protected)
		leads := api.Group("/leads")
		leads.Use(middleware.RequireAuth())
		{
			leads.GET("", leadHandler.ListLeads)
			leads.POST("", leadHandler.CreateLead)
			leads.GET("/:id", leadHandler.GetLead)
			leads.PUT("/:id", leadHandler.UpdateLead)
			leads.DELETE("/:id", leadHandler.DeleteLead)
			leads.POST("/:id/comments", leadHandler.AddComment)
			leads.POST("/:id/attachments", leadHandler.AddAttachment)
		}

		// Company routes (protected)
		companies := api.Group("/companies")
		companies.Use(middleware.RequireAuth())
		{
			companies.GET("", leadHandler.ListCompanies)
			companies.POST("", leadHandler.CreateCompany)
		}

		// Team routes (protected)
		teams := api.Group("/teams")
		teams.Use(middleware.RequireAuth())
		{
			teams.GET("", teamHandler.ListTeams)
			teams.POST("", teamHandler.CreateTeam)
			teams.GET("/users", teamHandler.GetTeamsAndUsers)
			teams.GET("/:id", teamHandler.GetTeam)
			teams.PUT("/:id", teamHandler.UpdateTeam)
			teams.DELETE("/:id", teamHandler.DeleteTeam)
		}

		// Document routes (protected)
		documents := api.Group("/documents")
		documents.Use(middleware.RequireAuth())
		{
			documents.GET("", documentHandler.ListDocuments)
			documents.POST("", documentHandler.CreateDocument)
			documents.GET("/:id", documentHandler.GetDocument)
			documents.PUT("/:id", documentHandler.UpdateDocument)
			documents.DELETE("/:id", documentHandler.DeleteDocument)
		}
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
