package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"crm-backend/internal/auth"
	"crm-backend/internal/constants"
	"crm-backend/internal/middleware"
	"crm-backend/internal/models"
	"crm-backend/internal/repository"
	"crm-backend/internal/services"
)

// handlerTestEnv wires a full in-memory API the way cmd/server does, so
// handler tests exercise the real middleware chain and routing.
type handlerTestEnv struct {
	db     *gorm.DB
	tokens *auth.TokenIssuer
	router *gin.Engine

	authService *services.AuthService
	orgService  *services.OrgService
	userService *services.UserService
	leadService *services.LeadService
}

func setupHandlerTestEnv(t *testing.T) *handlerTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Org{},
		&models.Profile{},
		&models.Company{},
		&models.Lead{},
		&models.Comment{},
		&models.Attachment{},
		&models.Team{},
		&models.Document{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrgRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	documentRepo := repository.NewDocumentRepository(db)

	tokens := auth.NewTokenIssuer("handler-test-secret", time.Hour)
	resolver := auth.NewResolver(tokens, userRepo, orgRepo, profileRepo)

	authService := services.NewAuthService(userRepo, orgRepo, profileRepo, tokens)
	orgService := services.NewOrgService(orgRepo, profileRepo)
	userService := services.NewUserService(userRepo, profileRepo)
	leadService := services.NewLeadService(leadRepo, profileRepo)
	teamService := services.NewTeamService(teamRepo, profileRepo)
	documentService := services.NewDocumentService(documentRepo, teamRepo)

	authHandler := NewAuthHandler(authService)
	orgHandler := NewOrgHandler(orgService)
	userHandler := NewUserHandler(userService)
	leadHandler := NewLeadHandler(leadService)
	teamHandler := NewTeamHandler(teamService)
	documentHandler := NewDocumentHandler(documentService)

	gin.SetMode(gin.TestMode)
	r := gin.New()

	api := r.Group("/api")
	api.Use(middleware.ResolveContext(resolver))
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", authHandler.Signup)
			authGroup.POST("/login", authHandler.Login)
			authGroup.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
			authGroup.POST("/password", middleware.RequireAuth(), authHandler.ChangePassword)
		}

		orgs := api.Group("/org")
		orgs.Use(middleware.RequireAuth())
		{
			orgs.POST("", orgHandler.CreateOrg)
			orgs.GET("", orgHandler.ListOrgs)
			orgs.GET("/profile", orgHandler.GetProfile)
		}

		users := api.Group("/users")
		users.Use(middleware.RequireAuth(), middleware.RequireOrgAdmin())
		{
			users.GET("", userHandler.ListUsers)
			users.POST("", userHandler.CreateUser)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		api.POST("/users/:id/password", middleware.RequireAuth(), userHandler.ResetPassword)

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

		companies := api.Group("/companies")
		companies.Use(middleware.RequireAuth())
		{
			companies.GET("", leadHandler.ListCompanies)
			companies.POST("", leadHandler.CreateCompany)
		}

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

	return &handlerTestEnv{
		db:          db,
		tokens:      tokens,
		router:      r,
		authService: authService,
		orgService:  orgService,
		userService: userService,
		leadService: leadService,
	}
}

// requestOptions carries the credential headers a test wants on a request.
type requestOptions struct {
	token  string
	apiKey string
	org    string
}

func (env *handlerTestEnv) do(t *testing.T, method, path string, payload interface{}, opts requestOptions) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if opts.token != "" {
		req.Header.Set(constants.HeaderAuthorization, "Bearer "+opts.token)
	}
	if opts.apiKey != "" {
		req.Header.Set(constants.HeaderAPIKey, opts.apiKey)
	}
	if opts.org != "" {
		req.Header.Set(constants.HeaderOrg, opts.org)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// signup registers a user through the service and returns it with a token.
func (env *handlerTestEnv) signup(t *testing.T, email, password string) (*models.User, string) {
	t.Helper()

	user, err := env.authService.Signup(services.SignupInput{
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)

	token, err := env.tokens.Generate(user.ID)
	require.NoError(t, err)

	return user, token
}

// createOrg provisions a tenant through the service with the user as admin.
func (env *handlerTestEnv) createOrg(t *testing.T, name string, creator *models.User) *models.Org {
	t.Helper()

	org, err := env.orgService.CreateOrg(services.CreateOrgInput{
		Name:      name,
		CreatorID: creator.ID,
	})
	require.NoError(t, err)
	return org
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
