package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/clubhub/clubhub-api/docs"
	v1 "github.com/clubhub/clubhub-api/internal/api/handler/v1"
	"github.com/clubhub/clubhub-api/internal/api/middleware"
	"github.com/clubhub/clubhub-api/internal/cache"
	"github.com/clubhub/clubhub-api/internal/config"
	"github.com/clubhub/clubhub-api/internal/events"
	"github.com/clubhub/clubhub-api/internal/repository"
	"github.com/clubhub/clubhub-api/internal/repository/dao"
	"github.com/clubhub/clubhub-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
	Broker *events.Broker
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
		Broker: events.NewBroker(),
	}

	go s.Broker.Run()

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	clubHandler := s.initClubHandler(db)
	electionHandler := s.initElectionHandler(db)
	eventsHandler := s.initEventsHandler(db)
	s.MountHandlers(authHandler, userHandler, clubHandler, electionHandler, eventsHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initClubHandler(db *gorm.DB) *v1.ClubHandler {
	clubDAO := dao.NewClubDAO(db)
	repo := repository.NewClubRepository(clubDAO)
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewClubService(repo, userRepo)
	uSvc := service.NewUserService(userRepo)
	handler := v1.NewClubHandler(svc, uSvc)

	return handler
}

func (s *Server) initElectionHandler(db *gorm.DB) *v1.ElectionHandler {
	electionDAO := dao.NewElectionDAO(db)
	repo := repository.NewElectionRepository(electionDAO)
	clubRepo := repository.NewClubRepository(dao.NewClubDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))

	// The results cache is optional. A nil cache means every read hits
	// the database.
	var resultsCache service.ResultsCache
	if s.Config.Redis != nil && s.Config.Redis.Enabled {
		resultsCache = cache.NewResultsCache(s.Config.Redis)
	}

	svc := service.NewElectionService(repo, clubRepo, userRepo, s.Broker, resultsCache)
	uSvc := service.NewUserService(userRepo)
	handler := v1.NewElectionHandler(svc, uSvc)

	return handler
}

func (s *Server) initEventsHandler(db *gorm.DB) *v1.EventsHandler {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	uSvc := service.NewUserService(userRepo)
	handler := v1.NewEventsHandler(s.Broker, uSvc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(authHandler *v1.AuthHandler, userHandler *v1.UserHandler, clubHandler *v1.ClubHandler, electionHandler *v1.ElectionHandler, eventsHandler *v1.EventsHandler) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	users := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		users.GET("/users/:userID", userHandler.HandleGetUser)
	}

	clubs := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		clubs.POST("/clubs", clubHandler.HandleCreateClub)
		clubs.GET("/clubs", clubHandler.HandleListClubs)
		clubs.GET("/clubs/:clubID", clubHandler.HandleGetClub)
		clubs.POST("/clubs/:clubID/join", clubHandler.HandleJoinClub)
		clubs.GET("/clubs/:clubID/members", clubHandler.HandleListMembers)
		clubs.POST("/clubs/:clubID/members/:userID/approve", clubHandler.HandleApproveMember)
	}

	elections := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		elections.POST("/elections", electionHandler.HandleCreateElection)
		elections.GET("/elections", electionHandler.HandleListElections)
		elections.GET("/elections/feed", eventsHandler.HandleFeed)
		elections.GET("/elections/:electionID", electionHandler.HandleGetElection)
		elections.DELETE("/elections/:electionID", electionHandler.HandleDeleteElection)
		elections.POST("/elections/:electionID/roles", electionHandler.HandleAddRole)
		elections.GET("/elections/:electionID/roles", electionHandler.HandleListRoles)
		elections.DELETE("/elections/:electionID/roles/:roleID", electionHandler.HandleRemoveRole)
		elections.POST("/elections/:electionID/applications", electionHandler.HandleApply)
		elections.GET("/elections/:electionID/applications", electionHandler.HandleListApplications)
		elections.GET("/elections/:electionID/applications/me", electionHandler.HandleGetMyApplication)
		elections.POST("/elections/:electionID/applications/:applicationID/review", electionHandler.HandleReviewApplication)
		elections.POST("/elections/:electionID/candidates", electionHandler.HandleAddCandidate)
		elections.POST("/elections/:electionID/votes", electionHandler.HandleCastVote)
		elections.GET("/elections/:electionID/voted", electionHandler.HandleHasVoted)
		elections.GET("/elections/:electionID/results", electionHandler.HandleGetResults)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "ClubHub API"
	docs.SwaggerInfo.Description = "Club management platform with elections for club roles."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
