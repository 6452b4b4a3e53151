package main

import (
	"context"
	"os"
	"time"

	"tonotes/config"
	"tonotes/filestore"
	"tonotes/handler"
	"tonotes/middleware"
	"tonotes/repository"
	"tonotes/services"
	"tonotes/usecase"
	"tonotes/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type repositories struct {
	notes    usecase.NoteRepository
	users    usecase.UserRepository
	sessions usecase.SessionRepository
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	if err := utils.InitLogger(cfg.Server.Debug); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer utils.Logger.Sync()

	utils.InitValidator()

	if err := services.InitTokens(cfg.Auth.SecretKey, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL); err != nil {
		utils.Logger.Fatal("token configuration invalid", zap.Error(err))
	}

	repos, cleanup, err := openStorage(cfg)
	if err != nil {
		utils.Logger.Fatal("failed to open storage", zap.Error(err))
	}
	defer cleanup()

	if cfg.Redis.Enabled {
		blacklist, err := services.NewTokenBlacklist(cfg.Redis.URL)
		if err != nil {
			utils.Logger.Fatal("failed to connect to Redis", zap.Error(err))
		}
		services.TokenBlacklist = blacklist
		defer blacklist.Close()
	}

	uploads, err := services.NewUploadStore(cfg.Upload.Dir, cfg.Upload.BaseURL)
	if err != nil {
		utils.Logger.Fatal("failed to prepare upload directory", zap.Error(err))
	}

	router := setupRouter(cfg, repos, uploads)

	utils.Logger.Info("server starting",
		zap.String("port", cfg.Server.Port),
		zap.String("storage", cfg.Storage.Backend))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		utils.Logger.Fatal("server stopped", zap.Error(err))
	}
}

func openStorage(cfg *config.Config) (*repositories, func(), error) {
	if cfg.Storage.Backend == "file" {
		store, err := filestore.Open(cfg.Storage.DataFile)
		if err != nil {
			return nil, nil, err
		}
		repos := &repositories{notes: store, users: store, sessions: store}
		return repos, func() { store.Close() }, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := utils.ConnectMongo(ctx, utils.MongoSettings{
		URI:             cfg.Mongo.URI,
		MaxPoolSize:     cfg.Mongo.MaxPoolSize,
		MinPoolSize:     cfg.Mongo.MinPoolSize,
		MaxConnIdleTime: cfg.Mongo.MaxConnIdleTime(),
		RetryWrites:     cfg.Mongo.RetryWrites,
	})
	if err != nil {
		return nil, nil, err
	}

	if err := repository.SetupIndexes(client.Database(cfg.Mongo.Database)); err != nil {
		return nil, nil, err
	}

	repos := &repositories{
		notes:    repository.GetNotesRepo(client, cfg.Mongo.Database),
		users:    repository.GetUserRepo(client, cfg.Mongo.Database),
		sessions: repository.GetSessionRepo(client, cfg.Mongo.Database),
	}
	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			utils.Logger.Warn("failed to disconnect MongoDB", zap.Error(err))
		}
	}
	return repos, cleanup, nil
}

func setupRouter(cfg *config.Config, repos *repositories, uploads *services.UploadStore) *gin.Engine {
	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	noteService := &usecase.NoteService{NoteRepo: repos.notes, UserRepo: repos.users}
	userService := &usecase.UserService{UserRepo: repos.users, NoteRepo: repos.notes}
	moderationService := &usecase.ModerationService{NoteRepo: repos.notes}

	notes := &handler.NotesHandler{Notes: noteService, Uploads: uploads}
	users := &handler.UserHandler{Users: userService}
	auth := &handler.AuthHandler{Users: userService, Sessions: repos.sessions}
	sessions := &handler.SessionHandler{Sessions: repos.sessions}
	moderation := &handler.ModerationHandler{Moderation: moderationService}
	stats := &handler.StatsHandler{NoteRepo: repos.notes, UserRepo: repos.users}

	router := gin.New()
	router.Use(
		middleware.CORSMiddleware(),
		middleware.MetricsMiddleware(),
		middleware.RecoveryMiddleware(),
	)

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		utils.MethodNotAllowed(c, "method not allowed")
	})
	router.NoRoute(func(c *gin.Context) {
		utils.NotFound(c, "route not found")
	})

	router.GET("/health", func(c *gin.Context) {
		utils.Success(c, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.Static(cfg.Upload.BaseURL, cfg.Upload.Dir)

	api := router.Group("/api")
	{
		api.GET("/notes", notes.GetFeed)
		api.GET("/notedetail", notes.GetNoteDetail)
		api.GET("/search", notes.Search)
		api.POST("/comment", notes.AddComment)
		api.GET("/user", users.GetUser)
		api.POST("/follow", users.Follow)
		api.DELETE("/follow", users.Unfollow)
		api.GET("/follow", users.IsFollowing)
		api.POST("/register", auth.Register)
		api.POST("/login", auth.Login)
		api.POST("/token/refresh", auth.Refresh)
	}

	authed := api.Group("", middleware.AuthMiddleware())
	{
		authed.POST("/notes/publish", notes.Publish)
		authed.PUT("/user", users.UpdateUser)
		authed.POST("/logout", auth.Logout)
		authed.GET("/sessions", sessions.GetSessions)
		authed.POST("/user/2fa/enable", auth.EnableTwoFactor)
		authed.POST("/user/2fa/disable", auth.DisableTwoFactor)
	}

	admin := api.Group("", middleware.AuthMiddleware(), middleware.AdminOnly())
	{
		admin.GET("/travelogues", moderation.Queue)
		admin.POST("/travelogues", moderation.Approve)
		admin.PUT("/travelogues", moderation.Reject)
		admin.DELETE("/travelogues", moderation.Delete)
		admin.GET("/stats", stats.GetStats)
	}

	return router
}
