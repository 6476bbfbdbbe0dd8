package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"inkpost/config"
	"inkpost/controllers"
	"inkpost/handlers"
	"inkpost/middleware"
	"inkpost/routes"
	"inkpost/services"
	"inkpost/utils"

	_ "inkpost/docs"
)

const shutdownTimeout = 10 * time.Second

var skipMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not migrate the store on startup")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer s.close(context.Background())

	if !skipMigrate {
		if err := s.migrate(ctx); err != nil {
			return err
		}
	}

	hub := services.NewHubService(logger)
	defer hub.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(cfg, s, hub, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Str("driver", cfg.StoreDriver).Msg("server starting")
		logger.Info().Msgf("swagger docs available at http://localhost:%s/swagger/index.html", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("gracefully shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error shutting down the server")
		return err
	}
	logger.Info().Msg("http server shut down")
	return nil
}

// newRouter wires services, controllers and middleware over the given stores.
func newRouter(cfg *config.Config, s *stores, hub *services.HubService, log zerolog.Logger) *gin.Engine {
	jwt := utils.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	blogService := services.NewBlogService(s.blogs, s.users, hub, log)
	userService := services.NewUserService(s.users, log)
	authService := services.NewAuthService(s.users, jwt, log)

	r := gin.New()
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	routes.SetupRoutes(r, jwt, routes.Controllers{
		Auth:      controllers.NewAuthController(authService, userService, cfg.CookieSecure, log),
		Blogs:     controllers.NewBlogController(blogService, log),
		Users:     controllers.NewUserController(userService, cfg.CookieSecure, log),
		WebSocket: handlers.NewWebSocketHandler(hub, cfg.CORSAllowedOrigins, log),
	})
	return r
}
