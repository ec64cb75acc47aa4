package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"snipe-netbox-sync/core/loader"
	"snipe-netbox-sync/core/logger"
	"snipe-netbox-sync/core/middleware/auth"
	"snipe-netbox-sync/core/middleware/rayid"
	"snipe-netbox-sync/feature/inventory"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "snipe-netbox-sync/docs/swagger"
)

// @title Snipe-IT NetBox Sync API
// @version 1.0
// @description Reconciles Snipe-IT inventory into NetBox.
// @host localhost:8080
// @BasePath /

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the sync API server",
	Long:  `Starts the HTTP server exposing sync triggers, run history and snapshots.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync()
		logg := a.logger

		if err := a.cfg.Server.Validate(); err != nil {
			return err
		}
		if a.cfg.Server.ApiKey == "" {
			logg.Warn("No API key configured, the API is not protected")
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		mgr := loader.NewManager()
		handler := inventory.NewHandler(a.service, a.cfg.Sync.Policy(), logg)
		mgr.Register(inventory.NewFeature(handler))

		// RayID must be first to trace everything
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger stays public
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey}))

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			return err
		}
		logg.Info("Loaded features", zap.Strings("features", loaded))

		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("port", a.cfg.Server.Port))
			errCh <- app.Listen(a.cfg.Server.Addr())
		}()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logg.Info("Shutting down server...")
		timeout := time.Duration(a.cfg.Server.ShutdownSeconds) * time.Second
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
