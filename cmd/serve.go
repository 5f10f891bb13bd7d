package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"beammp-manager/core/loader"
	"beammp-manager/core/logger"
	"beammp-manager/core/middleware/auth"
	"beammp-manager/core/middleware/rayid"
	"beammp-manager/core/schedule"
	"beammp-manager/core/watch"

	"beammp-manager/feature/instance"
	"beammp-manager/feature/integrity"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "beammp-manager/docs/swagger"
)

// @title BeamMP Manager API
// @version 1.0
// @description API for installing, updating and running a BeamMP server.
// @host localhost:8080
// @BasePath /

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the management API",
	Long: `Starts the HTTP API and initializes all enabled features. The periodic update
check and the instance directory watcher run alongside it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Configuration, logger and lifecycle manager
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.close()
		logg := rt.logger.With(zap.String("server", rt.cfg.Instance.ServerID))

		if err := rt.cfg.Server.Validate(); err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// 2. Services
		svc := instance.NewService(rt.manager, rt.versions, rt.authoritative(), rt.history, logg)
		check := integrity.NewService(rt.manager, rt.authoritative(), rt.storage, rt.cfg.Storage, rt.db, logg)

		// 3. Fiber app
		app, loaded, err := newApp(logg, rt.cfg.Server.ApiKey,
			instance.NewFeature(svc),
			integrity.NewFeature(check),
		)
		if err != nil {
			return err
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		// 4. Scheduler
		sched := schedule.New(logg)
		if spec := rt.cfg.Schedule.UpdateCheck; spec != "" {
			autoUpdate := rt.cfg.Schedule.AutoUpdate
			if err := sched.Add("update-check", spec, func(ctx context.Context) error {
				return svc.ScheduledCheck(ctx, autoUpdate)
			}); err != nil {
				return err
			}
		}
		sched.Start()
		defer sched.Stop()

		// 5. Directory watcher
		layout := rt.manager.Layout()
		if err := os.MkdirAll(layout.Dir, 0o755); err != nil {
			return err
		}
		watcher := watch.New(layout.Dir, []string{layout.Executable, layout.ConfigFile}, rt.manager.Refresh, logg)
		if err := watcher.Start(ctx); err != nil {
			logg.Warn("Instance directory watcher disabled", zap.String("dir", layout.Dir), zap.Error(err))
		}
		defer watcher.Close()

		// 6. Listen
		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("address", rt.cfg.Server.Address()))
			errCh <- app.Listen(rt.cfg.Server.Address())
		}()

		// 7. Graceful shutdown
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sig)

		select {
		case err := <-errCh:
			return err
		case <-sig:
		}

		logg.Info("Shutting down server...")
		shutdownCtx, stop := context.WithTimeout(context.Background(), rt.cfg.Server.ShutdownTimeout())
		defer stop()
		if err := svc.Shutdown(shutdownCtx); err != nil {
			logg.Warn("Game server did not exit before the shutdown timeout", zap.Error(err))
		}
		return app.ShutdownWithContext(shutdownCtx)
	},
}

// newApp builds the HTTP app. Swagger is the only route mounted ahead of
// the auth middleware.
func newApp(logg *zap.Logger, apiKey string, features ...loader.Feature) (*fiber.App, []string, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	mgr := loader.NewManager()
	for _, f := range features {
		mgr.Register(f)
	}

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

	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Use(auth.New(auth.Config{ApiKey: apiKey}))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	loaded, err := mgr.LoadAll(app)
	if err != nil {
		return nil, nil, err
	}
	return app, loaded, nil
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
