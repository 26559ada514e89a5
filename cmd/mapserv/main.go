package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/geoforge/mapserv/internal/config"
	"github.com/geoforge/mapserv/internal/layer"
	"github.com/geoforge/mapserv/internal/logging"
	"github.com/geoforge/mapserv/internal/render"
	"github.com/geoforge/mapserv/internal/wms"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("mapserv %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("mapserv - WMS map rendering server")
			fmt.Println()
			fmt.Println("Usage: mapserv [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Configuration is read from config.yaml in the working")
			fmt.Println("directory or ./configs, and from MAPSERV_-prefixed")
			fmt.Println("environment variables (e.g. MAPSERV_SERVER_PORT).")
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)
	slog.Info("starting", "version", Version, "commit", GitCommit)

	svc, err := buildService(cfg)
	if err != nil {
		log.Fatalf("build service: %v", err)
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		AppName:      "mapserv",
	})
	app.Use(recover.New())

	wms.SetupRoutes(app, svc)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("WMS server starting", "addr", addr, "layers", len(cfg.Layers))
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}

func buildService(cfg *config.Config) (*wms.Service, error) {
	defs := make([]layer.Definition, 0, len(cfg.Layers))
	styles := make(map[string]render.Style, len(cfg.Layers))
	for _, lc := range cfg.Layers {
		defs = append(defs, layer.Definition{Name: lc.Name, Title: lc.Title, Path: lc.Path})
		style, err := render.NewStyle(lc.Style.Stroke, lc.Style.Fill, lc.Style.StrokeWidth, lc.Style.PointRadius)
		if err != nil {
			return nil, fmt.Errorf("layer %s: %w", lc.Name, err)
		}
		styles[lc.Name] = style
	}

	registry, err := layer.NewRegistry(defs)
	if err != nil {
		return nil, err
	}

	return wms.NewService(registry, layer.NewCache(), styles, wms.ServiceOptions{
		Title:     cfg.Map.Title,
		SRS:       cfg.Map.SRS,
		Antialias: cfg.Map.Antialias,
		Graticule: cfg.Map.Graticule,
	}), nil
}
