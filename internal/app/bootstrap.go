package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"jobboard/internal/config"
	"jobboard/internal/database/migration"
	"jobboard/internal/database/seeder"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/delivery/http/routes"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func Bootstrap(cfg config.Config, container *Container) (*App, func() error, error) {
	if container == nil {
		return nil, nil, fmt.Errorf("nil container")
	}

	if err := runMigrations(cfg, container); err != nil {
		return nil, nil, err
	}
	if err := runSeeders(cfg, container); err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	registerGlobalMiddleware(f, container)

	registry := routes.NewRegistry(cfg, container.DB, container.Cache, container.Hub, container.Logger)
	registry.Register(f)

	app := &App{Fiber: f, Container: container}
	cleanup := func() error { return container.Close() }
	return app, cleanup, nil
}

func runMigrations(cfg config.Config, container *Container) error {
	dir := strings.TrimSpace(cfg.App.MigrationsDir)
	if dir == "" {
		dir = "migrations"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	runner := migration.Runner{Dir: dir, Logger: container.Logger}
	return runner.Run(ctx, container.DB.SQLDB())
}

func runSeeders(cfg config.Config, container *Container) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	runner := seeder.Runner{Seeders: seeder.Defaults(cfg.Admin)}
	return runner.Run(ctx, container.DB)
}

func registerGlobalMiddleware(app *fiber.App, container *Container) {
	if app == nil {
		return
	}

	errMw := middleware.NewErrorMiddleware(container.Logger)
	app.Use(errMw.Middleware())
	app.Use(middleware.NewAccessLogMiddleware(container.Logger).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
