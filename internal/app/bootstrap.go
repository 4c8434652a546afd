package app

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"

	"profile-match/internal/delivery/http/middleware"
	"profile-match/internal/delivery/http/routes"
)

type App struct {
	Fiber *fiber.App
}

func Bootstrap(c *Container) (*App, func() error, error) {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	f.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	f.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())

	routes.NewRegistry(c.DB, c.Cache, c.Logger).Register(f)

	return &App{Fiber: f}, c.Close, nil
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
