package router

import (
	"context"

	"github.com/oksasatya/go-talent-marketplace/internal/container"
	handlers "github.com/oksasatya/go-talent-marketplace/internal/interface/http"
	"github.com/oksasatya/go-talent-marketplace/internal/router/modules"
	"github.com/oksasatya/go-talent-marketplace/pkg/helpers"
)

func healthChecks(c *container.Container) map[string]handlers.Check {
	checks := map[string]handlers.Check{}
	if c.PGPool != nil {
		checks["postgres"] = func(ctx context.Context) error { return c.PGPool.Ping(ctx) }
	}
	if c.Redis != nil {
		checks["redis"] = func(ctx context.Context) error { return c.Redis.Ping(ctx).Err() }
	}
	if c.ES != nil {
		checks["elasticsearch"] = func(ctx context.Context) error { return helpers.PingES(ctx, c.ES) }
	}
	return checks
}

// InitModules builds services and handlers from the container and adds every module.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	svc := c.Services()
	cfg := c.Config

	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(healthChecks(c))))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.Users, c.Logger), c.Redis, cfg.AuthRateLimitPerMin))
	r.Add(modules.NewProfileModule(handlers.NewProfileHandler(svc.Profiles, c.Logger), c.JWT, c.Redis))
	r.Add(modules.NewHireModule(handlers.NewHireHandler(svc.Hires, c.Logger), c.JWT))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis))
	}
}
