package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-talent-marketplace/internal/interface/http"
	"github.com/oksasatya/go-talent-marketplace/internal/interface/middleware"
)

// AuthModule registers the public credential endpoints.
type AuthModule struct {
	Handler     *handlers.AuthHandler
	Redis       *redis.Client
	LimitPerMin int
}

func NewAuthModule(h *handlers.AuthHandler, rdb *redis.Client, limitPerMin int) *AuthModule {
	return &AuthModule{Handler: h, Redis: rdb, LimitPerMin: limitPerMin}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// per IP and route, so failed logins do not block registration
	limiter := middleware.RateLimit(m.Redis, m.LimitPerMin, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", limiter, m.Handler.Register)
	rg.POST("/auth/login", limiter, m.Handler.Login)
}
