package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-talent-marketplace/internal/interface/http"
	"github.com/oksasatya/go-talent-marketplace/internal/interface/middleware"
)

// ProfileModule
// Public: GET /api/profile/search, GET /api/profile/:id
// Protected: POST /api/profile, POST /api/profile/portfolio
type ProfileModule struct {
	Handler *handlers.ProfileHandler
	Tokens  middleware.TokenVerifier
	Redis   *redis.Client
}

func NewProfileModule(h *handlers.ProfileHandler, tokens middleware.TokenVerifier, rdb *redis.Client) *ProfileModule {
	return &ProfileModule{Handler: h, Tokens: tokens, Redis: rdb}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	rg.GET("/profile/search", m.Handler.Search)
	rg.GET("/profile/:id", m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Tokens))
	{
		auth.POST("/profile", m.Handler.Create)
		auth.POST("/profile/portfolio",
			middleware.RateLimit(m.Redis, 20, time.Minute, middleware.KeyByUserID(), nil),
			m.Handler.UploadPortfolio)
	}
}
