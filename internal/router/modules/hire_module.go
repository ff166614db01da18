package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-talent-marketplace/internal/interface/http"
	"github.com/oksasatya/go-talent-marketplace/internal/interface/middleware"
)

// HireModule
// Public: POST /api/hire-requests (names both parties in the body)
// Protected: POST /api/hire, GET /api/hire
//
// ENFORCE_REFERENCES defaults to true: both create routes answer 404 "Client not found" or
// "Talent not found" for ids that are not registered users. Set it to false to store
// arbitrary ids (e.g. legacy talent ids such as "T1") as given.
type HireModule struct {
	Handler *handlers.HireHandler
	Tokens  middleware.TokenVerifier
}

func NewHireModule(h *handlers.HireHandler, tokens middleware.TokenVerifier) *HireModule {
	return &HireModule{Handler: h, Tokens: tokens}
}

func (m *HireModule) Register(rg *gin.RouterGroup) {
	rg.POST("/hire-requests", m.Handler.Submit)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Tokens))
	{
		auth.POST("/hire", m.Handler.Create)
		auth.GET("/hire", m.Handler.List)
	}
}
