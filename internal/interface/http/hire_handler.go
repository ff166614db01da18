package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-talent-marketplace/internal/application"
	"github.com/oksasatya/go-talent-marketplace/internal/interface/middleware"
	"github.com/oksasatya/go-talent-marketplace/pkg/response"
)

type HireHandler struct {
	Hires  *application.HireService
	Logger *logrus.Logger
}

func NewHireHandler(hires *application.HireService, logger *logrus.Logger) *HireHandler {
	return &HireHandler{Hires: hires, Logger: logger}
}

// Create POST /api/hire (auth required)
func (h *HireHandler) Create(c *gin.Context) {
	var req application.CreateHireInput
	if !bindJSON(c, h.Logger, &req) {
		return
	}
	hr, err := h.Hires.Create(c.Request.Context(), middleware.UserIDFrom(c), req)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, hr)
}

// List GET /api/hire (auth required) returns only the caller's requests.
func (h *HireHandler) List(c *gin.Context) {
	list, err := h.Hires.ListForClient(c.Request.Context(), middleware.UserIDFrom(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

// Submit POST /api/hire-requests, the unauthenticated variant naming both parties.
func (h *HireHandler) Submit(c *gin.Context) {
	var req application.SubmitHireInput
	if !bindJSON(c, h.Logger, &req) {
		return
	}
	hr, err := h.Hires.Submit(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, hr)
}
