package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-talent-marketplace/internal/application"
	"github.com/oksasatya/go-talent-marketplace/pkg/response"
)

type AuthHandler struct {
	Users  *application.UserService
	Logger *logrus.Logger
}

func NewAuthHandler(users *application.UserService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Users: users, Logger: logger}
}

type loginResponse struct {
	Token string `json:"token"`
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req application.RegisterInput
	if !bindJSON(c, h.Logger, &req) {
		return
	}
	u, err := h.Users.Register(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, u)
}

// Login POST /api/auth/login
// The token is returned in the body and mirrored in the Authorization response header.
func (h *AuthHandler) Login(c *gin.Context) {
	var req application.LoginInput
	if !bindJSON(c, h.Logger, &req) {
		return
	}
	res, err := h.Users.Login(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.Header("Authorization", res.Token)
	response.JSON(c, http.StatusOK, loginResponse{Token: res.Token})
}
