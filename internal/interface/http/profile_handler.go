package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-talent-marketplace/internal/application"
	"github.com/oksasatya/go-talent-marketplace/internal/interface/middleware"
	"github.com/oksasatya/go-talent-marketplace/pkg/apperror"
	"github.com/oksasatya/go-talent-marketplace/pkg/response"
)

// MaxPortfolioBytes caps a single portfolio upload.
const MaxPortfolioBytes = 10 << 20

type ProfileHandler struct {
	Profiles *application.ProfileService
	Logger   *logrus.Logger
}

func NewProfileHandler(profiles *application.ProfileService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Profiles: profiles, Logger: logger}
}

// Create POST /api/profile (auth required). The owner is the caller, never the body.
func (h *ProfileHandler) Create(c *gin.Context) {
	var req application.CreateProfileInput
	if !bindJSON(c, h.Logger, &req) {
		return
	}
	p, err := h.Profiles.Create(c.Request.Context(), middleware.UserIDFrom(c), req)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// Get GET /api/profile/:id where id is the owning user's id.
func (h *ProfileHandler) Get(c *gin.Context) {
	p, err := h.Profiles.GetByUserID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// Search GET /api/profile/search?q=&availability=&experienceLevel=&size=
func (h *ProfileHandler) Search(c *gin.Context) {
	var req application.SearchInput
	if err := c.ShouldBindQuery(&req); err != nil {
		writeError(c, h.Logger, apperror.NewValidation("query", "invalid query parameters"))
		return
	}
	res, err := h.Profiles.Search(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// UploadPortfolio POST /api/profile/portfolio (auth required), multipart field "file".
func (h *ProfileHandler) UploadPortfolio(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxPortfolioBytes+(1<<20))
	fh, err := c.FormFile("file")
	if err != nil {
		writeError(c, h.Logger, apperror.NewValidation("file", "file is required"))
		return
	}
	if fh.Size > MaxPortfolioBytes {
		writeError(c, h.Logger, apperror.NewValidation("file", "file must be at most 10MB"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Profiles.UploadPortfolio(c.Request.Context(), middleware.UserIDFrom(c), fh.Filename, fh.Header.Get("Content-Type"), f)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"url": url})
}
