package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-talent-marketplace/internal/application"
	"github.com/oksasatya/go-talent-marketplace/internal/infrastructure/memory"
	"github.com/oksasatya/go-talent-marketplace/internal/interface/middleware"
	"github.com/oksasatya/go-talent-marketplace/pkg/helpers"
	"github.com/oksasatya/go-talent-marketplace/pkg/validation"
)

type stubStorage struct{}

func (stubStorage) Upload(_ context.Context, folder, owner, filename, _ string, r io.Reader) (string, error) {
	_, _ = io.Copy(io.Discard, r)
	return "https://storage.googleapis.com/test/" + folder + "/" + owner + "/" + filename, nil
}

type testServer struct {
	engine   *gin.Engine
	profiles *application.ProfileService
	hires    *application.HireService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := helpers.NewDiscardLogger()
	v := validation.New()
	jwt := helpers.NewJWTManager("handler-secret", time.Hour)
	userRepo := memory.NewUserRepository()

	users := application.NewUserService(userRepo, helpers.NewPasswordHasher(bcrypt.MinCost), jwt, v, nil, nil, logger)
	profiles := application.NewProfileService(memory.NewProfileRepository(), userRepo, v, logger)
	hires := application.NewHireService(memory.NewHireRequestRepository(), userRepo, v, logger)

	auth := NewAuthHandler(users, logger)
	ph := NewProfileHandler(profiles, logger)
	hh := NewHireHandler(hires, logger)

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	api := r.Group("/api")
	api.POST("/auth/register", auth.Register)
	api.POST("/auth/login", auth.Login)
	api.GET("/profile/search", ph.Search)
	api.GET("/profile/:id", ph.Get)
	api.POST("/hire-requests", hh.Submit)
	api.GET("/health", NewHealthHandler(map[string]Check{
		"storage": func(context.Context) error { return nil },
	}).Health)

	protected := api.Group("/")
	protected.Use(middleware.Auth(jwt))
	protected.POST("/profile", ph.Create)
	protected.POST("/profile/portfolio", ph.UploadPortfolio)
	protected.POST("/hire", hh.Create)
	protected.GET("/hire", hh.List)

	return &testServer{engine: r, profiles: profiles, hires: hires}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) (*httptest.ResponseRecorder, []byte) {
	t.Helper()
	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w, w.Body.Bytes()
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func (s *testServer) registerAndLogin(t *testing.T, name, email string) (string, string) {
	t.Helper()
	w, raw := s.do(t, http.MethodPost, "/api/auth/register", gin.H{"name": name, "email": email, "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, w.Code, string(raw))
	id := decode[map[string]any](t, raw)["id"].(string)

	w, raw = s.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": email, "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, w.Code, string(raw))
	return id, decode[map[string]string](t, raw)["token"]
}

func TestRegisterLoginHire_Scenario(t *testing.T) {
	s := newTestServer(t)
	s.hires.EnforceReferences = false

	w, raw := s.do(t, http.MethodPost, "/api/auth/register", gin.H{"name": "Ann", "email": "ann@x.com", "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	user := decode[map[string]any](t, raw)
	annID, _ := user["id"].(string)
	assert.NotEmpty(t, annID)
	assert.Equal(t, "ann@x.com", user["email"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, string(raw), "$2a$")

	w, raw = s.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "ann@x.com", "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	token := decode[map[string]string](t, raw)["token"]
	require.NotEmpty(t, token)
	assert.Equal(t, token, w.Header().Get("Authorization"))

	w, raw = s.do(t, http.MethodPost, "/api/hire", gin.H{"talentId": "T1", "projectDetails": "Build a site", "budget": 500}, token)
	require.Equal(t, http.StatusOK, w.Code, string(raw))
	hire := decode[map[string]any](t, raw)
	assert.Equal(t, annID, hire["clientId"])
	assert.Equal(t, "T1", hire["talentId"])
	assert.Equal(t, "Build a site", hire["projectDetails"])
	assert.Equal(t, 500.0, hire["budget"])
}

func TestLogin_Errors(t *testing.T) {
	s := newTestServer(t)
	s.registerAndLogin(t, "Ann", "ann@x.com")

	w, raw := s.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "nobody@x.com", "password": "secret123"}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", decode[map[string]any](t, raw)["message"])

	w, raw = s.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "ann@x.com", "password": "nope-nope"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid credentials", decode[map[string]any](t, raw)["message"])
	assert.Empty(t, w.Header().Get("Authorization"))
}

func TestRegister_DuplicateAndBadJSON(t *testing.T) {
	s := newTestServer(t)
	s.registerAndLogin(t, "Ann", "ann@x.com")

	w, raw := s.do(t, http.MethodPost, "/api/auth/register", gin.H{"name": "Ann", "email": "ann@x.com", "password": "secret123"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[map[string]any](t, raw)
	assert.Equal(t, "Email already registered", body["message"])
	assert.Equal(t, false, body["success"])

	w, raw = s.do(t, http.MethodPost, "/api/auth/register", `{"name": "Ann",`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, decode[map[string]any](t, raw)["message"])
}

func TestAccessGuard_OnHireRoutes(t *testing.T) {
	s := newTestServer(t)

	w, raw := s.do(t, http.MethodGet, "/api/hire", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Access Denied", decode[map[string]any](t, raw)["message"])

	w, raw = s.do(t, http.MethodPost, "/api/hire", gin.H{"talentId": "T1", "projectDetails": "x"}, "tampered.token.value")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid Token", decode[map[string]any](t, raw)["message"])
}

func TestHireList_OnlyCallerRequests(t *testing.T) {
	s := newTestServer(t)
	s.hires.EnforceReferences = false
	annID, annToken := s.registerAndLogin(t, "Ann", "ann@x.com")
	_, bobToken := s.registerAndLogin(t, "Bob", "bob@x.com")

	for i := 0; i < 3; i++ {
		w, _ := s.do(t, http.MethodPost, "/api/hire", gin.H{"talentId": "T1", "projectDetails": "bob project"}, bobToken)
		require.Equal(t, http.StatusOK, w.Code)
	}
	w, _ := s.do(t, http.MethodPost, "/api/hire", gin.H{"talentId": "T2", "projectDetails": "ann project"}, annToken)
	require.Equal(t, http.StatusOK, w.Code)

	w, raw := s.do(t, http.MethodGet, "/api/hire", nil, annToken)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]map[string]any](t, raw)
	require.Len(t, list, 1)
	assert.Equal(t, annID, list[0]["clientId"])

	_, carolToken := s.registerAndLogin(t, "Carol", "carol@x.com")
	w, raw = s.do(t, http.MethodGet, "/api/hire", nil, carolToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", string(raw))
}

func TestSubmitHireRequest_ValidationOnlyVariant(t *testing.T) {
	s := newTestServer(t)
	s.hires.EnforceReferences = false

	w, raw := s.do(t, http.MethodPost, "/api/hire-requests", gin.H{"clientId": "C1", "talentId": "T1", "details": "123456789"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "details must be at least 10 characters long", decode[map[string]any](t, raw)["message"])

	w, raw = s.do(t, http.MethodPost, "/api/hire-requests", gin.H{"clientId": "C1", "talentId": "T1", "details": "1234567890"}, "")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "C1", decode[map[string]any](t, raw)["clientId"])

	w, raw = s.do(t, http.MethodPost, "/api/hire-requests", gin.H{"talentId": "T1", "details": "1234567890"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "clientId is required", decode[map[string]any](t, raw)["message"])
}

func TestProfile_CreateGetAndMissing(t *testing.T) {
	s := newTestServer(t)
	annID, token := s.registerAndLogin(t, "Ann", "ann@x.com")

	w, raw := s.do(t, http.MethodGet, "/api/profile/"+annID, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Profile not found", decode[map[string]any](t, raw)["message"])

	payload := gin.H{
		"userId":          "someone-else",
		"skills":          []string{"go", "sql"},
		"portfolio":       "https://ann.dev",
		"availability":    "Part-Time",
		"hourlyRate":      45,
		"experienceLevel": "Mid",
		"bio":             "Gopher",
	}
	w, raw = s.do(t, http.MethodPost, "/api/profile", payload, token)
	require.Equal(t, http.StatusOK, w.Code, string(raw))
	assert.Equal(t, annID, decode[map[string]any](t, raw)["userId"])

	w, raw = s.do(t, http.MethodGet, "/api/profile/"+annID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[map[string]any](t, raw)
	assert.Equal(t, "Part-Time", got["availability"])
	assert.Equal(t, []any{"go", "sql"}, got["skills"])

	w, raw = s.do(t, http.MethodPost, "/api/profile", gin.H{"skills": []string{"go"}, "portfolio": "p"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "availability is required", decode[map[string]any](t, raw)["message"])
}

func TestProfile_SearchWithoutIndexIsEmpty(t *testing.T) {
	s := newTestServer(t)

	w, raw := s.do(t, http.MethodGet, "/api/profile/search?q=go", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", string(raw))

	w, _ = s.do(t, http.MethodGet, "/api/profile/search?size=abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfile_UploadPortfolio(t *testing.T) {
	s := newTestServer(t)
	s.profiles.Storage = stubStorage{}
	annID, token := s.registerAndLogin(t, "Ann", "ann@x.com")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="cv.pdf"`)
	hdr.Set("Content-Type", "application/pdf")
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, _ = part.Write([]byte("%PDF-1.7"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/profile/portfolio", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", token)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "https://storage.googleapis.com/test/portfolios/"+annID+"/cv.pdf", decode[map[string]string](t, w.Body.Bytes())["url"])
}

func TestWriteError_UnknownErrorIsGeneric500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/boom", func(c *gin.Context) {
		writeError(c, helpers.NewDiscardLogger(), errors.New("pq: connection refused"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Server error", decode[map[string]any](t, w.Body.Bytes())["message"])
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w, raw := s.do(t, http.MethodGet, "/api/health", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, raw)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, map[string]any{"storage": "up"}, body["data"])
}
