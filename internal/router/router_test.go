package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-talent-marketplace/config"
	"github.com/oksasatya/go-talent-marketplace/internal/container"
	"github.com/oksasatya/go-talent-marketplace/pkg/helpers"
)

func newEngine(t *testing.T, enforce bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		AppName:             "talent-marketplace",
		Env:                 "test",
		JWTSecret:           "router-secret",
		JWTTTL:              time.Hour,
		BcryptCost:          bcrypt.MinCost,
		EnforceReferences:   enforce,
		CORSAllowedOrigins:  "*",
		AuthRateLimitPerMin: 10,
		DebugMetricsEnabled: true,
	}
	c := container.New(cfg, helpers.NewDiscardLogger())
	c.UseMemoryStorage()
	return NewEngine(c)
}

func call(t *testing.T, r http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestEngine_ScenarioWithoutReferenceChecks(t *testing.T) {
	r := newEngine(t, false)

	w := call(t, r, http.MethodPost, "/api/auth/register", gin.H{"name": "Ann", "email": "ann@x.com", "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var ann struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ann))

	w = call(t, r, http.MethodPost, "/api/auth/login", gin.H{"email": "ann@x.com", "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	token := w.Header().Get("Authorization")
	require.NotEmpty(t, token)

	w = call(t, r, http.MethodPost, "/api/hire", gin.H{"talentId": "T1", "projectDetails": "Build a site", "budget": 500}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var hire map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &hire))
	assert.Equal(t, ann.ID, hire["clientId"])
}

func TestEngine_ReferenceChecks(t *testing.T) {
	r := newEngine(t, true)

	call(t, r, http.MethodPost, "/api/auth/register", gin.H{"name": "Ann", "email": "ann@x.com", "password": "secret123"}, "")
	w := call(t, r, http.MethodPost, "/api/auth/login", gin.H{"email": "ann@x.com", "password": "secret123"}, "")
	token := w.Header().Get("Authorization")

	w = call(t, r, http.MethodPost, "/api/hire", gin.H{"talentId": "T1", "projectDetails": "Build a site"}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Talent not found")
}

func TestEngine_ServiceRoutes(t *testing.T) {
	r := newEngine(t, true)

	w := call(t, r, http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = call(t, r, http.MethodGet, "/api/debug/vars", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "memstats")

	w = call(t, r, http.MethodGet, "/api/profile/does-not-exist", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEngine_CORSExposesAuthorization(t *testing.T) {
	r := newEngine(t, true)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Authorization")
}

func TestRegistry_MountsModulesUnderBasePath(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := NewRegistry(gin.New(), "/api")
	reg.Add(moduleFunc(func(rg *gin.RouterGroup) {
		rg.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	}), nil)
	reg.RegisterAll()

	assert.Equal(t, []string{"GET /api/ping"}, reg.Routes())

	w := httptest.NewRecorder()
	reg.Engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.Equal(t, "pong", w.Body.String())
}

type moduleFunc func(rg *gin.RouterGroup)

func (f moduleFunc) Register(rg *gin.RouterGroup) { f(rg) }

func clientIPFor(t *testing.T, cfg *config.Config, remoteAddr string, headers map[string]string) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	configureClientIP(r, container.New(cfg, helpers.NewDiscardLogger()))
	r.GET("/ip", func(c *gin.Context) { c.String(http.StatusOK, c.ClientIP()) })

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.RemoteAddr = remoteAddr
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Body.String()
}

func TestConfigureClientIP(t *testing.T) {
	spoof := map[string]string{"X-Real-IP": "10.0.0.7", "X-Forwarded-For": "203.0.113.1", "CF-Connecting-IP": "203.0.113.2"}

	// nothing trusted by default
	assert.Equal(t, "198.51.100.9", clientIPFor(t, &config.Config{JWTSecret: "s"}, "198.51.100.9:1000", spoof))

	// invalid proxy list falls back to trusting none
	assert.Equal(t, "198.51.100.9", clientIPFor(t, &config.Config{JWTSecret: "s", TrustedProxies: "not-an-ip"}, "198.51.100.9:1000", spoof))

	behindLB := &config.Config{JWTSecret: "s", TrustedProxies: "10.0.0.0/8"}
	assert.Equal(t, "203.0.113.1", clientIPFor(t, behindLB, "10.1.1.1:1000", map[string]string{"X-Forwarded-For": "203.0.113.1"}))

	cloudflare := &config.Config{JWTSecret: "s", TrustedPlatform: "cloudflare"}
	assert.Equal(t, "203.0.113.2", clientIPFor(t, cloudflare, "198.51.100.9:1000", spoof))
}
