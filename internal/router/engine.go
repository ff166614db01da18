package router

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-talent-marketplace/internal/container"
	"github.com/oksasatya/go-talent-marketplace/internal/interface/middleware"
)

// NewEngine builds the gin engine with global middleware and every module registered.
func NewEngine(c *container.Container) *gin.Engine {
	cfg := c.Config

	r := gin.New()
	configureClientIP(r, c)
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())

	origins := cfg.CORSOrigins()
	corsCfg := cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "Authorization", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	// credentials cannot be combined with a wildcard origin
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsCfg.AllowOrigins = nil
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	if cfg.Env == "development" && !cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}

	reg := NewRegistry(r, "/api")
	if cfg.HTTPLogEnabled && c.Logger != nil {
		reg.Use(middleware.AccessLog(c.Logger))
	}
	InitModules(reg, c)
	reg.RegisterAll()
	if c.Logger != nil {
		c.Logger.WithField("routes", reg.Routes()).Debug("routes registered")
	}
	return r
}

// configureClientIP makes c.ClientIP honor forwarding headers only from configured proxies.
// gin trusts every peer by default, which would let any client pick its rate-limit key.
func configureClientIP(r *gin.Engine, c *container.Container) {
	proxies := c.Config.TrustedProxyList()
	if err := r.SetTrustedProxies(proxies); err != nil {
		if c.Logger != nil {
			c.Logger.WithError(err).Warn("invalid TRUSTED_PROXIES; trusting none")
		}
		_ = r.SetTrustedProxies(nil)
	}
	switch strings.ToLower(strings.TrimSpace(c.Config.TrustedPlatform)) {
	case "":
	case "cloudflare":
		r.TrustedPlatform = gin.PlatformCloudflare
	case "google", "appengine":
		r.TrustedPlatform = gin.PlatformGoogleAppEngine
	default:
		r.TrustedPlatform = c.Config.TrustedPlatform
	}
}
