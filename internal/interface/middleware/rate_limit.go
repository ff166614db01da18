package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-talent-marketplace/pkg/response"
)

// ipFromCtx extracts the client IP from Gin context, falling back to "unknown"
func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

func normalizePath(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return c.Request.URL.Path
}

// KeyFunc builds a rate-limit key from the request.
type KeyFunc func(c *gin.Context) string

// KeyByIP limits by client IP only.
func KeyByIP() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:ip:" + ipFromCtx(c)
	}
}

// KeyByIPAndPath limits each route separately per client IP, so login attempts
// do not eat into the registration budget.
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:path:" + normalizePath(c) + ":ip:" + ipFromCtx(c)
	}
}

// KeyByUserID limits authenticated callers per account; use after Auth.
func KeyByUserID() KeyFunc {
	return func(c *gin.Context) string {
		uid := UserIDFrom(c)
		if uid == "" {
			return "rl:user:anon:ip:" + ipFromCtx(c)
		}
		return "rl:user:" + uid
	}
}

// INCR and start the window on the first hit, atomically.
// Returns {count, remaining window in ms}.
var incrExpireScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("PTTL", KEYS[1])}
`)

type AllowFunc func(*gin.Context) bool // return true for bypass limit

// RateLimit is a fixed-window limiter backed by Redis.
// It sets X-RateLimit-* headers, skips OPTIONS and fails open when Redis errors.
// A nil client disables limiting.
func RateLimit(rdb *redis.Client, max int, window time.Duration, keyFn KeyFunc, allow AllowFunc) gin.HandlerFunc {
	if rdb == nil || max <= 0 || window <= 0 || keyFn == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if allow != nil && allow(c) {
			c.Next()
			return
		}

		if strings.EqualFold(c.Request.Method, http.MethodOptions) {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := keyFn(c)

		res, err := incrExpireScript.Run(ctx, rdb, []string{key}, window.Milliseconds()).Slice()
		if err != nil {
			c.Next()
			return
		}
		count, pttl, ok := parseWindowReply(res)
		if !ok {
			c.Next()
			return
		}
		if !applyWindow(c, max, count, pttl) {
			return
		}
		c.Next()
	}
}

// parseWindowReply reads the script's {count, pttl} reply.
func parseWindowReply(res []any) (count, pttl int, ok bool) {
	if len(res) != 2 {
		return 0, 0, false
	}
	return toInt(res[0]), toInt(res[1]), true
}

// applyWindow writes the X-RateLimit-* headers for a window state and aborts with
// 429 once count exceeds max. It reports whether the request may proceed.
func applyWindow(c *gin.Context, max, count, pttl int) bool {
	resetSec := 0
	if pttl > 0 {
		resetSec = (pttl + 999) / 1000
	}
	remaining := max - count
	if remaining < 0 {
		remaining = 0
	}
	c.Header("X-RateLimit-Limit", strconv.Itoa(max))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
	c.Header("X-RateLimit-Reset", strconv.Itoa(resetSec))

	if count > max {
		if resetSec > 0 {
			c.Header("Retry-After", strconv.Itoa(resetSec))
		}
		response.Error(c, http.StatusTooManyRequests, "Too many requests", nil)
		return false
	}
	return true
}

func toInt(v any) int {
	switch x := v.(type) {
	case int64:
		return int(x)
	case int:
		return x
	case string:
		i, _ := strconv.Atoi(x)
		return i
	}
	return 0
}
