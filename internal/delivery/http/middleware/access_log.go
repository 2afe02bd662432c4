package middleware

import (
	"log"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// Probe paths are logged only when they fail.
var quietPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

type AccessLogMiddleware struct {
	logger *log.Logger
}

func NewAccessLogMiddleware(logger *log.Logger) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &AccessLogMiddleware{logger: logger}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
			c.Set("X-Request-ID", rid)
		}

		err := c.Next()

		status := c.Response().StatusCode()
		if m == nil || m.logger == nil || (quietPaths[c.Path()] && status < fiber.StatusBadRequest) {
			return err
		}

		viewer, ok := ViewerID(c)
		if !ok {
			viewer = "-"
		}

		m.logger.Printf(
			"HTTP access | rid=%s ip=%s method=%s path=%s status=%d latency=%s viewer=%s resp_bytes=%d ua=%q",
			rid, c.IP(), c.Method(), redactToken(c.OriginalURL()), status, time.Since(start), viewer, len(c.Response().Body()), c.Get("User-Agent"),
		)
		return err
	}
}

// redactToken hides the access token the event stream accepts as a query
// parameter.
func redactToken(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.RawQuery == "" {
		return raw
	}
	q := u.Query()
	if !q.Has("token") {
		return raw
	}
	q.Set("token", "redacted")
	u.RawQuery = q.Encode()
	return u.String()
}
