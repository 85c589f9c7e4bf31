package middleware

import (
	"log"
	"strconv"
	"time"

	"skillsync/internal/pkg/metrics"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

type AccessLogMiddleware struct {
	logger *log.Logger
}

func NewAccessLogMiddleware(logger *log.Logger) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &AccessLogMiddleware{logger: logger}
}

// Middleware must wrap the error middleware so the logged status is the rendered one.
func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)

		err := c.Next()

		status := c.Response().StatusCode()
		method := c.Method()
		metrics.HTTPRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()

		user := "-"
		if id, ok := UserID(c); ok {
			user = id.String()
		}

		if m != nil && m.logger != nil {
			m.logger.Printf(
				"HTTP access | rid=%s ip=%s method=%s path=%s status=%d latency=%s user=%s resp_bytes=%d ua=%q",
				rid, c.IP(), method, c.OriginalURL(), status, time.Since(start), user,
				len(c.Response().Body()), c.Get("User-Agent"),
			)
		}

		return err
	}
}
