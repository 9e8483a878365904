package fiberlog

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// New логирование запросов api. Каждому запросу назначается идентификатор
// (из заголовка X-Request-ID или новый), он же возвращается в ответе.
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)
	logger := cfg.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	pid := os.Getpid()
	return func(c *fiber.Ctx) error {
		requestID := c.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Locals(RequestID, requestID)
		c.Set(HeaderRequestID, requestID)

		d := &data{pid: pid, start: time.Now()}
		err := c.Next()
		d.end = time.Now()
		if cfg.Skip(c) {
			return err
		}

		status := c.Response().StatusCode()
		if err != nil {
			if fiberErr, ok := err.(*fiber.Error); ok {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		entry := logger.WithFields(fields(getFuncTagMap(cfg, d), c, d))
		if err != nil {
			entry = entry.WithError(err)
		}
		message := "запрос api " + c.Route().Path
		switch {
		case status >= fiber.StatusInternalServerError:
			entry.Error(message)
		case status >= fiber.StatusBadRequest:
			entry.Warn(message)
		default:
			entry.Info(message)
		}
		return err
	}
}

// fields значения тегов, пустые строки пропускаются
func fields(tags map[string]FuncTag, c *fiber.Ctx, d *data) log.Fields {
	result := make(log.Fields, len(tags))
	for name, tag := range tags {
		value := tag(c, d)
		if str, ok := value.(string); ok && str == "" {
			continue
		}
		result[name] = value
	}
	return result
}
