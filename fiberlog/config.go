package fiberlog

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Config настройки логирования запросов
type Config struct {
	// Logger по умолчанию logrus.StandardLogger()
	Logger *logrus.Logger
	// Tags поля записи лога, см. Tag*
	Tags []string
	// Skip запросы, которые не пишутся в лог
	Skip func(c *fiber.Ctx) bool
}

var ConfigDefault = Config{
	Tags: []string{
		TagMethod,
		TagPath,
		TagStatus,
		TagLatency,
		RequestID,
	},
	Skip: func(c *fiber.Ctx) bool {
		return c.Method() == fiber.MethodOptions
	},
}

func configDefault(config ...Config) Config {
	if len(config) == 0 {
		return ConfigDefault
	}
	cfg := config[0]
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	if len(cfg.Tags) == 0 {
		cfg.Tags = ConfigDefault.Tags
	}
	if cfg.Skip == nil {
		cfg.Skip = ConfigDefault.Skip
	}
	return cfg
}
