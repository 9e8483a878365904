package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"personnel" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
		PreloadDir     string `default:"" env:"DB_PRELOAD_DIR"` // csv со справочниками активов и мест службы
	}
	Auth struct {
		JWTSecret      string `default:"" env:"JWT_SECRET"`
		JWTExpireInSec int    `default:"86400" env:"JWT_EXPIRE_IN_SEC"`
	}
	S3 struct {
		Endpoint        string `default:"" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
		BucketName      string `default:"history-export" env:"S3_BUCKET_NAME"`
	}
	Export struct {
		FontDir       string `default:"static/font/" env:"EXPORT_FONT_DIR"`
		RetentionDays int    `default:"30" env:"EXPORT_RETENTION_DAYS"` // 0 - хранить без ограничения
	}
	Console ConsoleConfig
}

// ConsoleConfig настройки клиента истории (historyctl)
type ConsoleConfig struct {
	BaseURL          string `default:"http://localhost:8080/api/v1" env:"CONSOLE_BASE_URL"`
	Token            string `default:"" env:"CONSOLE_TOKEN"`
	TokenFile        string `default:"" env:"CONSOLE_TOKEN_FILE"`
	TimeoutSec       int    `default:"15" env:"CONSOLE_TIMEOUT_SEC"`
	ReconcileDelayMs int    `default:"300" env:"CONSOLE_RECONCILE_DELAY_MS"`
	PageSize         int    `default:"50" env:"CONSOLE_PAGE_SIZE"`
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
