package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorageDriverS3    = "s3"
	StorageDriverMinio = "minio"
	StorageDriverLocal = "local"
)

type (
	APP struct {
		Name           string
		Host           string
		Port           string
		Env            string
		Version        string
		JWTSecret      string
		TokenTTL       time.Duration
		CookieName     string
		CORSOrigins    []string
		MaxUploadBytes int64
		LogLevel       string
		LogFile        string
	}
	DB struct {
		User     string
		Password string
		Name     string
		Host     string
		Port     string
	}
	Storage struct {
		Driver          string
		BucketResources string
		Endpoint        string
		Region          string
		AccessKeyID     string
		SecretAccessKey string
		UseSSL          bool
		// PublicBaseURL overrides the URL prefix objects are served from.
		PublicBaseURL string
		// ObjectACL is an optional canned ACL such as public-read. Leave it
		// empty for buckets that enforce owner-only object ownership.
		ObjectACL string
		LocalRoot string
	}
	MQ struct {
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		QueueName    string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	Tracing struct {
		Enabled     bool
		Endpoint    string
		Insecure    bool
		SampleRatio float64
	}

	Config struct {
		App     APP
		DB      DB
		Storage Storage
		MQ      MQ
		Redis   Redis
		Tracing Tracing
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return def
	}
	return v
}

func getEnvBool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(getEnv(key, ""))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func getEnvFloat(key string, def float64) float64 {
	f, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return def
	}
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func getEnvList(key string, def []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func Load() Config {
	app := APP{
		Name:           getEnv("SERVICE_NAME", "eduxchange"),
		Host:           getEnv("SERVICE_HOST", ""),
		Port:           getEnv("SERVICE_PORT", "8080"),
		Env:            getEnv("SERVICE_ENV", ""),
		Version:        getEnv("SERVICE_VERSION", "dev"),
		JWTSecret:      getEnv("SERVICE_JWT_SECRET", ""),
		TokenTTL:       getEnvDuration("SERVICE_TOKEN_TTL", 24*time.Hour),
		CookieName:     getEnv("SERVICE_SESSION_COOKIE", "edx_session"),
		CORSOrigins:    getEnvList("SERVICE_CORS_ORIGINS", []string{"http://localhost:3000"}),
		MaxUploadBytes: int64(getEnvInt("SERVICE_MAX_UPLOAD_MB", 50)) << 20,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFile:        getEnv("LOG_FILE", ""),
	}
	db := DB{
		User:     getEnv("POSTGRES_USER", ""),
		Password: getEnv("POSTGRES_PASSWORD", ""),
		Name:     getEnv("POSTGRES_DB", ""),
		Host:     getEnv("POSTGRES_HOST", ""),
		Port:     getEnv("POSTGRES_PORT", "5432"),
	}
	storage := Storage{
		Driver:          strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverLocal)),
		BucketResources: getEnv("STORAGE_BUCKET_RESOURCES", "resources"),
		Endpoint:        getEnv("STORAGE_ENDPOINT", ""),
		Region:          getEnv("STORAGE_REGION", "us-east-1"),
		AccessKeyID:     getEnv("STORAGE_ACCESS_KEY_ID", ""),
		SecretAccessKey: getEnv("STORAGE_SECRET_ACCESS_KEY", ""),
		UseSSL:          getEnvBool("STORAGE_USE_SSL", true),
		PublicBaseURL:   strings.TrimRight(getEnv("STORAGE_PUBLIC_BASE_URL", ""), "/"),
		ObjectACL:       strings.TrimSpace(getEnv("STORAGE_OBJECT_ACL", "")),
		LocalRoot:       getEnv("STORAGE_LOCAL_ROOT", "./uploads"),
	}
	mq := MQ{
		User:         getEnv("RABBITMQ_USER", ""),
		Password:     getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:        getEnv("RABBITMQ_VHOST", ""),
		Host:         getEnv("RABBITMQ_HOST", ""),
		AmqpPort:     getEnv("RABBITMQ_AMQP_PORT", "5672"),
		Exchange:     getEnv("RABBITMQ_EXCHANGE", "eduxchange.resources"),
		ExchangeType: getEnv("RABBITMQ_EXCHANGE_TYPE", "direct"),
		QueueName:    getEnv("RABBITMQ_QUEUE_NAME", "eduxchange.resources.events"),
	}
	redis := Redis{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}
	tracing := Tracing{
		Enabled:     getEnvBool("OTEL_ENABLED", false),
		Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		Insecure:    getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", false),
		SampleRatio: getEnvFloat("OTEL_SAMPLER_RATIO", 0.1),
	}

	return Config{
		App:     app,
		DB:      db,
		Storage: storage,
		MQ:      mq,
		Redis:   redis,
		Tracing: tracing,
	}
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s@%s:%s/%s",
		url.UserPassword(c.DB.User, c.DB.Password).String(),
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	), nil
}

// MQEnabled reports whether resource events go to a broker.
func (c Config) MQEnabled() bool { return c.MQ.Host != "" }

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}

func (c Config) Validate() error {
	if c.App.JWTSecret == "" {
		return fmt.Errorf("SERVICE_JWT_SECRET is required")
	}
	switch c.Storage.Driver {
	case StorageDriverLocal:
	case StorageDriverS3, StorageDriverMinio:
		if c.Storage.AccessKeyID == "" || c.Storage.SecretAccessKey == "" {
			return fmt.Errorf("storage driver %q requires access key and secret", c.Storage.Driver)
		}
		if c.Storage.Driver == StorageDriverMinio && c.Storage.Endpoint == "" {
			return fmt.Errorf("storage driver minio requires STORAGE_ENDPOINT")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}
