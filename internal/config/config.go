package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is built once at startup and passed by value/pointer into every
// component. Nothing reads the environment after Load returns.
type Config struct {
	HTTPAddr           string   `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel           string   `envconfig:"LOG_LEVEL" default:"info"`
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	// Set only behind a proxy that overwrites X-Forwarded-For / X-Real-IP.
	TrustProxyHeaders bool `envconfig:"TRUST_PROXY_HEADERS" default:"false"`

	// DB
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// JWT
	JWTSecret    string `envconfig:"JWT_SECRET" required:"true"`
	JWTExpireMin int    `envconfig:"JWT_EXPIRE_MIN" default:"60"`

	WhatsApp WhatsApp
	OpenAI   OpenAI
	Redis    Redis
	Mail     Mail

	RabbitMQURL string `envconfig:"RABBITMQ_URL"`

	AdminWhatsAppNumbers []string `envconfig:"ADMIN_WHATSAPP_NUMBERS"`
	AdminEmails          []string `envconfig:"ADMIN_EMAILS"`

	PresetsPath          string        `envconfig:"PRESETS_PATH"`
	DefaultRepaymentRate float64       `envconfig:"DEFAULT_REPAYMENT_RATE" default:"5.5"`
	WebhookDedupeTTL     time.Duration `envconfig:"WEBHOOK_DEDUPE_TTL" default:"24h"`

	FollowUpInterval time.Duration `envconfig:"FOLLOWUP_INTERVAL" default:"24h"`
	FollowUpAfter    time.Duration `envconfig:"FOLLOWUP_AFTER" default:"48h"`
}

type WhatsApp struct {
	VerifyToken   string        `envconfig:"WHATSAPP_VERIFY_TOKEN"`
	AccessToken   string        `envconfig:"WHATSAPP_ACCESS_TOKEN"`
	AppSecret     string        `envconfig:"WHATSAPP_APP_SECRET"`
	PhoneNumberID string        `envconfig:"WHATSAPP_PHONE_NUMBER_ID"`
	APIURL        string        `envconfig:"WHATSAPP_API_URL" default:"https://graph.facebook.com/v13.0"`
	Timeout       time.Duration `envconfig:"WHATSAPP_TIMEOUT" default:"10s"`
}

type OpenAI struct {
	APIKey  string        `envconfig:"OPENAI_API_KEY"`
	Model   string        `envconfig:"OPENAI_MODEL" default:"gpt-3.5-turbo"`
	BaseURL string        `envconfig:"OPENAI_BASE_URL"`
	Timeout time.Duration `envconfig:"OPENAI_TIMEOUT" default:"30s"`
}

type Redis struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type Mail struct {
	Host     string `envconfig:"MAIL_HOST"`
	Port     int    `envconfig:"MAIL_PORT" default:"587"`
	User     string `envconfig:"MAIL_USER"`
	Password string `envconfig:"MAIL_PASS"`
	From     string `envconfig:"MAIL_FROM" default:"no-reply@refinly.app"`
}

// Enabled reports whether enough SMTP settings exist to send mail.
func (m Mail) Enabled() bool {
	return m.Host != "" && m.User != ""
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// .env is optional outside local development
	_ = godotenv.Load()

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	c.AdminWhatsAppNumbers = cleanList(c.AdminWhatsAppNumbers)
	c.AdminEmails = cleanList(c.AdminEmails)
	c.CORSAllowedOrigins = cleanList(c.CORSAllowedOrigins)

	if c.JWTExpireMin <= 0 {
		return nil, fmt.Errorf("load config: JWT_EXPIRE_MIN must be positive, got %d", c.JWTExpireMin)
	}
	if c.DefaultRepaymentRate < 0 {
		return nil, fmt.Errorf("load config: DEFAULT_REPAYMENT_RATE must not be negative")
	}

	return &c, nil
}

// JWTTTL is the lifetime of issued access tokens.
func (c *Config) JWTTTL() time.Duration {
	return time.Duration(c.JWTExpireMin) * time.Minute
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
