package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	AppEnv    string
	PublicDir string
	LogsDir   string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Cashfree payment gateway
	CashfreeAppID      string
	CashfreeSecretKey  string
	CashfreeBaseURL    string
	CashfreeAPIVersion string
	GatewayTimeout     time.Duration

	// Outbound mail
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPass     string
	MailFromName string
	ContactInbox string

	TargetDate     string
	AdminJWTSecret string

	NotifierWorkers    int
	NotifierQueueSize  int
	RateLimitPerMinute int
	CORSOrigins        []string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}
	smtpUser := os.Getenv("SMTP_USER")
	return &Config{
		Port:               getenvOrDefault("PORT", "3000"),
		AppEnv:             getenvOrDefault("APP_ENV", "production"),
		PublicDir:          getenvOrDefault("PUBLIC_DIR", "public"),
		LogsDir:            os.Getenv("LOGS_DIR"),
		DBHost:             getenvOrDefault("DB_HOST", "localhost"),
		DBPort:             getenvOrDefault("DB_PORT", "5432"),
		DBUser:             os.Getenv("DB_USER"),
		DBPassword:         os.Getenv("DB_PASSWORD"),
		DBName:             os.Getenv("DB_NAME"),
		DBSSLMode:          getenvOrDefault("DB_SSLMODE", "disable"),
		RedisAddr:          getenvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            getenvIntOrDefault("REDIS_DB", 0),
		CashfreeAppID:      os.Getenv("CASHFREE_APP_ID"),
		CashfreeSecretKey:  os.Getenv("CASHFREE_SECRET_KEY"),
		CashfreeBaseURL:    getenvOrDefault("CASHFREE_BASE_URL", "https://sandbox.cashfree.com"),
		CashfreeAPIVersion: getenvOrDefault("CASHFREE_API_VERSION", "2022-09-01"),
		GatewayTimeout:     getenvDurationOrDefault("GATEWAY_TIMEOUT", 30*time.Second),
		SMTPHost:           getenvOrDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:           getenvIntOrDefault("SMTP_PORT", 587),
		SMTPUser:           smtpUser,
		SMTPPass:           os.Getenv("SMTP_PASS"),
		MailFromName:       getenvOrDefault("MAIL_FROM_NAME", "SOVA GLOVES"),
		ContactInbox:       getenvOrDefault("CONTACT_INBOX", smtpUser),
		TargetDate:         os.Getenv("TARGET_DATE"),
		AdminJWTSecret:     os.Getenv("ADMIN_JWT_SECRET"),
		NotifierWorkers:    getenvIntOrDefault("NOTIFIER_WORKERS", 2),
		NotifierQueueSize:  getenvIntOrDefault("NOTIFIER_QUEUE_SIZE", 100),
		RateLimitPerMinute: getenvIntOrDefault("RATE_LIMIT_PER_MINUTE", 10),
		CORSOrigins:        splitList(getenvOrDefault("CORS_ORIGINS", "*")),
	}
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode
}

// getenvOrDefault returns the environment variable value if set, otherwise returns def
func getenvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvIntOrDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func getenvDurationOrDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
