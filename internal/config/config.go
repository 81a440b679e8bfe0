package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime settings, populated from environment variables.
type Config struct {
	Addr string `envconfig:"ADDR" default:":8080"`

	DBHost     string `envconfig:"DB_HOST" default:"127.0.0.1"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName     string `envconfig:"DB_NAME" default:"paperdesk"`

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"24h"`

	PDFDir        string        `envconfig:"PDF_DIR" default:"./arxiv_pdfs"`
	ScrapeBaseURL string        `envconfig:"SCRAPE_BASE_URL" default:"https://huggingface.co"`
	ArxivBaseURL  string        `envconfig:"ARXIV_BASE_URL" default:"https://export.arxiv.org"`
	HTTPTimeout   time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`

	LLMBaseURL string        `envconfig:"LLM_BASE_URL" default:"https://open.bigmodel.cn/api/paas/v4"`
	LLMAPIKey  string        `envconfig:"LLM_API_KEY"`
	LLMModel   string        `envconfig:"LLM_MODEL" default:"glm-4-flash"`
	LLMTimeout time.Duration `envconfig:"LLM_TIMEOUT" default:"60s"`

	MinIOEnabled   bool   `envconfig:"MINIO_ENABLED" default:"false"`
	MinIOEndpoint  string `envconfig:"MINIO_ENDPOINT" default:"127.0.0.1:9000"`
	MinIOAccessKey string `envconfig:"MINIO_ACCESS_KEY" default:"minioadmin"`
	MinIOSecretKey string `envconfig:"MINIO_SECRET_KEY" default:"minioadmin"`
	MinIOSecure    bool   `envconfig:"MINIO_SECURE" default:"false"`
	MinIOBucket    string `envconfig:"MINIO_BUCKET" default:"paperdesk"`
}

// DSN returns the data source name for the PostgreSQL connection.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// Load reads configuration from the environment, honoring a local .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	err := envconfig.Process("", &c)
	return &c, err
}
