package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type ServerConfig struct {
	Store      Store
	Embeddings Embeddings
	Skills     Skills
	Slack      Slack
	Google     Google
	Notion     Notion
	WebServer  WebServer

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

func LoadServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	err := envconfig.Process("", &cfg)
	if err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

type StoreDriver string

const (
	StoreDriverPostgres StoreDriver = "postgres"
	StoreDriverSQLite   StoreDriver = "sqlite"
)

type Store struct {
	Driver StoreDriver `envconfig:"STORE_DRIVER" default:"postgres" description:"One of postgres or sqlite."`

	Host     string `envconfig:"POSTGRES_HOST" default:"localhost" description:"The host to connect to the postgres server."`
	Port     int    `envconfig:"POSTGRES_PORT" default:"5432" description:"The port to connect to the postgres server."`
	Database string `envconfig:"POSTGRES_DATABASE" default:"syllabi" description:"The database to connect to the postgres server."`
	Username string `envconfig:"POSTGRES_USER" description:"The username to connect to the postgres server."`
	Password string `envconfig:"POSTGRES_PASSWORD" description:"The password to connect to the postgres server."`
	SSL      bool   `envconfig:"POSTGRES_SSL" default:"false"`
	Schema   string `envconfig:"POSTGRES_SCHEMA"` // Defaults to public

	// SQLitePath is used when Driver is sqlite, ":memory:" works for tests
	SQLitePath string `envconfig:"SQLITE_PATH" default:"syllabi.db"`

	AutoMigrate     bool          `envconfig:"DATABASE_AUTO_MIGRATE" default:"true" description:"Should we automatically run the migrations?"`
	MaxConns        int           `envconfig:"DATABASE_MAX_CONNS" default:"50"`
	IdleConns       int           `envconfig:"DATABASE_IDLE_CONNS" default:"25"`
	MaxConnLifetime time.Duration `envconfig:"DATABASE_MAX_CONN_LIFETIME" default:"1h"`
	MaxConnIdleTime time.Duration `envconfig:"DATABASE_MAX_CONN_IDLE_TIME" default:"1m"`
	SlowQuery       time.Duration `envconfig:"DATABASE_SLOW_QUERY_THRESHOLD" default:"200ms"`
}

// DSN returns the postgres connection string
func (s Store) DSN() string {
	sslMode := "disable"
	if s.SSL {
		sslMode = "require"
	}
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		s.Host, s.Port, s.Username, s.Password, s.Database, sslMode)
	if s.Schema != "" {
		dsn += fmt.Sprintf(" search_path=%s", s.Schema)
	}
	return dsn
}

type Embeddings struct {
	Enabled   bool   `envconfig:"EMBEDDINGS_ENABLED" default:"true"`
	APIKey    string `envconfig:"OPENAI_API_KEY" description:"Key used for embedding generation."`
	BaseURL   string `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com/v1"`
	Model     string `envconfig:"EMBEDDINGS_MODEL" default:"text-embedding-3-small"`
	CacheSize int64  `envconfig:"EMBEDDINGS_CACHE_SIZE" default:"10000" description:"Number of query embeddings kept in memory."`
	Retries   uint   `envconfig:"EMBEDDINGS_RETRIES" default:"3"`
}

type Skills struct {
	WebhookTimeout time.Duration `envconfig:"SKILLS_WEBHOOK_TIMEOUT" default:"30s" description:"Default timeout for custom skill webhooks."`
	// StrictValidation rejects tool calls whose parameters fail the skill schema
	StrictValidation  bool    `envconfig:"SKILLS_STRICT_VALIDATION" default:"false"`
	SemanticThreshold float64 `envconfig:"SKILLS_SEMANTIC_THRESHOLD" default:"0.3" description:"Minimum cosine similarity for semantic skill search."`
}

type Slack struct {
	APIURL string `envconfig:"SLACK_API_URL" default:"https://slack.com/api/"`
}

type Google struct {
	ClientID     string `envconfig:"GOOGLE_CLIENT_ID"`
	ClientSecret string `envconfig:"GOOGLE_CLIENT_SECRET"`
	RetryMax     int    `envconfig:"GOOGLE_RETRY_MAX" default:"2"`
}

type Notion struct {
	APIURL  string `envconfig:"NOTION_API_URL" default:"https://api.notion.com/v1"`
	Version string `envconfig:"NOTION_VERSION" default:"2022-06-28"`
}

type WebServer struct {
	Host string `envconfig:"SERVER_HOST" default:"0.0.0.0" description:"The host to bind the api server to."`
	Port int    `envconfig:"SERVER_PORT" default:"8080" description:""`
}
