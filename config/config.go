package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMongo    = "mongo"
	StorageDriverMemory   = "memory"
)

type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	Storage   StorageConfig
	Postgres  PostgresConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Elastic   ElasticsearchConfig
	Telemetry TelemetryConfig
	Auth      AuthConfig
	Sync      SyncConfig
}

type ServerConfig struct {
	AppEnv          string        `env:"APP_ENV" envDefault:"dev"`
	HTTPPort        string        `env:"HTTP_PORT" envDefault:":8080"`
	GRPCPort        string        `env:"GRPC_PORT" envDefault:":8082"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type LoggerConfig struct {
	Level             string `env:"LOGGER_LEVEL" envDefault:"debug"`
	Encoding          string `env:"LOGGER_ENCODING" envDefault:"console"`
	DisableCaller     bool   `env:"LOGGER_DISABLE_CALLER" envDefault:"false"`
	DisableStacktrace bool   `env:"LOGGER_DISABLE_STACKTRACE" envDefault:"true"`
	File              string `env:"LOGGER_FILE"`
	FileMaxSizeMB     int    `env:"LOGGER_FILE_MAX_SIZE_MB" envDefault:"50"`
	FileMaxBackups    int    `env:"LOGGER_FILE_MAX_BACKUPS" envDefault:"5"`
	FileMaxAgeDays    int    `env:"LOGGER_FILE_MAX_AGE_DAYS" envDefault:"14"`
}

type StorageConfig struct {
	Driver string `env:"STORAGE_DRIVER" envDefault:"postgres"`
}

type PostgresConfig struct {
	Host            string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port            string `env:"POSTGRES_PORT" envDefault:"5432"`
	User            string `env:"POSTGRES_USER" envDefault:"pricelist"`
	Password        string `env:"POSTGRES_PASSWORD" envDefault:"pricelist"`
	DBName          string `env:"POSTGRES_DB" envDefault:"pricelist"`
	SSLMode         string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
	MaxOpenConns    int    `env:"POSTGRES_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int    `env:"POSTGRES_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime int    `env:"POSTGRES_CONN_MAX_LIFETIME" envDefault:"300"`
	ConnMaxIdleTime int    `env:"POSTGRES_CONN_MAX_IDLE_TIME" envDefault:"60"`
}

type MongoConfig struct {
	URI            string        `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	Database       string        `env:"MONGO_DB" envDefault:"pricelist"`
	ConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT" envDefault:"10s"`
}

type RedisConfig struct {
	Enabled  bool          `env:"REDIS_ENABLED" envDefault:"false"`
	Addr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	TTL      time.Duration `env:"REDIS_GOODS_TTL" envDefault:"5m"`
}

type KafkaConfig struct {
	Enabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic   string   `env:"KAFKA_TOPIC_SYNC" envDefault:"pricelist.sync.requested"`
	GroupID string   `env:"KAFKA_GROUP_SYNC" envDefault:"pricelist-sync"`
}

type ElasticsearchConfig struct {
	Enabled   bool     `env:"ELASTICSEARCH_ENABLED" envDefault:"false"`
	Addresses []string `env:"ELASTICSEARCH_ADDRESSES" envSeparator:"," envDefault:"http://localhost:9200"`
	Username  string   `env:"ELASTICSEARCH_USERNAME"`
	Password  string   `env:"ELASTICSEARCH_PASSWORD"`
	Index     string   `env:"ELASTICSEARCH_GOODS_INDEX" envDefault:"goods"`
}

type TelemetryConfig struct {
	Enabled     bool          `env:"OTEL_ENABLED" envDefault:"false"`
	ServiceName string        `env:"OTEL_SERVICE_NAME" envDefault:"pricelist-service"`
	Endpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4317"`
	Insecure    bool          `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"true"`
	SampleRatio float64       `env:"OTEL_SAMPLE_RATIO" envDefault:"1"`
	Timeout     time.Duration `env:"OTEL_EXPORTER_OTLP_TIMEOUT" envDefault:"10s"`
}

type AuthConfig struct {
	// Token gates write endpoints. Empty disables the check.
	Token string `env:"AUTH_TOKEN"`
}

type SyncConfig struct {
	JobTimeout time.Duration `env:"SYNC_JOB_TIMEOUT" envDefault:"2m"`
}

func LoadEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMongo, StorageDriverMemory:
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.Storage.Driver)
	}
	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "dev" || c.Server.AppEnv == "development"
}
