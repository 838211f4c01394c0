package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Postgres PostgresConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Elastic  ElasticsearchConfig
	Admin    AdminConfig
}

type ServerConfig struct {
	AppEnv      string
	HTTPPort    string
	GRPCPort    string
	CORSOrigins []string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
	AutoMigrate     bool
}

type JWTConfig struct {
	SecretKey string
	TTL       time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers       []string
	OrdersTopic   string
	PaymentsTopic string
	ReportsTopic  string
	GroupID       string
}

type ElasticsearchConfig struct {
	Addresses []string
	Username  string
	Password  string
}

// AdminConfig seeds the first admin account when both fields are set.
type AdminConfig struct {
	Email    string
	Password string
}

var defaults = map[string]interface{}{
	"APP_ENV":      "development",
	"HTTP_PORT":    ":3001",
	"GRPC_PORT":    ":8082",
	"CORS_ORIGINS": "http://localhost:3000",

	"LOGGER_LEVEL":              "debug",
	"LOGGER_ENCODING":           "console",
	"LOGGER_DISABLE_CALLER":     false,
	"LOGGER_DISABLE_STACKTRACE": true,

	"POSTGRES_HOST":               "localhost",
	"POSTGRES_PORT":               "5432",
	"POSTGRES_USER":               "postgres",
	"POSTGRES_PASSWORD":           "postgres",
	"POSTGRES_DB":                 "restaurant_system",
	"POSTGRES_SSLMODE":            "disable",
	"POSTGRES_MAX_OPEN_CONNS":     10,
	"POSTGRES_MAX_IDLE_CONNS":     5,
	"POSTGRES_CONN_MAX_LIFETIME":  300,
	"POSTGRES_CONN_MAX_IDLE_TIME": 60,
	"POSTGRES_AUTO_MIGRATE":       true,

	"JWT_SECRET_KEY": "your-secret-key-change-this-in-prod",
	"JWT_TTL":        "24h",

	"REDIS_ADDR":     "localhost:6379",
	"REDIS_PASSWORD": "",
	"REDIS_DB":       0,

	"KAFKA_BROKERS":       "localhost:9092",
	"ORDERS_TOPIC":        "restaurant.orders",
	"PAYMENTS_TOPIC":      "restaurant.payments",
	"REPORTS_TOPIC":       "restaurant.reports.generate",
	"KAFKA_GROUP_REPORTS": "reports",

	"ELASTICSEARCH_ADDRESSES": "http://localhost:9200",
	"ELASTICSEARCH_USERNAME":  "",
	"ELASTICSEARCH_PASSWORD":  "",

	"ADMIN_EMAIL":    "",
	"ADMIN_PASSWORD": "",
}

func LoadEnv() *Config {
	_ = godotenv.Load() // .env is optional

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	return &Config{
		Server: ServerConfig{
			AppEnv:      v.GetString("APP_ENV"),
			HTTPPort:    v.GetString("HTTP_PORT"),
			GRPCPort:    v.GetString("GRPC_PORT"),
			CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),
		},
		Logger: LoggerConfig{
			Level:             v.GetString("LOGGER_LEVEL"),
			Encoding:          v.GetString("LOGGER_ENCODING"),
			DisableCaller:     v.GetBool("LOGGER_DISABLE_CALLER"),
			DisableStacktrace: v.GetBool("LOGGER_DISABLE_STACKTRACE"),
		},
		Postgres: PostgresConfig{
			Host:            v.GetString("POSTGRES_HOST"),
			Port:            v.GetString("POSTGRES_PORT"),
			User:            v.GetString("POSTGRES_USER"),
			Password:        v.GetString("POSTGRES_PASSWORD"),
			DBName:          v.GetString("POSTGRES_DB"),
			SSLMode:         v.GetString("POSTGRES_SSLMODE"),
			MaxOpenConns:    v.GetInt("POSTGRES_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("POSTGRES_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetInt("POSTGRES_CONN_MAX_LIFETIME"),
			ConnMaxIdleTime: v.GetInt("POSTGRES_CONN_MAX_IDLE_TIME"),
			AutoMigrate:     v.GetBool("POSTGRES_AUTO_MIGRATE"),
		},
		JWT: JWTConfig{
			SecretKey: v.GetString("JWT_SECRET_KEY"),
			TTL:       v.GetDuration("JWT_TTL"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Kafka: KafkaConfig{
			Brokers:       splitList(v.GetString("KAFKA_BROKERS")),
			OrdersTopic:   v.GetString("ORDERS_TOPIC"),
			PaymentsTopic: v.GetString("PAYMENTS_TOPIC"),
			ReportsTopic:  v.GetString("REPORTS_TOPIC"),
			GroupID:       v.GetString("KAFKA_GROUP_REPORTS"),
		},
		Elastic: ElasticsearchConfig{
			Addresses: splitList(v.GetString("ELASTICSEARCH_ADDRESSES")),
			Username:  v.GetString("ELASTICSEARCH_USERNAME"),
			Password:  v.GetString("ELASTICSEARCH_PASSWORD"),
		},
		Admin: AdminConfig{
			Email:    v.GetString("ADMIN_EMAIL"),
			Password: v.GetString("ADMIN_PASSWORD"),
		},
	}
}

// splitList turns "a, b,c" into [a b c], dropping empty entries.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
