package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Backends de slot soportados.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMongoDB  = "mongodb"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

type Config struct {
	SlotBackend    string
	SlotName       string
	SlotDir        string
	SQLitePath     string
	PostgresDSN    string
	MongoURI       string
	MongoDB        string
	RedisAddr      string
	UseKafka       bool
	KafkaBrokers   []string
	ClickHouseAddr string
	ClickHouseDB   string
	HTTPPort       string
	LoadDelay      time.Duration
	CacheTTL       time.Duration
}

// LoadConfig lee la configuración del entorno. Si existe un .env en el
// directorio de trabajo se carga antes; las variables ya definidas mandan.
func LoadConfig() *Config {
	_ = godotenv.Load()

	getEnv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}
	getDuration := func(key string, fallback time.Duration) time.Duration {
		if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
			return d
		}
		return fallback
	}
	// Para TTLs e intervalos un valor <= 0 no tiene sentido: se usa el de por defecto.
	getPositiveDuration := func(key string, fallback time.Duration) time.Duration {
		if d := getDuration(key, fallback); d > 0 {
			return d
		}
		return fallback
	}

	useKafka, _ := strconv.ParseBool(getEnv("USE_KAFKA", "false"))

	return &Config{
		SlotBackend:    strings.ToLower(getEnv("SLOT_BACKEND", BackendSQLite)),
		SlotName:       getEnv("SLOT_NAME", "tasks"),
		SlotDir:        getEnv("SLOT_DIR", "./data"),
		SQLitePath:     getEnv("SQLITE_PATH", "./taskboard.db"),
		PostgresDSN:    getEnv("POSTGRES_DSN", "postgres://localhost:5432/taskboard"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGO_DB", "taskboard"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		UseKafka:       useKafka,
		KafkaBrokers:   strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		ClickHouseAddr: getEnv("CLICKHOUSE_ADDR", ""),
		ClickHouseDB:   getEnv("CLICKHOUSE_DB", "taskboard"),
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		LoadDelay:      getDuration("LOAD_DELAY", 1*time.Second),
		CacheTTL:       getPositiveDuration("CACHE_TTL", 5*time.Minute),
	}
}
