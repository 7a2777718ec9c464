package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Файлы .env ищутся относительно рабочего каталога в таком порядке
var envFiles = []string{".env", "../.env", "../../.env"}

const defaultJWTSecret = "default-jwt-secret-for-quadsolver"

type Config struct {
	SolverServicePort    string
	OrchestratorHTTPPort string
	OrchestratorGRPCPort string
	OrchestratorGRPCAddr string
	DatabasePath         string
	JWTSecret            string
	TokenExpiration      time.Duration
	ComputingPower       int
	LogLevel             string
}

// LoadEnv загружает первый найденный .env файл. Уже заданные
// переменные окружения не перезаписываются.
func LoadEnv() string {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err == nil {
			return file
		}
	}
	return ""
}

// Load читает конфигурацию из окружения, подставляя значения по умолчанию
func Load() *Config {
	return &Config{
		SolverServicePort:    GetEnvOrDefault("SOLVER_SERVICE_PORT", "8082"),
		OrchestratorHTTPPort: GetEnvOrDefault("ORCHESTRATOR_HTTP_PORT", "8080"),
		OrchestratorGRPCPort: GetEnvOrDefault("ORCHESTRATOR_GRPC_PORT", "8081"),
		OrchestratorGRPCAddr: GetEnvOrDefault("ORCHESTRATOR_GRPC_ADDR", "localhost:8081"),
		DatabasePath:         GetEnvOrDefault("DATABASE_PATH", "./quadsolver.db"),
		JWTSecret:            GetEnvOrDefault("JWT_SECRET", defaultJWTSecret),
		TokenExpiration:      time.Duration(GetEnvOrDefaultInt("TOKEN_EXPIRATION_MINUTES", 60)) * time.Minute,
		ComputingPower:       GetEnvOrDefaultInt("COMPUTING_POWER", 4),
		LogLevel:             GetEnvOrDefault("LOG_LEVEL", "info"),
	}
}

func GetEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// GetEnvOrDefaultInt возвращает целое значение переменной или значение по умолчанию,
// если переменная не задана, не является числом или не положительна
func GetEnvOrDefaultInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil || intValue <= 0 {
		slog.Warn("некорректное значение переменной окружения, используется значение по умолчанию",
			"key", key, "value", value, "default", defaultValue)
		return defaultValue
	}
	return intValue
}
