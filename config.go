package pipelinellm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"log"
	"os"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Mode         string
	ApiPort      string
	OllamaConfig struct {
		DefaultURL    string
		DefaultModel  string
		DockerRewrite bool
	}
	PythonConfig struct {
		Bin            string
		TimeoutSeconds int
	}
}

var config AppConfig

func InitConfig(envfile string) {
	err := godotenv.Load(envfile)
	if err != nil {
		log.Fatal(fmt.Sprintf("Error loading %s file: %s", envfile, err))
	}
	config = AppConfig{
		Mode:    getEnvOrPanic("RUN_MODE"),
		ApiPort: getEnvOrPanic("API_PORT"),
		OllamaConfig: struct {
			DefaultURL    string
			DefaultModel  string
			DockerRewrite bool
		}{
			DefaultURL:    GetEnv("OLLAMA_DEFAULT_URL", "http://localhost:11434"),
			DefaultModel:  GetEnv("OLLAMA_DEFAULT_MODEL", "llama3.2"),
			DockerRewrite: GetEnv("OLLAMA_DOCKER_REWRITE", "0") == "1",
		},
		PythonConfig: struct {
			Bin            string
			TimeoutSeconds int
		}{
			Bin:            GetEnv("PYTHON_BIN", "python3"),
			TimeoutSeconds: getIntEnvOrDefault("PYTHON_TIMEOUT_SECONDS", 30),
		},
	}

	Logger = initLogger()
}

func GetConfig() AppConfig {
	return config
}

func getEnvOrPanic(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("%s must be set", key)
	}
	return value
}

func GetEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntEnvOrDefault(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}

func initLogger() zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "15:04:05",
		NoColor:    false,
		FormatLevel: func(i interface{}) string {
			return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
		},
		FormatMessage: func(i interface{}) string {
			return fmt.Sprintf("  %s  ", i)
		},
		FormatFieldName: func(i interface{}) string {
			return fmt.Sprintf("%s=", i)
		},
		FormatFieldValue: func(i interface{}) string {
			return fmt.Sprintf("%s", i)
		},
	}

	return zerolog.New(output).With().Timestamp().Caller().Logger()
}
