package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders-mock/internal/app"
	"github.com/vladislavdragonenkov/orders-mock/internal/version"
)

const (
	envHTTPAddr     = "ORDERS_HTTP_ADDR"
	envGraphQLPath  = "ORDERS_GRAPHQL_PATH"
	envMetricsAddr  = "ORDERS_METRICS_ADDR"
	envGRPCAddr     = "ORDERS_GRPC_ADDR"
	envLogLevel     = "ORDERS_LOG_LEVEL"
	envPostgresDSN  = "ORDERS_POSTGRES_DSN"
	envKafkaBrokers = "KAFKA_BROKERS"
	envKafkaTopic   = "ORDERS_KAFKA_TOPIC"
)

// setupLogger настраивает формат и уровень логирования для сервиса.
func setupLogger(level string) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}

// readConfigFromEnv накладывает переменные окружения на конфигурацию по умолчанию.
// Некорректные значения не валят запуск: остаётся дефолт, а в ответ уходит предупреждение.
func readConfigFromEnv(lookup func(string) (string, bool)) (app.Config, []string) {
	cfg := app.DefaultConfig()
	var warnings []string

	readString := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			if v = strings.TrimSpace(v); v != "" {
				*dst = v
			}
		}
	}

	readString(envHTTPAddr, &cfg.HTTPAddr)
	readString(envMetricsAddr, &cfg.MetricsAddr)
	readString(envPostgresDSN, &cfg.PostgresDSN)
	readString(envKafkaBrokers, &cfg.KafkaBrokers)
	readString(envKafkaTopic, &cfg.KafkaTopic)

	// Пустое значение явно выключает gRPC health сервер.
	if v, ok := lookup(envGRPCAddr); ok {
		cfg.GRPCAddr = strings.TrimSpace(v)
	}

	if v, ok := lookup(envGraphQLPath); ok {
		if v = strings.TrimSpace(v); v != "" {
			if !strings.HasPrefix(v, "/") {
				warnings = append(warnings, fmt.Sprintf("%s=%q не начинается с '/', используем %q", envGraphQLPath, v, "/"+v))
				v = "/" + v
			}
			cfg.GraphQLPath = v
		}
	}

	if v, ok := lookup(envLogLevel); ok {
		v = strings.ToLower(strings.TrimSpace(v))
		if _, err := log.ParseLevel(v); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s=%q не распознан, используем %q", envLogLevel, v, cfg.LogLevel))
		} else {
			cfg.LogLevel = v
		}
	}

	return cfg, warnings
}

func main() {
	cfg, warnings := readConfigFromEnv(os.LookupEnv)
	setupLogger(cfg.LogLevel)
	for _, w := range warnings {
		log.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"version":      version.String(),
		"http_addr":    cfg.HTTPAddr,
		"metrics_addr": cfg.MetricsAddr,
		"grpc_addr":    cfg.GRPCAddr,
	}).Debug("запускаем orders-mock")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("orders-mock остановлен")
}
