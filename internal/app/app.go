package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"

	"github.com/vladislavdragonenkov/orders-mock/internal/graphql"
	"github.com/vladislavdragonenkov/orders-mock/internal/messaging/kafka"
)

const shutdownTimeout = 5 * time.Second

// Config описывает настройки запуска mock-сервера.
type Config struct {
	HTTPAddr     string
	GraphQLPath  string
	MetricsAddr  string
	GRPCAddr     string
	LogLevel     string
	PostgresDSN  string
	KafkaBrokers string
	KafkaTopic   string
}

// DefaultConfig отдаёт настройки по умолчанию: API на :4000/graphql, внешние зависимости выключены.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:    ":4000",
		GraphQLPath: graphql.DefaultPath,
		MetricsAddr: ":9090",
		GRPCAddr:    ":50051",
		LogLevel:    "info",
		KafkaTopic:  kafka.DefaultTopic,
	}
}

// Run поднимает GraphQL API, сервер метрик и (опционально) gRPC health,
// и блокируется до отмены ctx или падения одного из серверов.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	deps, err := initRuntimeDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.close(logger)

	schema, err := graphql.NewSchema(graphql.NewResolver(deps.service), logger.WithField("layer", "graphql"))
	if err != nil {
		return err
	}
	apiHandler := graphql.NewHandler(schema, deps.service, cfg.GraphQLPath, logger.WithField("layer", "http"))

	healthHandler := newHealthHandler(deps)
	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	errCh := make(chan error, 2)

	var grpcSrv *grpcServer
	if cfg.GRPCAddr != "" {
		grpcSrv, err = startGRPCServer(cfg.GRPCAddr, logger, errCh)
		if err != nil {
			shutdownHTTP(metricsSrv, logger)
			return err
		}
	}

	lis, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		grpcSrv.stop(logger)
		shutdownHTTP(metricsSrv, logger)
		return fmt.Errorf("listen graphql http: %w", err)
	}
	apiSrv := &http.Server{Handler: apiHandler, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Infof("GraphQL API слушает %s", publicURL(lis.Addr(), cfg.GraphQLPath))
		errCh <- apiSrv.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем серверы")
		shutdownHTTP(apiSrv, logger)
		grpcSrv.stop(logger)
		shutdownHTTP(metricsSrv, logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(apiSrv, logger)
		grpcSrv.stop(logger)
		shutdownHTTP(metricsSrv, logger)
		if errors.Is(err, http.ErrServerClosed) || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return err
	}
}

// publicURL строит адрес для стартового лога; wildcard-хост заменяется на localhost.
func publicURL(addr net.Addr, path string) string {
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return "http://" + addr.String() + path
	}
	ip := net.ParseIP(host)
	if host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + path
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
