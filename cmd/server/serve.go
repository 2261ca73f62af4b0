package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/St1cky1/task-management/internal/api"
	grpcapi "github.com/St1cky1/task-management/internal/api/grpc"
	"github.com/St1cky1/task-management/internal/api/handlers"
	"github.com/St1cky1/task-management/internal/infrastructure/client"
	"github.com/St1cky1/task-management/internal/metrics"
	"github.com/St1cky1/task-management/internal/usecase"
	"github.com/St1cky1/task-management/internal/worker"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/time/rate"
)

const (
	healthInterval  = 15 * time.Second
	shutdownTimeout = 10 * time.Second
)

func serve(c *cli.Context) error {
	cfg, log, err := setup(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	var wg sync.WaitGroup

	// Аудит: RabbitMQ если настроен, иначе только лог
	var publisher usecase.AuditPublisher = usecase.LogPublisher{Log: log}
	if cfg.RabbitMQEnabled() {
		rabbitMQ, err := client.NewRabbitMQClient(cfg.RabbitMQURL(), cfg.AuditQueue, log)
		if err != nil {
			return fmt.Errorf("connect rabbitmq: %w", err)
		}
		defer func() {
			if err := rabbitMQ.Close(); err != nil {
				log.WithError(err).Warn("close rabbitmq")
			}
		}()
		publisher = rabbitMQ

		auditWorker := worker.NewAuditWorker(rabbitMQ, store.audit, log)
		wg.Add(1)
		go func() {
			defer wg.Done()
			auditWorker.Start(ctx)
		}()
		log.WithField("queue", rabbitMQ.QueueName()).Info("audit worker started")
	}

	personService := usecase.NewPersonService(store.tx, store.people, store.tasks, publisher, log)
	taskService := usecase.NewTaskService(store.tx, store.tasks, store.people, publisher, log, nil)

	// gRPC сервер отдает только health и reflection
	grpcServer := grpcapi.NewGRPCServer(log)
	grpcErr := make(chan error, 1)
	go func() {
		grpcErr <- grpcServer.Start(cfg.GRPCAddr)
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		grpcServer.WatchHealth(ctx, store.ping, healthInterval)
	}()

	gateway, gatewayConn, err := grpcapi.NewGatewayHandler(dialAddr(cfg.GRPCAddr))
	if err != nil {
		grpcServer.Stop()
		return fmt.Errorf("create grpc gateway: %w", err)
	}
	defer gatewayConn.Close()

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	}

	router := api.NewRouter(api.RouterDeps{
		Tasks:   handlers.NewTaskHandler(taskService, personService, time.Local, log),
		People:  handlers.NewPersonHandler(personService, log),
		Metrics: metrics.New(),
		Health:  gateway,
		Limiter: limiter,
		Log:     log,
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	httpErr := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("http server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			httpErr <- err
		}
		close(httpErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-httpErr:
		runErr = fmt.Errorf("http server: %w", err)
	case err := <-grpcErr:
		runErr = fmt.Errorf("grpc server: %w", err)
	}
	stop()

	waitForShutdown(httpServer, grpcServer, &wg, log)
	return runErr
}

// waitForShutdown останавливает серверы и ждет фоновые горутины
func waitForShutdown(httpServer *http.Server, grpcServer *grpcapi.GRPCServer, wg *sync.WaitGroup, log logrus.FieldLogger) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("http server shutdown")
	}
	grpcServer.Stop()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		log.Info("stopped")
	case <-shutdownCtx.Done():
		log.Warn("background workers did not stop in time")
	}
}

// dialAddr turns a listen address such as ":9090" into one a client can dial.
func dialAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}
