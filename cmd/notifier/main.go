package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/muhammadheryan/sample-api/cmd/config"
	"github.com/muhammadheryan/sample-api/thirdparty/externalapi"
	"github.com/muhammadheryan/sample-api/thirdparty/rabbitmq"
	"github.com/muhammadheryan/sample-api/utils/logger"
	"go.uber.org/zap"
)

// notifier forwards user lifecycle events to the configured webhook.
func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Close()

	client, err := externalapi.NewClient(externalapi.Options{
		BaseURL:   cfg.ExternalAPI.BaseURL,
		Timeout:   cfg.ExternalAPI.Timeout,
		UserAgent: cfg.ExternalAPI.UserAgent,
		APIKey:    cfg.ExternalAPI.APIKey,
	})
	if err != nil {
		logger.Fatal("err init external api client", zap.Error(err))
	}

	consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password,
		forward(client, cfg.ExternalAPI.WebhookPath))
	if err != nil {
		logger.Fatal("err connect rabbitmq", zap.Error(err))
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done, err := consumer.Start(ctx)
	if err != nil {
		logger.Fatal("err start consumer", zap.Error(err))
	}

	logger.Info("Notifier running", zap.String("webhook", cfg.ExternalAPI.WebhookPath))
	<-done
	logger.Info("Notifier stopped")
}

func forward(client externalapi.Client, path string) rabbitmq.Handler {
	return func(ctx context.Context, msg rabbitmq.UserEventMessage) error {
		headers := map[string]string{"X-Trace-Id": msg.TraceID}
		return client.Post(ctx, path, msg, headers, nil)
	}
}
