package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Astemirdum/rental-service/availability/config"
	"github.com/Astemirdum/rental-service/availability/internal/calendar"
	"github.com/Astemirdum/rental-service/availability/internal/handler"
	"github.com/Astemirdum/rental-service/availability/internal/repository"
	"github.com/Astemirdum/rental-service/availability/internal/server"
	"github.com/Astemirdum/rental-service/availability/internal/service"
	"github.com/Astemirdum/rental-service/availability/migrations"
	"github.com/Astemirdum/rental-service/pkg/kafka"
	"github.com/Astemirdum/rental-service/pkg/logger"
	"github.com/Astemirdum/rental-service/pkg/postgres"
	"github.com/Astemirdum/rental-service/pkg/redis"
	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "availability")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	defer db.Close()
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}

	var store repository.Repository = repo
	rdb, err := redis.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, equipment cache disabled", zap.Error(err))
	} else {
		defer rdb.Close()
		store = repository.NewCachedRepository(repo, rdb, cfg.Booking.CatalogTTL, log)
	}

	policy, scheduler, err := newMaintenancePolicy(cfg.Maintenance, log)
	if err != nil {
		log.Fatal("maintenance policy", zap.Error(err))
	}
	if scheduler != nil {
		scheduler.Start()
		defer scheduler.Stop()
	}

	var producer sarama.SyncProducer
	if cfg.Kafka.Enabled() {
		if producer, err = kafka.NewProducer(cfg.Kafka); err != nil {
			log.Fatal("kafka.NewProducer", zap.Error(err))
		}
		defer producer.Close()
	}
	svc := service.NewService(store, calendar.NewProjector(policy), service.NewEnqueuer(producer), log, cfg.Booking.DegradedDays)

	if cfg.Kafka.Enabled() {
		group, err := kafka.NewConsumerGroup(cfg.Kafka, kafka.AvailabilityGroup)
		if err != nil {
			log.Fatal("kafka.NewConsumerGroup", zap.Error(err))
		}
		defer group.Close()
		go func() {
			if err := kafka.Consume(ctx, group, handler.NewConsumer(svc.UpdateEquipmentStatus, log), kafka.EquipmentStatusTopic); err != nil {
				log.Error("kafka.Consume", zap.Error(err))
			}
		}()
	} else {
		log.Warn("kafka brokers not configured, events disabled")
	}

	h := handler.New(svc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, closeCancel := context.WithTimeout(context.Background(), time.Second*5)
	defer closeCancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	cancel()
	log.Info("Graceful shutdown finished")
}
