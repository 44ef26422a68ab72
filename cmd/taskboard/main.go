package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	config "github.com/davicafu/taskboard/internal/config"
	infraEvents "github.com/davicafu/taskboard/internal/shared/infra/events"
	sharedCache "github.com/davicafu/taskboard/internal/shared/infra/platform/cache"
	sharedUtils "github.com/davicafu/taskboard/internal/shared/infra/utils"
	sharedBus "github.com/davicafu/taskboard/internal/shared/platform/bus"
	taskApp "github.com/davicafu/taskboard/internal/task/application"
	taskDomain "github.com/davicafu/taskboard/internal/task/domain"
	taskEvents "github.com/davicafu/taskboard/internal/task/infra/inbound/events"
	taskHttp "github.com/davicafu/taskboard/internal/task/infra/inbound/http"
	"github.com/davicafu/taskboard/internal/task/infra/outbound/analytics/clickhouse"
	"github.com/davicafu/taskboard/internal/task/infra/outbound/db/mongodb"
	postgres "github.com/davicafu/taskboard/internal/task/infra/outbound/db/postgre"
	redisSlot "github.com/davicafu/taskboard/internal/task/infra/outbound/db/redis"
	"github.com/davicafu/taskboard/internal/task/infra/outbound/db/sqlite"
	"github.com/davicafu/taskboard/internal/task/infra/outbound/filesystem"
	"github.com/davicafu/taskboard/internal/task/infra/outbound/memory"
	"github.com/davicafu/taskboard/internal/task/infra/outbound/snapshot"
	"github.com/davicafu/taskboard/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ---------------- Main ----------------
func main() {
	logger.Init()          // inicializa zap
	log := logger.Logger() // obtiene logger estructurado
	defer log.Sync()       // flush buffers al salir

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger.Sugar().Infof("Using %s slot %q", cfg.SlotBackend, cfg.SlotName)

	// ---------------- Slot ----------------
	slot, closeSlot, err := openSlot(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to open slot", zap.String("backend", cfg.SlotBackend), zap.Error(err))
	}
	defer closeSlot()
	repo := snapshot.NewRepo(slot, cfg.SlotName)

	// ---------------- Cache ----------------
	var cacheInstance sharedCache.Cache
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()
	pingCtx, cancelPing := context.WithTimeout(ctx, 500*time.Millisecond)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Warn("⚠️ Redis not available, using in-memory projection cache", zap.Error(err))
		memCache := sharedCache.NewInMemoryCache(cfg.CacheTTL, 3*cfg.CacheTTL)
		defer memCache.Stop()
		cacheInstance = memCache
	} else {
		cacheInstance = sharedCache.NewRedisCache(rdb, cfg.CacheTTL)
		log.Info("✅ Redis connected, projection cache enabled")
	}
	cancelPing()

	// ---------------- Analytics ----------------
	var activityRepo taskDomain.TaskActivityRepository
	if cfg.ClickHouseAddr != "" {
		chRepo, err := clickhouse.NewTaskActivityRepo(cfg.ClickHouseAddr, cfg.ClickHouseDB)
		if err != nil {
			log.Warn("⚠️ ClickHouse not available, activity only logged", zap.Error(err))
		} else if err := chRepo.InitSchema(); err != nil {
			log.Warn("⚠️ ClickHouse schema init failed, activity only logged", zap.Error(err))
			chRepo.Close()
		} else {
			defer chRepo.Close()
			activityRepo = chRepo
		}
	}
	activityConsumer := taskEvents.NewActivityConsumer(activityRepo, log)

	// ---------------- Events ---------------
	var publisher sharedBus.EventPublisher
	log.Info("Change feed", zap.String("bus", sharedUtils.Ternary(cfg.UseKafka, "kafka", "in-memory")))

	if cfg.UseKafka {
		writer := &kafka.Writer{
			Addr:     kafka.TCP(cfg.KafkaBrokers...),
			Topic:    taskDomain.TaskTopic,
			Balancer: &kafka.Hash{}, // mismo id de tarea, misma partición

			// Un mensaje por mutación: el lote por defecto (1s) bloquearía el tablero.
			BatchTimeout: 5 * time.Millisecond,
			BatchSize:    1,
		}
		defer writer.Close()
		publisher = infraEvents.NewKafkaPublisher(writer, log)

		reader := kafka.NewReader(kafka.ReaderConfig{
			Brokers:  cfg.KafkaBrokers,
			Topic:    taskDomain.TaskTopic,
			GroupID:  "taskboard-activity",
			MinBytes: 1,
			MaxBytes: 10e6, // 10MB
		})
		defer reader.Close()
		infraEvents.NewConsumerAdapter(reader, activityConsumer, log).Start(ctx)
	} else {
		bus := infraEvents.NewInMemoryEventBus(taskDomain.TaskTopic)
		publisher = bus
		taskEvents.BackgroundConsumerChan(ctx, bus.Subscribe(64), activityConsumer)
	}

	// --------------- Servicio --------------
	board := taskApp.NewBoardService(repo, publisher, cacheInstance, log,
		taskApp.WithLoadDelay(cfg.LoadDelay),
		taskApp.WithCacheTTL(int(cfg.CacheTTL.Seconds())),
	)
	go func() {
		if err := board.Load(ctx); err != nil {
			log.Warn("Initial load interrupted", zap.Error(err))
		}
	}()

	// ---------------- HTTP ----------------
	router := gin.Default()
	taskHttp.RegisterBoardRoutes(router, taskHttp.NewBoardHandler(board))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	srv := &http.Server{Addr: ":" + cfg.HTTPPort, Handler: router}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("HTTP shutdown failed", zap.Error(err))
		}
	}()

	log.Info("🚀 Server running",
		zap.String("url", "http://localhost:"+cfg.HTTPPort),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("failed to start server", zap.Error(err))
	}
}

// openSlot construye el backend durable indicado en la configuración.
func openSlot(ctx context.Context, cfg *config.Config, log *zap.Logger) (taskDomain.Slot, func(), error) {
	noop := func() {}

	switch cfg.SlotBackend {
	case config.BackendFile:
		return filesystem.NewJSONFileSlot(cfg.SlotDir), noop, nil

	case config.BackendMemory:
		log.Warn("⚠️ In-memory slot, tasks are lost on restart")
		return memory.NewSlot(), noop, nil

	case config.BackendSQLite:
		db, err := sql.Open("sqlite", cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		if err := sqlite.InitSQLite(db); err != nil {
			db.Close()
			return nil, noop, err
		}
		return sqlite.NewSlotRepoSQLite(db), func() { db.Close() }, nil

	case config.BackendPostgres:
		db, err := sql.Open("pgx", cfg.PostgresDSN)
		if err != nil {
			return nil, noop, err
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, noop, err
		}
		if err := postgres.InitPostgresSlotSchema(db); err != nil {
			db.Close()
			return nil, noop, err
		}
		return postgres.NewSlotRepoPostgres(db), func() { db.Close() }, nil

	case config.BackendMongoDB:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, noop, err
		}
		slot, err := mongodb.NewSlotRepoMongoDB(ctx, client, cfg.MongoDB)
		if err != nil {
			client.Disconnect(context.Background())
			return nil, noop, err
		}
		return slot, func() { client.Disconnect(context.Background()) }, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, noop, err
		}
		return redisSlot.NewSlotRepoRedis(client), func() { client.Close() }, nil
	}

	return nil, noop, errors.New("unknown slot backend: " + cfg.SlotBackend)
}
