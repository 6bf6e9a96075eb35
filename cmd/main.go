package main

import (
	"context"
	"log"

	"github.com/bonecole/appcore/internal/catalog"
	"github.com/bonecole/appcore/internal/connectivity"
	"github.com/bonecole/appcore/internal/course"
	infra "github.com/bonecole/appcore/internal/infrastructure"
	"github.com/bonecole/appcore/internal/infrastructure/auth"
	"github.com/bonecole/appcore/internal/infrastructure/driver"
	"github.com/bonecole/appcore/internal/infrastructure/uuid"
	ihttp "github.com/bonecole/appcore/internal/interfaces/http"
	"github.com/bonecole/appcore/internal/notification"
	"github.com/bonecole/appcore/internal/progress"
	"github.com/bonecole/appcore/internal/storage"
	"github.com/bonecole/appcore/internal/user"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	log.SetFlags(log.Lshortfile | log.Ldate | log.Ltime)
	godotenv.Load()

	option, err := infra.InitConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := infra.NewLogger(&infra.LoggingConfig{
		FilePath: option.Logging.FilePath,
		Level:    option.Logging.Level,
		AppID:    option.AppID,
		Env:      option.Env,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %s\n", err)
	}
	logger = logger.With(
		zap.String("service.id", option.AppID),
	)
	defer logger.Sync()

	var kv driver.KeyValueDB
	switch option.KVStore.Driver {
	case "redis":
		kv = driver.NewRedisClient(option.KVStore.Host, option.KVStore.Port, option.KVStore.Password)
	default:
		kv = driver.NewMemoryStore()
	}
	if err := kv.Ping(); err != nil {
		log.Fatalf("Failed to reach the key-value store: %s\n", err)
	}
	logger.Debug("Create key-value store", zap.String("kv.driver", option.KVStore.Driver),
		zap.String("kv.host", option.KVStore.Host),
	)

	ctx := context.Background()

	netinfo := connectivity.NewStubNetInfo()
	gate := connectivity.NewGate(kv, netinfo, connectivity.Config{
		SSIDKeywords:            option.Connectivity.SSIDKeywords,
		DebounceWindow:          option.Connectivity.DebounceWindow,
		DefaultSimulatorEnabled: option.Connectivity.DefaultSimulatorEnabled,
		DefaultSimulatedState:   option.Connectivity.DefaultSimulatedState,
	}, logger)
	gate.Start(ctx)
	defer gate.Close()

	UUIDGenerator := uuid.NewNanoIDGenerator(option.Security.IDLength)
	provider := notification.NewTimerProvider(notification.NewLogSink(logger), true, UUIDGenerator)
	scheduler := notification.NewScheduler(provider, kv, notification.Config{
		InactivityDelay: option.Notifications.InactivityDelay,
		LessonDelay:     option.Notifications.LessonDelay,
	}, logger)
	scheduler.BootstrapFirstLaunch(ctx)
	scheduler.HandleAppForeground(ctx)

	jwtUtil := auth.NewJWTUtil(option.Security.JWTMethod,
		option.Security.JWTSecret,
		option.Security.TokenName,
		option.SessionTimeout)

	UserUseCase := user.NewUseCase(jwtUtil, kv, logger)
	ProgressStore := progress.NewStore(kv, logger)
	CourseTracker := course.NewTracker(kv, scheduler, logger)
	Catalog := catalog.NewMemoryCatalog()
	DownloadManager := catalog.NewDownloads(Catalog, gate, catalog.DownloadConfig{
		LessonDelay: option.Downloads.LessonDelay,
		CourseDelay: option.Downloads.CourseDelay,
	}, logger)
	Estimator := storage.NewEstimator(option.Storage.DeviceCapacityGB, option.Storage.AverageBookSizeMB, logger)

	ihttp.Serve(kv, option,
		UserUseCase, ProgressStore, CourseTracker,
		gate, Catalog, DownloadManager, Estimator, scheduler,
		logger)
}
