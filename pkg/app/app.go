// Package app wires configuration, storage, middleware and background jobs
// into a runnable HTTP application.
package app

import (
	contextPkg "context"
	"fmt"
	"os"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/drivevault/drivevault/pkg/configs"
	"github.com/drivevault/drivevault/pkg/context"
	"github.com/drivevault/drivevault/pkg/internal/jobs"
	"github.com/drivevault/drivevault/pkg/internal/model"
	"github.com/drivevault/drivevault/pkg/internal/storage"
	"github.com/drivevault/drivevault/pkg/log"
	"github.com/drivevault/drivevault/pkg/metrics"
	"github.com/drivevault/drivevault/pkg/middleware"
	"github.com/drivevault/drivevault/pkg/rule"
	"github.com/drivevault/drivevault/pkg/scheduler"
)

type App struct {
	Engine *gin.Engine
	config *configs.AppConfig
	sched  *scheduler.Scheduler
}

func NewApp(configPath string) *App {
	ctx := contextPkg.Background()

	if err := configs.InitConfig(configPath); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	// Sets the gin mode from config as a side effect.
	log.Init()

	config := configs.GetConfig()

	// Force validator setup before the first request so request binding
	// resolves the custom tag name.
	rule.Engine()

	if err := metrics.InitMetrics(config.Metrics); err != nil {
		fmt.Printf("Error initializing metrics: %v\n", err)
		os.Exit(1)
	}

	manager, err := storage.Init(ctx)
	if err != nil {
		fmt.Printf("Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	if err := manager.GetDBClient().GetDB().AutoMigrate(model.All()...); err != nil {
		fmt.Printf("Error migrating database schema: %v\n", err)
		os.Exit(1)
	}

	l := log.Logger()
	gin.DefaultWriter = log.NewGinWriter(l, zerolog.InfoLevel)
	gin.DefaultErrorWriter = log.NewGinWriter(l, zerolog.ErrorLevel)

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.CORSMiddleware(config.Server),
		gzip.Gzip(gzip.DefaultCompression),
		middleware.RateLimitMiddleware(config.RateLimit),
		middleware.PrometheusMiddleware(),
		middleware.RequestLogMiddleware(),
		storageMiddleware(manager),
	)

	if config.Metrics.Enabled {
		if err := metrics.StartMetricsServer(config.Metrics); err != nil {
			l.Error().Err(err).Msg("failed to start metrics server")
		}
	}

	sched, err := scheduler.NewScheduler()
	if err != nil {
		fmt.Printf("Error initializing scheduler: %v\n", err)
		os.Exit(1)
	}

	jobCtx := context.WithStorageManager(ctx, manager)
	if err := jobs.InitCronJobs(jobCtx, sched); err != nil {
		fmt.Printf("Error registering cron jobs: %v\n", err)
		os.Exit(1)
	}

	return &App{
		Engine: engine,
		config: config,
		sched:  sched,
	}
}

// storageMiddleware puts the storage manager on every request context so
// handlers can build their services from it.
func storageMiddleware(manager *storage.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(
			context.WithStorageManager(c.Request.Context(), manager))
		c.Next()
	}
}

func (a *App) Run() error {
	a.sched.Start()

	defer func() {
		if err := a.sched.Stop(); err != nil {
			log.Logger().Error().Err(err).Msg("failed to stop scheduler")
		}
	}()

	return a.Engine.Run(fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port))
}
