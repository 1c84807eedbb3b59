package main

import (
	"context"
	"errors"
	"io"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin"
	"github.com/estafette/estafette-ci-buildstate/pkg/api"
	"github.com/estafette/estafette-ci-buildstate/pkg/buildlog"
	"github.com/estafette/estafette-ci-buildstate/pkg/clients/database"
	"github.com/estafette/estafette-ci-buildstate/pkg/clients/executor"
	"github.com/estafette/estafette-ci-buildstate/pkg/clients/queue"
	"github.com/estafette/estafette-ci-buildstate/pkg/services/buildservice"
	"github.com/estafette/estafette-ci-buildstate/pkg/services/persistence"
	crypt "github.com/estafette/estafette-ci-crypt"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	jprom "github.com/uber/jaeger-lib/metrics/prometheus"
)

const appName = "estafette-ci-buildstate"

var (
	version   string
	branch    string
	revision  string
	buildDate string
	goVersion = runtime.Version()
)

var (
	// flags
	prometheusMetricsAddress = kingpin.Flag("metrics-listen-address", "The address to listen on for Prometheus metrics requests.").Default(":9001").String()
	prometheusMetricsPath    = kingpin.Flag("metrics-path", "The path to listen for Prometheus metrics requests.").Default("/metrics").String()

	configFilePath      = kingpin.Flag("config-file-path", "The path to yaml config file configuring this application.").Default("/configs/config.yaml").Envar("CONFIG_FILE_PATH").String()
	secretDecryptionKey = kingpin.Flag("secret-decryption-key", "The AES-256 key used to decrypt secrets that have been encrypted with it.").Envar("SECRET_DECRYPTION_KEY").String()
	watchConfig         = kingpin.Flag("watch-config", "Reload the configuration when the config file changes.").Default("true").Envar("WATCH_CONFIG").Bool()

	shutdownTimeout = kingpin.Flag("shutdown-timeout", "The time to wait for in-flight requests and the final flush of live builds.").Default("30s").Envar("SHUTDOWN_TIMEOUT").Duration()
)

func main() {

	// parse command line parameters
	kingpin.Parse()

	// configure json logging
	initLogging()

	closer := initJaeger()
	defer closer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	// start prometheus
	go startPrometheus()

	secretHelper := crypt.NewSecretHelper(*secretDecryptionKey, false)
	configReader := api.NewConfigReader(secretHelper)

	config, err := configReader.ReadConfigFromFile(*configFilePath, true)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed reading configuration")
	}

	databaseClient, queueClient, executorClient := getClients(ctx, config)

	// route the output of every command the executor runs into the log of the build it runs for
	buildlog.InstallInterceptor(executorClient)

	buildService := getServices(config, databaseClient, queueClient, executorClient)

	if *watchConfig {
		configWatcher, err := api.NewConfigWatcher(*configFilePath, configReader, true, func(ctx context.Context, config *api.APIConfig) {
			log.Info().Msg("Configuration reloaded")
			if buildlog.InstallInterceptor(executorClient) {
				log.Warn().Msg("Build log interceptor was missing and has been installed again")
			}
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed creating configuration watcher")
		}
		if err = configWatcher.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed starting configuration watcher")
		}
		defer configWatcher.Stop()
	}

	srv := handleRequests(config, buildService)

	<-sigs
	log.Debug().Msg("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), *shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful server shutdown failed")
	}

	// store writes that failed earlier get one more chance before the in-memory builds are gone
	if err := buildService.FlushAll(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Flushing live builds failed")
	}

	queueClient.Close(shutdownCtx)

	log.Info().Msg("Server gracefully stopped")
}

func initLogging() {

	zerolog.LevelFieldName = "severity"
	zerolog.TimeFieldFormat = time.RFC3339Nano

	log.Logger = zerolog.New(os.Stdout).With().
		Timestamp().
		Str("app", appName).
		Str("version", version).
		Logger()

	stdlog.SetFlags(0)
	stdlog.SetOutput(log.Logger)

	log.Info().
		Str("branch", branch).
		Str("revision", revision).
		Str("buildDate", buildDate).
		Str("goVersion", goVersion).
		Msgf("Starting %v version %v...", appName, version)
}

// jaegerLogger forwards jaeger's own messages to zerolog
type jaegerLogger struct{}

func (jaegerLogger) Error(msg string) {
	log.Error().Msg(msg)
}

func (jaegerLogger) Infof(msg string, args ...interface{}) {
	log.Debug().Msgf(msg, args...)
}

// initJaeger configures the global tracer from the JAEGER_* environment variables
func initJaeger() io.Closer {

	cfg, err := jaegercfg.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("Generating Jaeger config from environment variables failed")
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = appName
	}

	closer, err := cfg.InitGlobalTracer(cfg.ServiceName, jaegercfg.Metrics(jprom.New()), jaegercfg.Logger(jaeger.Logger(jaegerLogger{})))
	if err != nil {
		log.Fatal().Err(err).Msg("Generating Jaeger tracer failed")
	}

	log.Debug().Msgf("Tracing %v with global tracer %T", cfg.ServiceName, opentracing.GlobalTracer())

	return closer
}

func startPrometheus() {
	log.Debug().
		Str("port", *prometheusMetricsAddress).
		Str("path", *prometheusMetricsPath).
		Msg("Serving Prometheus metrics...")

	http.Handle(*prometheusMetricsPath, promhttp.Handler())

	if err := http.ListenAndServe(*prometheusMetricsAddress, nil); err != nil {
		log.Fatal().Err(err).Msg("Starting Prometheus listener failed")
	}
}

func getClients(ctx context.Context, config *api.APIConfig) (database.Client, queue.Client, executor.Client) {

	log.Debug().Msg("Creating clients...")

	databaseClient := database.NewClient(config)
	databaseClient = database.NewLoggingClient(databaseClient)
	databaseClient = database.NewMetricsClient(databaseClient, api.NewRequestCounter("database_client"), api.NewRequestHistogram("database_client"))
	databaseClient = database.NewTracingClient(databaseClient)

	if err := databaseClient.Connect(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed connecting to database")
	}
	if err := databaseClient.AwaitDatabaseReadiness(ctx); err != nil {
		log.Fatal().Err(err).Msg("Database is not ready")
	}
	if err := databaseClient.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed ensuring database schema")
	}

	queueClient := queue.NewClient(config.Queue)
	queueClient = queue.NewLoggingClient(queueClient)
	queueClient = queue.NewTracingClient(queueClient)

	// build notifications are best effort, the service runs without them
	if err := queueClient.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed connecting to queue, build notifications won't be published")
	}

	executorClient := executor.NewClient(config.Executor)
	executorClient = executor.NewLoggingClient(executorClient)
	executorClient = executor.NewMetricsClient(executorClient, api.NewRequestCounter("executor_client"), api.NewRequestHistogram("executor_client"))
	executorClient = executor.NewTracingClient(executorClient)

	return databaseClient, queueClient, executorClient
}

func getServices(config *api.APIConfig, databaseClient database.Client, queueClient queue.Client, executorClient executor.Client) buildservice.Service {

	log.Debug().Msg("Creating services...")

	syncer := persistence.NewSyncer(config, databaseClient, queueClient)
	syncer = persistence.NewLoggingSyncer(syncer)
	syncer = persistence.NewMetricsSyncer(syncer, api.NewRequestCounter("persistence_syncer"), api.NewRequestHistogram("persistence_syncer"))
	syncer = persistence.NewTracingSyncer(syncer)

	buildService := buildservice.NewService(config, databaseClient, syncer, executorClient)
	buildService = buildservice.NewLoggingService(buildService)
	buildService = buildservice.NewMetricsService(buildService, api.NewRequestCounter("build_service"), api.NewRequestHistogram("build_service"))
	buildService = buildservice.NewTracingService(buildService)

	return buildService
}

func createRouter() *gin.Engine {

	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = log.Logger
	gin.DisableConsoleColor()

	router := gin.New()

	router.Use(api.ZeroLogMiddleware())
	router.Use(api.OpenTracingMiddleware())
	router.Use(gin.Recovery())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	return router
}

func handleRequests(config *api.APIConfig, buildService buildservice.Service) *http.Server {

	log.Debug().
		Str("address", config.APIServer.ListenAddress).
		Msg("Serving api calls...")

	router := createRouter()

	buildHandler := buildservice.NewHandler(config, buildService)
	buildHandler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              config.APIServer.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Starting gin router failed")
		}
	}()

	return srv
}
