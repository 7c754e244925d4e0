package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"

	apipkg "github.com/inkwell-org/backend/internal/api"
	cachepkg "github.com/inkwell-org/backend/internal/cache"
	clientpkg "github.com/inkwell-org/backend/internal/client"
	eventpkg "github.com/inkwell-org/backend/internal/event"
	jwtpkg "github.com/inkwell-org/backend/internal/jwt"
	likepkg "github.com/inkwell-org/backend/internal/like"
	ormpkg "github.com/inkwell-org/backend/internal/orm"
)

var serverCommand = &cobra.Command{
	Use:   "server",
	Short: "server",
	Long:  "",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serverCommandImpl()
	},
}

func serverCommandImpl() error {
	if os.Getenv("DEBUG") == "1" {
		godotenv.Load()
	}

	// Application
	application := fx.New(
		fx.NopLogger,
		fx.Provide(
			// Logger
			func() *zap.Logger {
				if os.Getenv("DEBUG") == "1" {
					logger, _ := zap.NewDevelopment()
					return logger
				}
				logger, _ := zap.NewProduction()
				return logger
			},

			// Config/Secrets from .env
			func(logger *zap.Logger) (*jwtpkg.JWT, error) {
				jwtSecret := os.Getenv("JWT_SECRET")
				if jwtSecret == "" {
					jwtSecret = "123456"
				}
				return jwtpkg.NewJWT(jwtSecret), nil
			},

			// Clients
			func(logger *zap.Logger) (*ormpkg.PostgresClient, error) {
				client, err := ormpkg.NewPostgresClient(postgresDSN())
				if err != nil {
					return nil, err
				}
				if err := client.Migrate(); err != nil {
					return nil, err
				}
				if err := client.SeedCategories(); err != nil {
					return nil, err
				}
				return client, nil
			},
			func(logger *zap.Logger) *eventpkg.KafkaClient {
				kafkaClient, err := eventpkg.NewKafkaClient(
					os.Getenv("KAFKA_HOST"),
					os.Getenv("KAFKA_PORT"),
					os.Getenv("KAFKA_TOPIC"),
					os.Getenv("KAFKA_GROUP"),
				)
				if err != nil {
					logger.Warn("kafka not configured, event publishing disabled", zap.Error(err))
					return nil
				}
				return kafkaClient
			},
			func(logger *zap.Logger) *cachepkg.RedisClient {
				return cachepkg.NewRedisClient(
					os.Getenv("REDIS_HOST"),
					os.Getenv("REDIS_PORT"),
					logger,
				)
			},
			func(logger *zap.Logger) *clientpkg.S3Client {
				bucket := os.Getenv("MEDIA_BUCKET")
				if bucket == "" {
					return nil
				}
				mediaClient, err := clientpkg.NewS3Client(
					context.Background(),
					bucket,
					os.Getenv("MEDIA_BASE_URL"),
				)
				if err != nil {
					logger.Warn("media storage not configured, uploads disabled", zap.Error(err))
					return nil
				}
				return mediaClient
			},

			// Like engine
			func(logger *zap.Logger, db *ormpkg.PostgresClient, kafkaClient *eventpkg.KafkaClient) *likepkg.Engine {
				var broker likepkg.Broker
				if kafkaClient != nil {
					broker = kafkaClient
				}
				return likepkg.NewEngine(db, logger, broker)
			},

			// HTTP API
			func(
				lc fx.Lifecycle,
				log *zap.Logger,
				jwt *jwtpkg.JWT,
				db *ormpkg.PostgresClient,
				likes *likepkg.Engine,
				media *clientpkg.S3Client,
				cache *cachepkg.RedisClient,
				broker *eventpkg.KafkaClient,
			) (*apipkg.API, error) {
				api := apipkg.NewAPI(
					log,
					jwt,
					db,
					likes,
					media,
					cache,
					broker,
					os.Getenv("HTTP_HOST"),
					os.Getenv("HTTP_PORT"),
				)
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return api.Start()
					},
					OnStop: func(ctx context.Context) error {
						return api.Stop(ctx)
					},
				})
				return api, nil
			},
		),
		fx.Invoke(func(*apipkg.API) {}),
	)
	application.Run()

	err := application.Err()
	if err != nil {
		os.Exit(1)
	}

	return nil
}

func init() {
	rootCommand.AddCommand(serverCommand)
}
