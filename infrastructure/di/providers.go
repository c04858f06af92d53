package di

import (
	"context"

	"alchemy-backend/application/ports"
	"alchemy-backend/application/services"
	"alchemy-backend/infrastructure/ai"
	"alchemy-backend/infrastructure/config"
	"alchemy-backend/infrastructure/persistence/dynamodb"
	"alchemy-backend/infrastructure/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, err
	}

	return logger, nil
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideS3Client creates an S3 client
func ProvideS3Client(awsCfg aws.Config) *awss3.Client {
	return awss3.NewFromConfig(awsCfg)
}

// ProvideOpenAIClient creates the shared OpenAI client. Constructed once
// at startup and reused across requests.
func ProvideOpenAIClient(cfg *config.Config) openai.Client {
	return openai.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey))
}

// ProvideElementRepository creates the element repository
func ProvideElementRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ElementRepository {
	return dynamodb.NewElementRepository(
		client,
		cfg.DynamoDBTable,
		cfg.PairIndexName,
		cfg.ListIndexName,
		logger,
	)
}

// ProvideGenerator creates the OpenAI details/icon generator
func ProvideGenerator(client openai.Client, cfg *config.Config, logger *zap.Logger) *ai.OpenAIGenerator {
	return ai.NewOpenAIGenerator(client, ai.GeneratorConfig{
		TextModel:  cfg.TextModel,
		ImageModel: cfg.ImageModel,
	}, logger)
}

// ProvideDetailsGenerator exposes the generator through its port
func ProvideDetailsGenerator(generator *ai.OpenAIGenerator) ports.DetailsGenerator {
	return generator
}

// ProvideIconGenerator exposes the generator through its port
func ProvideIconGenerator(generator *ai.OpenAIGenerator) ports.IconGenerator {
	return generator
}

// ProvideIconStore creates the S3-backed icon store
func ProvideIconStore(client *awss3.Client, cfg *config.Config, logger *zap.Logger) ports.IconStore {
	return storage.NewS3IconStore(
		client,
		cfg.IconBucket,
		cfg.AWSRegion,
		cfg.IconBaseURL,
		logger,
	)
}

// ProvideFusionService creates the fusion orchestrator
func ProvideFusionService(
	elements ports.ElementRepository,
	details ports.DetailsGenerator,
	icons ports.IconGenerator,
	store ports.IconStore,
	logger *zap.Logger,
) *services.FusionService {
	return services.NewFusionService(elements, details, icons, store, logger)
}

// ProvideLibraryService creates the library service
func ProvideLibraryService(elements ports.ElementRepository, cfg *config.Config, logger *zap.Logger) *services.LibraryService {
	return services.NewLibraryService(elements, cfg.SeedIconBase, logger)
}

// ProvideGraphService creates the discovery graph service
func ProvideGraphService(elements ports.ElementRepository, logger *zap.Logger) *services.GraphService {
	return services.NewGraphService(elements, logger)
}
