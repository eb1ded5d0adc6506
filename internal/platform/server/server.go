// Package server assembles the HTTP application from configuration. Both the
// long-running binary and the Lambda entry point build their router here.
package server

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	adaptermiddleware "warisin/internal/adapters/http/middleware"
	"warisin/internal/adapters/metrics"
	"warisin/internal/application"
	"warisin/internal/config"
	"warisin/internal/infrastructure/auth"
	"warisin/internal/infrastructure/dynamodb"
	"warisin/internal/infrastructure/genai"
	"warisin/internal/infrastructure/session"
	"warisin/internal/infrastructure/storage"
	httpiface "warisin/internal/interfaces/http"
	"warisin/internal/ports"
)

const segmentName = "warisin-http"

func Build(ctx context.Context, cfg config.Config, log ports.Logger) (*echo.Echo, error) {
	ddbClient, err := dynamodb.NewClient(ctx, cfg.Region, cfg.TableName, cfg.DynamoDBEndpoint)
	if err != nil {
		return nil, fmt.Errorf("dynamodb client: %w", err)
	}
	users := dynamodb.NewUserRepository(ddbClient)
	profiles := dynamodb.NewProfileRepository(ddbClient)
	categories := dynamodb.NewCategoryRepository(ddbClient)
	programs := dynamodb.NewProgramRepository(ddbClient)
	apps := dynamodb.NewApplicationRepository(ddbClient)

	verifier, err := auth.NewVerifier(cfg.IdentityProvider, cfg.FirebaseProjectID, cfg.Region, cfg.CognitoUserPoolID, cfg.CognitoClientID)
	if err != nil {
		return nil, err
	}

	sessions := session.NewStore(session.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB), cfg.SessionTTL)
	if err := sessions.Ping(ctx); err != nil {
		log.Warn(ctx, "redis not reachable at startup", "error", err)
	}

	blobs, err := storage.NewS3Store(ctx, storage.S3Config{
		Bucket:        cfg.S3Bucket,
		Region:        cfg.Region,
		Endpoint:      cfg.S3Endpoint,
		PublicBaseURL: cfg.S3PublicBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}

	var generator ports.TextGenerator
	if cfg.GenAIAPIKey != "" {
		generator = genai.NewClient(genai.Config{
			BaseURL:    cfg.GenAIBaseURL,
			APIKey:     cfg.GenAIAPIKey,
			Model:      cfg.GenAIModel,
			Timeout:    cfg.GenAITimeout,
			MaxRetries: cfg.GenAIMaxRetries,
		})
	} else {
		log.Info(ctx, "GENAI_API_KEY not set, descriptions use the template")
	}

	prom := metrics.New()

	userSvc := application.NewUserService(users, verifier, sessions, log)
	categorySvc := application.NewCategoryService(categories, log)
	if cfg.SeedCategories {
		created, err := categorySvc.Seed(ctx, application.DefaultCategories)
		if err != nil {
			log.Warn(ctx, "category seed failed", "error", err)
		} else if created > 0 {
			log.Info(ctx, "seeded heritage categories", "created", created)
		}
	}

	handlers := httpiface.Handlers{
		Auth: httpiface.NewAuthHandler(userSvc, httpiface.CookieConfig{
			Name:   cfg.SessionCookieName,
			Secure: cfg.CookieSecure,
			TTL:    cfg.SessionTTL,
		}, cfg.IdentityProvider),
		Profiles:     httpiface.NewProfileHandler(application.NewProfileService(users, profiles, programs, apps, log)),
		Categories:   httpiface.NewCategoryHandler(categorySvc),
		Programs:     httpiface.NewProgramHandler(application.NewProgramService(programs, categories, log)),
		Applications: httpiface.NewApplicationHandler(application.NewApplicationService(apps, programs, prom, log)),
		Dashboard:    httpiface.NewDashboardHandler(application.NewDashboardService(programs, apps)),
		Uploads:      httpiface.NewUploadHandler(application.NewUploadService(blobs, log)),
		Descriptions: httpiface.NewDescriptionHandler(application.NewDescriptionService(generator, prom, log)),
	}
	mw := httpiface.Middleware{
		XRay:           adaptermiddleware.XRayMiddleware(segmentName),
		RequestLogger:  adaptermiddleware.RequestLogger(log),
		Metrics:        prom.Middleware(),
		Session:        adaptermiddleware.Session(userSvc, cfg.SessionCookieName),
		GenerateLimit:  adaptermiddleware.PerUserRateLimit(cfg.GenerateRatePerMinute),
		MetricsHandler: prom.Handler(),
	}
	return httpiface.NewRouter(handlers, mw), nil
}
