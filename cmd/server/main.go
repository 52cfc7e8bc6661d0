package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fadilmartias/cv-reviewer/internal/config"
	"github.com/fadilmartias/cv-reviewer/internal/domain/fiber/handler"
	"github.com/fadilmartias/cv-reviewer/internal/middleware"
	"github.com/fadilmartias/cv-reviewer/internal/model"
	"github.com/fadilmartias/cv-reviewer/internal/repository"
	"github.com/fadilmartias/cv-reviewer/internal/service"
	"github.com/fadilmartias/cv-reviewer/internal/storage"
	"github.com/fadilmartias/cv-reviewer/internal/usecase"
	"github.com/fadilmartias/cv-reviewer/internal/web"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	uploadConfig := config.LoadUploadConfig()
	sessionConfig := config.LoadSessionConfig()

	app := fiber.New(newFiberConfig(appConfig, uploadConfig))
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(120, 1*time.Minute))

	intake := service.NewIntakeService(uploadConfig.Dir)
	if err := intake.EnsureUploadDir(); err != nil {
		log.Fatal(err)
	}
	app.Static("/uploads", uploadConfig.Dir)

	analyzer, structured, err := newAnalyzer(appConfig.Provider)
	if err != nil {
		log.Fatal(err)
	}

	var (
		reviewRepo repository.ReviewRepositoryInterface
		skillRepo  repository.SkillRepositoryInterface
	)
	if dbConfig := config.LoadDBConfig(); dbConfig.Enabled() {
		db := ConnectDB(dbConfig, appConfig)
		reviewRepo = repository.NewReviewRepository(db)
		skillRepo = repository.NewSkillRepository(db)
	} else {
		log.Println("DB_HOST not set, reviews will not be stored and the skills catalog is disabled")
	}

	var sessionStorage fiber.Storage
	if sessionConfig.RedisAddr != "" {
		redisStorage, err := storage.NewRedisStorage(sessionConfig)
		if err != nil {
			log.Fatal(err)
		}
		defer redisStorage.Close()
		sessionStorage = redisStorage
	}
	sessions := middleware.NewFlowSessions(sessionConfig, sessionStorage)

	normalizer := service.NewNormalizerService(intake, nil)
	prompts := service.NewPromptLoader(uploadConfig.PromptPath)
	reviewUsecase := usecase.NewReviewUsecase(intake, normalizer, prompts, analyzer, reviewRepo, structured)
	skillUsecase := usecase.NewSkillUsecase(skillRepo)

	handler.NewReviewHandler(reviewUsecase, sessions).RegisterRoutes(app)
	handler.NewAPIHandler(reviewUsecase).RegisterRoutes(app)
	handler.NewSkillHandler(skillUsecase).RegisterRoutes(app)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server")
		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("Server running on %s using %s", appConfig.Port, appConfig.Provider)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

// newFiberConfig caps request bodies at the upload limit; larger requests are
// answered with 413 before any handler runs.
func newFiberConfig(appConfig *config.AppConfig, uploadConfig *config.UploadConfig) fiber.Config {
	return fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: int(uploadConfig.MaxBytes),
		Views:     web.NewEngine(),
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			// Status code defaults to 500
			code := fiber.StatusInternalServerError

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	}
}

// newAnalyzer builds the configured provider and reports whether it should be asked
// for schema-shaped output.
func newAnalyzer(provider string) (service.AnalyzerInterface, bool, error) {
	switch provider {
	case "openrouter":
		cfg := config.LoadOpenRouterConfig()
		svc, err := service.NewOpenRouterService(cfg)
		if err != nil {
			return nil, false, err
		}
		return svc, cfg.Structured, nil
	case "gemini", "":
		cfg := config.LoadGeminiConfig()
		svc, err := service.NewGeminiService(context.Background(), cfg)
		if err != nil {
			return nil, false, err
		}
		return svc, cfg.Structured, nil
	}
	return nil, false, errors.New("unknown AI_PROVIDER " + provider)
}

func ConnectDB(dbConfig *config.DBConfig, appConfig *config.AppConfig) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatalf("Could not get database instance: %v", err)
	}
	if !appConfig.IsProduction() {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	if err := db.AutoMigrate(&model.Review{}, &model.Skill{}); err != nil {
		log.Fatal("migration failed: ", err)
	}
	return db
}
