// @title Orienta Bot API
// @version 1.0
// @description School-orientation assistant for the ISIS G.D. Romagnosi: chat with a Gemini-backed assistant, take the orientation quiz, listen to spoken replies and animate images.
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"orientabot/internal/adapter/gemini"
	"orientabot/internal/config"
	"orientabot/internal/handler"
	"orientabot/internal/logger"
	"orientabot/internal/middleware"
	"orientabot/internal/service"

	_ "orientabot/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		// Process request
		err := c.Next()

		// Log request details
		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	// One Gemini client backs chat, speech and video
	geminiClient, err := gemini.NewClient(ctx, cfg.Gemini)
	if err != nil {
		appLogger.Fatal("Failed to create Gemini client", zap.Error(err))
	}
	appLogger.Info("Gemini client initialized",
		zap.String("chat_model", cfg.Gemini.ChatModel),
		zap.String("speech_model", cfg.Gemini.SpeechModel),
		zap.String("video_model", cfg.Gemini.VideoModel),
	)

	// Initialize services
	audioService := service.NewAudioService(geminiClient, cfg.Audio)
	chatService, err := service.NewChatService(ctx, geminiClient, audioService, cfg.Audio)
	if err != nil {
		appLogger.Fatal("Failed to create chat session", zap.Error(err))
	}
	appLogger.Info("Chat session initialized")

	orientationService := service.NewOrientationService()
	videoService := service.NewVideoService(geminiClient, cfg.Video)

	// Initialize handlers
	chatHandler := handler.NewChatHandler(chatService, audioService)
	quizHandler := handler.NewQuizHandler(orientationService)
	videoHandler := handler.NewVideoHandler(videoService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    20 * 1024 * 1024, // PDF and image uploads
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	// Swagger handler
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API group
	apiGroup := app.Group("/api")

	// Chat routes
	chatGroup := apiGroup.Group("/chat")
	chatGroup.Get("/messages", chatHandler.GetTranscript)
	chatGroup.Post("/messages", chatHandler.SendMessage)
	chatGroup.Post("/messages/:id/audio", chatHandler.PlayAudio)
	chatGroup.Post("/attachment", chatHandler.Attach)
	chatGroup.Delete("/attachment", chatHandler.ClearAttachment)
	chatGroup.Post("/reset", chatHandler.Reset)

	// Orientation quiz routes
	quizGroup := apiGroup.Group("/quiz")
	quizGroup.Get("/questions", quizHandler.GetQuestions)
	quizGroup.Post("/runs", quizHandler.StartRun)
	quizGroup.Get("/runs/:id", quizHandler.GetRun)
	quizGroup.Post("/runs/:id/answers", quizHandler.SubmitAnswer)
	quizGroup.Delete("/runs/:id", quizHandler.CloseRun)

	// Video animation routes
	videoGroup := apiGroup.Group("/video")
	videoGroup.Post("/animations", videoHandler.StartAnimation)
	videoGroup.Get("/animations/:id", videoHandler.GetJob)
	videoGroup.Get("/animations/:id/content", videoHandler.GetJobContent)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
