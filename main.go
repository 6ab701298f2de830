package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"gcghub/database"
	"gcghub/handlers"
	repository "gcghub/repositories"
	routes "gcghub/routes"
	services "gcghub/services"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const defaultMaxFileSize = 10 * 1024 * 1024

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	mongoURI := os.Getenv("MONGO_URI")
	jwtSecret := os.Getenv("JWT_SECRET")
	if mongoURI == "" || jwtSecret == "" {
		log.Fatal("Missing required environment variables MONGO_URI and JWT_SECRET")
	}

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "gcghub"
	}

	jwtExpiry := 24 * time.Hour
	if raw := os.Getenv("JWT_EXPIRES_HOURS"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatal("Invalid JWT_EXPIRES_HOURS:", err)
		}
		jwtExpiry = time.Duration(hours) * time.Hour
	}

	maxFileSize := int64(defaultMaxFileSize)
	if raw := os.Getenv("MAX_FILE_SIZE"); raw != "" {
		size, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.Fatal("Invalid MAX_FILE_SIZE:", err)
		}
		maxFileSize = size
	}

	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "http://localhost:3000"
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	clientOptions := options.Client().ApplyURI(mongoURI)
	client, err := mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			log.Fatal("Failed to disconnect from MongoDB:", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	sugar.Infow("connected to MongoDB", "database", dbName)

	db := client.Database(dbName)

	if err := database.CreateIndexes(db); err != nil {
		log.Printf("Warning: Failed to create indexes: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	yearRepo := repository.NewYearRepository(db)
	aspectRepo := repository.NewAspectRepository(db)
	checklistRepo := repository.NewChecklistRepository(db)
	unitRepo := repository.NewOrgUnitRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	fileRepo := repository.NewFileRepository(db)

	authService := services.NewAuthService(userRepo, jwtSecret, jwtExpiry)
	userService := services.NewUserService(userRepo, fileRepo, assignmentRepo)
	yearService := services.NewYearService(yearRepo, aspectRepo, checklistRepo, unitRepo, userRepo)
	aspectService := services.NewAspectService(aspectRepo, yearRepo, checklistRepo)
	checklistService := services.NewChecklistService(checklistRepo, aspectRepo, yearRepo, assignmentRepo, unitRepo, fileRepo)
	unitService := services.NewOrgUnitService(unitRepo, yearRepo, assignmentRepo)
	assignmentService := services.NewAssignmentService(assignmentRepo, checklistRepo, unitRepo)
	fileService := services.NewFileService(fileRepo, checklistRepo, maxFileSize, sugar)

	handler := routes.Setup(routes.Handlers{
		Auth:       handlers.NewAuthHandler(authService),
		User:       handlers.NewUserHandler(userService),
		Year:       handlers.NewYearHandler(yearService),
		Aspect:     handlers.NewAspectHandler(aspectService),
		Checklist:  handlers.NewChecklistHandler(checklistService),
		OrgUnit:    handlers.NewOrgUnitHandler(unitService),
		Assignment: handlers.NewAssignmentHandler(assignmentService),
		File:       handlers.NewFileHandler(fileService, maxFileSize),
	}, jwtSecret, userRepo, corsOrigin)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("Server starting on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
