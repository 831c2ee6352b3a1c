package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"student-registry/auth"
	"student-registry/config"
	"student-registry/database"
	"student-registry/handlers"
	"student-registry/middleware"
	"student-registry/models"
	"student-registry/store"
	"student-registry/view"

	"github.com/gorilla/mux"
)

func main() {
	log.Println("🚀 Starting Student Registry...")

	// Загрузка конфигурации
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Invalid configuration: ", err)
	}
	log.Printf("📋 Configuration loaded: Server Port %s, store driver %s", cfg.ServerPort, cfg.StoreDriver)

	recordStore, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatal("❌ Error initializing database: ", err)
	}
	defer closeStore()

	synchronizer := view.NewSynchronizer(recordStore)
	synchronizer.Observe(func(students []models.Student) {
		log.Printf("🔄 Student list refreshed: %d records", len(students))
	})
	if err := synchronizer.Refresh(context.Background()); err != nil {
		log.Fatal("❌ Error loading students: ", err)
	}

	hashedPassword, err := auth.HashPassword(cfg.OperatorPassword)
	if err != nil {
		log.Fatal("❌ Error hashing operator password: ", err)
	}
	operator := models.User{Email: cfg.OperatorEmail, Password: hashedPassword, Role: models.RoleOperator}

	tokens := auth.NewTokenService(cfg.JWTSecret, time.Duration(cfg.JWTExpiry)*time.Hour)
	authMiddleware := middleware.NewAuthMiddleware(tokens)

	r := mux.NewRouter()
	r.Use(middleware.Logging)
	handlers.SetupRoutes(r,
		handlers.NewAuthHandler(operator, tokens),
		handlers.NewStudentHandler(synchronizer),
		handlers.NewSessionHandler(synchronizer),
		authMiddleware)

	serverAddr := ":" + cfg.ServerPort
	log.Printf("✅ Server successfully started on %s", serverAddr)
	log.Printf("🔐 JWT Expiry: %d hours", cfg.JWTExpiry)

	log.Fatal(http.ListenAndServe(serverAddr, middleware.CORS(r)))
}

// openStore выбирает реализацию хранилища по STORE_DRIVER
func openStore(cfg *config.Config) (store.RecordStore, func(), error) {
	if cfg.StoreDriver == config.DriverGorm {
		db, err := database.InitGormDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		if cfg.DBReset {
			if err := database.ResetGorm(db); err != nil {
				sqlDB.Close()
				return nil, nil, err
			}
		}
		return store.NewGormStore(db), func() { sqlDB.Close() }, nil
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	if cfg.DBReset {
		if err := database.Reset(db); err != nil {
			db.Close()
			return nil, nil, err
		}
	}
	return store.NewSQLStore(db), func() { db.Close() }, nil
}
