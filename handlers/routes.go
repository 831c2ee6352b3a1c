package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"student-registry/middleware"

	"github.com/gorilla/mux"
)

func SetupRoutes(r *mux.Router, authHandler *AuthHandler,
	studentHandler *StudentHandler,
	sessionHandler *SessionHandler,
	authMiddleware *middleware.AuthMiddleware) {

	r.HandleFunc("/health", healthHandler).Methods("GET")

	// Публичные маршруты API (без аутентификации)
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Защищенные маршруты API
	protectedAPI := r.PathPrefix("/api").Subrouter()
	protectedAPI.Use(authMiddleware.AuthMiddleware)

	protectedAPI.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	// Студенты
	protectedAPI.HandleFunc("/students", studentHandler.GetStudents).Methods("GET")
	protectedAPI.HandleFunc("/students/refresh", studentHandler.RefreshStudents).Methods("POST")
	protectedAPI.HandleFunc("/students/{id}", studentHandler.DeleteStudent).Methods("DELETE")

	// Форма редактирования
	protectedAPI.HandleFunc("/session", sessionHandler.GetSession).Methods("GET")
	protectedAPI.HandleFunc("/session/edit/{id}", sessionHandler.BeginEdit).Methods("POST")
	protectedAPI.HandleFunc("/session/edit", sessionHandler.CancelEdit).Methods("DELETE")
	protectedAPI.HandleFunc("/session/commit", sessionHandler.Commit).Methods("POST")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	response := map[string]interface{}{
		"status":    "ok",
		"service":   "student-registry",
		"timestamp": time.Now().Format(time.RFC3339),
	}

	json.NewEncoder(w).Encode(response)
}
