package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"student-registry/auth"
	"student-registry/middleware"
	"student-registry/models"
)

type AuthHandler struct {
	operator models.User
	tokens   *auth.TokenService
}

// NewAuthHandler принимает оператора с уже захэшированным паролем
func NewAuthHandler(operator models.User, tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{
		operator: operator,
		tokens:   tokens,
	}
}

// Login обрабатывает вход оператора
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var loginReq models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		log.Printf("❌ Error decoding login request: %v", err)
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if loginReq.Email != h.operator.Email || !auth.CheckPassword(loginReq.Password, h.operator.Password) {
		log.Printf("❌ Invalid credentials for: %s", loginReq.Email)
		http.Error(w, `{"error": "Invalid email or password"}`, http.StatusUnauthorized)
		return
	}

	user := h.operator
	token, expiresAt, err := h.tokens.Issue(user)
	if err != nil {
		log.Printf("❌ Error generating token for user %s: %v", user.Email, err)
		http.Error(w, `{"error": "Internal server error"}`, http.StatusInternalServerError)
		return
	}

	// Скрываем пароль в ответе
	user.Password = ""

	log.Printf("✅ User logged in successfully: %s (role: %s)", user.Email, user.Role)
	json.NewEncoder(w).Encode(models.LoginResponse{Token: token, ExpiresAt: expiresAt, User: user})
}

// GetCurrentUser возвращает текущего пользователя
func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	claims := middleware.GetOperatorClaims(r.Context())
	if claims == nil {
		http.Error(w, `{"error": "Not authenticated"}`, http.StatusUnauthorized)
		return
	}

	json.NewEncoder(w).Encode(models.User{Email: claims.Email(), Role: claims.Role})
}
