package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"student-registry/models"
	"student-registry/view"
)

// SessionHandler ведёт форму: добавление в режиме idle, правку в режиме editing
type SessionHandler struct {
	view *view.Synchronizer
}

func NewSessionHandler(v *view.Synchronizer) *SessionHandler {
	return &SessionHandler{view: v}
}

type commitResponse struct {
	Message string       `json:"message"`
	ID      int64        `json:"id"`
	Session view.Session `json:"session"`
}

func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.view.Session())
}

func (h *SessionHandler) BeginEdit(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.view.BeginEdit(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}

	log.Printf("✏️ Editing student %d", id)
	json.NewEncoder(w).Encode(h.view.Session())
}

func (h *SessionHandler) CancelEdit(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	h.view.CancelEdit()
	json.NewEncoder(w).Encode(h.view.Session())
}

func (h *SessionHandler) Commit(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var draft models.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		log.Printf("❌ Error decoding request body: %v", err)
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	// Пустые поля отклоняет хранилище, черновик остаётся в сессии
	id, mode, err := h.view.Commit(r.Context(), draft)
	if err != nil && !errors.Is(err, view.ErrRefresh) {
		writeStoreError(w, err)
		return
	}
	// Запись уже сохранена, устарел только снимок
	if err != nil {
		log.Printf("⚠️ %v", err)
	}

	response := commitResponse{
		Message: "Student Added",
		ID:      id,
		Session: h.view.Session(),
	}
	status := http.StatusCreated
	if mode == view.Editing {
		response.Message = "Student Updated"
		status = http.StatusOK
	}

	log.Printf("✅ %s: ID %d", response.Message, id)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}
