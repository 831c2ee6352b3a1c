package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"student-registry/models"
	"student-registry/store"
	"student-registry/view"

	"github.com/gorilla/mux"
)

type StudentHandler struct {
	view *view.Synchronizer
}

func NewStudentHandler(v *view.Synchronizer) *StudentHandler {
	return &StudentHandler{view: v}
}

// GetStudents отдаёт снимок на момент последнего обновления
func (h *StudentHandler) GetStudents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeList(w, h.view.Snapshot())
}

func (h *StudentHandler) RefreshStudents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := h.view.Refresh(r.Context()); err != nil {
		log.Printf("❌ Error refreshing students: %v", err)
		http.Error(w, `{"error": "Failed to read students"}`, http.StatusInternalServerError)
		return
	}

	writeList(w, h.view.Snapshot())
}

func (h *StudentHandler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	log.Printf("🗑️ Deleting student with ID: %d", id)

	err := h.view.Remove(r.Context(), id)
	if err != nil && !errors.Is(err, view.ErrRefresh) {
		writeStoreError(w, err)
		return
	}
	if err != nil {
		log.Printf("⚠️ %v", err)
	}

	log.Printf("✅ Student %d deleted", id)
	json.NewEncoder(w).Encode(models.MessageResponse{Message: "Student Deleted"})
}

func writeList(w http.ResponseWriter, students []models.Student) {
	response := models.ListResponse{
		Count: len(students),
		Items: students,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("❌ Error encoding response: %v", err)
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		log.Printf("❌ Invalid student id %q", mux.Vars(r)["id"])
		http.Error(w, `{"error": "Invalid student ID"}`, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		log.Printf("❌ %v", err)
		http.Error(w, `{"error": "Student not found"}`, http.StatusNotFound)
	case errors.Is(err, store.ErrInvalidStudent):
		log.Printf("❌ Validation failed: %v", err)
		http.Error(w, `{"error": "Name, email and course are required"}`, http.StatusBadRequest)
	default:
		log.Printf("❌ Database error: %v", err)
		http.Error(w, `{"error": "Internal server error"}`, http.StatusInternalServerError)
	}
}
