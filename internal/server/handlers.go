package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kotae-ai/kotae/internal/models"
	"github.com/kotae-ai/kotae/internal/retrieval"
)

// troubleAnswer is what chat callers see on an internal failure. Raw errors
// never reach the end user.
const troubleAnswer = "I'm having trouble answering right now. Please try again in a moment."

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answer, err := s.service.Ask(r.Context(), req.Message)
	if err != nil {
		if errors.Is(err, retrieval.ErrEmptyQuery) {
			s.respondError(w, http.StatusBadRequest, "message cannot be empty")
			return
		}
		s.logger.Error("chat failed", zap.Error(err))
		s.respondJSON(w, http.StatusInternalServerError, models.ChatResponse{
			Success: false,
			Message: troubleAnswer,
			Sources: []string{},
		})
		return
	}

	s.respondJSON(w, http.StatusOK, models.ChatResponse{
		Success: true,
		Message: answer.Message,
		Sources: answer.Sources,
	})
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if err := s.validate.Struct(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "name, email and message are required; email must be valid")
		return
	}

	msg := &models.ContactMessage{
		ID:      uuid.NewString(),
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}
	if err := s.storage.CreateMessage(r.Context(), msg); err != nil {
		s.logger.Error("failed to store contact message", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to store message")
		return
	}

	// Mail failure is logged but never shown to the visitor; the message is
	// already persisted.
	if err := s.mailer.SendContactNotification(msg); err != nil {
		s.logger.Warn("contact notification failed", zap.String("id", msg.ID), zap.Error(err))
	}

	s.respondJSON(w, http.StatusCreated, models.ContactResponse{
		Success: true,
		Message: "Your message has been received! I will get back to you soon.",
		Data:    msg,
	})
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := s.storage.ListMessages(r.Context())
	if err != nil {
		s.logger.Error("failed to list messages", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "failed to list messages")
		return
	}
	s.respondJSON(w, http.StatusOK, models.MessagesResponse{
		Success:  true,
		Count:    len(messages),
		Messages: messages,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.storage.Ping(r.Context()); err != nil {
		s.respondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"error":  "database unreachable",
		})
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status":   "healthy",
		"database": "sqlite",
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
