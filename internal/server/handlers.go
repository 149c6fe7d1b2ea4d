package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	conversationrouter "academy-assistant/internal/agents/routing/conversation-router"
	apperrors "academy-assistant/internal/common/errors"
	"academy-assistant/internal/conversation"
	"academy-assistant/internal/models"
)

const maxBodyBytes = 64 << 10

type messageRequest struct {
	Message string `json:"message"`
}

type turnResponse struct {
	ConversationID string `json:"conversationId"`
	*conversationrouter.Reply
}

type conversationResponse struct {
	ConversationID string           `json:"conversationId"`
	UserType       models.UserType  `json:"userType"`
	Member         *models.Member   `json:"member,omitempty"`
	History        []models.Message `json:"history"`
	Status         string           `json:"status"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	conv := models.NewConversation(s.newID())
	reply := s.router.Start(conv)

	if err := s.store.Save(r.Context(), conv); err != nil {
		s.errors.WriteHTTP(w, r, apperrors.NewSessionStoreFailedError("save", err))
		return
	}

	s.logger.Info("Conversation started", map[string]interface{}{"conversationId": conv.ID})
	writeJSON(w, http.StatusCreated, turnResponse{ConversationID: conv.ID, Reply: reply})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	conv, err := s.load(r.Context(), r.PathValue("id"))
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}

	history := conv.History
	if history == nil {
		history = []models.Message{}
	}
	writeJSON(w, http.StatusOK, conversationResponse{
		ConversationID: conv.ID,
		UserType:       conv.UserType,
		Member:         conv.Member,
		History:        history,
		Status:         s.router.StatusLine(conv),
		CreatedAt:      conv.CreatedAt,
		UpdatedAt:      conv.UpdatedAt,
	})
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.errors.WriteHTTP(w, r, apperrors.NewInvalidRequestError("request body too large or unreadable"))
		return
	}
	if result := s.validator.ValidateBytes(body); !result.Valid {
		s.errors.WriteHTTP(w, r, apperrors.NewInvalidRequestError(strings.Join(result.GetErrorMessages(), "; ")))
		return
	}
	var req messageRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errors.WriteHTTP(w, r, apperrors.NewInvalidRequestError(err.Error()))
		return
	}

	unlock := s.locker.Lock(id)
	defer unlock()

	conv, err := s.load(r.Context(), id)
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}

	start := time.Now()
	reply := s.router.Handle(r.Context(), conv, req.Message)
	s.obs.RecordTurn(r.Context(), string(reply.UserType), reply.Stage, time.Since(start))

	if err := s.store.Save(r.Context(), conv); err != nil {
		s.errors.WriteHTTP(w, r, apperrors.NewSessionStoreFailedError("save", err))
		return
	}
	writeJSON(w, http.StatusOK, turnResponse{ConversationID: id, Reply: reply})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	unlock := s.locker.Lock(id)
	defer unlock()

	conv, err := s.load(r.Context(), id)
	if err != nil {
		s.errors.WriteHTTP(w, r, err)
		return
	}
	reply := s.router.Restart(conv)
	if err := s.store.Save(r.Context(), conv); err != nil {
		s.errors.WriteHTTP(w, r, apperrors.NewSessionStoreFailedError("save", err))
		return
	}
	writeJSON(w, http.StatusOK, turnResponse{ConversationID: id, Reply: reply})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	unlock := s.locker.Lock(id)
	defer unlock()

	if err := s.store.Delete(r.Context(), id); err != nil {
		s.errors.WriteHTTP(w, r, apperrors.NewSessionStoreFailedError("delete", err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status, code := "ready", http.StatusOK
	checks := make(map[string]string, len(s.checks))
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			checks[name] = err.Error()
			status, code = "not_ready", http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	writeJSON(w, code, map[string]interface{}{
		"status": status,
		"checks": checks,
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) load(ctx context.Context, id string) (*models.Conversation, error) {
	conv, err := s.store.Load(ctx, id)
	if errors.Is(err, conversation.ErrNotFound) {
		return nil, apperrors.NewSessionNotFoundError(id)
	}
	if err != nil {
		return nil, apperrors.NewSessionStoreFailedError("load", err)
	}
	return conv, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
