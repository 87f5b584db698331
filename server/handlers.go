// Copyright 2025 The A2A UI Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/a2anet/a2a-ui/a2a"
	"github.com/a2anet/a2a-ui/chat"
	"github.com/a2anet/a2a-ui/client"
	"github.com/a2anet/a2a-ui/telemetry"
)

// contextView is the wire shape of one conversation context.
type contextView struct {
	ContextID      string                 `json:"contextId"`
	AgentName      string                 `json:"agentName,omitempty"`
	AgentURL       string                 `json:"agentUrl,omitempty"`
	Items          []a2a.ConversationItem `json:"items"`
	PendingMessage *a2a.Message           `json:"pendingMessage,omitempty"`
	MessageText    string                 `json:"messageText,omitempty"`
	Loading        bool                   `json:"loading"`
}

// selectionView is the wire shape of the current selection.
type selectionView struct {
	ContextID  string `json:"contextId,omitempty"`
	TaskID     string `json:"taskId,omitempty"`
	ArtifactID string `json:"artifactId,omitempty"`
}

func viewOf(c *chat.Context) contextView {
	v := contextView{
		ContextID:      c.ContextID,
		Items:          c.Items,
		PendingMessage: c.PendingMessage,
		MessageText:    c.MessageText,
		Loading:        c.Loading,
	}
	if v.Items == nil {
		v.Items = []a2a.ConversationItem{}
	}
	if c.Agent != nil {
		v.AgentName = c.Agent.Name
		v.AgentURL = c.Agent.URL
	}
	return v
}

func (s *Server) selectionView() selectionView {
	sel := s.manager.Selection()
	return selectionView{
		ContextID:  sel.ContextID(),
		TaskID:     sel.TaskID(),
		ArtifactID: sel.ArtifactID(),
	}
}

func (s *Server) handleAddAgent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	card, err := s.manager.RegisterAgent(r.Context(), req.URL)
	if err != nil {
		telemetry.Metrics.ErrorsTotal.WithLabelValues("agent_card").Inc()
		status := http.StatusBadGateway
		var httpErr *client.HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.StatusCode
		}
		writeError(w, status, "could not resolve agent card")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"agentCard": card})
}

func (s *Server) handleListAgents(w http.ResponseWriter, r *http.Request) {
	registry := s.manager.Registry()
	var activeURL string
	if active := registry.Active(); active != nil {
		activeURL = active.URL
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"agents":    registry.Agents(),
		"activeUrl": activeURL,
	})
}

func (s *Server) handleSelectAgent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}
	if s.manager.Registry().Get(req.URL) == nil {
		writeError(w, http.StatusNotFound, "agent not registered")
		return
	}
	s.manager.SelectAgent(req.URL)
	writeJSON(w, http.StatusOK, map[string]string{"activeUrl": req.URL})
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	if err := s.manager.SendMessage(r.Context(), req.Text); err != nil {
		switch {
		case errors.Is(err, chat.ErrNoActiveAgent):
			writeError(w, http.StatusConflict, "no active agent selected")
		case errors.Is(err, chat.ErrSendInFlight):
			writeError(w, http.StatusConflict, "a send is already in flight")
		default:
			writeError(w, http.StatusBadGateway, "send failed")
		}
		return
	}

	resp := map[string]any{"selection": s.selectionView()}
	if active := s.manager.Store().ActiveContext(); active != nil {
		resp["context"] = viewOf(active)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleNewChat(w http.ResponseWriter, r *http.Request) {
	s.manager.NewChat()
	writeJSON(w, http.StatusOK, map[string]any{"selection": s.selectionView()})
}

func (s *Server) handleListContexts(w http.ResponseWriter, r *http.Request) {
	contexts := s.manager.Store().Contexts()
	views := make([]contextView, 0, len(contexts))
	for _, c := range contexts {
		views = append(views, viewOf(c))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"contexts":  views,
		"selection": s.selectionView(),
	})
}

func (s *Server) handleGetContext(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c := s.manager.Store().Context(id)
	if c == nil {
		writeError(w, http.StatusNotFound, "context not found")
		return
	}
	writeJSON(w, http.StatusOK, viewOf(c))
}

func (s *Server) handleSelectContext(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.manager.Store().Context(id) == nil {
		writeError(w, http.StatusNotFound, "context not found")
		return
	}
	s.manager.SelectContext(id)
	writeJSON(w, http.StatusOK, map[string]any{"selection": s.selectionView()})
}

func (s *Server) handleSelectTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TaskID string `json:"taskId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TaskID == "" {
		writeError(w, http.StatusBadRequest, "taskId is required")
		return
	}
	s.manager.Selection().SelectTask(req.TaskID)
	writeJSON(w, http.StatusOK, map[string]any{"selection": s.selectionView()})
}

func (s *Server) handleSelectArtifact(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ArtifactID string `json:"artifactId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ArtifactID == "" {
		writeError(w, http.StatusBadRequest, "artifactId is required")
		return
	}
	s.manager.Selection().SelectArtifact(req.ArtifactID)
	writeJSON(w, http.StatusOK, map[string]any{"selection": s.selectionView()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
