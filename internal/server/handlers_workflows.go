package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/fivedigital/contentflow/internal/engine"
)

// ---------------------------------------------------------------------
// Workflow Handlers
// ---------------------------------------------------------------------

type WorkflowCreateRequest struct {
	EmployeeID   string `json:"employeeId"`
	InputContent string `json:"inputContent"`
}

type ContentRequest struct {
	Content string `json:"content"`
}

type SelectEmployeeRequest struct {
	EmployeeID string `json:"employeeId"`
}

// WorkflowResponse is the wire shape for every workflow command result.
type WorkflowResponse struct {
	Workflow        any    `json:"workflow"`
	AlreadyApproved bool   `json:"alreadyApproved,omitempty"`
	Delivered       bool   `json:"delivered,omitempty"`
	LastError       string `json:"lastError,omitempty"`
}

func workflowResponse(result *engine.Result) WorkflowResponse {
	return WorkflowResponse{
		Workflow:        result.Workflow,
		AlreadyApproved: result.AlreadyApproved,
		Delivered:       result.Delivered,
		LastError:       result.LastError,
	}
}

func (s *Server) handleCreateWorkflow(w http.ResponseWriter, r *http.Request) {
	var req WorkflowCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.EmployeeID == "" {
		s.errorResponse(w, http.StatusBadRequest, "employeeId is required")
		return
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid employeeId format")
		return
	}

	result, err := s.engine.Create(r.Context(), employeeID, req.InputContent)
	if err != nil {
		s.commandError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, workflowResponse(result))
}

func (s *Server) handleListWorkflows(w http.ResponseWriter, r *http.Request) {
	var employeeID *uuid.UUID
	if raw := r.URL.Query().Get("employee_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid employee_id format")
			return
		}
		employeeID = &id
	}

	workflows, err := s.store.ListWorkflows(r.Context(), employeeID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"workflows": workflows,
		"count":     len(workflows),
	})
}

func (s *Server) handleGetWorkflow(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := s.engine.Load(r.Context(), id)
	if err != nil {
		s.commandError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, workflowResponse(result))
}

func (s *Server) handleDeleteWorkflow(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := s.engine.Discard(r.Context(), id); err != nil {
		s.commandError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ---------------------------------------------------------------------
// Workflow Commands
// ---------------------------------------------------------------------

func (s *Server) handleSetInput(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	var req ContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.engine.SetInput(r.Context(), id, req.Content)
	if err != nil {
		s.commandError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, workflowResponse(result))
}

func (s *Server) handleSelectEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	var req SelectEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid employeeId format")
		return
	}

	result, err := s.engine.SelectEmployee(r.Context(), id, employeeID)
	if err != nil {
		s.commandError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, workflowResponse(result))
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := s.engine.Generate(r.Context(), id)
	if err != nil {
		s.commandError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, workflowResponse(result))
}

// handleGenerateStream runs generation and reports progress over SSE. The
// generation itself is a single blocking call; the stream exists so clients
// can show stage changes without polling.
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	stream, err := newEventStream(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	stream.send("status", map[string]string{"status": "GENERATING"}) //nolint:errcheck

	result, err := s.engine.Generate(r.Context(), id)
	if err != nil {
		stream.sendError(err.Error())
		return
	}

	stream.send("content", map[string]string{ //nolint:errcheck
		"generatedContent": result.Workflow.GeneratedContent,
	})
	stream.sendComplete(id.String(), string(result.Workflow.Status))
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	var req ContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.engine.Edit(r.Context(), id, req.Content)
	if err != nil {
		s.commandError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, workflowResponse(result))
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	var req ContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.engine.Save(r.Context(), id, req.Content)
	if err != nil {
		s.commandError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, workflowResponse(result))
}

func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := s.engine.Approve(r.Context(), id)
	if err != nil {
		s.commandError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, workflowResponse(result))
}

func (s *Server) handleNotify(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := s.engine.Notify(r.Context(), id)
	if err != nil {
		s.commandError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, workflowResponse(result))
}
