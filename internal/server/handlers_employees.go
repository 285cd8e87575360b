package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/fivedigital/contentflow/internal/types"
)

// ---------------------------------------------------------------------
// Employee Handlers
// ---------------------------------------------------------------------

func (s *Server) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var form types.EmployeeForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := form.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	employee, err := s.store.CreateEmployee(r.Context(), &form)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, employee)
}

func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := s.store.ListEmployees(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"employees": employees,
		"count":     len(employees),
	})
}

func (s *Server) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	employee, err := s.store.GetEmployee(r.Context(), employeeID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if employee == nil {
		s.errorResponse(w, http.StatusNotFound, "Employee not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, employee)
}

func (s *Server) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	var form types.EmployeeForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := form.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	employee, err := s.store.UpdateEmployee(r.Context(), employeeID, &form)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if employee == nil {
		s.errorResponse(w, http.StatusNotFound, "Employee not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, employee)
}

func (s *Server) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := s.store.DeleteEmployee(r.Context(), employeeID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ---------------------------------------------------------------------
// Style Profile Handlers
// ---------------------------------------------------------------------

type AnalyzeRequest struct {
	// SampleTexts is pasted sample content. When empty, SampleURLs (or the
	// employee's stored sample URL) are fetched instead.
	SampleTexts string   `json:"sampleTexts,omitempty"`
	SampleURLs  []string `json:"sampleUrls,omitempty"`
}

// handleAnalyzeEmployee runs style analysis over the employee's sample posts
// and replaces their stored profile with the result.
func (s *Server) handleAnalyzeEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	employee, err := s.store.GetEmployee(r.Context(), employeeID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if employee == nil {
		s.errorResponse(w, http.StatusNotFound, "Employee not found")
		return
	}

	var req AnalyzeRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	samples := req.SampleTexts
	if strings.TrimSpace(samples) == "" {
		urls := req.SampleURLs
		if len(urls) == 0 && employee.SampleTextsURL != "" {
			urls = []string{employee.SampleTextsURL}
		}
		if len(urls) == 0 {
			s.errorResponse(w, http.StatusBadRequest, "No sample texts or sample URLs available")
			return
		}
		samples, err = s.fetchSamples(r.Context(), urls)
		if err != nil {
			s.commandError(w, err)
			return
		}
		if len(req.SampleURLs) == 1 {
			// Remember the source so later re-analysis can run without a body.
			if err := s.store.SetSampleTextsURL(r.Context(), employeeID, req.SampleURLs[0]); err != nil {
				s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
				return
			}
		}
	}

	payload, err := s.analyzer.Analyze(r.Context(), samples)
	if err != nil {
		s.commandError(w, err)
		return
	}

	profile, err := s.store.SaveStyleProfile(r.Context(), employeeID, payload)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

func (s *Server) handleGetStyleProfile(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	profile, err := s.store.GetStyleProfileByEmployee(r.Context(), employeeID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, "Style profile not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

func (s *Server) handleDeleteStyleProfile(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := s.store.DeleteStyleProfile(r.Context(), employeeID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// pathID parses the named path segment as a UUID, writing a 400 on failure.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
