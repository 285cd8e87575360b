package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivedigital/contentflow/internal/analysis"
	"github.com/fivedigital/contentflow/internal/fetch"
	"github.com/fivedigital/contentflow/internal/types"
)

func TestCreateEmployee(t *testing.T) {
	e := newEnv()

	w := e.do(t, http.MethodPost, "/employees", types.EmployeeForm{
		Name:  "Anna Meier",
		Email: "anna@example.ch",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var employee types.Employee
	decodeJSON(t, w, &employee)
	assert.Equal(t, "Anna Meier", employee.Name)
	assert.NotEmpty(t, employee.ID)
}

func TestCreateEmployee_InvalidEmail(t *testing.T) {
	e := newEnv()

	w := e.do(t, http.MethodPost, "/employees", types.EmployeeForm{
		Name:  "Anna Meier",
		Email: "not-an-email",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	decodeJSON(t, w, &resp)
	assert.Contains(t, resp["error"], "Validation failed")
}

func TestGetEmployee_NotFound(t *testing.T) {
	e := newEnv()

	w := e.do(t, http.MethodGet, "/employees/e2c2a0e0-0000-4000-8000-000000000000", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetEmployee_BadID(t *testing.T) {
	e := newEnv()

	w := e.do(t, http.MethodGet, "/employees/not-a-uuid", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateEmployee(t *testing.T) {
	e := newEnv()
	employee := e.addEmployee(t)

	w := e.do(t, http.MethodPut, "/employees/"+employee.ID.String(), types.EmployeeForm{
		Name:  "Anna Meier-Keller",
		Email: "anna@example.ch",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated types.Employee
	decodeJSON(t, w, &updated)
	assert.Equal(t, "Anna Meier-Keller", updated.Name)
}

func TestDeleteEmployee(t *testing.T) {
	e := newEnv()
	employee := e.addEmployee(t)

	w := e.do(t, http.MethodDelete, "/employees/"+employee.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(t, http.MethodGet, "/employees/"+employee.ID.String(), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestListEmployees(t *testing.T) {
	e := newEnv()
	e.addEmployee(t)

	w := e.do(t, http.MethodGet, "/employees", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Employees []types.Employee `json:"employees"`
		Count     int              `json:"count"`
	}
	decodeJSON(t, w, &resp)
	assert.Equal(t, 1, resp.Count)
}

func TestAnalyzeEmployee_PastedSamples(t *testing.T) {
	e := newEnv()
	employee := e.addEmployee(t)

	w := e.do(t, http.MethodPost, "/employees/"+employee.ID.String()+"/analyze", AnalyzeRequest{
		SampleTexts: "Mein erster Post.\n\nMein zweiter Post.",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var profile types.StyleProfile
	decodeJSON(t, w, &profile)
	assert.Equal(t, employee.ID, profile.EmployeeID)
	assert.InDelta(t, 120, profile.Quantitative.AvgWordsPerPost, 0.01)
	assert.Contains(t, e.analyzer.lastArg, "Mein erster Post.")
}

func TestAnalyzeEmployee_FetchesURL(t *testing.T) {
	e := newEnv()
	employee := e.addEmployee(t)

	w := e.do(t, http.MethodPost, "/employees/"+employee.ID.String()+"/analyze", AnalyzeRequest{
		SampleURLs: []string{"https://example.ch/samples"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, e.samples, e.analyzer.lastArg)

	// The single source URL is remembered on the employee.
	w = e.do(t, http.MethodGet, "/employees/"+employee.ID.String(), nil)
	var stored types.Employee
	decodeJSON(t, w, &stored)
	assert.Equal(t, "https://example.ch/samples", stored.SampleTextsURL)
}

func TestAnalyzeEmployee_NoSamples(t *testing.T) {
	e := newEnv()
	employee := e.addEmployee(t)

	w := e.do(t, http.MethodPost, "/employees/"+employee.ID.String()+"/analyze", AnalyzeRequest{})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeEmployee_FetchFailure(t *testing.T) {
	e := newEnv()
	employee := e.addEmployee(t)
	e.fetchErr = &fetch.Error{URL: "https://example.ch/samples", Message: "status 503"}

	w := e.do(t, http.MethodPost, "/employees/"+employee.ID.String()+"/analyze", AnalyzeRequest{
		SampleURLs: []string{"https://example.ch/samples"},
	})
	require.Equal(t, http.StatusBadGateway, w.Code)
}

func TestAnalyzeEmployee_MalformedAnalysis(t *testing.T) {
	e := newEnv()
	employee := e.addEmployee(t)
	e.analyzer.err = &analysis.MalformedAnalysisError{Message: "buckets sum to 80"}

	w := e.do(t, http.MethodPost, "/employees/"+employee.ID.String()+"/analyze", AnalyzeRequest{
		SampleTexts: "Ein Post.",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// The stored profile is untouched on failure.
	w = e.do(t, http.MethodGet, "/employees/"+employee.ID.String()+"/style-profile", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var profile types.StyleProfile
	decodeJSON(t, w, &profile)
	assert.InDelta(t, 150, profile.Quantitative.AvgWordsPerPost, 0.01)
}

func TestGetStyleProfile_NotFound(t *testing.T) {
	e := newEnv()

	employee, err := e.store.CreateEmployee(context.Background(), &types.EmployeeForm{
		Name: "Beat Huber", Email: "beat@example.ch",
	})
	require.NoError(t, err)

	w := e.do(t, http.MethodGet, "/employees/"+employee.ID.String()+"/style-profile", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteStyleProfile(t *testing.T) {
	e := newEnv()
	employee := e.addEmployee(t)

	w := e.do(t, http.MethodDelete, "/employees/"+employee.ID.String()+"/style-profile", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(t, http.MethodGet, "/employees/"+employee.ID.String()+"/style-profile", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
