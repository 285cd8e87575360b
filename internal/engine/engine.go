// Package engine drives a content item through the fixed pipeline:
// ingestion, style-conditioned generation, review, publication, and
// notification. All workflow mutations funnel through the engine's command
// API; no other component writes workflow fields.
package engine

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/fivedigital/contentflow/internal/generation"
	"github.com/fivedigital/contentflow/internal/types"
)

// Store is the persistence surface the engine needs. *db.DB satisfies it.
type Store interface {
	GetEmployee(ctx context.Context, id uuid.UUID) (*types.Employee, error)
	GetStyleProfileByEmployee(ctx context.Context, employeeID uuid.UUID) (*types.StyleProfile, error)
	CreateWorkflow(ctx context.Context, employeeID uuid.UUID, inputContent string) (*types.Workflow, error)
	GetWorkflow(ctx context.Context, id uuid.UUID) (*types.Workflow, error)
	UpdateWorkflow(ctx context.Context, w *types.Workflow) error
	DeleteWorkflow(ctx context.Context, id uuid.UUID) error
}

// Generator is the text-generation capability boundary.
type Generator interface {
	Generate(ctx context.Context, req *generation.Request) (string, error)
}

// Publisher is the document-creation capability boundary.
type Publisher interface {
	Publish(ctx context.Context, text, employeeName, folderID string) (*types.PublicationRef, error)
}

// Notifier is the notification capability boundary.
type Notifier interface {
	Notify(ctx context.Context, address, employeeName, docURL string) (bool, error)
}

// Result is the outcome of one engine command.
type Result struct {
	Workflow *types.Workflow
	// AlreadyApproved signals an approve retry that short-circuited on the
	// stored publication reference instead of re-publishing.
	AlreadyApproved bool
	// Delivered reports the notification acknowledgement, when one was
	// attempted as part of the command.
	Delivered bool
	// LastError is the transient per-workflow error slot: the message of the
	// last failed call, cleared by the next successful operation.
	LastError string
}

// session tracks the in-flight request bookkeeping for one workflow.
type session struct {
	// seq is the newest generation request issued for the workflow.
	// Completions carrying an older sequence are stale and dropped.
	seq       uint64
	lastError string
}

// Engine is the workflow state machine plus its adapter wiring.
type Engine struct {
	store     Store
	generator Generator
	publisher Publisher
	notifier  Notifier

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

// New creates an engine over a store and the three capability adapters.
func New(store Store, generator Generator, publisher Publisher, notifier Notifier) *Engine {
	return &Engine{
		store:     store,
		generator: generator,
		publisher: publisher,
		notifier:  notifier,
		sessions:  make(map[uuid.UUID]*session),
	}
}

// --- lifecycle ---

// Create starts a new workflow in DRAFT for an employee.
func (e *Engine) Create(ctx context.Context, employeeID uuid.UUID, inputContent string) (*Result, error) {
	employee, err := e.store.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, &NotFoundError{Kind: "employee", ID: employeeID}
	}

	workflow, err := e.store.CreateWorkflow(ctx, employeeID, inputContent)
	if err != nil {
		return nil, err
	}
	return e.result(workflow), nil
}

// Load retrieves a workflow by ID.
func (e *Engine) Load(ctx context.Context, id uuid.UUID) (*Result, error) {
	workflow, err := e.loadWorkflow(ctx, id)
	if err != nil {
		return nil, err
	}
	return e.result(workflow), nil
}

// Discard deletes a workflow and drops its session state. Destruction is
// explicit; the pipeline itself never removes records.
func (e *Engine) Discard(ctx context.Context, id uuid.UUID) error {
	if err := e.store.DeleteWorkflow(ctx, id); err != nil {
		return err
	}
	e.mu.Lock()
	delete(e.sessions, id)
	e.mu.Unlock()
	return nil
}

// --- commands ---

// SetInput replaces the input content. Allowed while the workflow has not
// been approved; the next generate call picks it up.
func (e *Engine) SetInput(ctx context.Context, id uuid.UUID, content string) (*Result, error) {
	workflow, err := e.loadWorkflow(ctx, id)
	if err != nil {
		return nil, err
	}
	if workflow.Status != types.StatusDraft && workflow.Status != types.StatusReview {
		return nil, e.fail(id, &ValidationError{Field: "status",
			Message: "input can only change in DRAFT or REVIEW"})
	}

	workflow.InputContent = content
	if err := e.store.UpdateWorkflow(ctx, workflow); err != nil {
		return nil, err
	}
	e.clearError(id)
	return e.result(workflow), nil
}

// SelectEmployee reassigns the workflow to another employee. Any generation
// still in flight for the previous employee is superseded; its completion
// will be dropped as stale.
func (e *Engine) SelectEmployee(ctx context.Context, id, employeeID uuid.UUID) (*Result, error) {
	workflow, err := e.loadWorkflow(ctx, id)
	if err != nil {
		return nil, err
	}
	switch workflow.Status {
	case types.StatusDraft, types.StatusGenerating, types.StatusReview:
	default:
		return nil, e.fail(id, &ValidationError{Field: "status",
			Message: "employee can no longer change after approval"})
	}

	employee, err := e.store.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, &NotFoundError{Kind: "employee", ID: employeeID}
	}

	e.supersede(id)
	if workflow.Status == types.StatusGenerating {
		// The abandoned generation falls back to DRAFT.
		workflow.Status = types.StatusDraft
	}
	workflow.EmployeeID = employeeID
	if err := e.store.UpdateWorkflow(ctx, workflow); err != nil {
		return nil, err
	}
	e.clearError(id)
	return e.result(workflow), nil
}

// Generate runs the generation stage. From DRAFT it is the first generation;
// from REVIEW it regenerates, overwriting the prior baseline; while
// GENERATING it supersedes the outstanding request. The call blocks until
// the capability responds. A completion that has been superseded in the
// meantime returns *StaleResponseError and leaves the record alone.
func (e *Engine) Generate(ctx context.Context, id uuid.UUID) (*Result, error) {
	workflow, err := e.loadWorkflow(ctx, id)
	if err != nil {
		return nil, err
	}
	switch workflow.Status {
	case types.StatusDraft, types.StatusReview, types.StatusGenerating:
	default:
		return nil, e.fail(id, &ValidationError{Field: "status",
			Message: "generation is only available before approval"})
	}

	if strings.TrimSpace(workflow.InputContent) == "" {
		return nil, e.fail(id, &ValidationError{Field: "inputContent",
			Message: "input content is empty"})
	}

	employee, err := e.store.GetEmployee(ctx, workflow.EmployeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, &NotFoundError{Kind: "employee", ID: workflow.EmployeeID}
	}

	profile, err := e.store.GetStyleProfileByEmployee(ctx, workflow.EmployeeID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, e.fail(id, &ValidationError{Field: "styleProfile",
			Message: "employee has no style profile; run analysis first"})
	}

	seq := e.supersede(id)

	if workflow.Status != types.StatusGenerating {
		if err := e.transition(ctx, workflow, types.StatusGenerating); err != nil {
			return nil, err
		}
	}

	text, genErr := e.generator.Generate(ctx, &generation.Request{
		InputContent:    workflow.InputContent,
		EmployeeName:    employee.Name,
		ToneDescription: employee.ToneDescription,
		Profile:         profile,
	})

	if !e.current(id, seq) {
		// A newer generate or employee switch won while we were out. Drop
		// this result without touching the record.
		return nil, &StaleResponseError{WorkflowID: id, Seq: seq}
	}

	if genErr != nil {
		// Fall back to DRAFT, content unchanged; the command is retryable.
		workflow.Status = types.StatusDraft
		if err := e.store.UpdateWorkflow(ctx, workflow); err != nil {
			return nil, err
		}
		return nil, e.fail(id, genErr)
	}

	workflow.GeneratedContent = text
	workflow.EditedContent = text
	workflow.Status = types.StatusReview
	if err := e.store.UpdateWorkflow(ctx, workflow); err != nil {
		return nil, err
	}
	e.clearError(id)
	return e.result(workflow), nil
}

// Edit updates the edited content during review. The stage does not change
// and the generated baseline stays untouched.
func (e *Engine) Edit(ctx context.Context, id uuid.UUID, content string) (*Result, error) {
	workflow, err := e.loadWorkflow(ctx, id)
	if err != nil {
		return nil, err
	}
	if workflow.Status != types.StatusReview {
		return nil, e.fail(id, &ValidationError{Field: "status",
			Message: "editing is only available in REVIEW"})
	}

	workflow.EditedContent = content
	if err := e.store.UpdateWorkflow(ctx, workflow); err != nil {
		return nil, err
	}
	e.clearError(id)
	return e.result(workflow), nil
}

// Save persists the edited content. A save with unchanged content is a
// no-op that still succeeds.
func (e *Engine) Save(ctx context.Context, id uuid.UUID, content string) (*Result, error) {
	workflow, err := e.loadWorkflow(ctx, id)
	if err != nil {
		return nil, err
	}
	if workflow.Status != types.StatusReview {
		return nil, e.fail(id, &ValidationError{Field: "status",
			Message: "saving is only available in REVIEW"})
	}

	if workflow.EditedContent != content {
		workflow.EditedContent = content
		if err := e.store.UpdateWorkflow(ctx, workflow); err != nil {
			return nil, err
		}
	}
	e.clearError(id)
	return e.result(workflow), nil
}

// Approve publishes the edited content and advances to APPROVED, then
// attempts the implicit notification. Approve is idempotent with respect to
// publication: a retry on an already-approved workflow returns the stored
// reference without calling the publisher again. A notification failure is
// reported in the result; the workflow stays APPROVED and Notify can be
// retried separately.
func (e *Engine) Approve(ctx context.Context, id uuid.UUID) (*Result, error) {
	workflow, err := e.loadWorkflow(ctx, id)
	if err != nil {
		return nil, err
	}

	// Short-circuit on the stored reference rather than re-publishing.
	if (workflow.Status == types.StatusApproved || workflow.Status == types.StatusNotified) && workflow.Published() {
		result := e.result(workflow)
		result.AlreadyApproved = true
		result.Delivered = workflow.Status == types.StatusNotified
		return result, nil
	}

	if workflow.Status != types.StatusReview {
		return nil, e.fail(id, &ValidationError{Field: "status",
			Message: "approval requires a reviewed draft"})
	}
	if strings.TrimSpace(workflow.EditedContent) == "" {
		return nil, e.fail(id, &ValidationError{Field: "editedContent",
			Message: "edited content is empty"})
	}

	employee, err := e.store.GetEmployee(ctx, workflow.EmployeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, &NotFoundError{Kind: "employee", ID: workflow.EmployeeID}
	}

	ref, err := e.publisher.Publish(ctx, workflow.EditedContent, employee.Name, employee.DriveFolderID)
	if err != nil {
		// Approve did not take effect; the workflow stays in REVIEW.
		return nil, e.fail(id, err)
	}

	workflow.PublicationURL = &ref.URL
	workflow.PublicationID = &ref.ID
	workflow.Status = types.StatusApproved
	if err := e.store.UpdateWorkflow(ctx, workflow); err != nil {
		return nil, err
	}
	e.clearError(id)

	return e.notify(ctx, workflow, employee)
}

// Notify retries the notification step for an approved workflow. The
// publication is never re-invoked.
func (e *Engine) Notify(ctx context.Context, id uuid.UUID) (*Result, error) {
	workflow, err := e.loadWorkflow(ctx, id)
	if err != nil {
		return nil, err
	}

	if workflow.Status == types.StatusNotified {
		result := e.result(workflow)
		result.Delivered = true
		return result, nil
	}
	if workflow.Status != types.StatusApproved || !workflow.Published() {
		return nil, e.fail(id, &ValidationError{Field: "status",
			Message: "notification requires an approved, published workflow"})
	}

	employee, err := e.store.GetEmployee(ctx, workflow.EmployeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, &NotFoundError{Kind: "employee", ID: workflow.EmployeeID}
	}

	return e.notify(ctx, workflow, employee)
}

// notify delivers the email for a freshly approved workflow and advances to
// NOTIFIED on acknowledgement. On failure the workflow remains APPROVED and
// the result carries the error message.
func (e *Engine) notify(ctx context.Context, workflow *types.Workflow, employee *types.Employee) (*Result, error) {
	delivered, err := e.notifier.Notify(ctx, employee.Email, employee.Name, *workflow.PublicationURL)
	if err != nil || !delivered {
		if err != nil {
			e.setError(workflow.ID, err)
		}
		return e.result(workflow), nil
	}

	if err := e.transition(ctx, workflow, types.StatusNotified); err != nil {
		return nil, err
	}
	e.clearError(workflow.ID)

	result := e.result(workflow)
	result.Delivered = true
	return result, nil
}

// --- internals ---

func (e *Engine) loadWorkflow(ctx context.Context, id uuid.UUID) (*types.Workflow, error) {
	workflow, err := e.store.GetWorkflow(ctx, id)
	if err != nil {
		return nil, err
	}
	if workflow == nil {
		return nil, &NotFoundError{Kind: "workflow", ID: id}
	}
	return workflow, nil
}

// transition moves a workflow along a table edge and persists it.
func (e *Engine) transition(ctx context.Context, workflow *types.Workflow, to types.WorkflowStatus) error {
	if !CanTransition(workflow.Status, to) {
		return &TransitionError{From: workflow.Status, To: to}
	}
	workflow.Status = to
	return e.store.UpdateWorkflow(ctx, workflow)
}

// supersede issues the next request sequence number for a workflow, making
// any outstanding request stale.
func (e *Engine) supersede(id uuid.UUID) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.session(id)
	s.seq++
	return s.seq
}

// current reports whether seq is still the newest request for the workflow.
func (e *Engine) current(id uuid.UUID, seq uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session(id).seq == seq
}

// session returns the bookkeeping entry for a workflow; callers hold e.mu.
func (e *Engine) session(id uuid.UUID) *session {
	s, ok := e.sessions[id]
	if !ok {
		s = &session{}
		e.sessions[id] = s
	}
	return s
}

// fail records err in the workflow's transient error slot and returns it.
func (e *Engine) fail(id uuid.UUID, err error) error {
	e.setError(id, err)
	return err
}

func (e *Engine) setError(id uuid.UUID, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session(id).lastError = err.Error()
}

func (e *Engine) clearError(id uuid.UUID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session(id).lastError = ""
}

func (e *Engine) result(workflow *types.Workflow) *Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return &Result{
		Workflow:  workflow,
		LastError: e.session(workflow.ID).lastError,
	}
}
