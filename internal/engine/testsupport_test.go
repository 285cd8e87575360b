package engine

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fivedigital/contentflow/internal/generation"
	"github.com/fivedigital/contentflow/internal/types"
)

// memStore is an in-memory Store. Reads hand out copies, like a real
// database round-trip would.
type memStore struct {
	mu        sync.Mutex
	employees map[uuid.UUID]types.Employee
	profiles  map[uuid.UUID]types.StyleProfile // keyed by employee ID
	workflows map[uuid.UUID]types.Workflow
}

func newMemStore() *memStore {
	return &memStore{
		employees: make(map[uuid.UUID]types.Employee),
		profiles:  make(map[uuid.UUID]types.StyleProfile),
		workflows: make(map[uuid.UUID]types.Workflow),
	}
}

func (s *memStore) addEmployee(e types.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[e.ID] = e
}

func (s *memStore) addProfile(p types.StyleProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.EmployeeID] = p
}

func (s *memStore) GetEmployee(_ context.Context, id uuid.UUID) (*types.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.employees[id]; ok {
		out := e
		return &out, nil
	}
	return nil, nil
}

func (s *memStore) GetStyleProfileByEmployee(_ context.Context, employeeID uuid.UUID) (*types.StyleProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.profiles[employeeID]; ok {
		out := p
		return &out, nil
	}
	return nil, nil
}

func (s *memStore) CreateWorkflow(_ context.Context, employeeID uuid.UUID, inputContent string) (*types.Workflow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	w := types.Workflow{
		ID:           uuid.New(),
		EmployeeID:   employeeID,
		InputContent: inputContent,
		Status:       types.StatusDraft,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.workflows[w.ID] = w
	out := w
	return &out, nil
}

func (s *memStore) GetWorkflow(_ context.Context, id uuid.UUID) (*types.Workflow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.workflows[id]; ok {
		out := w
		return &out, nil
	}
	return nil, nil
}

func (s *memStore) UpdateWorkflow(_ context.Context, w *types.Workflow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.UpdatedAt = time.Now()
	s.workflows[w.ID] = *w
	return nil
}

func (s *memStore) DeleteWorkflow(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.workflows, id)
	return nil
}

// stubGenerator runs a configurable function per call and counts calls.
type stubGenerator struct {
	mu    sync.Mutex
	calls int
	fn    func(req *generation.Request) (string, error)
}

func (g *stubGenerator) Generate(_ context.Context, req *generation.Request) (string, error) {
	g.mu.Lock()
	g.calls++
	fn := g.fn
	g.mu.Unlock()
	if fn == nil {
		return "generiert: " + req.InputContent, nil
	}
	return fn(req)
}

func (g *stubGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// stubPublisher returns a fixed reference or error and counts calls.
type stubPublisher struct {
	mu    sync.Mutex
	calls int
	ref   types.PublicationRef
	err   error
}

func (p *stubPublisher) Publish(_ context.Context, text, employeeName, folderID string) (*types.PublicationRef, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	ref := p.ref
	if ref.ID == "" {
		ref = types.PublicationRef{
			URL: "https://docs.google.com/document/d/doc-1/edit",
			ID:  "doc-1",
		}
	}
	return &ref, nil
}

func (p *stubPublisher) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// stubNotifier acknowledges or fails and counts calls.
type stubNotifier struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (n *stubNotifier) Notify(_ context.Context, address, employeeName, docURL string) (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	if n.err != nil {
		return false, n.err
	}
	return true, nil
}

func (n *stubNotifier) callCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls
}

func testProfile(employeeID uuid.UUID) types.StyleProfile {
	return types.StyleProfile{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		AnalyzedAt: time.Now(),
		Quantitative: types.QuantitativeProfile{
			AvgWordsPerPost: 150,
			TopEmojis:       []string{"🚀"},
			TopWords:        []string{"Team"},
			SentenceLengthDistribution: types.SentenceLengthDistribution{
				Under3Words: 10, Words4To8: 30, Words9To15: 35, Words16To25: 20, Over25Words: 5,
			},
		},
		Qualitative: types.QualitativeProfile{
			Tonality: "motivierend", Rhythm: "kurz", CommunicationStyle: "direkt", Beliefs: "Teamwork",
		},
	}
}

// fixture bundles an engine with its stubs and a ready employee + profile.
type fixture struct {
	engine    *Engine
	store     *memStore
	generator *stubGenerator
	publisher *stubPublisher
	notifier  *stubNotifier
	employee  types.Employee
}

func newFixture() *fixture {
	store := newMemStore()
	employee := types.Employee{
		ID:              uuid.New(),
		Name:            "Anna Meier",
		Email:           "anna@example.ch",
		DriveFolderID:   "folder-1",
		ToneDescription: "motivierend",
	}
	store.addEmployee(employee)
	store.addProfile(testProfile(employee.ID))

	generator := &stubGenerator{}
	publisher := &stubPublisher{}
	notifier := &stubNotifier{}

	return &fixture{
		engine:    New(store, generator, publisher, notifier),
		store:     store,
		generator: generator,
		publisher: publisher,
		notifier:  notifier,
		employee:  employee,
	}
}

// wordText returns a text with exactly n words.
func wordText(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = "Wort"
	}
	return strings.Join(words, " ")
}
