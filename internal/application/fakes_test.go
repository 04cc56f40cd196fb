package application_test

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/ericfisherdev/quickdynalist/internal/domain/model"
	"github.com/ericfisherdev/quickdynalist/internal/domain/port/driven"
)

// --- Fake implementations of the driven ports ---

type fakeCredentialStore struct {
	mu     sync.Mutex
	values map[string]string
	setErr error
	sets   int
}

func newFakeCredentialStore(token string) *fakeCredentialStore {
	s := &fakeCredentialStore{values: map[string]string{}}
	if token != "" {
		s.values[model.CredentialServiceDynalist+"/"+model.CredentialKeyToken] = token
	}
	return s
}

func (s *fakeCredentialStore) Set(_ context.Context, service, key, plaintext string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.sets++
	s.values[service+"/"+key] = plaintext
	return nil
}

func (s *fakeCredentialStore) Get(_ context.Context, service, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[service+"/"+key], nil
}

func (s *fakeCredentialStore) List(_ context.Context) ([]model.Credential, error) { return nil, nil }

func (s *fakeCredentialStore) token() string {
	v, _ := s.Get(context.Background(), model.CredentialServiceDynalist, model.CredentialKeyToken)
	return v
}

type inboxCall struct {
	Token   string
	Content string
	Note    string
}

type insertCall struct {
	Token    string
	FileID   string
	ParentID string
	Content  string
	Index    int
}

type fakeDynalistClient struct {
	mu sync.Mutex

	listFiles func(token string) ([]model.File, error)
	addErr    error
	readDoc   func(fileID string) ([]model.Node, error)
	versions  map[string]int64
	versErr   error

	// block, when set, holds every AddToInbox call until it is closed.
	block chan struct{}

	listCalls    []string
	inboxCalls   []inboxCall
	insertCalls  []insertCall
	readCalls    []string
	versionCalls int
}

func (c *fakeDynalistClient) ListFiles(_ context.Context, token string) ([]model.File, error) {
	c.mu.Lock()
	c.listCalls = append(c.listCalls, token)
	fn := c.listFiles
	c.mu.Unlock()
	if fn == nil {
		return []model.File{}, nil
	}
	return fn(token)
}

func (c *fakeDynalistClient) AddToInbox(ctx context.Context, token, content, note string) error {
	c.mu.Lock()
	c.inboxCalls = append(c.inboxCalls, inboxCall{Token: token, Content: content, Note: note})
	block := c.block
	err := c.addErr
	c.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func (c *fakeDynalistClient) InsertItem(_ context.Context, token, fileID, parentID, content, _ string, index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.insertCalls = append(c.insertCalls, insertCall{
		Token: token, FileID: fileID, ParentID: parentID, Content: content, Index: index,
	})
	return c.addErr
}

func (c *fakeDynalistClient) ReadDocument(_ context.Context, _ string, fileID string) ([]model.Node, error) {
	c.mu.Lock()
	c.readCalls = append(c.readCalls, fileID)
	fn := c.readDoc
	c.mu.Unlock()
	if fn == nil {
		return []model.Node{}, nil
	}
	return fn(fileID)
}

func (c *fakeDynalistClient) DocumentVersions(_ context.Context, _ string, _ []string) (map[string]int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.versionCalls++
	return c.versions, c.versErr
}

func (c *fakeDynalistClient) inboxCallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.inboxCalls)
}

// okFiles accepts exactly the given token.
func okFiles(valid string) func(string) ([]model.File, error) {
	return func(token string) ([]model.File, error) {
		if token == valid {
			return []model.File{}, nil
		}
		return nil, &model.APIError{Code: model.CodeInvalidToken}
	}
}

// scriptedPrompter answers prompts from fixed scripts and records notices.
// An exhausted script answers with io.EOF, like a closed terminal.
type scriptedPrompter struct {
	mu       sync.Mutex
	confirms []bool
	tokens   []string
	notices  []driven.Notice

	// confirmGate, when set, blocks Confirm until it is closed.
	confirmGate chan struct{}
	// entered receives once per Confirm call.
	entered chan struct{}

	confirmCalls int
	tokenCalls   int
}

func (p *scriptedPrompter) Confirm(ctx context.Context, _ string) (bool, error) {
	p.mu.Lock()
	p.confirmCalls++
	gate := p.confirmGate
	entered := p.entered
	p.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.confirms) == 0 {
		return false, io.EOF
	}
	ok := p.confirms[0]
	p.confirms = p.confirms[1:]
	return ok, nil
}

func (p *scriptedPrompter) ReadToken(_ context.Context, _ string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tokenCalls++
	if len(p.tokens) == 0 {
		return "", io.EOF
	}
	token := p.tokens[0]
	p.tokens = p.tokens[1:]
	return token, nil
}

func (p *scriptedPrompter) Notify(notice driven.Notice) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notices = append(p.notices, notice)
}

func (p *scriptedPrompter) noticeList() []driven.Notice {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]driven.Notice(nil), p.notices...)
}

// alwaysConfirm returns n true answers.
func alwaysConfirm(n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = true
	}
	return out
}

type fakeBrowser struct {
	mu     sync.Mutex
	opened []string
	err    error
}

func (b *fakeBrowser) OpenURL(url string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.opened = append(b.opened, url)
	return b.err
}

type fakeLocationStore struct {
	mu        sync.Mutex
	locations []model.Location
	replaces  int
}

func (s *fakeLocationStore) ReplaceAll(_ context.Context, locations []model.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaces++
	s.locations = append([]model.Location(nil), locations...)
	return nil
}

func (s *fakeLocationStore) ListAll(_ context.Context) ([]model.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Location{}, s.locations...), nil
}

func (s *fakeLocationStore) GetByName(_ context.Context, name string) (*model.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, loc := range s.locations {
		if strings.EqualFold(loc.Name, name) {
			found := loc
			return &found, nil
		}
	}
	return nil, nil
}
