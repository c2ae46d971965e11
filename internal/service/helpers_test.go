package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"medicsense-client/internal/pkg/logger"
	"medicsense-client/internal/repository/contract"
	"medicsense-client/internal/repository/implementation"
	"medicsense-client/pkg/api"
	"medicsense-client/pkg/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewLocalDB(t.TempDir())
	require.NoError(t, err)
	return db
}

func newTestTranscript(t *testing.T, db *gorm.DB) (*TranscriptService, contract.TranscriptRepository) {
	t.Helper()
	repo := implementation.NewTranscriptRepository(db)
	svc, err := NewTranscriptService(context.Background(), repo, logger.NewNopLogger())
	require.NoError(t, err)
	return svc, repo
}

func newTestSession(t *testing.T, db *gorm.DB, authToken string) *SessionService {
	t.Helper()
	return NewSessionService(implementation.NewSettingRepository(db), authToken, logger.NewNopLogger())
}

func newTestClient(t *testing.T, baseURL string) *api.Client {
	t.Helper()
	return api.NewClient(baseURL, 5*time.Second, logger.NewNopLogger())
}

// recorderSink captures rendered notices for assertions.
type recorderSink struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *recorderSink) Render(notice Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, notice)
}

func (r *recorderSink) all() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

// countingServer wraps httptest and counts requests per path.
type countingServer struct {
	*httptest.Server
	mu     sync.Mutex
	counts map[string]int
}

func newCountingServer(handler func(w http.ResponseWriter, r *http.Request)) *countingServer {
	cs := &countingServer{counts: map[string]int{}}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cs.mu.Lock()
		cs.counts[r.URL.Path]++
		cs.mu.Unlock()
		handler(w, r)
	}))
	return cs
}

func (cs *countingServer) total() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	total := 0
	for _, n := range cs.counts {
		total += n
	}
	return total
}

func (cs *countingServer) count(path string) int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.counts[path]
}
