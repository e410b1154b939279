package integration

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/mesabjorn/anything-db/internal/console/testutil"
	"github.com/mesabjorn/anything-db/internal/engine"
	"github.com/mesabjorn/anything-db/internal/storage"
)

// MockObserver records engine lifecycle events
type MockObserver struct {
	Events []engine.Event
}

func (m *MockObserver) OnEvent(event engine.Event) {
	m.Events = append(m.Events, event)
}

// session is one scripted operator session against a fresh data file
type session struct {
	path     string
	db       *storage.DB
	eng      *engine.Engine
	prompter *testutil.ScriptedPrompter
	reporter *testutil.RecordingReporter
	out      *bytes.Buffer
	observer *MockObserver
}

// setupSession opens path (a fresh temp file when empty) and wires an engine to a scripted prompter
func setupSession(t *testing.T, path string, lines ...string) *session {
	t.Helper()
	if path == "" {
		path = filepath.Join(t.TempDir(), "session.db")
	}
	db, err := storage.Open(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	t.Cleanup(func() { db.Close() })

	s := &session{
		path:     path,
		db:       db,
		prompter: testutil.NewScriptedPrompter(lines...),
		reporter: &testutil.RecordingReporter{},
		out:      &bytes.Buffer{},
		observer: &MockObserver{},
	}
	s.eng = engine.New(db, s.prompter, s.reporter, s.out, engine.Options{
		PreviewRows: 5,
		Now:         func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) },
	})
	s.eng.AddObserver(s.observer)
	return s
}
