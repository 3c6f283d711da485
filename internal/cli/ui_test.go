package cli

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/agbru/vedicmath/internal/orchestration"
)

// MockSpinner records calls made by DisplayProgress.
type MockSpinner struct {
	mu      sync.Mutex
	started bool
	stopped bool
	suffix  string
}

func (m *MockSpinner) Start() { m.mu.Lock(); m.started = true; m.mu.Unlock() }
func (m *MockSpinner) Stop()  { m.mu.Lock(); m.stopped = true; m.mu.Unlock() }

func (m *MockSpinner) UpdateSuffix(s string) {
	m.mu.Lock()
	m.suffix = s
	m.mu.Unlock()
}

func withMockSpinner(t *testing.T) *MockSpinner {
	t.Helper()
	mock := &MockSpinner{}
	orig := newSpinner
	newSpinner = func(io.Writer) Spinner { return mock }
	t.Cleanup(func() { newSpinner = orig })
	return mock
}

func TestDisplayProgress(t *testing.T) {
	mock := withMockSpinner(t)

	var buf bytes.Buffer
	ch := make(chan orchestration.ProgressUpdate, 4)
	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, ch, 2, &buf)

	ch <- orchestration.ProgressUpdate{Index: 0, Value: 1}
	ch <- orchestration.ProgressUpdate{Index: 1, Value: 1}
	close(ch)
	wg.Wait()

	if !mock.started || !mock.stopped {
		t.Errorf("spinner started=%t stopped=%t, want both", mock.started, mock.stopped)
	}
	if !strings.Contains(buf.String(), "100.0%") {
		t.Errorf("final line %q does not show completion", buf.String())
	}
}

func TestDisplayProgressNoWorkloads(t *testing.T) {
	mock := withMockSpinner(t)

	ch := make(chan orchestration.ProgressUpdate, 1)
	ch <- orchestration.ProgressUpdate{Index: 0, Value: 0.5}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	DisplayProgress(&wg, ch, 0, io.Discard)
	wg.Wait()

	if mock.started {
		t.Error("spinner should not start without workloads")
	}
}
