package incremental

import (
	"errors"
	"sync"
	"testing"

	"github.com/Faultbox/babylon-incremental/pkg/formats"
)

// memSink keeps sidecars in memory.
type memSink struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemSink() *memSink {
	return &memSink{files: make(map[string][]byte)}
}

func (s *memSink) WriteFile(name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = append([]byte(nil), data...)
	return nil
}

func (s *memSink) Wait() error {
	return nil
}

var errDiskFull = errors.New("disk full")

type failSink struct{}

func (failSink) WriteFile(string, []byte) error { return errDiskFull }
func (failSink) Wait() error                    { return nil }

func mustParse(t *testing.T, doc string) *formats.Babylon {
	t.Helper()
	scene, err := formats.ParseBabylon([]byte(doc))
	if err != nil {
		t.Fatalf("ParseBabylon() error = %v", err)
	}
	return scene
}

func mustPayload(t *testing.T, rec *formats.Record) []byte {
	t.Helper()
	payload, err := BuildPayload(rec)
	if err != nil {
		t.Fatalf("BuildPayload() error = %v", err)
	}
	return payload
}
