package incremental

import (
	"context"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// Sink receives sidecar files.
type Sink interface {
	// WriteFile stores data under name. Implementations may return before
	// the write completes.
	WriteFile(name string, data []byte) error
	// Wait blocks until every accepted write has finished.
	Wait() error
}

// DirSink writes sidecars synchronously into a directory.
type DirSink struct {
	Dir string
}

// WriteFile writes data to Dir/name.
func (s DirSink) WriteFile(name string, data []byte) error {
	return os.WriteFile(filepath.Join(s.Dir, name), data, 0644)
}

// Wait returns immediately; DirSink has nothing in flight.
func (DirSink) Wait() error {
	return nil
}

// ParallelSink runs writes on a bounded set of goroutines. After the first
// failure, queued writes are dropped and Wait reports that failure.
type ParallelSink struct {
	next Sink
	ctx  context.Context
	g    *errgroup.Group
}

// NewParallelSink wraps next so that up to workers writes run at once.
func NewParallelSink(ctx context.Context, next Sink, workers int) *ParallelSink {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	return &ParallelSink{next: next, ctx: gctx, g: g}
}

// WriteFile queues a write. It blocks while all workers are busy.
func (s *ParallelSink) WriteFile(name string, data []byte) error {
	if err := s.ctx.Err(); err != nil {
		return err
	}
	s.g.Go(func() error {
		if err := s.ctx.Err(); err != nil {
			return err
		}
		return s.next.WriteFile(name, data)
	})
	return nil
}

// Wait blocks until queued writes finish and returns the first error.
func (s *ParallelSink) Wait() error {
	if err := s.g.Wait(); err != nil {
		return err
	}
	return s.next.Wait()
}
