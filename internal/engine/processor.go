package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"framekey/internal/logging"
)

const queueCapacity = 16

// Processor serializes submissions through a single worker. Triggers
// enqueue asynchronously and learn the outcome via notifications;
// synchronous callers go through Do, which shares the same
// single-flight guarantee.
type Processor struct {
	engine *Engine
	logger *slog.Logger

	mu      sync.Mutex
	jobs    chan string
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	running atomic.Bool
}

// NewProcessor wraps an engine in a serialized submission queue.
func NewProcessor(eng *Engine, logger *slog.Logger) (*Processor, error) {
	if eng == nil {
		return nil, errors.New("processor requires engine")
	}
	return &Processor{
		engine: eng,
		logger: logging.NewComponentLogger(logger, "processor"),
	}, nil
}

// Start launches the worker goroutine.
func (p *Processor) Start(ctx context.Context) error {
	if p.running.Load() {
		return errors.New("processor already running")
	}

	workerCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.jobs = make(chan string, queueCapacity)
	p.running.Store(true)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		for {
			select {
			case <-workerCtx.Done():
				return
			case path := <-p.jobs:
				if _, err := p.Do(workerCtx, path); err != nil {
					p.logger.Error("submission failed",
						logging.String("path", path),
						logging.Error(err),
					)
				}
			}
		}
	}()
	return nil
}

// Stop shuts the worker down. Queued submissions that have not started
// are dropped.
func (p *Processor) Stop() {
	if !p.running.Load() {
		return
	}
	p.cancel()
	p.wg.Wait()
	p.running.Store(false)
}

// Enqueue schedules a submission without waiting for its outcome.
func (p *Processor) Enqueue(path string) error {
	if !p.running.Load() {
		return errors.New("processor not running")
	}
	select {
	case p.jobs <- path:
		return nil
	default:
		return errors.New("submission queue full")
	}
}

// Do runs one submission synchronously. The mutex spans the whole
// engine call, so queued and direct submissions never interleave.
func (p *Processor) Do(ctx context.Context, path string) (Outcome, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.engine.Submit(ctx, path)
}
