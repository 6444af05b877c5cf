package pipeline

import (
	"context"
	"log"
	"sync"

	"github.com/umputun/newsdesk/pkg/domain"
)

//go:generate moq -out mocks/runner.go -pkg mocks -skip-ensure -fmt goimports . Runner

// Runner performs one complete fetch, satisfied by *Pipeline
type Runner interface {
	Fetch(ctx context.Context, settings domain.Settings) ([]domain.NewsStory, error)
}

// Delivery is the outcome of a single background load
type Delivery struct {
	Generation uint64
	Settings   domain.Settings
	Stories    []domain.NewsStory
	Err        error // ErrNoConnectivity or context error, Stories is nil when set
}

// Loader runs fetches in the background and delivers each outcome once.
// A new Load cancels the one in flight, and outcomes of superseded loads are dropped, so an older
// result never replaces a newer one. Deliveries are serialized and the generation is checked inside
// the delivery guard, so a stale outcome never arrives after a newer one. Deliver is called from the
// load goroutine and may call Load or Cancel.
type Loader struct {
	runner  Runner
	deliver func(Delivery)

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	wg         sync.WaitGroup

	deliverMu sync.Mutex // held across the generation check and the deliver call
}

// NewLoader makes a loader calling deliver with each current outcome
func NewLoader(runner Runner, deliver func(Delivery)) *Loader {
	return &Loader{runner: runner, deliver: deliver}
}

// Load starts a background fetch for settings and returns its generation
func (l *Loader) Load(ctx context.Context, settings domain.Settings) uint64 {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.generation++
	gen := l.generation
	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.mu.Unlock()

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer cancel()

		stories, err := l.runner.Fetch(ctx, settings)
		if ctxErr := ctx.Err(); ctxErr != nil {
			stories, err = nil, ctxErr
		}

		l.deliverMu.Lock()
		defer l.deliverMu.Unlock()
		if !l.isCurrent(gen) {
			log.Printf("[DEBUG] drop stale load #%d", gen)
			return
		}
		l.deliver(Delivery{Generation: gen, Settings: settings, Stories: stories, Err: err})
	}()
	return gen
}

// Cancel stops the current load, nothing is delivered for it
func (l *Loader) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.generation++
}

// Generation returns the generation of the most recent Load or Cancel
func (l *Loader) Generation() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.generation
}

// Wait blocks until all started loads are finished
func (l *Loader) Wait() {
	l.wg.Wait()
}

func (l *Loader) isCurrent(gen uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return gen == l.generation
}
