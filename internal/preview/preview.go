// Package preview debounces live recalculation of a scope that is being
// edited and drops results that a newer edit has superseded.
package preview

import (
	"sync"
	"time"

	"github.com/Simplici0/cleanbid/internal/estimate"
	"github.com/Simplici0/cleanbid/internal/scope"
)

// Update is delivered for the newest submitted snapshot only.
type Update struct {
	Generation uint64
	Estimate   estimate.Estimate
	// Ready is false while the scope is still missing required data.
	Ready bool
	Err   error
}

// Calculator is the part of estimate.Service a Previewer needs.
type Calculator interface {
	Preview(scope.Snapshot) (estimate.Estimate, bool, error)
}

type Previewer struct {
	calc    Calculator
	delay   time.Duration
	deliver func(Update)

	mu      sync.Mutex
	gen     uint64
	timer   *time.Timer
	stopped bool
}

// New returns a Previewer that waits delay after the last Submit before
// calculating, then calls deliver if no newer snapshot arrived meanwhile.
// deliver runs on a timer goroutine and must not call Submit or Stop.
func New(calc Calculator, delay time.Duration, deliver func(Update)) *Previewer {
	return &Previewer{calc: calc, delay: delay, deliver: deliver}
}

// Submit schedules a calculation of snap and returns its generation.
func (p *Previewer) Submit(snap scope.Snapshot) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.gen++
	gen := p.gen
	if p.stopped {
		return gen
	}
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(p.delay, func() { p.run(gen, snap) })
	return gen
}

// Stop cancels any pending calculation. Results still in flight are dropped.
func (p *Previewer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopped = true
	p.gen++
	if p.timer != nil {
		p.timer.Stop()
	}
}

func (p *Previewer) run(gen uint64, snap scope.Snapshot) {
	if !p.current(gen) {
		return
	}
	est, ready, err := p.calc.Preview(snap)

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		return
	}
	p.deliver(Update{Generation: gen, Estimate: est, Ready: ready, Err: err})
}

func (p *Previewer) current(gen uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return gen == p.gen
}
