package worker

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/getsentry/sentry-go"
	"github.com/sasha-s/go-deadlock"
)

var workerQueue = make(chan func(), runtime.NumCPU())

func init() {
	for i := 0; i < runtime.NumCPU(); i++ {
		go worker()
	}
}

func worker() {
	for {
		f, ok := <-workerQueue
		if !ok {
			return
		}
		run(f)
	}
}

// run runs a single job, reporting a panic to sentry instead of taking the worker down with it.
func run(f func()) {
	defer sentry.Recover()
	f()
}

// To be used by a function that may be CPU intensive.
func Submit(f func()) {
	workerQueue <- f
}

// Group runs CPU intensive jobs on the worker pool and waits for all of them to finish. The zero value
// is ready to use. Jobs must not submit to the pool themselves.
type Group struct {
	wg sync.WaitGroup

	mu  deadlock.Mutex
	err error
}

// Go submits a job to the group. A job that panics is reported to sentry and fails with an error
// describing the panic.
func (g *Group) Go(f func() error) {
	g.wg.Add(1)
	Submit(func() {
		defer g.wg.Done()
		defer g.capture()
		if err := f(); err != nil {
			g.fail(err)
		}
	})
}

// Wait blocks until all jobs submitted to the group have finished. It returns the errors of all failed
// jobs joined together, or nil if none failed.
func (g *Group) Wait() error {
	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}

func (g *Group) capture() {
	if r := recover(); r != nil {
		sentry.CurrentHub().Recover(r)
		g.fail(fmt.Errorf("worker panic: %v", r))
	}
}

func (g *Group) fail(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.err = errors.Join(g.err, err)
}
