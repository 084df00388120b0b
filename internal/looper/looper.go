// Package looper runs tasks serially on a single goroutine, standing in for
// the UI-bound thread that platform views and their engine callbacks share.
package looper

import (
	"context"
	"errors"
	"sync"
)

// ErrQuit is returned by Run after Quit.
var ErrQuit = errors.New("looper quit")

// Poster schedules work on a thread.
type Poster interface {
	Post(task func())
}

// Inline runs posted tasks immediately on the caller's goroutine.
type Inline struct{}

func (Inline) Post(task func()) {
	task()
}

// Looper is a serial task queue. Tasks posted before Run starts are kept.
type Looper struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	quit    chan struct{}
	closed  bool
	running bool
}

// New creates an idle looper.
func New() *Looper {
	return &Looper{
		wake: make(chan struct{}, 1),
		quit: make(chan struct{}),
	}
}

// Post enqueues task. Tasks posted after Quit are dropped.
func (l *Looper) Post(task func()) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, task)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run executes tasks until ctx is done or Quit is called.
func (l *Looper) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return errors.New("looper already running")
	}
	l.running = true
	l.mu.Unlock()

	for {
		for {
			task := l.next()
			if task == nil {
				break
			}
			task()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.quit:
			return ErrQuit
		case <-l.wake:
		}
	}
}

// Quit stops Run after the current task. Pending tasks are discarded.
func (l *Looper) Quit() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	l.queue = nil
	close(l.quit)
}

// Pending returns the number of queued tasks.
func (l *Looper) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

func (l *Looper) next() func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || len(l.queue) == 0 {
		return nil
	}
	task := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return task
}
