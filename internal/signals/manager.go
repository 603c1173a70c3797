package signals

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Manager cancels a root context when the process receives SIGINT or SIGTERM
// and remembers the exit code the CLI should finish with.
//
// Command execution itself is not cancellable; the context only stops the CLI
// between commands and lets fang render the interruption.
type Manager struct {
	ctx      context.Context
	cancel   context.CancelFunc
	once     sync.Once
	mu       sync.RWMutex
	stopped  bool
	exitCode int
	sigChan  chan os.Signal
}

var (
	globalManager *Manager
	initOnce      sync.Once
)

// New creates a manager and starts listening for signals.
func New() *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		ctx:     ctx,
		cancel:  cancel,
		sigChan: make(chan os.Signal, 1),
	}
	signal.Notify(m.sigChan, os.Interrupt, syscall.SIGTERM)
	go m.wait()
	return m
}

// GetGlobalManager returns the process-wide manager, creating it on first use.
func GetGlobalManager() *Manager {
	initOnce.Do(func() {
		globalManager = New()
	})
	return globalManager
}

// Context is canceled on shutdown.
func (m *Manager) Context() context.Context {
	return m.ctx
}

// IsShutdown reports whether Shutdown has run.
func (m *Manager) IsShutdown() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stopped
}

// ExitCode returns the code recorded by the first Shutdown call.
func (m *Manager) ExitCode() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.exitCode
}

// Shutdown records exitCode and cancels the context. Only the first call has
// any effect.
func (m *Manager) Shutdown(exitCode int) {
	m.once.Do(func() {
		m.mu.Lock()
		m.stopped = true
		m.exitCode = exitCode
		m.mu.Unlock()
		signal.Stop(m.sigChan)
		m.cancel()
	})
}

func (m *Manager) wait() {
	select {
	case sig := <-m.sigChan:
		m.Shutdown(ExitCodeFor(sig))
	case <-m.ctx.Done():
	}
}

// ExitCodeFor returns the conventional exit code (128 + signal number) for sig.
func ExitCodeFor(sig os.Signal) int {
	switch sig {
	case os.Interrupt:
		return 130
	case syscall.SIGTERM:
		return 143
	}
	if s, ok := sig.(syscall.Signal); ok {
		return 128 + int(s)
	}
	return 1
}
