// Package observability provides hooks for metrics, tracing, and logging.
//
// Consumers register hooks at startup to receive events about layout runs
// and rendering without the engine depending on any observability backend.
// Every hook has a no-op default, so unregistered events cost nothing.
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(observability.NewLogHooks(logger))
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Layout().OnLayoutStart(ctx, runID, len(entries))
//	// ... lay out ...
//	observability.Layout().OnLayoutComplete(ctx, runID, duration, err)
package observability

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// =============================================================================
// Hook interfaces
// =============================================================================

// LayoutHooks receives events from the layout engine runs.
type LayoutHooks interface {
	OnLayoutStart(ctx context.Context, runID string, entries int)
	// OnSettle reports how collision resolution ended. A run that hit the
	// tick cap has converged == false; that is not a failure.
	OnSettle(ctx context.Context, runID string, ticks int, converged bool, overlaps int)
	OnLayoutComplete(ctx context.Context, runID string, duration time.Duration, err error)
}

// RenderHooks receives events from the output sinks.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, runID string, formats []string)
	OnRenderComplete(ctx context.Context, runID string, formats []string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnLayoutStart(context.Context, string, int)                     {}
func (NoopLayoutHooks) OnSettle(context.Context, string, int, bool, int)               {}
func (NoopLayoutHooks) OnLayoutComplete(context.Context, string, time.Duration, error) {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string, []string) {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, []string, time.Duration, error) {
}

// =============================================================================
// Logging Implementation
// =============================================================================

// LogHooks writes every event to a logger at debug level, failures at
// error level. It implements both LayoutHooks and RenderHooks.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to l.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{logger: l}
}

func (h *LogHooks) OnLayoutStart(_ context.Context, runID string, entries int) {
	h.logger.Debug("layout started", "run", runID, "entries", entries)
}

func (h *LogHooks) OnSettle(_ context.Context, runID string, ticks int, converged bool, overlaps int) {
	h.logger.Debug("layout settled", "run", runID, "ticks", ticks, "converged", converged, "overlaps", overlaps)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, runID string, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("layout failed", "run", runID, "err", err)
		return
	}
	h.logger.Debug("layout complete", "run", runID, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, runID string, formats []string) {
	h.logger.Debug("render started", "run", runID, "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, runID string, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("render failed", "run", runID, "formats", formats, "err", err)
		return
	}
	h.logger.Debug("render complete", "run", runID, "formats", formats, "duration", d)
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks LayoutHooks = NoopLayoutHooks{}
	renderHooks RenderHooks = NoopRenderHooks{}
	hooksMu     sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any layout runs.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	renderHooks = NoopRenderHooks{}
}
