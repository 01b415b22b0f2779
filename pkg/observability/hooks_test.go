package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	l := NoopLayoutHooks{}
	l.OnLayoutStart(ctx, "run", 12)
	l.OnSettle(ctx, "run", 40, true, 0)
	l.OnLayoutComplete(ctx, "run", time.Second, nil)

	r := NoopRenderHooks{}
	r.OnRenderStart(ctx, "run", []string{"svg"})
	r.OnRenderComplete(ctx, "run", []string{"svg"}, time.Second, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Layout() should return NoopLayoutHooks by default")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}

	custom := &recordingHooks{}
	SetLayoutHooks(custom)
	SetRenderHooks(custom)
	if Layout() != custom || Render() != custom {
		t.Error("Set*Hooks should install custom hooks")
	}

	Reset()
	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Reset() should restore NoopLayoutHooks")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Reset() should restore NoopRenderHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	custom := &recordingHooks{}
	SetLayoutHooks(custom)
	SetLayoutHooks(nil)
	if Layout() != custom {
		t.Error("SetLayoutHooks(nil) should not replace existing hooks")
	}
	SetRenderHooks(custom)
	SetRenderHooks(nil)
	if Render() != custom {
		t.Error("SetRenderHooks(nil) should not replace existing hooks")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))
	ctx := context.Background()

	h.OnLayoutStart(ctx, "r1", 3)
	h.OnSettle(ctx, "r1", 17, true, 0)
	h.OnLayoutComplete(ctx, "r1", time.Millisecond, nil)
	h.OnRenderStart(ctx, "r1", []string{"svg", "json"})
	h.OnRenderComplete(ctx, "r1", []string{"png"}, 0, errors.New("rsvg-convert missing"))

	out := buf.String()
	for _, want := range []string{"layout started", "layout settled", "layout complete", "render started", "render failed", "rsvg-convert missing"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

type recordingHooks struct {
	NoopLayoutHooks
	NoopRenderHooks
}
