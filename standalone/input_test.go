package standalone

import (
	"testing"
	"time"

	"github.com/user-none/lanegrid/focus"
	"github.com/user-none/lanegrid/standalone/storage"
	"github.com/user-none/lanegrid/standalone/style"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestInput() (*InputManager, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	im := NewInputManager(BuildBindings(storage.InputConfig{}))
	im.now = clock.now
	return im, clock
}

func TestRepeatImmediateMove(t *testing.T) {
	im, _ := newTestInput()

	if got := im.repeat(focus.DirRight); got != focus.DirRight {
		t.Errorf("first press = %v, want right", got)
	}
	if got := im.repeat(focus.DirRight); got != focus.DirNone {
		t.Errorf("held without time passing = %v, want none", got)
	}
	if got := im.repeat(focus.DirDown); got != focus.DirDown {
		t.Errorf("changed direction = %v, want down", got)
	}
}

func TestRepeatInitialDelay(t *testing.T) {
	im, clock := newTestInput()
	im.repeat(focus.DirLeft)

	clock.advance(style.NavInitialDelay - time.Millisecond)
	if got := im.repeat(focus.DirLeft); got != focus.DirNone {
		t.Errorf("before initial delay = %v, want none", got)
	}

	clock.advance(time.Millisecond)
	if got := im.repeat(focus.DirLeft); got != focus.DirLeft {
		t.Errorf("at initial delay = %v, want left", got)
	}
}

func TestRepeatAccelerates(t *testing.T) {
	im, clock := newTestInput()
	im.repeat(focus.DirUp)
	clock.advance(style.NavInitialDelay)
	im.repeat(focus.DirUp)

	want := style.NavStartInterval - style.NavAcceleration
	if im.repeatDelay != want {
		t.Fatalf("repeatDelay = %v, want %v", im.repeatDelay, want)
	}

	clock.advance(want - time.Millisecond)
	if got := im.repeat(focus.DirUp); got != focus.DirNone {
		t.Errorf("before interval = %v, want none", got)
	}
	clock.advance(time.Millisecond)
	if got := im.repeat(focus.DirUp); got != focus.DirUp {
		t.Errorf("at interval = %v, want up", got)
	}

	for i := 0; i < 50; i++ {
		clock.advance(style.NavStartInterval)
		im.repeat(focus.DirUp)
	}
	if im.repeatDelay != style.NavMinInterval {
		t.Errorf("repeatDelay = %v, want floor %v", im.repeatDelay, style.NavMinInterval)
	}
}

func TestRepeatReleaseResets(t *testing.T) {
	im, clock := newTestInput()
	im.repeat(focus.DirDown)
	clock.advance(style.NavInitialDelay)
	im.repeat(focus.DirDown)

	if got := im.repeat(focus.DirNone); got != focus.DirNone {
		t.Errorf("release = %v, want none", got)
	}
	if im.repeatDelay != style.NavStartInterval {
		t.Errorf("repeatDelay = %v, want reset to %v", im.repeatDelay, style.NavStartInterval)
	}
	if got := im.repeat(focus.DirDown); got != focus.DirDown {
		t.Errorf("press after release = %v, want down", got)
	}
}

func TestWheelAccumulates(t *testing.T) {
	im, _ := newTestInput()
	notch := 1 / style.ScrollWheelSensitivity

	if got := im.wheel(0, notch/2); got != focus.DirNone {
		t.Errorf("half step = %v, want none", got)
	}
	if got := im.wheel(0, notch/2); got != focus.DirUp {
		t.Errorf("full step up = %v, want up", got)
	}
	if got := im.wheel(0, -notch); got != focus.DirDown {
		t.Errorf("step down = %v, want down", got)
	}
	if got := im.wheel(notch, 0); got != focus.DirRight {
		t.Errorf("step right = %v, want right", got)
	}
	if got := im.wheel(-notch, 0); got != focus.DirLeft {
		t.Errorf("step left = %v, want left", got)
	}
}

func TestWheelOneStepPerFrame(t *testing.T) {
	im, _ := newTestInput()
	notch := 1 / style.ScrollWheelSensitivity

	if got := im.wheel(0, -3*notch); got != focus.DirDown {
		t.Fatalf("first frame = %v, want down", got)
	}
	if got := im.wheel(0, 0); got != focus.DirDown {
		t.Errorf("carried travel = %v, want down", got)
	}

	im.Reset()
	if got := im.wheel(0, 0); got != focus.DirNone {
		t.Errorf("after reset = %v, want none", got)
	}
}
