package countdown

import "testing"

type alertRecorder struct {
	fired int
}

func (r *alertRecorder) BuffAlert() { r.fired++ }

func TestBandFor(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    Band
	}{
		{name: "full duration", seconds: 60.0, want: BandGreen},
		{name: "just above green floor", seconds: 30.1, want: BandGreen},
		{name: "exactly green floor", seconds: 30.0, want: BandYellow},
		{name: "middle of yellow", seconds: 20.0, want: BandYellow},
		{name: "just above yellow floor", seconds: 10.1, want: BandYellow},
		{name: "exactly yellow floor", seconds: 10.0, want: BandRed},
		{name: "low", seconds: 3.0, want: BandRed},
		{name: "zero", seconds: 0.0, want: BandRed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BandFor(tt.seconds); got != tt.want {
				t.Errorf("BandFor(%v) = %v, want %v", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestTickStopsAtZero(t *testing.T) {
	c := New()
	c.Start()

	// Run well past the full duration.
	ticks := (InitialMillis / TickStepMillis) + 100
	for i := 0; i < ticks; i++ {
		c.Tick(nil)
		if sec := c.Seconds(); sec < 0 {
			t.Fatalf("Seconds() went negative: %v", sec)
		}
	}

	if sec := c.Seconds(); sec != 0 {
		t.Errorf("Seconds() after exhausting countdown = %v, want 0", sec)
	}
}

func TestTickIgnoredWhenStopped(t *testing.T) {
	c := New()
	c.Tick(nil)
	if sec := c.Seconds(); sec != 60.0 {
		t.Errorf("Seconds() after tick while stopped = %v, want 60.0", sec)
	}
}

func TestResetAtAnyValue(t *testing.T) {
	ticksBeforeReset := []int{0, 1, 100, 299, 550, 600, 700}

	for _, n := range ticksBeforeReset {
		c := New()
		c.Start()
		for i := 0; i < n; i++ {
			c.Tick(nil)
		}
		c.Reset()

		if sec := c.Seconds(); sec != 60.0 {
			t.Errorf("after %d ticks, Reset left Seconds() = %v, want 60.0", n, sec)
		}
		if !c.Running() {
			t.Errorf("after %d ticks, Reset stopped a running countdown", n)
		}
	}
}

func TestAlertFiresOncePerCycle(t *testing.T) {
	rec := &alertRecorder{}
	c := New()
	c.Start()

	for i := 0; i < InitialMillis/TickStepMillis; i++ {
		c.Tick(rec)
	}
	if rec.fired != 1 {
		t.Fatalf("alert fired %d times during one cycle, want 1", rec.fired)
	}

	// Continued ticking at zero must not refire.
	for i := 0; i < 50; i++ {
		c.Tick(rec)
	}
	if rec.fired != 1 {
		t.Errorf("alert refired while latched, fired = %d", rec.fired)
	}

	// Reset clears the latch so the next cycle alerts again.
	c.Reset()
	for i := 0; i < InitialMillis/TickStepMillis; i++ {
		c.Tick(rec)
	}
	if rec.fired != 2 {
		t.Errorf("alert fired %d times over two cycles, want 2", rec.fired)
	}
}

func TestAlertThreshold(t *testing.T) {
	rec := &alertRecorder{}
	c := New()
	c.Start()

	// Tick down to just above the threshold: 5.1s remaining.
	for i := 0; i < (InitialMillis-5100)/TickStepMillis; i++ {
		c.Tick(rec)
	}
	if rec.fired != 0 {
		t.Fatalf("alert fired above threshold at %v seconds", c.Seconds())
	}

	// One more tick crosses to 5.0s, which is within the threshold.
	c.Tick(rec)
	if rec.fired != 1 {
		t.Errorf("alert did not fire at %v seconds", c.Seconds())
	}
}

func TestToggle(t *testing.T) {
	c := New()
	if got := c.Toggle(); !got {
		t.Error("first Toggle() = false, want true")
	}
	if got := c.Toggle(); got {
		t.Error("second Toggle() = true, want false")
	}
}

func TestSnapshotConsistency(t *testing.T) {
	c := New()
	c.Start()
	for i := 0; i < 350; i++ { // down to 25.0s
		c.Tick(nil)
	}

	s := c.Snapshot()
	if !s.Running {
		t.Error("Snapshot.Running = false, want true")
	}
	if s.Seconds != 25.0 {
		t.Errorf("Snapshot.Seconds = %v, want 25.0", s.Seconds)
	}
	if s.Band != BandYellow {
		t.Errorf("Snapshot.Band = %v, want BandYellow", s.Band)
	}
	if s.AlertLatched {
		t.Error("Snapshot.AlertLatched = true, want false")
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{60.0, "60.0"},
		{30.0, "30.0"},
		{9.9, "9.9"},
		{0.0, "0.0"},
		{-1.0, "0.0"},
	}

	for _, tt := range tests {
		if got := FormatSeconds(tt.in); got != tt.want {
			t.Errorf("FormatSeconds(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
