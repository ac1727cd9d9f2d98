package progress

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestPublishReachesSubscribers(t *testing.T) {
	r := NewReporter()
	ch := r.Subscribe()

	r.Publish(Update{Phase: PhaseOrganizing, Organized: 3})

	select {
	case u := <-ch:
		if u.Organized != 3 {
			t.Errorf("expected 3 organized, got %d", u.Organized)
		}
	case <-time.After(time.Second):
		t.Fatal("update was not delivered")
	}

	if cur := r.Current(); cur == nil || cur.Phase != PhaseOrganizing {
		t.Errorf("Current should return the last update, got %+v", cur)
	}
}

func TestPublishNeverBlocks(t *testing.T) {
	r := NewReporter()
	_ = r.Subscribe() // never drained

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			r.Publish(Update{Phase: PhaseOrganizing, Organized: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full listener")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	r := NewReporter()
	ch := r.Subscribe()
	r.Unsubscribe(ch)

	if _, ok := <-ch; ok {
		t.Error("expected channel to be closed")
	}

	// publishing afterwards must not panic
	r.Publish(Update{Phase: PhaseComplete})
}

func TestNilReporter(t *testing.T) {
	var r *Reporter
	r.Publish(Update{Phase: PhaseOrganizing})
	r.Close()
	if r.Current() != nil {
		t.Error("nil reporter has no current update")
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		update *Update
		want   string
	}{
		{nil, "Preparing..."},
		{&Update{Phase: PhaseDetecting}, "Detecting project type"},
		{&Update{Phase: PhasePreserving, ProjectType: "arduino"}, "Preserving arduino"},
		{&Update{Phase: PhaseOrganizing, Organized: 2, Skipped: 1, CopiedBytes: 2048}, "2 files (2.00 KB), 1 skipped"},
		{&Update{Phase: PhaseComplete, Organized: 5, StartTime: time.Now()}, "Organized 5 files"},
		{&Update{Phase: PhaseError, Error: errors.New("boom")}, "boom"},
	}

	for _, tt := range tests {
		got := Format(tt.update)
		if !strings.Contains(got, tt.want) {
			t.Errorf("Format(%+v) = %q, want it to contain %q", tt.update, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[time.Duration]string{
		4 * time.Second:                 "4s",
		90 * time.Second:                "1m30s",
		time.Hour + 2*time.Minute + 3e9: "1h2m3s",
	}
	for d, want := range tests {
		if got := FormatDuration(d); got != want {
			t.Errorf("FormatDuration(%v) = %q, want %q", d, got, want)
		}
	}
}
