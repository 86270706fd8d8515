package marquee

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestOffsets(t *testing.T) {
	tests := []struct {
		depth int
		want  []time.Duration
	}{
		{-1, []time.Duration{0}},
		{0, []time.Duration{0}},
		{1, []time.Duration{0}},
		{2, []time.Duration{0, 0}},
		{3, []time.Duration{0, 0, 30 * time.Minute}},
		{5, []time.Duration{0, 0, 15 * time.Minute, 30 * time.Minute, 45 * time.Minute}},
	}
	for _, tt := range tests {
		got := Offsets(tt.depth)
		if want := max(tt.depth, 1); len(got) != want {
			t.Errorf("len(Offsets(%d)) = %d, want %d", tt.depth, len(got), want)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Offsets(%d) mismatch (-want +got):\n%s", tt.depth, diff)
		}
	}
}

func TestOffsetsClamp(t *testing.T) {
	for _, depth := range []int{3601, 3602, 100000} {
		got := Offsets(depth)
		if len(got) != maxDepth+1 {
			t.Errorf("len(Offsets(%d)) = %d, want %d", depth, len(got), maxDepth+1)
		}
		if last := got[len(got)-1]; last >= time.Hour {
			t.Errorf("Offsets(%d) reaches %s, want within the hour", depth, last)
		}
	}
}

func TestSchedule(t *testing.T) {
	w := NewWindow(time.Date(2025, 10, 16, 12, 0, 0, 0, time.UTC))
	pixels := Pixels{363, 0, 42, 7}
	for _, depth := range []int{0, 1, 2, 4, 60} {
		commits := Schedule(pixels, depth, w)
		if want := len(pixels) * max(depth, 1); len(commits) != want {
			t.Errorf("depth %d: got %d commits, want %d", depth, len(commits), want)
		}
		for i := 1; i < len(commits); i++ {
			if commits[i].Date.Before(commits[i-1].Date) {
				t.Errorf("depth %d: commit %d (%s) is before commit %d (%s)", depth, i, commits[i].Date, i-1, commits[i-1].Date)
			}
			if commits[i].Pixel < commits[i-1].Pixel {
				t.Errorf("depth %d: pixel %d is painted after pixel %d", depth, commits[i].Pixel, commits[i-1].Pixel)
			}
		}
		for _, c := range commits {
			start := w.At(c.Pixel, 0)
			if c.Date.Before(start) || !c.Date.Before(start.Add(time.Hour)) {
				t.Errorf("depth %d: pixel %d is committed at %s, outside its hour", depth, c.Pixel, c.Date)
			}
		}
	}
	if diff := cmp.Diff(Pixels{363, 0, 42, 7}, pixels); diff != "" {
		t.Errorf("Schedule modified its input (-want +got):\n%s", diff)
	}
}
