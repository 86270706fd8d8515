package marquee

import (
	"slices"
	"time"
)

// maxDepth limits the commits spread over the hour of a single pixel.
const maxDepth = 60 * 60

// Commit is a single dated commit that lights Pixel.
type Commit struct {
	Pixel Pixel
	Date  time.Time
}

// Offsets returns the offsets within the hour at which a pixel is committed.
// A depth below 2 commits once at the top of the hour. Otherwise depth-1 steps
// spread evenly across the hour follow the first commit, so the first two
// commits share offset 0.
func Offsets(depth int) []time.Duration {
	offsets := []time.Duration{0}
	if depth < 2 {
		return offsets
	}
	steps := min(depth-1, maxDepth)
	step := time.Hour / time.Duration(steps)
	for n := range steps {
		offsets = append(offsets, time.Duration(n)*step)
	}
	return offsets
}

// Schedule returns the commits drawing pixels in chronological order.
// Every commit of a pixel precedes every commit of the next pixel.
func Schedule(pixels Pixels, depth int, w Window) []Commit {
	offsets := Offsets(depth)
	sorted := slices.Clone(pixels)
	slices.Sort(sorted)
	commits := make([]Commit, 0, len(sorted)*len(offsets))
	for _, p := range sorted {
		for _, o := range offsets {
			commits = append(commits, Commit{Pixel: p, Date: w.At(p, o)})
		}
	}
	return commits
}
