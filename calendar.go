package marquee

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the format of dates handed to git.
	DateLayout = "2006-01-02T15:04:05"

	cornerLayout = "2006-01-02 15:04:05"
	// all drawing happens at 3AM
	drawHour = 3
)

// Window is the range of days covered by the canvas.
// Pixel 0 falls on TopLeft and pixel Size-1 on BottomRight.
type Window struct {
	TopLeft     time.Time
	BottomRight time.Time
}

// NewWindow returns the window ending on the most recent Saturday before today.
// today itself is never part of the window.
func NewWindow(today time.Time) Window {
	var back int
	if today.Weekday() == time.Sunday {
		back = 1
	} else {
		// days since Monday, plus two
		back = int(today.Weekday()) - 1 + 2
	}
	br := today.AddDate(0, 0, -back)
	bottomRight := time.Date(br.Year(), br.Month(), br.Day(), drawHour, 0, 0, 0, today.Location())
	return Window{
		TopLeft:     bottomRight.AddDate(0, 0, -(Size - 1)),
		BottomRight: bottomRight,
	}
}

// At returns the timestamp of pixel p shifted by offset within its day.
func (w Window) At(p Pixel, offset time.Duration) time.Time {
	return w.TopLeft.AddDate(0, 0, int(p)).Add(offset)
}

// Genesis returns the date of the commit that initializes the repository,
// one year before the canvas starts.
func (w Window) Genesis() time.Time {
	return w.TopLeft.AddDate(0, 0, -365)
}

func (w Window) String() string {
	return fmt.Sprintf("TL, BR corners would be %s, %s", w.TopLeft.Format(cornerLayout), w.BottomRight.Format(cornerLayout))
}

// FormatDate formats t the way git expects commit dates.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
