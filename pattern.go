package marquee

import (
	"slices"
)

// Box returns the outline of the canvas.
func Box() []Pixel {
	var ps []Pixel
	for i := range Rows {
		ps = append(ps, Pixel(i))
	}
	for i := 0; i < Size; i += Rows {
		ps = append(ps, Pixel(i))
	}
	for i := Rows - 1; i < Size; i += Rows {
		ps = append(ps, Pixel(i))
	}
	for i := Size - Rows; i < Size; i++ {
		ps = append(ps, Pixel(i))
	}
	slices.Sort(ps)
	return ps
}

// PrimeFill returns every prime-numbered pixel.
func PrimeFill() []Pixel {
	var ps []Pixel
	for n := range Size {
		if isPrime(n) {
			ps = append(ps, Pixel(n))
		}
	}
	return ps
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	for i := 2; i*i <= n; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// HStripes returns every row (day of the week) whose index is a multiple of stride.
// A zero stride panics with an integer divide by zero.
func HStripes(stride int) []Pixel {
	var ps []Pixel
	for r := range Rows {
		if r%stride != 0 {
			continue
		}
		for c := range Columns {
			ps = append(ps, PixelAt(c, r))
		}
	}
	slices.Sort(ps)
	return ps
}

// VStripes returns every column (week) whose index is a multiple of stride,
// in column order.
// A zero stride panics with an integer divide by zero.
func VStripes(stride int) []Pixel {
	var ps []Pixel
	for c := range Columns {
		if c%stride != 0 {
			continue
		}
		for r := range Rows {
			ps = append(ps, PixelAt(c, r))
		}
	}
	return ps
}
