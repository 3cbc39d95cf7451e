// Package icon draws the application icon: a white envelope on a blue
// rounded square.
package icon

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
)

var (
	Background = color.RGBA{R: 0x0B, G: 0x5F, B: 0xD6, A: 0xFF}
	Paper      = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	Fold       = color.RGBA{R: 0x9C, G: 0xBE, B: 0xF0, A: 0xFF}
)

// Draw renders the icon at size×size pixels.
func Draw(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	s := float64(size)
	radius := s * 0.2

	// Envelope body.
	left, right := s*0.18, s*0.82
	top, bottom := s*0.28, s*0.72
	stroke := math.Max(1, s*0.04)
	cx := s / 2
	apexY := s * 0.52

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			if !inRoundedSquare(px, py, s, radius) {
				continue
			}
			img.SetRGBA(x, y, Background)

			if px < left || px > right || py < top || py > bottom {
				continue
			}
			img.SetRGBA(x, y, Paper)

			// Flap: two lines from the top corners to the apex.
			if distToSegment(px, py, left, top, cx, apexY) < stroke/2 ||
				distToSegment(px, py, right, top, cx, apexY) < stroke/2 {
				img.SetRGBA(x, y, Fold)
			}
		}
	}
	return img
}

// PNG returns the icon encoded as PNG.
func PNG(size int) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, Draw(size)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func inRoundedSquare(x, y, s, r float64) bool {
	// Distance outside the inner rectangle shrunk by r.
	dx := math.Max(math.Max(r-x, x-(s-r)), 0)
	dy := math.Max(math.Max(r-y, y-(s-r)), 0)
	return dx*dx+dy*dy <= r*r
}

func distToSegment(px, py, ax, ay, bx, by float64) float64 {
	vx, vy := bx-ax, by-ay
	t := ((px-ax)*vx + (py-ay)*vy) / (vx*vx + vy*vy)
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(px-(ax+t*vx), py-(ay+t*vy))
}
