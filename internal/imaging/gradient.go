package imaging

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
)

// GradientField holds the Sobel gradient magnitudes of an image.
//
// Magnitudes are on the 0-255 grayscale scale (unnormalized, so diagonal
// edges can exceed 255). MeanMagnitude is the average over all pixels and
// is the detail-level input to complexity scoring.
type GradientField struct {
	Magnitude     [][]float64
	Width         int
	Height        int
	MeanMagnitude float64
}

// GrayField converts an image to a Gaussian-blurred grayscale field.
//
// Blurring (radius ~1.4, the usual Canny preamble) suppresses scan noise
// before gradient computation. Values are float64 in [0, 255].
func GrayField(img image.Image) [][]float64 {
	blurred := effect.Grayscale(blur.Gaussian(img, 1.4))
	bounds := blurred.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	gray := make([][]float64, height)
	for y := 0; y < height; y++ {
		gray[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			// Grayscale output has R == G == B.
			r, _, _, _ := blurred.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			gray[y][x] = float64(r >> 8)
		}
	}
	return gray
}

// SobelField computes the Sobel gradient magnitude field of an image.
func SobelField(img image.Image) *GradientField {
	gray := GrayField(img)
	height := len(gray)
	width := 0
	if height > 0 {
		width = len(gray[0])
	}

	sobelX := [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	magnitude := make([][]float64, height)
	var sum float64
	for y := 0; y < height; y++ {
		magnitude[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					gx += gray[py][px] * sobelX[ky+1][kx+1]
					gy += gray[py][px] * sobelY[ky+1][kx+1]
				}
			}
			m := math.Sqrt(gx*gx + gy*gy)
			magnitude[y][x] = m
			sum += m
		}
	}

	mean := 0.0
	if width*height > 0 {
		mean = sum / float64(width*height)
	}

	return &GradientField{
		Magnitude:     magnitude,
		Width:         width,
		Height:        height,
		MeanMagnitude: mean,
	}
}

// EdgeMap performs Canny-style edge detection and returns a boolean field
// where true marks an edge pixel.
//
// The pipeline is the standard one: Gaussian blur, Sobel gradients,
// non-maximum suppression, then double-threshold hysteresis. Pixels with
// gradient magnitude above thresholdHigh are strong edges; pixels between
// the thresholds are kept only when adjacent to a strong edge.
//
// Thresholds are on the 0-255 scale. Clean line drawings work well with
// thresholdLow=50, thresholdHigh=150.
func EdgeMap(img image.Image, thresholdLow, thresholdHigh int) [][]bool {
	gray := GrayField(img)
	height := len(gray)
	width := 0
	if height > 0 {
		width = len(gray[0])
	}

	sobelX := [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	magnitude := make([][]float64, height)
	direction := make([][]float64, height)
	for y := 0; y < height; y++ {
		magnitude[y] = make([]float64, width)
		direction[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					gx += gray[py][px] * sobelX[ky+1][kx+1]
					gy += gray[py][px] * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y][x] = math.Sqrt(gx*gx + gy*gy)
			direction[y][x] = math.Atan2(gy, gx)
		}
	}

	// Non-maximum suppression thins edges to single-pixel ridges.
	suppressed := make([][]float64, height)
	for y := 0; y < height; y++ {
		suppressed[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			if y == 0 || y == height-1 || x == 0 || x == width-1 {
				continue
			}

			angle := direction[y][x]
			mag := magnitude[y][x]

			var n1, n2 float64
			if (angle >= -math.Pi/8 && angle < math.Pi/8) || (angle >= 7*math.Pi/8 || angle < -7*math.Pi/8) {
				n1 = magnitude[y][x-1]
				n2 = magnitude[y][x+1]
			} else if (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8) {
				n1 = magnitude[y-1][x+1]
				n2 = magnitude[y+1][x-1]
			} else if (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8) {
				n1 = magnitude[y-1][x]
				n2 = magnitude[y+1][x]
			} else {
				n1 = magnitude[y-1][x-1]
				n2 = magnitude[y+1][x+1]
			}

			if mag >= n1 && mag >= n2 {
				suppressed[y][x] = mag
			}
		}
	}

	lowThresh := float64(thresholdLow)
	highThresh := float64(thresholdHigh)

	edges := make([][]bool, height)
	for y := 0; y < height; y++ {
		edges[y] = make([]bool, width)
		for x := 0; x < width; x++ {
			val := suppressed[y][x]
			if val >= highThresh {
				edges[y][x] = true
			} else if val >= lowThresh {
				for ky := -1; ky <= 1 && !edges[y][x]; ky++ {
					for kx := -1; kx <= 1; kx++ {
						py := clamp(y+ky, 0, height-1)
						px := clamp(x+kx, 0, width-1)
						if suppressed[py][px] >= highThresh {
							edges[y][x] = true
							break
						}
					}
				}
			}
		}
	}

	return edges
}

// EdgeDensity returns the fraction of pixels marked as edges.
func EdgeDensity(edges [][]bool) float64 {
	total := 0
	marked := 0
	for _, row := range edges {
		for _, e := range row {
			total++
			if e {
				marked++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(marked) / float64(total)
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
