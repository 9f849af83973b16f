package detection

import (
	"image"
	"math"
	"sort"

	"github.com/drafthaus/cadlens/internal/imaging"
)

// LineClass identifies the orientation band of a detected line segment.
type LineClass int

const (
	// LineHorizontal covers angles below 10 degrees or above 170 degrees.
	LineHorizontal LineClass = iota
	// LineVertical covers angles from 80 to 100 degrees inclusive.
	LineVertical
	// LineDiagonal covers everything else.
	LineDiagonal
)

// LinesResult contains line counts classified by orientation.
//
// Every detected segment falls into exactly one class, so
// Horizontal + Vertical + Diagonal == Total always holds.
type LinesResult struct {
	Total      int `json:"total_lines"`
	Horizontal int `json:"horizontal"`
	Vertical   int `json:"vertical"`
	Diagonal   int `json:"diagonal"`

	// DimensionMarkers estimates dimension lines by counting segments
	// with an arrow head at either end. A heuristic count, not a
	// dimension parser.
	DimensionMarkers int `json:"dimension_markers_estimated"`
}

// maxLineDetections bounds the Hough peak scan; drawings rarely need more
// and the endpoint trace is O(pixels) per peak.
const maxLineDetections = 100

// ClassifyLineAngle assigns an orientation class from a segment's angle
// in degrees. The angle is folded into [0, 180).
func ClassifyLineAngle(angleDeg float64) LineClass {
	a := math.Abs(angleDeg)
	for a >= 180 {
		a -= 180
	}
	switch {
	case a < 10 || a > 170:
		return LineHorizontal
	case a >= 80 && a <= 100:
		return LineVertical
	default:
		return LineDiagonal
	}
}

// DetectLines finds line segments via the Hough transform and classifies
// each into an orientation band.
func (d *Detector) DetectLines(img image.Image) *LinesResult {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	edges := imaging.EdgeMap(img, d.cfg.EdgeThresholdLow, d.cfg.EdgeThresholdHigh)

	maxDist := int(math.Sqrt(float64(width*width + height*height)))
	numAngles := 180
	accumulator := make([][]int, maxDist*2)
	for i := range accumulator {
		accumulator[i] = make([]int, numAngles)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !edges[y][x] {
				continue
			}
			for theta := 0; theta < numAngles; theta++ {
				angle := float64(theta) * math.Pi / 180.0
				rho := float64(x)*math.Cos(angle) + float64(y)*math.Sin(angle)
				rhoIdx := int(rho) + maxDist
				if rhoIdx >= 0 && rhoIdx < maxDist*2 {
					accumulator[rhoIdx][theta]++
				}
			}
		}
	}

	type peak struct {
		rho   int
		theta int
		votes int
	}
	peaks := make([]peak, 0)
	threshold := d.cfg.MinLineLength / 2

	for rhoIdx := 0; rhoIdx < maxDist*2; rhoIdx++ {
		for theta := 0; theta < numAngles; theta++ {
			if accumulator[rhoIdx][theta] < threshold {
				continue
			}
			isMax := true
			for dr := -2; dr <= 2 && isMax; dr++ {
				for dt := -2; dt <= 2 && isMax; dt++ {
					if dr == 0 && dt == 0 {
						continue
					}
					nr := rhoIdx + dr
					nt := (theta + dt + numAngles) % numAngles
					if nr >= 0 && nr < maxDist*2 {
						if accumulator[nr][nt] > accumulator[rhoIdx][theta] {
							isMax = false
						}
					}
				}
			}
			if isMax {
				peaks = append(peaks, peak{rho: rhoIdx - maxDist, theta: theta, votes: accumulator[rhoIdx][theta]})
			}
		}
	}

	sort.Slice(peaks, func(i, j int) bool {
		return peaks[i].votes > peaks[j].votes
	})

	result := &LinesResult{}

	for _, p := range peaks {
		if result.Total >= maxLineDetections {
			break
		}

		cosA := math.Cos(float64(p.theta) * math.Pi / 180.0)
		sinA := math.Sin(float64(p.theta) * math.Pi / 180.0)
		rho := float64(p.rho)

		// Trace edge pixels lying on this Hough line to recover the
		// actual segment endpoints.
		var startX, startY, endX, endY int
		minProj := math.MaxFloat64
		maxProj := -math.MaxFloat64
		onLine := 0

		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if !edges[y][x] {
					continue
				}
				if math.Abs(float64(x)*cosA+float64(y)*sinA-rho) >= 2.0 {
					continue
				}
				onLine++
				proj := -float64(x)*sinA + float64(y)*cosA
				if proj < minProj {
					minProj = proj
					startX, startY = x, y
				}
				if proj > maxProj {
					maxProj = proj
					endX, endY = x, y
				}
			}
		}

		if onLine < d.cfg.MinLineLength {
			continue
		}

		dx := float64(endX - startX)
		dy := float64(endY - startY)
		length := math.Sqrt(dx*dx + dy*dy)
		if length < float64(d.cfg.MinLineLength) {
			continue
		}

		angleDeg := math.Atan2(dy, dx) * 180 / math.Pi

		result.Total++
		switch ClassifyLineAngle(angleDeg) {
		case LineHorizontal:
			result.Horizontal++
		case LineVertical:
			result.Vertical++
		default:
			result.Diagonal++
		}

		if detectArrowHead(edges, startX, startY, endX, endY, width, height) ||
			detectArrowHead(edges, endX, endY, startX, startY, width, height) {
			result.DimensionMarkers++
		}
	}

	return result
}

// detectArrowHead checks for an arrow head at the given end of a segment
// by counting edge pixels along two wings rotated 45 degrees off the
// segment direction.
func detectArrowHead(edges [][]bool, endX, endY, otherX, otherY, width, height int) bool {
	dx := float64(endX - otherX)
	dy := float64(endY - otherY)
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return false
	}
	dx /= length
	dy /= length

	checkDist := 10
	cos45 := math.Cos(math.Pi / 4)
	sin45 := math.Sin(math.Pi / 4)

	leftX := dx*cos45 - dy*sin45
	leftY := dx*sin45 + dy*cos45
	rightX := dx*cos45 + dy*sin45
	rightY := -dx*sin45 + dy*cos45

	leftCount := 0
	rightCount := 0

	for d := 1; d <= checkDist; d++ {
		px := endX - int(float64(d)*leftX)
		py := endY - int(float64(d)*leftY)
		if px >= 0 && px < width && py >= 0 && py < height && edges[py][px] {
			leftCount++
		}

		px = endX - int(float64(d)*rightX)
		py = endY - int(float64(d)*rightY)
		if px >= 0 && px < width && py >= 0 && py < height && edges[py][px] {
			rightCount++
		}
	}

	return leftCount >= 3 && rightCount >= 3
}
