package detection

import (
	"image"
	"math"
	"sort"

	"github.com/drafthaus/cadlens/internal/imaging"
)

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// Circle is a detected circle with exact center and radius in pixels.
type Circle struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Radius int `json:"radius"`
}

// Rectangle is a detected axis-aligned rectangle in pixels.
type Rectangle struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ShapesResult contains all shapes detected in a drawing.
type ShapesResult struct {
	// Circles and Rectangles are ordered by detection position.
	Circles    []Circle    `json:"circle_list"`
	Rectangles []Rectangle `json:"rectangle_list"`

	// Counts per shape class. PolygonCount covers contours whose
	// approximation has 5 or more vertices; those carry no geometry.
	CircleCount    int `json:"circles"`
	RectangleCount int `json:"rectangles"`
	PolygonCount   int `json:"polygons"`
}

// minRectSide filters contour noise: a 4-vertex approximation only counts
// as a rectangle when both bounding-box sides exceed this many pixels.
const minRectSide = 10

// approxEpsilonFactor is the polygon approximation tolerance as a
// fraction of the contour perimeter.
const approxEpsilonFactor = 0.02

// DetectShapes finds circles, rectangles and polygons in a drawing.
//
// Circles come from a gradient-based Hough circle transform and report
// exact centers and radii. Rectangles and polygons come from external
// contour extraction followed by closed-curve polygon approximation with
// a tolerance of 2% of the contour perimeter; classification is by
// vertex count (see the package documentation for why this is a
// heuristic, not an exact classifier).
func (d *Detector) DetectShapes(img image.Image) *ShapesResult {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	edges := imaging.EdgeMap(img, d.cfg.EdgeThresholdLow, d.cfg.EdgeThresholdHigh)

	result := &ShapesResult{
		Circles:    []Circle{},
		Rectangles: []Rectangle{},
	}

	result.Circles = d.detectCircles(edges, width, height)
	result.CircleCount = len(result.Circles)

	contours := findContours(edges, width, height)
	for _, contour := range contours {
		approx := approximatePolygon(contour)
		switch {
		case len(approx) == 4:
			rect := boundingRect(approx)
			if rect.Width > minRectSide && rect.Height > minRectSide {
				result.RectangleCount++
				result.Rectangles = append(result.Rectangles, rect)
			}
		case len(approx) >= 5:
			result.PolygonCount++
		}
	}

	return result
}

// detectCircles runs the Hough circle transform over the edge map.
//
// For each candidate radius, every edge pixel votes for possible centers
// around it; accumulator cells collecting at least ~60% of the expected
// circumference votes and forming a local maximum are reported. Circles
// whose centers fall within MinCircleDistance of an earlier detection
// are merged away.
func (d *Detector) detectCircles(edges [][]bool, width, height int) []Circle {
	maxRadius := d.cfg.MaxCircleRadius
	if limit := min(width, height) / 2; maxRadius > limit {
		maxRadius = limit
	}

	circles := make([]Circle, 0)

	for radius := d.cfg.MinCircleRadius; radius <= maxRadius; radius++ {
		accumulator := make([][]int, height)
		for y := 0; y < height; y++ {
			accumulator[y] = make([]int, width)
		}

		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if !edges[y][x] {
					continue
				}
				for angle := 0; angle < 360; angle += 10 {
					rad := float64(angle) * math.Pi / 180
					cx := x - int(float64(radius)*math.Cos(rad))
					cy := y - int(float64(radius)*math.Sin(rad))
					if cx >= 0 && cx < width && cy >= 0 && cy < height {
						accumulator[cy][cx]++
					}
				}
			}
		}

		threshold := int(float64(2*radius) * 0.6)
		for y := radius; y < height-radius; y++ {
			for x := radius; x < width-radius; x++ {
				if accumulator[y][x] < threshold {
					continue
				}
				isMax := true
				for dy := -5; dy <= 5 && isMax; dy++ {
					for dx := -5; dx <= 5 && isMax; dx++ {
						if dy == 0 && dx == 0 {
							continue
						}
						ny, nx := y+dy, x+dx
						if ny >= 0 && ny < height && nx >= 0 && nx < width {
							if accumulator[ny][nx] > accumulator[y][x] {
								isMax = false
							}
						}
					}
				}
				if isMax {
					circles = append(circles, Circle{X: x, Y: y, Radius: radius})
				}
			}
		}
	}

	return d.mergeCloseCircles(circles)
}

// mergeCloseCircles drops circles whose center lies within
// MinCircleDistance of an already kept circle.
func (d *Detector) mergeCloseCircles(circles []Circle) []Circle {
	kept := make([]Circle, 0, len(circles))
	minDist := float64(d.cfg.MinCircleDistance)

	for _, c := range circles {
		duplicate := false
		for _, k := range kept {
			dx := float64(c.X - k.X)
			dy := float64(c.Y - k.Y)
			if math.Sqrt(dx*dx+dy*dy) < minDist {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, c)
		}
	}
	return kept
}

// findContours finds connected components (contours) in a binary edge image.
//
// Uses flood-fill to group connected edge pixels into contours.
// Connectivity is 8-connected (includes diagonals).
// Contours smaller than 10 pixels are discarded as noise.
func findContours(edges [][]bool, width, height int) [][]Point {
	visited := make([][]bool, height)
	for y := 0; y < height; y++ {
		visited[y] = make([]bool, width)
	}

	contours := make([][]Point, 0)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if edges[y][x] && !visited[y][x] {
				contour := make([]Point, 0)
				floodFill(edges, visited, x, y, width, height, &contour)
				if len(contour) >= 10 {
					contours = append(contours, contour)
				}
			}
		}
	}

	return contours
}

// floodFill performs iterative flood-fill from a starting point.
//
// Uses a stack-based approach (not recursive) to avoid stack overflow
// on large contours. Marks visited pixels and appends them to the contour.
func floodFill(edges, visited [][]bool, startX, startY, width, height int, contour *[]Point) {
	stack := []Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		if visited[p.Y][p.X] || !edges[p.Y][p.X] {
			continue
		}

		visited[p.Y][p.X] = true
		*contour = append(*contour, p)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}
}

type fpoint struct {
	x, y float64
}

// approximatePolygon reduces an unordered contour to a polygon vertex
// list.
//
// The contour pixels are ordered by angle around the centroid into a
// closed ring, then simplified with Douglas-Peucker using a tolerance of
// 2% of the ring perimeter. The angular ordering assumes a roughly
// star-shaped contour; strongly concave outlines may fold, which is
// acceptable for the vertex-count classification this feeds.
func approximatePolygon(contour []Point) []fpoint {
	if len(contour) < 3 {
		return nil
	}

	var cx, cy float64
	for _, p := range contour {
		cx += float64(p.X)
		cy += float64(p.Y)
	}
	cx /= float64(len(contour))
	cy /= float64(len(contour))

	ring := make([]fpoint, len(contour))
	for i, p := range contour {
		ring[i] = fpoint{x: float64(p.X), y: float64(p.Y)}
	}
	sort.Slice(ring, func(i, j int) bool {
		ai := math.Atan2(ring[i].y-cy, ring[i].x-cx)
		aj := math.Atan2(ring[j].y-cy, ring[j].x-cx)
		return ai < aj
	})

	perimeter := 0.0
	for i := range ring {
		next := ring[(i+1)%len(ring)]
		perimeter += distance(ring[i], next)
	}
	epsilon := approxEpsilonFactor * perimeter

	// Split the closed ring at the two points farthest apart and
	// simplify each open half; this is the standard closed-curve
	// adaptation of Douglas-Peucker.
	a, b := farthestPair(ring)
	if a > b {
		a, b = b, a
	}
	first := douglasPeucker(ring[a:b+1], epsilon)
	secondRaw := append(append([]fpoint{}, ring[b:]...), ring[:a+1]...)
	second := douglasPeucker(secondRaw, epsilon)

	// Each half includes both anchors; drop the duplicated endpoints.
	approx := make([]fpoint, 0, len(first)+len(second)-2)
	approx = append(approx, first...)
	if len(second) > 2 {
		approx = append(approx, second[1:len(second)-1]...)
	}
	return approx
}

// farthestPair returns the indices of an approximately farthest pair of
// ring points. The first anchor is point 0; the second is the point
// farthest from it. Exact diameter search is unnecessary for a
// simplification anchor.
func farthestPair(ring []fpoint) (int, int) {
	best := 0
	bestDist := -1.0
	for i := 1; i < len(ring); i++ {
		if d := distance(ring[0], ring[i]); d > bestDist {
			bestDist = d
			best = i
		}
	}
	return 0, best
}

// douglasPeucker simplifies an open polyline to within epsilon.
func douglasPeucker(points []fpoint, epsilon float64) []fpoint {
	if len(points) < 3 {
		return append([]fpoint{}, points...)
	}

	maxDist := 0.0
	index := 0
	for i := 1; i < len(points)-1; i++ {
		d := perpendicularDistance(points[i], points[0], points[len(points)-1])
		if d > maxDist {
			maxDist = d
			index = i
		}
	}

	if maxDist <= epsilon {
		return []fpoint{points[0], points[len(points)-1]}
	}

	left := douglasPeucker(points[:index+1], epsilon)
	right := douglasPeucker(points[index:], epsilon)
	return append(left[:len(left)-1], right...)
}

// perpendicularDistance is the distance from p to the segment ab.
func perpendicularDistance(p, a, b fpoint) float64 {
	dx := b.x - a.x
	dy := b.y - a.y
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return distance(p, a)
	}
	return math.Abs(dy*p.x-dx*p.y+b.x*a.y-b.y*a.x) / length
}

func distance(a, b fpoint) float64 {
	dx := b.x - a.x
	dy := b.y - a.y
	return math.Sqrt(dx*dx + dy*dy)
}

// boundingRect computes the axis-aligned bounding rectangle of a vertex set.
func boundingRect(points []fpoint) Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p.x)
		maxX = math.Max(maxX, p.x)
		minY = math.Min(minY, p.y)
		maxY = math.Max(maxY, p.y)
	}
	return Rectangle{
		X:      int(minX),
		Y:      int(minY),
		Width:  int(maxX - minX),
		Height: int(maxY - minY),
	}
}
