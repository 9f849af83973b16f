// Package detection implements the computer-vision feature detectors for
// rendered engineering drawings.
//
// The detectors find geometric primitives (circles, rectangles, polygons,
// line segments) and score overall drawing complexity. They are designed
// for clean, high-contrast CAD renders; photographs or noisy scans will
// produce poor results.
//
// # Pipeline
//
// All detectors share the same front end: a Canny-style edge map computed
// by the imaging package. Shape-specific stages then run over it:
//
//   - Circles: Hough circle transform over a bounded radius range
//   - Rectangles/polygons: flood-fill contour extraction followed by
//     closed-curve polygon approximation
//   - Lines: Hough line transform with endpoint tracing
//   - Complexity: edge density plus mean Sobel gradient magnitude
//
// # Classification Is Heuristic
//
// Rectangle and polygon classification is by vertex count after contour
// approximation (4 vertices with both sides above the noise floor is a
// rectangle, 5 or more is a polygon). This is a coarse signal, not an
// exact geometric classifier: rounded corners and noisy contours can
// land in either bucket. Downstream consumers key off the approximate
// counts, so the rule is preserved as-is.
//
// # Failure Semantics
//
// Detection degrades rather than aborts: a stage that panics is replaced
// with a zeroed result and logged, and the remaining stages still run.
package detection
