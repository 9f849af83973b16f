package cad

// Point is a 2D coordinate in drawing units.
type Point struct {
	X float64
	Y float64
}

// EntityData is one raw vector-drawing primitive as delivered by the
// upstream document reader. Optional coordinate attributes are nil when
// the source entity does not carry them.
type EntityData struct {
	// Type is the declared entity type, upper case (TEXT, MTEXT,
	// DIMENSION, LINE, CIRCLE, ARC, ELLIPSE, POLYLINE, LWPOLYLINE or
	// anything else the format defines).
	Type string

	// Layer is the owning layer name; empty means the default layer.
	Layer string

	// Block is the owning block name, if any.
	Block string

	// Text is the raw text content for text-bearing entities.
	Text string

	// Coordinate attributes, each present only for the entity types
	// that define them.
	Insert   *Point
	Start    *Point
	End      *Point
	Center   *Point
	Location *Point
	DefPoint *Point

	Radius     float64
	Height     float64
	CharHeight float64
	Rotation   float64

	// Style is the text style name for TEXT entities.
	Style string

	// DimType is the dimension subtype for DIMENSION entities.
	DimType string
}

// Document is a parsed vector drawing: header metadata plus the
// model-space entity list.
type Document struct {
	// Version is the drawing format version string.
	Version string

	// UnitsCode is the numeric drawing-units code from the header.
	UnitsCode int

	// Layers is the layer table in definition order.
	Layers []string

	// Entities is the model-space entity list in document order.
	Entities []EntityData
}

// unitsNames maps the header units code to its name. Codes 3 and 7 are
// not assigned by the format.
var unitsNames = map[int]string{
	0:  "unitless",
	1:  "inches",
	2:  "feet",
	4:  "millimeters",
	5:  "centimeters",
	6:  "meters",
	8:  "miles",
	9:  "microinches",
	10: "mils",
	11: "yards",
	12: "angstroms",
	13: "nanometers",
	14: "microns",
}

// UnitsName resolves a header units code to its name. Unrecognized
// codes map to "unknown".
func UnitsName(code int) string {
	if name, ok := unitsNames[code]; ok {
		return name
	}
	return "unknown"
}
