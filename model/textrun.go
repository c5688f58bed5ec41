package model

// Orientation is the rotation hint attached to a text run by the PDF
// handler, in degrees clockwise from horizontal reading order.
type Orientation int

const (
	// OrientationUnknown means the handler could not determine a rotation.
	// Unknown runs do not vote during orientation correction.
	OrientationUnknown Orientation = -1
	// Orientation0 is normal horizontal text.
	Orientation0 Orientation = 0
	// Orientation90 is vertical text read top-to-bottom.
	Orientation90 Orientation = 90
	// Orientation180 is upside-down text.
	Orientation180 Orientation = 180
	// Orientation270 is vertical text read bottom-to-top.
	Orientation270 Orientation = 270
)

// String returns a string representation of the orientation.
func (o Orientation) String() string {
	switch o {
	case Orientation0:
		return "0"
	case Orientation90:
		return "90"
	case Orientation180:
		return "180"
	case Orientation270:
		return "270"
	default:
		return "unknown"
	}
}

// TextRun is a positioned text fragment supplied by the PDF handler.
// Runs are immutable facts about the page; the extraction pipeline never
// modifies them in place.
type TextRun struct {
	Text        string
	BBox        BBox
	Orientation Orientation
}
