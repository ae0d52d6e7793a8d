package chart

// Class tags a primitive with the visual category it belongs to. Styling is
// resolved by the surface or sink from the class; the engine never assigns
// colours or fonts.
type Class string

// Visual categories used by the engine.
const (
	ClassBackground     Class = "background"
	ClassBar            Class = "bar"
	ClassTitle          Class = "title"
	ClassXLabel         Class = "x-label"
	ClassYLabel         Class = "y-label"
	ClassXLegend        Class = "x-legend"
	ClassYLegend        Class = "y-legend"
	ClassHorizontalLine Class = "horizontal-line"
)

// Classes lists every class in drawing order.
var Classes = []Class{
	ClassBackground,
	ClassTitle,
	ClassXLegend,
	ClassYLegend,
	ClassXLabel,
	ClassYLabel,
	ClassHorizontalLine,
	ClassBar,
}

// IsText reports whether primitives of class c are text.
func (c Class) IsText() bool {
	switch c {
	case ClassTitle, ClassXLabel, ClassYLabel, ClassXLegend, ClassYLegend:
		return true
	}
	return false
}

// Size is an unrotated bounding box.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Measurer returns the unrotated bounding box of text rendered with the font
// of class. Implementations must be deterministic and return a zero Size for
// empty text.
type Measurer interface {
	Measure(text string, class Class) Size
}

// MeasureFunc adapts a function to the Measurer interface.
type MeasureFunc func(text string, class Class) Size

// Measure calls f(text, class).
func (f MeasureFunc) Measure(text string, class Class) Size { return f(text, class) }

// Rect is an axis-aligned rectangle. Height may be negative for bars whose
// value is below MinValue.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Line is a straight segment.
type Line struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Text is a single line of text anchored at (X, Y), the left end of its
// baseline. Rotation is in degrees and is applied about the anchor after
// translation, like an SVG "translate(x y) rotate(r)" transform. Negative
// angles rotate counter-clockwise on screen.
type Text struct {
	Content  string  `json:"content"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation,omitempty"`
}

// Handle identifies a primitive previously added to a Surface.
type Handle int

// Surface receives the primitives produced by the engine. Plot calls Reset
// followed by the Add methods; Update only calls SetRect on the bar handles
// returned during the last Plot.
type Surface interface {
	// Reset discards every primitive and sets the viewport size.
	Reset(width, height float64)
	// AddRect appends a rectangle and returns its handle.
	AddRect(class Class, r Rect) Handle
	// AddLine appends a line and returns its handle.
	AddLine(class Class, l Line) Handle
	// AddText appends a text element and returns its handle.
	AddText(class Class, t Text) Handle
	// SetRect replaces the geometry of the rectangle identified by h.
	SetRect(h Handle, r Rect)
}
