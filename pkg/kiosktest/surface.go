package kiosktest

import "github.com/go-kiosk/kiosk/pkg/graphics"

// OpKind identifies a recorded draw primitive.
type OpKind int

const (
	OpFillRect OpKind = iota
	OpStrokeRect
	OpFillCircle
	OpDrawText
)

// Op is one recorded draw call. Only the fields relevant to the kind
// are populated.
type Op struct {
	Kind        OpKind
	Rect        graphics.Rect
	Center      graphics.Offset
	Radius      float64
	StrokeWidth float64
	Text        string
	Color       graphics.Color
}

// RecordingSurface captures draw primitives for assertion instead of
// rasterizing them. The zero value is ready to use. FailWith, when
// non-nil, makes every subsequent call fail, for exercising the
// fail-fast render path.
type RecordingSurface struct {
	Ops      []Op
	FailWith error
}

// FillRect records a filled rectangle.
func (s *RecordingSurface) FillRect(rect graphics.Rect, color graphics.Color) error {
	if s.FailWith != nil {
		return s.FailWith
	}
	s.Ops = append(s.Ops, Op{Kind: OpFillRect, Rect: rect, Color: color})
	return nil
}

// StrokeRect records a stroked rectangle.
func (s *RecordingSurface) StrokeRect(rect graphics.Rect, color graphics.Color, width float64) error {
	if s.FailWith != nil {
		return s.FailWith
	}
	s.Ops = append(s.Ops, Op{Kind: OpStrokeRect, Rect: rect, Color: color, StrokeWidth: width})
	return nil
}

// FillCircle records a filled circle.
func (s *RecordingSurface) FillCircle(center graphics.Offset, radius float64, color graphics.Color) error {
	if s.FailWith != nil {
		return s.FailWith
	}
	s.Ops = append(s.Ops, Op{Kind: OpFillCircle, Center: center, Radius: radius, Color: color})
	return nil
}

// DrawText records a text run.
func (s *RecordingSurface) DrawText(at graphics.Offset, text string, color graphics.Color) error {
	if s.FailWith != nil {
		return s.FailWith
	}
	s.Ops = append(s.Ops, Op{Kind: OpDrawText, Center: at, Text: text, Color: color})
	return nil
}

// Reset discards every recorded op.
func (s *RecordingSurface) Reset() { s.Ops = s.Ops[:0] }

// Count returns how many ops of the given kind were recorded.
func (s *RecordingSurface) Count(kind OpKind) int {
	n := 0
	for _, op := range s.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Texts returns every recorded text run in draw order.
func (s *RecordingSurface) Texts() []string {
	var texts []string
	for _, op := range s.Ops {
		if op.Kind == OpDrawText {
			texts = append(texts, op.Text)
		}
	}
	return texts
}
