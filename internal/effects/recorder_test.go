package effects

// OpKind identifies a recorded drawing call.
type OpKind int

const (
	OpFillCircle OpKind = iota
	OpStrokeCircle
	OpLine
)

// Op is one drawing call captured by a Recorder.
type Op struct {
	Kind          OpKind
	X, Y, X2, Y2  float64
	Radius, Width float64
	Color         Color
}

// Recorder is a Canvas that keeps the drawing calls issued since the last Clear.
type Recorder struct {
	Ops    []Op
	Clears int
}

func (r *Recorder) Clear() {
	r.Ops = r.Ops[:0]
	r.Clears++
}

func (r *Recorder) FillCircle(x, y, radius float64, c Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillCircle, X: x, Y: y, Radius: radius, Color: c})
}

func (r *Recorder) StrokeCircle(x, y, radius, width float64, c Color) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeCircle, X: x, Y: y, Radius: radius, Width: width, Color: c})
}

func (r *Recorder) Line(x1, y1, x2, y2, width float64, c Color) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, X: x1, Y: y1, X2: x2, Y2: y2, Width: width, Color: c})
}

// Count returns how many recorded ops are of the given kind.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}
