package geom

import (
	"math"
	"testing"
)

const tol = 1e-9

func boxEqual(a, b Box) bool {
	return math.Abs(a.MinX-b.MinX) < tol && math.Abs(a.MinY-b.MinY) < tol &&
		math.Abs(a.MaxX-b.MaxX) < tol && math.Abs(a.MaxY-b.MaxY) < tol &&
		a.ElementID == b.ElementID && a.ElementType == b.ElementType && a.OwnerID == b.OwnerID
}

type unknownElement struct{}

func (unknownElement) ElementType() ElementType { return "schematic_trace" }
func (unknownElement) ElementID() string        { return "trace1" }

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		el   Element
		want Box
	}{
		{
			name: "chip is never widened",
			el:   Component{ID: "U1", Symbol: SymbolChip, Width: 0.8, Height: 1.0},
			want: Box{MinX: -0.4, MinY: -0.5, MaxX: 0.4, MaxY: 0.5, ElementID: "U1", ElementType: TypeComponent, OwnerID: "U1"},
		},
		{
			name: "vertical resistor widens right",
			el:   Component{ID: "R1", Symbol: SymbolResistor, Center: Point{2, 0}, Width: 0.2, Height: 1.0, Rotation: -90},
			want: Box{MinX: 1.9, MinY: -0.5, MaxX: 2.1 + ValueLabelOverflow, MaxY: 0.5, ElementID: "R1", ElementType: TypeComponent, OwnerID: "R1"},
		},
		{
			name: "horizontal capacitor widens up",
			el:   &Component{ID: "C1", Symbol: SymbolCapacitor, Center: Point{0, 1}, Width: 1.0, Height: 0.2},
			want: Box{MinX: -0.5, MinY: 0.9, MaxX: 0.5, MaxY: 1.1 + ValueLabelOverflow/2, ElementID: "C1", ElementType: TypeComponent, OwnerID: "C1"},
		},
		{
			name: "text is a fixed square owned by its component",
			el:   Text{ID: "t1", ComponentID: "R1", Position: Point{1, 1}, Text: "R1"},
			want: Box{MinX: 0.85, MinY: 0.85, MaxX: 1.15, MaxY: 1.15, ElementID: "t1", ElementType: TypeText, OwnerID: "R1"},
		},
		{
			name: "net label from leader",
			el:   NetLabel{ID: "n1", Net: "GND", Center: Point{0, 0}, Anchor: Point{0.3, -0.05}},
			want: Box{MinX: -0.3, MinY: -0.1, MaxX: 0.3, MaxY: 0.1, ElementID: "n1", ElementType: TypeNetLabel},
		},
		{
			name: "zero-length leader is clamped",
			el:   NetLabel{ID: "n2", Net: "VCC", Center: Point{1, 1}, Anchor: Point{1, 1}},
			want: Box{MinX: 0.9, MinY: 0.9, MaxX: 1.1, MaxY: 1.1, ElementID: "n2", ElementType: TypeNetLabel},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract([]Element{tt.el})
			if len(got) != 1 {
				t.Fatalf("Extract() returned %d boxes, want 1", len(got))
			}
			if !boxEqual(got[0], tt.want) {
				t.Errorf("Extract() = %+v, want %+v", got[0], tt.want)
			}
		})
	}
}

func TestExtract_IgnoresUnknown(t *testing.T) {
	got := Extract([]Element{unknownElement{}, Text{ID: "t"}})
	if len(got) != 1 || got[0].ElementID != "t" {
		t.Errorf("Extract() = %v, want only the text box", got)
	}
}

func TestComponentVertical(t *testing.T) {
	for _, r := range []float64{90, -90, 270, -270, 450} {
		if !(Component{Rotation: r}).Vertical() {
			t.Errorf("rotation %v should be vertical", r)
		}
	}
	for _, r := range []float64{0, 180, -180, 360} {
		if (Component{Rotation: r}).Vertical() {
			t.Errorf("rotation %v should be horizontal", r)
		}
	}
}

func TestBoxIntersects(t *testing.T) {
	a := Box{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}
	tests := []struct {
		name string
		b    Box
		want bool
	}{
		{"disjoint", Box{MinX: 2, MinY: 0, MaxX: 3, MaxY: 1}, false},
		{"overlap", Box{MinX: 0.5, MinY: 0, MaxX: 1.5, MaxY: 1}, true},
		{"touching", Box{MinX: 1, MinY: 0, MaxX: 2, MaxY: 1}, true},
		{"contained", Box{MinX: 0.2, MinY: 0.2, MaxX: 0.4, MaxY: 0.4}, true},
		{"above", Box{MinX: 0, MinY: 1.1, MaxX: 1, MaxY: 2}, false},
	}
	for _, tt := range tests {
		if got := a.Intersects(tt.b); got != tt.want {
			t.Errorf("%s: Intersects() = %v, want %v", tt.name, got, tt.want)
		}
		if got := tt.b.Intersects(a); got != tt.want {
			t.Errorf("%s: reversed Intersects() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestBoxSameOwner(t *testing.T) {
	if (Box{}).SameOwner(Box{}) {
		t.Error("empty owners should not match")
	}
	if !(Box{OwnerID: "R1"}).SameOwner(Box{OwnerID: "R1"}) {
		t.Error("equal owners should match")
	}
}
