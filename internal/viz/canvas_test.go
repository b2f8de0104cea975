package viz

import (
	"strings"
	"testing"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)

	if got := c.Grid[0][0]; got != 0x2801 {
		t.Errorf("cell 0 = %U, want U+2801", got)
	}
	if got := c.Grid[0][1]; got != 0x2880 {
		t.Errorf("cell 1 = %U, want U+2880", got)
	}
	if !c.IsSet(3, 3) || c.IsSet(2, 3) {
		t.Error("IsSet disagrees with Set")
	}
}

func TestDashedLineHasGaps(t *testing.T) {
	solid, dashed := NewCanvas(10, 1), NewCanvas(10, 1)
	solid.DrawLine(0, 0, 19, 0)
	dashed.DrawDashed(0, 0, 19, 0)

	lit := 0
	for x := 0; x < 20; x++ {
		if !solid.IsSet(x, 0) {
			t.Fatalf("solid line missing pixel %d", x)
		}
		if dashed.IsSet(x, 0) {
			lit++
		}
	}
	if lit != 12 {
		t.Errorf("dashed line lit %d pixels, want 12", lit)
	}
}

func TestLabelOverlay(t *testing.T) {
	c := NewCanvas(9, 2)
	c.DrawLine(0, 0, 17, 0)
	c.Label(4, 0, "abc")
	c.Label(8, 1, "xyz")
	c.Label(0, 5, "off")

	lines := strings.Split(strings.TrimRight(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d rows, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "abc") {
		t.Errorf("row 0 = %q, want the label", lines[0])
	}
	if r := []rune(lines[1]); string(r[7:]) != "xy" {
		t.Errorf("row 1 tail = %q, want clipped label", string(r[7:]))
	}

	c.Clear()
	if strings.Contains(c.String(), "abc") {
		t.Error("Clear kept labels")
	}
}

func TestCanvasImage(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(1, 2)
	img := c.Image()

	if b := img.Bounds(); b.Dx() != 2*CellWidth || b.Dy() != CellHeight {
		t.Fatalf("bounds = %v", b)
	}
	dotW, dotH := CellWidth/2, CellHeight/4
	if img.ColorIndexAt(dotW, 2*dotH) != 1 {
		t.Error("lit sub-pixel not drawn")
	}
	if img.ColorIndexAt(0, 0) != 0 {
		t.Error("dark sub-pixel drawn")
	}
}
