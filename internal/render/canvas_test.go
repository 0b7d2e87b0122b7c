package render

import (
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestPlotDepth(t *testing.T) {
	c := NewCanvas(4, 2)
	if !math.IsInf(c.Depth(0, 0), 1) {
		t.Fatal("new canvas should be infinitely deep")
	}
	if !c.Plot(1, 1, 2.0, 'a', tcell.StyleDefault) {
		t.Fatal("first plot rejected")
	}
	if c.Plot(1, 1, 3.0, 'b', tcell.StyleDefault) {
		t.Error("farther plot accepted")
	}
	if !c.Plot(1, 1, 1.0, 'c', tcell.StyleDefault) {
		t.Error("nearer plot rejected")
	}
	if got := c.Get(1, 1).Char; got != 'c' {
		t.Errorf("cell = %q, want c", got)
	}
	if c.Plot(9, 9, 0, 'x', tcell.StyleDefault) {
		t.Error("off-canvas plot accepted")
	}

	c.Clear()
	if c.Get(1, 1).Char != ' ' || !math.IsInf(c.Depth(1, 1), 1) {
		t.Error("Clear left content behind")
	}
}

func TestSetKeepsBackground(t *testing.T) {
	c := NewCanvas(2, 1)
	bg := tcell.NewRGBColor(10, 20, 30)
	c.Fill(0, 0, 1, tcell.StyleDefault.Background(bg))
	c.Set(0, 0, '·', tcell.StyleDefault.Foreground(tcell.ColorWhite))

	fg, got, _ := c.Get(0, 0).Style.Decompose()
	if got != bg || fg != tcell.ColorWhite {
		t.Errorf("fg %v bg %v, want white on %v", fg, got, bg)
	}
}

func TestDrawLine(t *testing.T) {
	c := NewCanvas(10, 10)
	c.DrawLine(1, 1, 1, 7, 4, 1, '*', tcell.StyleDefault)

	for _, p := range [][2]int{{1, 1}, {7, 4}} {
		if c.Get(p[0], p[1]).Char != '*' {
			t.Errorf("end point %v not drawn", p)
		}
	}
	n := 0
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if c.Get(x, y).Char == '*' {
				n++
			}
		}
	}
	if n != 7 {
		t.Errorf("line covers %d cells, want 7", n)
	}

	// A farther line does not overwrite.
	c.DrawLine(1, 1, 5, 7, 4, 5, '#', tcell.StyleDefault)
	if c.Get(1, 1).Char != '*' {
		t.Error("farther line overwrote nearer one")
	}
}

func TestDrawTextWidth(t *testing.T) {
	c := NewCanvas(10, 1)
	if n := c.DrawText(0, 0, "São", tcell.StyleDefault); n != 3 {
		t.Errorf("DrawText(São) = %d columns", n)
	}
	if n := c.DrawText(4, 0, "世界", tcell.StyleDefault); n != 4 {
		t.Errorf("DrawText(世界) = %d columns", n)
	}
	if c.Get(6, 0).Char != '界' {
		t.Errorf("wide runes misplaced: %q", c.Get(6, 0).Char)
	}
}

func TestBlit(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(5, 2)

	c := NewCanvas(5, 2)
	c.DrawText(0, 1, "ok", StylePanel)
	c.Blit(screen, 0, 0)
	screen.Show()

	if r, _, _, _ := screen.GetContent(1, 1); r != 'k' {
		t.Errorf("screen cell = %q, want k", r)
	}
}

func TestBoxChar(t *testing.T) {
	if BoxChar(0) != '▁' || BoxChar(1) != '█' || BoxChar(5) != '█' || BoxChar(-1) != '▁' {
		t.Error("BoxChar does not clamp to the ramp")
	}
	if BoxChar(0.5) <= BoxChar(0.2) {
		t.Error("BoxChar not monotonic")
	}
}
