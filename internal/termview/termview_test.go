package termview

import (
	"image"
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Vision-Hero/internal/input"
)

type recorder struct {
	moves, shots, supers int
	lastX, lastY         float64
}

func (r *recorder) MoveTarget(x, y float64) bool {
	r.moves++
	r.lastX, r.lastY = x, y
	return true
}

func (r *recorder) Shoot(x, y float64) bool {
	r.shots++
	return true
}

func (r *recorder) UseSuperpower() bool {
	r.supers++
	return true
}

func newSimView(t *testing.T, cols, rows int) (*View, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(cols, rows)
	return New(screen), screen
}

// splitFrame is red on top, blue below.
func splitFrame(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		c := color.RGBA{R: 255, A: 255}
		if y >= h/2 {
			c = color.RGBA{B: 255, A: 255}
		}
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// --- Drawing ---

func TestDraw_HalfBlocks(t *testing.T) {
	v, screen := newSimView(t, 40, 10)
	v.Draw(splitFrame(400, 200))

	red := tcell.NewRGBColor(255, 0, 0)
	blue := tcell.NewRGBColor(0, 0, 255)

	r, _, style, _ := screen.GetContent(5, 0)
	if r != halfBlock {
		t.Fatalf("cell rune = %q, want half block", r)
	}
	fg, bg, _ := style.Decompose()
	if fg != red || bg != red {
		t.Errorf("top cell colours = %v/%v, want red/red", fg, bg)
	}

	_, _, style, _ = screen.GetContent(5, 9)
	fg, bg, _ = style.Decompose()
	if fg != blue || bg != blue {
		t.Errorf("bottom cell colours = %v/%v, want blue/blue", fg, bg)
	}
}

func TestToField_CellCentres(t *testing.T) {
	v, _ := newSimView(t, 40, 10)
	v.Draw(splitFrame(400, 200))

	x, y := v.ToField(0, 0)
	if x != 5 || y != 10 {
		t.Errorf("ToField(0,0) = (%v,%v), want (5,10)", x, y)
	}
	x, y = v.ToField(39, 9)
	if x != 395 || y != 190 {
		t.Errorf("ToField(39,9) = (%v,%v), want (395,190)", x, y)
	}
}

// --- Events ---

func TestHandle_Keys(t *testing.T) {
	v, _ := newSimView(t, 20, 10)
	rec := &recorder{}
	m := input.Mapper{}

	cases := []struct {
		ev   *tcell.EventKey
		want Command
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), CmdQuit},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), CmdQuit},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), CmdQuit},
		{tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), CmdRestart},
		{tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone), CmdCopyReport},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), CmdNone},
	}
	for _, c := range cases {
		if got := v.Handle(c.ev, rec, m); got != c.want {
			t.Errorf("key %v: got %d, want %d", c.ev.Name(), got, c.want)
		}
	}
	if rec.supers != 1 {
		t.Errorf("space fired %d superpowers, want 1", rec.supers)
	}
}

func TestHandle_MouseShootsOnPressEdge(t *testing.T) {
	v, _ := newSimView(t, 40, 10)
	v.Draw(splitFrame(400, 200))
	rec := &recorder{}
	m := input.Mapper{FieldW: 400, FieldH: 200, InputW: 200, InputH: 100}

	v.Handle(tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone), rec, m)
	v.Handle(tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone), rec, m)
	v.Handle(tcell.NewEventMouse(11, 5, tcell.Button1, tcell.ModNone), rec, m) // drag
	v.Handle(tcell.NewEventMouse(11, 5, tcell.ButtonNone, tcell.ModNone), rec, m)
	v.Handle(tcell.NewEventMouse(11, 5, tcell.Button1, tcell.ModNone), rec, m)

	if rec.moves != 5 {
		t.Errorf("moves = %d, want 5", rec.moves)
	}
	if rec.shots != 2 {
		t.Errorf("shots = %d, want 2", rec.shots)
	}
	// cell (11,5) centre is field (115,110), input (57.5,55)
	if rec.lastX != 57.5 || rec.lastY != 55 {
		t.Errorf("last move = (%v,%v), want (57.5,55)", rec.lastX, rec.lastY)
	}
}

func TestHandle_RightClickSuperpower(t *testing.T) {
	v, _ := newSimView(t, 40, 10)
	rec := &recorder{}
	v.Handle(tcell.NewEventMouse(1, 1, tcell.Button2, tcell.ModNone), rec, input.Mapper{})
	v.Handle(tcell.NewEventMouse(1, 1, tcell.Button2, tcell.ModNone), rec, input.Mapper{})
	if rec.supers != 1 {
		t.Errorf("supers = %d, want 1", rec.supers)
	}
}

func TestHandle_Resize(t *testing.T) {
	v, screen := newSimView(t, 40, 10)
	screen.SetSize(60, 20)
	if got := v.Handle(tcell.NewEventResize(60, 20), &recorder{}, input.Mapper{}); got != CmdRedraw {
		t.Fatalf("resize = %d, want CmdRedraw", got)
	}
	if c, r := v.Size(); c != 60 || r != 20 {
		t.Errorf("size = %dx%d, want 60x20", c, r)
	}
}
