// Package termview shows rendered frames in a terminal and turns terminal
// mouse and key events into session commands.
//
// Each cell carries two vertically stacked pixels: the upper half block is
// drawn in the foreground colour and the lower half in the background.
package termview

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
	xdraw "golang.org/x/image/draw"

	"github.com/Garsondee/Vision-Hero/internal/input"
)

const halfBlock = '▀'

// Command is what a terminal event asks of the driver beyond engine input.
type Command int

const (
	CmdNone Command = iota
	CmdQuit
	CmdRestart
	CmdCopyReport
	CmdRedraw
)

// View owns the terminal screen.
type View struct {
	screen  tcell.Screen
	cols    int
	rows    int
	scaled  *image.RGBA
	fieldW  int
	fieldH  int
	pressed tcell.ButtonMask
}

// New wraps an initialised screen and enables mouse reporting.
func New(screen tcell.Screen) *View {
	screen.EnableMouse()
	screen.HideCursor()
	v := &View{screen: screen}
	v.resize()
	return v
}

func (v *View) resize() {
	v.cols, v.rows = v.screen.Size()
	v.scaled = image.NewRGBA(image.Rect(0, 0, max(1, v.cols), max(1, v.rows*2)))
}

// Size returns the terminal size in cells.
func (v *View) Size() (cols, rows int) { return v.cols, v.rows }

// Draw scales frame to the terminal and shows it.
func (v *View) Draw(frame *image.RGBA) {
	b := frame.Bounds()
	v.fieldW, v.fieldH = b.Dx(), b.Dy()
	if v.cols <= 0 || v.rows <= 0 {
		return
	}
	xdraw.ApproxBiLinear.Scale(v.scaled, v.scaled.Bounds(), frame, b, xdraw.Src, nil)

	for row := 0; row < v.rows; row++ {
		for col := 0; col < v.cols; col++ {
			top := v.scaled.RGBAAt(col, row*2)
			bottom := v.scaled.RGBAAt(col, row*2+1)
			style := tcell.StyleDefault.Foreground(toTcell(top)).Background(toTcell(bottom))
			v.screen.SetContent(col, row, halfBlock, nil, style)
		}
	}
	v.screen.Show()
}

func toTcell(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// ToField maps a cell to the field pixel at its centre.
func (v *View) ToField(col, row int) (float64, float64) {
	if v.cols <= 0 || v.rows <= 0 {
		return 0, 0
	}
	x := (float64(col) + 0.5) * float64(v.fieldW) / float64(v.cols)
	y := (float64(row) + 0.5) * float64(v.fieldH) / float64(v.rows)
	return x, y
}

// Handle applies ev to c, usually a *session.Session. Mouse motion steers the farmer, a left click
// shoots and a right click or space fires the superpower. Coordinates are
// mapped with m from the last drawn frame into the engine's input space.
func (v *View) Handle(ev tcell.Event, c input.Commander, m input.Mapper) Command {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.resize()
		v.screen.Sync()
		return CmdRedraw

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return CmdQuit
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return CmdQuit
			case 'r', 'R':
				return CmdRestart
			case 'c', 'C':
				return CmdCopyReport
			case ' ':
				c.UseSuperpower()
			}
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		x, y := m.ToInput(v.ToField(col, row))
		btn := ev.Buttons()
		c.MoveTarget(x, y)
		if btn&tcell.Button1 != 0 && v.pressed&tcell.Button1 == 0 {
			c.Shoot(x, y)
		}
		if btn&tcell.Button2 != 0 && v.pressed&tcell.Button2 == 0 {
			c.UseSuperpower()
		}
		v.pressed = btn
	}
	return CmdNone
}
