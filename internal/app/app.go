// Package app hosts a session in an ebiten window: it reads mouse and
// keyboard each tick, advances the session and uploads the rendered frame.
package app

import (
	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"github.com/Garsondee/Vision-Hero/internal/game"
	"github.com/Garsondee/Vision-Hero/internal/input"
	"github.com/Garsondee/Vision-Hero/internal/render"
	"github.com/Garsondee/Vision-Hero/internal/session"
)

// Input is one tick of host input, already edge-detected.
type Input struct {
	CursorX, CursorY int
	CursorMoved      bool
	Shoot            bool // left button went down
	Superpower       bool // right button or space went down
	Restart          bool
	Quit             bool
	Copy             bool
}

// Game implements ebiten.Game.
type Game struct {
	sess     *session.Session
	renderer *render.Renderer
	log      zerolog.Logger
	skipLog  zerolog.Logger

	screen     *ebiten.Image
	lastX      int
	lastY      int
	copyReport func(string) error
}

// New builds a Game around s. Render skips are logged through a sampled
// copy of log.
func New(s *session.Session, r *render.Renderer, log, skipLog zerolog.Logger) *Game {
	return &Game{
		sess:       s,
		renderer:   r,
		log:        log,
		skipLog:    skipLog,
		lastX:      -1,
		lastY:      -1,
		copyReport: clipboard.WriteAll,
	}
}

// Update reads input and advances the session one tick.
func (g *Game) Update() error {
	if err := g.apply(g.readInput()); err != nil {
		return err
	}
	g.sess.Update()
	return nil
}

func (g *Game) readInput() Input {
	x, y := ebiten.CursorPosition()
	in := Input{
		CursorX:     x,
		CursorY:     y,
		CursorMoved: x != g.lastX || y != g.lastY,
		Shoot:       inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Superpower:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) || inpututil.IsKeyJustPressed(ebiten.KeySpace),
		Restart:     inpututil.IsKeyJustPressed(ebiten.KeyR),
		Quit:        inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		Copy:        inpututil.IsKeyJustPressed(ebiten.KeyC),
	}
	g.lastX, g.lastY = x, y
	return in
}

// apply turns one tick of input into session commands. The cursor is in
// field pixels because Layout reports the field size.
func (g *Game) apply(in Input) error {
	if in.Quit {
		g.log.Info().Msg("quit requested")
		return ebiten.Termination
	}
	if in.Restart {
		g.sess.Restart()
		g.log.Info().Int("game", g.sess.Games()).Msg("restarted")
		return nil
	}
	if in.Copy {
		if err := g.copyReport(g.sess.Report()); err != nil {
			g.log.Warn().Err(err).Msg("failed to copy report to clipboard")
		} else {
			g.log.Info().Msg("report copied to clipboard")
		}
	}

	snap := g.sess.Snapshot()
	m := input.NewMapper(&snap)
	x, y := m.ToInput(float64(in.CursorX), float64(in.CursorY))
	if in.CursorMoved {
		g.sess.MoveTarget(x, y)
	}
	if in.Shoot {
		g.sess.Shoot(x, y)
	}
	if in.Superpower {
		g.sess.UseSuperpower()
	}
	return nil
}

// Draw renders the current snapshot and uploads it.
func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.sess.Snapshot()
	frame, report := g.renderer.Render(&snap, g.sess.Leaderboard())
	for _, skip := range report.Skipped {
		g.skipLog.Debug().Err(skip).Msg("draw skipped")
	}

	b := frame.Bounds()
	if g.screen == nil || g.screen.Bounds().Dx() != b.Dx() || g.screen.Bounds().Dy() != b.Dy() {
		if g.screen != nil {
			g.screen.Deallocate()
		}
		g.screen = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.screen.WritePixels(frame.Pix)
	screen.DrawImage(g.screen, nil)
}

// Layout fixes the logical screen to the field; ebiten scales it to the
// window.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.sess.Engine().FieldSize()
}

// Run opens the window and blocks until the player quits.
func Run(g *Game, title string, scale float64) error {
	w, h := g.sess.Engine().FieldSize()
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(int(float64(w)*scale), int(float64(h)*scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(game.TickRate)
	return ebiten.RunGame(g)
}
