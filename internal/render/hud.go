package render

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/Vision-Hero/internal/game"
	"github.com/Garsondee/Vision-Hero/internal/raster"
)

const (
	hudHeight   = 50
	hudTextY    = 12
	hudScale    = 2.0
	hudScoreX   = 20
	hudTimeX    = 250
	hudCropsX   = 450
	hudPowerOff = 350 // from the right edge

	noteSlide      = 24 // px a banner drops while entering
	noteShadow     = 2
	maxBoardLines  = 5
	gameOverHalfW  = 330
	gameOverTop    = 130 // above the field centre
	gameOverBottom = 130 // below the field centre
)

// noteAnchor places one notification category on screen. A negative x
// centres the text horizontally.
type noteAnchor struct {
	x, y  int
	scale float64
}

// noteAnchors keeps each category in its own slot so banners never overlap.
// y is relative to the top of the frame except for the shot slot, which sits
// above the field strip.
func noteAnchors(h int) map[game.NotifyCategory]noteAnchor {
	return map[game.NotifyCategory]noteAnchor{
		game.NotifyGameState:  {x: -1, y: 140, scale: 3},
		game.NotifySuperpower: {x: -1, y: 190, scale: 2},
		game.NotifyCropStatus: {x: -1, y: 230, scale: 2},
		game.NotifyCombat:     {x: -1, y: 270, scale: 2},
		game.NotifyTimeBonus:  {x: hudTimeX, y: hudHeight + 8, scale: 2},
		game.NotifyShot:       {x: -1, y: h - fieldStripHeight - 40, scale: 2},
	}
}

func (r *Renderer) drawHUD(s *game.Snapshot) {
	c := r.canvas
	r.skip("hud", c.FillRect(0, 0, float64(s.Width), hudHeight, colHUDBack))

	r.skip("hud.score", c.Text(fmt.Sprintf("Score: %d", s.Score), hudScoreX, hudTextY, hudScale, colWhite))
	r.skip("hud.time", c.Text("Time: "+game.FormatClock(s.RemainingTime), hudTimeX, hudTextY, hudScale, timeColor(s.RemainingTime)))
	r.skip("hud.crops", c.Text(fmt.Sprintf("Crops: %d/%d", s.CropsAlive, len(s.Crops)), hudCropsX, hudTextY, hudScale, colWhite))

	text, col := superpowerStatus(s)
	r.skip("hud.superpower", c.Text(text, s.Width-hudPowerOff, hudTextY, hudScale, col))
}

// superpowerStatus is the HUD text: seconds of buff left while active,
// a pulsing READY once the cooldown has passed, else the cooldown left.
func superpowerStatus(s *game.Snapshot) (string, color.RGBA) {
	switch {
	case s.Farmer.HasSuperpower():
		return fmt.Sprintf("SUPERPOWER: %ds", s.Farmer.SuperpowerTicksLeft()/30), colRed
	case s.SuperpowerCooldownLeft <= 0:
		return "SUPERPOWER: READY!", fade(colGreen, pulse(s.Tick, 0.2, 0.55, 1))
	default:
		return fmt.Sprintf("SUPERPOWER: %ds", int(s.SuperpowerCooldownLeft.Seconds())), colRed
	}
}

func (r *Renderer) drawNotifications(s *game.Snapshot) {
	anchors := noteAnchors(s.Height)
	for _, n := range s.Notifications {
		a, ok := anchors[n.Category]
		if !ok {
			continue
		}
		alpha := n.Alpha()
		if alpha <= 0 {
			continue
		}
		y := a.y - int(float64(noteSlide)*(1-n.SlideProgress()))
		x := a.x
		if x < 0 {
			x = s.Width/2 - raster.TextWidth(n.Text, a.scale)/2
		}
		name := "note." + n.Category.String()
		// Drop shadow first; its failure does not skip the banner.
		_ = r.canvas.Text(n.Text, x+noteShadow, y+noteShadow, a.scale, fade(colBlack, alpha))
		r.skip(name, r.canvas.Text(n.Text, x, y, a.scale, fade(n.Color, alpha)))
	}
}

func (r *Renderer) drawGameOver(s *game.Snapshot, board []string) {
	c := r.canvas
	w, h := float64(s.Width), float64(s.Height)
	cx, cy := s.Width/2, s.Height/2

	r.skip("gameover.dim", c.FillRect(0, 0, w, h, colGameOverDim))

	accent := colRed
	title := "GAME OVER"
	if s.GameWon {
		accent = colGreen
		title = "VICTORY!"
	}

	border := pulse(s.Tick, 0.15, 2, 6)
	r.skip("gameover.border", c.StrokeRect(
		float64(cx-gameOverHalfW), float64(cy-gameOverTop),
		float64(cx+gameOverHalfW), float64(cy+gameOverBottom),
		border, accent))

	r.skip("gameover.title", c.TextCentered(title, cx, cy-100, 5, accent))
	r.skip("gameover.score", c.TextCentered(fmt.Sprintf("Final Score: %d", s.Score), cx, cy-10, 2, colWhite))
	if s.GameWon {
		saved := fmt.Sprintf("Crops Saved: %d/%d", s.CropsAlive, len(s.Crops))
		r.skip("gameover.crops", c.TextCentered(saved, cx, cy+30, 2, colYellow))
	}
	r.skip("gameover.prompt", c.TextCentered("Press 'r' to Restart or 'q' to Quit", cx, cy+75, 2, colWhite))

	y := cy + gameOverBottom + 20
	for i, line := range board {
		if i >= maxBoardLines {
			break
		}
		r.skip(fmt.Sprintf("gameover.board[%d]", i), c.TextCentered(line, cx, y, 1.5, colWhite))
		y += raster.TextHeight(1.5) + 4
	}
}
