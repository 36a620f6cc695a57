package window

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/runaway/internal/core"
	"github.com/vovakirdan/runaway/internal/games/runaway"
)

var (
	defaultBackground = color.RGBA{100, 149, 237, 255} // cornflower blue
	backdropColor     = color.RGBA{255, 255, 255, 40}
	decorationColor   = color.RGBA{160, 100, 40, 255}
	ladderColor       = color.RGBA{200, 160, 60, 255}
	platformColor     = color.RGBA{110, 80, 50, 255}
	moverColor        = color.RGBA{90, 200, 200, 255}
	flagColor         = color.RGBA{220, 40, 180, 255}
	coinColor         = color.RGBA{255, 215, 0, 255}
	enemyColor        = color.RGBA{220, 40, 40, 255}
	playerColor       = color.RGBA{250, 250, 250, 255}
	overlayColor      = color.RGBA{0, 0, 0, 170}
	hudColor          = color.RGBA{255, 255, 255, 255}
	loseColor         = color.RGBA{255, 90, 90, 255}
	winColor          = color.RGBA{120, 255, 120, 255}
)

// backgroundColor parses a level's "#rrggbb" background, falling back to
// cornflower blue.
func backgroundColor(hex string) color.RGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		return defaultBackground
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 255}
}

// project maps a world box to screen pixels. cam is the bottom-left corner of
// the view in world space; screen Y grows downward.
func project(b core.Box, cam core.Vec, screenH float64) (x, y, w, h float32) {
	return float32(b.X - cam.X),
		float32(screenH - (b.Top() - cam.Y)),
		float32(b.W),
		float32(b.H)
}

// visible reports whether a projected box overlaps the screen.
func visible(x, y, w, h float32, screenW, screenH int) bool {
	return x+w > 0 && y+h > 0 && x < float32(screenW) && y < float32(screenH)
}

func hudText(s *runaway.Session) string {
	return fmt.Sprintf("Score: %d   Time: %.1f   Coins left: %d", s.Score, s.Elapsed, s.CoinsLeft())
}

func summaryText(s *runaway.Session) string {
	return fmt.Sprintf("Score: %d  Time: %.1fs  |  Press R to restart", s.Score, s.Elapsed)
}

// Draw renders the level around the camera, then the HUD and any overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.bg)

	s := g.session
	lvl := s.Level()

	for _, b := range lvl.Background {
		g.fill(screen, b, backdropColor)
	}
	for _, b := range lvl.Decorations {
		g.fill(screen, b, decorationColor)
	}
	for _, b := range lvl.Ladders {
		g.fill(screen, b, ladderColor)
	}
	for _, b := range lvl.Platforms {
		g.fill(screen, b, platformColor)
	}
	for _, b := range s.Movers() {
		g.fill(screen, b, moverColor)
	}
	g.fill(screen, lvl.Flag, flagColor)

	for _, c := range s.Coins {
		if !c.Alive {
			continue
		}
		x, y, w, h := project(c.Bounds(), s.Camera, float64(g.height))
		if visible(x, y, w, h, g.width, g.height) {
			vector.DrawFilledCircle(screen, x+w/2, y+h/2, min(w, h)/4, coinColor, true)
		}
	}
	for _, e := range s.Enemies {
		g.fill(screen, e.Bounds(), enemyColor)
	}
	g.fill(screen, s.Player.Bounds(), playerColor)

	g.drawText(screen, hudText(s), 10, 10, hudColor)

	switch s.Phase {
	case runaway.PhaseGameOver:
		g.drawOverlay(screen, "GAME OVER", summaryText(s), loseColor)
	case runaway.PhaseWon:
		g.drawOverlay(screen, "YOU WIN!", summaryText(s), winColor)
	}
}

func (g *Game) fill(dst *ebiten.Image, b core.Box, c color.Color) {
	x, y, w, h := project(b, g.session.Camera, float64(g.height))
	if visible(x, y, w, h, g.width, g.height) {
		vector.DrawFilledRect(dst, x, y, w, h, c, false)
	}
}

func (g *Game) drawText(dst *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, g.face, op)
}

func (g *Game) drawCentered(dst *ebiten.Image, s string, y float64, scale float64, c color.Color) {
	w, _ := text.Measure(s, g.face, 0)
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate((float64(g.width)-w*scale)/2, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, g.face, op)
}

// drawOverlay dims the screen and shows a title with a subtitle below it.
func (g *Game) drawOverlay(dst *ebiten.Image, title, subtitle string, c color.Color) {
	vector.DrawFilledRect(dst, 0, 0, float32(g.width), float32(g.height), overlayColor, false)
	mid := float64(g.height) / 2
	g.drawCentered(dst, title, mid-50, 3, c)
	g.drawCentered(dst, subtitle, mid+10, 1, hudColor)
}
