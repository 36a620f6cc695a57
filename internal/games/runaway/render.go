package runaway

import (
	"fmt"
	"math"

	"github.com/vovakirdan/runaway/internal/core"
)

// Visual characters for rendering
const (
	PlatformChar   = '█'
	MoverChar      = '▀'
	LadderChar     = '╫'
	CoinChar       = '●'
	FlagChar       = '▚'
	PlayerChar     = '█'
	EnemyChar      = '▓'
	BackgroundChar = '░'
	ChestChar      = '▤'
)

// view maps world boxes onto screen cells.
type view struct {
	cam    core.Vec
	cw, ch float64
	top    float64 // world Y of the first playfield row
	w, h   int
}

func (v view) rect(b core.Box) (core.Rect, bool) {
	x0 := int(math.Floor((b.X - v.cam.X) / v.cw))
	x1 := int(math.Ceil((b.Right() - v.cam.X) / v.cw))
	y0 := int(math.Floor((v.top-b.Top())/v.ch)) + hudRows
	y1 := int(math.Ceil((v.top-b.Y)/v.ch)) + hudRows

	x0, x1 = core.Max(x0, 0), core.Min(x1, v.w)
	y0, y1 = core.Max(y0, hudRows), core.Min(y1, v.h)
	if x0 >= x1 || y0 >= y1 {
		return core.Rect{}, false
	}
	return core.NewRect(x0, y0, x1-x0, y1-y0), true
}

func (v view) fill(dst *core.Screen, b core.Box, ch rune, c core.Color) {
	if r, ok := v.rect(b); ok {
		dst.DrawRect(r, ch, c)
	}
}

// Render draws the visible part of the level, the HUD and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	s := g.session
	if s == nil {
		return
	}

	rows := core.Max(dst.Height()-hudRows, 0)
	v := view{
		cam: s.Camera,
		cw:  g.opts.CellWidth,
		ch:  g.opts.CellHeight,
		top: s.Camera.Y + float64(rows)*g.opts.CellHeight,
		w:   dst.Width(),
		h:   dst.Height(),
	}

	lvl := s.Level()
	for _, b := range lvl.Background {
		v.fill(dst, b, BackgroundChar, core.ColorGray)
	}
	for _, b := range lvl.Decorations {
		v.fill(dst, b, ChestChar, core.ColorOrange)
	}
	for _, b := range lvl.Ladders {
		v.fill(dst, b, LadderChar, core.ColorYellow)
	}
	for _, b := range lvl.Platforms {
		v.fill(dst, b, PlatformChar, core.ColorGreen)
	}
	for _, b := range s.Movers() {
		v.fill(dst, b, MoverChar, core.ColorCyan)
	}
	v.fill(dst, lvl.Flag, FlagChar, core.ColorMagenta)
	for _, c := range s.Coins {
		if c.Alive {
			g.drawCoin(dst, v, c)
		}
	}
	for _, e := range s.Enemies {
		v.fill(dst, e.Bounds(), EnemyChar, core.ColorBrightRed)
	}
	v.fill(dst, s.Player.Bounds(), PlayerChar, core.ColorBrightCyan)

	g.drawHUD(dst)

	switch {
	case s.Phase == PhaseGameOver:
		drawCenteredMessage(dst, "GAME OVER", g.summary(), core.ColorBrightRed)
	case s.Phase == PhaseWon:
		drawCenteredMessage(dst, "YOU WIN!", g.summary(), core.ColorBrightGreen)
	case g.paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume", core.ColorBrightWhite)
	}
}

// drawCoin draws a coin as a single glyph at its centre.
func (g *Game) drawCoin(dst *core.Screen, v view, c *Coin) {
	center := c.Pos
	x := int(math.Floor((center.X - v.cam.X) / v.cw))
	y := int(math.Floor((v.top-center.Y)/v.ch)) + hudRows
	if y < hudRows {
		return
	}
	dst.SetColored(x, y, CoinChar, core.ColorBrightYellow)
}

func (g *Game) drawHUD(dst *core.Screen) {
	s := g.session
	dst.DrawRect(core.NewRect(0, 0, dst.Width(), hudRows), ' ', core.ColorDefault)
	hud := fmt.Sprintf(" Score: %d  Time: %.1f  Coins left: %d ", s.Score, s.Elapsed, s.CoinsLeft())
	dst.DrawTextColored(0, 0, hud, core.ColorBrightWhite)

	title := g.Title() + " "
	dst.DrawTextColored(dst.Width()-len([]rune(title)), 0, title, core.ColorCyan)
}

func (g *Game) summary() string {
	return fmt.Sprintf("Score: %d  Time: %.1fs  |  Press R to restart", g.session.Score, g.session.Elapsed)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string, c core.Color) {
	tw, sw := len([]rune(title)), len([]rune(subtitle))

	boxW := core.Max(tw, sw) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), c)

	dst.DrawTextColored(boxX+(boxW-tw)/2, boxY+1, title, c)
	dst.DrawTextColored(boxX+(boxW-sw)/2, boxY+3, subtitle, core.ColorDefault)
}
