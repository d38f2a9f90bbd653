package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/starhop/internal/core"
	"github.com/vovakirdan/starhop/internal/i18n"
	"github.com/vovakirdan/starhop/internal/level"
	"github.com/vovakirdan/starhop/internal/sim"
)

var colorStyles = map[Color]lipgloss.Style{
	ColorDefault:      lipgloss.NewStyle(),
	ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	ColorMagenta:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	ColorBrightCyan:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	ColorBrightWhite:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	ColorOrange:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

var (
	hudStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	bannerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 2)
	winStyle    = bannerStyle.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10"))
	loseStyle   = bannerStyle.Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1"))
	pauseStyle  = bannerStyle.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11"))
)

// RenderCanvas converts a canvas to a styled string.
// Adjacent cells with the same color share one escape sequence.
func RenderCanvas(c *Canvas) string {
	var sb strings.Builder
	sb.Grow(c.Width()*c.Height()*2 + c.Height())

	for y := 0; y < c.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < c.Width() {
			color := c.At(x, y).Color

			var run strings.Builder
			for x < c.Width() {
				cell := c.At(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[color]
			if !ok {
				style = colorStyles[ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Camera maps world pixels to canvas cells. Cells are about twice as tall
// as they are wide, so a column spans half the pixels of a row.
type Camera struct {
	X      float64 // left edge of the view in world pixels
	ScaleX float64 // world pixels per column
	ScaleY float64 // world pixels per row
}

// NewCamera fits the world height into rows and scrolls horizontally to keep
// focus centered, clamped to the world edges.
func NewCamera(world core.Rect, cols, rows int, focus core.Vec) Camera {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	sy := world.H / float64(rows)
	cam := Camera{ScaleX: sy / 2, ScaleY: sy}

	viewW := float64(cols) * cam.ScaleX
	if viewW >= world.W {
		cam.X = world.X
		return cam
	}
	cam.X = core.ClampF(focus.X-viewW/2, world.X, world.Right()-viewW)
	return cam
}

// Cells returns the inclusive cell range covered by r. A rectangle always
// covers at least one cell so thin objects stay visible.
func (cam Camera) Cells(r core.Rect) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor((r.X - cam.X) / cam.ScaleX))
	y0 = int(math.Floor(r.Y / cam.ScaleY))
	x1 = int(math.Ceil((r.Right()-cam.X)/cam.ScaleX)) - 1
	y1 = int(math.Ceil(r.Bottom()/cam.ScaleY)) - 1
	x1 = max(x1, x0)
	y1 = max(y1, y0)
	return
}

// Point returns the cell containing p.
func (cam Camera) Point(p core.Vec) (x, y int) {
	return int(math.Floor((p.X - cam.X) / cam.ScaleX)), int(math.Floor(p.Y / cam.ScaleY))
}

// DrawWorld paints a snapshot onto the canvas, back to front: platforms,
// goal, stars, enemies, player.
func DrawWorld(c *Canvas, s sim.Snapshot) Camera {
	c.Clear()
	cam := NewCamera(s.World, c.Width(), c.Height(), s.Player.Rect.Center())

	for _, p := range s.Platforms {
		if p.State == sim.PlatformGone {
			continue
		}
		r, color := platformGlyph(p)
		x0, y0, x1, y1 := cam.Cells(p.Rect)
		c.Fill(x0, y0, x1, y1, r, color)
	}

	x0, y0, x1, y1 := cam.Cells(s.Goal)
	c.Fill(x0, y0, x0, y1, '|', ColorBrightGreen)
	if x1 > x0 {
		c.Fill(x0+1, y0, x1, y0, '>', ColorBrightGreen)
	}

	for _, st := range s.Stars {
		x, y := cam.Point(st.Rect.Center())
		c.Set(x, y, '*', ColorBrightYellow)
	}

	for _, e := range s.Enemies {
		r, color := enemyGlyph(e.Type)
		x0, y0, x1, y1 := cam.Cells(e.Rect)
		c.Fill(x0, y0, x1, y1, r, color)
	}

	px0, py0, px1, py1 := cam.Cells(s.Player.Rect)
	color := ColorBrightCyan
	if s.Character == core.CharacterAgile {
		color = ColorMagenta
	}
	if s.Phase == sim.PhaseFailed {
		color = ColorGray
	}
	c.Fill(px0, py0, px1, py1, '@', color)
	return cam
}

func platformGlyph(p sim.PlatformView) (rune, Color) {
	switch {
	case p.Ground:
		return '▓', ColorGreen
	case p.State == sim.PlatformDecaying:
		return '░', ColorOrange
	case p.Kind == level.PlatformCrumble:
		return '▒', ColorYellow
	case p.Moving:
		return '=', ColorCyan
	default:
		return '█', ColorWhite
	}
}

func enemyGlyph(t level.EnemyType) (rune, Color) {
	switch t {
	case level.EnemyFlying:
		return 'W', ColorMagenta
	case level.EnemyVertical:
		return 'V', ColorBrightRed
	default:
		return 'M', ColorRed
	}
}

// hudLine is the status bar above the world.
func hudLine(tr i18n.Translator, s sim.Snapshot) string {
	name := tr.T(i18n.StandardName)
	if s.Character == core.CharacterAgile {
		name = tr.T(i18n.AgileName)
	}
	return hudStyle.Render(fmt.Sprintf("%s %d: %s   %s: %d   %s: %s",
		tr.T(i18n.Stage), s.LevelID, s.LevelName,
		tr.T(i18n.Score), s.Score,
		tr.T(i18n.Character), name))
}

// statusLine is the bar below the world: a banner for pause and outcomes,
// otherwise the key help.
func statusLine(tr i18n.Translator, s sim.Snapshot, note string) string {
	switch {
	case s.Phase == sim.PhaseCleared:
		return winStyle.Render(tr.T(i18n.StageClear)) + "  " + helpStyle.Render(tr.T(i18n.ContinueHint))
	case s.Phase == sim.PhaseFailed:
		msg := tr.T(i18n.HitByEnemy)
		if s.Cause == sim.CauseFall {
			msg = tr.T(i18n.FellOff)
		}
		return loseStyle.Render(msg) + "  " + helpStyle.Render(tr.T(i18n.RestartHint))
	case s.Paused:
		return pauseStyle.Render(tr.T(i18n.Paused))
	case note != "":
		return helpStyle.Render(note)
	default:
		return helpStyle.Render(tr.T(i18n.GameHelp))
	}
}

// centerText centers text within width, measuring display cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
