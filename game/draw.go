package game

import (
	"fmt"

	"github.com/lixenwraith/pigpen/constant"
	"github.com/lixenwraith/pigpen/physics"
	"github.com/lixenwraith/pigpen/platform"
)

// Glyphs and colors per object type
var sprites = [...]struct {
	glyph rune
	color platform.Color
}{
	physics.TypePlayer: {'█', platform.ColorPink},
	physics.TypeKing:   {'█', platform.ColorGold},
	physics.TypeMinion: {'▒', platform.ColorPink},
}

// draw renders the pen scaled to the canvas, objects at XAt(frac), YAt(frac)
func (g *Game) draw(width, height int, frac float32) {
	if g.canvas == nil {
		return
	}
	g.canvas.Clear()
	if width <= 0 || height <= 0 {
		return
	}

	sx := float32(width) / constant.WorldWidth
	sy := float32(height) / constant.WorldHeight

	groundRow := int(constant.GroundLevel * sy)
	for x := 0; x < width; x++ {
		for y := groundRow; y < height; y++ {
			g.canvas.Plot(x, y, '░', platform.ColorBrown)
		}
	}

	g.roster.Each(func(_ int, o *physics.Object) {
		sp := sprites[o.Type()]
		x0, y0, x1, y1 := cellRect(o, frac, sx, sy)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				g.canvas.Plot(x, y, sp.glyph, sp.color)
			}
		}
	})

	if g.mouseX >= 0 && g.mouseY >= 0 {
		g.canvas.Plot(g.mouseX, g.mouseY, '+', platform.ColorWhite)
	}

	g.drawStatus(width, height)
}

// cellRect maps an object's interpolated box to cells, at least one cell wide
func cellRect(o *physics.Object, frac, sx, sy float32) (x0, y0, x1, y1 int) {
	x, y := o.XAt(frac), o.YAt(frac)
	x0 = int(x * sx)
	y0 = int(y * sy)
	x1 = max(int((x+o.Width())*sx), x0+1)
	y1 = max(int((y+o.Height())*sy), y0+1)
	return x0, y0, x1, y1
}

func (g *Game) drawStatus(width, height int) {
	music := "off"
	if g.music != nil && !g.music.IsMuted() {
		music = fmt.Sprintf("%d%%", int(g.music.Volume()*100+0.5))
	}
	g.canvas.Print(0, 0, fmt.Sprintf("music %s  [m]ute [p]ause", music), platform.ColorGray)

	if g.paused {
		const label = "PAUSED"
		g.canvas.Print((width-len(label))/2, height/2, label, platform.ColorWhite)
	}
}
