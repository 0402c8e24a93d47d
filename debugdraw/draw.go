package debugdraw

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rigid2d/physics"
)

const (
	circleSegments = 24
	dotSize        = 4
)

var (
	StaticColor     = cp.FColor{R: 0.2, G: 0.5, B: 1, A: 0.9}
	KinematicColor  = cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
	BoundsColor     = cp.FColor{R: 0.6, G: 0.6, B: 0.6, A: 0.4}
	ContactColor    = cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
	SuppressedColor = cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.6}
)

// Canvas receives line segments in screen space.
type Canvas interface {
	DrawLine(x1, y1, x2, y2 float64, c color.Color)
}

type screenCanvas struct {
	screen *ebiten.Image
}

func (s screenCanvas) DrawLine(x1, y1, x2, y2 float64, c color.Color) {
	ebitenutil.DrawLine(s.screen, x1, y1, x2, y2, c)
}

// ScreenCanvas draws onto an ebiten image.
func ScreenCanvas(screen *ebiten.Image) Canvas {
	return screenCanvas{screen: screen}
}

type Camera struct {
	X, Y float64
	Zoom float64
}

func (c Camera) ToScreen(v cp.Vector) (float64, float64) {
	zoom := c.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return (v.X - c.X) * zoom, (v.Y - c.Y) * zoom
}

type Options struct {
	Bounds     bool
	Contacts   bool
	Suppressed bool
}

// Drawer renders colliders, bounding boxes, contact points and the tile
// edges whose normals are suppressed.
type Drawer struct {
	Canvas  Canvas
	Camera  Camera
	Options Options
}

func (d *Drawer) Draw(w *physics.World) {
	if d == nil || d.Canvas == nil || w == nil {
		return
	}
	for _, b := range w.Bodies() {
		d.drawBody(b)
	}
	if d.Options.Contacts {
		for _, b := range w.KinematicBodies() {
			for _, c := range b.Contacts() {
				d.drawContact(c)
			}
		}
	}
}

func (d *Drawer) drawBody(b *physics.RigidBody) {
	col := StaticColor
	if b.Type() == physics.Kinematic {
		col = KinematicColor
	}

	c := b.Collider()
	switch c.Kind {
	case physics.ShapeCircle:
		d.drawCircle(c.Circle.Center, c.Circle.Radius, col)
		end := c.Circle.Center.Add(cp.ForAngle(b.Rotation()).Mult(c.Circle.Radius))
		d.drawLine(c.Circle.Center, end, col)
	case physics.ShapeRectangle:
		verts := c.Rectangle.Vertices()
		if b.ColliderType() == physics.ColliderTile && d.Options.Suppressed {
			d.drawTile(verts, b.NormalFilter(), col)
		} else {
			d.drawPolygon(verts[:], col)
		}
	}

	if d.Options.Bounds {
		bb := b.Bounds()
		d.drawPolygon([]cp.Vector{
			{X: bb.L, Y: bb.B}, {X: bb.R, Y: bb.B}, {X: bb.R, Y: bb.T}, {X: bb.L, Y: bb.T},
		}, BoundsColor)
	}
}

// TileEdge is one side of a tile and the normal direction it would produce.
type TileEdge struct {
	A, B       cp.Vector
	Direction  physics.NormalFilter
	Suppressed bool
}

// TileEdges splits tile vertices into their four sides. Vertices follow the
// rectangle winding: min-min, max-min, max-max, min-max.
func TileEdges(verts [4]cp.Vector, filter physics.NormalFilter) [4]TileEdge {
	dirs := [4]physics.NormalFilter{physics.NormalNegY, physics.NormalPosX, physics.NormalPosY, physics.NormalNegX}
	var out [4]TileEdge
	for i := range verts {
		out[i] = TileEdge{
			A:          verts[i],
			B:          verts[(i+1)%4],
			Direction:  dirs[i],
			Suppressed: !filter.Allows(dirs[i]),
		}
	}
	return out
}

func (d *Drawer) drawTile(verts [4]cp.Vector, filter physics.NormalFilter, col cp.FColor) {
	for _, e := range TileEdges(verts, filter) {
		if e.Suppressed {
			d.drawLine(e.A, e.B, SuppressedColor)
			continue
		}
		d.drawLine(e.A, e.B, col)
	}
}

func (d *Drawer) drawContact(c *physics.Contact) {
	for _, p := range c.Points {
		d.drawDot(p.Position, ContactColor)
		d.drawLine(p.Position, p.Position.Add(p.Normal.Mult(math.Max(p.Depth, dotSize))), ContactColor)
	}
}

func (d *Drawer) drawDot(pos cp.Vector, col cp.FColor) {
	half := float64(dotSize) / 2
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, col)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, col)
}

func (d *Drawer) drawLine(a, b cp.Vector, col cp.FColor) {
	x1, y1 := d.Camera.ToScreen(a)
	x2, y2 := d.Camera.ToScreen(b)
	d.Canvas.DrawLine(x1, y1, x2, y2, toNRGBA(col))
}

func (d *Drawer) drawPolygon(verts []cp.Vector, col cp.FColor) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], col)
	}
}

func (d *Drawer) drawCircle(center cp.Vector, radius float64, col cp.FColor) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, circleSegments)
	for i := 0; i < circleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(circleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, col)
}

// DrawStats prints the last step's timing in the top-left corner.
func DrawStats(screen *ebiten.Image, w *physics.World, stats *physics.StepStats) {
	if screen == nil || w == nil || stats == nil {
		return
	}
	last := stats.Last
	text := fmt.Sprintf("Step: %d\nBodies: %d (tiles %d)\nContacts: %d suppressed %d\nCorrected: %d\nStep time: %v (mean %v)",
		w.StepCount(), w.Len(), w.TileMap().Len(),
		last.Detection.Contacts, last.Detection.Suppressed,
		last.Corrected, last.Total(), stats.Mean())
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
