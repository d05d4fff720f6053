package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/ironsheep/shapegen/internal/shapes"
	"golang.org/x/image/vector"
)

// ErrInvalidCanvas is returned for a canvas size that is zero or negative.
var ErrInvalidCanvas = errors.New("invalid canvas size")

var (
	black = image.NewUniform(color.Black)
	white = image.NewUniform(color.White)
)

// Layers is the finalized output of Rasterize.
type Layers struct {
	// Image is the RGB picture, background (1, 1, 1).
	Image *ColorGrid

	// Instances holds compacted instance ids 1..K, 0 for background.
	Instances *LabelGrid

	// Classes holds class ids, 0 for background.
	Classes *LabelGrid

	// Remap maps raw draw-order counters to compacted ids. Counters whose
	// shape was fully covered by later shapes are absent.
	Remap map[int]int

	// InstanceClasses maps each compacted instance id to its class id.
	InstanceClasses map[int]int
}

// InstanceCount returns K, the number of visible instances.
func (l *Layers) InstanceCount() int {
	return len(l.Remap)
}

// canvas holds the mutable state of one rasterization.
type canvas struct {
	size      int
	img       *image.RGBA
	instances *LabelGrid
	classes   *LabelGrid

	ras       *vector.Rasterizer
	fill      *image.Alpha
	outline   *image.Alpha
	footprint *image.Alpha
}

func newCanvas(size int) *canvas {
	rect := image.Rect(0, 0, size, size)
	img := image.NewRGBA(rect)
	draw.Draw(img, rect, white, image.Point{}, draw.Src)
	return &canvas{
		size:      size,
		img:       img,
		instances: NewLabelGrid(size, size),
		classes:   NewLabelGrid(size, size),
		ras:       vector.NewRasterizer(size, size),
		fill:      image.NewAlpha(rect),
		outline:   image.NewAlpha(rect),
		footprint: image.NewAlpha(rect),
	}
}

// Rasterize draws scene in order onto a square canvas of canvasSize pixels
// and returns the finalized layers. The i-th descriptor (1-based) is drawn
// with raw instance id i. Every descriptor is validated before anything is
// drawn; an invalid descriptor rejects the scene.
func Rasterize(scene shapes.Scene, canvasSize int) (*Layers, error) {
	c, err := render(scene, canvasSize)
	if err != nil {
		return nil, err
	}
	return c.finalize(), nil
}

// render draws the scene without compacting instance ids.
func render(scene shapes.Scene, canvasSize int) (*canvas, error) {
	if canvasSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCanvas, canvasSize)
	}
	for i, d := range scene {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("shape %d: %w", i+1, err)
		}
	}

	c := newCanvas(canvasSize)
	for i, d := range scene {
		c.drawShape(d, i+1)
	}
	return c, nil
}

func (c *canvas) drawShape(d shapes.Descriptor, counter int) {
	lw := float64(d.LineWidth())

	switch g := d.Geometry.(type) {
	case shapes.RoundGeometry:
		bbox := box{X0: d.Transform.Offset.X, Y0: d.Transform.Offset.Y, X1: g.Center.X, Y1: g.Center.Y}
		outer := bbox.grow(lw / 2)
		inner := bbox.grow(-lw / 2)

		c.cover(c.outline, ellipsePath(outer))
		if inner.empty() {
			c.cover(c.fill)
		} else {
			c.cover(c.fill, ellipsePath(inner))
		}
		c.composite(black, c.outline)
		c.composite(white, c.fill)

	case shapes.PolygonGeometry:
		edges := strokePaths(g.Corners, lw)
		for _, p := range g.Corners {
			edges = append(edges, discPath(p, lw))
		}

		c.cover(c.fill, polygonPath(g.Corners))
		c.cover(c.outline, edges...)
		c.composite(white, c.fill)
		c.composite(black, c.outline)
	}

	c.merge()
	c.label(counter, d.ClassID)
}

// cover rasterizes the union of paths into dst as coverage alpha.
func (c *canvas) cover(dst *image.Alpha, paths ...path) {
	c.ras.Reset(c.size, c.size)
	c.ras.DrawOp = draw.Src
	for _, p := range paths {
		p(c.ras)
	}
	c.ras.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
}

// composite paints src over the image through mask.
func (c *canvas) composite(src image.Image, mask *image.Alpha) {
	draw.DrawMask(c.img, c.img.Bounds(), src, image.Point{}, mask, image.Point{}, draw.Over)
}

// merge sets the footprint to the pixelwise max of fill and outline, the
// exact set of pixels the two composites may have changed.
func (c *canvas) merge() {
	for i, f := range c.fill.Pix {
		c.footprint.Pix[i] = max(f, c.outline.Pix[i])
	}
}

// label stamps both label layers wherever the current footprint has any
// coverage.
func (c *canvas) label(instance, class int) {
	for i, a := range c.footprint.Pix {
		if a == 0 {
			continue
		}
		c.instances.Pix[i] = instance
		c.classes.Pix[i] = class
	}
}

func (c *canvas) finalize() *Layers {
	n := c.size * c.size
	img := &ColorGrid{Width: c.size, Height: c.size, Pix: make([]float64, 3*n)}
	for i := 0; i < n; i++ {
		img.Pix[3*i] = float64(c.img.Pix[4*i]) / 255.0
		img.Pix[3*i+1] = float64(c.img.Pix[4*i+1]) / 255.0
		img.Pix[3*i+2] = float64(c.img.Pix[4*i+2]) / 255.0
	}

	instances, remap := Compact(c.instances)
	classOf := make(map[int]int, len(remap))
	for i, id := range instances.Pix {
		if id != 0 {
			classOf[id] = c.classes.Pix[i]
		}
	}

	return &Layers{
		Image:           img,
		Instances:       instances,
		Classes:         c.classes,
		Remap:           remap,
		InstanceClasses: classOf,
	}
}
