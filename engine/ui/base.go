// Package ui is a retained-mode widget tree driven by a Program: widgets
// publish messages, the Program updates its state and rebuilds its view.
package ui

import (
	"math"

	"github.com/hubastard/hazel/engine/colors"
	"github.com/hubastard/hazel/engine/gfx/renderer2d"
	"github.com/hubastard/hazel/engine/text"
)

// SizeMode decides how a widget sizes itself along one axis.
type SizeMode int

const (
	SizeModeFit SizeMode = iota
	SizeModeFixed
	SizeModeExpand
)

// Constraints bound a widget's size. A zero Max is unbounded.
type Constraints struct {
	Min [2]float32
	Max [2]float32
}

type LayoutResult struct {
	Size [2]float32
}

// Context carries what layout and drawing need. Renderer is only used by
// Draw and must be inside a scene with a pixel-space projection.
type Context struct {
	Viewport    [4]float32 // x, y, w, h in pixels
	DefaultFont *text.Font
	Renderer    *renderer2d.Renderer2D
}

type UIElement interface {
	Node() *Base
	Layout(ctx *Context, constraints Constraints) LayoutResult
	Draw(ctx *Context)
}

// EventHandler is implemented by widgets reacting to pointer events.
type EventHandler interface {
	OnEvent(ev Event, cursor [2]float32, shell *Shell)
}

// Interactor is implemented by widgets that change the cursor icon.
type Interactor interface {
	Interaction(cursor [2]float32) (CursorIcon, bool)
}

// Base is the laid out box every widget has. Axis 0 is x, axis 1 is y.
type Base struct {
	parent   UIElement
	children []UIElement
	position [2]float32
	size     [2]float32
	color    colors.Color
	modes    [2]SizeMode
	fixed    [2]float32
	padding  [4]float32 // left, top, right, bottom
}

func (b *Base) Parent() UIElement     { return b.parent }
func (b *Base) Children() []UIElement { return b.children }
func (b *Base) Pos() (x, y float32)   { return b.position[0], b.position[1] }
func (b *Base) Size() (w, h float32)  { return b.size[0], b.size[1] }
func (b *Base) SetPos(x, y float32)   { b.position = [2]float32{x, y} }
func (b *Base) SetSize(w, h float32)  { b.size = [2]float32{w, h} }
func (b *Base) Padding() [4]float32   { return b.padding }

// Contains reports whether the point lies inside the laid out box.
func (b *Base) Contains(x, y float32) bool {
	return x >= b.position[0] && x <= b.position[0]+b.size[0] &&
		y >= b.position[1] && y <= b.position[1]+b.size[1]
}

func (b *Base) mode(axis int) SizeMode { return b.modes[axis] }

// inset is the horizontal and vertical padding.
func (b *Base) inset() [2]float32 {
	return [2]float32{b.padding[0] + b.padding[2], b.padding[1] + b.padding[3]}
}

func (b *Base) innerPosition() (float32, float32) {
	return b.position[0] + b.padding[0], b.position[1] + b.padding[1]
}

// resolve sizes b along axis from the size its content asks for.
func (b *Base) resolve(axis int, content float32, c Constraints) float32 {
	lo, hi := c.Min[axis], bound(c.Max[axis])
	switch b.modes[axis] {
	case SizeModeExpand:
		return maxf(hi, lo)
	case SizeModeFixed:
		if b.fixed[axis] > 0 {
			content = b.fixed[axis]
		}
	}
	return clamp(content, lo, hi)
}

func (b *Base) fill(ctx *Context, c colors.Color) {
	if c[3] <= 0 {
		return
	}
	ctx.Renderer.DrawQuad(b.position[0]+b.size[0]/2, b.position[1]+b.size[1]/2, b.size[0], b.size[1], c, 0)
}

// moveTo places el at (x, y) and shifts its laid out descendants with it.
func moveTo(el UIElement, x, y float32) {
	b := el.Node()
	shift(el, x-b.position[0], y-b.position[1])
}

func shift(el UIElement, dx, dy float32) {
	b := el.Node()
	b.position[0] += dx
	b.position[1] += dy
	for _, c := range b.children {
		shift(c, dx, dy)
	}
}

func bound(limit float32) float32 {
	if limit == 0 {
		return math.MaxFloat32
	}
	return limit
}

func clamp(v, lo, hi float32) float32 {
	return min(max(v, lo), hi)
}

func maxf(a, b float32) float32 { return max(a, b) }

// Common holds the Base of widget T and the builder methods every widget
// shares. Each returns the widget so calls chain.
type Common[T any] struct {
	owner T
	base  Base
}

func NewCommon[T any](owner T) Common[T] { return Common[T]{owner: owner} }

func (c *Common[T]) Node() *Base { return &c.base }

func (c *Common[T]) WidthFixed(width float32) T   { return c.sized(0, SizeModeFixed, width) }
func (c *Common[T]) HeightFixed(height float32) T { return c.sized(1, SizeModeFixed, height) }
func (c *Common[T]) WidthExpand() T               { return c.sized(0, SizeModeExpand, 0) }
func (c *Common[T]) HeightExpand() T              { return c.sized(1, SizeModeExpand, 0) }

func (c *Common[T]) sized(axis int, mode SizeMode, fixed float32) T {
	c.base.modes[axis] = mode
	c.base.fixed[axis] = fixed
	return c.owner
}

func (c *Common[T]) Padding(all float32) T {
	c.base.padding = [4]float32{all, all, all, all}
	return c.owner
}

func (c *Common[T]) Children(kids ...UIElement) T {
	c.base.children = append(c.base.children, kids...)
	for _, k := range kids {
		k.Node().parent = any(c.owner).(UIElement)
	}
	return c.owner
}
