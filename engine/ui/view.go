package ui

import (
	"github.com/hubastard/hazel/engine/colors"
)

// Align places children inside the free space of a view along one axis.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

func (a Align) offset(free float32) float32 {
	switch a {
	case AlignCenter:
		return free / 2
	case AlignEnd:
		return free
	}
	return 0
}

// LayoutDirection is the main axis of a view. Its value is the axis index
// used with Base positions and sizes.
type LayoutDirection int

const (
	LayoutHorizontal LayoutDirection = iota
	LayoutVertical
)

// UIView stacks its children along the main axis, gap pixels apart.
// Children that expand along the main axis split the space the others leave.
type UIView struct {
	Common[*UIView]
	gap        float32
	mainAlign  Align
	crossAlign Align
	flow       LayoutDirection
}

func View(children ...UIElement) *UIView {
	v := &UIView{gap: 10}
	v.Common = NewCommon(v)
	return v.Children(children...)
}

func (v *UIView) BgColor(color colors.Color) *UIView              { v.base.color = color; return v }
func (v *UIView) FlowDirection(direction LayoutDirection) *UIView { v.flow = direction; return v }
func (v *UIView) Gap(g float32) *UIView                           { v.gap = g; return v }
func (v *UIView) AlignMain(a Align) *UIView                       { v.mainAlign = a; return v }
func (v *UIView) AlignCross(a Align) *UIView                      { v.crossAlign = a; return v }

func (v *UIView) Layout(ctx *Context, c Constraints) LayoutResult {
	main, cross := int(v.flow), 1-int(v.flow)
	pad := v.base.padding
	inset := v.base.inset()

	var inner Constraints
	for axis := range 2 {
		inner.Max[axis] = maxf(0, bound(c.Max[axis])-inset[axis])
	}

	kids := v.base.children
	sizes := make([][2]float32, len(kids))
	var content [2]float32 // main: sum of children and gaps, cross: largest child
	expanding := 0
	for i, k := range kids {
		sizes[i] = k.Layout(ctx, inner).Size
		if k.Node().mode(main) == SizeModeExpand {
			// sized from the leftover space below
			sizes[i][main] = 0
			expanding++
		}
		content[main] += sizes[i][main]
		content[cross] = maxf(content[cross], sizes[i][cross])
	}
	if len(kids) > 1 {
		content[main] += v.gap * float32(len(kids)-1)
	}

	var room [2]float32
	for axis := range 2 {
		v.base.size[axis] = v.base.resolve(axis, content[axis]+inset[axis], c)
		room[axis] = maxf(0, v.base.size[axis]-inset[axis])
	}

	free := maxf(0, room[main]-content[main])
	if expanding > 0 {
		share := free / float32(expanding)
		for i, k := range kids {
			if k.Node().mode(main) == SizeModeExpand {
				sizes[i][main] += share
			}
		}
		free = 0
	}

	cursor := v.base.position[main] + pad[main] + v.mainAlign.offset(free)
	for i, k := range kids {
		size := sizes[i]
		if k.Node().mode(cross) == SizeModeExpand {
			size[cross] = room[cross]
		}
		size[cross] = clamp(size[cross], 0, room[cross])

		var at [2]float32
		at[main] = cursor
		at[cross] = v.base.position[cross] + pad[cross] + v.crossAlign.offset(room[cross]-size[cross])
		moveTo(k, at[0], at[1])
		k.Node().SetSize(size[0], size[1])
		cursor += size[main] + v.gap
	}
	return LayoutResult{Size: v.base.size}
}

func (v *UIView) Draw(ctx *Context) {
	v.base.fill(ctx, v.base.color)
	for _, c := range v.base.children {
		c.Draw(ctx)
	}
}
