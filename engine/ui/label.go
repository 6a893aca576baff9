package ui

import (
	"strings"

	"github.com/hubastard/hazel/engine/colors"
	"github.com/hubastard/hazel/engine/text"
)

// UILabel draws text in the context's default font. Explicit newlines
// always break; with MaxWidth set, lines also wrap between words.
type UILabel struct {
	Common[*UILabel]
	text     string
	font     *text.Font
	maxWidth float32
	lines    []string
}

func Label(str string) *UILabel {
	l := &UILabel{text: str}
	l.Common = NewCommon(l)
	l.base.color = colors.White
	return l
}

func (l *UILabel) Color(c colors.Color) *UILabel { l.base.color = c; return l }

// MaxWidth wraps the label to at most width pixels, padding included.
func (l *UILabel) MaxWidth(width float32) *UILabel { l.maxWidth = width; return l }

func (l *UILabel) Layout(ctx *Context, c Constraints) LayoutResult {
	if l.font == nil {
		l.font = ctx.DefaultFont
	}
	l.lines = l.lines[:0]
	if l.font == nil {
		return LayoutResult{}
	}
	inset := l.base.inset()

	var limit float32
	if l.maxWidth > 0 {
		limit = l.maxWidth
		if c.Max[0] > 0 {
			limit = min(limit, c.Max[0])
		}
		limit = maxf(0, limit-inset[0])
	}

	var content [2]float32
	if l.text != "" {
		for _, para := range strings.Split(l.text, "\n") {
			l.lines = wrapWords(l.font, para, limit, l.lines)
		}
		for _, line := range l.lines {
			w, _ := text.MeasureText(l.font, line)
			content[0] = maxf(content[0], w)
		}
		content[1] = text.LineHeight(l.font) * float32(len(l.lines))
	}

	for axis := range 2 {
		l.base.size[axis] = l.base.resolve(axis, content[axis]+inset[axis], c)
	}
	return LayoutResult{Size: l.base.size}
}

func (l *UILabel) Draw(ctx *Context) {
	if l.font == nil || l.base.color[3] <= 0 {
		return
	}
	x, y := l.base.innerPosition()
	lh := text.LineHeight(l.font)
	for i, line := range l.lines {
		text.DrawText(ctx.Renderer, l.font, x, y+lh*float32(i), line, l.base.color)
	}
}

// wrapWords appends s to lines, broken between words so no line is wider
// than limit unless a single word is. A limit of zero keeps s whole.
func wrapWords(font *text.Font, s string, limit float32, lines []string) []string {
	words := strings.Fields(s)
	if limit <= 0 || len(words) < 2 {
		return append(lines, s)
	}
	space, _ := text.MeasureText(font, " ")
	line := words[0]
	width, _ := text.MeasureText(font, line)
	for _, word := range words[1:] {
		ww, _ := text.MeasureText(font, word)
		if width+space+ww > limit {
			lines = append(lines, line)
			line, width = word, ww
			continue
		}
		line += " " + word
		width += space + ww
	}
	return append(lines, line)
}
