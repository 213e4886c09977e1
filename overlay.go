package rl

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/xyproto/burnfont"
)

const (
	overlayLineHeight = 16
	overlayGlyphWidth = 8
	overlayMargin     = 8
)

// DrawDebug draws the debug view onto img, starting at (x, y). Glyphs are
// placed on a fixed grid of overlayGlyphWidth. burnfont has no glyph for ':',
// so colons are drawn as two dots; spaces stay blank.
func DrawDebug(img *image.RGBA, x, y int, d DebugInfo, c color.Color) {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	for i, line := range d.Lines() {
		ly := y + i*overlayLineHeight
		cx := x
		for _, r := range line {
			switch r {
			case ' ':
			case ':':
				drawColon(img, cx, ly, nc)
			default:
				burnfont.DrawString(img, cx, ly, string(r), nc)
			}
			cx += overlayGlyphWidth
		}
	}
}

// drawColon draws two 2x2 dots in the glyph cell at (x, y).
func drawColon(img *image.RGBA, x, y int, c color.NRGBA) {
	for _, dy := range []int{2, 6} {
		for py := 0; py < 2; py++ {
			for px := 0; px < 2; px++ {
				img.Set(x+3+px, y+dy+py, c)
			}
		}
	}
}

// RenderDebug returns a new image, filled with bg, holding the debug view.
func RenderDebug(d DebugInfo, fg, bg color.Color) *image.RGBA {
	lines := d.Lines()
	width := 0
	for _, line := range lines {
		width = max(width, len([]rune(line)))
	}
	r := image.Rect(0, 0, width*overlayGlyphWidth+2*overlayMargin, len(lines)*overlayLineHeight+2*overlayMargin)
	img := image.NewRGBA(r)
	draw.Draw(img, r, image.NewUniform(bg), image.Point{}, draw.Src)
	DrawDebug(img, overlayMargin, overlayMargin, d, fg)
	return img
}
