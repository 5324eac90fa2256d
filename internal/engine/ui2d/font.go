package ui2d

import (
	"image"
	"image/draw"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Printable ASCII is baked into the atlas; anything else renders as fallbackGlyph.
// The cell after the last glyph is solid white for untextured quads.
const (
	firstGlyph    = ' '
	lastGlyph     = '~'
	fallbackGlyph = '?'
	atlasColumns  = 16
)

// Font is a fixed-width bitmap font baked into a texture atlas.
type Font struct {
	texture uint32
	cellW   int
	cellH   int
	atlasW  int
	atlasH  int
}

// NewFont bakes the 7x13 basic face into an RGBA atlas and uploads it.
func NewFont() (*Font, error) {
	atlas, cellW, cellH := bakeAtlas(basicfont.Face7x13)

	f := &Font{
		cellW:  cellW,
		cellH:  cellH,
		atlasW: atlas.Bounds().Dx(),
		atlasH: atlas.Bounds().Dy(),
	}

	gl.GenTextures(1, &f.texture)
	gl.BindTexture(gl.TEXTURE_2D, f.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(f.atlasW), int32(f.atlasH), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(atlas.Pix))
	// Nearest keeps glyph edges crisp when scaled
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return f, nil
}

// bakeAtlas draws every printable glyph into a grid of fixed-size cells.
func bakeAtlas(face *basicfont.Face) (*image.RGBA, int, int) {
	cellW := face.Advance
	cellH := face.Height
	count := int(lastGlyph-firstGlyph) + 2
	rows := (count + atlasColumns - 1) / atlasColumns

	atlas := image.NewRGBA(image.Rect(0, 0, atlasColumns*cellW, rows*cellH))
	draw.Draw(atlas, atlas.Bounds(), image.Transparent, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  atlas,
		Src:  image.White,
		Face: face,
	}
	for r := firstGlyph; r <= lastGlyph; r++ {
		x, y := cellOrigin(int(r-firstGlyph), cellW, cellH)
		d.Dot = fixed.P(x, y+face.Ascent)
		d.DrawString(string(r))
	}

	wx, wy := cellOrigin(whiteCell, cellW, cellH)
	draw.Draw(atlas, image.Rect(wx, wy, wx+cellW, wy+cellH), image.White, image.Point{}, draw.Src)
	return atlas, cellW, cellH
}

// whiteCell is the atlas slot right after the last glyph.
const whiteCell = int(lastGlyph-firstGlyph) + 1

func cellOrigin(idx, cellW, cellH int) (int, int) {
	return (idx % atlasColumns) * cellW, (idx / atlasColumns) * cellH
}

// WhiteUV returns a texture coordinate in the middle of the solid white cell.
func (f *Font) WhiteUV() (float32, float32) {
	x, y := cellOrigin(whiteCell, f.cellW, f.cellH)
	return (float32(x) + float32(f.cellW)/2) / float32(f.atlasW),
		(float32(y) + float32(f.cellH)/2) / float32(f.atlasH)
}

// TextureID returns the atlas texture.
func (f *Font) TextureID() uint32 {
	return f.texture
}

// GlyphSize returns the cell size in pixels.
func (f *Font) GlyphSize() (int, int) {
	return f.cellW, f.cellH
}

// GetGlyphUV returns the atlas texture coordinates of a glyph.
func (f *Font) GetGlyphUV(r rune) (u0, v0, u1, v1 float32) {
	if r < firstGlyph || r > lastGlyph {
		r = fallbackGlyph
	}
	x, y := cellOrigin(int(r-firstGlyph), f.cellW, f.cellH)

	u0 = float32(x) / float32(f.atlasW)
	v0 = float32(y) / float32(f.atlasH)
	u1 = float32(x+f.cellW) / float32(f.atlasW)
	v1 = float32(y+f.cellH) / float32(f.atlasH)
	return u0, v0, u1, v1
}

// MeasureText returns the width of the longest line and the total height.
func (f *Font) MeasureText(text string, scale float32) (float32, float32) {
	if text == "" {
		return 0, 0
	}
	lines := strings.Split(text, "\n")
	widest := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > widest {
			widest = n
		}
	}
	return float32(widest*f.cellW) * scale, float32(len(lines)*f.cellH) * scale
}

// Close releases the atlas texture.
func (f *Font) Close() {
	if f.texture != 0 {
		gl.DeleteTextures(1, &f.texture)
		f.texture = 0
	}
}
