package lumen

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// TextVertex is the GPU vertex layout of the text overlay pipeline:
// pre-transformed NDC position, atlas uv, premixed color.
type TextVertex struct {
	Position [2]float32 `lumen:"layout" location:"0" format:"float2"`
	TexCoord [2]float32 `lumen:"layout" location:"1" format:"float2"`
	Color    [4]float32 `lumen:"layout" location:"2" format:"float4"`
}

// TextItem is one string to draw, positioned in window pixels with the
// origin at the top-left.
type TextItem struct {
	Text     string
	Position [2]float32
	Scale    float32
	Color    [4]float32
}

type glyphInfo struct {
	uvMin   [2]float32
	uvMax   [2]float32
	size    [2]float32
	offset  [2]float32
	advance float32
}

const textAtlasSize = 512

// TextOverlay rasterizes a font into an alpha atlas once and turns text
// items into textured quads for the overlay pipeline.
type TextOverlay struct {
	atlas  *image.Alpha
	glyphs map[rune]glyphInfo
	face   font.Face
}

func NewTextOverlay(fontPath string, fontSize float64) (*TextOverlay, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}

	f, err := opentype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face: %w", err)
	}

	atlas := image.NewAlpha(image.Rect(0, 0, textAtlasSize, textAtlasSize))
	glyphs := make(map[rune]glyphInfo)

	x, y := 2, 2
	rowHeight := 0

	// Printable ASCII is all the stats overlay needs.
	for r := rune(32); r < 127; r++ {
		bounds, mask, _, adv, ok := face.Glyph(fixed.Point26_6{}, r)
		if !ok {
			continue
		}

		w := mask.Bounds().Dx()
		h := mask.Bounds().Dy()

		if x+w >= textAtlasSize {
			x = 2
			y += rowHeight + 4
			rowHeight = 0
		}
		if y+h >= textAtlasSize {
			break
		}

		draw.Draw(atlas, image.Rect(x, y, x+w, y+h), mask, mask.Bounds().Min, draw.Src)

		glyphs[r] = glyphInfo{
			uvMin:   [2]float32{float32(x) / textAtlasSize, float32(y) / textAtlasSize},
			uvMax:   [2]float32{float32(x+w) / textAtlasSize, float32(y+h) / textAtlasSize},
			size:    [2]float32{float32(w), float32(h)},
			offset:  [2]float32{float32(bounds.Min.X), float32(bounds.Min.Y)},
			advance: float32(adv) / 64.0, // fixed 26.6 to float
		}

		x += w + 4
		if h > rowHeight {
			rowHeight = h
		}
	}

	return &TextOverlay{
		atlas:  atlas,
		glyphs: glyphs,
		face:   face,
	}, nil
}

// BuildVertices lays out the items as two triangles per glyph in NDC for
// the given window size.
func (t *TextOverlay) BuildVertices(items []TextItem, screenW, screenH int) []TextVertex {
	vertices := make([]TextVertex, 0, len(items)*6)

	sw := float32(screenW)
	sh := float32(screenH)
	metrics := t.face.Metrics()
	ascent := float32(metrics.Ascent.Ceil())
	lineHeight := float32(metrics.Height.Ceil())

	for _, item := range items {
		startX := item.Position[0]
		posX := startX
		posY := item.Position[1] + ascent*item.Scale

		for _, r := range item.Text {
			if r == '\n' {
				posX = startX
				posY += lineHeight * item.Scale
				continue
			}

			g, ok := t.glyphs[r]
			if !ok {
				continue
			}

			x0 := (posX+g.offset[0]*item.Scale)/sw*2 - 1
			y0 := 1 - (posY+g.offset[1]*item.Scale)/sh*2
			x1 := (posX+(g.offset[0]+g.size[0])*item.Scale)/sw*2 - 1
			y1 := 1 - (posY+(g.offset[1]+g.size[1])*item.Scale)/sh*2

			vertices = append(vertices,
				TextVertex{Position: [2]float32{x0, y0}, TexCoord: [2]float32{g.uvMin[0], g.uvMin[1]}, Color: item.Color},
				TextVertex{Position: [2]float32{x1, y0}, TexCoord: [2]float32{g.uvMax[0], g.uvMin[1]}, Color: item.Color},
				TextVertex{Position: [2]float32{x0, y1}, TexCoord: [2]float32{g.uvMin[0], g.uvMax[1]}, Color: item.Color},

				TextVertex{Position: [2]float32{x1, y0}, TexCoord: [2]float32{g.uvMax[0], g.uvMin[1]}, Color: item.Color},
				TextVertex{Position: [2]float32{x1, y1}, TexCoord: [2]float32{g.uvMax[0], g.uvMax[1]}, Color: item.Color},
				TextVertex{Position: [2]float32{x0, y1}, TexCoord: [2]float32{g.uvMin[0], g.uvMax[1]}, Color: item.Color},
			)

			posX += g.advance * item.Scale
		}
	}

	return vertices
}

// MeasureText returns the pixel width and height the text would occupy
// at the given scale.
func (t *TextOverlay) MeasureText(text string, scale float32) (float32, float32) {
	metrics := t.face.Metrics()
	lineHeight := float32(metrics.Height.Ceil())

	maxW := float32(0)
	currentW := float32(0)
	lines := 1

	for _, r := range text {
		if r == '\n' {
			if currentW > maxW {
				maxW = currentW
			}
			currentW = 0
			lines++
			continue
		}
		g, ok := t.glyphs[r]
		if !ok {
			continue
		}
		currentW += g.advance * scale
	}
	if currentW > maxW {
		maxW = currentW
	}

	return maxW, lineHeight * scale * float32(lines)
}
