package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
)

// Page geometry in millimetres. The raster width maps to the page width and
// each page shows the next PageHeightMM of it.
const (
	PageWidthMM  = 210.0
	PageHeightMM = 295.0
)

// Page is one slice of the tall raster.
type Page struct {
	Index    int
	OffsetMM float64
}

// Paginate splits an image of the given pixel size into pages starting at
// 0, 295, 590 ... mm while content remains below the previous page.
func Paginate(imgWidthPx, imgHeightPx int) []Page {
	if imgWidthPx <= 0 || imgHeightPx <= 0 {
		return nil
	}
	heightMM := float64(imgHeightPx) * PageWidthMM / float64(imgWidthPx)
	pages := []Page{{Index: 0, OffsetMM: 0}}
	remaining := heightMM - PageHeightMM
	for remaining > 1e-6 {
		offset := float64(len(pages)) * PageHeightMM
		pages = append(pages, Page{Index: len(pages), OffsetMM: offset})
		remaining -= PageHeightMM
	}
	return pages
}

// SliceImage decodes a PNG raster and returns one PNG per page. Every page
// image has the full page height; the last one is padded with white.
func SliceImage(raster []byte) ([][]byte, error) {
	img, err := png.Decode(bytes.NewReader(raster))
	if err != nil {
		return nil, fmt.Errorf("decode raster: %w", err)
	}
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pages := Paginate(width, height)
	if len(pages) == 0 {
		return nil, errors.New("empty raster")
	}
	pxPerMM := float64(width) / PageWidthMM
	pageHeightPx := int(math.Round(PageHeightMM * pxPerMM))

	out := make([][]byte, 0, len(pages))
	for _, p := range pages {
		top := bounds.Min.Y + int(math.Round(p.OffsetMM*pxPerMM))
		dst := image.NewRGBA(image.Rect(0, 0, width, pageHeightPx))
		draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
		draw.Draw(dst, dst.Bounds(), img, image.Point{X: bounds.Min.X, Y: top}, draw.Src)

		var buf bytes.Buffer
		if err := png.Encode(&buf, dst); err != nil {
			return nil, fmt.Errorf("encode page %d: %w", p.Index+1, err)
		}
		out = append(out, buf.Bytes())
	}
	return out, nil
}
