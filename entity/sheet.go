package entity

import (
	"errors"
	"fmt"
	"image"

	"github.com/automoto/bludbourne/assets"
)

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// splitSheet cuts sheet into a rows x cols grid of frameW x frameH cells,
// starting at the sheet's top-left corner. Cells that fall outside the sheet
// are left nil and reported in the returned error; the grid is still usable.
func splitSheet(sheet image.Image, frameW, frameH, rows, cols int) ([][]image.Image, error) {
	si, ok := sheet.(subImager)
	if !ok {
		return nil, fmt.Errorf("%w: %T cannot be split into frames", assets.ErrUnsupported, sheet)
	}

	bounds := sheet.Bounds()
	grid := make([][]image.Image, rows)
	var missing []error
	for row := 0; row < rows; row++ {
		grid[row] = make([]image.Image, cols)
		for col := 0; col < cols; col++ {
			origin := bounds.Min.Add(image.Pt(col*frameW, row*frameH))
			cell := image.Rectangle{Min: origin, Max: origin.Add(image.Pt(frameW, frameH))}
			if !cell.In(bounds) {
				missing = append(missing, fmt.Errorf("%w at %d,%d", assets.ErrMissingFrame, row, col))
				continue
			}
			grid[row][col] = si.SubImage(cell)
		}
	}
	return grid, errors.Join(missing...)
}
