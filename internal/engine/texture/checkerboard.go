// Package texture builds and samples the procedural textures used to shade
// surfaces.
package texture

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Default checkerboard layout: 16x16 cells of 24 pixels each.
const (
	DefaultGridNum  = 16
	DefaultGridSize = 24
)

// Checkerboard returns a single-channel image of gridNum x gridNum cells,
// each gridSize pixels wide. Cell (row, col) is white when row+col is odd.
// Non-positive arguments fall back to the defaults.
func Checkerboard(gridNum, gridSize int) *image.Gray {
	if gridNum <= 0 {
		gridNum = DefaultGridNum
	}
	if gridSize <= 0 {
		gridSize = DefaultGridSize
	}

	cells := image.NewGray(image.Rect(0, 0, gridNum, gridNum))
	for row := range gridNum {
		for col := range gridNum {
			if (row+col)%2 == 1 {
				cells.SetGray(col, row, color.Gray{Y: 255})
			}
		}
	}

	if gridSize == 1 {
		return cells
	}

	side := gridNum * gridSize
	img := image.NewGray(image.Rect(0, 0, side, side))
	draw.NearestNeighbor.Scale(img, img.Bounds(), cells, cells.Bounds(), draw.Src, nil)
	return img
}
