package renderer

import "image"

// TileSize is the work-stealing granularity: each task the pool hands out
// covers an 8x8 block of pixels (or less, clipped at the image edge).
const TileSize = 8

// Tile is a rectangular, non-overlapping region of the output image.
// Tiles never share a pixel, so workers need no synchronization writing
// into the shared pixel buffer.
type Tile struct {
	Bounds image.Rectangle
}

// BuildTiles partitions a width x height image into row-major TileSize x
// TileSize tiles, clipped against the image bounds at the right and
// bottom edges.
func BuildTiles(width, height int) []Tile {
	var tiles []Tile
	for y := 0; y < height; y += TileSize {
		for x := 0; x < width; x += TileSize {
			x1 := min(x+TileSize, width)
			y1 := min(y+TileSize, height)
			tiles = append(tiles, Tile{Bounds: image.Rect(x, y, x1, y1)})
		}
	}
	return tiles
}
