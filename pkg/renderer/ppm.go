package renderer

import (
	"bufio"
	"fmt"
	"io"
)

// WritePPM encodes fb as a binary PPM (P6): an ASCII header followed by
// row-major 8-bit RGB triples. Colors are assumed already tone-mapped
// into [0, 1]; each channel is scaled by 255 and rounded.
func WritePPM(w io.Writer, fb *Framebuffer) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", fb.Width, fb.Height); err != nil {
		return fmt.Errorf("writing PPM header: %w", err)
	}

	row := make([]byte, fb.Width*3)
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := fb.At(x, y)
			row[x*3+0] = toByte(c.X)
			row[x*3+1] = toByte(c.Y)
			row[x*3+2] = toByte(c.Z)
		}
		if _, err := bw.Write(row); err != nil {
			return fmt.Errorf("writing PPM row %d: %w", y, err)
		}
	}

	return bw.Flush()
}

func toByte(v float64) byte {
	n := int(v*255 + 0.5)
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return byte(n)
}
