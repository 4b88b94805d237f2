package cli

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/image/draw"
)

func newPreviewCmd() *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "preview ppm-file thumb-file",
		Short: "Downsample a rendered PPM into a PNG thumbnail for quick inspection",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readPPM(args[0])
			if err != nil {
				return fmt.Errorf("reading PPM %q: %w", args[0], err)
			}

			if width == 0 {
				width = src.Bounds().Dx() / 4
			}
			if height == 0 {
				height = src.Bounds().Dy() / 4
			}
			dst := image.NewRGBA(image.Rect(0, 0, width, height))
			draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

			out, err := os.Create(args[1])
			if err != nil {
				return fmt.Errorf("creating thumbnail %q: %w", args[1], err)
			}
			defer out.Close()

			return png.Encode(out, dst)
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "thumbnail width (default: 1/4 of source)")
	cmd.Flags().IntVar(&height, "height", 0, "thumbnail height (default: 1/4 of source)")

	return cmd
}

// readPPM decodes a binary P6 PPM into an image.Image.
func readPPM(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)

	var magic string
	var width, height, maxVal int
	if _, err := fmt.Fscan(r, &magic); err != nil {
		return nil, err
	}
	if magic != "P6" {
		return nil, fmt.Errorf("unsupported PPM magic %q", magic)
	}
	if _, err := fmt.Fscan(r, &width, &height, &maxVal); err != nil {
		return nil, err
	}
	if _, err := r.ReadByte(); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := make([]byte, width*3)
	for y := 0; y < height; y++ {
		if _, err := readFull(r, row); err != nil {
			return nil, err
		}
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: row[x*3], G: row[x*3+1], B: row[x*3+2], A: 255})
		}
	}

	return img, nil
}

func readFull(r *bufio.Reader, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
