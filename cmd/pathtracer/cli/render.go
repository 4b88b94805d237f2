package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lumenforge/pathtracer/pkg/loaders"
	"github.com/lumenforge/pathtracer/pkg/renderer"
	"github.com/lumenforge/pathtracer/pkg/scene"
)

func newRenderCmd() *cobra.Command {
	var depth int

	cmd := &cobra.Command{
		Use:   "render scene-file width height samples output-file",
		Short: "Render a scene to a PPM image",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			sceneFile, widthStr, heightStr, samplesStr, outputFile := args[0], args[1], args[2], args[3], args[4]

			width, err := strconv.Atoi(widthStr)
			if err != nil {
				return fmt.Errorf("invalid width %q: %w", widthStr, err)
			}
			height, err := strconv.Atoi(heightStr)
			if err != nil {
				return fmt.Errorf("invalid height %q: %w", heightStr, err)
			}
			samples, err := strconv.Atoi(samplesStr)
			if err != nil {
				return fmt.Errorf("invalid samples %q: %w", samplesStr, err)
			}

			scn, err := loadScene(sceneFile, width, height, samples, depth)
			if err != nil {
				log.Error().Err(err).Str("scene", sceneFile).Msg("failed to load scene")
				return err
			}

			out, err := os.Create(outputFile)
			if err != nil {
				log.Error().Err(err).Str("output", outputFile).Msg("failed to open output file")
				return err
			}
			defer out.Close()

			log.Info().Int("width", width).Int("height", height).Int("samples", samples).Msg("rendering")
			start := time.Now()
			fb := renderer.Render(scn)
			log.Info().Dur("elapsed", time.Since(start)).Msg("render complete")

			if err := renderer.WritePPM(out, fb); err != nil {
				log.Error().Err(err).Msg("failed to write PPM output")
				return err
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&depth, "depth", 0, "override the scene's ray_depth (0 keeps the scene's own value, or 8 if the scene has none)")

	return cmd
}

func loadScene(path string, width, height, samples, depthOverride int) (*scene.Scene, error) {
	var scn *scene.Scene
	var err error

	if strings.HasSuffix(strings.ToLower(path), ".gltf") || strings.HasSuffix(strings.ToLower(path), ".glb") {
		scn, err = loaders.LoadGLTF(path, width, height, 8, samples)
	} else {
		scn, err = loaders.LoadTextScene(path)
	}
	if err != nil {
		return nil, err
	}

	if width > 0 {
		scn.Width = width
	}
	if height > 0 {
		scn.Height = height
	}
	scn.Samples = samples
	if depthOverride > 0 {
		scn.RayDepth = depthOverride
	}

	return scn, nil
}
