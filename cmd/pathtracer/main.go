// Command pathtracer renders a scene file to a PPM image, and can
// downsample a rendered PPM to a PNG thumbnail for quick inspection.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lumenforge/pathtracer/cmd/pathtracer/cli"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := cli.Root().Execute(); err != nil {
		os.Exit(1)
	}
}
