// Package cli wires the pathtracer subcommands onto a cobra root
// command: render (the spec's positional contract) and preview (a debug
// thumbnail convenience on top of a rendered PPM).
package cli

import "github.com/spf13/cobra"

// Root builds the pathtracer command tree.
func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "pathtracer",
		Short: "Offline Monte Carlo path tracer",
	}

	root.AddCommand(newRenderCmd())
	root.AddCommand(newPreviewCmd())

	return root
}
