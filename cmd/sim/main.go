// Command sim runs the path-integral Monte Carlo driver and the
// worldline-evaluation post-processing tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "sim",
		Short:         "Path-integral Monte Carlo simulation of a para-hydrogen solid",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCommand())
	root.AddCommand(newEvaluateWorldlineCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
