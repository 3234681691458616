// Command arc packs and unpacks arc archives: an 8-byte signature, a file
// count, and a sequence of per-file metadata + block-framed LZW streams.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	log     = logrus.New()
)

var errNoCommand error = Error("no command specified")

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := &cobra.Command{
		Use:           "arc",
		Short:         "arc packs and unpacks arc archives",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return errNoCommand
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	}
	rootCmd.AddCommand(newPackCmd(), newUnpackCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		return exitCodeFor(err)
	}
	return exitOK
}
