package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dsnet/arc/archive"
)

var errBadUsage error = Error("pack requires at least one input file and an archive name")

func newPackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pack FILE... ARCHIVE",
		Short: "bundle one or more files into an archive",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errBadUsage
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, archiveName := args[:len(args)-1], args[len(args)-1]
			return packArchive(inputs, archiveName)
		},
	}
}

func packArchive(inputs []string, archiveName string) error {
	sources, err := gatherSources(inputs)
	if err != nil {
		return err
	}

	out, err := os.OpenFile(archiveName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o666)
	if err != nil {
		return &namedError{archiveName, errOpenFailure}
	}
	defer out.Close()

	for _, s := range sources {
		log.Debugf("packing %s (%d bytes)", s.Name, s.Meta.Size)
	}
	if err := archive.Pack(&taggedFile{archiveName, out}, sources); err != nil {
		return err
	}
	log.Infof("packed %d file(s) into %s", len(sources), archiveName)
	return nil
}
