package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dsnet/arc/archive"
)

func newUnpackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unpack ARCHIVE",
		Short: "extract all files from an archive into the current directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return unpackArchive(args[0])
		},
	}
}

func unpackArchive(archiveName string) error {
	info, err := os.Stat(archiveName)
	switch {
	case os.IsNotExist(err):
		return &namedError{archiveName, errNoFile}
	case err != nil:
		return &namedError{archiveName, err}
	case !info.Mode().IsRegular():
		return &namedError{archiveName, errNotRegular}
	}

	in, err := os.Open(archiveName)
	if err != nil {
		return &namedError{archiveName, errOpenFailure}
	}
	defer in.Close()

	warn := func(name string, err error) {
		log.Warnf("could not restore metadata for %s: %v", name, err)
	}
	if err := archive.Unpack(in, fsSink{}, warn); err != nil {
		return &namedError{archiveName, err}
	}
	log.Infof("unpacked %s", archiveName)
	return nil
}
