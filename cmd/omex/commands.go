package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/combinekit/omex"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <archive>",
		Short: "List the manifest entries of an archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := omex.Open(args[0])
			if err != nil {
				return err
			}
			for _, c := range archive.Entries() {
				marker := " "
				if c.Master {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-40s %s\n", marker, c.Location, c.Format)
			}
			return nil
		},
	}
}

func newExtractCmd() *cobra.Command {
	var (
		workers   int
		overwrite bool
	)
	cmd := &cobra.Command{
		Use:   "extract <archive> [dest]",
		Short: "Extract all entries to a directory",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			dest := "."
			if len(args) == 2 {
				dest = args[1]
			}
			archive, err := omex.Open(args[0])
			if err != nil {
				return err
			}
			err = archive.ExtractTo(dest,
				omex.ExtractWithWorkers(workers),
				omex.ExtractWithOverwrite(overwrite),
			)
			if err != nil {
				return err
			}
			logger.Info("extracted", "archive", args[0], "entries", len(archive.Entries()), "dest", dest)
			return nil
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel extraction workers (0 = one per CPU)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "overwrite existing files")
	return cmd
}

func newAddCmd() *cobra.Command {
	var (
		location string
		format   string
		master   bool
	)
	cmd := &cobra.Command{
		Use:   "add <archive> <file>",
		Short: "Add or update a file in an archive",
		Long: "Add or update a file in an archive. The archive is created if it\n" +
			"does not exist. The format flag accepts a known shorthand (sbml,\n" +
			"sedml, sbgn) or any format URI or MIME type.",
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			archivePath, filePath := args[0], args[1]
			if location == "" {
				location = "./" + filepath.Base(filePath)
			}
			if f, err := omex.ParseFormat(format); err == nil {
				format = f.URI()
			}

			archive, err := openOrCreate(archivePath)
			if err != nil {
				return err
			}
			if err := archive.AddFile(filePath, location, format, master); err != nil {
				return err
			}
			if err := archive.Save(archivePath); err != nil {
				return err
			}
			logger.Info("added", "location", location, "format", format, "master", master)
			return nil
		},
	}
	cmd.Flags().StringVar(&location, "location", "", "location within the archive (default ./<basename>)")
	cmd.Flags().StringVar(&format, "format", "application/octet-stream", "format URI, MIME type, or shorthand")
	cmd.Flags().BoolVar(&master, "master", false, "mark the entry as the archive's master file")
	return cmd
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <archive> <location>",
		Short: "Remove an entry from an archive",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			archive, err := omex.Open(args[0])
			if err != nil {
				return err
			}
			archive.RemoveEntry(args[1])
			if err := archive.SaveInPlace(); err != nil {
				return err
			}
			logger.Info("removed", "location", args[1])
			return nil
		},
	}
}

func newMasterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "master <archive>",
		Short: "Print the archive's master file to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := omex.Open(args[0])
			if err != nil {
				return err
			}
			entry, err := archive.Master()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(entry.Bytes())
			return err
		},
	}
}

// openOrCreate opens an existing archive or starts an empty one when the
// path does not exist yet.
func openOrCreate(path string) (*omex.Archive, error) {
	archive, err := omex.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return omex.New(), nil
	}
	if err != nil {
		return nil, err
	}
	return archive, nil
}
