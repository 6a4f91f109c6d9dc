package cli

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/demonsh/shed/internal/logger"
	"github.com/spf13/cobra"
)

// newCmdPack creates the "pack" subcommand.
func newCmdPack() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "pack DIR",
		Short: "Bundle a directory into a tar.gz archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := filepath.Clean(args[0])

			dest := output
			if dest == "" {
				dest = filepath.Base(src) + ".tar.gz"
			}

			if err := packDir(src, dest); err != nil {
				return err
			}

			logger.Info().Str("src", src).Str("archive", dest).Msg("packed")
			fmt.Fprintf(cmd.OutOrStdout(), "Packed %s into %s\n", src, dest)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Archive path (default: <dir>.tar.gz)")

	return cmd
}

// newCmdUnpack creates the "unpack" subcommand.
func newCmdUnpack() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unpack ARCHIVE [DEST]",
		Short: "Extract a tar.gz archive",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			archive := args[0]
			dest := "."
			if len(args) == 2 {
				dest = args[1]
			}

			if err := unpackArchive(archive, dest); err != nil {
				return err
			}

			logger.Info().Str("archive", archive).Str("dest", dest).Msg("unpacked")
			fmt.Fprintf(cmd.OutOrStdout(), "Unpacked %s into %s\n", archive, dest)
			return nil
		},
	}

	return cmd
}

// packDir writes a gzipped tarball of dir to dest. Entries are stored
// relative to dir so archives unpack without a leading path component.
func packDir(dir, dest string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("reading source directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}

	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return err
		}

		// Only regular files and directories end up in artifact bundles.
		if !fi.Mode().IsRegular() && !fi.IsDir() {
			return nil
		}

		hdr, err := tar.FileInfoHeader(fi, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)

		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}

		if fi.IsDir() {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(tw, f)
		return err
	})
	if err != nil {
		out.Close()
		return fmt.Errorf("packing %s: %w", dir, err)
	}

	if err := tw.Close(); err != nil {
		out.Close()
		return fmt.Errorf("finalizing tarball: %w", err)
	}
	if err := gz.Close(); err != nil {
		out.Close()
		return fmt.Errorf("finalizing gzip stream: %w", err)
	}
	return out.Close()
}

// unpackArchive extracts a gzipped tarball into dest, refusing entries
// that would escape dest.
func unpackArchive(archive, dest string) error {
	f, err := os.Open(archive)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("reading gzip stream: %w", err)
	}
	defer gz.Close()

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading tarball: %w", err)
		}

		name := filepath.FromSlash(hdr.Name)
		if !filepath.IsLocal(name) {
			return fmt.Errorf("archive entry %q escapes destination", hdr.Name)
		}
		target := filepath.Join(dest, name)

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, hdr.FileInfo().Mode().Perm()); err != nil {
				return fmt.Errorf("creating directory %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("creating parent of %s: %w", target, err)
			}
			out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, hdr.FileInfo().Mode().Perm())
			if err != nil {
				return fmt.Errorf("creating file %s: %w", target, err)
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return fmt.Errorf("extracting %s: %w", hdr.Name, err)
			}
			if err := out.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", target, err)
			}
		default:
			// Other entry types are skipped, matching what pack produces.
		}
	}
}
