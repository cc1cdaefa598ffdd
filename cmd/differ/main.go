// Command differ is the CLI front-end for the delta engine: it computes
// a delta between two files, writes it in the external text format, and
// verifies that applying the delta reproduces the new file exactly.
package main

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/trezbouchez/differ/delta"
	"github.com/trezbouchez/differ/digest"
	"github.com/trezbouchez/differ/driver"
)

var (
	windowSize   int
	minChunkSize int
	maxChunkSize int
	hashAlgo     string
	verbose      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "differ <old_file> <new_file> <patched_file> <delta_file>",
		Short: "Compute and verify a content-defined-chunking delta between two files",
		Args:  cobra.ExactArgs(4),
		RunE:  run,
	}

	rootCmd.Flags().IntVar(&windowSize, "window", 64, "rolling hash window size in bytes")
	rootCmd.Flags().IntVar(&minChunkSize, "min-chunk", 1<<12, "minimum chunk size in bytes")
	rootCmd.Flags().IntVar(&maxChunkSize, "max-chunk", 1<<16, "maximum chunk size in bytes")
	rootCmd.Flags().StringVar(&hashAlgo, "hash", "sha256", "strong digest algorithm: sha256, sha1, or blake3")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log delta segment and byte statistics")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func run(cmd *cobra.Command, args []string) error {
	oldPath, newPath, patchedPath, deltaPath := args[0], args[1], args[2], args[3]

	oldBytes, err := os.ReadFile(oldPath)
	if err != nil {
		return fmt.Errorf("reading old file: %w", err)
	}
	newBytes, err := os.ReadFile(newPath)
	if err != nil {
		return fmt.Errorf("reading new file: %w", err)
	}

	cfg := driver.NewConfig(windowSize, minChunkSize, (minChunkSize+maxChunkSize)/2, maxChunkSize, digest.Algorithm(hashAlgo))

	d, err := driver.Diff(oldBytes, newBytes, cfg)
	if err != nil {
		return fmt.Errorf("computing delta: %w", err)
	}

	if verbose {
		stats := d.Stats()
		log.Printf("delta: %d reuse segments (%d bytes), %d literal segments (%d bytes)",
			stats.ReuseSegments, stats.ReusedBytes, stats.LiteralSegments, stats.LiteralBytes)
	}

	deltaFile, err := os.Create(deltaPath)
	if err != nil {
		return fmt.Errorf("creating delta file: %w", err)
	}
	if err := d.Encode(deltaFile); err != nil {
		deltaFile.Close()
		return fmt.Errorf("writing delta file: %w", err)
	}
	if err := deltaFile.Close(); err != nil {
		return fmt.Errorf("closing delta file: %w", err)
	}

	patched, err := apply(oldBytes, newBytes, d)
	if err != nil {
		return fmt.Errorf("applying delta: %w", err)
	}

	if err := os.WriteFile(patchedPath, patched, 0o644); err != nil {
		return fmt.Errorf("writing patched file: %w", err)
	}

	if !bytes.Equal(patched, newBytes) {
		return fmt.Errorf("integrity check failed: patched file does not match %s", newPath)
	}

	return nil
}

// apply reconstructs the new stream from a Delta: reuse segments are
// copied from old, literal segments are copied from new. This is only
// meaningful here, where both files are already on disk for the
// integrity check §6 requires of the CLI — a real rsync-style receiver
// would source literal bytes from the wire instead, since the Delta
// itself never carries payload.
func apply(oldData, newData []byte, d *delta.Delta) ([]byte, error) {
	var out []byte
	for _, seg := range d.Segments {
		switch seg.Kind {
		case delta.Reuse:
			end := seg.Offset + int64(seg.Length)
			if seg.Offset < 0 || end > int64(len(oldData)) {
				return nil, fmt.Errorf("reuse segment [%d,%d) out of range for old file of length %d", seg.Offset, end, len(oldData))
			}
			out = append(out, oldData[seg.Offset:end]...)
		case delta.Literal:
			end := seg.Offset + int64(seg.Length)
			if seg.Offset < 0 || end > int64(len(newData)) {
				return nil, fmt.Errorf("literal segment [%d,%d) out of range for new file of length %d", seg.Offset, end, len(newData))
			}
			out = append(out, newData[seg.Offset:end]...)
		}
	}
	return out, nil
}
