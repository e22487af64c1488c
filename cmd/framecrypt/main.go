// Command framecrypt partitions encoded media frames into clear and
// encryptable byte ranges and reports the result. Each input file is
// treated as one frame (raw Annex B access unit for H.264/H.265, an OBU
// sequence for AV1, a raw payload for the other codecs).
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/zsiec/framecrypt/media"
	"github.com/zsiec/framecrypt/partition"
)

var version = "dev"

func main() {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	codecName := flag.String("codec", "h264", "codec of the input frames (opus|vp8|vp9|h264|h265|av1)")
	verbose := flag.Bool("v", false, "log every clear range")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: framecrypt [flags] frame-file...")
		flag.PrintDefaults()
	}
	flag.Parse()

	codec, ok := media.ParseCodec(*codecName)
	if !ok {
		slog.Error("unknown codec", "codec", *codecName)
		os.Exit(2)
	}

	files := flag.Args()
	if len(files) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	slog.Info("framecrypt starting", "version", version, "codec", codec, "files", len(files))

	// Frames are independent, so each file gets its own processor and
	// goroutine; nothing is shared between them.
	var g errgroup.Group
	for _, path := range files {
		path := path
		g.Go(func() error {
			return partitionFile(path, codec, *verbose)
		})
	}
	if err := g.Wait(); err != nil {
		slog.Error("partitioning failed", "error", err)
		os.Exit(1)
	}
}

func partitionFile(path string, codec media.Codec, verbose bool) error {
	frame, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	out := partition.NewOutbound(codec)
	if err := partition.ProcessFrame(out, frame); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	ranges := out.UnencryptedRanges()
	slog.Info("frame partitioned",
		"file", path,
		"input_bytes", len(frame),
		"output_bytes", out.Size(),
		"clear_bytes", len(out.Unencrypted()),
		"encrypted_bytes", len(out.Encrypted()),
		"clear_ranges", len(ranges),
	)
	if verbose {
		for _, r := range ranges {
			slog.Info("clear range", "file", path, "offset", r.Offset, "size", r.Size)
		}
	}
	return nil
}
