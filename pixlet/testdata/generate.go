//go:build ignore

// This script archives captured Pixlet packets for decoder testing.
// Run with: go run testdata/generate.go
//
// It picks up raw packets dropped into testdata/raw/*.pxl (one packet per
// file, e.g. demuxed from a .mov with ffmpeg:
//
//	ffmpeg -i capture.mov -c copy -f rawvideo frame.pxl
//
// and writes zstd-compressed copies next to this script as *.pxl.zst, which
// is what the decoder tests load.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "generate:", err)
		os.Exit(1)
	}
}

func run() error {
	raws, err := filepath.Glob(filepath.Join("testdata", "raw", "*.pxl"))
	if err != nil {
		return err
	}
	if len(raws) == 0 {
		fmt.Println("no raw packets in testdata/raw, nothing to do")
		return nil
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return err
	}
	defer enc.Close()

	for _, raw := range raws {
		data, err := os.ReadFile(raw)
		if err != nil {
			return err
		}

		packed := enc.EncodeAll(data, nil)
		out := filepath.Join("testdata", filepath.Base(raw)+".zst")
		if err := os.WriteFile(out, packed, 0o644); err != nil {
			return err
		}
		fmt.Printf("%s: %d -> %d bytes\n", out, len(data), len(packed))
	}
	return nil
}
