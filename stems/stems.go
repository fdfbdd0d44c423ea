// SPDX-License-Identifier: EPL-2.0

// Package stems encodes separation results into files.
package stems

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ik5/stemsep/audio"
	"github.com/ik5/stemsep/formats/wav"
	"github.com/ik5/stemsep/separator"
)

const (
	Vocals       = "vocals"
	Instrumental = "instrumental"

	fileExt = ".wav"
)

var ErrNoResult = errors.New("no separation result to encode")

// EncodeOptions controls the WAV encoding of stems.
type EncodeOptions struct {
	// BitDepth is 16 or 24; zero means 16.
	BitDepth int
}

// FileName returns the file name used for a stem.
func FileName(stem string) string {
	return stem + fileExt
}

// Encode renders res as WAV files keyed by file name:
// "vocals.wav" and "instrumental.wav".
func Encode(res *separator.Result, opts EncodeOptions) (map[string][]byte, error) {
	if res == nil || res.Vocals == nil || res.Instrumental == nil {
		return nil, ErrNoResult
	}

	bitDepth := opts.BitDepth
	if bitDepth == 0 {
		bitDepth = 16
	}

	files := make(map[string][]byte, 2)
	for _, stem := range []struct {
		name string
		buf  *audio.Buffer
	}{
		{Vocals, res.Vocals},
		{Instrumental, res.Instrumental},
	} {
		var out bytes.Buffer
		if err := wav.WritePCM(&out, stem.buf, bitDepth); err != nil {
			return nil, fmt.Errorf("encoding %s: %w", stem.name, err)
		}
		files[FileName(stem.name)] = out.Bytes()
	}

	return files, nil
}

// Names returns the file names of files in sorted order.
func Names(files map[string][]byte) []string {
	return slices.Sorted(maps.Keys(files))
}

// WriteDir writes files into dir, creating it when needed, and returns the
// written paths in sorted order.
func WriteDir(dir string, files map[string][]byte) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	paths := make([]string, 0, len(files))
	for _, name := range Names(files) {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, files[name], 0o644); err != nil {
			return paths, fmt.Errorf("writing %s: %w", name, err)
		}
		paths = append(paths, path)
	}

	return paths, nil
}

// Zip writes files as a deflate compressed archive to w, in sorted order.
func Zip(w io.Writer, files map[string][]byte) error {
	zw := zip.NewWriter(w)

	for _, name := range Names(files) {
		f, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
		if err != nil {
			return fmt.Errorf("adding %s: %w", name, err)
		}
		if _, err := f.Write(files[name]); err != nil {
			return fmt.Errorf("adding %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}

	return nil
}

// ArchiveName returns "<base>_stems.zip" for an input path.
func ArchiveName(input string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "audio"
	}

	return base + "_stems.zip"
}
