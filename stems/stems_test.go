// SPDX-License-Identifier: EPL-2.0

package stems

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/ik5/stemsep/audio"
	"github.com/ik5/stemsep/formats/wav"
	"github.com/ik5/stemsep/separator"
)

func testResult() *separator.Result {
	v := audio.NewBuffer(8000, 2, 100)
	i := audio.NewBuffer(8000, 2, 100)
	for n := range 100 {
		v.Data[0][n], v.Data[1][n] = 0.25, -0.25
		i.Data[0][n], i.Data[1][n] = 0.5, -0.5
	}
	return &separator.Result{Vocals: v, Instrumental: i}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	files, err := Encode(testResult(), EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	want := []string{"instrumental.wav", "vocals.wav"}
	if got := Names(files); !slices.Equal(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}

	src, err := wav.Decoder{}.Decode(bytes.NewReader(files["vocals.wav"]))
	if err != nil {
		t.Fatalf("decoding vocals.wav: %v", err)
	}

	buf, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if buf.Channels() != 2 || buf.Len() != 100 || buf.SampleRate != 8000 {
		t.Fatalf("vocals.wav = %d ch x %d @ %d Hz, want 2 x 100 @ 8000", buf.Channels(), buf.Len(), buf.SampleRate)
	}
	if buf.Data[0][0] != 0.25 || buf.Data[1][0] != -0.25 {
		t.Errorf("first frame = (%v, %v), want (0.25, -0.25)", buf.Data[0][0], buf.Data[1][0])
	}
}

func TestEncode_BitDepth(t *testing.T) {
	t.Parallel()

	files16, err := Encode(testResult(), EncodeOptions{BitDepth: 16})
	if err != nil {
		t.Fatalf("Encode(16) error = %v", err)
	}
	files24, err := Encode(testResult(), EncodeOptions{BitDepth: 24})
	if err != nil {
		t.Fatalf("Encode(24) error = %v", err)
	}

	if len(files16["vocals.wav"]) != 44+100*2*2 {
		t.Errorf("16-bit size = %d, want %d", len(files16["vocals.wav"]), 44+400)
	}
	if len(files24["vocals.wav"]) != 44+100*2*3 {
		t.Errorf("24-bit size = %d, want %d", len(files24["vocals.wav"]), 44+600)
	}

	if _, err := Encode(testResult(), EncodeOptions{BitDepth: 12}); !errors.Is(err, wav.ErrUnsupportedBitDepth) {
		t.Errorf("Encode(12) error = %v, want ErrUnsupportedBitDepth", err)
	}
}

func TestEncode_NoResult(t *testing.T) {
	t.Parallel()

	for _, res := range []*separator.Result{nil, {}, {Vocals: audio.NewBuffer(8000, 2, 1)}} {
		if _, err := Encode(res, EncodeOptions{}); !errors.Is(err, ErrNoResult) {
			t.Errorf("Encode(%v) error = %v, want ErrNoResult", res, err)
		}
	}
}

func TestWriteDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "out")
	files := map[string][]byte{"vocals.wav": []byte("v"), "instrumental.wav": []byte("i")}

	paths, err := WriteDir(dir, files)
	if err != nil {
		t.Fatalf("WriteDir() error = %v", err)
	}

	want := []string{filepath.Join(dir, "instrumental.wav"), filepath.Join(dir, "vocals.wav")}
	if !slices.Equal(paths, want) {
		t.Errorf("WriteDir() = %v, want %v", paths, want)
	}

	got, err := os.ReadFile(want[1])
	if err != nil || string(got) != "v" {
		t.Errorf("vocals.wav = %q, %v; want \"v\"", got, err)
	}
}

func TestZip(t *testing.T) {
	t.Parallel()

	files, err := Encode(testResult(), EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	var archive bytes.Buffer
	if err := Zip(&archive, files); err != nil {
		t.Fatalf("Zip() error = %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(archive.Bytes()), int64(archive.Len()))
	if err != nil {
		t.Fatalf("zip.NewReader() error = %v", err)
	}

	if len(zr.File) != 2 {
		t.Fatalf("archive has %d files, want 2", len(zr.File))
	}

	for i, name := range []string{"instrumental.wav", "vocals.wav"} {
		f := zr.File[i]
		if f.Name != name {
			t.Errorf("file %d = %q, want %q", i, f.Name, name)
		}
		if f.Method != zip.Deflate {
			t.Errorf("%s method = %d, want deflate", name, f.Method)
		}

		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Open(%s) error = %v", name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		if !bytes.Equal(data, files[name]) {
			t.Errorf("%s content differs from encoded stem", name)
		}
	}
}

func TestArchiveName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"song.mp3", "song_stems.zip"},
		{"/music/My Track.wav", "My Track_stems.zip"},
		{"archive.tar.ogg", "archive.tar_stems.zip"},
		{"noext", "noext_stems.zip"},
		{"", "audio_stems.zip"},
	}

	for _, tt := range tests {
		if got := ArchiveName(tt.input); got != tt.want {
			t.Errorf("ArchiveName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
