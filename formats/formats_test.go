// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/ik5/beatswap/audio"
	"github.com/ik5/beatswap/formats/wav"
)

func wavBytes(t *testing.T, frames int) []byte {
	t.Helper()

	var out bytes.Buffer
	if err := wav.WritePCM16(&out, audio.NewBuffer(2, frames), 8000); err != nil {
		t.Fatalf("WritePCM16() error = %v", err)
	}

	return out.Bytes()
}

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	want := []string{"aif", "aiff", "mp3", "oga", "ogg", "wav", "wave"}
	if got := NewRegistry().Formats(); !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestSniff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		head string
		want string
	}{
		{head: "RIFF\x00\x00\x00\x00WAVEfmt ", want: "wav"},
		{head: "FORM\x00\x00\x00\x00AIFF", want: "aiff"},
		{head: "FORM\x00\x00\x00\x00AIFC", want: "aiff"},
		{head: "OggS\x00\x02", want: "ogg"},
		{head: "ID3\x04\x00", want: "mp3"},
		{head: "\xff\xfb\x90\x00", want: "mp3"},
		{head: "RIFF\x00\x00\x00\x00AVI ", want: ""},
		{head: "", want: ""},
	}

	for _, tt := range tests {
		if got := Sniff([]byte(tt.head)); got != tt.want {
			t.Errorf("Sniff(%q) = %q, want %q", tt.head, got, tt.want)
		}
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()

	src, err := Decode(reg, "", bytes.NewReader(wavBytes(t, 10)))
	if err != nil {
		t.Fatalf("Decode(sniffed) error = %v", err)
	}
	buf, err := audio.ReadAll(src)
	if err != nil || buf.Len() != 10 {
		t.Fatalf("ReadAll() = %d frames, %v", buf.Len(), err)
	}

	if _, err := Decode(reg, "", bytes.NewReader([]byte("plain text"))); !errors.Is(err, audio.ErrUnknownFormat) {
		t.Errorf("Decode(text) error = %v, want ErrUnknownFormat", err)
	}
	if _, err := Decode(reg, "flac", bytes.NewReader(nil)); !errors.Is(err, audio.ErrUnknownFormat) {
		t.Errorf("Decode(flac) error = %v, want ErrUnknownFormat", err)
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "Song.WAV")
	if err := os.WriteFile(path, wavBytes(t, 25), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := Open(NewRegistry(), path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if sz, ok := src.(audio.Sizer); !ok || sz.Frames() != 25 {
		t.Errorf("Open() lost the Frames() hint")
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	if _, err := Open(NewRegistry(), filepath.Join(dir, "notes.txt")); !errors.Is(err, audio.ErrUnknownFormat) {
		t.Errorf("Open(txt) error = %v, want ErrUnknownFormat", err)
	}
	if _, err := Open(NewRegistry(), filepath.Join(dir, "missing.wav")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Open(missing) error = %v, want ErrNotExist", err)
	}
}
