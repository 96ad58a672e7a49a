// SPDX-License-Identifier: EPL-2.0

// Package formats wires the bundled decoders into an audio.Registry.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/go-homedir"

	"github.com/ik5/beatswap/audio"
	"github.com/ik5/beatswap/formats/aiff"
	"github.com/ik5/beatswap/formats/mp3"
	"github.com/ik5/beatswap/formats/vorbis"
	"github.com/ik5/beatswap/formats/wav"
)

// NewRegistry returns a registry with every bundled decoder under its
// usual file extensions.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()

	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})

	return reg
}

// Sniff guesses the format key from the first bytes of a file. It returns
// "" when nothing matches.
func Sniff(head []byte) string {
	switch {
	case len(head) >= 12 && bytes.Equal(head[:4], []byte("RIFF")) && bytes.Equal(head[8:12], []byte("WAVE")):
		return "wav"
	case len(head) >= 12 && bytes.Equal(head[:4], []byte("FORM")) &&
		(bytes.Equal(head[8:12], []byte("AIFF")) || bytes.Equal(head[8:12], []byte("AIFC"))):
		return "aiff"
	case bytes.HasPrefix(head, []byte("OggS")):
		return "ogg"
	case bytes.HasPrefix(head, []byte("ID3")):
		return "mp3"
	case len(head) >= 2 && head[0] == 0xFF && head[1]&0xE0 == 0xE0:
		return "mp3"
	}

	return ""
}

// Decode picks the decoder for format, or sniffs the stream when format
// is empty.
func Decode(reg *audio.Registry, format string, r io.Reader) (audio.Source, error) {
	if format == "" {
		br := bufio.NewReader(r)
		head, err := br.Peek(12)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("sniff format: %w", err)
		}
		format, r = Sniff(head), br
	}

	dec, ok := reg.Get(format)
	if !ok {
		return nil, fmt.Errorf("%q: %w", format, audio.ErrUnknownFormat)
	}

	return dec.Decode(r)
}

// Open decodes the file at path, choosing the decoder by extension. A
// leading ~ is expanded. Closing the source closes the file.
func Open(reg *audio.Registry, path string) (audio.Source, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expand %q: %w", path, err)
	}

	dec, ok := reg.Lookup(path)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, audio.ErrUnknownFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	src, err := dec.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return &fileSource{Source: src, f: f}, nil
}

type fileSource struct {
	audio.Source
	f *os.File
}

func (s *fileSource) Close() error {
	return errors.Join(s.Source.Close(), s.f.Close())
}

func (s *fileSource) Frames() int {
	if sz, ok := s.Source.(audio.Sizer); ok {
		return sz.Frames()
	}
	return 0
}
