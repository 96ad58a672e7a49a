// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/beatswap/audio"
	"github.com/ik5/beatswap/formats/internal/pcm"
)

// Encode drains src into a WAV file at bitDepth (16, 24 or 32). ws must
// be seekable so the header can be patched once the length is known.
func Encode(ws io.WriteSeeker, src audio.Source, bitDepth int) error {
	switch bitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("%d bits: %w", bitDepth, ErrUnsupportedBitDepth)
	}

	channels := src.Channels()
	if channels <= 0 {
		return audio.ErrNoChannels
	}

	enc := wav.NewEncoder(ws, src.SampleRate(), bitDepth, channels, formatPCM)
	format := &goaudio.Format{NumChannels: channels, SampleRate: src.SampleRate()}

	size := max(src.BufSize(), channels)
	size -= size % channels
	tmp := make([]float32, size)
	ints := make([]int, 0, size)

	for {
		n, err := src.ReadSamples(tmp)
		if n > 0 {
			ints = pcm.Ints(ints, tmp[:n], bitDepth)
			buf := &goaudio.IntBuffer{Format: format, Data: ints, SourceBitDepth: bitDepth}
			if werr := enc.Write(buf); werr != nil {
				return fmt.Errorf("write samples: %w", werr)
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read samples: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finish wav: %w", err)
	}

	return nil
}
