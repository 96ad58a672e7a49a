// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// maxEmptyReads bounds how many (0, nil) reads ReadAll tolerates in a row.
const maxEmptyReads = 100

// ReadAll drains src into a Buffer. It does not close src.
func ReadAll(src Source) (Buffer, error) {
	channels := src.Channels()
	if channels <= 0 {
		return Buffer{}, ErrNoChannels
	}

	size := src.BufSize()
	if size < channels {
		size = 4096 * channels
	}
	size -= size % channels
	tmp := make([]float32, size)

	capacity := 0
	if s, ok := src.(Sizer); ok {
		capacity = s.Frames()
	}
	out := Buffer{Data: make([][]float64, channels)}
	for c := range out.Data {
		out.Data[c] = make([]float64, 0, capacity)
	}

	empty := 0
	for {
		n, err := src.ReadSamples(tmp)
		frames := n / channels
		for f := range frames {
			base := f * channels
			for c := range channels {
				out.Data[c] = append(out.Data[c], float64(tmp[base+c]))
			}
		}

		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("read samples: %w", err)
		}

		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return out, io.ErrNoProgress
			}
			continue
		}
		empty = 0
	}
}
