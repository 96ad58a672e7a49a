// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/beatswap/audio"
	"github.com/ik5/beatswap/utils"
)

const headerSize = 44

// WritePCM16 writes buf as an interleaved 16-bit PCM WAV. It only needs an
// io.Writer, so it suits HTTP responses and pipes.
func WritePCM16(w io.Writer, buf audio.Buffer, sampleRate int) error {
	channels := buf.Channels()
	if channels == 0 {
		return audio.ErrNoChannels
	}

	const bitsPerSample = 16
	blockAlign := channels * bitsPerSample / 8
	dataSize := uint32(buf.Len() * blockAlign)

	header := make([]byte, headerSize)

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], formatPCM)
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(sampleRate*blockAlign))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	// 8 KiB of frames per write.
	chunkFrames := max(8192/blockAlign, 1)
	out := make([]byte, min(buf.Len(), chunkFrames)*blockAlign)

	for start := 0; start < buf.Len(); start += chunkFrames {
		end := min(start+chunkFrames, buf.Len())
		chunk := out[:(end-start)*blockAlign]

		for f := start; f < end; f++ {
			base := (f - start) * blockAlign
			for c := range channels {
				v := utils.Float64ToInt16(buf.Data[c][f])
				binary.LittleEndian.PutUint16(chunk[base+2*c:], uint16(v))
			}
		}

		if _, err := w.Write(chunk); err != nil {
			return fmt.Errorf("write samples: %w", err)
		}
	}

	return nil
}
