// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files through github.com/go-audio/aiff.
//
// 8, 16, 24 and 32-bit PCM is supported with any channel count. The
// returned source reports its length, so audio.ReadAll allocates once:
//
//	f, _ := os.Open("loop.aiff")
//	src, err := aiff.Decoder{}.Decode(f)
//	buf, err := audio.ReadAll(src)
package aiff
