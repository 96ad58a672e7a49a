// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files through github.com/hajimehoshi/go-mp3.
//
// Output is always stereo at the file's sample rate; mono files are
// duplicated by the decoder. When the input is seekable the source knows
// its length up front.
package mp3
