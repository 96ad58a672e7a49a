// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files through
// github.com/jfreymuth/oggvorbis. Samples come out as float32 already, so
// the source is a thin pass-through that enforces whole frames.
package vorbis
