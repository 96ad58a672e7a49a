// SPDX-License-Identifier: EPL-2.0

package beatswap

import (
	"path/filepath"
	"slices"
	"strings"
)

// Output name suffixes used by the quick pipelines.
const (
	SuffixBeatSwap   = "_BeatSwap"
	SuffixSidechain  = "_Sidechain"
	SuffixBeatSample = "_BeatSample"
)

var audioExtensions = []string{".mp3", ".wav", ".flac", ".ogg", ".aac", ".ac3", ".aiff", ".wma"}

// OutputName picks the file to write. An output that already names an
// audio file is kept, with its extension changed to .wav. Anything else
// is treated as a prefix (usually a directory) for the input's base name
// plus suffix.
func OutputName(output, input, suffix string) string {
	ext := strings.ToLower(filepath.Ext(output))
	if slices.Contains(audioExtensions, ext) {
		return strings.TrimSuffix(output, filepath.Ext(output)) + ".wav"
	}

	base := filepath.Base(input)
	if base == "." || base == string(filepath.Separator) {
		base = "stream"
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))

	return output + base + suffix + ".wav"
}
