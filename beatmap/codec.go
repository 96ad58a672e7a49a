// SPDX-License-Identifier: EPL-2.0

package beatmap

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// Decode reads whitespace separated non-negative decimal integers.
func Decode(r io.Reader) (BeatMap, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	var out []int
	for sc.Scan() {
		tok := sc.Text()
		v, err := strconv.Atoi(tok)
		if err != nil || v < 0 {
			return BeatMap{}, fmt.Errorf("token %d %q: %w", len(out), tok, ErrInvalidBeatmap)
		}
		out = append(out, v)
	}
	if err := sc.Err(); err != nil {
		return BeatMap{}, fmt.Errorf("read beatmap: %w", err)
	}

	return BeatMap{b: out}, nil
}

// Encode writes one boundary per line.
func Encode(w io.Writer, m BeatMap) error {
	bw := bufio.NewWriter(w)
	for _, v := range m.b {
		bw.WriteString(strconv.Itoa(v))
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write beatmap: %w", err)
	}

	return nil
}
