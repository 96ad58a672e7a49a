// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/ik5/beatswap/audio"
)

// WaveType selects the oscillator shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSaw
	WaveSquare
)

func (w WaveType) String() string {
	switch w {
	case WaveSine:
		return "sine"
	case WaveSaw:
		return "saw"
	case WaveSquare:
		return "square"
	}

	return fmt.Sprintf("wave(%d)", int(w))
}

// ParseWave maps a wave name to its WaveType.
func ParseWave(s string) (WaveType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sine", "sin":
		return WaveSine, nil
	case "saw", "sawtooth":
		return WaveSaw, nil
	case "square", "sq":
		return WaveSquare, nil
	}

	return 0, fmt.Errorf("%q: %w", s, ErrUnknownWave)
}

type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator returns a streamer producing duration worth of the given
// wave at full scale. Saw rises from -1, square starts low.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSaw:
			val = 2*o.phase - 1
		case WaveSquare:
			val = 1
			if o.phase < 0.5 {
				val = -1
			}
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}

	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// withVolume scales a streamer linearly. vol <= 0 silences it.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}

	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   math.Log2(vol),
	}
}

// Tone describes one oscillator voice.
type Tone struct {
	Wave    WaveType
	Freq    float64
	Seconds float64
	Volume  float64
}

func (t Tone) duration() time.Duration {
	return time.Duration(t.Seconds * float64(time.Second))
}

// Streamer builds the voice at the given rate.
func (t Tone) Streamer(rate beep.SampleRate) beep.Streamer {
	return withVolume(NewOscillator(t.Freq, t.duration(), t.Wave, rate), t.Volume)
}

// Render drains at most n frames of s into a stereo buffer.
func Render(s beep.Streamer, n int) (audio.Buffer, error) {
	out := audio.NewBuffer(2, 0)
	if n <= 0 {
		return out, nil
	}

	out.Data[0] = make([]float64, 0, n)
	out.Data[1] = make([]float64, 0, n)

	taken := beep.Take(n, s)
	chunk := make([][2]float64, 512)
	for {
		got, ok := taken.Stream(chunk)
		for _, f := range chunk[:got] {
			out.Data[0] = append(out.Data[0], f[0])
			out.Data[1] = append(out.Data[1], f[1])
		}
		if !ok {
			break
		}
	}

	if err := s.Err(); err != nil {
		return out, fmt.Errorf("render: %w", err)
	}

	return out, nil
}

// Generate renders the given tones mixed together. The result is as long
// as the longest tone.
func Generate(sampleRate int, tones ...Tone) (audio.Buffer, error) {
	if sampleRate <= 0 {
		return audio.Buffer{}, ErrInvalidRate
	}

	rate := beep.SampleRate(sampleRate)
	n := 0
	streamers := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		n = max(n, rate.N(t.duration()))
		streamers = append(streamers, t.Streamer(rate))
	}

	return Render(beep.Mix(streamers...), n)
}

// ParseTone reads "wave:freq:seconds[:volume]" voices joined by '+', for
// example "sine:440:0.1" or "saw:110:0.2:0.5+square:220:0.1".
func ParseTone(s string, sampleRate int) (audio.Buffer, error) {
	var tones []Tone
	for voice := range strings.SplitSeq(s, "+") {
		t, err := parseVoice(voice)
		if err != nil {
			return audio.Buffer{}, err
		}
		tones = append(tones, t)
	}

	return Generate(sampleRate, tones...)
}

func parseVoice(s string) (Tone, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 3 || len(parts) > 4 {
		return Tone{}, fmt.Errorf("%q: %w", s, ErrInvalidTone)
	}

	wave, err := ParseWave(parts[0])
	if err != nil {
		return Tone{}, err
	}

	t := Tone{Wave: wave, Volume: 1}
	vals := []*float64{&t.Freq, &t.Seconds, &t.Volume}
	for i, p := range parts[1:] {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil || v < 0 {
			return Tone{}, fmt.Errorf("%q: %w", s, ErrInvalidTone)
		}
		*vals[i] = v
	}

	return t, nil
}
