// SPDX-License-Identifier: EPL-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/ik5/beatswap"
	"github.com/ik5/beatswap/audio"
	"github.com/ik5/beatswap/composite"
	"github.com/ik5/beatswap/synth"
)

func newSidechainCmd(a *app) *cobra.Command {
	var (
		f       = defaultSongFlags()
		envFile string
		env     = composite.DefaultEnvelope()
		offset  float64
	)

	cmd := &cobra.Command{
		Use:   "sidechain",
		Short: "Duck the song on every beat",
		Long: `Multiply a ducking envelope into the song at every beat. The envelope
is generated from --length, --curve, --vol0 and --vol1, or read from the
first channel of an audio file.

Examples:
  beatswap sidechain -i song.wav
  beatswap sidechain -i song.wav --length 0.25 --curve 3
  beatswap sidechain -i song.wav --envelope duck.wav`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd.Context(), cmd, &f, func(song beatswap.Song) (beatswap.Op, error) {
				if !cmd.Flags().Changed("smoothing") {
					env.Smoothing = a.cfg.Smoothing
				}

				var curve []float64
				if envFile != "" {
					buf, err := song.LoadSample(nil, envFile)
					if err != nil {
						return beatswap.Op{}, err
					}
					curve = buf.Mono().Data[0]
				} else {
					env.SampleRate = song.SampleRate
					curve = composite.Envelope(env)
				}

				return beatswap.SidechainOp(curve, offset, env.Smoothing), nil
			})
		},
	}

	f.bind(cmd)
	fl := cmd.Flags()
	fl.StringVar(&envFile, "envelope", "", "Audio file whose first channel is the envelope")
	fl.Float64Var(&env.Length, "length", env.Length, "Release length in seconds")
	fl.Float64Var(&env.Curve, "curve", env.Curve, "Release curve exponent")
	fl.Float64Var(&env.Vol0, "vol0", env.Vol0, "Gain at the start of the release")
	fl.Float64Var(&env.Vol1, "vol1", env.Vol1, "Gain at the end of the release")
	fl.IntVar(&env.Smoothing, "smoothing", env.Smoothing, "Fade into the dip in samples")
	fl.Float64Var(&offset, "offset", 0, "Move each dip a fraction of the beat")

	return cmd
}

func newSampleCmd(a *app) *cobra.Command {
	var (
		f      = defaultSongFlags()
		sample string
		tone   string
		offset float64
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Mix a sample onto every beat",
		Long: `Mix a sample onto every beat. The sample is an audio file resampled to
the song's rate, or a tone wave:freq:seconds[:volume] where wave is
sine, saw or square; join specs with + to mix them.

Examples:
  beatswap sample -i song.wav --sample kick.wav
  beatswap sample -i song.wav --tone sine:60:0.15:0.8+square:120:0.05:0.2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd.Context(), cmd, &f, func(song beatswap.Song) (beatswap.Op, error) {
				var (
					buf audio.Buffer
					err error
				)
				if tone != "" {
					buf, err = synth.ParseTone(tone, song.SampleRate)
				} else {
					buf, err = song.LoadSample(nil, sample)
				}
				if err != nil {
					return beatswap.Op{}, err
				}

				return beatswap.SampleOp(buf, offset), nil
			})
		},
	}

	f.autoInsert = true
	f.bind(cmd)
	fl := cmd.Flags()
	fl.StringVar(&sample, "sample", "", "Audio file to mix in")
	fl.StringVar(&tone, "tone", "", "Generated tone to mix in")
	fl.Float64Var(&offset, "offset", 0, "Move each hit a fraction of the beat")
	cmd.MarkFlagsMutuallyExclusive("sample", "tone")
	cmd.MarkFlagsOneRequired("sample", "tone")

	return cmd
}
