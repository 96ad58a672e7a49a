// SPDX-License-Identifier: EPL-2.0

package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ik5/beatswap"
	"github.com/ik5/beatswap/assemble"
	"github.com/ik5/beatswap/audio"
	"github.com/ik5/beatswap/beatmap"
	"github.com/ik5/beatswap/beattrack"
	"github.com/ik5/beatswap/composite"
	"github.com/ik5/beatswap/formats"
	"github.com/ik5/beatswap/formats/wav"
	"github.com/ik5/beatswap/pattern"
)

// errBadRequest marks query parameters that do not parse.
var errBadRequest = errors.New("bad request")

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"formats": s.reg.Formats(),
	})
}

func (s *Server) handleBeatswap(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	expr := q.Get("pattern")
	if expr == "" {
		s.fail(w, fmt.Errorf("%w: pattern is required", errBadRequest))
		return
	}

	opts := s.cfg.AssembleOptions(s.logger)
	if v := q.Get("smoothing"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.fail(w, fmt.Errorf("%w: smoothing %q", errBadRequest, v))
			return
		}
		opts.Smoothing = n
	}
	if v := q.Get("mode"); v != "" {
		m, ok := assemble.ParseSmoothingMode(v)
		if !ok {
			s.fail(w, fmt.Errorf("%w: mode %q", errBadRequest, v))
			return
		}
		opts.Mode = m
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			s.fail(w, fmt.Errorf("%w: seed %q", errBadRequest, v))
			return
		}
		opts.Rand = rand.New(rand.NewPCG(seed, seed))
	}

	s.runQuick(w, r, func(beatswap.Song) beatswap.Op {
		return beatswap.SwapOp(expr, q.Get("sep"), opts)
	})
}

func (s *Server) handleSidechain(w http.ResponseWriter, r *http.Request) {
	s.runQuick(w, r, func(song beatswap.Song) beatswap.Op {
		env := composite.DefaultEnvelope()
		env.SampleRate = song.SampleRate
		env.Smoothing = s.cfg.Smoothing
		return beatswap.SidechainOp(composite.Envelope(env), 0, env.Smoothing)
	})
}

func (s *Server) handleBeatmap(w http.ResponseWriter, r *http.Request) {
	song, tr, err := s.decode(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}

	song, err = song.Detect(r.Context(), tr)
	if err != nil {
		s.fail(w, err)
		return
	}

	var body bytes.Buffer
	if err := beatmap.Encode(&body, song.Beats); err != nil {
		s.fail(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = body.WriteTo(w)
}

// runQuick decodes the upload, runs the quick pipeline with the op built
// for it and answers with 16-bit WAV.
func (s *Server) runQuick(w http.ResponseWriter, r *http.Request, build func(beatswap.Song) beatswap.Op) {
	song, tr, err := s.decode(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}

	qo, err := quickOptions(r.URL.Query())
	if err != nil {
		s.fail(w, err)
		return
	}
	qo.Tracker = tr
	qo.Logger = s.logger

	out, _, err := beatswap.Quick(r.Context(), song, build(song), qo)
	if err != nil {
		s.fail(w, err)
		return
	}

	var body bytes.Buffer
	if err := wav.WritePCM16(&body, out.Audio, out.SampleRate); err != nil {
		s.fail(w, err)
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Length", strconv.Itoa(body.Len()))
	_, _ = body.WriteTo(w)
}

// decode reads the request body as audio and picks the tracker named in
// the query.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (beatswap.Song, beattrack.Tracker, error) {
	q := r.URL.Query()

	name := q.Get("name")
	if name == "" {
		name = "upload"
	}

	split := s.cfg.Split
	if v := q.Get("split"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return beatswap.Song{}, nil, fmt.Errorf("%w: split %q", errBadRequest, v)
		}
		split = n
	}
	trackerName := s.cfg.Tracker
	if v := q.Get("tracker"); v != "" {
		trackerName = v
	}

	tr, err := beattrack.New(trackerName, split)
	if err != nil {
		return beatswap.Song{}, nil, err
	}
	if s.cache != nil {
		tr = beattrack.Cached{Tracker: tr, Cache: s.cache, Name: name, Logger: s.logger}
	}

	body := http.MaxBytesReader(w, r.Body, s.maxUpload)
	src, err := formats.Decode(s.reg, q.Get("format"), body)
	if err != nil {
		return beatswap.Song{}, nil, err
	}
	defer src.Close()

	song, err := beatswap.FromSource(src, name)
	if err != nil {
		return beatswap.Song{}, nil, err
	}

	return song, tr, nil
}

func quickOptions(q url.Values) (beatswap.QuickOptions, error) {
	qo := beatswap.DefaultQuickOptions()

	floatParam := func(key string, dst *float64) error {
		v := q.Get(key)
		if v == "" {
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s %q", errBadRequest, key, v)
		}
		*dst = f
		return nil
	}
	boolParam := func(key string, dst *bool) error {
		v := q.Get(key)
		if v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s %q", errBadRequest, key, v)
		}
		*dst = b
		return nil
	}

	err := errors.Join(
		floatParam("scale", &qo.Scale),
		floatParam("shift", &qo.Shift),
		floatParam("start", &qo.Start),
		boolParam("autotrim", &qo.AutoTrim),
		boolParam("autoscale", &qo.AutoScale),
		boolParam("autoinsert", &qo.AutoInsert),
	)
	if v := q.Get("end"); v != "" {
		n, perr := strconv.Atoi(v)
		if perr != nil {
			err = errors.Join(err, fmt.Errorf("%w: end %q", errBadRequest, v))
		}
		qo.End = n
	}

	return qo, err
}

// fail maps err to a status code. Client mistakes get 400, oversized
// bodies 413, everything else 500.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var tooBig *http.MaxBytesError
	switch {
	case errors.As(err, &tooBig):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, errBadRequest),
		errors.Is(err, pattern.ErrSyntax),
		errors.Is(err, beatmap.ErrInvalidParam),
		errors.Is(err, beattrack.ErrUnknownTracker),
		errors.Is(err, beattrack.ErrInvalidSplit),
		errors.Is(err, beattrack.ErrTooShort),
		errors.Is(err, audio.ErrUnknownFormat),
		errors.Is(err, beatswap.ErrInvalidSampleRate):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	http.Error(w, err.Error(), status)
}
