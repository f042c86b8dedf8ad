// Package server exposes batch renders and kernel analysis over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/cwbudde/algo-fracdelay/dsp/core"
	"github.com/cwbudde/algo-fracdelay/dsp/filter/fir"
	"github.com/cwbudde/algo-fracdelay/dsp/window"
	"github.com/cwbudde/algo-fracdelay/render"
)

// MaxIterations caps the frame count a single /render request may ask for.
const MaxIterations = 1 << 20

// MaxWork caps iterations times kernel taps for a single /render request,
// which bounds the multiply-adds the handler performs.
const MaxWork = 1 << 28

type renderResponse struct {
	Config render.Config  `json:"config"`
	Window string         `json:"window"`
	Frames []render.Frame `json:"frames"`
}

type kernelResponse struct {
	Delay        float64   `json:"delay"`
	IntegerDelay int       `json:"integer_delay"`
	Fraction     float64   `json:"fraction"`
	Window       string    `json:"window"`
	Taps         []float64 `json:"taps"`
	DCGain       float64   `json:"dc_gain"`
	PeakTap      int       `json:"peak_tap"`
	FFTSize      int       `json:"fft_size"`
	Magnitude    []float64 `json:"magnitude"`
}

type handler struct {
	logger *log.Logger
}

// NewHandler returns the HTTP routes. A nil logger discards request errors.
//
//	GET /render?delay=7.816&freq=600,1200&rate=48000&n=101&window=hamming
//	GET /kernel?delay=7.816&window=hamming&fft=256
func NewHandler(logger *log.Logger) http.Handler {
	h := &handler{logger: logger}

	sr := mux.NewRouter()
	sr.HandleFunc("/render", h.handleRender).Methods(http.MethodGet)
	sr.HandleFunc("/kernel", h.handleKernel).Methods(http.MethodGet)

	r := mux.NewRouter()
	r.Use(corsMiddleware)
	r.PathPrefix("/").Handler(sr)
	return r
}

func (h *handler) handleRender(w http.ResponseWriter, r *http.Request) {
	cfg, err := ParseConfig(r.URL.Query())
	if err != nil {
		h.fail(w, err)
		return
	}
	if cfg.Iterations > MaxIterations {
		h.fail(w, fmt.Errorf("iteration count must be <= %d: %w", MaxIterations, core.ErrInvalidParameter))
		return
	}
	if work := cfg.Iterations * fir.TapCount(cfg.DelaySamples); work > MaxWork {
		h.fail(w, fmt.Errorf("iterations x taps must be <= %d, got %d: %w", MaxWork, work, core.ErrInvalidParameter))
		return
	}

	frames, err := render.Run(cfg)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.writeJSON(w, renderResponse{Config: cfg, Window: cfg.Window.String(), Frames: frames})
}

func (h *handler) handleKernel(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cfg, err := ParseConfig(q)
	if err != nil {
		h.fail(w, err)
		return
	}

	fftSize := 0
	if v := q.Get("fft"); v != "" {
		if fftSize, err = strconv.Atoi(v); err != nil {
			h.fail(w, fmt.Errorf("fft: %w", core.ErrInvalidParameter))
			return
		}
	}

	taps, err := fir.FractionalDelay(cfg.DelaySamples, fir.WithWindow(cfg.Window))
	if err != nil {
		h.fail(w, err)
		return
	}

	a, err := fir.Analyze(taps, fftSize)
	if err != nil {
		h.fail(w, err)
		return
	}

	whole, frac := fir.SplitDelay(cfg.DelaySamples)
	h.writeJSON(w, kernelResponse{
		Delay:        cfg.DelaySamples,
		IntegerDelay: whole,
		Fraction:     frac,
		Window:       cfg.Window.String(),
		Taps:         taps,
		DCGain:       a.DCGain,
		PeakTap:      a.PeakTap,
		FFTSize:      a.FFTSize,
		Magnitude:    a.Magnitude,
	})
}

// ParseConfig overlays query parameters on [render.DefaultConfig]:
// delay, freq (comma separated), rate, n and window.
func ParseConfig(q url.Values) (render.Config, error) {
	cfg := render.DefaultConfig()

	if v := q.Get("delay"); v != "" {
		d, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("delay %q: %w", v, core.ErrInvalidParameter)
		}
		cfg.DelaySamples = d
	}
	if v := q.Get("freq"); v != "" {
		freqs, err := ParseFrequencies(v)
		if err != nil {
			return cfg, err
		}
		cfg.FrequenciesHz = freqs
	}
	if v := q.Get("rate"); v != "" {
		rate, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("rate %q: %w", v, core.ErrInvalidParameter)
		}
		cfg.SampleRate = rate
	}
	if v := q.Get("n"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("n %q: %w", v, core.ErrInvalidParameter)
		}
		cfg.Iterations = n
	}
	if v := q.Get("window"); v != "" {
		t, err := window.ParseType(v)
		if err != nil {
			return cfg, fmt.Errorf("%w: %w", err, core.ErrInvalidParameter)
		}
		cfg.Window = t
	}

	return cfg, cfg.Validate()
}

// ParseFrequencies parses a comma separated list of integer frequencies.
func ParseFrequencies(s string) ([]int, error) {
	var freqs []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("frequency %q: %w", part, core.ErrInvalidParameter)
		}
		freqs = append(freqs, f)
	}
	return freqs, nil
}

func (h *handler) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, core.ErrInvalidParameter) {
		status = http.StatusBadRequest
	}
	if h.logger != nil {
		h.logger.Printf("request failed: %v", err)
	}
	http.Error(w, err.Error(), status)
}

func (h *handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil && h.logger != nil {
		h.logger.Printf("encode response: %v", err)
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type")
		if r.Method == http.MethodOptions {
			return
		}
		next.ServeHTTP(w, r)
	})
}
