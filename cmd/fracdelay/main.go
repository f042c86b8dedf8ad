// Command fracdelay delays a mix of sine tones by a fractional number of
// samples and prints the raw and delayed sample streams.
//
// Usage:
//
//	fracdelay [flags]
//
// Without flags it reproduces the reference run: 600, 1200 and 2562 Hz at
// 48 kHz, delayed by 7.816 samples, 101 frames, one "index, raw, delayed"
// line per frame.
//
// Examples:
//
//	fracdelay
//	fracdelay -delay 3.25 -freq 440,880 -n 1000
//	fracdelay -kernel -delay 7.816 -window blackman
//	fracdelay -serve :8080
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/term"

	"github.com/cwbudde/algo-fracdelay/dsp/filter/fir"
	"github.com/cwbudde/algo-fracdelay/dsp/window"
	"github.com/cwbudde/algo-fracdelay/internal/server"
	"github.com/cwbudde/algo-fracdelay/render"
)

type options struct {
	cfg    render.Config
	format string
	kernel bool
	fft    int
	serve  string
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	if opts.serve != "" {
		serve(opts.serve)
		return
	}

	if opts.format == "auto" {
		opts.format = "csv"
		if term.IsTerminal(int(os.Stdout.Fd())) {
			opts.format = "table"
		}
	}

	if err := run(os.Stdout, opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	def := render.DefaultConfig()

	fs := flag.NewFlagSet("fracdelay", flag.ContinueOnError)
	fs.SetOutput(stderr)

	delay := fs.Float64("delay", def.DelaySamples, "delay in samples (>= 0, may be fractional)")
	freqs := fs.String("freq", joinInts(def.FrequenciesHz), "comma separated tone frequencies in Hz")
	rate := fs.Int("rate", def.SampleRate, "sample rate in Hz")
	n := fs.Int("n", def.Iterations, "number of samples to generate")
	win := fs.String("window", def.Window.String(), "kernel window: rectangular, hann, hamming, blackman")
	format := fs.String("format", "auto", "output format: csv, table or auto (table on a terminal)")
	kernel := fs.Bool("kernel", false, "print the delay kernel and its analysis instead of samples")
	fft := fs.Int("fft", 0, "FFT size for -kernel analysis (0 = automatic)")
	serveAddr := fs.String("serve", "", "serve the HTTP API on this address instead of printing")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: fracdelay [flags]\n\n")
		fmt.Fprintf(stderr, "Delays a mix of sine tones by a fractional number of samples.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  fracdelay -delay 3.25 -freq 440,880 -n 1000\n")
		fmt.Fprintf(stderr, "  fracdelay -kernel -delay 7.816 -window blackman\n")
		fmt.Fprintf(stderr, "  fracdelay -serve :8080\n")
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	frequencies, err := server.ParseFrequencies(*freqs)
	if err != nil {
		return options{}, err
	}
	wt, err := window.ParseType(*win)
	if err != nil {
		return options{}, err
	}
	switch *format {
	case "auto", "csv", "table":
	default:
		return options{}, fmt.Errorf("unknown format %q", *format)
	}

	cfg := render.Config{
		FrequenciesHz: frequencies,
		SampleRate:    *rate,
		DelaySamples:  *delay,
		Iterations:    *n,
		Window:        wt,
	}
	if err := cfg.Validate(); err != nil {
		return options{}, err
	}

	return options{cfg: cfg, format: *format, kernel: *kernel, fft: *fft, serve: *serveAddr}, nil
}

func run(w io.Writer, opts options) error {
	if opts.kernel {
		return printKernel(w, opts.cfg, opts.fft)
	}

	if opts.format == "table" {
		frames, err := render.Run(opts.cfg)
		if err != nil {
			return err
		}
		return render.WriteTable(w, frames)
	}

	return render.StreamCSV(w, opts.cfg)
}

func printKernel(w io.Writer, cfg render.Config, fftSize int) error {
	taps, err := fir.FractionalDelay(cfg.DelaySamples, fir.WithWindow(cfg.Window))
	if err != nil {
		return err
	}
	a, err := fir.Analyze(taps, fftSize)
	if err != nil {
		return err
	}

	whole, frac := fir.SplitDelay(cfg.DelaySamples)
	f, err := fir.New(taps)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Delay\t%g (%d + %g)\n", cfg.DelaySamples, whole, frac)
	fmt.Fprintf(tw, "Window\t%s\n", cfg.Window)
	fmt.Fprintf(tw, "Taps\t%d\n", len(taps))
	fmt.Fprintf(tw, "DC gain\t%.9f\n", a.DCGain)
	fmt.Fprintf(tw, "Peak tap\t%d\n", a.PeakTap)
	fmt.Fprintf(tw, "Ripple <Nyq/2 [dB]\t%.6f\n", a.RippleDB(0.5))
	fmt.Fprintf(tw, "Phase delay @1kHz\t%.6f\n", f.PhaseDelay(1000, float64(cfg.SampleRate)))
	fmt.Fprintf(tw, "\nTap\tCoefficient\n")
	fmt.Fprintf(tw, "---\t-----------\n")
	for i, c := range taps {
		fmt.Fprintf(tw, "%d\t%+.15f\n", i, c)
	}
	return tw.Flush()
}

func serve(addr string) {
	logger := log.New(os.Stderr, "fracdelay: ", log.LstdFlags)

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.NewHandler(logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Printf("listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal(err)
	}
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ",")
}
