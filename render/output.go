package render

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

// FormatSample renders v as the shortest decimal that round-trips, without
// an exponent.
func FormatSample(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteCSV writes one "index, raw, delayed" line per frame.
func WriteCSV(w io.Writer, frames []Frame) error {
	bw := bufio.NewWriter(w)
	for _, f := range frames {
		if err := writeCSVLine(bw, f); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// StreamCSV runs cfg and writes each frame as it is produced.
func StreamCSV(w io.Writer, cfg Config) error {
	bw := bufio.NewWriter(w)
	if err := Stream(cfg, func(f Frame) error { return writeCSVLine(bw, f) }); err != nil {
		return err
	}
	return bw.Flush()
}

func writeCSVLine(w io.Writer, f Frame) error {
	_, err := fmt.Fprintf(w, "%d, %s, %s\n", f.Index, FormatSample(f.Raw), FormatSample(f.Delayed))
	return err
}

// WriteTable writes frames as an aligned table with a header.
func WriteTable(w io.Writer, frames []Frame) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tw, "Index\tRaw\tDelayed\t\n"); err != nil {
		return err
	}
	for _, f := range frames {
		if _, err := fmt.Fprintf(tw, "%d\t%.12f\t%.12f\t\n", f.Index, f.Raw, f.Delayed); err != nil {
			return err
		}
	}
	return tw.Flush()
}
