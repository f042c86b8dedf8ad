// Package render drives a fractional delay line from a mix of sine tones.
//
// [Config] is the full parameter set of a batch run: tone frequencies, the
// shared sample rate, the delay in samples and the number of samples to
// produce. [Run] and [Stream] build fresh oscillators and a fresh delay line
// for every call, so runs never share state. [WriteCSV] prints one
// "index, raw, delayed" line per frame.
//
// The printed values match other implementations of the same run
// numerically, not textually: math.Sin may differ from a C library sine in
// the last bit, so individual lines can differ in their final digit.
// [FormatSample] round-trips exactly, so parsing the text back gives the
// computed float64.
package render
