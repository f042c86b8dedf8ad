// Package delay provides a fixed fractional-sample delay line.
//
// A [Fractional] line is configured once with a delay in samples, which may
// be non-integer. Construction designs a windowed-sinc FIR kernel (see
// [fir.FractionalDelay]) and every call to [Fractional.ProcessSample]
// convolves the incoming stream with it in place. The delay cannot be
// changed after construction and there is no reset: build a new line
// instead.
//
// Lines are independent values; run one per channel or goroutine without
// any locking.
package delay
