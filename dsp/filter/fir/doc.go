// Package fir provides a direct-form FIR filter runtime and a windowed-sinc
// fractional delay designer.
//
// A [Filter] applies a fixed set of coefficients to an input stream using a
// circular-buffer delay line. Every call to [Filter.ProcessSample] runs in
// O(N) time for N taps and allocates nothing; the ring buffer is sized once
// in [New] and never grows.
//
// [FractionalDelay] derives the coefficients of a kernel that delays a
// signal by a non-integer number of samples. For a delay d it returns
// N = 2*floor(d)+1 taps of a sinc centered at tap floor(d), shifted by the
// fractional part of d and tapered by a Hamming window (see [WithWindow]).
//
// [Analyze] inspects a kernel in the frequency domain (DC gain, magnitude
// response) using an FFT.
package fir
