// Package rand implements the pseudo-random number generator used by the
// smpl kernel: a 16807 mod (2^31-1) Lehmer stream with 15 fixed seeds, and
// the derived distributions MacDougall's original smpl shipped.
//
// It deliberately does not wrap math/rand — the bit-exact sequence this
// generator produces is part of the reference implementation's observable
// behavior (spec §6, §8-S6) and must not drift with a different algorithm.
package rand

import "math"

// defaultStreams are the 15 fixed seeds selected by (*Stream).SetStream.
var defaultStreams = [15]int64{
	1973272912, 747177549, 20464843, 640830765, 1098742207,
	78126602, 84743774, 831312807, 124667236, 1172177002,
	1124933064, 1223960546, 1878892440, 1449793615, 553303732,
}

const (
	multiplier = 16807
	modulus    = 2147483647
)

// Stream is one instance of the generator. Every Kernel owns its own
// Stream (spec §5 "the RNG is per-instance"); there is no global,
// package-level generator state.
type Stream struct {
	i       int64
	current int     // stream number last selected by SetStream, 1..15
	z2      float64 // cached second variate for Normal's Marsaglia polar method
}

// New returns a Stream seeded from stream 1. Callers that want the
// kernel's init-time stream rotation should call SetStream explicitly.
func New() *Stream {
	s := &Stream{}
	s.SetStream(1)
	return s
}

// SetStream selects one of the 15 fixed seed streams (1..15) and clears
// the Normal cache. Streams outside that range are a precondition
// violation (spec §7).
func (s *Stream) SetStream(n int) error {
	if n < 1 || n > 15 {
		return errStreamRange
	}
	s.i = defaultStreams[n-1]
	s.current = n
	s.z2 = 0
	return nil
}

// CurrentStream returns the stream number last selected by SetStream, so a
// caller that rotates through streams (as Kernel.Init does) can compute the
// next one relative to whatever was most recently selected — including by
// a manual SetStream call the caller didn't make itself.
func (s *Stream) CurrentStream() int {
	return s.current
}

// SetSeed overrides the current stream's seed directly.
func (s *Stream) SetSeed(seed int64) {
	s.i = seed
}

// Seed returns the current stream's seed.
func (s *Stream) Seed() int64 {
	return s.i
}

// Ranf returns the next uniform variate in [0, 1) from the
// I = (16807*I) mod (2^31-1) Lehmer generator.
func (s *Stream) Ranf() float64 {
	s.i = (multiplier * s.i) % modulus
	if s.i < 0 {
		s.i += modulus
	}
	return float64(s.i) / float64(modulus)
}

// Uniform returns a uniform variate in [a, b].
func (s *Stream) Uniform(a, b float64) (float64, error) {
	if a > b {
		return 0, errBounds
	}
	return a + (b-a)*s.Ranf(), nil
}

// Random returns a uniform integer variate in [i, n].
func (s *Stream) Random(i, n int) (int, error) {
	if i > n {
		return 0, errBounds
	}
	m := n - i
	d := int(float64(m+1) * s.Ranf())
	return i + d, nil
}

// Expntl returns an exponential variate with mean x.
func (s *Stream) Expntl(x float64) float64 {
	return -x * math.Log(s.Ranf())
}

// Erlang returns an Erlang variate with mean x and standard deviation s2,
// where s2 must not exceed x.
func (s *Stream) Erlang(x, s2 float64) (float64, error) {
	if s2 > x {
		return 0, errErlang
	}

	z1 := x / s2
	k := int(z1 * z1)

	z2 := 1.0
	for i := 0; i < k; i++ {
		z2 *= s.Ranf()
	}

	return -(x / float64(k)) * math.Log(z2), nil
}

// Hyperx returns a variate from Morse's two-stage hyperexponential
// distribution with mean x and standard deviation s2, where s2 must
// exceed x.
func (s *Stream) Hyperx(x, s2 float64) (float64, error) {
	if s2 <= x {
		return 0, errHyperx
	}

	cv := s2 / x
	z1 := cv * cv
	p := 0.5 * (1.0 - math.Sqrt((z1-1.0)/(z1+1.0)))

	var z2 float64
	if s.Ranf() > p {
		z2 = x / (1.0 - p)
	} else {
		z2 = x / p
	}

	return -0.5 * z2 * math.Log(s.Ranf()), nil
}

// Normal returns a variate from a normal distribution with mean x and
// standard deviation s2, using Marsaglia's polar method. Every other call
// reuses the second variate generated by the rejection loop instead of
// drawing fresh uniforms.
func (s *Stream) Normal(x, s2 float64) float64 {
	var z1 float64

	if s.z2 != 0 {
		z1 = s.z2
		s.z2 = 0
	} else {
		var v1, v2, w float64
		for {
			v1 = 2.0*s.Ranf() - 1.0
			v2 = 2.0*s.Ranf() - 1.0
			w = v1*v1 + v2*v2
			if w < 1.0 {
				break
			}
		}
		w = math.Sqrt(-2.0 * math.Log(w) / w)
		z1 = v1 * w
		s.z2 = v2 * w
	}

	return x + z1*s2
}
