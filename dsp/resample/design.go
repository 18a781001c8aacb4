package resample

import (
	"errors"
	"fmt"
	"math"
)

// designPolyphaseFIR builds a Kaiser-windowed sinc lowpass and splits it
// into up polyphase branches.
func designPolyphaseFIR(up, down int, p Profile) ([][]float64, int, error) {
	if up <= 0 || down <= 0 {
		return nil, 0, ErrInvalidRatio
	}

	nTaps := p.TapsPerPhase * up

	fc := (0.5 / float64(max(up, down))) * p.CutoffScale
	if fc <= 0 || fc >= 0.5 {
		return nil, 0, fmt.Errorf("resample: invalid cutoff %.6f", fc)
	}

	taps := make([]float64, nTaps)

	center := 0.5 * float64(nTaps-1)
	for n := range nTaps {
		t := float64(n) - center
		taps[n] = 2 * fc * sinc(2*fc*t) * kaiserWindow(n, nTaps, p.KaiserBeta)
	}

	var sum float64
	for _, v := range taps {
		sum += v
	}

	if sum == 0 {
		return nil, 0, errors.New("resample: designed zero-sum filter")
	}

	scale := float64(up) / sum
	for i := range taps {
		taps[i] *= scale
	}

	phases := make([][]float64, up)
	maxPhaseLn := 0

	for p := range up {
		phase := make([]float64, 0, (nTaps-p+up-1)/up)
		for i := p; i < nTaps; i += up {
			phase = append(phase, taps[i])
		}

		if len(phase) > maxPhaseLn {
			maxPhaseLn = len(phase)
		}

		phases[p] = phase
	}

	return phases, maxPhaseLn, nil
}

// approximateRatio finds a rational approximation of v using continued
// fractions, keeping the denominator at or below maxDen.
func approximateRatio(v float64, maxDen int) (num, den int) {
	if maxDen <= 0 {
		maxDen = 4096
	}

	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 1, 1
	}

	var (
		h0, h1 = 0, 1
		k0, k1 = 1, 0
		x      = v
	)

	for range 64 {
		a := int(math.Floor(x))

		h2 := a*h1 + h0
		k2 := a*k1 + k0
		if k2 > maxDen {
			break
		}

		h0, h1 = h1, h2
		k0, k1 = k1, k2

		frac := x - math.Floor(x)
		if frac < 1e-12 {
			break
		}

		x = 1 / frac
	}

	if h1 <= 0 || k1 <= 0 {
		return 1, 1
	}

	return h1, k1
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}

	px := math.Pi * x

	return math.Sin(px) / px
}

func kaiserWindow(n, size int, beta float64) float64 {
	if size <= 1 || beta <= 0 {
		return 1
	}

	r := 2*float64(n)/float64(size-1) - 1
	term := math.Sqrt(math.Max(0, 1-r*r))

	return besselI0(beta*term) / besselI0(beta)
}

// besselI0 returns a numerical approximation of the modified Bessel function I0.
func besselI0(x float64) float64 {
	ax := math.Abs(x)
	if ax < 3.75 {
		y := x / 3.75
		y *= y

		return 1.0 + y*(3.5156229+y*(3.0899424+y*(1.2067492+y*(0.2659732+y*(0.0360768+y*0.0045813)))))
	}

	y := 3.75 / ax

	return (math.Exp(ax) / math.Sqrt(ax)) *
		(0.39894228 + y*(0.01328592+y*(0.00225319+y*(-0.00157565+y*(0.00916281+y*(-0.02057706+y*(0.02635537+y*(-0.01647633+y*0.00392377))))))))
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}
