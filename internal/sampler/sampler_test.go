package sampler

import (
	"math"
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-ml/ember/internal/rng"
)

// Harness constants: with a bound multiplier of 3.8 the mean checks hold
// with ~99.99% confidence, so a correct sampler essentially never flakes.
const (
	sampleSize          = 10000
	harnessSeed         = 1701
	meanBoundMultiplier = 3.8
)

func meanBound(std float64, n int) float64 {
	return meanBoundMultiplier * std / math.Sqrt(float64(n))
}

func toFloat64[T ~float32 | ~float64 | ~int32](s []T) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = float64(v)
	}
	return out
}

func sampleMean(t *testing.T, data []float64) float64 {
	t.Helper()
	m, err := stats.Mean(data)
	require.NoError(t, err)
	return m
}

// checkHalfAboveMean verifies roughly half the samples exceed the true mean,
// bounded like a Bernoulli(0.5) sample proportion.
func checkHalfAboveMean(t *testing.T, data []float64, trueMean float64) {
	t.Helper()
	above, below := 0, 0
	for _, v := range data {
		if v > trueMean {
			above++
		} else if v < trueMean {
			below++
		}
	}
	require.Equal(t, len(data), above+below, "continuous draws should never equal the mean exactly")
	pAbove := float64(above) / float64(len(data))
	assert.InDelta(t, 0.5, pAbove, meanBound(0.5, len(data)))
}

func checkGaussian(t *testing.T, mu, sigma float64, data []float64) {
	t.Helper()
	assert.InDelta(t, mu, sampleMean(t, data), meanBound(sigma, len(data)))
	checkHalfAboveMean(t, data, mu)
}

// checkUniform compares bounds in the sample's own precision: rounding to T
// is monotonic, so draws inside [lower, upper] stay inside [T(lower),
// T(upper)] exactly.
func checkUniform[T Float](t *testing.T, lower, upper float64, data []T) {
	t.Helper()
	lo, hi := T(lower), T(upper)
	for i, v := range data {
		require.GreaterOrEqual(t, v, lo, "sample %d below lower bound", i)
		require.LessOrEqual(t, v, hi, "sample %d above upper bound", i)
	}
	f := toFloat64(data)
	trueMean := (lower + upper) / 2
	trueStd := (upper - lower) / math.Sqrt(12)
	assert.InDelta(t, trueMean, sampleMean(t, f), meanBound(trueStd, len(f)))
	checkHalfAboveMean(t, f, trueMean)
}

func checkBernoulli(t *testing.T, p float64, data []int32) {
	t.Helper()
	for i, v := range data {
		require.True(t, v == 0 || v == 1, "sample %d is %d, want 0 or 1", i, v)
	}
	trueStd := math.Sqrt(p * (1 - p))
	assert.InDelta(t, p, sampleMean(t, toFloat64(data)), meanBound(trueStd, len(data)))
}

func gaussianTest[T Float](t *testing.T, mu, sigma float64) {
	e := rng.New(harnessSeed)
	out := make([]T, sampleSize)
	require.NoError(t, FillGaussian(e, mu, sigma, out))
	checkGaussian(t, mu, sigma, toFloat64(out))
}

func TestFillGaussian(t *testing.T) {
	t.Run("float32", func(t *testing.T) { gaussianTest[float32](t, 0, 1) })
	t.Run("float64", func(t *testing.T) { gaussianTest[float64](t, 0, 1) })
}

func TestFillGaussianShifted(t *testing.T) {
	t.Run("float32", func(t *testing.T) { gaussianTest[float32](t, -2, 3) })
	t.Run("float64", func(t *testing.T) { gaussianTest[float64](t, -2, 3) })
}

func uniformTest[T Float](t *testing.T, lower, upper float64) {
	e := rng.New(harnessSeed)
	out := make([]T, sampleSize)
	require.NoError(t, FillUniform(e, lower, upper, out))
	checkUniform(t, lower, upper, out)
}

func TestFillUniform(t *testing.T) {
	t.Run("float32", func(t *testing.T) { uniformTest[float32](t, 0, 1) })
	t.Run("float64", func(t *testing.T) { uniformTest[float64](t, 0, 1) })
}

func TestFillUniformNegativeRange(t *testing.T) {
	// 10000 draws on [-7.3, -2.3]: every sample in range, mean within the
	// computed bound of -4.8.
	t.Run("float32", func(t *testing.T) { uniformTest[float32](t, -7.3, -2.3) })
	t.Run("float64", func(t *testing.T) { uniformTest[float64](t, -7.3, -2.3) })
}

func TestFillUniformStdDev(t *testing.T) {
	e := rng.New(harnessSeed)
	out := make([]float64, sampleSize)
	require.NoError(t, FillUniform(e, -4, 6, out))

	sd, err := stats.StandardDeviation(out)
	require.NoError(t, err)
	trueStd := 10.0 / math.Sqrt(12)
	assert.InEpsilon(t, trueStd, sd, 0.05)
}

func TestFillBernoulli(t *testing.T) {
	for _, p := range []float64{0.3, 0.9} {
		e := rng.New(harnessSeed)
		out := make([]int32, sampleSize)
		require.NoError(t, FillBernoulli(e, p, out))
		checkBernoulli(t, p, out)
	}
}

func TestFillBernoulliDegenerate(t *testing.T) {
	e := rng.New(harnessSeed)
	out := make([]int32, sampleSize)

	require.NoError(t, FillBernoulli(e, 0, out))
	for _, v := range out {
		require.Zero(t, v)
	}

	require.NoError(t, FillBernoulli(e, 1, out))
	for _, v := range out {
		require.Equal(t, int32(1), v)
	}
}

func TestFillUniformUint(t *testing.T) {
	e := rng.New(harnessSeed)
	out := make([]uint32, sampleSize)
	FillUniformUint(e, out)

	// Full-range draws behave as Uniform[0, MaxUint32].
	data := make([]float64, len(out))
	for i, v := range out {
		data[i] = float64(v)
	}
	checkUniform(t, 0, math.MaxUint32, data)
}

func TestGaussianPlusGaussian(t *testing.T) {
	e := rng.New(harnessSeed)
	const mu1, mu2, sigma = -3.0, -2.0, 1.0

	a := make([]float64, sampleSize)
	b := make([]float64, sampleSize)
	require.NoError(t, FillGaussian(e, mu1, sigma, a))
	require.NoError(t, FillGaussian(e, mu2, sigma, b))

	for i := range a {
		a[i] += b[i]
	}

	// Independent Gaussians add: Normal(mu1+mu2, sigma*sqrt(2)).
	checkGaussian(t, mu1+mu2, sigma*math.Sqrt2, a)
}

func TestUniformPlusUniform(t *testing.T) {
	e := rng.New(harnessSeed)

	a := make([]float64, sampleSize)
	b := make([]float64, sampleSize)
	require.NoError(t, FillUniform(e, -4, -2, a))
	require.NoError(t, FillUniform(e, -3, -1, b))

	for i := range a {
		a[i] += b[i]
	}

	// The sum is not uniform, but it can never leave [-7, -3].
	for i, v := range a {
		require.GreaterOrEqual(t, v, -7.0, "sum %d below combined lower bound", i)
		require.LessOrEqual(t, v, -3.0, "sum %d above combined upper bound", i)
	}
	trueMean := (-7.0 + -3.0) / 2
	assert.InDelta(t, trueMean, sampleMean(t, a), meanBound(2/math.Sqrt(12), sampleSize)*math.Sqrt2)
}

func TestGaussianTimesBernoulli(t *testing.T) {
	e := rng.New(harnessSeed)

	gauss := make([]float64, sampleSize)
	mask := make([]int32, sampleSize)
	require.NoError(t, FillGaussian(e, 0, 1, gauss))
	require.NoError(t, FillBernoulli(e, 0.3, mask))

	for i := range gauss {
		gauss[i] *= float64(mask[i])
	}

	pos, neg := 0, 0
	for i, v := range gauss {
		if v == 0 {
			require.Zero(t, mask[i], "zero product must come from a zero mask entry")
			continue
		}
		require.Equal(t, int32(1), mask[i])
		if v > 0 {
			pos++
		} else {
			neg++
		}
	}

	// Surviving entries keep a balanced sign split.
	nonZero := pos + neg
	pPos := float64(pos) / float64(nonZero)
	assert.InDelta(t, 0.5, pPos, meanBound(0.5, nonZero))
}

func TestUniformTimesBernoulli(t *testing.T) {
	e := rng.New(harnessSeed)

	uni := make([]float64, sampleSize)
	mask := make([]int32, sampleSize)
	require.NoError(t, FillUniform(e, -1, 1, uni))
	require.NoError(t, FillBernoulli(e, 0.3, mask))

	for i := range uni {
		uni[i] *= float64(mask[i])
	}

	pos, neg := 0, 0
	for i, v := range uni {
		if v == 0 {
			require.Zero(t, mask[i])
			continue
		}
		require.Equal(t, int32(1), mask[i])
		if v > 0 {
			pos++
		} else {
			neg++
		}
	}

	nonZero := pos + neg
	pPos := float64(pos) / float64(nonZero)
	assert.InDelta(t, 0.5, pPos, meanBound(0.5, nonZero))
}

func TestBernoulliTimesBernoulli(t *testing.T) {
	e := rng.New(harnessSeed)
	const pa, pb = 0.5, 0.3

	a := make([]int32, sampleSize)
	b := make([]int32, sampleSize)
	require.NoError(t, FillBernoulli(e, pa, a))
	require.NoError(t, FillBernoulli(e, pb, b))

	for i := range a {
		a[i] *= b[i]
	}

	// The product is Bernoulli(pa*pb).
	checkBernoulli(t, pa*pb, a)
}

func TestSeededFillsAreReproducible(t *testing.T) {
	run := func() ([]float64, []float64, []int32) {
		e := rng.New(harnessSeed)
		g := make([]float64, sampleSize)
		u := make([]float64, sampleSize)
		m := make([]int32, sampleSize)
		require.NoError(t, FillGaussian(e, 0, 1, g))
		require.NoError(t, FillUniform(e, -1, 1, u))
		require.NoError(t, FillBernoulli(e, 0.5, m))
		return g, u, m
	}

	g1, u1, m1 := run()
	g2, u2, m2 := run()

	assert.Equal(t, g1, g2)
	assert.Equal(t, u1, u2)
	assert.Equal(t, m1, m2)
}

func TestSigmaZeroDegeneratesToConstant(t *testing.T) {
	e := rng.New(harnessSeed)
	out := make([]float32, 100)
	require.NoError(t, FillGaussian(e, 2.5, 0, out))
	for _, v := range out {
		require.Equal(t, float32(2.5), v)
	}
}

func TestEqualBoundsDegenerateToConstant(t *testing.T) {
	e := rng.New(harnessSeed)
	out := make([]float64, 100)
	require.NoError(t, FillUniform(e, -1.5, -1.5, out))
	for _, v := range out {
		require.Equal(t, -1.5, v)
	}
}

func TestInvalidArguments(t *testing.T) {
	e := rng.New(harnessSeed)
	f := make([]float64, 10)
	m := make([]int32, 10)

	assert.Error(t, FillGaussian(e, 0, -1, f))
	assert.Error(t, FillUniform(e, 1, -1, f), "bounds must not be silently swapped")
	assert.Error(t, FillBernoulli(e, -0.1, m))
	assert.Error(t, FillBernoulli(e, 1.1, m))
}

func TestFillEmptyOutput(t *testing.T) {
	e := rng.New(harnessSeed)
	assert.NoError(t, FillGaussian(e, 0, 1, []float32{}))
	assert.NoError(t, FillUniform(e, 0, 1, []float64{}))
	assert.NoError(t, FillBernoulli(e, 0.5, []int32{}))
	FillUniformUint(e, nil)
}
