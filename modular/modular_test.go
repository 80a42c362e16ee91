package modular_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/MouseCreator/Long-arithmetic-system/errs"
	"github.com/MouseCreator/Long-arithmetic-system/modular"
	"github.com/MouseCreator/Long-arithmetic-system/num"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	params = modular.ParametersLiteral{
		PollardIterations: 1 << 16,
		PollardRestarts:   8,
		SmallFactorBound:  1 << 12,
		BSGSLimit:         1 << 22,
		PrimalityRounds:   32,
		Seed:              []byte("modular-test"),
	}.Compile()

	ctx = context.Background()
)

func bigs(xs ...int64) []*big.Int {
	out := make([]*big.Int, len(xs))
	for i, x := range xs {
		out[i] = big.NewInt(x)
	}
	return out
}

func strs(xs []*big.Int) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = x.String()
	}
	return out
}

func mustZn(t *testing.T, m int64) *modular.Zn {
	z, err := modular.NewZn(big.NewInt(m), params)
	require.NoError(t, err)
	return z
}

func TestParameters(t *testing.T) {
	assert.NotPanics(t, func() { modular.DefaultParameters() })
	assert.Panics(t, func() { modular.ParametersLiteral{}.Compile() })

	p := modular.DefaultParameters()
	assert.Equal(t, 1<<16, p.PollardIterations())
	assert.Equal(t, 1<<22, p.BSGSLimit())
	assert.Nil(t, p.Seed())
}

func TestZn(t *testing.T) {
	t.Run("InvalidModulus", func(t *testing.T) {
		for _, m := range []int64{1, 0, -7} {
			_, err := modular.NewZn(big.NewInt(m), params)
			assert.True(t, errs.Is(err, errs.InvalidModulus), "m = %d", m)
		}
	})

	t.Run("Arithmetic", func(t *testing.T) {
		z := mustZn(t, 11)
		assert.Equal(t, "1", z.Add(big.NewInt(7), big.NewInt(5)).String())
		assert.Equal(t, "9", z.Sub(big.NewInt(3), big.NewInt(5)).String())
		assert.Equal(t, "2", z.Mul(big.NewInt(-3), big.NewInt(3)).String())
		assert.Equal(t, "4", z.Neg(big.NewInt(7)).String())
		assert.Equal(t, "2", z.Reduce(big.NewInt(-1000000000000000008)).String())
	})

	t.Run("Inverse", func(t *testing.T) {
		z := mustZn(t, 7)
		inv, err := z.Inverse(big.NewInt(3))
		require.NoError(t, err)
		assert.Equal(t, "5", inv.String())

		_, err = mustZn(t, 9).Inverse(big.NewInt(6))
		assert.True(t, errs.Is(err, errs.NotInvertible))

		_, err = z.Div(big.NewInt(1), big.NewInt(14))
		assert.True(t, errs.Is(err, errs.NotInvertible))

		q, err := z.Div(big.NewInt(6), big.NewInt(3))
		require.NoError(t, err)
		assert.Equal(t, "2", q.String())

		for _, m := range []string{"18446744073709551557", "170141183460469231731687303715884105727"} {
			mb, _ := big.NewInt(0).SetString(m, 10)
			zm, err := modular.NewZn(mb, params)
			require.NoError(t, err)

			inv, err := zm.Inverse(big.NewInt(-3))
			require.NoError(t, err)
			assert.Equal(t, "1", zm.Mul(inv, big.NewInt(-3)).String(), m)

			_, err = zm.Inverse(mb)
			assert.True(t, errs.Is(err, errs.NotInvertible), m)
		}

		zw, err := modular.NewZn(big.NewInt(0).SetUint64(18446744073709551557), params)
		require.NoError(t, err)
		inv, err = zw.Inverse(big.NewInt(3))
		require.NoError(t, err)
		assert.Equal(t, "6148914691236517186", inv.String())
	})

	t.Run("Exp", func(t *testing.T) {
		z := mustZn(t, 7)
		x, err := z.Exp(big.NewInt(3), big.NewInt(0))
		require.NoError(t, err)
		assert.Equal(t, "1", x.String())

		x, err = z.Exp(big.NewInt(3), big.NewInt(-1))
		require.NoError(t, err)
		assert.Equal(t, "5", x.String())

		_, err = mustZn(t, 8).Exp(big.NewInt(2), big.NewInt(-1))
		assert.True(t, errs.Is(err, errs.NotInvertible))

		m, _ := big.NewInt(0).SetString("170141183460469231731687303715884105727", 10)
		zm, err := modular.NewZn(m, params)
		require.NoError(t, err)
		e := big.NewInt(0).Sub(m, big.NewInt(1))
		x, err = zm.Exp(big.NewInt(123456789), e)
		require.NoError(t, err)
		assert.Equal(t, "1", x.String())
	})
}

func TestZnLaws(t *testing.T) {
	big127, _ := big.NewInt(0).SetString("170141183460469231731687303715884105727", 10)
	for _, m := range []*big.Int{big.NewInt(1000003), big.NewInt(36), big127} {
		z, err := modular.NewZn(m, params)
		require.NoError(t, err)

		parameters := gopter.DefaultTestParameters()
		properties := gopter.NewProperties(parameters)

		properties.Property("addition is associative", prop.ForAll(
			func(a, b, c int64) bool {
				x, y, w := big.NewInt(a), big.NewInt(b), big.NewInt(c)
				return z.Add(z.Add(x, y), w).Cmp(z.Add(x, z.Add(y, w))) == 0
			},
			gen.Int64(), gen.Int64(), gen.Int64(),
		))

		properties.Property("multiplication is associative", prop.ForAll(
			func(a, b, c int64) bool {
				x, y, w := big.NewInt(a), big.NewInt(b), big.NewInt(c)
				return z.Mul(z.Mul(x, y), w).Cmp(z.Mul(x, z.Mul(y, w))) == 0
			},
			gen.Int64(), gen.Int64(), gen.Int64(),
		))

		properties.Property("addition agrees with integers", prop.ForAll(
			func(a, b int64) bool {
				want := big.NewInt(0).Add(big.NewInt(a), big.NewInt(b))
				want.Mod(want, m)
				return z.Add(big.NewInt(a), big.NewInt(b)).Cmp(want) == 0
			},
			gen.Int64(), gen.Int64(),
		))

		properties.TestingRun(t)
	}
}

func TestFactorize(t *testing.T) {
	tk := modular.NewToolkit(params)
	factorizers := map[string]modular.Factorizer{
		"Naive":   modular.NewNaiveFactorizer(),
		"Pollard": modular.NewPollardFactorizer(tk),
	}

	for name, f := range factorizers {
		t.Run(name, func(t *testing.T) {
			fs, err := f.Factorize(ctx, big.NewInt(60))
			require.NoError(t, err)
			assert.Equal(t, bigs(2, 2, 3, 5), fs)

			fs, err = f.Factorize(ctx, big.NewInt(1))
			require.NoError(t, err)
			assert.Empty(t, fs)

			fs, err = f.Factorize(ctx, big.NewInt(97))
			require.NoError(t, err)
			assert.Equal(t, bigs(97), fs)

			fs, err = f.Factorize(ctx, big.NewInt(1000003*1000033))
			require.NoError(t, err)
			assert.Equal(t, bigs(1000003, 1000033), fs)

			_, err = f.Factorize(ctx, big.NewInt(0))
			assert.True(t, errs.Is(err, errs.InvalidArgument))
			_, err = f.Factorize(ctx, big.NewInt(-6))
			assert.True(t, errs.Is(err, errs.InvalidArgument))
		})
	}

	t.Run("PollardLarge", func(t *testing.T) {
		// (2^61 - 1) * (2^31 - 1)^2 * 4099
		n, _ := big.NewInt(0).SetString("2305843009213693951", 10)
		m31 := big.NewInt(2147483647)
		n.Mul(n, m31)
		n.Mul(n, m31)
		n.Mul(n, big.NewInt(4099))

		fs, err := tk.Factorize(ctx, n)
		require.NoError(t, err)
		assert.Equal(t, []string{"4099", "2147483647", "2147483647", "2305843009213693951"}, strs(fs))
	})

	t.Run("Cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := tk.Factorize(cctx, big.NewInt(1000003*1000033))
		assert.True(t, errs.Is(err, errs.Timeout))
	})

	t.Run("Property", func(t *testing.T) {
		gp := gopter.DefaultTestParameters()
		gp.MinSuccessfulTests = 100
		properties := gopter.NewProperties(gp)

		properties.Property("product of prime factors", prop.ForAll(
			func(n uint64) bool {
				x := big.NewInt(0).SetUint64(n)
				fs, err := tk.Factorize(ctx, x)
				if err != nil {
					return false
				}
				prod := big.NewInt(1)
				for i, f := range fs {
					if ok, _ := tk.IsPrime(f, 20); !ok {
						return false
					}
					if i > 0 && fs[i-1].Cmp(f) > 0 {
						return false
					}
					prod.Mul(prod, f)
				}
				return prod.Cmp(x) == 0
			},
			gen.UInt64Range(1, 1<<48),
		))

		properties.TestingRun(t)
	})
}

func TestIsPrime(t *testing.T) {
	tk := modular.NewToolkit(params)

	for _, tc := range []struct {
		n     string
		prime bool
	}{
		{"0", false},
		{"1", false},
		{"2", true},
		{"4", false},
		{"91", false},
		{"97", true},
		{"561", false},
		{"4099", true},
		{"1000036000099", false},
		{"18446744073709551557", true},
		{"170141183460469231731687303715884105727", true},
		{"340282366920938463463374607431768211457", false},
	} {
		n, _ := big.NewInt(0).SetString(tc.n, 10)
		ok, err := tk.IsPrime(n, 10)
		require.NoError(t, err)
		assert.Equal(t, tc.prime, ok, tc.n)
	}

	_, err := tk.IsPrime(big.NewInt(97), 0)
	assert.True(t, errs.Is(err, errs.InvalidArgument))

	t.Run("Sieve", func(t *testing.T) {
		sieve := num.NewSieve(1000000)
		gp := gopter.DefaultTestParameters()
		gp.MinSuccessfulTests = 500
		properties := gopter.NewProperties(gp)

		properties.Property("agrees with trial division", prop.ForAll(
			func(n uint64, iterations int) bool {
				ok, err := tk.IsPrime(big.NewInt(0).SetUint64(n), iterations)
				return err == nil && ok == sieve.IsPrime(uint(n))
			},
			gen.UInt64Range(0, 1000000-1),
			gen.IntRange(1, 40),
		))

		properties.TestingRun(t)
	})
}

func TestTotient(t *testing.T) {
	tk := modular.NewToolkit(params)

	for _, tc := range []struct {
		n, phi, lambda int64
	}{
		{1, 1, 1},
		{2, 1, 1},
		{4, 2, 2},
		{8, 4, 2},
		{15, 8, 4},
		{36, 12, 6},
		{97, 96, 96},
		{561, 320, 80},
		{1024, 512, 256},
	} {
		phi, err := tk.Euler(ctx, big.NewInt(tc.n))
		require.NoError(t, err)
		assert.Equal(t, tc.phi, phi.Int64(), "phi(%d)", tc.n)

		lambda, err := tk.Carmichael(ctx, big.NewInt(tc.n))
		require.NoError(t, err)
		assert.Equal(t, tc.lambda, lambda.Int64(), "lambda(%d)", tc.n)
	}

	_, err := tk.Euler(ctx, big.NewInt(0))
	assert.True(t, errs.Is(err, errs.InvalidArgument))
	_, err = tk.Carmichael(ctx, big.NewInt(-3))
	assert.True(t, errs.Is(err, errs.InvalidArgument))
}

func TestSqrt(t *testing.T) {
	for _, tc := range []struct {
		n, p  int64
		roots []int64
	}{
		{2, 7, []int64{3, 4}},
		{10, 13, []int64{6, 7}},
		{2, 17, []int64{6, 11}},
		{0, 13, []int64{0}},
		{26, 13, []int64{0}},
		{1, 2, []int64{1}},
		{-1, 5, []int64{2, 3}},
	} {
		roots, err := mustZn(t, tc.p).Sqrt(big.NewInt(tc.n))
		require.NoError(t, err)
		assert.Equal(t, strs(bigs(tc.roots...)), strs(roots), "sqrt(%d) mod %d", tc.n, tc.p)
	}

	_, err := mustZn(t, 7).Sqrt(big.NewInt(3))
	assert.True(t, errs.Is(err, errs.NoSolution))

	_, err = mustZn(t, 15).Sqrt(big.NewInt(4))
	assert.True(t, errs.Is(err, errs.InvalidModulus))

	t.Run("Property", func(t *testing.T) {
		// 998244353 - 1 = 2^23 * 7 * 17 exercises Tonelli-Shanks deeply.
		for _, p := range []int64{998244353, 1000003} {
			z := mustZn(t, p)
			gp := gopter.DefaultTestParameters()
			properties := gopter.NewProperties(gp)

			properties.Property("roots of squares", prop.ForAll(
				func(a int64) bool {
					x := big.NewInt(a)
					roots, err := z.Sqrt(z.Mul(x, x))
					if err != nil || len(roots) != 2 {
						return false
					}
					neg := z.Neg(x)
					return (roots[0].Cmp(x) == 0 && roots[1].Cmp(neg) == 0) ||
						(roots[0].Cmp(neg) == 0 && roots[1].Cmp(x) == 0)
				},
				gen.Int64Range(1, p-1),
			))

			properties.TestingRun(t)
		}
	})
}

func TestLog(t *testing.T) {
	t.Run("Prime", func(t *testing.T) {
		z := mustZn(t, 7)
		x, err := z.Log(ctx, big.NewInt(4), big.NewInt(2))
		require.NoError(t, err)
		assert.Equal(t, "2", x.String())

		x, err = z.Log(ctx, big.NewInt(1), big.NewInt(3))
		require.NoError(t, err)
		assert.Equal(t, "0", x.String())

		_, err = z.Log(ctx, big.NewInt(3), big.NewInt(2))
		assert.True(t, errs.Is(err, errs.NoSolution))

		_, err = z.Log(ctx, big.NewInt(3), big.NewInt(0))
		assert.True(t, errs.Is(err, errs.NotInvertible))
	})

	t.Run("Composite", func(t *testing.T) {
		z := mustZn(t, 15)
		x, err := z.Log(ctx, big.NewInt(8), big.NewInt(2))
		require.NoError(t, err)
		assert.Equal(t, "3", x.String())

		_, err = z.Log(ctx, big.NewInt(2), big.NewInt(4))
		assert.True(t, errs.Is(err, errs.NoSolution))

		_, err = z.Log(ctx, big.NewInt(2), big.NewInt(3))
		assert.True(t, errs.Is(err, errs.NotInvertible))
	})

	t.Run("Property", func(t *testing.T) {
		// 3 generates the units modulo 998244353.
		z := mustZn(t, 998244353)
		base := big.NewInt(3)
		gp := gopter.DefaultTestParameters()
		gp.MinSuccessfulTests = 50
		properties := gopter.NewProperties(gp)

		properties.Property("log inverts exp", prop.ForAll(
			func(e int64) bool {
				y, err := z.Exp(base, big.NewInt(e))
				if err != nil {
					return false
				}
				x, err := z.Log(ctx, y, base)
				return err == nil && x.Int64() == e
			},
			gen.Int64Range(0, 998244351),
		))

		properties.Property("log is smallest in a subgroup", prop.ForAll(
			func(e int64) bool {
				// 3^(7*17) has order 2^23.
				b := mustExp(z, base, 7*17)
				y := mustExp(z, b, e)
				x, err := z.Log(ctx, y, b)
				return err == nil && x.Int64() == e%(1<<23)
			},
			gen.Int64Range(0, 1<<30),
		))

		properties.TestingRun(t)
	})
}

func mustExp(z *modular.Zn, x *big.Int, e int64) *big.Int {
	y, err := z.Exp(x, big.NewInt(e))
	if err != nil {
		panic(err)
	}
	return y
}

func TestGenerator(t *testing.T) {
	z := mustZn(t, 7)

	for g, want := range map[int64]bool{0: false, 1: false, 2: false, 3: true, 5: true, 6: false} {
		ok, err := z.IsGenerator(ctx, big.NewInt(g))
		require.NoError(t, err)
		assert.Equal(t, want, ok, "g = %d", g)
	}

	_, err := mustZn(t, 15).IsGenerator(ctx, big.NewInt(2))
	assert.True(t, errs.Is(err, errs.InvalidModulus))

	t.Run("Order", func(t *testing.T) {
		o, err := z.Order(ctx, big.NewInt(2))
		require.NoError(t, err)
		assert.Equal(t, "3", o.String())

		o, err = mustZn(t, 15).Order(ctx, big.NewInt(2))
		require.NoError(t, err)
		assert.Equal(t, "4", o.String())

		_, err = mustZn(t, 15).Order(ctx, big.NewInt(5))
		assert.True(t, errs.Is(err, errs.NotInvertible))
	})
}

func TestJacobi(t *testing.T) {
	j, err := modular.Jacobi(big.NewInt(2), big.NewInt(15))
	require.NoError(t, err)
	assert.Equal(t, 1, j)

	j, err = modular.Jacobi(big.NewInt(-1), big.NewInt(7))
	require.NoError(t, err)
	assert.Equal(t, -1, j)

	_, err = modular.Jacobi(big.NewInt(2), big.NewInt(8))
	assert.True(t, errs.Is(err, errs.InvalidArgument))
}

func TestRandomPrime(t *testing.T) {
	tk := modular.NewToolkit(params)

	for i := 0; i < 20; i++ {
		p, err := tk.RandomPrime(ctx, big.NewInt(100), big.NewInt(200))
		require.NoError(t, err)
		assert.True(t, p.Cmp(big.NewInt(100)) >= 0 && p.Cmp(big.NewInt(200)) <= 0)
		ok, _ := tk.IsPrime(p, 20)
		assert.True(t, ok, p.String())
	}

	p, err := tk.RandomPrime(ctx, big.NewInt(-5), big.NewInt(2))
	require.NoError(t, err)
	assert.Equal(t, "2", p.String())

	_, err = tk.RandomPrime(ctx, big.NewInt(24), big.NewInt(28))
	assert.True(t, errs.Is(err, errs.NoSolution))

	_, err = tk.RandomPrime(ctx, big.NewInt(10), big.NewInt(5))
	assert.True(t, errs.Is(err, errs.InvalidArgument))
}
