package calc_test

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/MouseCreator/Long-arithmetic-system/calc"
	"github.com/MouseCreator/Long-arithmetic-system/errs"
	"github.com/MouseCreator/Long-arithmetic-system/modular"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func newCalculator() *calc.Calculator {
	opts := calc.DefaultOptions()
	opts.Parameters = modular.ParametersLiteral{
		PollardIterations: 1 << 12,
		PollardRestarts:   4,
		SmallFactorBound:  1 << 10,
		BSGSLimit:         1 << 16,
		PrimalityRounds:   16,
		Seed:              []byte("calc-test"),
	}.Compile()
	return calc.New(opts)
}

func TestScenarios(t *testing.T) {
	c := newCalculator()

	t.Run("Add", func(t *testing.T) {
		v, err := c.Add(ctx, "7", "5", "11")
		require.NoError(t, err)
		assert.Equal(t, "1", v)
	})

	t.Run("Inverse", func(t *testing.T) {
		v, err := c.Inverse(ctx, "3", "7")
		require.NoError(t, err)
		assert.Equal(t, "5", v)
	})

	t.Run("FactorizeSimple", func(t *testing.T) {
		v, err := c.FactorizeSimple(ctx, "60", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"2", "2", "3", "5"}, v)
	})

	t.Run("PolyAdd", func(t *testing.T) {
		v, err := c.PolyAdd(ctx, "x+1", "x+2", "3")
		require.NoError(t, err)
		assert.Equal(t, "2x", v)
	})

	t.Run("IsPrime", func(t *testing.T) {
		ok, err := c.IsPrime(ctx, "97", "", "10")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = c.IsPrime(ctx, "91", "", "10")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("DiscreteLog", func(t *testing.T) {
		v, err := c.DiscreteLog(ctx, "4", "2", "7")
		require.NoError(t, err)
		assert.Equal(t, "2", v)
	})
}

func TestFinite(t *testing.T) {
	c := newCalculator()

	for _, tc := range []struct {
		name string
		call func() (string, error)
		want string
	}{
		{"Sub", func() (string, error) { return c.Sub(ctx, "3", "5", "11") }, "9"},
		{"Mul", func() (string, error) { return c.Mul(ctx, "-3", "5", "11") }, "7"},
		{"Div", func() (string, error) { return c.Div(ctx, "1", "3", "7") }, "5"},
		{"FastPow", func() (string, error) { return c.FastPow(ctx, "2", "100", "1000000007") }, "976371285"},
		{"Euler", func() (string, error) { return c.EulerFunction(ctx, "36", "") }, "12"},
		{"Carmichael", func() (string, error) { return c.CarmichaelFunction(ctx, "36", "") }, "6"},
		{"Evaluate", func() (string, error) { return c.Evaluate(ctx, "inv(3) + 2^3", "7") }, "6"},
		{"EvaluateIntegers", func() (string, error) { return c.Evaluate(ctx, "(1+2)*-3", "0") }, "-9"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			v, err := tc.call()
			require.NoError(t, err)
			assert.Equal(t, tc.want, v)
		})
	}

	t.Run("Pollard", func(t *testing.T) {
		v, err := c.FactorizePollard(ctx, "1000036000099", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"1000003", "1000033"}, v)
	})

	t.Run("DiscreteSqrt", func(t *testing.T) {
		v, err := c.DiscreteSqrt(ctx, "2", "7")
		require.NoError(t, err)
		assert.Equal(t, []string{"3", "4"}, v)
	})

	t.Run("IsGenerator", func(t *testing.T) {
		ok, err := c.IsGenerator(ctx, "3", "7")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = c.IsGenerator(ctx, "2", "7")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Order", func(t *testing.T) {
		v, err := c.Order(ctx, "2", "7")
		require.NoError(t, err)
		assert.Equal(t, "3", v)

		v, err = c.Order(ctx, "-1", "15")
		require.NoError(t, err)
		assert.Equal(t, "2", v)
	})

	t.Run("RandomPrime", func(t *testing.T) {
		v, err := c.RandomPrime(ctx, "90", "100")
		require.NoError(t, err)
		assert.Equal(t, "97", v)
	})

	t.Run("Errors", func(t *testing.T) {
		for _, tc := range []struct {
			name string
			call func() error
			kind errs.Kind
		}{
			{"BadOperand", func() error { _, err := c.Add(ctx, "1x", "1", "7"); return err }, errs.Parse},
			{"BadModulus", func() error { _, err := c.Add(ctx, "1", "1", "1"); return err }, errs.InvalidModulus},
			{"BadPlaceholder", func() error { _, err := c.FactorizeSimple(ctx, "60", "abc"); return err }, errs.Parse},
			{"NotInvertible", func() error { _, err := c.Inverse(ctx, "2", "4"); return err }, errs.NotInvertible},
			{"DivNotInvertible", func() error { _, err := c.Div(ctx, "1", "0", "7"); return err }, errs.NotInvertible},
			{"NoSqrt", func() error { _, err := c.DiscreteSqrt(ctx, "3", "7"); return err }, errs.NoSolution},
			{"NoLog", func() error { _, err := c.DiscreteLog(ctx, "3", "2", "7"); return err }, errs.NoSolution},
			{"OrderNotUnit", func() error { _, err := c.Order(ctx, "6", "15"); return err }, errs.NotInvertible},
			{"GeneratorComposite", func() error { _, err := c.IsGenerator(ctx, "2", "15"); return err }, errs.InvalidModulus},
			{"ZeroIterations", func() error { _, err := c.IsPrime(ctx, "97", "", "0"); return err }, errs.InvalidArgument},
			{"FactorZero", func() error { _, err := c.FactorizePollard(ctx, "0", ""); return err }, errs.InvalidArgument},
		} {
			t.Run(tc.name, func(t *testing.T) {
				assert.True(t, errs.Is(tc.call(), tc.kind))
			})
		}
	})

	gp := gopter.DefaultTestParameters()
	gp.MinSuccessfulTests = 50
	properties := gopter.NewProperties(gp)

	properties.Property("a * inverse(a) = 1", prop.ForAll(
		func(a int64) bool {
			s := big.NewInt(a).String()
			inv, err := c.Inverse(ctx, s, "998244353")
			if err != nil {
				return false
			}
			one, err := c.Mul(ctx, s, inv, "998244353")
			return err == nil && one == "1"
		},
		gen.Int64Range(1, 998244352),
	))

	properties.Property("fastPow(discreteLog(n)) = n", prop.ForAll(
		func(x int64) bool {
			n, err := c.FastPow(ctx, "3", big.NewInt(x).String(), "1000003")
			if err != nil {
				return false
			}
			l, err := c.DiscreteLog(ctx, n, "3", "1000003")
			if err != nil {
				return false
			}
			back, err := c.FastPow(ctx, "3", l, "1000003")
			return err == nil && back == n
		},
		gen.Int64Range(0, 1000001),
	))

	properties.TestingRun(t)
}

func TestPolynomials(t *testing.T) {
	c := newCalculator()

	terms, err := c.PolyParse(ctx, "3x^2+2x-1")
	require.NoError(t, err)
	require.Len(t, terms, 3)
	for i, want := range []struct {
		degree int
		coeff  string
	}{{2, "3"}, {1, "2"}, {0, "-1"}} {
		assert.Equal(t, want.degree, terms[i].Degree)
		assert.Equal(t, want.coeff, terms[i].Coeff.String())
	}

	for _, tc := range []struct {
		name string
		call func() (string, error)
		want string
	}{
		{"Sub", func() (string, error) { return c.PolySub(ctx, "x", "x^2+1", "5") }, "4x^2+x+4"},
		{"Mul", func() (string, error) { return c.PolyMul(ctx, "x+1", "x-1", "5") }, "x^2+4"},
		{"Div", func() (string, error) { return c.PolyDiv(ctx, "x^3+2x+1", "x+1", "5") }, "x^2+4x+3"},
		{"Rest", func() (string, error) { return c.PolyRest(ctx, "x^3+2x+1", "x+1", "5") }, "3"},
		{"GCD", func() (string, error) { return c.PolyGCD(ctx, "x^2-1", "x^2+2x+1", "7") }, "x+1"},
		{"Derivative", func() (string, error) { return c.PolyDerivative(ctx, "3x^3+x", "5") }, "4x^2+1"},
		{"Evaluate", func() (string, error) { return c.PolyEvaluate(ctx, "x^2+1", "7", "3") }, "3"},
		{"Cyclotomic", func() (string, error) { return c.Cyclotomic(ctx, "12", "7") }, "x^4+6x^2+1"},
		{"FieldAdd", func() (string, error) { return c.FieldAdd(ctx, "x+2", "x+2", "x^2+1", "3") }, "2x+1"},
		{"FieldSub", func() (string, error) { return c.FieldSub(ctx, "x", "x+1", "x^2+1", "3") }, "2"},
		{"FieldMul", func() (string, error) { return c.FieldMul(ctx, "x+1", "x+1", "x^2+1", "3") }, "2x"},
		{"FieldDiv", func() (string, error) { return c.FieldDiv(ctx, "1", "x", "x^2+1", "3") }, "2x"},
		{"FieldInverse", func() (string, error) { return c.FieldInverse(ctx, "x^6+x^4+x+1", "x^8+x^4+x^3+x+1", "2") }, "x^7+x^6+x^3+x"},
		{"FieldPow", func() (string, error) { return c.FieldPow(ctx, "x+1", "4", "x^2+1", "3") }, "2"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			v, err := tc.call()
			require.NoError(t, err)
			assert.Equal(t, tc.want, v)
		})
	}

	ok, err := c.FieldIsIrreducible(ctx, "x^8+x^4+x^3+x+1", "2")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.FieldIsIrreducible(ctx, "x^2+1", "5")
	require.NoError(t, err)
	assert.False(t, ok)

	t.Run("Errors", func(t *testing.T) {
		_, err := c.PolyParse(ctx, "x+2y")
		assert.True(t, errs.Is(err, errs.Parse))

		_, err = c.PolyAdd(ctx, "x+", "1", "3")
		assert.True(t, errs.Is(err, errs.Parse))

		_, err = c.PolyDiv(ctx, "x^2", "2x+1", "6")
		assert.True(t, errs.Is(err, errs.NotInvertible))

		_, err = c.PolyRest(ctx, "x^2", "0", "7")
		assert.True(t, errs.Is(err, errs.DivisionByZero))

		_, err = c.Cyclotomic(ctx, "0", "7")
		assert.True(t, errs.Is(err, errs.InvalidArgument))

		_, err = c.FieldAdd(ctx, "x", "1", "x^2+1", "4")
		assert.True(t, errs.Is(err, errs.InvalidModulus))

		_, err = c.FieldInverse(ctx, "x+2", "x^2+1", "5")
		assert.True(t, errs.Is(err, errs.NotInvertible))
		assert.Contains(t, err.Error(), "reducible")
	})
}

func TestRun(t *testing.T) {
	v, err := calc.Run(ctx, time.Second, func(ctx context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	_, err = calc.Run(ctx, 10*time.Millisecond, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, errs.Check(ctx)
	})
	assert.True(t, errs.Is(err, errs.Timeout))
	assert.Equal(t, "operation timed out", err.Error())

	_, err = calc.Run(ctx, 0, func(ctx context.Context) (int, error) {
		panic("boom")
	})
	require.Error(t, err)

	failure := errors.New("plain")
	_, err = calc.Run(ctx, time.Second, func(ctx context.Context) (int, error) {
		return 0, failure
	})
	assert.Equal(t, failure, err)

	t.Run("Deadline", func(t *testing.T) {
		opts := calc.DefaultOptions()
		opts.Timeout = time.Nanosecond
		c := calc.New(opts)
		_, err := c.FactorizeSimple(ctx, "1000000000000000000000000000000000000000000000000000000000007", "")
		assert.True(t, errs.Is(err, errs.Timeout))
	})
}

func TestResponse(t *testing.T) {
	b, err := json.Marshal(calc.NewResponse("1", nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":"1"}`, string(b))

	_, ierr := newCalculator().Inverse(ctx, "2", "4")
	b, err = json.Marshal(calc.NewResponse(nil, ierr))
	require.NoError(t, err)

	var resp calc.Response
	require.NoError(t, json.Unmarshal(b, &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "NotInvertibleError", resp.Kind)
	assert.NotEmpty(t, resp.Error)
}
