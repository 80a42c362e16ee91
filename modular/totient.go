package modular

import (
	"context"
	"math/big"

	"github.com/MouseCreator/Long-arithmetic-system/errs"
)

// Euler returns Euler's totient φ(n) for n >= 1.
func (t *Toolkit) Euler(ctx context.Context, n *big.Int) (*big.Int, error) {
	if n.Sign() <= 0 {
		return nil, errs.New(errs.InvalidArgument, "totient is defined for positive integers, got %v", n)
	}

	factors, err := t.Factorize(ctx, n)
	if err != nil {
		return nil, errs.Note(err, "cannot compute totient of %v", n)
	}

	phi := big.NewInt(1)
	primes, exps := primePowers(factors)
	for i, p := range primes {
		phi.Mul(phi, primePowerTotient(p, exps[i]))
	}
	return phi, nil
}

// Carmichael returns the Carmichael function λ(n) for n >= 1,
// the exponent of the multiplicative group modulo n.
func (t *Toolkit) Carmichael(ctx context.Context, n *big.Int) (*big.Int, error) {
	if n.Sign() <= 0 {
		return nil, errs.New(errs.InvalidArgument, "carmichael function is defined for positive integers, got %v", n)
	}

	factors, err := t.Factorize(ctx, n)
	if err != nil {
		return nil, errs.Note(err, "cannot compute carmichael function of %v", n)
	}

	lambda := big.NewInt(1)
	primes, exps := primePowers(factors)
	for i, p := range primes {
		var l *big.Int
		switch {
		case p.Cmp(bigTwo) == 0 && exps[i] >= 3:
			l = big.NewInt(0).Lsh(bigOne, uint(exps[i]-2))
		default:
			l = primePowerTotient(p, exps[i])
		}
		lambda = lcm(lambda, l)
	}
	return lambda, nil
}

// primePowerTotient returns φ(p^k) = p^(k-1) * (p-1).
func primePowerTotient(p *big.Int, k int) *big.Int {
	phi := big.NewInt(0).Exp(p, big.NewInt(int64(k-1)), nil)
	return phi.Mul(phi, big.NewInt(0).Sub(p, bigOne))
}

func lcm(a, b *big.Int) *big.Int {
	g := big.NewInt(0).GCD(nil, nil, a, b)
	l := big.NewInt(0).Quo(a, g)
	return l.Mul(l, b)
}
