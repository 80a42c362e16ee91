// Package csprng provides the deterministic, seedable randomness behind
// probabilistic algorithms such as Miller-Rabin witnesses and Pollard's rho seeds.
package csprng

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"math/big"

	"golang.org/x/crypto/blake2b"
)

// seedSize is the size of the seeds drawn from crypto/rand and by Fork.
const seedSize = 32

// UniformSampler samples integers uniformly from a blake2b XOF stream.
// Two samplers created from the same seed produce the same sequence.
//
// UniformSampler is not safe for concurrent use.
type UniformSampler struct {
	xof blake2b.XOF

	word [8]byte
	buf  []byte
}

// NewUniformSampler creates a new UniformSampler seeded from crypto/rand.
//
// Panics when read from crypto/rand fails.
func NewUniformSampler() *UniformSampler {
	seed := make([]byte, seedSize)
	if _, err := rand.Read(seed); err != nil {
		panic(err)
	}
	return NewUniformSamplerWithSeed(seed)
}

// NewUniformSamplerWithSeed creates a new UniformSampler with user supplied seed.
//
// Panics when blake2b initialization fails.
func NewUniformSamplerWithSeed(seed []byte) *UniformSampler {
	xof, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, nil)
	if err != nil {
		panic(err)
	}
	if _, err := xof.Write(seed); err != nil {
		panic(err)
	}
	return &UniformSampler{xof: xof}
}

// Fork returns a new sampler seeded from the stream of s.
// The forked sampler is independent of s from then on.
func (s *UniformSampler) Fork() *UniformSampler {
	seed := make([]byte, seedSize)
	s.fill(seed)
	return NewUniformSamplerWithSeed(seed)
}

// Read implements the [io.Reader] interface.
func (s *UniformSampler) Read(p []byte) (n int, err error) {
	return io.ReadFull(s.xof, p)
}

func (s *UniformSampler) fill(p []byte) {
	if _, err := s.Read(p); err != nil {
		panic(err)
	}
}

// Sample uniformly samples a random uint64.
func (s *UniformSampler) Sample() uint64 {
	s.fill(s.word[:])
	return binary.LittleEndian.Uint64(s.word[:])
}

// SampleN uniformly samples a random integer in [0, N) for N > 0.
func (s *UniformSampler) SampleN(N uint64) uint64 {
	if N == 0 {
		panic("bound must be positive")
	}
	// Values below 2^64 mod N are rejected.
	limit := -N % N
	for {
		if x := s.Sample(); x >= limit {
			return x % N
		}
	}
}

// SampleBigN uniformly samples a random integer in [0, N).
// Panics if N is not positive.
func (s *UniformSampler) SampleBigN(N *big.Int) *big.Int {
	xOut := big.NewInt(0)
	s.SampleBigNAssign(N, xOut)
	return xOut
}

// SampleBigNAssign uniformly samples a random integer in [0, N) and assigns it to xOut.
// Panics if N is not positive.
func (s *UniformSampler) SampleBigNAssign(N, xOut *big.Int) {
	if N.Sign() <= 0 {
		panic("bound must be positive")
	}
	if N.IsUint64() {
		xOut.SetUint64(s.SampleN(N.Uint64()))
		return
	}

	// Rejection sampling on N.BitLen() bits accepts with probability above 1/2.
	bits := N.BitLen()
	size := (bits + 7) / 8
	if cap(s.buf) < size {
		s.buf = make([]byte, size)
	}
	buf := s.buf[:size]
	mask := byte(0xff >> (8*size - bits))

	for {
		s.fill(buf)
		buf[0] &= mask
		if xOut.SetBytes(buf).Cmp(N) < 0 {
			return
		}
	}
}

// SampleRange uniformly samples a random integer in [lo, hi].
// Panics if lo > hi.
func (s *UniformSampler) SampleRange(lo, hi *big.Int) *big.Int {
	width := big.NewInt(0).Sub(hi, lo)
	if width.Sign() < 0 {
		panic("empty sampling range")
	}
	width.Add(width, big.NewInt(1))

	xOut := s.SampleBigN(width)
	return xOut.Add(xOut, lo)
}
