package modular

// ParametersLiteral is a structure for number-theoretic algorithm parameters.
type ParametersLiteral struct {
	// PollardIterations is the number of rho steps tried per seed
	// before the seed is considered stalled.
	PollardIterations int
	// PollardRestarts is the number of seeds tried before Pollard's rho
	// gives up on a cofactor and falls back to trial division.
	PollardRestarts int

	// SmallFactorBound is the bound of the trial division prepass.
	// Every prime below this bound is stripped before Pollard's rho runs.
	SmallFactorBound int

	// BSGSLimit is the maximum number of entries of a baby-step table.
	BSGSLimit int

	// PrimalityRounds is the number of Miller-Rabin rounds used
	// when a modulus is validated internally.
	PrimalityRounds int

	// Seed is the seed of the witness sampler.
	// If empty, the sampler is seeded from crypto/rand.
	Seed []byte
}

// DefaultParametersLiteral is the default parameters literal.
var DefaultParametersLiteral = ParametersLiteral{
	PollardIterations: 1 << 16,
	PollardRestarts:   8,

	SmallFactorBound: 1 << 12,

	BSGSLimit: 1 << 22,

	PrimalityRounds: 32,
}

// DefaultParameters returns the compiled default parameters.
func DefaultParameters() Parameters {
	return DefaultParametersLiteral.Compile()
}

// Compile transforms ParametersLiteral to read-only Parameters.
// If there is any invalid parameter in the literal, it panics.
// Default parameters are guaranteed to be compiled without panics.
func (p ParametersLiteral) Compile() Parameters {
	switch {
	case p.PollardIterations <= 0:
		panic("PollardIterations must be positive")
	case p.PollardRestarts <= 0:
		panic("PollardRestarts must be positive")
	case p.SmallFactorBound < 2:
		panic("SmallFactorBound must be at least 2")
	case p.BSGSLimit <= 0:
		panic("BSGSLimit must be positive")
	case p.PrimalityRounds <= 0:
		panic("PrimalityRounds must be positive")
	}

	var seed []byte
	if len(p.Seed) > 0 {
		seed = make([]byte, len(p.Seed))
		copy(seed, p.Seed)
	}

	return Parameters{
		pollardIterations: p.PollardIterations,
		pollardRestarts:   p.PollardRestarts,
		smallFactorBound:  p.SmallFactorBound,
		bsgsLimit:         p.BSGSLimit,
		primalityRounds:   p.PrimalityRounds,
		seed:              seed,
	}
}

// Parameters is a read-only structure for number-theoretic algorithm parameters.
type Parameters struct {
	pollardIterations int
	pollardRestarts   int
	smallFactorBound  int
	bsgsLimit         int
	primalityRounds   int
	seed              []byte
}

// PollardIterations returns the number of rho steps tried per seed.
func (p Parameters) PollardIterations() int {
	return p.pollardIterations
}

// PollardRestarts returns the number of seeds tried per cofactor.
func (p Parameters) PollardRestarts() int {
	return p.pollardRestarts
}

// SmallFactorBound returns the bound of the trial division prepass.
func (p Parameters) SmallFactorBound() int {
	return p.smallFactorBound
}

// BSGSLimit returns the maximum number of entries of a baby-step table.
func (p Parameters) BSGSLimit() int {
	return p.bsgsLimit
}

// PrimalityRounds returns the number of internal Miller-Rabin rounds.
func (p Parameters) PrimalityRounds() int {
	return p.primalityRounds
}

// Seed returns the seed of the witness sampler.
// Returns nil if the sampler is randomly seeded.
func (p Parameters) Seed() []byte {
	return p.seed
}
