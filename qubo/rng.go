package qubo

import (
	"hash/fnv"
	"math/rand"
)

// RunKey is the seed of a run. Generation and relaxation driven by the same
// key over the same model repeat exactly.
type RunKey int64

// NewRunKey wraps a --seed value.
func NewRunKey(seed int64) RunKey {
	return RunKey(seed)
}

// Random streams consumed by this module.
const (
	// SubsystemGenerator draws model biases. It is seeded with the key itself,
	// so "generate --seed S" alone reproduces a model.
	SubsystemGenerator = "generator"

	// SubsystemRelaxation draws optimizer start points.
	SubsystemRelaxation = "relaxation"
)

// PartitionedRNG hands out one *rand.Rand per named stream, so adding draws
// to one stream never shifts another. Streams other than SubsystemGenerator
// are seeded with key ^ fnv1a64(name). Not safe for concurrent use.
type PartitionedRNG struct {
	key     RunKey
	streams map[string]*rand.Rand
}

// NewPartitionedRNG returns an empty set of streams for key.
func NewPartitionedRNG(key RunKey) *PartitionedRNG {
	return &PartitionedRNG{key: key, streams: make(map[string]*rand.Rand)}
}

// ForSubsystem returns the stream for name, creating it on first use.
// Repeated calls return the same generator, continuing where it left off.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.streams[name]; ok {
		return rng
	}
	seed := int64(p.key)
	if name != SubsystemGenerator {
		seed ^= fnv1a64(name)
	}
	rng := rand.New(rand.NewSource(seed))
	p.streams[name] = rng
	return rng
}

// Key returns the run's seed.
func (p *PartitionedRNG) Key() RunKey {
	return p.key
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64())
}
