// =============================================================================
// internal/portscan/strategy.go - Port ordering strategies
// =============================================================================
package portscan

import "math/rand"

// PortStrategy produces the ordered sequence of ports the driver will pair
// against every IP. Serial preserves range/list order; Random permutes the
// same set deterministically given a seed, so the same seed always produces
// the same probe order across retries within one scan.
type PortStrategy interface {
	Ports() []uint16
}

// SerialStrategy iterates a port range or an explicit list in the order
// given, with no reordering.
type SerialStrategy struct {
	ports []uint16
}

// NewSerialRange builds a SerialStrategy over the closed range [lo, hi].
func NewSerialRange(lo, hi uint16) (*SerialStrategy, error) {
	if hi < lo {
		return nil, &ConfigError{Reason: "port range end must not be before start"}
	}
	ports := make([]uint16, 0, int(hi)-int(lo)+1)
	for p := int(lo); p <= int(hi); p++ {
		ports = append(ports, uint16(p))
	}
	return &SerialStrategy{ports: ports}, nil
}

// NewSerialList builds a SerialStrategy over an explicit port list, kept in
// the order supplied.
func NewSerialList(list []uint16) *SerialStrategy {
	ports := make([]uint16, len(list))
	copy(ports, list)
	return &SerialStrategy{ports: ports}
}

// Ports implements PortStrategy.
func (s *SerialStrategy) Ports() []uint16 {
	return s.ports
}

// RandomStrategy permutes an underlying range or list using a Fisher-Yates
// shuffle keyed by Seed. The permutation is computed once and cached so
// repeated calls to Ports (one per retry attempt) return the same order.
type RandomStrategy struct {
	// Seed is the shuffle key. It is read on the first call to Ports only,
	// so the permutation stays stable for the rest of the scan. The driver
	// never sets it; the CLI draws a fresh seed for every scan.
	Seed uint64

	base     []uint16
	shuffled []uint16
}

// NewRandomRange builds a RandomStrategy over the closed range [lo, hi].
func NewRandomRange(lo, hi uint16, seed uint64) (*RandomStrategy, error) {
	base, err := NewSerialRange(lo, hi)
	if err != nil {
		return nil, err
	}
	return &RandomStrategy{Seed: seed, base: base.Ports()}, nil
}

// NewRandomList builds a RandomStrategy over an explicit port list.
func NewRandomList(list []uint16, seed uint64) *RandomStrategy {
	base := make([]uint16, len(list))
	copy(base, list)
	return &RandomStrategy{Seed: seed, base: base}
}

// Ports implements PortStrategy. The shuffle is computed once, on first
// call, and memoized.
func (s *RandomStrategy) Ports() []uint16 {
	if s.shuffled != nil {
		return s.shuffled
	}

	shuffled := make([]uint16, len(s.base))
	copy(shuffled, s.base)

	rng := rand.New(rand.NewSource(int64(s.Seed)))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	s.shuffled = shuffled
	return s.shuffled
}
