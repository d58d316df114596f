package ecs

import (
	"fmt"
	"math/bits"
)

// Signature is a fixed-width component bitset. Bit i of an entity signature is
// set iff the entity holds component type i; bit i of a system signature is set
// iff the system requires it.
type Signature uint32

// Set returns s with the bit for id enabled.
func (s Signature) Set(id ComponentID) Signature { return s | 1<<id }

// Clear returns s with the bit for id disabled.
func (s Signature) Clear(id ComponentID) Signature { return s &^ (1 << id) }

// Test reports whether the bit for id is set.
func (s Signature) Test(id ComponentID) bool { return s&(1<<id) != 0 }

// Matches reports whether s carries every bit of required.
func (s Signature) Matches(required Signature) bool { return s&required == required }

// Count returns the number of set bits.
func (s Signature) Count() int { return bits.OnesCount32(uint32(s)) }

func (s Signature) String() string { return fmt.Sprintf("%032b", uint32(s)) }
