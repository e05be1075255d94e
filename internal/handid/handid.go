// Package handid generates sortable hand identifiers: a UUIDv7 (millisecond
// timestamp plus random bits) rendered as 26 characters of Crockford base32.
package handid

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/coder/quartz"
)

const (
	alphabet = "0123456789abcdefghjkmnpqrstvwxyz"
	// Length of an encoded identifier
	Length = 26
)

// RandSource supplies the random bits. *rand.Rand from math/rand/v2 satisfies it.
type RandSource interface {
	IntN(n int) int
}

// Generator creates hand IDs from a clock and an optional random source
type Generator struct {
	clock quartz.Clock
	rand  RandSource
}

// NewGenerator creates a generator. A nil clock uses the real clock; a nil source
// uses crypto/rand.
func NewGenerator(clock quartz.Clock, src RandSource) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, rand: src}
}

// Next returns a new hand ID
func (g *Generator) Next() string {
	var id [16]byte

	ms := uint64(g.clock.Now().UnixMilli())
	for i := 0; i < 6; i++ {
		id[i] = byte(ms >> (40 - 8*i))
	}

	if g.rand != nil {
		for i := 6; i < len(id); i++ {
			id[i] = byte(g.rand.IntN(256))
		}
	} else if _, err := rand.Read(id[6:]); err != nil {
		panic("handid: reading random bytes: " + err.Error())
	}

	id[6] = id[6]&0x0f | 0x70 // version 7
	id[8] = id[8]&0x3f | 0x80 // RFC 4122 variant

	return encode(id)
}

// encode writes the 128 bits as 26 five-bit groups, most significant first. The
// first group only carries three bits.
func encode(id [16]byte) string {
	var b strings.Builder
	b.Grow(Length)

	var acc uint32
	bits := 2 // pad to 130 bits
	for _, octet := range id {
		acc = acc<<8 | uint32(octet)
		bits += 8
		for bits >= 5 {
			bits -= 5
			b.WriteByte(alphabet[(acc>>bits)&0x1f])
		}
	}
	return b.String()
}

// Validate checks that id is a well-formed hand ID
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("hand ID must be %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("hand ID first character must be 0-7, got %c", id[0])
	}
	for i, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("invalid character %c at position %d", c, i)
		}
	}
	return nil
}
