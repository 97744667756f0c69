// Package aceconfig carries the process-wide tunables that are not per-call
// arguments: resolution strictness and the CBOR map encoding policy.
package aceconfig

import "github.com/dtn-ace/ace/internal/aceerr"

// MapForm selects how the binary codec encodes an AM (array map) value.
// CBOR allows either; the module picks one policy and applies it
// consistently.
type MapForm int

const (
	// DefiniteLength encodes AM as a CBOR map with an explicit pair count.
	DefiniteLength MapForm = iota
	// IndefiniteLength encodes AM as a CBOR indefinite-length map, closed
	// with the "break" byte 0xFF.
	IndefiniteLength
)

func (f MapForm) String() string {
	switch f {
	case DefiniteLength:
		return "definite-length"
	case IndefiniteLength:
		return "indefinite-length"
	default:
		return "unknown"
	}
}

// Config is the handle passed to the transcoder facade, which applies the
// resolution settings itself and hands the map form to the binary encoder.
type Config struct {
	// MustNickname rejects a reference whose object was named by a bare
	// numeric enumerator rather than a symbolic nickname, instead of
	// silently resolving it.
	MustNickname bool
	// MustLookup makes an unresolved object name/enumerator a
	// ResolutionError instead of passing the reference through unresolved.
	MustLookup bool
	// CBORMapForm selects the wire form used to encode AM values.
	CBORMapForm MapForm
}

// DefaultConfig returns the module's default tunables: resolution is
// best-effort and AM encodes as a definite-length CBOR map.
func DefaultConfig() Config {
	return Config{
		MustNickname: false,
		MustLookup:   false,
		CBORMapForm:  DefiniteLength,
	}
}

// Valid reports whether cfg's enumerated fields hold a recognized value.
func (cfg Config) Valid() error {
	switch cfg.CBORMapForm {
	case DefiniteLength, IndefiniteLength:
		return nil
	default:
		return aceerr.Typef(aceerr.Position{}, "unrecognized CBOR map form %d", cfg.CBORMapForm)
	}
}
