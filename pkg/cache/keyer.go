package cache

import "github.com/matzehuels/pinboard/pkg/slide"

// keyVersion is mixed into every hashed key. Bump it when the cached value
// format changes.
const keyVersion = 1

// Keyer derives cache keys. Keys start with their type ("design",
// "netlist") followed by a hash of everything that affects the value.
type Keyer interface {
	// DesignKey addresses a solved design.
	DesignKey(pinCount, id int, opts DesignKeyOpts) string

	// NetlistKey addresses the rendered netlist diagram of a design.
	NetlistKey(pinCount, id int) string
}

// DesignKeyOpts holds the solver settings that change a design's solution.
type DesignKeyOpts struct {
	MaxIterations int           `json:"max_iterations"`
	Weights       slide.Weights `json:"weights"`
}

// DefaultKeyer hashes its inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) DesignKey(pinCount, id int, opts DesignKeyOpts) string {
	return hashKey("design", keyVersion, pinCount, id, opts)
}

func (DefaultKeyer) NetlistKey(pinCount, id int) string {
	return hashKey("netlist", keyVersion, pinCount, id)
}
