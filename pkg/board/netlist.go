package board

import (
	"slices"
	"strings"
)

// Connection joins one part terminal to a chip pin or a named net.
type Connection struct {
	Part     string `json:"part"`
	Terminal int    `json:"terminal"`
	// Target is "U1.<pin>" or "net.<NAME>".
	Target string `json:"target"`
}

// ChipPin reports whether the connection lands on U1 and returns the pin
// label.
func (c Connection) ChipPin() (string, bool) {
	return strings.CutPrefix(c.Target, ChipID+".")
}

// Net reports whether the connection lands on a named net and returns its
// name.
func (c Connection) Net() (string, bool) {
	return strings.CutPrefix(c.Target, "net.")
}

// Netlist is the connectivity of a board, independent of geometry.
type Netlist struct {
	Parts       []string     `json:"parts"`
	Nets        []string     `json:"nets"`
	Connections []Connection `json:"connections"`
}

// BuildNetlist returns the connectivity of b. Parts keep placement order;
// nets are sorted by name.
func BuildNetlist(b Board) (*Netlist, error) {
	parts, err := b.Parts()
	if err != nil {
		return nil, err
	}

	nl := &Netlist{}
	for _, p := range parts {
		nl.Parts = append(nl.Parts, p.Name)
		for i, target := range []string{p.Pin1, p.Pin2} {
			c := Connection{Part: p.Name, Terminal: i + 1, Target: target}
			nl.Connections = append(nl.Connections, c)
			if net, ok := c.Net(); ok && !slices.Contains(nl.Nets, net) {
				nl.Nets = append(nl.Nets, net)
			}
		}
	}
	slices.Sort(nl.Nets)
	return nl, nil
}
