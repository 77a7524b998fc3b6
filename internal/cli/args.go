package cli

import (
	"strconv"
	"strings"

	"github.com/matzehuels/pinboard/pkg/errors"
	"github.com/matzehuels/pinboard/pkg/slide"
)

// parsePins parses a pin count argument.
func parsePins(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidPinCount, "pin count %q is not an integer", arg)
	}
	return n, errors.ValidatePinCount(n)
}

// parseDesign parses "<pins> <id>" arguments.
func parseDesign(args []string) (pins, id int, err error) {
	if pins, err = parsePins(args[0]); err != nil {
		return 0, 0, err
	}
	if id, err = strconv.Atoi(args[1]); err != nil {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "design id %q is not an integer", args[1])
	}
	return pins, id, errors.ValidateDesignID(id)
}

// parseWeights parses "d0,d1,d2". An empty string returns def.
func parseWeights(s string, def slide.Weights) (slide.Weights, error) {
	if s == "" {
		return def, nil
	}
	fields := strings.Split(s, ",")
	if len(fields) != slide.NumDims {
		return def, errors.New(errors.ErrCodeInvalidInput, "weights %q: want %d comma-separated numbers", s, slide.NumDims)
	}
	var vals [slide.NumDims]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return def, errors.New(errors.ErrCodeInvalidInput, "weights %q: %q is not a number", s, f)
		}
		vals[i] = v
	}
	if err := errors.ValidateWeights(vals[0], vals[1], vals[2]); err != nil {
		return def, err
	}
	return slide.Weights{D0: vals[0], D1: vals[1], D2: vals[2]}, nil
}
