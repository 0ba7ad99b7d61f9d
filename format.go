package omex

import "fmt"

// Format identifies a well-known COMBINE content format.
type Format uint8

const (
	// FormatSBML is the Systems Biology Markup Language.
	FormatSBML Format = iota + 1
	// FormatSEDML is the Simulation Experiment Description Markup Language.
	FormatSEDML
	// FormatSBGN is the Systems Biology Graphical Notation.
	FormatSBGN
)

const (
	uriSBML  = "http://identifiers.org/combine.specifications/sbml"
	uriSEDML = "http://identifiers.org/combine.specifications/sed"
	uriSBGN  = "http://identifiers.org/combine.specifications/sbgn"
)

// ParseFormat parses a known format from either its identifiers.org URI
// or its shorthand name ("sbml", "sedml", "sbgn").
func ParseFormat(s string) (Format, error) {
	switch s {
	case uriSBML, "sbml":
		return FormatSBML, nil
	case uriSEDML, "sedml":
		return FormatSEDML, nil
	case uriSBGN, "sbgn":
		return FormatSBGN, nil
	default:
		return 0, fmt.Errorf("unknown format: %q", s)
	}
}

// URI returns the identifiers.org URI for the format.
func (f Format) URI() string {
	switch f {
	case FormatSBML:
		return uriSBML
	case FormatSEDML:
		return uriSEDML
	case FormatSBGN:
		return uriSBGN
	default:
		return "unknown"
	}
}

func (f Format) String() string {
	return f.URI()
}
