package core

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/XiaoConstantine/springopt-go/pkg/errors"
)

// Design is the gene set of a candidate spring: four geometric genes plus a
// discrete material choice. A Design is immutable once evaluated; mutation and
// crossover always produce new values.
type Design struct {
	WireDiameter float64 `json:"wire_diameter"` // mm
	MeanDiameter float64 `json:"mean_diameter"` // mm
	ActiveCoils  int     `json:"active_coils"`
	FreeLength   float64 `json:"free_length"` // mm
	Material     int     `json:"material"`    // index into the allowed-materials list
}

// SpringIndex returns C = D/d, the ratio governing curvature stress correction.
// Returns +Inf-free 0 for a degenerate zero wire diameter; callers treat that
// as a hard constraint violation.
func (d Design) SpringIndex() float64 {
	if d.WireDiameter == 0 {
		return 0
	}
	return d.MeanDiameter / d.WireDiameter
}

// OuterDiameter returns the coil outer diameter in mm.
func (d Design) OuterDiameter() float64 {
	return d.MeanDiameter + d.WireDiameter
}

// Range is a closed [Min, Max] interval for a single gene.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Contains reports whether v lies inside the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Clamp returns v limited to [Min, Max].
func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Span returns the width of the range.
func (r Range) Span() float64 {
	return r.Max - r.Min
}

// DesignConstraints bounds the search space. SpringIndexRange is a derived
// hard constraint on MeanDiameter/WireDiameter, not a gene of its own.
type DesignConstraints struct {
	WireDiameter     Range    `json:"wire_diameter" yaml:"wire_diameter" validate:"required"`
	MeanDiameter     Range    `json:"mean_diameter" yaml:"mean_diameter" validate:"required"`
	ActiveCoils      Range    `json:"active_coils" yaml:"active_coils" validate:"required"`
	FreeLength       Range    `json:"free_length" yaml:"free_length" validate:"required"`
	AllowedMaterials []string `json:"allowed_materials" yaml:"allowed_materials" validate:"required,min=1"`
	SpringIndexRange Range    `json:"spring_index_range" yaml:"spring_index_range" validate:"required"`
}

// DefaultConstraints returns a search space covering common helical
// compression springs.
func DefaultConstraints() DesignConstraints {
	return DesignConstraints{
		WireDiameter: Range{Min: 0.5, Max: 10.0},
		MeanDiameter: Range{Min: 4.0, Max: 80.0},
		ActiveCoils:  Range{Min: 3, Max: 20},
		FreeLength:   Range{Min: 10.0, Max: 200.0},
		AllowedMaterials: []string{
			MaterialMusicWire,
			MaterialOilTempered,
			MaterialChromeSilicon,
			MaterialStainless302,
		},
		SpringIndexRange: Range{Min: 4.0, Max: 12.0},
	}
}

var constraintsValidator = validator.New()

// Validate checks the constraints for internal consistency.
func (c DesignConstraints) Validate() error {
	if err := constraintsValidator.Struct(c); err != nil {
		return errors.Wrap(err, errors.ValidationFailed, "invalid design constraints")
	}

	ranges := map[string]Range{
		"wire_diameter":      c.WireDiameter,
		"mean_diameter":      c.MeanDiameter,
		"active_coils":       c.ActiveCoils,
		"free_length":        c.FreeLength,
		"spring_index_range": c.SpringIndexRange,
	}
	for name, r := range ranges {
		if r.Min > r.Max {
			return errors.WithFields(
				errors.New(errors.ValidationFailed, "range min exceeds max"),
				errors.Fields{"range": name, "min": r.Min, "max": r.Max})
		}
	}

	if c.WireDiameter.Min <= 0 {
		return errors.New(errors.ValidationFailed, "wire diameter lower bound must be positive")
	}
	if c.SpringIndexRange.Min <= 1 {
		return errors.New(errors.ValidationFailed, "spring index lower bound must exceed 1")
	}
	return nil
}

// MaterialID resolves the design's material index against the allowed set.
func (c DesignConstraints) MaterialID(d Design) (string, error) {
	if d.Material < 0 || d.Material >= len(c.AllowedMaterials) {
		return "", errors.New(errors.InvalidInput,
			fmt.Sprintf("material index %d outside allowed set of %d", d.Material, len(c.AllowedMaterials)))
	}
	return c.AllowedMaterials[d.Material], nil
}
