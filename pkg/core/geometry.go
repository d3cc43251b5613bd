package core

import (
	"github.com/XiaoConstantine/springopt-go/pkg/errors"
)

// SpringType discriminates the geometry variants the analysis pipeline
// understands.
type SpringType string

const (
	SpringCompression SpringType = "compression"
	SpringExtension   SpringType = "extension"
	SpringTorsion     SpringType = "torsion"
	SpringConical     SpringType = "conical"
)

// Valid reports whether the type is one of the known variants.
func (s SpringType) Valid() bool {
	switch s {
	case SpringCompression, SpringExtension, SpringTorsion, SpringConical:
		return true
	}
	return false
}

// SpringGeometry is the resolved geometry handed to the analysis oracle: a
// tagged variant with per-type required fields, validated at construction so
// the oracle never sees an inconsistent shape.
type SpringGeometry struct {
	Type         SpringType
	WireDiameter float64 // mm
	MeanDiameter float64 // mm
	ActiveCoils  int
	FreeLength   float64 // mm

	// Extension only
	HookGap float64 // mm, body-to-hook clearance

	// Torsion only
	LegLength float64 // mm

	// Conical only
	SmallMeanDiameter float64 // mm, MeanDiameter is the large end
}

func validateCommon(d, dm float64, coils int, l0 float64) error {
	if d <= 0 {
		return errors.WithFields(errors.New(errors.InvalidGeometry, "wire diameter must be positive"),
			errors.Fields{"wire_diameter": d})
	}
	if dm <= d {
		return errors.WithFields(errors.New(errors.InvalidGeometry, "mean diameter must exceed wire diameter"),
			errors.Fields{"mean_diameter": dm, "wire_diameter": d})
	}
	if coils < 1 {
		return errors.WithFields(errors.New(errors.InvalidGeometry, "at least one active coil required"),
			errors.Fields{"active_coils": coils})
	}
	if l0 <= 0 {
		return errors.WithFields(errors.New(errors.InvalidGeometry, "free length must be positive"),
			errors.Fields{"free_length": l0})
	}
	return nil
}

// NewCompressionGeometry validates and builds a compression spring geometry.
// The solid height (all coils stacked) must fit inside the free length.
func NewCompressionGeometry(d Design) (SpringGeometry, error) {
	if err := validateCommon(d.WireDiameter, d.MeanDiameter, d.ActiveCoils, d.FreeLength); err != nil {
		return SpringGeometry{}, err
	}
	// Two inactive end coils for squared-and-ground ends.
	solidHeight := float64(d.ActiveCoils+2) * d.WireDiameter
	if solidHeight >= d.FreeLength {
		return SpringGeometry{}, errors.WithFields(
			errors.New(errors.InvalidGeometry, "solid height exceeds free length"),
			errors.Fields{"solid_height": solidHeight, "free_length": d.FreeLength})
	}
	return SpringGeometry{
		Type:         SpringCompression,
		WireDiameter: d.WireDiameter,
		MeanDiameter: d.MeanDiameter,
		ActiveCoils:  d.ActiveCoils,
		FreeLength:   d.FreeLength,
	}, nil
}

// NewExtensionGeometry validates and builds an extension spring geometry.
func NewExtensionGeometry(d Design, hookGap float64) (SpringGeometry, error) {
	if err := validateCommon(d.WireDiameter, d.MeanDiameter, d.ActiveCoils, d.FreeLength); err != nil {
		return SpringGeometry{}, err
	}
	if hookGap < 0 {
		return SpringGeometry{}, errors.New(errors.InvalidGeometry, "hook gap cannot be negative")
	}
	return SpringGeometry{
		Type:         SpringExtension,
		WireDiameter: d.WireDiameter,
		MeanDiameter: d.MeanDiameter,
		ActiveCoils:  d.ActiveCoils,
		FreeLength:   d.FreeLength,
		HookGap:      hookGap,
	}, nil
}

// NewTorsionGeometry validates and builds a torsion spring geometry.
func NewTorsionGeometry(d Design, legLength float64) (SpringGeometry, error) {
	if err := validateCommon(d.WireDiameter, d.MeanDiameter, d.ActiveCoils, d.FreeLength); err != nil {
		return SpringGeometry{}, err
	}
	if legLength <= 0 {
		return SpringGeometry{}, errors.New(errors.InvalidGeometry, "torsion legs need positive length")
	}
	return SpringGeometry{
		Type:         SpringTorsion,
		WireDiameter: d.WireDiameter,
		MeanDiameter: d.MeanDiameter,
		ActiveCoils:  d.ActiveCoils,
		FreeLength:   d.FreeLength,
		LegLength:    legLength,
	}, nil
}

// NewConicalGeometry validates and builds a conical spring geometry; the
// design's MeanDiameter is the large end.
func NewConicalGeometry(d Design, smallMeanDiameter float64) (SpringGeometry, error) {
	if err := validateCommon(d.WireDiameter, d.MeanDiameter, d.ActiveCoils, d.FreeLength); err != nil {
		return SpringGeometry{}, err
	}
	if smallMeanDiameter <= d.WireDiameter || smallMeanDiameter >= d.MeanDiameter {
		return SpringGeometry{}, errors.WithFields(
			errors.New(errors.InvalidGeometry, "small end must lie between wire diameter and large end"),
			errors.Fields{"small_mean_diameter": smallMeanDiameter})
	}
	return SpringGeometry{
		Type:              SpringConical,
		WireDiameter:      d.WireDiameter,
		MeanDiameter:      d.MeanDiameter,
		ActiveCoils:       d.ActiveCoils,
		FreeLength:        d.FreeLength,
		SmallMeanDiameter: smallMeanDiameter,
	}, nil
}

// ResolveGeometry builds the geometry variant matching the working
// conditions' spring type, deriving secondary dimensions from the design.
func ResolveGeometry(d Design, cond WorkingConditions) (SpringGeometry, error) {
	switch cond.SpringType {
	case SpringCompression:
		return NewCompressionGeometry(d)
	case SpringExtension:
		return NewExtensionGeometry(d, d.WireDiameter) // one wire diameter of hook clearance
	case SpringTorsion:
		return NewTorsionGeometry(d, 2*d.MeanDiameter)
	case SpringConical:
		return NewConicalGeometry(d, 0.5*d.MeanDiameter+0.5*d.WireDiameter)
	default:
		return SpringGeometry{}, errors.WithFields(
			errors.New(errors.InvalidGeometry, "unknown spring type"),
			errors.Fields{"spring_type": string(cond.SpringType)})
	}
}
