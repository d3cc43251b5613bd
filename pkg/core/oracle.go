package core

import "context"

// Well-known material identifiers shipped in the built-in catalog.
const (
	MaterialMusicWire      = "music_wire"       // ASTM A228
	MaterialOilTempered    = "oil_tempered"     // ASTM A229
	MaterialChromeSilicon  = "chrome_silicon"   // ASTM A401
	MaterialChromeVanadium = "chrome_vanadium"  // ASTM A232
	MaterialStainless302   = "stainless_302"    // ASTM A313 type 302
	MaterialPhosphorBronze = "phosphor_bronze"  // ASTM B159
)

// MaterialProperties are the mechanical properties the analysis pipeline
// needs for one spring material.
type MaterialProperties struct {
	ShearModulus   float64 `json:"shear_modulus"`   // MPa
	ElasticModulus float64 `json:"elastic_modulus"` // MPa
	AllowableStress float64 `json:"allowable_stress"` // MPa
	Density        float64 `json:"density"`         // kg/m^3
	EnduranceLimit float64 `json:"endurance_limit"` // MPa
	CostFactor     float64 `json:"cost_factor"`     // relative cost per kg
}

// MaterialCatalog resolves material identifiers to properties. Implemented by
// pkg/materials; kept as an interface so callers can plug a plant-specific
// catalog.
type MaterialCatalog interface {
	Lookup(id string) (MaterialProperties, error)
}

// WorkingConditions describe the external loading shared by every candidate
// in a run. Supplied once per run, not per individual.
type WorkingConditions struct {
	SpringType        SpringType `json:"spring_type" yaml:"spring_type"`
	MinDeflection     float64    `json:"min_deflection" yaml:"min_deflection"` // mm
	MaxDeflection     float64    `json:"max_deflection" yaml:"max_deflection"` // mm
	OperatingTempC    float64    `json:"operating_temp_c" yaml:"operating_temp_c"`
	EndsGroundAndSquared bool    `json:"ends_ground" yaml:"ends_ground"`
}

// Metrics is the analysis oracle's verdict on one concrete design.
// BucklingSafetyFactor is nil for spring types where buckling does not apply.
type Metrics struct {
	SpringRate           float64  `json:"spring_rate"`        // N/mm
	MaxStress            float64  `json:"max_stress"`         // MPa at max deflection
	SafetyFactor         float64  `json:"safety_factor"`      // allowable / max stress
	FatigueLifeCycles    float64  `json:"fatigue_life_cycles"`
	BucklingSafetyFactor *float64 `json:"buckling_safety_factor,omitempty"`
	Mass                 float64  `json:"mass"` // kg
	Cost                 float64  `json:"cost"` // relative units
}

// AnalysisOracle maps a concrete design to performance metrics. Errors must
// carry an errors.ErrorCode from the OracleFailure family; implementations
// never panic into the GA loop. The optimizer treats this as a black box.
type AnalysisOracle interface {
	Analyze(ctx context.Context, design Design, material MaterialProperties, cond WorkingConditions) (*Metrics, error)
}
