// Package materials provides the built-in spring material catalog consumed by
// the analysis pipeline. Property values are handbook figures for common
// spring wire alloys; callers with plant-specific data can supply their own
// core.MaterialCatalog instead.
package materials

import (
	"github.com/XiaoConstantine/springopt-go/pkg/core"
	"github.com/XiaoConstantine/springopt-go/pkg/errors"
)

// Catalog is an immutable in-memory material table.
type Catalog struct {
	table map[string]core.MaterialProperties
}

// NewCatalog returns the built-in catalog.
func NewCatalog() *Catalog {
	return &Catalog{table: map[string]core.MaterialProperties{
		core.MaterialMusicWire: {
			ShearModulus:    79300,
			ElasticModulus:  207000,
			AllowableStress: 860,
			Density:         7850,
			EnduranceLimit:  400,
			CostFactor:      1.0,
		},
		core.MaterialOilTempered: {
			ShearModulus:    77200,
			ElasticModulus:  207000,
			AllowableStress: 740,
			Density:         7850,
			EnduranceLimit:  350,
			CostFactor:      0.7,
		},
		core.MaterialChromeSilicon: {
			ShearModulus:    77200,
			ElasticModulus:  207000,
			AllowableStress: 980,
			Density:         7850,
			EnduranceLimit:  430,
			CostFactor:      1.6,
		},
		core.MaterialChromeVanadium: {
			ShearModulus:    77200,
			ElasticModulus:  207000,
			AllowableStress: 850,
			Density:         7850,
			EnduranceLimit:  405,
			CostFactor:      1.5,
		},
		core.MaterialStainless302: {
			ShearModulus:    69000,
			ElasticModulus:  193000,
			AllowableStress: 600,
			Density:         7920,
			EnduranceLimit:  280,
			CostFactor:      2.2,
		},
		core.MaterialPhosphorBronze: {
			ShearModulus:    41400,
			ElasticModulus:  103000,
			AllowableStress: 420,
			Density:         8860,
			EnduranceLimit:  190,
			CostFactor:      4.0,
		},
	}}
}

// Lookup implements core.MaterialCatalog.
func (c *Catalog) Lookup(id string) (core.MaterialProperties, error) {
	props, ok := c.table[id]
	if !ok {
		return core.MaterialProperties{}, errors.WithFields(
			errors.New(errors.UnknownMaterial, "material not in catalog"),
			errors.Fields{"material": id})
	}
	return props, nil
}

// IDs returns the identifiers of every material in the catalog.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.table))
	for id := range c.table {
		ids = append(ids, id)
	}
	return ids
}
