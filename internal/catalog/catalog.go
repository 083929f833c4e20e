// Package catalog provides the immutable vehicle reference catalog: static
// per-model and per-trim constants consumed by every calculator. The
// catalog is built once from configuration at process start and never
// mutated afterward, so it is safe for concurrent read-sharing without
// locking.
package catalog

import (
	"sort"
	"strings"

	"github.com/iwvelando/vehicle-affordability/internal/config"
	"github.com/iwvelando/vehicle-affordability/internal/model"
	"github.com/iwvelando/vehicle-affordability/pkg/errs"
)

// FuelType tags a model's powertrain. Fuel-specific formulas dispatch
// through per-variant coefficient tables keyed by this type instead of
// scattered conditionals.
type FuelType string

const (
	FuelGasoline FuelType = "gasoline"
	FuelHybrid   FuelType = "hybrid"
	FuelElectric FuelType = "electric"
)

// ParseFuelType normalizes a fuel type string; unknown values resolve to
// gasoline, the conservative default for macro adjustments.
func ParseFuelType(s string) FuelType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(FuelHybrid):
		return FuelHybrid
	case string(FuelElectric):
		return FuelElectric
	default:
		return FuelGasoline
	}
}

// Trim holds the per-trim constants for one model.
type Trim struct {
	Name            string
	Price           float64
	RetentionFactor float64
}

// Model holds the static reference data for one vehicle model.
type Model struct {
	Name                   string
	FuelType               FuelType
	BasePrice              float64
	MPG                    float64
	Reliability            float64
	AnnualDepreciationRate float64
	MaintenanceRate        float64
	BaseInsuranceMonthly   float64
	ResidualFloorFraction  float64
	Residual36             float64
	Residual48             float64
	Trims                  []Trim

	trimIndex map[string]int
}

// Trim resolves a trim by name within the model.
func (m *Model) Trim(name string) (Trim, error) {
	if idx, ok := m.trimIndex[name]; ok {
		return m.Trims[idx], nil
	}
	return Trim{}, errs.NewNotFound(m.Name+"/"+name, "unknown trim")
}

// ResidualFraction returns the residual value fraction for a financing
// term.
func (m *Model) ResidualFraction(termMonths int) float64 {
	if termMonths <= 36 {
		return m.Residual36
	}
	return m.Residual48
}

// Configuration is a fully resolved vehicle choice: the invariant that the
// trim belongs to the model's trim set is established at construction.
type Configuration struct {
	Model *Model
	Trim  Trim
	Price float64
}

// Catalog is the read-only model lookup built once at startup.
type Catalog struct {
	models []Model
	index  map[string]int

	defaultModel string
}

// ModelListing is one entry of the external model listing.
type ModelListing struct {
	Name  string   `json:"name"`
	Trims []string `json:"trims"`
}

// New builds a Catalog from configuration entries. Entry order is
// preserved for deterministic iteration; listings are sorted by name.
func New(entries []config.ModelEntry, defaultFloor float64) *Catalog {
	c := &Catalog{
		index:        make(map[string]int, len(entries)),
		defaultModel: "Camry",
	}

	for _, entry := range entries {
		floor := entry.ResidualFloorFraction
		if floor == 0 {
			floor = defaultFloor
		}

		m := Model{
			Name:                   entry.Name,
			FuelType:               ParseFuelType(entry.FuelType),
			BasePrice:              entry.BasePrice,
			MPG:                    entry.MPG,
			Reliability:            entry.Reliability,
			AnnualDepreciationRate: entry.AnnualDepreciationRate,
			MaintenanceRate:        entry.MaintenanceRate,
			BaseInsuranceMonthly:   entry.BaseInsuranceMonthly,
			ResidualFloorFraction:  floor,
			Residual36:             entry.Residual36,
			Residual48:             entry.Residual48,
			trimIndex:              make(map[string]int, len(entry.Trims)),
		}
		for i, trim := range entry.Trims {
			retention := trim.RetentionFactor
			if retention == 0 {
				retention = 1.0
			}
			m.Trims = append(m.Trims, Trim{
				Name:            trim.Name,
				Price:           trim.Price,
				RetentionFactor: retention,
			})
			m.trimIndex[trim.Name] = i
		}

		c.index[m.Name] = len(c.models)
		c.models = append(c.models, m)
	}

	return c
}

// Model resolves a model by name.
func (c *Catalog) Model(name string) (*Model, error) {
	if idx, ok := c.index[name]; ok {
		return &c.models[idx], nil
	}
	return nil, errs.NewNotFound(name, "unknown model")
}

// Models returns all models in catalog order.
func (c *Catalog) Models() []*Model {
	out := make([]*Model, len(c.models))
	for i := range c.models {
		out[i] = &c.models[i]
	}
	return out
}

// Listings returns the external model listing sorted by model name for a
// deterministic response.
func (c *Catalog) Listings() []ModelListing {
	listings := make([]ModelListing, 0, len(c.models))
	for _, m := range c.models {
		trims := make([]string, 0, len(m.Trims))
		for _, trim := range m.Trims {
			trims = append(trims, trim.Name)
		}
		listings = append(listings, ModelListing{Name: m.Name, Trims: trims})
	}
	sort.Slice(listings, func(i, j int) bool { return listings[i].Name < listings[j].Name })
	return listings
}

// Resolve turns vehicle preferences into a concrete Configuration. The
// model defaults to the catalog's default family sedan when unset; the
// trim defaults to the model's first trim. A user-supplied max price caps
// the resolved price.
func (c *Catalog) Resolve(prefs model.VehiclePreferences) (Configuration, error) {
	name := prefs.Model
	if name == "" {
		name = c.defaultModel
	}

	m, err := c.Model(name)
	if err != nil {
		return Configuration{}, err
	}

	var trim Trim
	if prefs.Trim != "" {
		trim, err = m.Trim(prefs.Trim)
		if err != nil {
			return Configuration{}, err
		}
	} else if len(m.Trims) > 0 {
		trim = m.Trims[0]
	} else {
		return Configuration{}, errs.NewNotFound(m.Name, "model has no trims")
	}

	price := trim.Price
	if price == 0 {
		price = m.BasePrice
	}
	if prefs.MaxPrice > 0 && prefs.MaxPrice < price {
		price = prefs.MaxPrice
	}

	return Configuration{Model: m, Trim: trim, Price: price}, nil
}
