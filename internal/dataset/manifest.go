// Package dataset loads the swipe CSVs and fare-period reference data
// described by a YAML manifest.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// Manifest lists the fare periods and where their swipe files live.
type Manifest struct {
	Title       string       `yaml:"title" validate:"required"`
	Description string       `yaml:"description"`
	Periods     []PeriodSpec `yaml:"periods" validate:"required,min=1,max=8,dive"`

	dir string
}

// PeriodSpec is one manifest entry. File is resolved relative to the
// manifest.
type PeriodSpec struct {
	Label string `yaml:"label" validate:"required"`
	File  string `yaml:"file" validate:"required"`
	Start string `yaml:"start" validate:"required,datetime=2006-01-02"`
	End   string `yaml:"end" validate:"required,datetime=2006-01-02"`
	AsOf  string `yaml:"as_of" validate:"omitempty,datetime=2006-01-02"`
	Price string `yaml:"price" validate:"required,numeric"`
}

// LoadManifest reads and validates the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return ParseManifest(data, filepath.Dir(path))
}

// ParseManifest decodes and validates manifest YAML. dir is the base for
// relative CSV paths.
func ParseManifest(data []byte, dir string) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	v := validator.New()
	if err := v.Struct(m); err != nil {
		return nil, fmt.Errorf("validating manifest: %w", err)
	}

	for _, p := range m.Periods {
		start, _ := time.Parse(dateLayout, p.Start)
		end, _ := time.Parse(dateLayout, p.End)
		if start.After(end) {
			return nil, fmt.Errorf("validating manifest: period %q starts after it ends", p.Label)
		}
	}

	m.dir = dir
	return &m, nil
}

// Path resolves a period's CSV file.
func (m *Manifest) Path(p PeriodSpec) string {
	if filepath.IsAbs(p.File) {
		return p.File
	}
	return filepath.Join(m.dir, p.File)
}

// period converts a validated spec into the loaded form, without stations.
func (p PeriodSpec) period(index int) Period {
	start, _ := time.Parse(dateLayout, p.Start)
	end, _ := time.Parse(dateLayout, p.End)
	asOf := end
	if p.AsOf != "" {
		asOf, _ = time.Parse(dateLayout, p.AsOf)
	}
	price, _ := decimal.NewFromString(p.Price)

	return Period{
		Index: index,
		Label: p.Label,
		Start: start,
		End:   end,
		AsOf:  asOf,
		Price: price,
	}
}
