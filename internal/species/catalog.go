// Package species provides the airport risk catalog: per-species base risk
// and behavioral metadata consumed by pattern classification and risk scoring.
package species

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/strikewarn/strikewarn-go/internal/errors"
)

// DefaultBaseRisk is assigned to species not present in the catalog.
const DefaultBaseRisk = 0.3

// Profile holds the risk and behavioral metadata for one species.
type Profile struct {
	ScientificName   string   `yaml:"scientific_name" json:"scientific_name"`
	CommonName       string   `yaml:"common_name" json:"common_name"`
	BaseRisk         float64  `yaml:"risk" json:"risk"`
	FlockBehavior    string   `yaml:"flock_behavior" json:"flock_behavior"`
	TerritorialCalls []string `yaml:"territorial_calls" json:"territorial_calls,omitempty"`
	AlarmPatterns    []string `yaml:"alarm_patterns" json:"alarm_patterns,omitempty"`
	FlightPattern    string   `yaml:"flight_patterns" json:"flight_patterns,omitempty"`
}

// HasAlarmPattern reports whether the species is known for the given alarm
// pattern keyword, e.g. "rapid_succession" or "pitch_variation".
func (p Profile) HasAlarmPattern(pattern string) bool {
	for _, ap := range p.AlarmPatterns {
		if ap == pattern {
			return true
		}
	}
	return false
}

// Catalog is an immutable lookup from scientific name to species profile.
// Built once at startup, safe for concurrent reads.
type Catalog struct {
	profiles map[string]Profile
}

// NewCatalog builds a catalog from the given profiles.
func NewCatalog(profiles []Profile) *Catalog {
	m := make(map[string]Profile, len(profiles))
	for _, p := range profiles {
		m[p.ScientificName] = p
	}
	return &Catalog{profiles: m}
}

// LoadCatalog reads a YAML catalog file. An empty path returns the built-in
// default catalog.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return NewCatalog(defaultProfiles()), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(err).
			Component("species").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}

	var profiles []Profile
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return nil, errors.New(err).
			Component("species").
			Category(errors.CategoryConfiguration).
			Context("path", path).
			Build()
	}

	return NewCatalog(profiles), nil
}

// Lookup returns the profile for the given scientific name. Unknown species
// get a default profile with base risk 0.3 and no behavioral metadata; this
// keeps the monitoring loop alive through detections of unlisted species.
func (c *Catalog) Lookup(scientificName string) Profile {
	if p, ok := c.profiles[scientificName]; ok {
		return p
	}
	return Profile{
		ScientificName: scientificName,
		BaseRisk:       DefaultBaseRisk,
	}
}

// Known reports whether the species is present in the catalog.
func (c *Catalog) Known(scientificName string) bool {
	_, ok := c.profiles[scientificName]
	return ok
}

// Len returns the number of cataloged species.
func (c *Catalog) Len() int {
	return len(c.profiles)
}
