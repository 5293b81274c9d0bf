// Package catalog loads named durations and time ranges from YAML.
//
// A catalog file lists literals by name:
//
//	version: "1.0"
//	durations:
//	  poll: 30 SECONDS
//	ranges:
//	  maintenance: "[100-200] MINUTES"
//
// Every literal is validated when the catalog is loaded; a catalog that
// loads successfully only holds valid values.
package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/mash-protocol/timespan/pkg/duration"
	"github.com/mash-protocol/timespan/pkg/timerange"
	"github.com/mash-protocol/timespan/pkg/version"
)

// ErrNotFound is returned when a name is not in the catalog.
var ErrNotFound = errors.New("not found in catalog")

// RawCatalog is the YAML-level representation before validation.
type RawCatalog struct {
	Version   string            `yaml:"version"`
	Durations map[string]string `yaml:"durations,omitempty"`
	Ranges    map[string]string `yaml:"ranges,omitempty"`
}

// Catalog is a validated set of named durations and ranges.
type Catalog struct {
	version   version.FormatVersion
	durations map[string]*duration.Duration
	ranges    map[string]*timerange.TimeRange
}

// Parse parses and validates a YAML catalog. Ranges are created by reg.
func Parse(data []byte, reg *timerange.Registry) (*Catalog, error) {
	var raw RawCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing catalog YAML: %w", err)
	}
	return Resolve(&raw, reg)
}

// Load reads a YAML catalog from r.
func Load(r io.Reader, reg *timerange.Registry) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(data, reg)
}

// LoadFile reads a YAML catalog from path.
func LoadFile(path string, reg *timerange.Registry) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	c, err := Parse(data, reg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Resolve validates every literal in raw.
func Resolve(raw *RawCatalog, reg *timerange.Registry) (*Catalog, error) {
	v, err := version.Check(raw.Version)
	if err != nil {
		return nil, fmt.Errorf("catalog version: %w", err)
	}

	c := &Catalog{
		version:   v,
		durations: make(map[string]*duration.Duration, len(raw.Durations)),
		ranges:    make(map[string]*timerange.TimeRange, len(raw.Ranges)),
	}

	for _, name := range sortedKeys(raw.Durations) {
		d, err := duration.Parse(raw.Durations[name])
		if err != nil {
			return nil, fmt.Errorf("duration %q: %w", name, err)
		}
		c.durations[name] = d
	}

	for _, name := range sortedKeys(raw.Ranges) {
		tr, err := reg.Parse(raw.Ranges[name])
		if err != nil {
			return nil, fmt.Errorf("range %q: %w", name, err)
		}
		c.ranges[name] = tr
	}

	return c, nil
}

// Version returns the format version declared by the catalog.
func (c *Catalog) Version() version.FormatVersion {
	return c.version
}

// Duration returns the duration with the given name.
func (c *Catalog) Duration(name string) (*duration.Duration, error) {
	d, ok := c.durations[name]
	if !ok {
		return nil, fmt.Errorf("duration %q: %w", name, ErrNotFound)
	}
	return d, nil
}

// Range returns the range with the given name.
func (c *Catalog) Range(name string) (*timerange.TimeRange, error) {
	tr, ok := c.ranges[name]
	if !ok {
		return nil, fmt.Errorf("range %q: %w", name, ErrNotFound)
	}
	return tr, nil
}

// DurationNames returns the duration names in sorted order.
func (c *Catalog) DurationNames() []string {
	return sortedKeys(c.durations)
}

// RangeNames returns the range names in sorted order.
func (c *Catalog) RangeNames() []string {
	return sortedKeys(c.ranges)
}

// Intersecting returns the sorted names of the other ranges that share at
// least one point with the named range.
func (c *Catalog) Intersecting(name string) ([]string, error) {
	tr, err := c.Range(name)
	if err != nil {
		return nil, err
	}

	var names []string
	for other, o := range c.ranges {
		if other != name && tr.Intersects(o) {
			names = append(names, other)
		}
	}
	slices.Sort(names)
	return names, nil
}

// Raw returns the YAML-level representation of c.
func (c *Catalog) Raw() *RawCatalog {
	raw := &RawCatalog{Version: c.version.String()}
	if len(c.durations) > 0 {
		raw.Durations = make(map[string]string, len(c.durations))
		for name, d := range c.durations {
			raw.Durations[name] = d.String()
		}
	}
	if len(c.ranges) > 0 {
		raw.Ranges = make(map[string]string, len(c.ranges))
		for name, tr := range c.ranges {
			raw.Ranges[name] = tr.String()
		}
	}
	return raw
}

// Encode writes c as YAML to w.
func (c *Catalog) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c.Raw()); err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	return enc.Close()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
