// Package translations maps translation abbreviations onto provider bible
// ids.
package translations

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed translations.yaml
var builtin []byte

// Provider identifies the upstream serving a translation.
type Provider string

const (
	// YouVersion serves flat per-verse passages.
	YouVersion Provider = "youversion"
	// APIBible serves tagged content ranges.
	APIBible Provider = "apibible"
)

// Translation is one available translation.
type Translation struct {
	Abbrev   string   `json:"abbrev"`
	ID       string   `json:"id"`
	Provider Provider `json:"provider"`
}

// Table is an immutable set of translations.
type Table struct {
	youversion map[string]string
	apibible   map[string]string
}

type tableFile struct {
	YouVersion map[string]string `yaml:"youversion"`
	APIBible   map[string]string `yaml:"apibible"`
}

// Default returns the built-in table.
func Default() *Table {
	t, err := Parse(builtin)
	if err != nil {
		panic(fmt.Sprintf("translations: bad builtin table: %v", err))
	}
	return t
}

// Parse reads a YAML table with youversion and apibible sections.
func Parse(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing translations: %w", err)
	}
	return New(f.YouVersion, f.APIBible), nil
}

// New builds a table from per-provider abbreviation to id maps.
func New(youversion, apibible map[string]string) *Table {
	t := &Table{
		youversion: make(map[string]string, len(youversion)),
		apibible:   make(map[string]string, len(apibible)),
	}
	for k, v := range youversion {
		t.youversion[strings.ToUpper(k)] = v
	}
	for k, v := range apibible {
		t.apibible[strings.ToUpper(k)] = v
	}
	return t
}

// With returns a copy of the table with the given entries added or
// replaced.
func (t *Table) With(youversion, apibible map[string]string) *Table {
	yv := make(map[string]string, len(t.youversion)+len(youversion))
	ab := make(map[string]string, len(t.apibible)+len(apibible))
	for k, v := range t.youversion {
		yv[k] = v
	}
	for k, v := range t.apibible {
		ab[k] = v
	}
	for k, v := range youversion {
		yv[strings.ToUpper(k)] = v
	}
	for k, v := range apibible {
		ab[strings.ToUpper(k)] = v
	}
	return &Table{youversion: yv, apibible: ab}
}

// Lookup finds a translation by abbreviation, case-insensitively. An
// abbreviation known to both providers resolves to YouVersion.
func (t *Table) Lookup(abbrev string) (Translation, bool) {
	key := strings.ToUpper(strings.TrimSpace(abbrev))
	if id, ok := t.youversion[key]; ok {
		return Translation{Abbrev: key, ID: id, Provider: YouVersion}, true
	}
	if id, ok := t.apibible[key]; ok {
		return Translation{Abbrev: key, ID: id, Provider: APIBible}, true
	}
	return Translation{}, false
}

// List returns every translation sorted by abbreviation.
func (t *Table) List() []Translation {
	out := make([]Translation, 0, len(t.youversion)+len(t.apibible))
	for k, v := range t.youversion {
		out = append(out, Translation{Abbrev: k, ID: v, Provider: YouVersion})
	}
	for k, v := range t.apibible {
		if _, shadowed := t.youversion[k]; shadowed {
			continue
		}
		out = append(out, Translation{Abbrev: k, ID: v, Provider: APIBible})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Abbrev < out[j].Abbrev })
	return out
}
