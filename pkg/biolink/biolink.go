// Package biolink provides descriptions and ancestry for the Biolink Model
// classes and slots used by the beacon.
package biolink

import (
	_ "embed"
	"strings"
	"sync"

	"github.com/NCATS-Tangerine/rhea-beacon/pkg/common/errors"
	"gopkg.in/yaml.v3"
)

//go:embed biolink.yaml
var embedded []byte

// Element is a class or slot definition.
type Element struct {
	IsA         string   `yaml:"is_a"`
	Mixins      []string `yaml:"mixins"`
	Description string   `yaml:"description"`
}

// Model holds class and slot definitions keyed by name.
type Model struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Classes     map[string]Element `yaml:"classes"`
	Slots       map[string]Element `yaml:"slots"`
}

// Load parses a model definition.
func Load(data []byte) (*Model, error) {
	var m Model
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "parse biolink model")
	}
	return &m, nil
}

var (
	defaultOnce  sync.Once
	defaultModel *Model
)

// Default returns the embedded model.
func Default() *Model {
	defaultOnce.Do(func() {
		m, err := Load(embedded)
		if err != nil {
			panic(err)
		}
		defaultModel = m
	})
	return defaultModel
}

// Class looks up a class by name, ignoring case and '_' versus ' '.
func (m *Model) Class(name string) (Element, bool) {
	return lookup(m.Classes, name)
}

// Slot looks up a slot by name, ignoring case and '_' versus ' '.
func (m *Model) Slot(name string) (Element, bool) {
	return lookup(m.Slots, name)
}

// ClassDescription returns the description of a class, or "".
func (m *Model) ClassDescription(name string) string {
	e, _ := m.Class(name)
	return strings.TrimSpace(e.Description)
}

// SlotDescription returns the description of a slot, or "".
func (m *Model) SlotDescription(name string) string {
	e, _ := m.Slot(name)
	return strings.TrimSpace(e.Description)
}

// Ancestors returns class and every class it inherits from through is_a or
// mixins, nearest first. Unknown classes yield just themselves.
func (m *Model) Ancestors(class string) []string {
	var out []string
	seen := make(map[string]bool)
	queue := []string{class}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		key := normalize(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)

		e, ok := m.Class(name)
		if !ok {
			continue
		}
		if e.IsA != "" {
			queue = append(queue, e.IsA)
		}
		queue = append(queue, e.Mixins...)
	}
	return out
}

// IsA reports whether class is category or a descendant of it.
func (m *Model) IsA(class, category string) bool {
	want := normalize(category)
	for _, a := range m.Ancestors(class) {
		if normalize(a) == want {
			return true
		}
	}
	return false
}

func lookup(elements map[string]Element, name string) (Element, bool) {
	if e, ok := elements[name]; ok {
		return e, true
	}
	key := normalize(name)
	for k, e := range elements {
		if normalize(k) == key {
			return e, true
		}
	}
	return Element{}, false
}

func normalize(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", " "))
}
