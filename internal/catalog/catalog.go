// Package catalog holds the documented built-in URScript functions
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/agext/levenshtein"
	"gopkg.in/yaml.v3"

	"github.com/jarredhawkins/urscript-lsp/internal/types"
)

//go:embed functions.yaml
var builtinFunctions []byte

// Catalog is an immutable set of methods keyed by name. Reload builds a new
// Catalog rather than mutating one in place.
type Catalog struct {
	methods map[string]*types.Method
	names   []string // sorted
}

// New builds a catalog from methods; later entries override earlier ones
func New(methods []types.Method) *Catalog {
	c := &Catalog{methods: make(map[string]*types.Method, len(methods))}
	for i := range methods {
		m := methods[i]
		if m.Name == "" {
			continue
		}
		c.methods[m.Name] = &m
	}
	c.names = make([]string, 0, len(c.methods))
	for name := range c.methods {
		c.names = append(c.names, name)
	}
	sort.Strings(c.names)
	return c
}

// Builtin returns the embedded function catalog
func Builtin() (*Catalog, error) {
	methods, err := parse(builtinFunctions)
	if err != nil {
		return nil, fmt.Errorf("failed to parse builtin catalog: %w", err)
	}
	return New(methods), nil
}

// Load returns the builtin catalog merged with the given YAML files, in order
func Load(paths ...string) (*Catalog, error) {
	methods, err := parse(builtinFunctions)
	if err != nil {
		return nil, fmt.Errorf("failed to parse builtin catalog: %w", err)
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
		}
		extra, err := parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
		}
		methods = append(methods, extra...)
	}
	return New(methods), nil
}

func parse(data []byte) ([]types.Method, error) {
	var methods []types.Method
	if err := yaml.Unmarshal(data, &methods); err != nil {
		return nil, err
	}
	return methods, nil
}

// Lookup returns the method named exactly name, or nil
func (c *Catalog) Lookup(name string) *types.Method {
	if c == nil {
		return nil
	}
	return c.methods[name]
}

// WithPrefix returns methods whose name starts with prefix, sorted by name.
// An empty prefix returns every method.
func (c *Catalog) WithPrefix(prefix string) []*types.Method {
	if c == nil {
		return nil
	}
	start := sort.SearchStrings(c.names, prefix)
	var out []*types.Method
	for _, name := range c.names[start:] {
		if !strings.HasPrefix(name, prefix) {
			break
		}
		out = append(out, c.methods[name])
	}
	return out
}

// Suggest returns up to max names closest to name by edit distance,
// nearest first. Names further than half their length away are dropped.
func (c *Catalog) Suggest(name string, max int) []string {
	if c == nil || name == "" || max <= 0 {
		return nil
	}

	type scored struct {
		name string
		dist int
	}
	var candidates []scored
	for _, n := range c.names {
		d := levenshtein.Distance(name, n, nil)
		limit := len(n) / 2
		if len(name) > len(n) {
			limit = len(name) / 2
		}
		if d <= limit {
			candidates = append(candidates, scored{name: n, dist: d})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].dist < candidates[j].dist
	})
	if len(candidates) > max {
		candidates = candidates[:max]
	}
	out := make([]string, len(candidates))
	for i, s := range candidates {
		out[i] = s.name
	}
	return out
}

// Names returns every method name, sorted
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.names...)
}

// Len returns the number of methods
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}
