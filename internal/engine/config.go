// Package engine models the driver's view of the dataflow engine: its native
// configuration, the generic command-line options it owns, the Flow and
// Cascade execution primitives, and the statistics they produce.
//
// The engine itself is a collaborator. This package ships a local in-process
// implementation used by the built-in jobs and by tests; a cluster-backed
// engine would implement the same Flow and Cascade interfaces.
package engine

import (
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/flowchain/internal/fsutil"
)

// Config is the engine's native configuration: a flat string key/value set
// plus the list of resource files it was populated from. It is mutated by
// ParseGenericOptions during mode resolution and read-only afterwards.
type Config struct {
	values map[string]string
	files  []string
}

// NewConfig returns an empty engine configuration.
func NewConfig() *Config {
	return &Config{values: make(map[string]string)}
}

// Set stores a single key/value pair, replacing any previous value.
func (c *Config) Set(key, value string) {
	c.values[key] = value
}

// Get returns the value stored under key.
func (c *Config) Get(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

// GetOrElse returns the value stored under key, or def when absent.
func (c *Config) GetOrElse(key, def string) string {
	if v, ok := c.values[key]; ok {
		return v
	}
	return def
}

// Files returns the resource files loaded into this configuration, in load order.
func (c *Config) Files() []string {
	return append([]string(nil), c.files...)
}

// Keys returns all configured keys in sorted order.
func (c *Config) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LoadPath loads engine configuration from an HCL file, or from every .hcl
// file under a directory (recursively, in sorted order). Later files win on
// key conflicts.
func (c *Config) LoadPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat config path: %w", err)
	}

	if !info.IsDir() {
		return c.loadFile(path)
	}

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return fmt.Errorf("walking config directory %s: %w", path, err)
	}
	for _, f := range files {
		if err := c.loadFile(f); err != nil {
			return err
		}
	}
	return nil
}

// loadFile parses one HCL file of top-level attributes. Every attribute value
// must be convertible to a string; numbers and booleans are accepted and
// coerced.
func (c *Config) loadFile(path string) error {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	attrs, diags := hclFile.Body.JustAttributes()
	if diags.HasErrors() {
		return fmt.Errorf("failed to read attributes in %s: %w", path, diags)
	}

	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return fmt.Errorf("failed to evaluate %q in %s: %w", name, path, diags)
		}
		str, err := convert.Convert(val, cty.String)
		if err != nil {
			return fmt.Errorf("config value %q in %s is not a string-like value: %w", name, path, err)
		}
		c.values[name] = str.AsString()
	}

	c.files = append(c.files, path)
	return nil
}
