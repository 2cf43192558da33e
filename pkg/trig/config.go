package trig

import (
	"fmt"

	"github.com/oxtrig/trig/internal/iri"
)

// Config is an immutable builder for reader sessions: each With* method
// returns a new value, so a seed Config can be reused to start several
// independent sessions (NewReader copies it in at construction).
type Config struct {
	base              string
	prefixes          map[string]string
	withQuotedTriples bool
}

// NewConfig returns an empty Config: no base IRI, no prefixes, star
// syntax disabled.
func NewConfig() *Config {
	return &Config{prefixes: make(map[string]string)}
}

func (c *Config) clone() *Config {
	prefixes := make(map[string]string, len(c.prefixes))
	for k, v := range c.prefixes {
		prefixes[k] = v
	}
	return &Config{base: c.base, prefixes: prefixes, withQuotedTriples: c.withQuotedTriples}
}

// WithBaseIRI sets the base IRI used to resolve relative references.
// Rejects a value with no scheme component; this is syntactic acceptance
// only, not full IRI validation.
func (c *Config) WithBaseIRI(base string) (*Config, error) {
	if !iri.IsAbsolute(base) {
		return nil, fmt.Errorf("invalid IRI %q: base must be absolute", base)
	}
	next := c.clone()
	next.base = base
	return next, nil
}

// WithPrefix installs a prefix binding (the empty prefix name is valid).
func (c *Config) WithPrefix(name, prefixIRI string) (*Config, error) {
	if !iri.IsAbsolute(prefixIRI) {
		return nil, fmt.Errorf("invalid IRI %q: prefix IRI must be absolute", prefixIRI)
	}
	next := c.clone()
	next.prefixes[name] = prefixIRI
	return next, nil
}

// WithQuotedTriples enables TriG-star's `<< s p o >>` syntax.
func (c *Config) WithQuotedTriples() *Config {
	next := c.clone()
	next.withQuotedTriples = true
	return next
}
