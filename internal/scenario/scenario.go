// Package scenario loads YAML sweep descriptions for the dalgebra CLI.
//
// A scenario file names a list of commutator problems to run in one
// batch: each job carries the normal-form order n, the ansatz order
// bound m, and the polynomial degree d of the coefficient ansatz.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Job is one commutator problem inside a sweep.
type Job struct {
	// Name labels the job in reports. Empty names are filled in as
	// job-1, job-2, ... by position.
	Name string `yaml:"name"`
	// Order is the order n of the normal-form operator L.
	Order int `yaml:"order"`
	// Bound is the order bound m of the ansatz P.
	Bound int `yaml:"bound"`
	// Degree is the polynomial degree d of the coefficient ansatz.
	Degree int `yaml:"degree"`
}

// Scenario is a named batch of jobs.
type Scenario struct {
	Name string `yaml:"name"`
	Jobs []Job  `yaml:"jobs"`
}

// Load reads and validates a scenario file. A scenario without an
// explicit name takes the file's base name.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	if s.Name == "" {
		base := filepath.Base(path)
		s.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return s, nil
}

// Parse decodes a scenario document. Unknown fields are rejected so
// typos in job files fail loudly instead of running a default job.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty scenario document")
		}
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the job list and fills in missing job names.
// Job bounds mirror the pipeline's own checks so a bad sweep file
// fails at load time, before any job runs.
func (s *Scenario) Validate() error {
	if len(s.Jobs) == 0 {
		return errors.New("scenario has no jobs")
	}
	seen := make(map[string]bool, len(s.Jobs))
	for i := range s.Jobs {
		j := &s.Jobs[i]
		if j.Name == "" {
			j.Name = fmt.Sprintf("job-%d", i+1)
		}
		if seen[j.Name] {
			return fmt.Errorf("duplicate job name %q", j.Name)
		}
		seen[j.Name] = true
		if j.Order < 2 {
			return fmt.Errorf("job %q: order must be at least 2, got %d", j.Name, j.Order)
		}
		if j.Bound < j.Order {
			return fmt.Errorf("job %q: bound must be at least the order %d, got %d", j.Name, j.Order, j.Bound)
		}
		if j.Degree < 0 {
			return fmt.Errorf("job %q: degree must be non-negative, got %d", j.Name, j.Degree)
		}
	}
	return nil
}
