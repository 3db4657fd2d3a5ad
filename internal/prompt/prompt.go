// Package prompt picks the drawing prompt shown for a session.
package prompt

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var builtin []byte

// ErrNoPrompts is returned for a prompt list with no usable entries.
var ErrNoPrompts = errors.New("no prompts defined")

type promptFile struct {
	Prompts []string `yaml:"prompts"`
}

// Parse reads a YAML document of the form `prompts: [..]`. Blank entries
// are dropped.
func Parse(data []byte) ([]string, error) {
	var pf promptFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse prompts: %w", err)
	}
	var out []string
	for _, p := range pf.Prompts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoPrompts
	}
	return out, nil
}

// Builtin returns the prompts compiled into the binary.
func Builtin() []string {
	prompts, err := Parse(builtin)
	if err != nil {
		panic(fmt.Sprintf("builtin prompts: %v", err))
	}
	return prompts
}

// Load returns the prompts in path, or the builtin list when path is empty.
func Load(path string) ([]string, error) {
	if path == "" {
		return Builtin(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompts: %w", err)
	}
	return Parse(data)
}

// Pick returns one prompt chosen with rng. A nil rng uses the global source.
func Pick(prompts []string, rng *rand.Rand) string {
	if len(prompts) == 0 {
		return ""
	}
	if rng == nil {
		return prompts[rand.IntN(len(prompts))]
	}
	return prompts[rng.IntN(len(prompts))]
}
