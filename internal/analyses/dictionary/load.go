package dictionary

import (
	"errors"
	"fmt"
	"math"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// ErrInvalid marks a dictionary that fails validation.
var ErrInvalid = errors.New("invalid dictionary")

// LoadFile reads a YAML override file on top of Default. Keys absent from the
// file keep their default values; present lists replace the default lists.
func LoadFile(path string) (Dictionary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Dictionary{}, fmt.Errorf("read dictionary %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes YAML overrides on top of Default and validates the result.
func Parse(raw []byte) (Dictionary, error) {
	d := Default()
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return Dictionary{}, fmt.Errorf("decode dictionary: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Dictionary{}, err
	}
	return d, nil
}

// Validate checks that patterns compile and weights are usable.
func (d Dictionary) Validate() error {
	for _, group := range [][]string{d.KeywordPatterns, d.SkillPatterns, d.MetricPatterns} {
		for _, p := range group {
			if _, err := regexp.Compile(p); err != nil {
				return fmt.Errorf("%w: pattern %q: %v", ErrInvalid, p, err)
			}
		}
	}
	if len(d.StrongVerbs) == 0 {
		return fmt.Errorf("%w: strongVerbs must not be empty", ErrInvalid)
	}
	for _, w := range []float64{d.Weights.Keyword, d.Weights.Section, d.Weights.Skills, d.Weights.Technical,
		d.Weights.Tools, d.Weights.ActionVerbs, d.Weights.Metrics, d.Weights.Certifications, d.Weights.IndustryTerms} {
		if w < 0 || math.IsNaN(w) {
			return fmt.Errorf("%w: negative weight %v", ErrInvalid, w)
		}
	}
	if sum := d.Weights.Sum(); sum <= 0 || sum > 2 {
		return fmt.Errorf("%w: weights sum to %.4f", ErrInvalid, sum)
	}
	if d.RepeatedThreshold < 1 {
		return fmt.Errorf("%w: repeatedThreshold must be positive", ErrInvalid)
	}
	return nil
}
