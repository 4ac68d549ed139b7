package seeds

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidSeedFormat indicates the seed file could not be decoded.
	ErrInvalidSeedFormat = errors.New("invalid seed format")
	// ErrNoCampuses indicates the seed data declares no campuses.
	ErrNoCampuses = errors.New("no campuses in seed data")
	// ErrNoKeywords indicates the seed data declares no keyword entries.
	ErrNoKeywords = errors.New("no keyword entries in seed data")
)

// Load reads seed data from the given yaml file. An empty path returns
// the compiled-in defaults. Sections missing from the file fall back to
// their default values, so a file can override just the campuses.
func Load(path string) (Seed, error) {
	seed := Default()
	if path == "" {
		return seed, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Seed{}, fmt.Errorf("%w: %s", ErrInvalidSeedFormat, err)
	}

	var loaded Seed
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &loaded,
		TagName: "mapstructure",
	})
	if err != nil {
		return Seed{}, fmt.Errorf("create seed decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return Seed{}, fmt.Errorf("%w: %s", ErrInvalidSeedFormat, err)
	}

	if len(loaded.Campuses) > 0 {
		seed.Campuses = loaded.Campuses
	}
	if len(loaded.Keywords) > 0 {
		seed.Keywords = loaded.Keywords
	}
	if len(loaded.CmsPatterns) > 0 {
		seed.CmsPatterns = loaded.CmsPatterns
	}

	if err := seed.Validate(); err != nil {
		return Seed{}, err
	}
	return seed, nil
}
