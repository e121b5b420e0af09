package benchmark

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/camayank/StartupValuator-sub000/pkg/models"
)

// OverrideFile is the on-disk shape of config/benchmarks.yaml. Keys are
// "<sector>/<region>"; a bare "<sector>" key applies to every region.
type OverrideFile struct {
	Overrides map[string]Overrides `yaml:"overrides"`
}

// FileOverrideSource serves assumption overrides from a YAML file loaded once
// at startup. It implements OverrideSource.
type FileOverrideSource struct {
	byKey map[string]Overrides
}

// LoadOverrideFile reads and parses a benchmarks override YAML file.
// A missing file is not an error; it yields an empty source.
func LoadOverrideFile(path string) (*FileOverrideSource, error) {
	src := &FileOverrideSource{byKey: map[string]Overrides{}}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return src, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read benchmark overrides: %w", err)
	}

	var file OverrideFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse benchmark overrides: %w", err)
	}
	if file.Overrides != nil {
		src.byKey = file.Overrides
	}
	return src, nil
}

// GetFinancialAssumptionOverrides returns the most specific entry for the
// sector/region pair, or nil when none exists.
func (s *FileOverrideSource) GetFinancialAssumptionOverrides(_ context.Context, sector models.Sector, region models.Region) (*Overrides, error) {
	if ov, ok := s.byKey[fmt.Sprintf("%s/%s", sector, region)]; ok {
		return &ov, nil
	}
	if ov, ok := s.byKey[string(sector)]; ok {
		return &ov, nil
	}
	return nil, nil
}
