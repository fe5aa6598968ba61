package intensity

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/storm-track-viz/internal/domain"
)

// StyleConfig is the YAML shape for palette and ring overrides. Both sections
// are optional; omitted sections keep the defaults.
type StyleConfig struct {
	Palette map[string]string `yaml:"palette"`
	Rings   []CircleConfig    `yaml:"rings"`
}

// LoadStyle reads a YAML style file and returns the effective palette and
// ring table. Overridden palette entries must use canonical category labels
// and #RRGGBB colors; rings must have positive radii and strictly ascending
// thresholds.
func LoadStyle(path string) (Palette, []CircleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("style file not found: %s", path)
		}
		return nil, nil, fmt.Errorf("reading style file: %w", err)
	}

	var cfg StyleConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing style YAML: %w", err)
	}

	palette := DefaultPalette()
	for label, hex := range cfg.Palette {
		// Store under the canonical label; Color only looks up canonical keys.
		cat := domain.Category(strings.ToUpper(strings.TrimSpace(label)))
		if !cat.IsValid() {
			return nil, nil, fmt.Errorf("palette: unknown category %q", label)
		}
		if _, _, _, ok := parseHexColor(hex); !ok {
			return nil, nil, fmt.Errorf("palette: %s: invalid color %q", label, hex)
		}
		palette[cat] = hex
	}

	rings := DefaultRings()
	if len(cfg.Rings) > 0 {
		for i, ring := range cfg.Rings {
			if ring.RadiusKm <= 0 {
				return nil, nil, fmt.Errorf("rings[%d]: radius_km must be positive", i)
			}
			if ring.WindSpeedThreshold < 0 {
				return nil, nil, fmt.Errorf("rings[%d]: wind_speed_threshold must not be negative", i)
			}
		}
		if !sort.SliceIsSorted(cfg.Rings, func(i, j int) bool {
			return cfg.Rings[i].WindSpeedThreshold < cfg.Rings[j].WindSpeedThreshold
		}) {
			return nil, nil, fmt.Errorf("rings: thresholds must be ascending")
		}
		rings = cfg.Rings
	}

	return palette, rings, nil
}
