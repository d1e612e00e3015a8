package slide

import (
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

const (
	DEFAULT_SLIDE_ITERATIONS = 3
	DEFAULT_SKIN             = 1e-5
	DEFAULT_GROUND_PROBE     = 0.1
	DEFAULT_CACHE_SIZE       = 1024
)

// Config tunes the mesh, its solver and the helpers built on it
type Config struct {
	// GridResolution is the number of spatial grid cells along each horizontal axis
	GridResolution int `json:"grid_resolution"`
	// SlideIterations bounds the passes of CollideAndSlide and RepelAndSlide
	SlideIterations int `json:"slide_iterations"`
	// Skin is the distance kept between a slid sphere and the surface it touched
	Skin float64 `json:"skin"`
	// GroundProbe is how far below a body World looks for ground
	GroundProbe float64 `json:"ground_probe"`
	// CacheSize is the number of memoized results kept by a Cache
	CacheSize int `json:"cache_size"`
}

// DefaultConfig returns the configuration used by the game
func DefaultConfig() Config {
	return Config{
		GridResolution:  DEFAULT_GRID_RESOLUTION,
		SlideIterations: DEFAULT_SLIDE_ITERATIONS,
		Skin:            DEFAULT_SKIN,
		GroundProbe:     DEFAULT_GROUND_PROBE,
		CacheSize:       DEFAULT_CACHE_SIZE,
	}
}

// Validate ensures every field is usable, reporting all problems at once.
func (config *Config) Validate(path string) error {
	var err error

	if config.GridResolution < 1 {
		err = multierr.Append(err, errors.Errorf("%s.grid_resolution must be at least 1, got %d", path, config.GridResolution))
	}
	if config.SlideIterations < 1 {
		err = multierr.Append(err, errors.Errorf("%s.slide_iterations must be at least 1, got %d", path, config.SlideIterations))
	}
	if config.Skin < 0 {
		err = multierr.Append(err, errors.Errorf("%s.skin must not be negative, got %v", path, config.Skin))
	}
	if config.GroundProbe < 0 {
		err = multierr.Append(err, errors.Errorf("%s.ground_probe must not be negative, got %v", path, config.GroundProbe))
	}
	if config.CacheSize < 0 {
		err = multierr.Append(err, errors.Errorf("%s.cache_size must not be negative, got %d", path, config.CacheSize))
	}

	return err
}

// ParseConfig decodes attributes (typically unmarshalled JSON) over DefaultConfig and validates
// the result. Unknown keys are rejected.
func ParseConfig(attributes map[string]any) (Config, error) {
	config := DefaultConfig()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           &config,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Config{}, errors.Wrap(err, "creating config decoder")
	}
	if err := decoder.Decode(attributes); err != nil {
		return Config{}, errors.Wrap(err, "decoding collision config")
	}
	if err := config.Validate("collision"); err != nil {
		return Config{}, err
	}

	return config, nil
}
