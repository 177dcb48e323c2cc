package cmd

import (
	"os"

	e "github.com/pkg/errors"
	"github.com/sahib/config"
)

// currentVersion is the current version of the tool config.
const currentVersion = 0

// defaultsV0 is the default config validation for the stencil tool.
var defaultsV0 = config.DefaultMapping{
	"io": config.DefaultMapping{
		"buffer_size": config.DefaultEntry{
			Default:      64 * 1024,
			NeedsRestart: false,
			Docs:         "Read-ahead in bytes used when streaming views.",
			Validator:    config.IntRangeValidator(1, 16*1024*1024),
		},
	},
	"compress": config.DefaultMapping{
		"algo": config.DefaultEntry{
			Default:      "guess",
			NeedsRestart: false,
			Docs:         "Compression algorithm used by `zip` when none is given.",
			Validator: config.EnumValidator(
				"guess", "none", "snappy", "lz4",
			),
		},
	},
	"log": config.DefaultMapping{
		"color": config.DefaultEntry{
			Default:      true,
			NeedsRestart: false,
			Docs:         "Colorize the log output.",
		},
	},
}

// openConfig loads the config at `path`. An empty path or a missing file
// yields the pure defaults, so the tool works without any setup.
func openConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Open(nil, defaultsV0, config.StrictnessPanic)
	}

	fd, err := os.Open(path)
	if os.IsNotExist(err) {
		return config.Open(nil, defaultsV0, config.StrictnessPanic)
	}

	if err != nil {
		return nil, e.Wrapf(err, "failed to open config at %s", path)
	}

	defer fd.Close()

	mgr := config.NewMigrater(currentVersion, config.StrictnessPanic)
	mgr.Add(0, nil, defaultsV0)

	cfg, err := mgr.Migrate(config.NewYamlDecoder(fd))
	if err != nil {
		return nil, e.Wrap(err, "failed to migrate config")
	}

	return cfg, nil
}
