package config

import (
	"github.com/zbiljic/vconfig-go"
)

// loadMigrate loads the config file at path and migrates it to the current
// version
func loadMigrate(path string) (*Config, error) {
	version, err := vconfig.GetVersion(path)
	if err != nil {
		return nil, errReadVersion(path, err)
	}

	var config *Config

	switch version {
	case configVersionV0:
		old, err := vconfig.LoadConfig[configV0](path)
		if err != nil {
			return nil, errLoadVersion(version, err)
		}
		config = migrateV0(old)
	case configVersionV1:
		config, err = vconfig.LoadConfig[configV1](path)
		if err != nil {
			return nil, errLoadVersion(version, err)
		}
		config.applyDefaults()
	default:
		return nil, errUnknownVersion(path, version)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}
