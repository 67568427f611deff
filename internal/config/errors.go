package config

import (
	"errors"

	"github.com/zbiljic/coverletter/pkg/failure"
)

var errInvalidArgument = errors.New("invalid arguments provided")

var (
	errLoadVersion = func(version string, err error) error {
		return failure.Configurationf(err, "unable to load config version '%s'", version)
	}

	errUnknownVersion = func(filename, version string) error {
		return failure.Configurationf(nil, "%s: unknown config version '%s'", filename, version)
	}

	errReadVersion = func(filename string, err error) error {
		return failure.Configurationf(err, "unable to read config file %s", filename)
	}

	errFailedToCreateDirectory = func(dir string, err error) error {
		return failure.FileSystemf(err, "failed to create directory %s", dir)
	}

	errFailedToSaveConfig = func(filename string, err error) error {
		return failure.FileSystemf(err, "failed to save config to %s", filename)
	}
)
