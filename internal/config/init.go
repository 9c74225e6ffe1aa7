package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/doccompile/internal/foundation/errors"
)

const initHeader = `# doccompile configuration.
# Values may reference environment variables as ${VAR}; .env and .env.local
# in the working directory are loaded first.
`

// Init writes an example configuration to path. An existing file is only
// replaced when force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithPath(path).
			Build()
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to inspect config path").
			WithPath(path).
			Build()
	}

	example := Default()
	example.Log.Level = LogLevelInfo
	example.Log.Format = LogFormatText

	data, err := yaml.Marshal(example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, append([]byte(initHeader), data...), 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write config file").
			WithPath(path).
			Build()
	}
	return nil
}
