package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	qerrors "github.com/alexisbeaulieu97/quill/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Path returns $XDG_CONFIG_HOME/quill/config.yaml, falling back to
// ~/.config/quill/config.yaml.
func Path() (string, error) {
	base := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME"))
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "quill", "config.yaml"), nil
}

// Load reads path over the defaults. A missing file is not an error when
// required is false; an explicit --config path must exist.
func Load(path string, required bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			cfg := Default()
			return &cfg, nil
		}
		return nil, qerrors.NewParseError(path, 0, err)
	}
	return Parse(path, data)
}

// Parse decodes data over the defaults and validates the result.
func Parse(path string, data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, qerrors.NewParseError(path, extractLine(err), err)
	}

	cfg.Theme.Default = strings.TrimSpace(cfg.Theme.Default)
	cfg.Theme.Fallback = strings.ToLower(strings.TrimSpace(cfg.Theme.Fallback))
	cfg.Theme.Surface = strings.ToLower(strings.TrimSpace(cfg.Theme.Surface))

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
