package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/naoina/toml"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/codeblocks/internal/foundation/errors"
)

// PreprocessorName is the name codeblocks is registered under in book.toml.
const PreprocessorName = "codeblocks"

// LoadFile reads a raw configuration payload from disk for the standalone
// annotate command.
//
// A .toml file is treated as an mdBook book.toml and its
// [preprocessor.codeblocks] table is returned, with mdBook's own keys
// removed. A .yaml or .yml file holds the payload at the top level.
// Environment variables in the file are expanded before parsing.
func LoadFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read config file").
			WithContext("path", path).
			Build()
	}
	data = []byte(os.ExpandEnv(string(data)))

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return decodeBookTOML(path, data)
	case ".yaml", ".yml":
		return decodeYAML(path, data)
	default:
		return nil, errors.ConfigError("unsupported config file type").
			WithContext("path", path).
			WithContext("expected", []string{".toml", ".yaml", ".yml"}).
			Build()
	}
}

func decodeBookTOML(path string, data []byte) (map[string]any, error) {
	var book map[string]any
	if err := toml.NewDecoder(bytes.NewReader(data)).Decode(&book); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "invalid TOML").
			Fatal().
			WithContext("path", path).
			Build()
	}

	pre, _ := book["preprocessor"].(map[string]any)
	table, _ := pre[PreprocessorName].(map[string]any)
	return StripHostKeys(table), nil
}

func decodeYAML(path string, data []byte) (map[string]any, error) {
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "invalid YAML").
			Fatal().
			WithContext("path", path).
			Build()
	}
	return raw, nil
}
