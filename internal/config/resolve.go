package config

import (
	"sort"

	"git.home.luguber.info/inful/codeblocks/internal/foundation/errors"
	"git.home.luguber.info/inful/codeblocks/internal/language"
)

// Resolve validates raw and builds a Config from it.
//
// raw is the untyped preprocessor table: an optional string under
// GlobalIconKey plus one table per language option key. Any other key, any
// unknown field inside a language table, and any value of the wrong type is
// a fatal configuration error. Keys are visited in sorted order so the
// reported error does not depend on map iteration.
func Resolve(raw map[string]any, opts ...Option) (*Config, error) {
	cfg := Default(opts...)

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		val := raw[key]

		if key == GlobalIconKey {
			icon, ok := val.(string)
			if !ok {
				return nil, typeError(key, "string", val)
			}
			cfg.globalIcon = icon
			cfg.hasGlobalIcon = true
			continue
		}

		if _, ok := language.FromOptionKey(key); !ok {
			return nil, errors.ConfigError("unexpected configuration key").
				WithContext("key", key).
				WithContext("expected", AcceptedKeys()).
				Build()
		}

		table, ok := val.(map[string]any)
		if !ok {
			return nil, typeError(key, "table", val)
		}
		o, err := parseOverride(key, table)
		if err != nil {
			return nil, err
		}
		cfg.overrides[key] = o
	}

	return cfg, nil
}

func parseOverride(key string, table map[string]any) (Override, error) {
	fields := make([]string, 0, len(table))
	for f := range table {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var o Override
	for _, f := range fields {
		var dst **string
		switch f {
		case FieldLabel:
			dst = &o.Label
		case FieldLink:
			dst = &o.Link
		case FieldIcon:
			dst = &o.Icon
		case FieldColor:
			dst = &o.Color
		default:
			return Override{}, errors.ConfigError("unexpected configuration key").
				WithContext("key", key+"."+f).
				WithContext("expected", OverrideFields).
				Build()
		}

		s, ok := table[f].(string)
		if !ok {
			return Override{}, typeError(key+"."+f, "string", table[f])
		}
		*dst = &s
	}
	return o, nil
}

func typeError(key, want string, got any) error {
	return errors.ConfigError("configuration value has the wrong type").
		WithContext("key", key).
		WithContext("want", want).
		WithContext("got", typeName(got)).
		Build()
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nothing"
	case string:
		return "string"
	case bool:
		return "boolean"
	case map[string]any:
		return "table"
	case []any:
		return "array"
	default:
		return "number"
	}
}
