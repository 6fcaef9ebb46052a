package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/mitchellh/mapstructure"
)

func loadEnvironment(k *koanf.Koanf) error {
	return k.Load(env.Provider(EnvConfigPrefix, "_", func(s string) string {
		if s == ConfigFilePath {
			return ""
		}

		return trimEnvKey(s)
	}), nil)
}

func loadFile(k *koanf.Koanf, path string) error {
	return k.Load(file.Provider(path), yaml.Parser())
}

func unmarshalKoanf(k *koanf.Koanf, cfg *Config) error {
	return k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		Tag: "yaml",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       composeDecodeHookFunc(),
			Metadata:         nil,
			Result:           cfg,
			TagName:          "yaml",
			WeaklyTypedInput: true,
		},
	})
}

func composeDecodeHookFunc() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		zoneListHookFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
	)
}

// zoneListHookFunc allows zones to be given as YAML sequence
func zoneListHookFunc() mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if f.Kind() != reflect.Slice || t != reflect.TypeOf(ZoneSource{}) {
			return data, nil
		}

		s := reflect.ValueOf(data)
		zones := make([]string, 0, s.Len())

		for i := 0; i < s.Len(); i++ {
			zones = append(zones, strings.TrimSpace(toString(s.Index(i).Interface())))
		}

		return TextZoneSource(zones...), nil
	}
}

func toString(v interface{}) string {
	return fmt.Sprint(v)
}
