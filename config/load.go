package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

// LoadWithEnv reads <name>.yaml from the working directory or one of dirs
// (relative to it), then applies environment overrides. POSTGRES_SSLMODE
// sets postgres.sslMode: env segments are matched to the YAML keys
// ignoring case.
func LoadWithEnv[T any](name string, dirs ...string) (*T, error) {
	path, err := findConfigFile(name+".yaml", dirs)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}

	fromYAML := k.Raw()
	overrides := env.Provider(".", env.Opt{
		TransformFunc: func(key, value string) (string, any) {
			return canonicalizeEnvKey(key, fromYAML), value
		},
	})
	if err := k.Load(overrides, nil); err != nil {
		return nil, errors.Wrap(err, "read environment")
	}

	cfg := new(T)
	err = k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
			MatchName:        strings.EqualFold,
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}

	return cfg, nil
}

func findConfigFile(filename string, dirs []string) (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", errors.WithStack(err)
	}

	for _, dir := range append([]string{"."}, dirs...) {
		candidate := filepath.Join(wd, dir, filename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	return "", errors.Errorf("%s not found under %s", filename, wd)
}

// canonicalizeEnvKey maps an env var name onto the dotted koanf path,
// reusing the spelling of keys already present in tree. Segments with no
// match are lower-cased.
func canonicalizeEnvKey(envKey string, tree map[string]any) string {
	var path []string
	for _, segment := range strings.Split(strings.ToLower(envKey), "_") {
		if segment == "" {
			continue
		}

		key, child := matchKey(tree, segment)
		path = append(path, key)
		tree = child
	}

	return strings.Join(path, ".")
}

func matchKey(tree map[string]any, segment string) (string, map[string]any) {
	want := alnumLower(segment)
	for key, value := range tree {
		if alnumLower(key) == want {
			child, _ := value.(map[string]any)

			return key, child
		}
	}

	return segment, nil
}

func alnumLower(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}

		return -1
	}, s)
}

// buildReplicasFromEnv reads POSTGRES_REPLICAS_<n>_{HOST,PORT,USERNAME,PASSWORD}
// for n = 0, 1, ... until a host or port is missing.
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig
	for n := 0; ; n++ {
		get := func(field string) string {
			return os.Getenv("POSTGRES_REPLICAS_" + strconv.Itoa(n) + "_" + field)
		}

		host, port := get("HOST"), get("PORT")
		if host == "" || port == "" {
			return replicas
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: get("USERNAME"),
			Password: get("PASSWORD"),
		})
	}
}
