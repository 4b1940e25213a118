package configparser

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/spf13/viper"
)

var ErrNotPointer = errors.New("destination must be a pointer to struct")

// LoadAndParseYaml fills dst from, in order of precedence: environment variables,
// the YAML file at filepath, and the `default` struct tags.
//
// Keys come from `mapstructure` tags and nest with dots; the matching environment
// variable is the upper-cased key with dots replaced by underscores, so
// database.host is read from DATABASE_HOST. A missing file is not an error.
func LoadAndParseYaml(filepath string, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return ErrNotPointer
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	registerDefaults(v, rv.Elem().Type(), "")

	if filepath != "" {
		if _, err := os.Stat(filepath); err == nil {
			v.SetConfigFile(filepath)
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("could not read config file: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("could not stat config file: %w", err)
		}
	}

	if err := v.Unmarshal(dst); err != nil {
		return fmt.Errorf("could not decode config: %w", err)
	}

	return nil
}

// registerDefaults walks the struct type and registers every leaf key with viper.
// Leaves without a default tag are registered with an empty value so that
// AutomaticEnv still resolves them during Unmarshal.
func registerDefaults(v *viper.Viper, t reflect.Type, prefix string) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		name := strings.Split(f.Tag.Get("mapstructure"), ",")[0]
		if name == "" || name == "-" {
			name = strings.ToLower(f.Name)
		}
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}

		if f.Type.Kind() == reflect.Struct && f.Type.PkgPath() != "time" {
			registerDefaults(v, f.Type, key)
			continue
		}

		def, ok := f.Tag.Lookup("default")
		if !ok {
			def = ""
		}
		v.SetDefault(key, def)
	}
}
