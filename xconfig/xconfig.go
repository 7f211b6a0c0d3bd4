// Package xconfig fills a configuration struct from, in order: `default`
// struct tags, YAML or JSON files, and environment variables.
//
//	type Config struct {
//	    Iterations int           `yaml:"iterations" default:"1000"`
//	    Timeout    time.Duration `yaml:"timeout" default:"5s"`
//	}
//
//	var cfg Config
//	err := xconfig.Load(&cfg, xconfig.WithFiles("exprkit.yaml"), xconfig.WithEnv("EXPRKIT"))
//
// Later sources override earlier ones field by field.
package xconfig

import (
	"errors"
	"fmt"
	"reflect"
)

var ErrNotPointer = errors.New("config must be a non-nil pointer to a struct")

type Options struct {
	files     []string
	envPrefix string
	strict    bool
}

type Option func(*Options)

// WithFiles loads the named files in order. The format is chosen by
// extension: .yaml, .yml or .json.
func WithFiles(filenames ...string) Option {
	return func(o *Options) {
		o.files = append(o.files, filenames...)
	}
}

// WithEnv reads environment variables named PREFIX_FIELD, with nested
// struct fields joined by underscores.
func WithEnv(prefix string) Option {
	return func(o *Options) {
		o.envPrefix = prefix
	}
}

// WithStrict rejects file keys that do not map to a struct field.
func WithStrict() Option {
	return func(o *Options) {
		o.strict = true
	}
}

func Load(config any, options ...Option) error {
	opts := &Options{}
	for _, option := range options {
		option(opts)
	}

	configElem, err := validateConfigPointer(config)
	if err != nil {
		return err
	}

	if err := applyDefaultTags(configElem); err != nil {
		return fmt.Errorf("failed to apply default tags: %w", err)
	}

	for _, filename := range opts.files {
		if err := loadFromFile(config, filename, opts.strict); err != nil {
			return fmt.Errorf("failed to load file %s: %w", filename, err)
		}
	}

	if opts.envPrefix != "" {
		if err := loadFromEnv(configElem, opts.envPrefix); err != nil {
			return fmt.Errorf("failed to load from environment: %w", err)
		}
	}

	return nil
}

func validateConfigPointer(config any) (reflect.Value, error) {
	v := reflect.ValueOf(config)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, ErrNotPointer
	}
	return v.Elem(), nil
}
