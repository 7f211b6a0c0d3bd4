package xconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrUnsupportedFormat = errors.New("unsupported config file format")

// loadFromFile decodes filename into config. JSON is decoded with the YAML
// decoder, of which it is a subset, so both formats share the `yaml` tags
// and accept durations written as "1m30s".
func loadFromFile(config any, filename string, strict bool) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json", ".yaml", ".yml":
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(strict)
	if err := dec.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
