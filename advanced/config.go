package advanced

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Formats accepted by DecodeOptions.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// LoadOptions reads router options from a YAML (.yaml, .yml) or TOML (.toml)
// file. A leading ~ in path is expanded. Unknown keys are an error.
func LoadOptions(path string) (*Options, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, errors.Wrapf(err, "expanding %q", path)
	}
	format, err := formatForPath(expanded)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, errors.Wrap(err, "reading options")
	}
	opt, err := DecodeOptions(bytes.NewReader(data), format)
	if err != nil {
		return nil, errors.Wrapf(err, "options file %s", expanded)
	}
	return opt, nil
}

func formatForPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.Errorf("unsupported options file %q: want .yaml, .yml or .toml", path)
}

// DecodeOptions decodes options in the given format. An empty document
// decodes to empty options, which route with the defaults.
func DecodeOptions(r io.Reader, format string) (*Options, error) {
	opt := &Options{}
	switch format {
	case FormatYAML:
		decoder := yaml.NewDecoder(r)
		decoder.KnownFields(true)
		if err := decoder.Decode(opt); err != nil && err != io.EOF {
			return nil, errors.Wrap(err, "decoding yaml")
		}
	case FormatTOML:
		decoder := toml.NewDecoder(r)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(opt); err != nil {
			return nil, errors.Wrap(err, "decoding toml")
		}
	default:
		return nil, errors.Errorf("unknown options format %q", format)
	}
	return opt, nil
}
