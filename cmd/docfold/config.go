package main

import (
	"errors"
	"io"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// configPaths are the YAML config locations kong consults, in order.
// Flags on the command line always win over config values.
var configPaths = []string{
	".docfold.yaml",
	"~/.config/docfold/config.yaml",
	"/etc/docfold/config.yaml",
}

// yamlConfig adapts a flat YAML document (keys matching flag names)
// into a kong resolver.
func yamlConfig(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil {
		if errors.Is(err, io.EOF) {
			values = map[string]any{}
		} else {
			return nil, err
		}
	}

	var f kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		v, ok := values[flag.Name]
		if !ok {
			return nil, nil
		}
		return v, nil
	}
	return f, nil
}
