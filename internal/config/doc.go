// Package config defines the format-agnostic model of a blotter run file,
// along with the Loader interface implemented by the HCL and YAML loaders.
//
// The `config.Model` is the single source of truth for the app package;
// concrete loaders are provided in separate packages.
package config
