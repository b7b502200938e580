// Package config loads a named set of endpoint.Endpoint specifications and
// logging/timeout defaults from a YAML file and the environment, in the
// style of dbehnke-dmr-nexus's pkg/config: mapstructure-tagged structs,
// viper.SetDefault for defaults, and a Load(path) entry point.
package config
