package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cubespace-aero/go-tctlm/endpoint"
)

// Profile is the top-level configuration: global defaults plus a named set
// of endpoints an operator can address by name from cmd/obcctl or their
// own tooling.
type Profile struct {
	Global    GlobalConfig            `mapstructure:"global"`
	Endpoints map[string]EndpointSpec `mapstructure:"endpoints"`
}

// GlobalConfig holds settings shared across every endpoint in a profile.
type GlobalConfig struct {
	LogLevel         string `mapstructure:"log_level"`
	DefaultTimeoutMS int    `mapstructure:"default_timeout_ms"`
}

// EndpointSpec is the on-disk, string-typed form of an endpoint.Endpoint.
// ToEndpoint resolves its string fields against the endpoint package's
// enums.
type EndpointSpec struct {
	NodeType        string `mapstructure:"node_type"`
	Carrier         string `mapstructure:"carrier"`
	Protocol        string `mapstructure:"protocol"`
	PrimaryAddr     int    `mapstructure:"primary_addr"`
	PassthroughAddr int    `mapstructure:"passthrough_addr"`
	CSPSourcePort   int    `mapstructure:"csp_source_port"`
	TimeoutMS       int    `mapstructure:"timeout_ms"`
	Passthrough     bool   `mapstructure:"passthrough"`
}

var nodeTypes = map[string]endpoint.NodeType{
	"cubecomputer": endpoint.NodeCubeComputer,
	"cubesense":    endpoint.NodeCubeSense,
	"cubecontrol":  endpoint.NodeCubeControl,
	"cubestar":     endpoint.NodeCubeStar,
	"cubetorquer":  endpoint.NodeCubeTorquer,
	"bootloader":   endpoint.NodeBootloader,
}

var carriers = map[string]endpoint.Carrier{
	"can":  endpoint.CarrierCAN,
	"uart": endpoint.CarrierUART,
	"i2c":  endpoint.CarrierI2C,
}

var protocols = map[string]endpoint.Protocol{
	"native": endpoint.ProtocolNative,
	"csp":    endpoint.ProtocolCSP,
}

// ToEndpoint resolves the spec's string fields into an endpoint.Endpoint,
// then runs endpoint.Endpoint.Validate on the result.
func (s EndpointSpec) ToEndpoint(defaultTimeoutMS int) (endpoint.Endpoint, error) {
	nodeType, ok := nodeTypes[strings.ToLower(s.NodeType)]
	if !ok {
		return endpoint.Endpoint{}, fmt.Errorf("unknown node_type %q", s.NodeType)
	}
	carrier, ok := carriers[strings.ToLower(s.Carrier)]
	if !ok {
		return endpoint.Endpoint{}, fmt.Errorf("unknown carrier %q", s.Carrier)
	}
	protocol, ok := protocols[strings.ToLower(s.Protocol)]
	if !ok {
		return endpoint.Endpoint{}, fmt.Errorf("unknown protocol %q", s.Protocol)
	}

	timeoutMS := s.TimeoutMS
	if timeoutMS == 0 {
		timeoutMS = defaultTimeoutMS
	}

	ep := endpoint.Endpoint{
		NodeType:        nodeType,
		Carrier:         carrier,
		Protocol:        protocol,
		PrimaryAddr:     byte(s.PrimaryAddr),
		PassthroughAddr: byte(s.PassthroughAddr),
		CSPSourcePort:   byte(s.CSPSourcePort),
		Timeout:         time.Duration(timeoutMS) * time.Millisecond,
		Passthrough:     s.Passthrough,
	}
	if err := ep.Validate(); err != nil {
		return endpoint.Endpoint{}, err
	}
	return ep, nil
}

// Load reads a profile from configFile (or, if empty, from ./obcctl.yaml
// and /etc/obcctl/obcctl.yaml) and the OBC_-prefixed environment, applying
// defaults for anything unset.
func Load(configFile string) (*Profile, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("obcctl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/obcctl")
	}

	v.SetEnvPrefix("OBC")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var profile Profile
	if err := v.Unmarshal(&profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&profile); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &profile, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("global.log_level", "info")
	v.SetDefault("global.default_timeout_ms", 500)
}
