package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cubespace-aero/go-tctlm/endpoint"
)

func TestLoadUsesDefaultsWhenNoFile(t *testing.T) {
	dir := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() = %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir() = %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })

	profile, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") = %v", err)
	}
	if profile.Global.LogLevel != "info" {
		t.Errorf("Global.LogLevel = %q, want info", profile.Global.LogLevel)
	}
	if profile.Global.DefaultTimeoutMS != 500 {
		t.Errorf("Global.DefaultTimeoutMS = %d, want 500", profile.Global.DefaultTimeoutMS)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "obcctl.yaml")
	body := `
global:
  log_level: debug
  default_timeout_ms: 750
endpoints:
  primary:
    node_type: CubeComputer
    carrier: can
    protocol: native
    primary_addr: 2
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile() = %v", err)
	}

	profile, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if profile.Global.LogLevel != "debug" {
		t.Errorf("Global.LogLevel = %q, want debug", profile.Global.LogLevel)
	}

	spec, ok := profile.Endpoints["primary"]
	if !ok {
		t.Fatal("endpoint \"primary\" not found")
	}
	ep, err := spec.ToEndpoint(profile.Global.DefaultTimeoutMS)
	if err != nil {
		t.Fatalf("ToEndpoint() = %v", err)
	}
	if ep.NodeType != endpoint.NodeCubeComputer {
		t.Errorf("NodeType = %v, want NodeCubeComputer", ep.NodeType)
	}
	if ep.Carrier != endpoint.CarrierCAN {
		t.Errorf("Carrier = %v, want CarrierCAN", ep.Carrier)
	}
	if ep.PrimaryAddr != 2 {
		t.Errorf("PrimaryAddr = %d, want 2", ep.PrimaryAddr)
	}
}

func TestEndpointSpecToEndpointUnknownNodeType(t *testing.T) {
	spec := EndpointSpec{NodeType: "nope", Carrier: "can", Protocol: "native"}
	if _, err := spec.ToEndpoint(500); err == nil {
		t.Fatal("ToEndpoint() = nil, want error for unknown node_type")
	}
}

func TestValidateRejectsBadEndpoint(t *testing.T) {
	p := &Profile{
		Global: GlobalConfig{DefaultTimeoutMS: 500},
		Endpoints: map[string]EndpointSpec{
			"bad": {NodeType: "CubeComputer", Carrier: "uart", Protocol: "csp"},
		},
	}
	if err := validate(p); err == nil {
		t.Fatal("validate() = nil, want error for UART+CSP endpoint")
	}
}
