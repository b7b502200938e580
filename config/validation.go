package config

import "fmt"

// validate checks the fully-unmarshalled profile for values Load itself
// cannot catch (defaults fill in zero values, but a malformed endpoint
// entry should fail fast rather than surface a confusing error on first
// use).
func validate(p *Profile) error {
	if p.Global.DefaultTimeoutMS <= 0 {
		return fmt.Errorf("global.default_timeout_ms must be positive")
	}

	for name, spec := range p.Endpoints {
		if _, err := spec.ToEndpoint(p.Global.DefaultTimeoutMS); err != nil {
			return fmt.Errorf("endpoint %s: %w", name, err)
		}
	}

	return nil
}
