package validate

import "fmt"

// Policy decides what happens to quality rules of an unknown kind.
type Policy string

const (
	PolicyIgnore Policy = "ignore"
	PolicyWarn   Policy = "warn"
	PolicyFail   Policy = "fail"
)

// ValidPolicies lists the accepted policy names.
var ValidPolicies = []Policy{PolicyIgnore, PolicyWarn, PolicyFail}

// ParsePolicy converts a policy name. The empty string means PolicyWarn.
func ParsePolicy(name string) (Policy, error) {
	if name == "" {
		return PolicyWarn, nil
	}
	for _, p := range ValidPolicies {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid unknown-rule policy %q: must be one of %v", name, ValidPolicies)
}
