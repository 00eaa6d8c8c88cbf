package models

import "fmt"

// FrameworkPolicy decides which framework code the merged record keeps.
// Precedence: force-default wins, then an explicit code, then the master
// record's own code. ForceDefault and ExplicitCode are mutually exclusive
// and rejected at config time.
type FrameworkPolicy struct {
	ForceDefault bool
	ExplicitCode string
}

// Validate rejects the force-default + explicit combination.
func (p FrameworkPolicy) Validate() error {
	if p.ForceDefault && p.ExplicitCode != "" {
		return fmt.Errorf("framework code %q and force-default-framework are mutually exclusive", p.ExplicitCode)
	}
	return nil
}

// Resolve returns the framework code to apply given the master's current code.
func (p FrameworkPolicy) Resolve(masterCode string) string {
	if p.ForceDefault {
		return ""
	}
	if p.ExplicitCode != "" {
		return p.ExplicitCode
	}
	return masterCode
}
