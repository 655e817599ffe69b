package usecase

import (
	"fmt"
	"strings"

	"collections-agent/internal/config"
)

// CapabilityChecker reports which credentials a provider is missing.
// *config.Config satisfies it.
type CapabilityChecker interface {
	Missing(c config.Capability) []string
}

// requireCapability runs before every external call so a missing credential
// surfaces as a configuration error instead of a provider failure.
func requireCapability(checker CapabilityChecker, c config.Capability) error {
	missing := checker.Missing(c)
	if len(missing) == 0 {
		return nil
	}
	return newError(ErrorConfiguration, "missing_"+string(c)+"_credentials",
		fmt.Errorf("missing %s", strings.Join(missing, ", ")))
}
