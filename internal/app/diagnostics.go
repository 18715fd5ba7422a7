package app

import (
	"github.com/vk/flowchain/internal/diagnostics"
	"github.com/vk/flowchain/internal/driver"
	"github.com/vk/flowchain/internal/mode"
)

// Remediations returns the known-cause handlers consulted when a failure
// reaches the process boundary. Handlers are tried in order; the first match
// wins.
func Remediations() []diagnostics.Remediation {
	return []diagnostics.Remediation{
		{
			Match:  diagnostics.MatchIs(mode.ErrUnspecified),
			Advice: "Pass exactly one of --local or --hdfs after the job name.",
		},
		{
			Match:  diagnostics.MatchIs(driver.ErrNoJob),
			Advice: "Give the job name as the first positional argument, or preregister a job constructor.",
		},
		{
			Match:  diagnostics.MatchIs(driver.ErrConstructorRegistered),
			Advice: "Only one job constructor may ever be registered on a driver; construct a second driver instead.",
		},
		{
			Match:  diagnostics.MatchContains("no job registered under"),
			Advice: "Check the job name for typos; registered names are listed in the error.",
		},
	}
}
