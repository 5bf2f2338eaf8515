package harness

import (
	"github.com/firefly-engineering/golden/internal/fixture"
	"github.com/firefly-engineering/golden/internal/report"
	"github.com/firefly-engineering/golden/internal/system"
)

// Check reads the annotations of every case without running the tool and
// returns the cases that cannot be judged, each with its Fault set.
func Check(fsys system.FileSystem, suites []fixture.Suite) (checked int, faults []report.Outcome) {
	for _, suite := range suites {
		for _, c := range suite.Cases {
			checked++

			text, err := c.Load(fsys)
			if err == nil {
				_, err = fixture.Extract(text)
			}
			if err != nil {
				faults = append(faults, report.Outcome{Suite: c.Suite, Case: c.Name, Fault: err})
			}
		}
	}
	return checked, faults
}
