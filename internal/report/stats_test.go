package report

import (
	"errors"
	"testing"

	"github.com/firefly-engineering/golden/internal/compare"
	"github.com/firefly-engineering/golden/internal/fixture"
	"github.com/firefly-engineering/golden/internal/output"
)

func TestStats_Record(t *testing.T) {
	verdicts := []bool{true, false, true, true, false}

	var stats Stats
	for i, passed := range verdicts {
		stats = stats.Record(passed)
		if stats.Total != stats.OK+stats.KO {
			t.Fatalf("after case %d: Total %d != OK %d + KO %d", i, stats.Total, stats.OK, stats.KO)
		}
	}

	want := Stats{Total: 5, OK: 3, KO: 2}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
	if !stats.Failed() {
		t.Error("Failed() should be true with KO > 0")
	}
}

func TestStats_RecordIsValueSemantics(t *testing.T) {
	before := Stats{Total: 1, OK: 1}
	after := before.Record(false)

	if before != (Stats{Total: 1, OK: 1}) {
		t.Errorf("Record() mutated its receiver: %+v", before)
	}
	if after != (Stats{Total: 2, OK: 1, KO: 1}) {
		t.Errorf("Record() = %+v", after)
	}
}

func TestOutcome_Passed(t *testing.T) {
	pass := compare.Compare(fixture.Expectations{Results: []string{"42"}}, output.Parsed{Results: []string{"42"}})
	fail := compare.Compare(fixture.Expectations{Results: []string{"42"}}, output.Parsed{})

	tests := []struct {
		name    string
		outcome Outcome
		want    bool
	}{
		{"match", Outcome{Result: pass}, true},
		{"mismatch", Outcome{Result: fail}, false},
		{"fault overrides match", Outcome{Result: pass, Fault: errors.New("malformed")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.outcome.Passed(); got != tt.want {
				t.Errorf("Passed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOutcome_ID(t *testing.T) {
	o := Outcome{Suite: "basics", Case: "add.rev"}
	if o.ID() != "basics::add.rev" {
		t.Errorf("ID() = %q", o.ID())
	}
}
