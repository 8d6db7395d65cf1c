package leakhound

import (
	"testing"

	"github.com/leakhound/leakhound/internal/types"
)

func TestShouldFail(t *testing.T) {
	issues := []types.Issue{
		{Severity: types.SevLow},
		{Severity: types.SevMed},
	}
	if !shouldFail(issues, "medium") {
		t.Fatal("medium issue must trip a medium threshold")
	}
	if shouldFail(issues, "high") {
		t.Fatal("no high issue present")
	}
	if !shouldFail(issues, "bogus") {
		t.Fatal("unknown threshold falls back to medium")
	}
	if shouldFail(nil, "info") {
		t.Fatal("no issues never fails")
	}
}

func TestPickHelpers(t *testing.T) {
	local := "local"
	global := "global"
	if got := pickString("cli", &local, &global); got != "cli" {
		t.Fatalf("cli wins: got %q", got)
	}
	if got := pickString("", &local, &global); got != "local" {
		t.Fatalf("local beats global: got %q", got)
	}
	if got := pickString("", nil, &global); got != "global" {
		t.Fatalf("global is the fallback: got %q", got)
	}
	if got := pickString("", nil, nil); got != "" {
		t.Fatalf("empty default: got %q", got)
	}

	n := 4
	if got := pickInt(0, &n, nil); got != 4 {
		t.Fatalf("pickInt local: got %d", got)
	}
	b := true
	if !pickBool(false, &b, nil) {
		t.Fatal("pickBool local true")
	}
}

func TestFilterSeverity(t *testing.T) {
	issues := []types.Issue{
		{Pattern: "a", Severity: types.SevInfo},
		{Pattern: "b", Severity: types.SevHigh},
		{Pattern: "c", Severity: types.SevCritical},
	}
	got := filterSeverity(issues, types.SevHigh)
	if len(got) != 2 || got[0].Pattern != "b" || got[1].Pattern != "c" {
		t.Fatalf("unexpected filter result: %+v", got)
	}
	// unknown threshold filters nothing
	if got := filterSeverity(issues[:1], types.Severity("nope")); len(got) != 1 {
		t.Fatalf("unknown severity must not filter: %+v", got)
	}
}
