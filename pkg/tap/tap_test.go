package tap

import "testing"

func TestStateNames(t *testing.T) {
	cases := map[State]string{
		StateTestLogicReset: "TestLogicReset",
		StateRunTestIdle:    "RunTestIdle",
		StateShiftDR:        "ShiftDR",
		StateUpdateIR:       "UpdateIR",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Fatalf("State %d = %q, want %q", state, got, want)
		}
	}
}

func TestUnknownState(t *testing.T) {
	if got := State(42).String(); got != "State(42)" {
		t.Fatalf("unknown state = %q", got)
	}
}
