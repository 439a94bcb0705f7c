package core

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Status
	}{
		// Empty and unknown
		{name: "empty", input: "", want: StatusOthers},
		{name: "whitespace only", input: "   ", want: StatusOthers},
		{name: "punctuation only", input: "!!!", want: StatusOthers},
		{name: "unrelated text", input: "Dormant", want: StatusOthers},
		{name: "board without on", input: "Board meeting", want: StatusOthers},

		// KYC takes priority over everything
		{name: "kyc pending", input: "Pending KYC verification", want: StatusKYCPending},
		{name: "kyc uppercase alone", input: "KYC", want: StatusKYCPending},
		{name: "kyc beats reject", input: "Rejected - KYC incomplete", want: StatusKYCPending},
		{name: "kyc beats on-board", input: "On-boarded, kyc due", want: StatusKYCPending},

		// Approval pending
		{name: "approval pending", input: "Approval pending", want: StatusApprovalPending},
		{name: "pending alone", input: "pending", want: StatusApprovalPending},
		{name: "underscore separated", input: "Approval_Pending", want: StatusApprovalPending},
		{name: "pending beats replacement", input: "Replacement pending", want: StatusApprovalPending},

		// Rejected
		{name: "rejected", input: "Rejected", want: StatusApprovalRejected},
		{name: "reject with reason", input: "reject: documents unclear", want: StatusApprovalRejected},

		// On-boarded
		{name: "hyphenated", input: "On-Boarded", want: StatusOnBoarded},
		{name: "spaced", input: "on boarded", want: StatusOnBoarded},
		{name: "joined", input: "onboarded", want: StatusOnBoarded},
		{name: "onboarding", input: "Onboarding complete", want: StatusOnBoarded},

		// Replacement
		{name: "replacement required", input: "Replacement required", want: StatusReplacementRequired},
		{name: "replaced", input: "replaced device", want: StatusReplacementRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.input)
			if got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestClassify_CanonicalIsFixedPoint verifies that classifying an already
// canonical label returns the same label.
func TestClassify_CanonicalIsFixedPoint(t *testing.T) {
	for _, s := range AllStatuses {
		if got := Classify(string(s)); got != s {
			t.Errorf("Classify(%q) = %q, want itself", s, got)
		}
	}
}

func TestClassify_Idempotent(t *testing.T) {
	inputs := []string{"", "Pending KYC", "approval pending", "rejected", "onboarded", "replace", "??"}
	for _, in := range inputs {
		once := Classify(in)
		if twice := Classify(string(once)); twice != once {
			t.Errorf("Classify(Classify(%q)) = %q, want %q", in, twice, once)
		}
	}
}

func TestStatus_IsNamed(t *testing.T) {
	for _, s := range NamedStatuses {
		if !s.IsNamed() {
			t.Errorf("%q.IsNamed() = false, want true", s)
		}
	}
	if StatusOthers.IsNamed() {
		t.Error("Others.IsNamed() = true, want false")
	}
	if Status("Dormant").IsNamed() {
		t.Error("unknown status reported as named")
	}
}
