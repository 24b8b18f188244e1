package domain

import "testing"

func TestJobStatus_IsUpdateTarget(t *testing.T) {
	cases := []struct {
		status JobStatus
		want   bool
	}{
		{JobAccepted, true},
		{JobRejected, true},
		{JobCompleted, true},
		{JobCancelled, true},
		{JobRequested, false},
		{"", false},
		{"ACCEPTED", false},
		{"in_progress", false},
	}

	for _, tc := range cases {
		if got := tc.status.IsUpdateTarget(); got != tc.want {
			t.Errorf("status=%q: expected %v, got %v", tc.status, tc.want, got)
		}
	}
}

func TestRole_Valid(t *testing.T) {
	if !RoleClient.Valid() || !RoleHelper.Valid() {
		t.Fatal("client and helper must be valid roles")
	}
	if Role("admin").Valid() {
		t.Error("admin must not be a valid role")
	}
}
