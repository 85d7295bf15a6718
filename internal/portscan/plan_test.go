package portscan

import "testing"

func TestBuildPlan_HostsInterleaveWithinEachPort(t *testing.T) {
	strategy, err := NewSerialRange(80, 81)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	plan := BuildPlan([]string{"10.0.0.1", "10.0.0.2"}, strategy, nil)

	want := []Endpoint{
		{IP: "10.0.0.1", Port: 80},
		{IP: "10.0.0.2", Port: 80},
		{IP: "10.0.0.1", Port: 81},
		{IP: "10.0.0.2", Port: 81},
	}
	if len(plan) != len(want) {
		t.Fatalf("want %d endpoints, got %d", len(want), len(plan))
	}
	for i := range want {
		if plan[i] != want[i] {
			t.Fatalf("index %d: want %+v, got %+v", i, want[i], plan[i])
		}
	}
}

func TestBuildPlan_ExcludedPortsNeverAppear(t *testing.T) {
	strategy, err := NewSerialRange(1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	exclude := map[uint16]struct{}{5: {}, 7: {}}

	plan := BuildPlan([]string{"127.0.0.1"}, strategy, exclude)

	for _, e := range plan {
		if e.Port == 5 || e.Port == 7 {
			t.Fatalf("excluded port %d appeared in plan", e.Port)
		}
	}
	if len(plan) != 8 {
		t.Fatalf("want 8 endpoints after excluding 2 of 10 ports, got %d", len(plan))
	}
}

func TestBatches_NoEndpointRepeatedOrDropped(t *testing.T) {
	strategy, err := NewSerialRange(1, 23)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	plan := BuildPlan([]string{"127.0.0.1"}, strategy, nil)

	batches := Batches(plan, 5)

	seen := make(map[Endpoint]int)
	for _, b := range batches {
		if len(b) > 5 {
			t.Fatalf("batch exceeded requested size: %d", len(b))
		}
		for _, e := range b {
			seen[e]++
		}
	}
	for _, e := range plan {
		if seen[e] != 1 {
			t.Fatalf("endpoint %v probed %d times, want exactly 1", e, seen[e])
		}
	}
}
