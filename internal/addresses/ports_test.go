package addresses

import (
	"reflect"
	"testing"
)

func TestParsePortSpec_Range(t *testing.T) {
	spec, err := ParsePortSpec("1-100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !spec.IsRange || spec.Lo != 1 || spec.Hi != 100 {
		t.Fatalf("got %+v", spec)
	}
}

func TestParsePortSpec_List(t *testing.T) {
	spec, err := ParsePortSpec("22,80,443")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.IsRange {
		t.Fatalf("expected a list, got a range: %+v", spec)
	}
	if !reflect.DeepEqual(spec.List, []uint16{22, 80, 443}) {
		t.Fatalf("got %v", spec.List)
	}
}

func TestParsePortSpec_RejectsBackwardsRange(t *testing.T) {
	if _, err := ParsePortSpec("100-1"); err == nil {
		t.Fatal("expected an error for a backwards range")
	}
}

func TestParsePortSpec_RejectsOutOfBoundsPort(t *testing.T) {
	if _, err := ParsePortSpec("0-100"); err == nil {
		t.Fatal("expected an error for port 0")
	}
	if _, err := ParsePortSpec("1-70000"); err == nil {
		t.Fatal("expected an error for a port above 65535")
	}
}

func TestParseExcludePorts_EmptyIsEmptySet(t *testing.T) {
	excluded, err := ParseExcludePorts("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(excluded) != 0 {
		t.Fatalf("expected an empty set, got %v", excluded)
	}
}

func TestParseExcludePorts_ParsesEveryEntry(t *testing.T) {
	excluded, err := ParseExcludePorts("5,7, 9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range []uint16{5, 7, 9} {
		if _, ok := excluded[p]; !ok {
			t.Fatalf("expected %d to be excluded, set was %v", p, excluded)
		}
	}
	if len(excluded) != 3 {
		t.Fatalf("expected exactly 3 excluded ports, got %d", len(excluded))
	}
}
