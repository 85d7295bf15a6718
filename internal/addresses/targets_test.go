package addresses

import (
	"reflect"
	"testing"
)

func TestExpandTarget_LiteralIPPassesThrough(t *testing.T) {
	ips, err := ExpandTarget("192.168.1.5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ips, []string{"192.168.1.5"}) {
		t.Fatalf("got %v", ips)
	}
}

func TestExpandTarget_CIDRExpandsEveryAddress(t *testing.T) {
	ips, err := ExpandTarget("10.0.0.0/30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"10.0.0.0", "10.0.0.1", "10.0.0.2", "10.0.0.3"}
	if !reflect.DeepEqual(ips, want) {
		t.Fatalf("got %v, want %v", ips, want)
	}
}

func TestExpandTarget_RejectsGarbage(t *testing.T) {
	if _, err := ExpandTarget("not-an-address"); err == nil {
		t.Fatal("expected an error for a non-IP, non-CIDR target")
	}
}

func TestExpandTargets_ConcatenatesInOrder(t *testing.T) {
	ips, err := ExpandTargets([]string{"10.0.0.0/30", "192.168.1.1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"10.0.0.0", "10.0.0.1", "10.0.0.2", "10.0.0.3", "192.168.1.1"}
	if !reflect.DeepEqual(ips, want) {
		t.Fatalf("got %v, want %v", ips, want)
	}
}

func TestSortIPs_NaturalOrderNotLexical(t *testing.T) {
	ips := []string{"10.0.0.10", "10.0.0.2", "10.0.0.1"}
	SortIPs(ips)
	want := []string{"10.0.0.1", "10.0.0.2", "10.0.0.10"}
	if !reflect.DeepEqual(ips, want) {
		t.Fatalf("got %v, want %v", ips, want)
	}
}
