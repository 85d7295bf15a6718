package portscan

import "testing"

// fakeRlimit is an in-memory rlimitSource for deterministic FD-budget tests;
// it never touches the real process limit.
type fakeRlimit struct {
	soft    uint64
	raiseOk bool
}

func (f *fakeRlimit) raise(want uint64) error {
	if !f.raiseOk {
		return errRaiseDenied
	}
	f.soft = want
	return nil
}

func (f *fakeRlimit) query() (uint64, error) {
	return f.soft, nil
}

type staticErr string

func (e staticErr) Error() string { return string(e) }

const errRaiseDenied = staticErr("operation not permitted")

func u64(n uint64) *uint64 { return &n }

func TestReconcileFDBudget_LowUlimitHalves(t *testing.T) {
	src := &fakeRlimit{soft: 120, raiseOk: true}
	res, err := ReconcileFDBudget(src, 50000, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.EffectiveBatch != 60 {
		t.Fatalf("want effective batch 60, got %d", res.EffectiveBatch)
	}
}

func TestReconcileFDBudget_HighUlimitCollapsesToAverage(t *testing.T) {
	src := &fakeRlimit{soft: 9000, raiseOk: true}
	res, err := ReconcileFDBudget(src, 50000, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.EffectiveBatch != averageBatchSize {
		t.Fatalf("want effective batch %d, got %d", averageBatchSize, res.EffectiveBatch)
	}
}

func TestReconcileFDBudget_MidUlimitLeavesHeadroom(t *testing.T) {
	src := &fakeRlimit{soft: 5000, raiseOk: true}
	res, err := ReconcileFDBudget(src, 50000, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.EffectiveBatch != 4900 {
		t.Fatalf("want effective batch 4900, got %d", res.EffectiveBatch)
	}
}

func TestAdjustUlimit_UserRequestReflected(t *testing.T) {
	src := &fakeRlimit{raiseOk: true}
	limit, _, err := AdjustUlimit(src, u64(2000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if limit != 2000 {
		t.Fatalf("want reported limit 2000, got %d", limit)
	}
}

func TestReconcileFDBudget_UserChoiceRespectedWhenAmple(t *testing.T) {
	src := &fakeRlimit{soft: 1_000_000, raiseOk: true}
	res, err := ReconcileFDBudget(src, 10, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.EffectiveBatch != 10 {
		t.Fatalf("want effective batch 10, got %d", res.EffectiveBatch)
	}
}

func TestReconcileFDBudget_RaiseFailureIsNotFatal(t *testing.T) {
	src := &fakeRlimit{soft: 5000, raiseOk: false}
	res, err := ReconcileFDBudget(src, 50000, u64(100000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.EffectiveBatch != 4900 {
		t.Fatalf("want effective batch 4900 (raise ignored), got %d", res.EffectiveBatch)
	}
	found := false
	for _, d := range res.Diagnostics {
		if d == "failed to set ulimit value: operation not permitted" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a failed-to-set-ulimit diagnostic, got %v", res.Diagnostics)
	}
}
