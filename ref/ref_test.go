package ref_test

import (
	"testing"

	"github.com/rcspp-go/rcspp/ref"
)

func TestResolve_FillsDefaults(t *testing.T) {
	resolved := ref.Resolve(ref.Set{})
	if resolved.Fwd == nil || resolved.Bwd == nil || resolved.Join == nil {
		t.Fatalf("expected all slots filled with defaults")
	}
}

func TestAdditiveFwdBwd_Symmetric(t *testing.T) {
	acc := []float64{1, 2}
	edgeRes := []float64{3, 4}
	fwd := ref.AdditiveFwd(acc, 0, 1, edgeRes, nil, 0)
	if fwd[0] != 4 || fwd[1] != 6 {
		t.Fatalf("unexpected forward result: %v", fwd)
	}
	bwd := ref.AdditiveBwd(acc, 1, 0, edgeRes, nil, 0)
	if bwd[0] != fwd[0] || bwd[1] != fwd[1] {
		t.Fatalf("expected backward to accumulate identically to forward, got %v vs %v", bwd, fwd)
	}
}

func TestAdditiveJoin(t *testing.T) {
	rFwd := []float64{1, 2}
	rBwd := []float64{5, 6}
	edgeRes := []float64{1, 1}
	joined := ref.AdditiveJoin(rFwd, rBwd, 0, 1, edgeRes)
	if joined[0] != 7 || joined[1] != 9 {
		t.Fatalf("unexpected join result: %v", joined)
	}
}

func TestValidateLength(t *testing.T) {
	if err := ref.ValidateLength([]float64{1, 2}, 2); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := ref.ValidateLength([]float64{1}, 2); err != ref.ErrWrongLength {
		t.Fatalf("expected ErrWrongLength, got %v", err)
	}
}

func TestValidateMonotone(t *testing.T) {
	if err := ref.ValidateMonotone(1, 2, true); err != nil {
		t.Fatalf("expected monotone forward ok, got %v", err)
	}
	if err := ref.ValidateMonotone(2, 2, true); err != ref.ErrNotMonotone {
		t.Fatalf("expected ErrNotMonotone for non-increasing forward, got %v", err)
	}
	if err := ref.ValidateMonotone(1, 2, false); err != nil {
		t.Fatalf("expected monotone backward ok, got %v", err)
	}
	if err := ref.ValidateMonotone(2, 2, false); err != ref.ErrNotMonotone {
		t.Fatalf("expected ErrNotMonotone for non-increasing backward, got %v", err)
	}
}
