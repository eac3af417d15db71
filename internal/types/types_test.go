package types

import "testing"

func TestFnWithArityRejectsBeyondMax(t *testing.T) {
	if _, err := FnWithArity(MAX_FN_ARITY); err != nil {
		t.Fatalf("MAX_FN_ARITY itself should be accepted: %v", err)
	}
	if _, err := FnWithArity(MAX_FN_ARITY + 1); err == nil {
		t.Fatal("expected an error past MAX_FN_ARITY")
	}
}

func TestArrayWithSizeRejectsBeyondMax(t *testing.T) {
	if _, err := ArrayWithSize(MAX_STATIC_ARRAY_SIZE); err != nil {
		t.Fatalf("MAX_STATIC_ARRAY_SIZE itself should be accepted: %v", err)
	}
	if _, err := ArrayWithSize(MAX_STATIC_ARRAY_SIZE + 1); err == nil {
		t.Fatal("expected an error past MAX_STATIC_ARRAY_SIZE")
	}
}

func TestFnAndArraySyntheticIdsNeverCollide(t *testing.T) {
	fn, _ := FnWithArity(3)
	arr, _ := ArrayWithSize(3)
	if fn == arr {
		t.Fatalf("fn_with_arity(3) and array_with_size(3) collided: %v", fn)
	}
}

func TestVarTypeIgnoresArgsAndReportsVariableName(t *testing.T) {
	v := &CtxVar{Name: "T", Variance: Covariant}
	ty := VarType(v)
	if ty.String() != "T" {
		t.Fatalf("expected VarType's String to be the variable's name, got %q", ty.String())
	}
}
