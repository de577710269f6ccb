package vals

import (
	"testing"
)

// Tester is a helper for testing properties of a value.
type Tester struct {
	t *testing.T
	v Value
}

// TestValue returns a ValueTester.
func TestValue(t *testing.T, v Value) Tester {
	return Tester{t, v}
}

// Kind tests the Kind of the value.
func (vt Tester) Kind(wantKind string) Tester {
	vt.t.Helper()
	kind := Kind(vt.v)
	if kind != wantKind {
		vt.t.Errorf("Kind(v) = %s, want %s", kind, wantKind)
	}
	return vt
}

// Truthy tests the truthiness of the value.
func (vt Tester) Truthy(want bool) Tester {
	vt.t.Helper()
	b := Truthy(vt.v)
	if b != want {
		vt.t.Errorf("Truthy(v) = %v, want %v", b, want)
	}
	return vt
}

// String tests the display form of the value.
func (vt Tester) String(want string) Tester {
	vt.t.Helper()
	s := ToString(vt.v)
	if s != want {
		vt.t.Errorf("ToString(v) = %q, want %q", s, want)
	}
	return vt
}

// Repr tests the Repr of the value.
func (vt Tester) Repr(wantRepr string) Tester {
	vt.t.Helper()
	repr := Repr(vt.v)
	if repr != wantRepr {
		vt.t.Errorf("Repr(v) = %s, want %s", repr, wantRepr)
	}
	return vt
}

// Equal tests that the value is Equal to every of the given values.
func (vt Tester) Equal(others ...Value) Tester {
	vt.t.Helper()
	for _, other := range others {
		eq := Equal(vt.v, other)
		if !eq {
			vt.t.Errorf("Equal(v, %v) = false, want true", Repr(other))
		}
	}
	return vt
}

// NotEqual tests that the value is not Equal to any of the given values.
func (vt Tester) NotEqual(others ...Value) Tester {
	vt.t.Helper()
	for _, other := range others {
		eq := Equal(vt.v, other)
		if eq {
			vt.t.Errorf("Equal(v, %v) = true, want false", Repr(other))
		}
	}
	return vt
}

// RoundTrips tests that converting the value to a syntax node and back yields
// an equal value.
func (vt Tester) RoundTrips() Tester {
	vt.t.Helper()
	back, err := FromNode(ToNode(vt.v))
	if err != nil {
		vt.t.Errorf("FromNode(ToNode(v)) returns error: %v", err)
	} else if !Equal(back, vt.v) {
		vt.t.Errorf("FromNode(ToNode(v)) = %s, want %s", Repr(back), Repr(vt.v))
	}
	return vt
}
