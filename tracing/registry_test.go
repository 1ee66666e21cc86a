package tracing

import (
	"errors"
	"reflect"
	"testing"

	"github.com/jonwraymond/peekaboo/class"
)

// TestEnable_RegistersNames verifies the registry view after Enable.
func TestEnable_RegistersNames(t *testing.T) {
	c := newTestClass(t, "Widget")
	_ = Include(c)

	err := Enable(c, Methods{
		Instance: []string{"method_two_args", "method_no_args"},
		Type:     []string{"add", "not_defined_yet"},
	})
	if err != nil {
		t.Fatalf("enable: %v", err)
	}

	traced, err := Traced(c)
	if err != nil {
		t.Fatalf("traced: %v", err)
	}
	if got, want := traced.Instance(), []string{"method_no_args", "method_two_args"}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected instance names %v, got %v", want, got)
	}
	if got, want := traced.Type(), []string{"add", "not_defined_yet"}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected type names %v, got %v", want, got)
	}
	if traced.Len() != 4 {
		t.Errorf("expected 4 names, got %d", traced.Len())
	}
	if !traced.Has(class.Type, "not_defined_yet") {
		t.Error("expected pending name to be registered")
	}
	if traced.Has(class.Instance, "add") {
		t.Error("expected scopes to be kept apart")
	}
	if traced.Has(class.Scope(0), "add") {
		t.Error("expected invalid scope to report nothing")
	}
}

// TestTraced_IsSnapshot verifies callers cannot mutate the registry through the view.
func TestTraced_IsSnapshot(t *testing.T) {
	c := newTestClass(t, "T")
	_ = Include(c)
	_ = EnableType(c, "add")

	traced, _ := Traced(c)
	names := traced.Type()
	names[0] = "mutated"

	again, _ := Traced(c)
	if got := again.Type(); got[0] != "add" {
		t.Errorf("expected registry to be unchanged, got %v", got)
	}
	if got := traced.Type(); got[0] != "add" {
		t.Errorf("expected snapshot to be unchanged, got %v", got)
	}

	_ = EnableType(c, "kaboom")
	if traced.Len() != 1 {
		t.Errorf("expected earlier snapshot to stay at 1 name, got %d", traced.Len())
	}
}

// TestEnable_Idempotent verifies re-registration neither fails nor double-wraps.
func TestEnable_Idempotent(t *testing.T) {
	rec := useRecorder(t)
	c := newTestClass(t, "T")
	_ = Include(c)

	for i := 0; i < 3; i++ {
		if err := EnableType(c, "add", "add"); err != nil {
			t.Fatalf("enable %d: %v", i, err)
		}
	}

	traced, _ := Traced(c)
	if traced.Len() != 1 {
		t.Errorf("expected one registered name, got %d", traced.Len())
	}
	_, _ = c.Call("add", 1, 2)
	if rec.Len() != 1 {
		t.Errorf("expected exactly one line, got %d", rec.Len())
	}
}

// TestEnable_DuplicateError verifies the strict duplicate policy.
func TestEnable_DuplicateError(t *testing.T) {
	rec := useRecorder(t)
	Config().SetDuplicatePolicy(DuplicateError)
	c := newTestClass(t, "T")
	_ = Include(c)

	if err := EnableType(c, "add"); err != nil {
		t.Fatalf("first enable: %v", err)
	}
	err := EnableType(c, "add", "kaboom")
	if !errors.Is(err, ErrAlreadyTraced) {
		t.Fatalf("expected ErrAlreadyTraced, got %v", err)
	}

	traced, _ := Traced(c)
	if !traced.Has(class.Type, "kaboom") {
		t.Error("expected the other name to be registered anyway")
	}
	_, _ = c.Call("add", 1, 2)
	if rec.Len() != 1 {
		t.Errorf("expected exactly one line, got %d", rec.Len())
	}
}

// TestEnable_EmptyName verifies blank names are rejected.
func TestEnable_EmptyName(t *testing.T) {
	c := newTestClass(t, "T")
	_ = Include(c)

	err := EnableType(c, " ", "add")
	if !errors.Is(err, class.ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	traced, _ := Traced(c)
	if got := traced.Type(); !reflect.DeepEqual(got, []string{"add"}) {
		t.Errorf("expected only add to be registered, got %v", got)
	}
}

// TestDisable verifies disabled names stop logging and leave the registry.
func TestDisable(t *testing.T) {
	rec := useRecorder(t)
	c := newTestClass(t, "T")
	_ = Include(c)
	_ = EnableType(c, "add", "pending")

	if err := Disable(c, Methods{Type: []string{"add", "pending", "never_registered"}}); err != nil {
		t.Fatalf("disable: %v", err)
	}

	traced, _ := Traced(c)
	if traced.Len() != 0 {
		t.Errorf("expected empty registry, got %v", traced.Type())
	}
	out, _ := c.Call("add", 1, 2)
	if out[0] != 3 {
		t.Errorf("expected original body, got %v", out[0])
	}
	if rec.Len() != 0 {
		t.Errorf("expected no lines after disable, got %d", rec.Len())
	}

	_, _ = c.DefineType("pending", func() {})
	_, _ = c.Call("pending")
	if rec.Len() != 0 {
		t.Errorf("expected disabled pending name to stay bare, got %d lines", rec.Len())
	}
}

// TestDisable_ThenEnable verifies a name can be traced again after Disable.
func TestDisable_ThenEnable(t *testing.T) {
	rec := useRecorder(t)
	c := newTestClass(t, "T")
	_ = Include(c)

	_ = EnableType(c, "add")
	_ = Disable(c, Methods{Type: []string{"add"}})
	_ = EnableType(c, "add")

	_, _ = c.Call("add", 1, 2)
	if rec.Len() != 1 {
		t.Errorf("expected exactly one line, got %d", rec.Len())
	}
}

// TestRegistry_SubclassIsolation verifies registries are per class.
func TestRegistry_SubclassIsolation(t *testing.T) {
	rec := useRecorder(t)
	base := newTestClass(t, "Base")
	sub := class.New("Sub", class.Extends(base))
	_ = Include(base)
	_ = Include(sub)

	_ = EnableType(sub, "add")

	baseTraced, _ := Traced(base)
	if baseTraced.Len() != 0 {
		t.Errorf("expected base registry to stay empty, got %v", baseTraced.Type())
	}

	// add is inherited, not owned by Sub, so nothing is wrapped yet.
	_, _ = sub.Call("add", 1, 2)
	if rec.Len() != 0 {
		t.Errorf("expected inherited method to stay bare, got %d lines", rec.Len())
	}

	_, _ = sub.DefineType("add", func(a, b int) int { return a - b })
	_, _ = sub.Call("add", 5, 2)
	if got, want := onlyLine(t, rec), "( Invoking: Sub#add with [5, 2] ==> Returning: 3 )"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	rec.Reset()
	_, _ = base.Call("add", 1, 2)
	if rec.Len() != 0 {
		t.Errorf("expected base method to stay bare, got %d lines", rec.Len())
	}
}
