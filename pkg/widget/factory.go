package widget

import (
	kioskerrors "github.com/go-kiosk/kiosk/pkg/errors"
)

// Constructor builds a detached widget with the given ID.
type Constructor func(id string) (*Widget, error)

// Factory is a registry mapping type names to constructors. It also
// enforces the widget budget: the kiosk target is memory constrained, so
// creation beyond the budget fails with an out-of-memory error instead of
// degrading the display later.
type Factory struct {
	ctors  map[string]Constructor
	budget int // 0 means unlimited
	live   int
}

// NewFactory creates a factory with the built-in kinds (container, button,
// label, page) pre-registered. A budget of 0 disables the limit.
func NewFactory(budget int) *Factory {
	f := &Factory{ctors: make(map[string]Constructor), budget: budget}
	for kind, tag := range map[string]Kind{
		"container": KindContainer,
		"button":    KindButton,
		"label":     KindLabel,
		"page":      KindPage,
	} {
		tag := tag
		f.ctors[kind] = func(id string) (*Widget, error) {
			return New(id, tag), nil
		}
	}
	return f
}

// Register adds a constructor for a custom type name. Registering a name
// twice fails with already-exists.
func (f *Factory) Register(name string, ctor Constructor) error {
	if ctor == nil {
		return kioskerrors.E("widget.Factory.Register", kioskerrors.KindNullParam, "constructor is nil")
	}
	if name == "" {
		return kioskerrors.E("widget.Factory.Register", kioskerrors.KindInvalidParam, "name is empty")
	}
	if _, ok := f.ctors[name]; ok {
		return kioskerrors.Ef("widget.Factory.Register", kioskerrors.KindAlreadyExists,
			"type %q already registered", name)
	}
	f.ctors[name] = ctor
	return nil
}

// New builds a detached widget of the named type. Unknown names fail with
// not-found; exceeding the widget budget fails with out-of-memory.
func (f *Factory) New(name, id string) (*Widget, error) {
	ctor, ok := f.ctors[name]
	if !ok {
		return nil, kioskerrors.Ef("widget.Factory.New", kioskerrors.KindNotFound,
			"unknown widget type %q", name)
	}
	if f.budget > 0 && f.live >= f.budget {
		return nil, kioskerrors.Ef("widget.Factory.New", kioskerrors.KindOutOfMemory,
			"widget budget %d exhausted", f.budget)
	}
	w, err := ctor(id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, kioskerrors.Ef("widget.Factory.New", kioskerrors.KindUnknown,
			"constructor for %q returned nil", name)
	}
	w.factory = f
	f.live++
	return w, nil
}

// Live returns the number of factory-built widgets not yet destroyed.
func (f *Factory) Live() int {
	return f.live
}

// release returns one widget slot to the budget.
func (f *Factory) release() {
	if f.live > 0 {
		f.live--
	}
}
