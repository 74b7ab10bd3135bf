package pipeline

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrModeExists  = errors.New("pipeline: mode already registered")
	ErrOpNil       = errors.New("pipeline: operation is nil")
	ErrInvalidSpec = errors.New("pipeline: invalid operation spec")
	ErrUnknownMode = errors.New("pipeline: unknown mode")
)

// Registry stores operations by mode flag.
type Registry struct {
	items map[Mode]Operation
}

func NewRegistry() *Registry {
	return &Registry{items: make(map[Mode]Operation)}
}

// NewDefaultRegistry registers the four artifact conversions.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, op := range []Operation{toCode{}, fromCode{}, compress{}, decompress{}} {
		if err := r.Register(op); err != nil {
			panic(err)
		}
	}
	return r
}

// ValidateSpec checks required fields and the mode format.
func ValidateSpec(spec OperationSpec) error {
	mode := strings.TrimSpace(string(spec.Mode))
	if mode == "" || strings.TrimSpace(spec.Name) == "" || strings.TrimSpace(spec.Description) == "" {
		return fmt.Errorf("%w: mode, name, and description are required", ErrInvalidSpec)
	}
	if len(mode) != 1 || mode[0] < 'a' || mode[0] > 'z' {
		return fmt.Errorf("%w: mode must be one lowercase letter, got %q", ErrInvalidSpec, mode)
	}
	return nil
}

func (r *Registry) Register(op Operation) error {
	if op == nil {
		return ErrOpNil
	}
	spec := op.Spec()
	if err := ValidateSpec(spec); err != nil {
		return err
	}
	if _, ok := r.items[spec.Mode]; ok {
		return fmt.Errorf("%w: -%s", ErrModeExists, spec.Mode)
	}
	r.items[spec.Mode] = op
	return nil
}

func (r *Registry) Resolve(mode Mode) (Operation, bool) {
	op, ok := r.items[mode]
	return op, ok
}

// ListSpecs returns specs ordered by mode.
func (r *Registry) ListSpecs() []OperationSpec {
	list := make([]OperationSpec, 0, len(r.items))
	for _, op := range r.items {
		list = append(list, op.Spec())
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Mode < list[j].Mode
	})
	return list
}
