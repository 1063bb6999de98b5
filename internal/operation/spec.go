package operation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownOperation = errors.New("unknown operation")
	ErrRetiredOperation = errors.New("retired operation")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Spec is the document form of an operation, shared by YAML pipeline files
// and the websocket protocol. Omitted parameters take the kind's default.
type Spec struct {
	Op                string   `yaml:"op" json:"op"`
	Size              *float32 `yaml:"size,omitempty" json:"size,omitempty"`
	Subdivisions      *uint32  `yaml:"subdivisions,omitempty" json:"subdivisions,omitempty"`
	Iterations        *uint32  `yaml:"iterations,omitempty" json:"iterations,omitempty"`
	Amount            *float32 `yaml:"amount,omitempty" json:"amount,omitempty"`
	Scale             *float32 `yaml:"scale,omitempty" json:"scale,omitempty"`
	Octaves           *uint32  `yaml:"octaves,omitempty" json:"octaves,omitempty"`
	Axes              *string  `yaml:"axes,omitempty" json:"axes,omitempty"`
	DisplacementStart *float32 `yaml:"displacement_start,omitempty" json:"displacementStart,omitempty"`
	DisplacementDecay *float32 `yaml:"displacement_decay,omitempty" json:"displacementDecay,omitempty"`
}

// Operation builds and validates the operation described by s.
func (s Spec) Operation() (Operation, error) {
	kind, ok := ParseKind(s.Op)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, s.Op)
	}
	if kind.Retired() {
		return nil, fmt.Errorf("%w: %s", ErrRetiredOperation, kind)
	}

	op, _ := Default(kind)
	var err error
	used := map[string]bool{}

	f32 := func(name string, p *float32, dst *float32) {
		if p != nil {
			used[name] = true
			*dst = *p
		}
	}
	u32 := func(name string, p *uint32, dst *uint32) {
		if p != nil {
			used[name] = true
			*dst = *p
		}
	}
	axes := func(dst *Axes) {
		if s.Axes == nil || err != nil {
			return
		}
		used["axes"] = true
		*dst, err = ParseAxes(*s.Axes)
	}

	switch o := op.(type) {
	case AddTriangle:
		f32("size", s.Size, &o.Size)
		op = o
	case AddTriSquare:
		f32("size", s.Size, &o.Size)
		op = o
	case AddTriangleGrid:
		f32("size", s.Size, &o.Size)
		u32("subdivisions", s.Subdivisions, &o.Subdivisions)
		op = o
	case AddTriSquareGrid:
		f32("size", s.Size, &o.Size)
		u32("subdivisions", s.Subdivisions, &o.Subdivisions)
		op = o
	case Subdivide:
		u32("iterations", s.Iterations, &o.Iterations)
		op = o
	case DisplaceRandom:
		f32("amount", s.Amount, &o.Amount)
		axes(&o.Axes)
		op = o
	case DisplaceSmooth:
		f32("amount", s.Amount, &o.Amount)
		f32("scale", s.Scale, &o.Scale)
		u32("octaves", s.Octaves, &o.Octaves)
		axes(&o.Axes)
		op = o
	case Smooth:
		f32("amount", s.Amount, &o.Amount)
		u32("iterations", s.Iterations, &o.Iterations)
		op = o
	case FractalTerrain:
		u32("iterations", s.Iterations, &o.Iterations)
		f32("displacement_start", s.DisplacementStart, &o.DisplacementStart)
		f32("displacement_decay", s.DisplacementDecay, &o.DisplacementDecay)
		op = o
	}
	if err != nil {
		return nil, err
	}

	for _, name := range s.setFields() {
		if !used[name] {
			return nil, fmt.Errorf("%w: %s does not take %s", ErrInvalidParameter, kind, name)
		}
	}

	if err := Validate(op); err != nil {
		return nil, err
	}
	return op, nil
}

func (s Spec) setFields() []string {
	var names []string
	add := func(set bool, name string) {
		if set {
			names = append(names, name)
		}
	}
	add(s.Size != nil, "size")
	add(s.Subdivisions != nil, "subdivisions")
	add(s.Iterations != nil, "iterations")
	add(s.Amount != nil, "amount")
	add(s.Scale != nil, "scale")
	add(s.Octaves != nil, "octaves")
	add(s.Axes != nil, "axes")
	add(s.DisplacementStart != nil, "displacement_start")
	add(s.DisplacementDecay != nil, "displacement_decay")
	return names
}

// SpecOf returns the document form of op with every parameter set.
func SpecOf(op Operation) Spec {
	s := Spec{Op: op.Kind().Name()}
	axes := func(a Axes) *string {
		str := a.String()
		return &str
	}

	switch o := op.(type) {
	case AddTriangle:
		s.Size = &o.Size
	case AddTriSquare:
		s.Size = &o.Size
	case AddTriangleGrid:
		s.Size, s.Subdivisions = &o.Size, &o.Subdivisions
	case AddTriSquareGrid:
		s.Size, s.Subdivisions = &o.Size, &o.Subdivisions
	case Subdivide:
		s.Iterations = &o.Iterations
	case DisplaceRandom:
		s.Amount, s.Axes = &o.Amount, axes(o.Axes)
	case DisplaceSmooth:
		s.Amount, s.Scale, s.Octaves, s.Axes = &o.Amount, &o.Scale, &o.Octaves, axes(o.Axes)
	case Smooth:
		s.Amount, s.Iterations = &o.Amount, &o.Iterations
	case FractalTerrain:
		s.Iterations = &o.Iterations
		s.DisplacementStart, s.DisplacementDecay = &o.DisplacementStart, &o.DisplacementDecay
	}
	return s
}

// ParseAxes reads a subset of "xyz" in any order and case.
func ParseAxes(str string) (Axes, error) {
	var a Axes
	for _, r := range strings.ToLower(str) {
		switch r {
		case 'x':
			a[0] = true
		case 'y':
			a[1] = true
		case 'z':
			a[2] = true
		default:
			return Axes{}, fmt.Errorf("%w: axes %q", ErrInvalidParameter, str)
		}
	}
	return a, nil
}

// Validate checks op against the parameter constraints: sizes, amounts,
// scales and displacement starts are non-negative, a smoothing amount lies
// in [0, 1]. Decay is unconstrained.
func Validate(op Operation) error {
	check := func(name string, v float32) error {
		if !(v >= 0) {
			return fmt.Errorf("%w: %s %s must be non-negative, got %v", ErrInvalidParameter, op.Kind(), name, v)
		}
		return nil
	}

	switch o := op.(type) {
	case AddTriangle:
		return check("size", o.Size)
	case AddTriSquare:
		return check("size", o.Size)
	case AddTriangleGrid:
		return check("size", o.Size)
	case AddTriSquareGrid:
		return check("size", o.Size)
	case DisplaceRandom:
		return check("amount", o.Amount)
	case DisplaceSmooth:
		if err := check("amount", o.Amount); err != nil {
			return err
		}
		return check("scale", o.Scale)
	case Smooth:
		if !(o.Amount >= 0 && o.Amount <= 1) {
			return fmt.Errorf("%w: %s amount must be within [0, 1], got %v", ErrInvalidParameter, op.Kind(), o.Amount)
		}
	case FractalTerrain:
		return check("displacement start", o.DisplacementStart)
	}
	return nil
}
