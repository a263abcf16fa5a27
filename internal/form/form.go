// Package form tracks the business form's fields and decides when a
// submission may reach the store.
package form

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/BerylCAtieno/business-dashboard/internal/validation"
)

type FieldName string

const (
	BusinessName FieldName = "businessName"
	Location     FieldName = "location"
)

// FieldNames lists the form fields in display order.
var FieldNames = []FieldName{BusinessName, Location}

var (
	ErrInvalidForm    = errors.New("form has invalid fields")
	ErrSubmitDisabled = errors.New("submit is disabled while a request is in flight")
)

// Field is the per-field state rendered by the views.
type Field struct {
	Value   string
	Error   string
	Touched bool
}

// Invalid reports whether the field should show its error inline.
func (f Field) Invalid() bool {
	return f.Touched && f.Error != ""
}

// Fetcher is the store side of a submission.
type Fetcher interface {
	Loading() bool
	Fetch(ctx context.Context, businessName, location string) (<-chan struct{}, error)
}

type Machine struct {
	mu     sync.Mutex
	fields map[FieldName]*Field
}

func New() *Machine {
	m := &Machine{fields: make(map[FieldName]*Field, len(FieldNames))}
	for _, name := range FieldNames {
		m.fields[name] = &Field{}
	}
	return m
}

// ParseFieldName maps a wire field name to a FieldName.
func ParseFieldName(s string) (FieldName, error) {
	for _, name := range FieldNames {
		if string(name) == s {
			return name, nil
		}
	}
	return "", fmt.Errorf("unknown form field %q", s)
}

func (m *Machine) field(name FieldName) *Field {
	f, ok := m.fields[name]
	if !ok {
		panic(fmt.Sprintf("form: unknown field %q", name))
	}
	return f
}

// Change records new text. Errors only refresh once the field was touched.
func (m *Machine) Change(name FieldName, value string) Field {
	m.mu.Lock()
	defer m.mu.Unlock()

	f := m.field(name)
	f.Value = value
	if f.Touched {
		f.Error = validation.Validate(value).Message()
	}
	return *f
}

// Blur marks the field touched and validates its current value.
func (m *Machine) Blur(name FieldName) Field {
	m.mu.Lock()
	defer m.mu.Unlock()

	f := m.field(name)
	f.Touched = true
	f.Error = validation.Validate(f.Value).Message()
	return *f
}

// BlurValue is Blur for views that report the value together with the blur
// event.
func (m *Machine) BlurValue(name FieldName, value string) Field {
	m.mu.Lock()
	defer m.mu.Unlock()

	f := m.field(name)
	f.Value = value
	f.Touched = true
	f.Error = validation.Validate(value).Message()
	return *f
}

// Submit touches and validates every field and hands the values to the
// fetcher only when all of them are valid.
func (m *Machine) Submit(ctx context.Context, fetcher Fetcher) (<-chan struct{}, error) {
	if fetcher.Loading() {
		return nil, ErrSubmitDisabled
	}

	m.mu.Lock()
	valid := true
	for _, name := range FieldNames {
		f := m.fields[name]
		f.Touched = true
		result := validation.Validate(f.Value)
		f.Error = result.Message()
		if !result.OK() {
			valid = false
		}
	}
	businessName, location := m.fields[BusinessName].Value, m.fields[Location].Value
	m.mu.Unlock()

	if !valid {
		return nil, ErrInvalidForm
	}
	return fetcher.Fetch(ctx, businessName, location)
}

func (m *Machine) Field(name FieldName) Field {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.field(name)
}

// Fields returns a copy of every field keyed by name.
func (m *Machine) Fields() map[FieldName]Field {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[FieldName]Field, len(m.fields))
	for name, f := range m.fields {
		out[name] = *f
	}
	return out
}
