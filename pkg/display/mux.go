package display

import (
	fx "github.com/robotalks/padscan/pkg/framework"
)

// Mux fans changes out to multiple surfaces.
type Mux struct {
	Surfaces []Surface
}

// Add adds surfaces, nil is skipped.
func (m *Mux) Add(surfaces ...Surface) *Mux {
	for _, s := range surfaces {
		if s != nil {
			m.Surfaces = append(m.Surfaces, s)
		}
	}
	return m
}

// SetToggleLabel implements Surface.
func (m *Mux) SetToggleLabel(label string) error {
	return m.each(func(s Surface) error { return s.SetToggleLabel(label) })
}

// Put implements Surface.
func (m *Mux) Put(b *Block) error {
	return m.each(func(s Surface) error { return s.Put(b) })
}

// Remove implements Surface.
func (m *Mux) Remove(id string) error {
	return m.each(func(s Surface) error { return s.Remove(id) })
}

// Clear implements Surface.
func (m *Mux) Clear() error {
	return m.each(Surface.Clear)
}

func (m *Mux) each(fn func(Surface) error) error {
	var errs fx.AggregatedError
	for _, s := range m.Surfaces {
		errs.Add(fn(s))
	}
	return errs.Aggregate()
}
