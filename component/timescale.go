package component

import (
	"errors"
)

// ErrBadUnscale is returned when removing a multiplier that was never applied
var ErrBadUnscale = errors.New("unscale value not present in multiplier stack")

// MulStack is an unordered stack of multipliers composed by product
// Removal takes out one instance of an exact value
type MulStack struct {
	Multipliers []float64
}

// Add pushes a multiplier
func (m *MulStack) Add(v float64) {
	m.Multipliers = append(m.Multipliers, v)
}

// Remove takes out one instance of v
func (m *MulStack) Remove(v float64) error {
	for i, mul := range m.Multipliers {
		if mul == v {
			m.Multipliers[i] = m.Multipliers[len(m.Multipliers)-1]
			m.Multipliers = m.Multipliers[:len(m.Multipliers)-1]
			return nil
		}
	}
	return ErrBadUnscale
}

// Value is the product of all multipliers, 1.0 when empty
func (m MulStack) Value() float64 {
	v := 1.0
	for _, mul := range m.Multipliers {
		v *= mul
	}
	return v
}

// TimeScaleComponent is per-entity simulation rate
// Memoed holds the value applied during the previous frame so velocity
// scaling can recover the raw value even after the stack changes
type TimeScaleComponent struct {
	Stack  MulStack
	Memoed float64
}

// NewTimeScale returns an identity time scale
func NewTimeScale() TimeScaleComponent {
	return TimeScaleComponent{Memoed: 1.0}
}

// ScaleBy pushes a multiplier onto the stack
func (t *TimeScaleComponent) ScaleBy(v float64) {
	t.Stack.Add(v)
}

// UnscaleBy removes a previously applied multiplier
func (t *TimeScaleComponent) UnscaleBy(v float64) error {
	return t.Stack.Remove(v)
}

// Value is the current composed scale
func (t TimeScaleComponent) Value() float64 {
	return t.Stack.Value()
}
