// Package activations provides the element-wise activation functions
// supported by the network engine.
package activations

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// Activation is an activation function with derivative.
type Activation interface {
	// Activate computes f(x)
	Activate(x float64) float64

	// Derivative computes f'(x) given the pre-activation x
	Derivative(x float64) float64
}

// Kind identifies one of the supported activations.
// The set is closed: every network picks exactly one Kind at construction.
type Kind int

const (
	KindReLU Kind = iota
	KindTanh
	KindSigmoid
	KindIdentity
)

var kindNames = [...]string{
	KindReLU:     "relu",
	KindTanh:     "tanh",
	KindSigmoid:  "sigmoid",
	KindIdentity: "identity",
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return kindNames[k]
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= KindReLU && k <= KindIdentity
}

// Activation returns the function/derivative pair for k.
// Unknown kinds fall back to Identity.
func (k Kind) Activation() Activation {
	switch k {
	case KindReLU:
		return ReLU{}
	case KindTanh:
		return Tanh{}
	case KindSigmoid:
		return Sigmoid{}
	default:
		return Identity{}
	}
}

// ParseKind maps a name such as "tanh" or "Sigmoid" to its Kind.
// "linear" is accepted as an alias for identity.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "linear" {
		return KindIdentity, nil
	}
	for k, s := range kindNames {
		if s == n {
			return Kind(k), nil
		}
	}
	return 0, errors.Errorf("unknown activation %q", name)
}

// ReLU activation function.
type ReLU struct{}

// Activate computes max(0, x)
func (r ReLU) Activate(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

// Derivative returns 1 if x > 0, else 0
func (r ReLU) Derivative(x float64) float64 {
	if x > 0 {
		return 1
	}
	return 0
}

// Sigmoid activation function.
type Sigmoid struct{}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Activate computes sigmoid(x)
func (s Sigmoid) Activate(x float64) float64 {
	return sigmoid(x)
}

// Derivative computes sigmoid(x) * (1 - sigmoid(x))
func (s Sigmoid) Derivative(x float64) float64 {
	sigma := sigmoid(x)
	return sigma * (1 - sigma)
}

// Tanh activation function.
type Tanh struct{}

// Activate computes tanh(x)
func (t Tanh) Activate(x float64) float64 {
	return math.Tanh(x)
}

// Derivative computes 1 - tanh(x)^2
func (t Tanh) Derivative(x float64) float64 {
	tanhX := math.Tanh(x)
	return 1 - tanhX*tanhX
}

// Identity passes values through unchanged.
type Identity struct{}

// Activate returns x
func (Identity) Activate(x float64) float64 {
	return x
}

// Derivative is always 1
func (Identity) Derivative(float64) float64 {
	return 1
}
