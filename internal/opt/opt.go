// Package opt provides the parameter update rule.
package opt

import "gonum.org/v1/gonum/floats"

// Optimizer updates a flat parameter slice from its gradients.
type Optimizer interface {
	// StepInPlace moves params against gradients, scaled by learningRate.
	StepInPlace(params, gradients []float64, learningRate float64)
}

// SGD is plain gradient descent: params -= lr * gradients. Averaging over
// a batch is the caller's job.
type SGD struct{}

// StepInPlace updates params in place. It panics if the slices differ in
// length.
func (SGD) StepInPlace(params, gradients []float64, learningRate float64) {
	floats.AddScaled(params, -learningRate, gradients)
}
