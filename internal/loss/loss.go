// Package loss provides the loss used to train the scalar-output network.
package loss

// Loss is a loss function with derivative for a scalar prediction.
type Loss interface {
	// Forward computes the loss between predicted and true values.
	Forward(yPred, yTrue float64) float64

	// Backward computes the gradient of the loss w.r.t. prediction.
	Backward(yPred, yTrue float64) float64
}

// SquaredError is the per-example squared error (y_pred - y_true)^2.
// It is not divided by anything; batch averaging happens in the trainer.
type SquaredError struct{}

// Forward computes (y_pred - y_true)^2
func (SquaredError) Forward(yPred, yTrue float64) float64 {
	diff := yPred - yTrue
	return diff * diff
}

// Backward computes 2 * (y_pred - y_true)
func (SquaredError) Backward(yPred, yTrue float64) float64 {
	return 2 * (yPred - yTrue)
}
