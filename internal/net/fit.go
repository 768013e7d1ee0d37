package net

import (
	"github.com/pkg/errors"
)

// Mode selects how an epoch is run.
type Mode int

const (
	// PerExample calls TrainStep once per row; the epoch loss is the sum
	// of the row losses.
	PerExample Mode = iota
	// FullBatch calls TrainBatch once over every row; the epoch loss is
	// the batch average.
	FullBatch
)

func (m Mode) String() string {
	switch m {
	case PerExample:
		return "per-example"
	case FullBatch:
		return "full-batch"
	default:
		return "unknown"
	}
}

// FitConfig holds the hyperparameters of a training run.
type FitConfig struct {
	Epochs       int
	LearningRate float64
	Mode         Mode

	// LossThreshold stops training as soon as an epoch loss falls below
	// it. Zero disables the check.
	LossThreshold float64

	Callbacks []Callback
}

// History is the outcome of Fit.
type History struct {
	Losses []float64

	// Converged is set when an epoch loss fell below LossThreshold.
	Converged bool

	// Stopped is set when a callback asked to stop.
	Stopped bool
}

// Epochs returns the number of epochs actually run.
func (h *History) Epochs() int {
	return len(h.Losses)
}

// FinalLoss returns the loss of the last epoch, or 0 if none ran.
func (h *History) FinalLoss() float64 {
	if len(h.Losses) == 0 {
		return 0
	}
	return h.Losses[len(h.Losses)-1]
}

// Stopper is implemented by callbacks that can end training early.
type Stopper interface {
	ShouldStop() bool
}

// Fit trains n on xs/ys for up to cfg.Epochs epochs.
func Fit(n *Network, xs [][]float64, ys []float64, cfg FitConfig) (*History, error) {
	if cfg.Epochs < 1 {
		return nil, errors.Wrapf(ErrInvalidArgument, "epochs %d, want >= 1", cfg.Epochs)
	}
	if len(xs) == 0 || len(xs) != len(ys) {
		return nil, errors.Wrapf(ErrInvalidArgument, "%d rows and %d targets", len(xs), len(ys))
	}

	for _, c := range cfg.Callbacks {
		c.OnTrainBegin(n)
	}
	defer func() {
		for _, c := range cfg.Callbacks {
			c.OnTrainEnd(n)
		}
	}()

	h := &History{Losses: make([]float64, 0, cfg.Epochs)}
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		l, err := runEpoch(n, xs, ys, cfg)
		if err != nil {
			return h, errors.Wrapf(err, "epoch %d", epoch)
		}
		h.Losses = append(h.Losses, l)

		for _, c := range cfg.Callbacks {
			c.OnEpochEnd(epoch, l, n)
		}

		if cfg.LossThreshold > 0 && l < cfg.LossThreshold {
			h.Converged = true
			break
		}
		if stopRequested(cfg.Callbacks) {
			h.Stopped = true
			break
		}
	}
	return h, nil
}

func runEpoch(n *Network, xs [][]float64, ys []float64, cfg FitConfig) (float64, error) {
	switch cfg.Mode {
	case FullBatch:
		return n.TrainBatch(xs, ys, cfg.LearningRate)
	case PerExample:
		var total float64
		for i := range xs {
			l, err := n.TrainStep(xs[i], ys[i], cfg.LearningRate)
			if err != nil {
				return 0, errors.Wrapf(err, "row %d", i)
			}
			total += l
		}
		return total, nil
	default:
		return 0, errors.Wrapf(ErrInvalidArgument, "training mode %d", cfg.Mode)
	}
}

func stopRequested(callbacks []Callback) bool {
	for _, c := range callbacks {
		if s, ok := c.(Stopper); ok && s.ShouldStop() {
			return true
		}
	}
	return false
}
