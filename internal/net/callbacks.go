package net

import (
	"fmt"
	"io"
	"math"
	"os"
)

// Callback defines the interface for training callbacks.
type Callback interface {
	OnTrainBegin(n *Network)
	OnTrainEnd(n *Network)
	OnEpochEnd(epoch int, loss float64, n *Network)
}

// BaseCallback provides default empty implementations for Callback.
type BaseCallback struct{}

func (c BaseCallback) OnTrainBegin(n *Network)                        {}
func (c BaseCallback) OnTrainEnd(n *Network)                          {}
func (c BaseCallback) OnEpochEnd(epoch int, loss float64, n *Network) {}

// EarlyStopping stops training when the loss has stopped improving.
type EarlyStopping struct {
	BaseCallback
	Patience  int
	Threshold float64
	Out       io.Writer

	bestLoss     float64
	numBadEpochs int
	Stopped      bool
}

func NewEarlyStopping(patience int, threshold float64) *EarlyStopping {
	return &EarlyStopping{
		Patience:  patience,
		Threshold: threshold,
		Out:       os.Stdout,
		bestLoss:  math.MaxFloat64,
	}
}

func (c *EarlyStopping) OnEpochEnd(epoch int, loss float64, n *Network) {
	if loss < c.bestLoss-c.Threshold {
		c.bestLoss = loss
		c.numBadEpochs = 0
	} else {
		c.numBadEpochs++
	}

	if c.numBadEpochs >= c.Patience {
		if c.Out != nil {
			fmt.Fprintf(c.Out, "Early stopping at epoch %d: loss %.6f did not improve for %d epochs\n", epoch, loss, c.Patience)
		}
		c.Stopped = true
	}
}

// ShouldStop implements Stopper.
func (c *EarlyStopping) ShouldStop() bool {
	return c.Stopped
}

// Logger logs training progress every Interval epochs and always logs
// the last epoch when training ends.
type Logger struct {
	BaseCallback
	Interval int
	Out      io.Writer

	lastEpoch  int
	lastLoss   float64
	lastLogged bool
	seen       bool
}

// NewLogger returns a Logger writing to stdout.
func NewLogger(interval int) *Logger {
	return &Logger{Interval: interval, Out: os.Stdout}
}

func (c *Logger) OnEpochEnd(epoch int, loss float64, n *Network) {
	c.lastEpoch, c.lastLoss, c.seen = epoch, loss, true
	c.lastLogged = c.Interval > 0 && epoch%c.Interval == 0
	if c.lastLogged {
		c.print(epoch, loss)
	}
}

func (c *Logger) OnTrainEnd(n *Network) {
	if c.seen && !c.lastLogged {
		c.print(c.lastEpoch, c.lastLoss)
	}
}

func (c *Logger) print(epoch int, loss float64) {
	out := c.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, "Epoch %d: loss = %.6f\n", epoch, loss)
}
