package net

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

var csvLogHeader = []string{"epoch", "loss", "time_seconds"}

// CSVLogger records one epoch,loss,time_seconds row per epoch.
//
// Callbacks cannot fail a run, so the first error (open, write, flush or
// close) is kept and later epochs are skipped. Check Err after Fit.
type CSVLogger struct {
	BaseCallback
	Filename string
	Append   bool

	file   *os.File
	writer *csv.Writer
	start  time.Time
	err    error
}

// NewCSVLogger creates a CSVLogger that truncates filename, or appends to
// it when append is set.
func NewCSVLogger(filename string, append bool) *CSVLogger {
	return &CSVLogger{
		Filename: filename,
		Append:   append,
	}
}

// Err returns the first error met while logging, or nil.
func (c *CSVLogger) Err() error {
	return c.err
}

func (c *CSVLogger) OnTrainBegin(n *Network) {
	c.err = nil
	flag := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if c.Append {
		flag = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}

	file, err := os.OpenFile(c.Filename, flag, 0644)
	if err != nil {
		c.err = errors.Wrapf(err, "open loss log %s", c.Filename)
		return
	}
	c.file = file
	c.writer = csv.NewWriter(file)
	c.start = time.Now()

	info, err := file.Stat()
	if err != nil {
		c.fail(errors.Wrapf(err, "stat loss log %s", c.Filename))
		return
	}
	if info.Size() == 0 {
		c.write(csvLogHeader)
	}
}

func (c *CSVLogger) OnEpochEnd(epoch int, loss float64, n *Network) {
	if c.writer == nil {
		return
	}
	c.write([]string{
		strconv.Itoa(epoch),
		strconv.FormatFloat(loss, 'f', 6, 64),
		strconv.FormatFloat(time.Since(c.start).Seconds(), 'f', 2, 64),
	})
}

func (c *CSVLogger) OnTrainEnd(n *Network) {
	if c.file == nil {
		return
	}
	c.writer.Flush()
	if err := c.writer.Error(); err != nil && c.err == nil {
		c.err = errors.Wrapf(err, "flush loss log %s", c.Filename)
	}
	if err := c.file.Close(); err != nil && c.err == nil {
		c.err = errors.Wrapf(err, "close loss log %s", c.Filename)
	}
	c.file = nil
	c.writer = nil
}

// write flushes every row so the log can be followed while training.
func (c *CSVLogger) write(record []string) {
	if err := c.writer.Write(record); err != nil {
		c.fail(errors.Wrapf(err, "write loss log %s", c.Filename))
		return
	}
	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		c.fail(errors.Wrapf(err, "flush loss log %s", c.Filename))
	}
}

// fail records err and closes the file; later epochs are ignored.
func (c *CSVLogger) fail(err error) {
	c.err = err
	c.file.Close()
	c.file = nil
	c.writer = nil
}
