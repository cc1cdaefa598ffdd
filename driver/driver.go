// Package driver orchestrates the Slicer, chunk tables, LCS engine, and
// delta assembler into the one-shot and streaming operations described
// in §4.7/§6 of the design: push bytes for the old and new stream in
// any order and sizing, then finalize once to obtain a Delta.
package driver

import (
	"errors"
	"fmt"

	"github.com/trezbouchez/differ/chunktable"
	"github.com/trezbouchez/differ/delta"
	"github.com/trezbouchez/differ/lcs"
	"github.com/trezbouchez/differ/slicer"
)

// Config is the chunking configuration shared by both streams of a
// Driver. See slicer.Config for field semantics and constraints.
type Config = slicer.Config

// NewConfig forwards to slicer.NewConfig.
var NewConfig = slicer.NewConfig

// ErrFinalized is returned by PushOld, PushNew, or Finalize once the
// Driver has already been finalized. It signals caller misuse, not a
// data-dependent failure.
var ErrFinalized = errors.New("driver: already finalized")

// Driver holds two independent Slicers (and their Chunk tables) for the
// old and new streams. It is single-threaded and synchronous: no
// method blocks, and there is no cancellation model beyond discarding
// the Driver before Finalize.
type Driver struct {
	oldSlicer *slicer.Slicer
	newSlicer *slicer.Slicer
	oldTable  *chunktable.Table
	newTable  *chunktable.Table
	finalized bool
}

// New constructs a Driver from a validated Config. Both streams share
// the same chunking configuration.
func New(cfg Config) (*Driver, error) {
	oldSlicer, err := slicer.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("driver: old stream slicer: %w", err)
	}
	newSlicer, err := slicer.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("driver: new stream slicer: %w", err)
	}
	return &Driver{
		oldSlicer: oldSlicer,
		newSlicer: newSlicer,
		oldTable:  chunktable.New(),
		newTable:  chunktable.New(),
	}, nil
}

// PushOld appends bytes to the old stream. Valid only before Finalize.
func (d *Driver) PushOld(b []byte) error {
	if d.finalized {
		return ErrFinalized
	}
	chunks, err := d.oldSlicer.Push(b)
	if err != nil {
		return fmt.Errorf("driver: push old: %w", err)
	}
	for _, c := range chunks {
		d.oldTable.Append(c)
	}
	return nil
}

// PushNew appends bytes to the new stream. Valid only before Finalize.
func (d *Driver) PushNew(b []byte) error {
	if d.finalized {
		return ErrFinalized
	}
	chunks, err := d.newSlicer.Push(b)
	if err != nil {
		return fmt.Errorf("driver: push new: %w", err)
	}
	for _, c := range chunks {
		d.newTable.Append(c)
	}
	return nil
}

// Finalize flushes both slicers, seals both chunk tables, runs the LCS
// engine over their digest sequences, assembles the Delta, and
// consumes the Driver: no further Push or Finalize call is valid
// afterward.
func (d *Driver) Finalize() (*delta.Delta, error) {
	if d.finalized {
		return nil, ErrFinalized
	}
	d.finalized = true

	if c, ok := d.oldSlicer.Flush(); ok {
		d.oldTable.Append(c)
	}
	if c, ok := d.newSlicer.Flush(); ok {
		d.newTable.Append(c)
	}
	d.oldTable.Seal()
	d.newTable.Seal()

	trace := lcs.Compute(d.oldTable.Digests(), d.newTable.Digests())

	return delta.Assemble(d.oldTable, d.newTable, trace)
}

// Diff is the one-shot convenience form: given two complete in-memory
// byte slices and a configuration, compute their Delta directly.
func Diff(oldBytes, newBytes []byte, cfg Config) (*delta.Delta, error) {
	drv, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if err := drv.PushOld(oldBytes); err != nil {
		return nil, err
	}
	if err := drv.PushNew(newBytes); err != nil {
		return nil, err
	}
	return drv.Finalize()
}
