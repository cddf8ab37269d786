// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package types

import (
	"io"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Limits holds the constants that bound DECIMAL precision and scale during
// type resolution. Oversized intermediate results are capped at these
// values rather than rejected.
type Limits struct {
	// MaxDecimalPrecisionScale bounds both precision and scale of any
	// resolved DECIMAL.
	MaxDecimalPrecisionScale int32 `yaml:"max_decimal_precision_scale"`
	// DB2MaxDecimalPrecisionScale caps the precision produced by addition,
	// subtraction and averaging.
	DB2MaxDecimalPrecisionScale int32 `yaml:"db2_max_decimal_precision_scale"`
	// MinDecimalDivideScale is the smallest scale of an AVG result.
	MinDecimalDivideScale int32 `yaml:"min_decimal_divide_scale"`
}

// DefaultLimits are the limits used unless SetLimits is called.
var DefaultLimits = Limits{
	MaxDecimalPrecisionScale:    31,
	DB2MaxDecimalPrecisionScale: 31,
	MinDecimalDivideScale:       4,
}

var limits atomic.Pointer[Limits]

// GetLimits returns the limits currently in effect.
func GetLimits() Limits {
	if l := limits.Load(); l != nil {
		return *l
	}
	return DefaultLimits
}

// SetLimits validates and installs l. It is meant to be called once at
// startup, before any compilation begins; descriptors built earlier keep
// the parameters they were built with.
func SetLimits(l Limits) error {
	if err := l.Validate(); err != nil {
		return err
	}
	limits.Store(&l)
	return nil
}

// ResetLimits restores DefaultLimits. Used by tests.
func ResetLimits() {
	limits.Store(nil)
}

// Validate checks that the limits are internally consistent.
func (l Limits) Validate() error {
	if l.MaxDecimalPrecisionScale <= 0 {
		return errors.Newf("max_decimal_precision_scale must be positive, got %d",
			l.MaxDecimalPrecisionScale)
	}
	if l.DB2MaxDecimalPrecisionScale <= 0 || l.DB2MaxDecimalPrecisionScale > l.MaxDecimalPrecisionScale {
		return errors.Newf("db2_max_decimal_precision_scale must be in (0, %d], got %d",
			l.MaxDecimalPrecisionScale, l.DB2MaxDecimalPrecisionScale)
	}
	if l.MinDecimalDivideScale < 0 || l.MinDecimalDivideScale > l.MaxDecimalPrecisionScale {
		return errors.Newf("min_decimal_divide_scale must be in [0, %d], got %d",
			l.MaxDecimalPrecisionScale, l.MinDecimalDivideScale)
	}
	return nil
}

// LoadLimits decodes limits from YAML. Fields that are absent keep their
// default values.
func LoadLimits(r io.Reader) (Limits, error) {
	l := DefaultLimits
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&l); err != nil && !errors.Is(err, io.EOF) {
		return Limits{}, errors.Wrap(err, "decoding limits")
	}
	if err := l.Validate(); err != nil {
		return Limits{}, err
	}
	return l, nil
}
