// Copyright 2024 The Caprica-Go Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package diag implements the compiler core's diagnostic sink (component
// C2 of the design): numbered warnings and errors with source locations,
// monotonic counters, and the warning enable/promote configuration.
//
// Diagnostics are rendered with fmt.Sprintf and prefixed with their
// Location's String() form; Fatality, the error value a recovered Fatal
// or LogicalFatal becomes, carries only the formatted message, not the
// location. Fatal/LogicalFatal unwind via panic/recover
// instead of a returned error: no caller in the core
// passes should recover from them, and CapricaError.h's C++ original
// unwinds via a thrown exception for exactly the same reason.
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/rethesda/Caprica/lang/source"
)

// Kind classifies a diagnostic for rendering purposes.
type Kind int

const (
	KindError Kind = iota
	KindWarning
	KindErrorPromoted
	KindFatal
	KindLogicalFatal
)

func (k Kind) label(num int) string {
	switch k {
	case KindError:
		return "Error"
	case KindWarning:
		return fmt.Sprintf("Warning W%d", num)
	case KindErrorPromoted:
		return fmt.Sprintf("Error W%d", num)
	case KindFatal:
		return "Fatal Error"
	case KindLogicalFatal:
		return "Fatal Error"
	}
	return "Error"
}

// Fatality is the panic value thrown by Fatal and LogicalFatal. It is
// recovered at the single boundary in the core that owns a compilation
// unit's call stack (the driver calling into the resolution context).
type Fatality struct {
	Message string
}

func (f Fatality) Error() string { return f.Message }

// Config is the diagnostics configuration supplied by the external config
// collaborator.
type Config struct {
	DisabledWarnings map[int]bool
	WarningsAsErrors map[int]bool
}

func (c *Config) disabled(num int) bool {
	return c != nil && c.DisabledWarnings != nil && c.DisabledWarnings[num]
}

func (c *Config) promoted(num int) bool {
	return c != nil && c.WarningsAsErrors != nil && c.WarningsAsErrors[num]
}

// Sink accumulates diagnostics for one compilation invocation. Warning and
// error counters are process-wide and monotonic within one Sink.
type Sink struct {
	Config Config

	// Out receives rendered diagnostic lines; defaults to os.Stderr when nil.
	Out io.Writer

	errorCount   int
	warningCount int
}

func (s *Sink) writer() io.Writer {
	if s.Out == nil {
		return os.Stderr
	}
	return s.Out
}

// ErrorCount is the number of errors recorded so far, including warnings
// promoted to errors.
func (s *Sink) ErrorCount() int { return s.errorCount }

// WarningCount is the number of warnings recorded so far, including those
// promoted to errors (which increment both counters).
func (s *Sink) WarningCount() int { return s.warningCount }

func (s *Sink) print(loc source.Location, label, msg string) {
	locStr := loc.String()
	if locStr == "" {
		fmt.Fprintf(s.writer(), "%s: %s\n", label, msg)
		return
	}
	fmt.Fprintf(s.writer(), "%s: %s: %s\n", locStr, label, msg)
}

// Error records a recoverable error: printed, counted, compilation
// continues so later diagnostics can still be emitted.
func (s *Sink) Error(loc source.Location, format string, args ...interface{}) {
	s.errorCount++
	s.print(loc, KindError.label(0), fmt.Sprintf(format, args...))
}

// Warning emits warning number `num`, subject to the enable/promote
// configuration: disabled warnings are a no-op; promoted warnings behave
// like Error with an "Error W<num>" prefix and increment both counters;
// otherwise a "Warning W<num>" is emitted and only the warning counter
// moves.
func (s *Sink) Warning(num int, loc source.Location, format string, args ...interface{}) {
	if s.Config.disabled(num) {
		return
	}
	s.warningCount++
	msg := fmt.Sprintf(format, args...)
	if s.Config.promoted(num) {
		s.errorCount++
		s.print(loc, KindErrorPromoted.label(num), msg)
		return
	}
	s.print(loc, KindWarning.label(num), msg)
}

// Fatal prints an unrecoverable, location-bearing diagnostic and unwinds
// the current compilation via panic(Fatality{...}).
func (s *Sink) Fatal(loc source.Location, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	s.print(loc, KindFatal.label(0), msg)
	panic(Fatality{Message: msg})
}

// LogicalFatal is Fatal without a source location, reserved for invariant
// violations that indicate a bug in the compiler itself (a "this should
// already have been resolved" state).
func (s *Sink) LogicalFatal(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	s.print(source.Location{}, KindLogicalFatal.label(0), msg)
	panic(Fatality{Message: msg})
}

// ExitIfErrors terminates the process with a non-zero status if any error
// (including promoted warnings) was recorded.
func (s *Sink) ExitIfErrors() {
	if s.errorCount > 0 {
		os.Exit(1)
	}
}

// Recover turns a panic(Fatality{...}) into a returned error. Call it in a
// deferred function at the one boundary in the core that must not
// propagate the panic further (the top-level driver).
func Recover(err *error) {
	if r := recover(); r != nil {
		if f, ok := r.(Fatality); ok {
			*err = f
			return
		}
		panic(r)
	}
}
