// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

// Package printer defines functionality for "printing" text to an io.Writer
// e.g. os.Stdout, os.Stderr etc. with a consistent style for errors,
// warnings, information etc.
package printer

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/djup-io/djup/errors"
)

var (
	bold       = color.New(color.Bold).Sprint
	boldYellow = color.New(color.Bold, color.FgYellow).Sprint
	boldRed    = color.New(color.Bold, color.FgRed).Sprint
	boldGreen  = color.New(color.Bold, color.FgGreen).Sprint
)

// Printer encapsulates an io.Writer.
type Printer struct {
	w io.Writer
}

// Printers groups a stdout and a stderr printer, to be handed down to
// commands as a unit.
type Printers struct {
	Stdout *Printer
	Stderr *Printer
}

// DefaultPrinters returns the printers bound to the process stdout/stderr.
func DefaultPrinters() Printers {
	return Printers{
		Stdout: NewPrinter(os.Stdout),
		Stderr: NewPrinter(os.Stderr),
	}
}

// NewPrinter creates a new Printer with the provided io.Writer e.g.: stdout,
// stderr, file etc.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w}
}

// Println prints a message to the io.Writer.
func (p *Printer) Println(msg string) {
	fmt.Fprintln(p.w, msg)
}

// Printf prints a formatted message to the io.Writer.
func (p *Printer) Printf(format string, a ...interface{}) {
	fmt.Fprintf(p.w, format, a...)
}

// Warnln prints a message with a "Warning:" prefix. The prefix is printed in
// the boldYellow style.
func (p *Printer) Warnln(title string) {
	fmt.Fprintln(p.w, boldYellow("Warning:"), bold(title))
}

// Warnf is like Warnln but with a format string.
func (p *Printer) Warnf(format string, a ...interface{}) {
	p.Warnln(fmt.Sprintf(format, a...))
}

// ErrorWithDetailsln prints an error with a title and the underlying error.
// If the error contains multiple error items, each error is printed with a
// `>` prefix.
// e.g.:
//
//	Error: destroying project
//	> destroying dev: exit status 1
//	> destroying staging: exit status 1
func (p *Printer) ErrorWithDetailsln(title string, err error) {
	p.Errorln(title)

	for _, item := range toStrings(err) {
		fmt.Fprintln(p.w, boldRed(">"), item)
	}
}

// Errorln prints a message with an "Error:" prefix. The prefix is printed in
// the boldRed style.
func (p *Printer) Errorln(title string) {
	fmt.Fprintln(p.w, boldRed("Error:"), bold(title))
}

// Errorf is like Errorln but with a format string.
func (p *Printer) Errorf(format string, a ...interface{}) {
	p.Errorln(fmt.Sprintf(format, a...))
}

// Successln prints a message in the boldGreen style.
func (p *Printer) Successln(msg string) {
	fmt.Fprintln(p.w, boldGreen(msg))
}

// Successf is like Successln but with a format string.
func (p *Printer) Successf(format string, a ...interface{}) {
	p.Successln(fmt.Sprintf(format, a...))
}

// toStrings converts an error into a list of strings where each string
// represents an individual error.
func toStrings(err error) []string {
	var list *errors.List
	if errors.As(err, &list) {
		errs := list.Errors()
		strs := make([]string, 0, len(errs))
		for _, errItem := range errs {
			strs = append(strs, errItem.Error())
		}
		return strs
	}
	return []string{err.Error()}
}
