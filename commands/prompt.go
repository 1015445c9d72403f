// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

package commands

import (
	"bufio"
	"io"
	"strings"

	"github.com/djup-io/djup/printer"
)

// Confirm asks a yes/no question on the given streams and reports the
// answer. Anything other than y/yes (case-insensitive) declines.
func Confirm(in io.Reader, out *printer.Printer, prompt string) (bool, error) {
	out.Printf("%s [y/N] ", prompt)
	answer, err := readLine(in)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// ConfirmToken asks the operator to type the exact token and reports
// whether it matched. Used by destructive commands so a stray "y" cannot
// tear production down.
func ConfirmToken(in io.Reader, out *printer.Printer, prompt, token string) (bool, error) {
	out.Printf("%s\nType %q to confirm: ", prompt, token)
	answer, err := readLine(in)
	if err != nil {
		return false, err
	}
	return answer == token, nil
}

func readLine(in io.Reader) (string, error) {
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
