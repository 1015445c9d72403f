// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

// Djup is a tool for deploying Django applications on Civo Kubernetes
// with Upstash Redis and GitHub Actions based continuous deployment.
// For details on how to use it just run:
//
//	djup --help
package main

import (
	"fmt"
	"os"

	"github.com/djup-io/djup/cmd/djup/cli"
)

func main() {
	c, err := cli.NewCLI()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(int(c.Exec(os.Args[1:])))
}
