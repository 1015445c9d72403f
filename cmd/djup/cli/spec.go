// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"github.com/willabides/kongplete"
)

// FlagSpec defines the djup flags and commands.
type FlagSpec struct {
	globalCliFlags `envprefix:"DJUP_"`

	Init struct {
		Project struct {
			Name      string `arg:"" help:"Name of the project (lowercase letters, digits and hyphens)."`
			Repo      string `help:"GitHub repository as owner/repo. Detected from the origin remote when omitted."`
			Region    string `default:"NYC1" help:"Civo region: NYC1, LON1, FRA1 or PHX1."`
			Domain    string `help:"Production domain. Defaults to <name>.example.com."`
			DevDomain string `help:"Dev domain. Defaults to dev.<domain>."`
		} `cmd:"" help:"Create a project with dev and production environments."`
	} `cmd:"" help:"Initialize projects."`

	Env struct {
		List struct {
			Project string `required:"" short:"p" help:"Project name."`
		} `cmd:"" help:"List the environments of a project."`

		Add struct {
			Name    string `arg:"" help:"Name of the new environment."`
			Project string `required:"" short:"p" help:"Project name."`
			Profile string `default:"small" enum:"small,medium,large" help:"Size profile: small, medium or large."`
			Branch  string `help:"Branch that auto-deploys to this environment. Defaults to the environment name."`
			Domain  string `help:"Domain of the environment. Defaults to <name>.<production domain>."`
			Deploy  bool   `default:"false" help:"Deploy the environment right after creating it."`
		} `cmd:"" help:"Add a new environment to a project."`

		Remove struct {
			Name    string `arg:"" help:"Name of the environment to remove."`
			Project string `required:"" short:"p" help:"Project name."`
			Force   bool   `default:"false" help:"Do not ask for confirmation."`
		} `cmd:"" help:"Remove an environment's configuration. Deployed infrastructure is NOT destroyed."`

		Info struct {
			Name    string `arg:"" help:"Name of the environment."`
			Project string `required:"" short:"p" help:"Project name."`
		} `cmd:"" help:"Show detailed information about an environment."`
	} `cmd:"" help:"Manage the environments of a project."`

	Deploy struct {
		Infra struct {
			Project     string `required:"" short:"p" help:"Project name."`
			Env         string `required:"" help:"Environment name."`
			Upgrade     bool   `default:"false" help:"Upgrade provider plugins during init."`
			AutoApprove bool   `default:"false" help:"Apply without the interactive approval prompt."`
		} `cmd:"" help:"Provision the infrastructure of an environment."`

		Validate struct {
			Project string `required:"" short:"p" help:"Project name."`
			Env     string `required:"" help:"Environment name."`
		} `cmd:"" help:"Validate the configuration of an environment."`

		Plan struct {
			Project string `required:"" short:"p" help:"Project name."`
			Env     string `required:"" help:"Environment name."`
			Out     string `help:"Save the plan under this file name in the environment directory."`
		} `cmd:"" help:"Show the execution plan of an environment without applying it."`
	} `cmd:"" help:"Deploy infrastructure."`

	Status struct {
		List struct{} `cmd:"" default:"1" help:"List all projects."`

		Project struct {
			Project string `arg:"" help:"Project name."`
		} `cmd:"" help:"Show the status of a project and its environments."`

		Infra struct {
			Project string `required:"" short:"p" help:"Project name."`
			Env     string `required:"" help:"Environment name."`
		} `cmd:"" help:"Show the provisioned infrastructure of an environment."`

		Github struct {
			Project string `arg:"" help:"Project name."`
			Limit   int    `default:"5" help:"Number of workflow runs to list."`
		} `cmd:"" help:"Show recent GitHub Actions runs of the project."`
	} `cmd:"" help:"Report deployment status."`

	Destroy struct {
		Env struct {
			Name        string `arg:"" help:"Name of the environment to destroy."`
			Project     string `required:"" short:"p" help:"Project name."`
			KeepConfig  bool   `default:"true" negatable:"" help:"Keep the local state artifacts after destroying."`
			AutoApprove bool   `default:"false" help:"Do not ask for confirmation."`
		} `cmd:"" help:"Tear down the infrastructure of an environment."`

		Project struct {
			Project     string `arg:"" help:"Name of the project to destroy."`
			KeepConfig  bool   `default:"true" negatable:"" help:"Keep the local state artifacts after destroying."`
			AutoApprove bool   `default:"false" help:"Do not ask for confirmation."`
		} `cmd:"" help:"Tear down ALL infrastructure of a project."`
	} `cmd:"" help:"Destroy infrastructure."`

	InstallCompletions kongplete.InstallCompletions `cmd:"" help:"Install shell completions."`

	Version struct{} `cmd:"" help:"Show djup version."`
}

type globalCliFlags struct {
	ConfigRoot     string `env:"CONFIG_ROOT" optional:"true" help:"Root of the djup configuration tree. Defaults to ~/.djup."`
	LogLevel       string `env:"LOG_LEVEL" optional:"true" default:"warn" enum:"disabled,trace,debug,info,warn,error,fatal" help:"Log level to use: 'disabled', 'trace', 'debug', 'info', 'warn', 'error', or 'fatal'."`
	LogFmt         string `env:"LOG_FMT" optional:"true" default:"console" enum:"console,text,json" help:"Log format to use: 'console', 'text', or 'json'."`
	LogDestination string `env:"LOG_DESTINATION" optional:"true" default:"stderr" enum:"stderr,stdout" help:"Destination channel of log messages: 'stderr' or 'stdout'."`
}
