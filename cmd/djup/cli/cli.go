// Copyright 2025 Djup Authors
// SPDX-License-Identifier: MPL-2.0

// Package cli provides the djup command line interface: flag parsing,
// logging setup and dispatch to the command implementations.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/posener/complete"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/willabides/kongplete"

	"github.com/djup-io/djup"
	"github.com/djup-io/djup/commands"
	"github.com/djup-io/djup/commands/deploy"
	"github.com/djup-io/djup/commands/destroy"
	"github.com/djup-io/djup/commands/env"
	"github.com/djup-io/djup/commands/initialize"
	"github.com/djup-io/djup/commands/status"
	"github.com/djup-io/djup/commands/version"
	"github.com/djup-io/djup/config"
	"github.com/djup-io/djup/engine"
	"github.com/djup-io/djup/errors"
	"github.com/djup-io/djup/exit"
	"github.com/djup-io/djup/printer"
)

const (
	name            = "djup"
	helpSummaryText = "djup scaffolds and deploys Django applications on Civo Kubernetes with Upstash Redis and GitHub Actions."
)

// CLI is the djup command line interface.
type CLI struct {
	parser *kong.Kong
	input  *FlagSpec

	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	printers printer.Printers

	kongExit       bool
	kongExitStatus int
}

// NewCLI creates the CLI bound to the process streams.
func NewCLI() (*CLI, error) {
	c := &CLI{
		input:  &FlagSpec{},
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	parser, err := kong.New(c.input,
		kong.Name(name),
		kong.Description(helpSummaryText),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Exit(func(status int) {
			// Avoid kong aborting the entire process since the CLI is
			// designed as a lib.
			c.kongExit = true
			c.kongExitStatus = status
		}),
		kong.Writers(c.stdout, c.stderr),
	)
	if err != nil {
		return nil, err
	}
	c.parser = parser

	kongplete.Complete(parser,
		kongplete.WithPredictor("file", complete.PredictFiles("*")),
	)

	c.printers.Stdout = printer.NewPrinter(c.stdout)
	c.printers.Stderr = printer.NewPrinter(c.stderr)
	return c, nil
}

// Exec parses args and executes the selected command, returning the
// process exit status.
func (c *CLI) Exec(args []string) exit.Status {
	kctx, err := c.parser.Parse(args)
	if c.kongExit {
		if c.kongExitStatus != 0 {
			return exit.Failed
		}
		return exit.OK
	}
	if err != nil {
		c.printers.Stderr.Errorln(err.Error())
		return exit.Failed
	}

	err = ConfigureLogging(c.input.LogLevel, c.input.LogFmt, c.input.LogDestination,
		c.stdout, c.stderr)
	if err != nil {
		c.printers.Stderr.Errorln(err.Error())
		return exit.Failed
	}

	root, err := c.configRoot()
	if err != nil {
		c.printers.Stderr.Errorln(err.Error())
		return exit.Failed
	}

	log.Debug().
		Str("action", "cli.Exec()").
		Str("command", kctx.Command()).
		Str("configRoot", root).
		Msg("dispatching")

	if kctx.Command() == "install-completions" {
		if err := kctx.Run(); err != nil {
			c.printers.Stderr.Errorln(err.Error())
			return exit.Failed
		}
		return exit.OK
	}

	store := config.NewStore(root)
	eng := engine.New(store, c.printers)

	cmd, err := c.dispatch(kctx.Command(), eng)
	if err != nil {
		c.printers.Stderr.Errorln(err.Error())
		return exit.Failed
	}

	if err := cmd.Exec(context.Background()); err != nil {
		c.printers.Stderr.ErrorWithDetailsln(fmt.Sprintf("executing %q", cmd.Name()), err)
		return exit.Failed
	}
	return exit.OK
}

// configRoot resolves the configuration root directory: the --config-root
// flag (or DJUP_CONFIG_ROOT), falling back to ~/.djup. Resolved once here;
// everything below receives the store by value.
func (c *CLI) configRoot() (string, error) {
	if c.input.ConfigRoot != "" {
		return c.input.ConfigRoot, nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", errors.E(err, "resolving home directory")
	}
	return filepath.Join(home, ".djup"), nil
}

func (c *CLI) dispatch(command string, eng *engine.Engine) (commands.Executor, error) {
	in := c.input
	switch command {
	case "init project <name>":
		return &initialize.Spec{
			ProjectName: in.Init.Project.Name,
			Repo:        in.Init.Project.Repo,
			Region:      in.Init.Project.Region,
			Domain:      in.Init.Project.Domain,
			DevDomain:   in.Init.Project.DevDomain,
			Engine:      eng,
			Printers:    c.printers,
		}, nil
	case "env list":
		return &env.ListSpec{
			Project:  in.Env.List.Project,
			Engine:   eng,
			Printers: c.printers,
		}, nil
	case "env add <name>":
		return &env.AddSpec{
			Project:     in.Env.Add.Project,
			Environment: in.Env.Add.Name,
			Profile:     in.Env.Add.Profile,
			Branch:      in.Env.Add.Branch,
			Domain:      in.Env.Add.Domain,
			Deploy:      in.Env.Add.Deploy,
			Engine:      eng,
			Printers:    c.printers,
		}, nil
	case "env remove <name>":
		return &env.RemoveSpec{
			Project:     in.Env.Remove.Project,
			Environment: in.Env.Remove.Name,
			Force:       in.Env.Remove.Force,
			Engine:      eng,
			Printers:    c.printers,
			Stdin:       c.stdin,
		}, nil
	case "env info <name>":
		return &env.InfoSpec{
			Project:     in.Env.Info.Project,
			Environment: in.Env.Info.Name,
			Engine:      eng,
			Printers:    c.printers,
		}, nil
	case "deploy infra":
		return &deploy.InfraSpec{
			Project:     in.Deploy.Infra.Project,
			Environment: in.Deploy.Infra.Env,
			Upgrade:     in.Deploy.Infra.Upgrade,
			AutoApprove: in.Deploy.Infra.AutoApprove,
			Engine:      eng,
			Printers:    c.printers,
		}, nil
	case "deploy validate":
		return &deploy.ValidateSpec{
			Project:     in.Deploy.Validate.Project,
			Environment: in.Deploy.Validate.Env,
			Engine:      eng,
			Printers:    c.printers,
		}, nil
	case "deploy plan":
		return &deploy.PlanSpec{
			Project:     in.Deploy.Plan.Project,
			Environment: in.Deploy.Plan.Env,
			Out:         in.Deploy.Plan.Out,
			Engine:      eng,
			Printers:    c.printers,
		}, nil
	case "status", "status list":
		return &status.ListSpec{
			Engine:   eng,
			Printers: c.printers,
		}, nil
	case "status project <project>":
		return &status.ProjectSpec{
			Project:  in.Status.Project.Project,
			Engine:   eng,
			Printers: c.printers,
		}, nil
	case "status infra":
		return &status.InfraSpec{
			Project:     in.Status.Infra.Project,
			Environment: in.Status.Infra.Env,
			Engine:      eng,
			Printers:    c.printers,
		}, nil
	case "status github <project>":
		return &status.GithubSpec{
			Project:  in.Status.Github.Project,
			Limit:    in.Status.Github.Limit,
			Engine:   eng,
			Printers: c.printers,
		}, nil
	case "destroy env <name>":
		return &destroy.EnvSpec{
			Project:     in.Destroy.Env.Project,
			Environment: in.Destroy.Env.Name,
			KeepConfig:  in.Destroy.Env.KeepConfig,
			AutoApprove: in.Destroy.Env.AutoApprove,
			Engine:      eng,
			Printers:    c.printers,
			Stdin:       c.stdin,
		}, nil
	case "destroy project <project>":
		return &destroy.ProjectSpec{
			Project:     in.Destroy.Project.Project,
			KeepConfig:  in.Destroy.Project.KeepConfig,
			AutoApprove: in.Destroy.Project.AutoApprove,
			Engine:      eng,
			Printers:    c.printers,
			Stdin:       c.stdin,
		}, nil
	case "version":
		return &version.Spec{
			Version:  djup.Version(),
			Printers: c.printers,
		}, nil
	}
	return nil, errors.E(errors.ErrInternal, "unhandled command %q", command)
}

// ConfigureLogging configures djup global logging.
func ConfigureLogging(logLevel, logFmt, logdest string, stdout, stderr io.Writer) error {
	var output io.Writer

	switch logdest {
	case "stdout":
		output = stdout
	case "stderr":
		output = stderr
	default:
		return errors.E("unknown log destination %q", logdest)
	}

	zloglevel, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		zloglevel = zerolog.FatalLevel
	}

	zerolog.SetGlobalLevel(zloglevel)

	switch logFmt {
	case "json":
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(output)
	case "text": // no color
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: output, NoColor: true, TimeFormat: time.RFC3339})
	default: // default: console mode using color
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: output, NoColor: false, TimeFormat: time.RFC3339})
	}
	return nil
}
