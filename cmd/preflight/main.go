// Package main provides the preflight command-line tool, a drop-in
// reimplementation of a pre-commit hook orchestrator.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/mitchellh/cli"

	"github.com/preflightdev/preflight/internal/commands"
	"github.com/preflightdev/preflight/pkg/worktree"
)

// Version information set by GoReleaser
var (
	version = "dev"
	commit  = "none"    //nolint:unused // Set by GoReleaser
	date    = "unknown" //nolint:unused // Set by GoReleaser
	builtBy = "unknown" //nolint:unused // Set by GoReleaser
)

func main() {
	installInterruptHandler()

	c := cli.NewCLI("preflight", version)
	c.Args = os.Args[1:]
	c.HelpFunc = customHelpFunc
	c.Commands = map[string]cli.CommandFactory{
		"autoupdate":        commands.AutoupdateCommandFactory,
		"clean":             commands.CleanCommandFactory,
		"doctor":            commands.DoctorCommandFactory,
		"gc":                commands.GcCommandFactory,
		"install":           commands.InstallCommandFactory,
		"install-hooks":     commands.InstallHooksCommandFactory,
		"migrate-config":    commands.MigrateConfigCommandFactory,
		"run":               commands.RunCommandFactory,
		"sample-config":     commands.SampleConfigCommandFactory,
		"try-repo":          commands.TryRepoCommandFactory,
		"uninstall":         commands.UninstallCommandFactory,
		"validate-config":   commands.ValidateConfigCommandFactory,
		"validate-manifest": commands.ValidateManifestCommandFactory,
		"help":              commands.HelpCommandFactory,
		"hook-impl":         commands.HookImplCommandFactory,
		"init-templatedir":  commands.InitTemplatedirCommandFactory,
	}

	exitStatus, err := c.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(exitStatus)
}

// installInterruptHandler drains the work-tree guard's cleanup registry on
// SIGINT/SIGTERM so an interrupted run still restores stashed changes,
// then exits with the conventional 130 (interrupted) status.
func installInterruptHandler() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		worktree.Global().Drain()
		os.Exit(130)
	}()
}

// customHelpFunc provides Python pre-commit style help output
func customHelpFunc(cmdFactories map[string]cli.CommandFactory) string {
	// Build the command list in alphabetical order (like Python version)
	var commandNames []string
	for name := range cmdFactories {
		// Skip internal commands from main help
		if name != "hook-impl" && name != "help" {
			commandNames = append(commandNames, name)
		}
	}

	// Sort commands alphabetically
	sort.Strings(commandNames)

	// Build the usage line with all commands
	usageLine := "usage: preflight [-h] [--version]\n"
	usageLine += "                  {"
	usageLine += strings.Join(commandNames, ",")
	usageLine += "}\n                  ...\n"

	helpText := usageLine + `
A framework for managing and maintaining multi-language git hooks.

positional arguments:
  {` + strings.Join(commandNames, ",") + `}
    autoupdate          Auto-update pre-commit config to the latest repos' versions
    clean               Clean cached repositories and environments
    doctor              Check and repair environment health (Go extension)
    gc                  Clean unused cached repos
    init-templatedir    Install hook script in a directory intended for use with git init templateDir (Go extension)
    install             Install the preflight git hook script
    install-hooks       Install hook environments for all environments in the config file
    migrate-config      Migrate list configuration to new map configuration
    run                 Run hooks
    sample-config       Produce a sample .pre-commit-config.yaml file
    try-repo            Try the hooks in a repository, useful for developing new hooks
    uninstall           Uninstall the preflight git hook script
    validate-config     Validate .pre-commit-config.yaml files
    validate-manifest   Validate .pre-commit-hooks.yaml files

optional arguments:
  -h, --help            show this help message and exit
  --version             show program's version number and exit
`

	return helpText
}
