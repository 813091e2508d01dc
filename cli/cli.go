package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/srcfile/cli/cmd"
	"github.com/ardnew/srcfile/pkg"
)

// CLI is the srcfile command line.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print the version and exit." short:"V"`

	Source cmd.Source `cmd:"" default:"withargs" help:"Print the typed variables of a source file."`
	Eval   cmd.Eval   `cmd:""                    help:"Evaluate an expression over the variables of a source file."`
	Repl   cmd.Repl   `cmd:""                    help:"Evaluate expressions over a source file interactively."`
	Init   cmd.Init   `cmd:""                    help:"Write the current global flags to the configuration file."`
}

// Run parses args and runs the selected command. Parse failures, help, and
// --version call exit.
func Run(ctx context.Context, exit func(code int), args ...string) error {
	var cli CLI

	if err := mkdirAll(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Configure logging from the command line before anything is logged.
	cli.Log.scan(args)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configPath(""),
		cmd.CacheIdentifier:  pkg.CacheDir(),
		"version":            pkg.Name + " " + pkg.Version,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups([]kong.Group{cli.Log.group(), cli.Pprof.group()}),
		kong.BindSingletonProvider(func() context.Context { return ctx }),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			Summary:             true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(kong.JSON, configPath(".json")),
		kong.Configuration(resolve(ctx), configPath("")),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	cli.Log.start(ctx)

	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx)
}
