package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/doccompile/cmd/doccompile/commands"
	ferrors "git.home.luguber.info/inful/doccompile/internal/foundation/errors"
	"git.home.luguber.info/inful/doccompile/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Must(cli,
		kong.Name("doccompile"),
		kong.Description("Compile a document tree through the import, variable and table-of-contents transforms."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = kctx.Run(&commands.Global{Context: ctx, Stdout: os.Stdout}, cli)
	stop()

	if err != nil {
		ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
