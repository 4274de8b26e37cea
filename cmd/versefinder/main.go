// Command versefinder resolves scripture references and fetches their
// chapters from the configured providers.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

const version = "0.4.0"

// CLI defines the command-line interface for versefinder.
type CLI struct {
	Globals

	Normalize    NormalizeCmd    `cmd:"" help:"Normalize a reference into its chapter address"`
	Tokens       TokensCmd       `cmd:"" help:"Print the location tokens of a reference's chapter"`
	Verses       VersesCmd       `cmd:"" help:"Fetch every verse of a reference's chapter"`
	Chapter      ChapterCmd      `cmd:"" help:"Fetch a chapter positioned on the requested verse"`
	Suggest      SuggestCmd      `cmd:"" help:"Suggest references for partial input or a phrase"`
	Search       SearchGroup     `cmd:"" help:"Local phrase index operations"`
	Translations TranslationsCmd `cmd:"" help:"List available translations"`
	Version      VersionCmd      `cmd:"" help:"Print version information"`
}

// Globals are flags shared by every command.
type Globals struct {
	Config    string `help:"Config file path" type:"path" default:"versefinder.yaml"`
	EnvFile   string `name:"env-file" help:"Environment file path" type:"path" default:".env"`
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" help:"Log format (json, text)"`
}

// SearchGroup contains phrase index operations.
type SearchGroup struct {
	Index SearchIndexCmd `cmd:"" help:"Index a TSV file of verses"`
	Query SearchQueryCmd `cmd:"" help:"Find references containing a phrase"`
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("versefinder"),
		kong.Description("Scripture reference normalizer and verse fetcher"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		return err
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cli.Globals, stdout, stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	return kctx.Run(a)
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "versefinder: %v\n", err)
		os.Exit(1)
	}
}
