package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/broady/enumkit/cmd/enumkit/internal/check"
	"github.com/broady/enumkit/cmd/enumkit/internal/configpaths"
	"github.com/broady/enumkit/cmd/enumkit/internal/gen"
	"github.com/broady/enumkit/cmd/enumkit/internal/inspect"
	"github.com/broady/enumkit/cmd/enumkit/internal/log"
)

type CLI struct {
	Config string      `help:"Configuration file (JSON, YAML or TOML)." type:"path" env:"ENUMKIT_CONFIG"`
	Log    log.Options `embed:"" prefix:"log-"`

	Version VersionCmd  `cmd:"" help:"Print version information."`
	Gen     gen.Cmd     `cmd:"" help:"Generate enum support code."`
	Check   check.Cmd   `cmd:"" help:"Validate enums without writing files."`
	Inspect inspect.Cmd `cmd:"" help:"Print extracted enum metadata."`
}

// newParser builds the command line parser. Flags and environment variables
// override values from the configuration files, which are tried in order.
func newParser(cli *CLI, jsonPaths, yamlPaths, tomlPaths []string, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("enumkit"),
		kong.Description("Generate string conversion and parsing code for Go integer enums."),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	}, options...)
	return kong.New(cli, options...)
}

func main() {
	userCfg := configpaths.FindUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli CLI
	parser, err := newParser(&cli, jsonPaths, yamlPaths, tomlPaths)
	if err != nil {
		panic(err)
	}
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	logger, closeFiles, err := log.SetupLogger(cli.Log)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	kctx.Bind(logger)
	kctx.BindTo(ctx, (*context.Context)(nil))

	err = kctx.Run()
	stop()
	for _, c := range closeFiles {
		_ = c.Close()
	}
	kctx.FatalIfErrorf(err)
}
