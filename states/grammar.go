package states

import (
	"context"
	"io"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/simplescripting/simplescripting/argv"
	"github.com/simplescripting/simplescripting/configs"
	"github.com/simplescripting/simplescripting/framework"
	"github.com/simplescripting/simplescripting/tabcompletion"
)

// loadedManifest is a manifest with its grammar.
type loadedManifest struct {
	*configs.Manifest
	definition argv.Definition
}

func (app *ApplicationState) loadManifest(explicit string) (*loadedManifest, error) {
	path, err := app.manifestPath(explicit)
	if err != nil {
		return nil, err
	}
	manifest, err := configs.LoadManifest(path)
	if err != nil {
		return nil, err
	}
	def, err := manifest.Definition()
	if err != nil {
		return nil, errors.Wrapf(err, "invalid manifest %s", path)
	}
	if err := def.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid manifest %s", path)
	}
	app.Logger().Debug("manifest loaded", zap.String("path", path), zap.String("name", manifest.Name))
	return &loadedManifest{Manifest: manifest, definition: def}, nil
}

type DecodeParam struct {
	framework.ParamBase `use:"decode [args]" desc:"decode arguments with the grammar of a manifest" interspersed:"false"`
	Manifest            string `name:"manifest" short:"m" suggest:"files" desc:"manifest file, yaml or toml"`
	Format              string `name:"format" values:"default,plain,json,yaml,table,line" desc:"output format"`
	RaiseErrors         bool   `name:"raise-errors" desc:"return decoding errors instead of printing them"`
	NoAutoHelp          bool   `name:"no-auto-help" desc:"bind --help as a value instead of printing help"`
	LongHelp            string `name:"long-help" desc:"long help text printed after the options"`
	args                []string
}

func (p *DecodeParam) ParseArgs(args []string) error {
	p.args = args
	return nil
}

// DecodeCommand decodes the arguments as the script declared by the manifest would.
func (app *ApplicationState) DecodeCommand(ctx context.Context, p *DecodeParam) (*framework.PresetResultSet, error) {
	manifest, err := app.loadManifest(p.Manifest)
	if err != nil {
		return nil, err
	}

	opts := []argv.Option{
		argv.WithArguments(p.args...),
		argv.WithProgram(manifest.Name),
		argv.WithAutoHelp(!p.NoAutoHelp),
		argv.WithRaiseErrors(p.RaiseErrors),
		argv.WithOutput(app.output()),
	}
	if p.LongHelp != "" {
		opts = append(opts, argv.WithLongHelp(p.LongHelp))
	}
	result, err := argv.Parse(manifest.definition, opts...)
	if err != nil || result == nil {
		return nil, err
	}
	return framework.NewPresetResultSet(&DecodeResult{Result: result}, app.outputFormat(p.Format)), nil
}

type CompleteParam struct {
	framework.ParamBase `use:"complete" desc:"list the tab completion candidates of a command line"`
	Manifest            string `name:"manifest" short:"m" suggest:"files" desc:"manifest file, yaml or toml"`
	Line                string `name:"line" desc:"command line, the executable included"`
	Point               int64  `name:"point" default:"-1" desc:"cursor position, defaults to the line end"`
	Format              string `name:"format" values:"default,plain,json,yaml,table,line" desc:"output format"`
}

// CompleteCommand runs tab completion on a line, as the shell hook does with COMP_LINE.
func (app *ApplicationState) CompleteCommand(ctx context.Context, p *CompleteParam) (*framework.PresetResultSet, error) {
	manifest, err := app.loadManifest(p.Manifest)
	if err != nil {
		return nil, err
	}

	point := int(p.Point)
	if point < 0 {
		point = len(p.Line)
	}
	tc := tabcompletion.New(manifest.definition, manifest.Provider(), tabcompletion.WithLogger(app.Logger()))
	candidates, err := tc.Candidates(p.Line, point)
	if err != nil {
		return nil, err
	}
	rs := framework.NewListResult[CandidatesResult](candidates)
	return framework.NewPresetResultSet(rs, app.outputFormat(p.Format)), nil
}

type PlaygroundParam struct {
	framework.ParamBase `use:"playground" desc:"try the grammar of a manifest interactively"`
	Manifest            string `name:"manifest" short:"m" suggest:"files" desc:"manifest file, yaml or toml"`
	Format              string `name:"format" values:"default,plain,json,yaml,table,line" desc:"output format"`
}

// PlaygroundCommand switches to the playground state of a manifest.
func (app *ApplicationState) PlaygroundCommand(ctx context.Context, p *PlaygroundParam) error {
	manifest, err := app.loadManifest(p.Manifest)
	if err != nil {
		return err
	}
	app.SetNext(newPlaygroundState(app, manifest, app.outputFormat(p.Format)))
	return nil
}

// CompleteFromEnv answers a shell completion hook (`complete -C`) for the script declared by
// manifest, reading COMP_LINE and COMP_POINT from the environment.
func CompleteFromEnv(config *configs.Config, manifest string, out io.Writer, logger *zap.Logger) error {
	if config == nil {
		config = &configs.Config{}
	}
	app := &ApplicationState{
		CmdState: framework.NewCmdState("SimpleScripting"),
		config:   config,
		out:      out,
	}
	app.SetLogger(logger)
	loaded, err := app.loadManifest(manifest)
	if err != nil {
		return err
	}
	tc := tabcompletion.New(loaded.definition, loaded.Provider(),
		tabcompletion.WithLogger(logger),
		tabcompletion.WithOutput(app.output()),
	)
	return tc.CompleteFromEnv(configs.NewEnvSource())
}
