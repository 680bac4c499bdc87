package states

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/simplescripting/simplescripting/configuration"
	"github.com/simplescripting/simplescripting/framework"
)

type ShowConfigParam struct {
	framework.ParamBase `use:"show config" desc:"list the entries of a script configuration file"`
	File                string   `name:"file" short:"f" suggest:"files" desc:"configuration file, defaults to ~/.<program>"`
	PasswordsKey        string   `name:"passwords-key" desc:"key decrypting the encrypted values"`
	Decrypt             bool     `name:"decrypt" desc:"print values decrypted"`
	Required            []string `name:"required" desc:"keys which must be present"`
	Format              string   `name:"format" values:"default,plain,json,yaml,table,line" desc:"output format"`
}

// ShowConfigCommand loads a configuration file the way scripts do.
func (app *ApplicationState) ShowConfigCommand(ctx context.Context, p *ShowConfigParam) (*framework.PresetResultSet, error) {
	opts := []configuration.Option{configuration.WithRequired(p.Required...)}
	if p.File != "" {
		opts = append(opts, configuration.WithConfigFile(p.File))
	}
	if p.PasswordsKey != "" {
		opts = append(opts, configuration.WithPasswordsKey(p.PasswordsKey))
	}
	config, err := configuration.Load(opts...)
	if err != nil {
		return nil, err
	}

	entries := []ConfigEntry{}
	appendGroup := func(group string, keys []string, get func(string) (configuration.Value, error)) error {
		for _, key := range keys {
			value, err := get(key)
			if err != nil {
				return err
			}
			text := value.String()
			if p.Decrypt {
				if text, err = value.Decrypted(); err != nil {
					return errors.Wrapf(err, "decrypting %s", ConfigEntry{Group: group, Key: key}.path())
				}
			}
			entries = append(entries, ConfigEntry{Group: group, Key: key, Value: text})
		}
		return nil
	}

	if err := appendGroup("", config.Keys(), config.Get); err != nil {
		return nil, err
	}
	for _, name := range config.Groups() {
		group, err := config.Group(name)
		if err != nil {
			return nil, err
		}
		if err := appendGroup(name, group.Keys(), group.Get); err != nil {
			return nil, err
		}
	}

	rs := framework.NewListResult[ConfigResult](entries)
	return framework.NewPresetResultSet(rs, app.outputFormat(p.Format)), nil
}

type ShowSettingsParam struct {
	framework.ParamBase `use:"show settings" desc:"print the settings of this tool"`
}

func (app *ApplicationState) ShowSettingsCommand(ctx context.Context, p *ShowSettingsParam) {
	fmt.Fprintln(app.output(), framework.MarshalYAML(app.config))
}
