package states

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/manifoldco/promptui"

	"github.com/simplescripting/simplescripting/configuration"
	"github.com/simplescripting/simplescripting/framework"
)

// readKey asks for the encryption key when none was passed.
var readKey = promptKey

func promptKey() (string, error) {
	p := promptui.Prompt{
		Label: "Encryption key",
		Mask:  '*',
		Validate: func(input string) error {
			if input == "" {
				return configuration.ErrMissingEncryptionKey
			}
			return nil
		},
	}
	return p.Run()
}

func singleValue(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("exactly one value expected")
	}
	return args[0], nil
}

func secretValue(value, key string) (configuration.Value, error) {
	if key == "" {
		var err error
		if key, err = readKey(); err != nil {
			return configuration.Value{}, err
		}
	}
	return configuration.NewValue(value, key), nil
}

type EncryptParam struct {
	framework.ParamBase `use:"encrypt [value]" desc:"encrypt a configuration value"`
	Key                 string `name:"key" short:"k" desc:"encryption key, prompted when empty"`
	Format              string `name:"format" values:"default,json,yaml" desc:"output format"`
	value               string
}

func (p *EncryptParam) ParseArgs(args []string) (err error) {
	p.value, err = singleValue(args)
	return err
}

// EncryptCommand prints the value in the form stored in configuration files.
func (app *ApplicationState) EncryptCommand(ctx context.Context, p *EncryptParam) (*framework.PresetResultSet, error) {
	value, err := secretValue(p.value, p.Key)
	if err != nil {
		return nil, err
	}
	encrypted, err := value.Encrypted()
	if err != nil {
		return nil, err
	}
	return framework.NewPresetResultSet(&ValueResult{Value: encrypted}, app.outputFormat(p.Format)), nil
}

type DecryptParam struct {
	framework.ParamBase `use:"decrypt [value]" desc:"decrypt a configuration value"`
	Key                 string `name:"key" short:"k" desc:"encryption key, prompted when empty"`
	Format              string `name:"format" values:"default,json,yaml" desc:"output format"`
	value               string
}

func (p *DecryptParam) ParseArgs(args []string) (err error) {
	p.value, err = singleValue(args)
	return err
}

func (app *ApplicationState) DecryptCommand(ctx context.Context, p *DecryptParam) (*framework.PresetResultSet, error) {
	value, err := secretValue(p.value, p.Key)
	if err != nil {
		return nil, err
	}
	decrypted, err := value.Decrypted()
	if err != nil {
		return nil, err
	}
	return framework.NewPresetResultSet(&ValueResult{Value: decrypted}, app.outputFormat(p.Format)), nil
}
