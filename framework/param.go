package framework

// CmdParam is the parameter of a function command. Exported fields tagged with `name`
// become flags; ParseArgs receives the remaining positional arguments.
type CmdParam interface {
	ParseArgs(args []string) error
	Desc() (string, string)
}

// ParamBase implements CmdParam for commands without positional arguments. Embedding
// structs set `use` and `desc` tags on it.
type ParamBase struct{}

func (pb ParamBase) ParseArgs(args []string) error {
	return nil
}

func (pb ParamBase) Desc() (string, string) {
	return "", ""
}
