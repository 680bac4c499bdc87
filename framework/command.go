package framework

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	contextType   = reflect.TypeOf((*context.Context)(nil)).Elem()
	cmdParamType  = reflect.TypeOf((*CmdParam)(nil)).Elem()
	errorType     = reflect.TypeOf((*error)(nil)).Elem()
	resultSetType = reflect.TypeOf((*ResultSet)(nil)).Elem()
)

type commandItem struct {
	kws []string
	cmd *cobra.Command
}

// parseFunctionCommands collects the methods of state named `XxxCommand`, with signature
// `func(context.Context, *Param) [ResultSet] [error]`.
func parseFunctionCommands(state State) []commandItem {
	v := reflect.ValueOf(state)
	tp := v.Type()

	var commands []commandItem
	for i := 0; i < v.NumMethod(); i++ {
		mt := tp.Method(i)

		if !strings.HasSuffix(mt.Name, "Command") {
			continue
		}

		cmd, uses, ok := parseMethod(state, mt)
		if !ok {
			continue
		}

		commands = append(commands, commandItem{
			kws: uses[:len(uses)-1],
			cmd: cmd,
		})
	}

	return commands
}

func parseMethod(state State, mt reflect.Method) (*cobra.Command, []string, bool) {
	v := reflect.ValueOf(state)
	t := mt.Type
	var use string
	var short string
	var paramType reflect.Type

	// receiver plus context
	if t.NumIn() < 2 || !t.In(1).Implements(contextType) {
		return nil, nil, false
	}
	if t.NumIn() > 2 {
		in := t.In(2)
		if in.Kind() != reflect.Pointer || !in.Implements(cmdParamType) {
			return nil, nil, false
		}
		paramType = in
	}
	if t.NumIn() > 3 {
		return nil, nil, false
	}

	newParam := func() CmdParam {
		if paramType == nil {
			return &ParamBase{}
		}
		return reflect.New(paramType.Elem()).Interface().(CmdParam)
	}

	cp := newParam()
	use, short = cp.Desc()
	fUse, fDesc := GetCmdFromFlag(cp)
	if len(use) == 0 {
		use = fUse
	}
	if len(short) == 0 {
		short = fDesc
	}
	if len(use) == 0 {
		fnName := mt.Name
		use = strings.ToLower(fnName[:len(fnName)-len("Command")])
	}
	uses := ParseUseSegments(use)
	lastKw := uses[len(uses)-1]

	cmd := &cobra.Command{
		Use:           lastKw,
		Short:         short,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	// `interspersed:"false"` hands every token after the first argument to ParseArgs
	if paramBaseTag(cp).Get("interspersed") == "false" {
		cmd.Flags().SetInterspersed(false)
	}
	if err := setupFlags(cp, cmd.Flags()); err != nil {
		fmt.Printf("[WARN] skip command %s: %s\n", mt.Name, err.Error())
		return nil, nil, false
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cp := newParam()
		if err := cp.ParseArgs(args); err != nil {
			return err
		}
		if err := parseFlags(cp, cmd.Flags()); err != nil {
			return err
		}
		ctx, cancel := state.Ctx()
		defer cancel()

		in := []reflect.Value{reflect.ValueOf(ctx)}
		if paramType != nil {
			in = append(in, reflect.ValueOf(cp))
		}
		results := v.MethodByName(mt.Name).Call(in)
		return handleResults(cmd, results)
	}
	return cmd, uses, true
}

// handleResults checks the error result first, then prints the result set.
func handleResults(cmd *cobra.Command, results []reflect.Value) error {
	for i := len(results) - 1; i >= 0; i-- {
		result := results[i]
		switch {
		case result.Type().Implements(errorType):
			if result.IsNil() {
				continue
			}
			return result.Interface().(error)
		case result.Type().Implements(resultSetType):
			if result.IsNil() {
				continue
			}
			rs := result.Interface().(ResultSet)
			if preset, ok := rs.(*PresetResultSet); ok {
				fmt.Fprintln(cmd.OutOrStdout(), preset.String())
				continue
			}
			fmt.Fprintln(cmd.OutOrStdout(), rs.PrintAs(FormatDefault))
		}
	}
	return nil
}

// GetCmdFromFlag reads the `use` and `desc` tags of the embedded ParamBase.
func GetCmdFromFlag(p CmdParam) (string, string) {
	tag := paramBaseTag(p)
	return tag.Get("use"), tag.Get("desc")
}

func paramBaseTag(p CmdParam) reflect.StructTag {
	v := reflect.ValueOf(p)
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return ""
	}

	f, has := v.Type().FieldByName("ParamBase")
	if !has || f.Type.Kind() != reflect.Struct {
		return ""
	}
	return f.Tag
}

// ParseUseSegments splits a use line into command keywords, keeping bracketed argument
// hints attached to the keyword before them.
func ParseUseSegments(use string) []string {
	parts := strings.Fields(use)
	last := ""
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.HasPrefix(part, "[") && strings.HasSuffix(part, "]") {
			last = fmt.Sprintf("%s %s", last, part)
			continue
		}
		if len(last) > 0 {
			result = append(result, last)
		}
		last = part
	}
	if len(last) > 0 {
		result = append(result, last)
	}
	return result
}

// paramFields returns the exported, non struct fields of the param.
func paramFields(p CmdParam) (reflect.Value, []reflect.StructField, error) {
	v := reflect.ValueOf(p)
	if v.Kind() != reflect.Pointer {
		return v, nil, errors.New("param is not pointer")
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return v, nil, nil
	}

	tp := v.Type()
	fields := make([]reflect.StructField, 0, tp.NumField())
	for i := 0; i < tp.NumField(); i++ {
		f := tp.Field(i)
		if !f.IsExported() || f.Type.Kind() == reflect.Struct {
			continue
		}
		fields = append(fields, f)
	}
	return v, fields, nil
}

// setupFlags performs command flag setup with CmdParam provided information.
// Besides `name`, `default` and `desc`, a field may carry `short` (shorthand), `values`
// (comma separated completion values) and `suggest` (a registered ValueSuggester).
func setupFlags(p CmdParam, flags *pflag.FlagSet) error {
	_, fields, err := paramFields(p)
	if err != nil {
		return err
	}

	for _, f := range fields {
		name := f.Tag.Get("name")
		shorthand := f.Tag.Get("short")
		defaultStr := f.Tag.Get("default")
		desc := f.Tag.Get("desc")
		switch f.Type.Kind() {
		case reflect.Int64:
			var dv int64
			if v, err := strconv.ParseInt(defaultStr, 10, 64); err == nil {
				dv = v
			}
			flags.Int64P(name, shorthand, dv, desc)
		case reflect.String:
			flags.StringP(name, shorthand, defaultStr, desc)
		case reflect.Bool:
			var dv bool
			if v, err := strconv.ParseBool(defaultStr); err == nil {
				dv = v
			}
			flags.BoolP(name, shorthand, dv, desc)
		case reflect.Slice:
			switch f.Type.Elem().Kind() {
			case reflect.Int64:
				flags.Int64SliceP(name, shorthand, []int64{}, desc)
			case reflect.String:
				flags.StringSliceP(name, shorthand, []string{}, desc)
			default:
				return errors.Newf("field %s with slice kind %s not supported yet", f.Name, f.Type.Elem().Kind())
			}
		default:
			return errors.Newf("field %s with kind %s not supported yet", f.Name, f.Type.Kind())
		}

		if values := f.Tag.Get("values"); values != "" {
			_ = flags.SetAnnotation(name, annotationValues, strings.Split(values, ","))
		}
		if suggester := f.Tag.Get("suggest"); suggester != "" {
			_ = flags.SetAnnotation(name, annotationSuggester, []string{suggester})
		}
	}
	return nil
}

// parseFlags parse parameters from flagset and setup value via reflection.
func parseFlags(p CmdParam, flags *pflag.FlagSet) error {
	v, fields, err := paramFields(p)
	if err != nil {
		return err
	}

	for _, f := range fields {
		name := f.Tag.Get("name")
		field := v.FieldByIndex(f.Index)
		switch f.Type.Kind() {
		case reflect.Int64:
			p, err := flags.GetInt64(name)
			if err != nil {
				return err
			}
			field.SetInt(p)
		case reflect.String:
			p, err := flags.GetString(name)
			if err != nil {
				return err
			}
			field.SetString(p)
		case reflect.Bool:
			p, err := flags.GetBool(name)
			if err != nil {
				return err
			}
			field.SetBool(p)
		case reflect.Slice:
			var p any
			var err error
			switch f.Type.Elem().Kind() {
			case reflect.Int64:
				p, err = flags.GetInt64Slice(name)
			case reflect.String:
				p, err = flags.GetStringSlice(name)
			}
			if err != nil {
				return err
			}
			field.Set(reflect.ValueOf(p))
		}
	}

	return nil
}
