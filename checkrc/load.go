package checkrc

import (
	"fmt"
	"io"
	"os"

	lua "github.com/yuin/gopher-lua"
)

// Load evaluates .luacheckrc source and extracts the configuration. The
// file is Lua, so it is run in a fresh state with no libraries opened;
// config files are expected to be plain data (assignments and table
// literals) and anything that reaches for a library will fail to evaluate.
func Load(r io.Reader, name string) (*Config, error) {
	l := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer l.Close()

	fn, err := l.Load(r, name)
	if err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", name, err)
	}
	l.Push(fn)
	if err := l.PCall(0, 0, nil); err != nil {
		return nil, fmt.Errorf("unable to evaluate %s: %w", name, err)
	}

	cfg := &Config{Globals: Globals{}}

	if err := loadStd(l, cfg); err != nil {
		return nil, err
	}
	if err := loadMaxLineLength(l, cfg); err != nil {
		return nil, err
	}
	if err := loadExcludeFiles(l, cfg); err != nil {
		return nil, err
	}
	if err := loadIgnore(l, cfg); err != nil {
		return nil, err
	}
	if err := loadGlobals(l, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFile reads and evaluates the .luacheckrc at the given path.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f, path)
}

func loadStd(l *lua.LState, cfg *Config) error {
	v := l.GetGlobal("std")
	if v == lua.LNil {
		return nil
	}
	s, ok := v.(lua.LString)
	if !ok {
		return fmt.Errorf("std must be a string, got %s", v.Type())
	}
	cfg.Std = string(s)
	return nil
}

func loadMaxLineLength(l *lua.LState, cfg *Config) error {
	v := l.GetGlobal("max_line_length")
	switch v := v.(type) {
	case *lua.LNilType:
		return nil
	case lua.LBool:
		if bool(v) {
			return fmt.Errorf("max_line_length must be false or a positive integer, got true")
		}
		cfg.MaxLineLength = DisabledLineLimit()
		return nil
	case lua.LNumber:
		n := int(v)
		if lua.LNumber(n) != v || n <= 0 {
			return fmt.Errorf("max_line_length must be a positive integer, got %v", v)
		}
		cfg.MaxLineLength = LineLimitOf(n)
		return nil
	default:
		return fmt.Errorf("max_line_length must be false or a positive integer, got %s", v.Type())
	}
}

func loadExcludeFiles(l *lua.LState, cfg *Config) error {
	entries, err := stringSequence(l, "exclude_files")
	if err != nil {
		return err
	}
	for _, entry := range entries {
		e, err := ParseExclusion(entry)
		if err != nil {
			return fmt.Errorf("exclude_files: %w", err)
		}
		cfg.ExcludeFiles = append(cfg.ExcludeFiles, e)
	}
	return nil
}

func loadIgnore(l *lua.LState, cfg *Config) error {
	entries, err := stringSequence(l, "ignore")
	if err != nil {
		return err
	}
	for _, entry := range entries {
		s, err := ParseSuppression(entry)
		if err != nil {
			return fmt.Errorf("ignore: %w", err)
		}
		cfg.Ignore = append(cfg.Ignore, s)
	}
	return nil
}

// loadGlobals handles both entry shapes: bare names in the array part
// ("AbandonQuest") and keyed descriptor entries
// (Frame = { fields = { "inherits" } }). A `true` value is equivalent to a
// bare name. Duplicate names are last-write-wins.
func loadGlobals(l *lua.LState, cfg *Config) error {
	v := l.GetGlobal("globals")
	if v == lua.LNil {
		return nil
	}
	tbl, ok := v.(*lua.LTable)
	if !ok {
		return fmt.Errorf("globals must be a table, got %s", v.Type())
	}

	var loadErr error
	tbl.ForEach(func(k, v lua.LValue) {
		if loadErr != nil {
			return
		}
		switch k := k.(type) {
		case lua.LNumber:
			name, ok := v.(lua.LString)
			if !ok {
				loadErr = fmt.Errorf("globals[%v] must be a string, got %s", k, v.Type())
				return
			}
			if name == "" {
				loadErr = fmt.Errorf("globals[%v] is an empty name", k)
				return
			}
			cfg.Globals[string(name)] = Simple()
		case lua.LString:
			if k == "" {
				loadErr = fmt.Errorf("globals contains an empty name key")
				return
			}
			g, err := loadGlobalValue(string(k), v)
			if err != nil {
				loadErr = err
				return
			}
			cfg.Globals[string(k)] = g
		default:
			loadErr = fmt.Errorf("globals key %v must be a string or index, got %s", k, k.Type())
		}
	})
	return loadErr
}

func loadGlobalValue(name string, v lua.LValue) (Global, error) {
	switch v := v.(type) {
	case lua.LBool:
		if !bool(v) {
			return Global{}, fmt.Errorf("globals[%q] must be true or a descriptor table, got false", name)
		}
		return Simple(), nil
	case *lua.LTable:
		fieldsVal := v.RawGetString("fields")
		fieldsTbl, ok := fieldsVal.(*lua.LTable)
		if !ok {
			return Global{}, fmt.Errorf("globals[%q] descriptor must have a fields table, got %s", name, fieldsVal.Type())
		}
		n := fieldsTbl.Len()
		if n == 0 {
			return Global{}, fmt.Errorf("globals[%q] descriptor has an empty fields list", name)
		}
		fields := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			fv := fieldsTbl.RawGetInt(i)
			f, ok := fv.(lua.LString)
			if !ok {
				return Global{}, fmt.Errorf("globals[%q].fields[%d] must be a string, got %s", name, i, fv.Type())
			}
			if f == "" {
				return Global{}, fmt.Errorf("globals[%q].fields[%d] is empty", name, i)
			}
			fields = append(fields, string(f))
		}
		return Restricted(fields...), nil
	default:
		return Global{}, fmt.Errorf("globals[%q] must be true or a descriptor table, got %s", name, v.Type())
	}
}

func stringSequence(l *lua.LState, name string) ([]string, error) {
	v := l.GetGlobal(name)
	if v == lua.LNil {
		return nil, nil
	}
	tbl, ok := v.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%s must be a table, got %s", name, v.Type())
	}
	n := tbl.Len()
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		ev := tbl.RawGetInt(i)
		s, ok := ev.(lua.LString)
		if !ok {
			return nil, fmt.Errorf("%s[%d] must be a string, got %s", name, i, ev.Type())
		}
		out = append(out, string(s))
	}
	return out, nil
}
