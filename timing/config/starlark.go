package config

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// applyStarlark executes a Starlark config file and copies the globals it
// defines into c. Unknown globals are rejected so typos do not pass silently.
//
//	frequency_hz = 4
//	slot3_probability = 0.5
//	max_ticks = 3 * 100
func (c *Config) applyStarlark(path string, src []byte) error {
	thread := &starlark.Thread{Name: "config"}

	globals, err := starlark.ExecFileOptions(&syntax.FileOptions{}, thread, path, src, nil)
	if err != nil {
		return err
	}

	for name, value := range globals {
		var err error
		switch name {
		case "frequency_hz":
			c.FrequencyHz, err = starFloat(name, value)
		case "slot2_probability":
			c.Slot2Probability, err = starFloat(name, value)
		case "slot3_probability":
			c.Slot3Probability, err = starFloat(name, value)
		case "seed":
			c.Seed, err = starUint(name, value)
		case "max_ticks":
			c.MaxTicks, err = starUint(name, value)
		case "realtime":
			c.Realtime, err = starBool(name, value)
		case "color":
			c.Color, err = starBool(name, value)
		case "summary":
			c.Summary, err = starBool(name, value)
		default:
			err = fmt.Errorf("unknown setting %q", name)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func starFloat(name string, v starlark.Value) (float64, error) {
	f, ok := starlark.AsFloat(v)
	if !ok {
		return 0, fmt.Errorf("%s: want number, got %s", name, v.Type())
	}
	return f, nil
}

func starUint(name string, v starlark.Value) (uint64, error) {
	i, ok := v.(starlark.Int)
	if !ok {
		return 0, fmt.Errorf("%s: want int, got %s", name, v.Type())
	}
	u, ok := i.Uint64()
	if !ok {
		return 0, fmt.Errorf("%s: %s out of range", name, i)
	}
	return u, nil
}

func starBool(name string, v starlark.Value) (bool, error) {
	b, ok := v.(starlark.Bool)
	if !ok {
		return false, fmt.Errorf("%s: want bool, got %s", name, v.Type())
	}
	return bool(b), nil
}
