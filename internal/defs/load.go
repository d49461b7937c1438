package defs

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
)

//go:embed cue/*.cue
var defaultFS embed.FS

// defaultFiles is the concatenation order of the embedded default
// set. The schema comes first so the data files unify against it.
var defaultFiles = []string{
	"cue/schema.cue",
	"cue/rules.cue",
	"cue/baseline.cue",
	"cue/cards.cue",
	"cue/events.cue",
	"cue/characters.cue",
	"cue/dilemmas.cue",
}

// Default loads the embedded default definition set.
func Default() (*Definitions, error) {
	var buf bytes.Buffer
	for _, name := range defaultFiles {
		data, err := defaultFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("defs: embedded file %s: %w", name, err)
		}
		buf.Write(data)
		buf.WriteByte('\n')
	}

	ctx := cuecontext.New()
	value := ctx.CompileBytes(buf.Bytes(), cue.Filename("defs.cue"))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("defs: compiling embedded definitions: %w", err)
	}
	return decode(value)
}

// LoadDir loads a definition set from a directory of CUE files.
// The files must form a single CUE package and carry the same
// top-level structure as the embedded defaults.
func LoadDir(dir string) (*Definitions, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("defs: directory not found: %s", dir)
	}
	if err != nil {
		return nil, fmt.Errorf("defs: accessing %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("defs: not a directory: %s", dir)
	}

	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, fmt.Errorf("defs: no CUE instances in %s", dir)
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, fmt.Errorf("defs: loading CUE files: %w", inst.Err)
	}

	ctx := cuecontext.New()
	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("defs: building CUE value: %w", err)
	}
	return decode(value)
}

// decode turns a compiled CUE value into a validated Definitions.
// All validation problems are joined into one error so a broken set
// reports everything at once.
func decode(value cue.Value) (*Definitions, error) {
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("defs: definitions not concrete: %w", err)
	}

	var d Definitions
	if err := value.Decode(&d); err != nil {
		return nil, fmt.Errorf("defs: decoding definitions: %w", err)
	}

	if errs := d.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("defs: validation failed: %w", errors.Join(errs...))
	}
	return &d, nil
}
