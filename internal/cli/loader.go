package cli

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/statecraft/internal/defs"
	"github.com/roach88/statecraft/internal/game"
)

// loadDefinitions loads a definition set: the bundled defaults when
// dir is empty, otherwise the CUE files in dir.
func loadDefinitions(dir string) (*defs.Definitions, error) {
	if dir == "" {
		return defs.Default()
	}
	return defs.LoadDir(dir)
}

// loadScript reads a replay script from a YAML file. Unknown fields
// are rejected so typos fail loudly instead of silently playing a
// different game.
func loadScript(path string) (game.Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return game.Script{}, fmt.Errorf("failed to read script file: %w", err)
	}

	var script game.Script
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&script); err != nil {
		return game.Script{}, fmt.Errorf("failed to parse script YAML: %w", err)
	}

	if script.Character == "" {
		return game.Script{}, fmt.Errorf("invalid script: character is required")
	}
	if len(script.Turns) == 0 {
		return game.Script{}, fmt.Errorf("invalid script: turns list is required and must be non-empty")
	}
	return script, nil
}
