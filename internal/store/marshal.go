package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/roach88/statecraft/internal/econ"
	"github.com/roach88/statecraft/internal/game"
)

// marshalSnapshot converts a snapshot to canonical JSON TEXT for
// storage. Canonical bytes make the stored body hashable and
// byte-comparable across runs.
func marshalSnapshot(snap *econ.Snapshot) (string, error) {
	data, err := econ.MarshalCanonical(snap)
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	return string(data), nil
}

// snapshotBody mirrors the canonical snapshot encoding for reads.
type snapshotBody struct {
	Period     int         `json:"period"`
	Vars       econ.Vector `json:"vars"`
	Params     econ.Vector `json:"params"`
	Iterations int         `json:"iterations"`
	Residual   float64     `json:"residual"`
}

// unmarshalSnapshot parses canonical JSON TEXT back into a snapshot.
func unmarshalSnapshot(data string) (*econ.Snapshot, error) {
	var body snapshotBody
	if err := json.Unmarshal([]byte(data), &body); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &econ.Snapshot{
		Period:     body.Period,
		Vars:       body.Vars,
		Params:     body.Params,
		Iterations: body.Iterations,
		Residual:   body.Residual,
	}, nil
}

// marshalScript converts a replay script to JSON TEXT.
// Struct fields encode in declaration order, so output is
// deterministic; HTML escaping is disabled to keep the bytes
// canonical.
func marshalScript(script game.Script) (string, error) {
	return encodeJSON(script, "marshal script")
}

// unmarshalScript parses JSON TEXT back into a replay script.
func unmarshalScript(data string) (game.Script, error) {
	var script game.Script
	if err := json.Unmarshal([]byte(data), &script); err != nil {
		return game.Script{}, fmt.Errorf("unmarshal script: %w", err)
	}
	return script, nil
}

// marshalNames converts an ordered name list to a JSON array.
// Order is part of the record (play order, firing order), so no
// sorting happens here.
func marshalNames(names []string) (string, error) {
	if names == nil {
		names = []string{}
	}
	return encodeJSON(names, "marshal names")
}

// unmarshalNames parses a JSON array of names.
func unmarshalNames(data string) ([]string, error) {
	if data == "" || data == "[]" {
		return []string{}, nil
	}
	var names []string
	if err := json.Unmarshal([]byte(data), &names); err != nil {
		return nil, fmt.Errorf("unmarshal names: %w", err)
	}
	return names, nil
}

func encodeJSON(v any, op string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	// Encoder adds a trailing newline, remove it
	return strings.TrimSpace(buf.String()), nil
}
