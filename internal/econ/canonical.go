package econ

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces a stable JSON encoding for hashing and
// golden-file comparison. This is the ONLY serialization that should
// be used when two runs are compared for determinism.
//
// Differences from standard json.Marshal:
//  1. Object keys are emitted in sorted order
//  2. Strings are NFC normalized before encoding
//  3. Floats use the shortest representation that round-trips
//     (strconv.FormatFloat 'g', -1), so 0.18000000000000002 and 0.18
//     are distinct, as the determinism property requires
//  4. NaN and infinities are rejected (the solver must never emit them
//     into an accepted snapshot)
func MarshalCanonical(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := marshalCanonical(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func marshalCanonical(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case string:
		return marshalCanonicalString(buf, val)
	case int:
		buf.WriteString(strconv.Itoa(val))
		return nil
	case int64:
		buf.WriteString(strconv.FormatInt(val, 10))
		return nil
	case float64:
		return marshalCanonicalFloat(buf, val)
	case bool:
		buf.WriteString(strconv.FormatBool(val))
		return nil
	case Vector:
		return marshalCanonicalVector(buf, val)
	case map[string]any:
		return marshalCanonicalMap(buf, val)
	case []any:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := marshalCanonical(buf, elem); err != nil {
				return fmt.Errorf("array[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
		return nil
	case *Snapshot:
		return marshalCanonical(buf, val.canonicalMap())
	case nil:
		return fmt.Errorf("null is forbidden in canonical JSON")
	default:
		return fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
}

func marshalCanonicalString(buf *bytes.Buffer, s string) error {
	normalized := norm.NFC.String(s)
	// encoding/json escapes deterministically for a given input; HTML
	// escaping is disabled so the encoding is stable across encoders.
	var sb bytes.Buffer
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(sb.Bytes(), "\n"))
	return nil
}

func marshalCanonicalFloat(buf *bytes.Buffer, f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("non-finite float forbidden in canonical JSON: %v", f)
	}
	buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	return nil
}

func marshalCanonicalVector(buf *bytes.Buffer, v Vector) error {
	buf.WriteByte('{')
	for i, name := range v.Names() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := marshalCanonicalString(buf, name); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := marshalCanonicalFloat(buf, v[name]); err != nil {
			return fmt.Errorf("vector[%q]: %w", name, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

func marshalCanonicalMap(buf *bytes.Buffer, m map[string]any) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := marshalCanonicalString(buf, k); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := marshalCanonical(buf, m[k]); err != nil {
			return fmt.Errorf("object[%q]: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

// canonicalMap flattens a snapshot into plain maps for canonical
// marshaling. Solve metadata is included so a converged and an
// initial snapshot never hash equal.
func (s *Snapshot) canonicalMap() map[string]any {
	m := map[string]any{
		"period": s.Period,
		"vars":   s.Vars,
	}
	if len(s.Params) > 0 {
		m["params"] = s.Params
	}
	if s.Iterations > 0 {
		m["iterations"] = s.Iterations
		m["residual"] = s.Residual
	}
	return m
}
