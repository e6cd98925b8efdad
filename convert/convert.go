// Copyright 2024 The Docparse Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package convert folds a parsed value tree down to Regular, a small
// dialect-agnostic value type (Null/Bool/Int/Float/String/List/Map) with no
// position, comment, or gap information. The fold is lossy by design: spec
// §4.7 treats the expanded tree as the source of truth and Regular as a
// read-only projection of it.
package convert

import (
	"encoding/json"
	"math"

	"github.com/go-docparse/docparse/ast"
)

// Kind distinguishes the variants of Regular.
type Kind int

const (
	Null Kind = iota
	Bool
	Int
	Float
	String
	List
	Map
)

// Regular is the dialect-agnostic fold of a parsed value: an ordered map by
// default (spec §4.7 — keys keep the order they were written in, callers
// that want alphabetical order sort Entries themselves).
type Regular struct {
	Kind Kind

	BoolVal   bool
	IntVal    int64
	FloatVal  float64
	StringVal string

	List    []Regular
	Entries []Entry
}

// Entry is one key/value pair of a Regular Map, in source order.
type Entry struct {
	Key   string
	Value Regular
}

// Get returns the value for key and whether it was present.
func (r Regular) Get(key string) (Regular, bool) {
	for _, e := range r.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Regular{}, false
}

// FromExpanded folds an ExpandedValue into a Regular, discarding comments,
// gaps, and spans.
func FromExpanded[T any](v ast.ExpandedValue[T]) Regular {
	switch v.Kind {
	case ast.ExpandedCompact:
		return fromCompact(v.Compact)
	case ast.ExpandedList:
		out := make([]Regular, len(v.Items))
		for i, item := range v.Items {
			out[i] = FromExpanded(item.Value)
		}
		return Regular{Kind: List, List: out}
	case ast.ExpandedMap:
		entries := make([]Entry, len(v.Entries))
		for i, e := range v.Entries {
			entries[i] = Entry{Key: e.Key, Value: FromExpanded(e.Value)}
		}
		return Regular{Kind: Map, Entries: entries}
	case ast.ExpandedMultilineString:
		return Regular{Kind: String, StringVal: v.MultilineText}
	default:
		return Regular{Kind: Null}
	}
}

func fromCompact[T any](v ast.CompactValue[T]) Regular {
	switch v.Kind {
	case ast.Null:
		return Regular{Kind: Null}
	case ast.Bool:
		return Regular{Kind: Bool, BoolVal: v.Bool}
	case ast.Integer:
		return Regular{Kind: Int, IntVal: v.Int}
	case ast.Float:
		return Regular{Kind: Float, FloatVal: v.Float64}
	case ast.String:
		return Regular{Kind: String, StringVal: v.Str}
	case ast.List:
		out := make([]Regular, len(v.Items))
		for i, item := range v.Items {
			out[i] = fromCompact(item)
		}
		return Regular{Kind: List, List: out}
	case ast.Map:
		entries := make([]Entry, len(v.Entries))
		for i, e := range v.Entries {
			entries[i] = Entry{Key: e.Key, Value: fromCompact(e.Value)}
		}
		return Regular{Kind: Map, Entries: entries}
	default:
		return Regular{Kind: Null}
	}
}

// ToJSON renders r as a json.RawMessage. Non-finite floats (NaN, +/-Inf),
// which JSON cannot represent, are encoded as their Go string form
// ("NaN", "+Inf", "-Inf"); this is the target dialect's decision to make,
// mirrored here from how cue-lang-cue's JSON encoder handles CUE's
// non-finite numbers (spec §4.7, Non-goals: "no configurable target
// dialect beyond this one escape hatch").
func ToJSON(r Regular) (json.RawMessage, error) {
	return json.Marshal(toAny(r))
}

func toAny(r Regular) any {
	switch r.Kind {
	case Null:
		return nil
	case Bool:
		return r.BoolVal
	case Int:
		return r.IntVal
	case Float:
		if math.IsNaN(r.FloatVal) {
			return "NaN"
		}
		if math.IsInf(r.FloatVal, 1) {
			return "+Inf"
		}
		if math.IsInf(r.FloatVal, -1) {
			return "-Inf"
		}
		return r.FloatVal
	case String:
		return r.StringVal
	case List:
		out := make([]any, len(r.List))
		for i, v := range r.List {
			out[i] = toAny(v)
		}
		return out
	case Map:
		out := make(map[string]any, len(r.Entries))
		keys := make([]string, 0, len(r.Entries))
		for _, e := range r.Entries {
			out[e.Key] = toAny(e.Value)
			keys = append(keys, e.Key)
		}
		return orderedMap{keys: keys, values: out}
	default:
		return nil
	}
}

// orderedMap implements json.Marshaler to preserve Regular's source-order
// keys through encoding/json, which otherwise always sorts map[string]any
// keys alphabetically.
type orderedMap struct {
	keys   []string
	values map[string]any
}

func (m orderedMap) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, k := range m.keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf = append(buf, kb...)
		buf = append(buf, ':')
		buf = append(buf, vb...)
	}
	buf = append(buf, '}')
	return buf, nil
}
