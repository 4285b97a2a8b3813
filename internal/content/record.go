// Copyright 2024 The rim-website Authors
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

package content

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// A JSON object that keeps its keys in insertion order.
type Record struct {
	keys   []string
	values map[string]interface{}
}

func NewRecord() *Record {
	return &Record{values: map[string]interface{}{}}
}

// Sets key to value. An existing key keeps its position.
func (r *Record) Set(key string, value interface{}) {
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Returns the value stored under key.
func (r *Record) Get(key string) (value interface{}, ok bool) {
	value, ok = r.values[key]
	return
}

// Returns the keys in insertion order.
func (r *Record) Keys() []string {
	return append([]string(nil), r.keys...)
}

func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeJSON(&buf, key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeJSON(&buf, r.values[key]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Writes v as compact JSON without HTML escaping.
func encodeJSON(buf *bytes.Buffer, v interface{}) (err error) {
	var out bytes.Buffer
	enc := json.NewEncoder(&out)
	enc.SetEscapeHTML(false)
	if err = enc.Encode(v); err != nil {
		return
	}
	buf.Write(bytes.TrimSuffix(out.Bytes(), []byte("\n")))
	return
}

// Builds a Record from a decoded front matter document, keeping key order.
// An empty document gives an empty Record.
func recordFromNode(doc *yaml.Node) (r *Record, err error) {
	var (
		n     = doc
		value interface{}
		ok    bool
	)
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return NewRecord(), nil
		}
		n = n.Content[0]
	}
	if n.Kind == 0 {
		return NewRecord(), nil
	}
	if value, err = nodeValue(n); err != nil {
		return
	}
	if r, ok = value.(*Record); !ok {
		err = fmt.Errorf("front matter is not a mapping (line %v)", n.Line)
	}
	return
}

// Converts a YAML node into something encoding/json can write. Scalars use
// YAML 1.2 resolution so yes, no, on and off stay strings. Keys are taken
// as written.
func nodeValue(n *yaml.Node) (value interface{}, err error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeValue(n.Content[0])
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	case yaml.MappingNode:
		r := NewRecord()
		if err = mergeMapping(r, n); err != nil {
			return
		}
		return r, nil
	case yaml.SequenceNode:
		out := make([]interface{}, len(n.Content))
		for i, item := range n.Content {
			if out[i], err = nodeValue(item); err != nil {
				return
			}
		}
		return out, nil
	case yaml.ScalarNode:
		if n.ShortTag() == "!!timestamp" {
			return n.Value, nil
		}
		err = n.Decode(&value)
		return
	}
	return nil, fmt.Errorf("unsupported YAML node at line %v", n.Line)
}

// Copies the pairs of a mapping node into r. Merge keys (<<) add the keys
// of the merged mappings that r does not already hold.
func mergeMapping(r *Record, n *yaml.Node) (err error) {
	var value interface{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, item := n.Content[i], n.Content[i+1]
		if key.Kind == yaml.AliasNode {
			key = key.Alias
		}
		if key.Kind == yaml.ScalarNode && key.ShortTag() == "!!merge" {
			if err = mergeInto(r, item); err != nil {
				return
			}
			continue
		}
		if value, err = nodeValue(item); err != nil {
			return
		}
		r.Set(key.Value, value)
	}
	return
}

func mergeInto(r *Record, n *yaml.Node) (err error) {
	var value interface{}
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	switch n.Kind {
	case yaml.MappingNode:
		if value, err = nodeValue(n); err != nil {
			return
		}
		merged := value.(*Record)
		for _, key := range merged.Keys() {
			if _, exists := r.Get(key); !exists {
				v, _ := merged.Get(key)
				r.Set(key, v)
			}
		}
	case yaml.SequenceNode:
		for _, item := range n.Content {
			if err = mergeInto(r, item); err != nil {
				return
			}
		}
	default:
		err = fmt.Errorf("merge value is not a mapping (line %v)", n.Line)
	}
	return
}
