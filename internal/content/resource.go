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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Keys every resource entry is expected to carry.
var resourceFields = []string{"title", "category", "file"}

// A parsed resource file. Objects decode to Records so the bundle keeps the
// author's key order; numbers and strings are written back normalized.
type Resource struct {
	value interface{}
}

// Parses the contents of a resource file.
// Returns a nil resource and no error for blank files and for values that
// carry nothing (null, false, 0, ""). Malformed JSON is an error.
func ParseResource(text string) (res *Resource, err error) {
	var value interface{}
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	dec := json.NewDecoder(strings.NewReader(text))
	if value, err = decodeOrdered(dec); err != nil {
		return
	}
	if _, err = dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after the JSON value")
		}
		return
	}
	err = nil
	if empty(value) {
		return
	}
	res = &Resource{value: value}
	return
}

// Reads one JSON value from dec. A key seen twice keeps its first position
// and its last value.
func decodeOrdered(dec *json.Decoder) (value interface{}, err error) {
	var tok json.Token
	if tok, err = dec.Token(); err != nil {
		return nil, unexpectedEOF(err)
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		r := NewRecord()
		for dec.More() {
			if tok, err = dec.Token(); err != nil {
				return nil, unexpectedEOF(err)
			}
			key, ok := tok.(string)
			if !ok {
				return nil, fmt.Errorf("object key %v is not a string", tok)
			}
			if value, err = decodeOrdered(dec); err != nil {
				return
			}
			r.Set(key, value)
		}
		value = r
	case '[':
		list := []interface{}{}
		for dec.More() {
			if value, err = decodeOrdered(dec); err != nil {
				return
			}
			list = append(list, value)
		}
		value = list
	default:
		return nil, fmt.Errorf("unexpected %v", delim)
	}
	// Closing delimiter.
	if _, err = dec.Token(); err != nil {
		return nil, unexpectedEOF(err)
	}
	return
}

func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// Returns the expected keys the resource lacks.
func (r *Resource) missingFields() (missing []string) {
	obj, ok := r.value.(*Record)
	if !ok {
		return resourceFields
	}
	for _, key := range resourceFields {
		if _, ok := obj.Get(key); !ok {
			missing = append(missing, key)
		}
	}
	return
}

func empty(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case bool:
		return !val
	case float64:
		return val == 0
	case string:
		return val == ""
	}
	return false
}
