/*
 * Copyright 2021 Dogtag PKI Project contributors.
 *
 * This file is part of the Dogtag TPS client SDK.
 *
 * Licensed under the Apache License, Version 2.0 (the "License").
 * You may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *     http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES, CONDITIONS, OR OTHER LICENSES OF ANY KIND, either
 * express or implied. See the License for the specific language governing
 * permissions and limitations under the License.
 */

package msg

import (
	"strings"

	"github.com/dogtagpki/gotps/buffer"
	"github.com/dogtagpki/gotps/errors"
)

// Extensions is the ordered auxiliary key value payload nested inside a message under a
// reserved key. It is sub-encoded with the same key=value&key=value grammar as the outer
// message and carried as a single escaped value.
type Extensions struct {
	keys []string
	vals map[string]string
}

// NewExtensions returns a new empty extensions mapping.
func NewExtensions() *Extensions {
	return &Extensions{
		vals: make(map[string]string),
	}
}

// Set adds or overwrites an extension value. Insertion order is preserved for stable encoding.
func (e *Extensions) Set(key, value string) {
	if e == nil {
		return
	}
	if _, ok := e.vals[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.vals[key] = value
}

// Get resolves an extension value.
func (e *Extensions) Get(key string) (string, bool) {
	if e == nil {
		return "", false
	}
	v, ok := e.vals[key]
	return v, ok
}

// Keys returns the extension keys in insertion order.
func (e *Extensions) Keys() []string {
	if e == nil {
		return nil
	}
	return e.keys
}

// Len returns the count of extension entries.
func (e *Extensions) Len() int {
	if e == nil {
		return 0
	}
	return len(e.keys)
}

// encode renders the mapping into the nested key=value&key=value grammar. Keys and values are
// escaped individually so that the inner separators stay unambiguous.
func (e *Extensions) encode() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	for i, k := range e.keys {
		if i != 0 {
			b.WriteString("&")
		}
		b.WriteString(buffer.EncodeURI([]byte(k)))
		b.WriteString("=")
		b.WriteString(buffer.EncodeURI([]byte(e.vals[k])))
	}
	return b.String()
}

// parseExtensions reverses encode, applying the key=value&key=value grammar recursively to the
// unescaped nested payload.
func parseExtensions(s string) (*Extensions, error) {
	tmp := NewExtensions()
	if len(s) == 0 {
		return tmp, nil
	}
	for _, segment := range strings.Split(s, "&") {
		i := strings.Index(segment, "=")
		if i < 0 {
			return nil, errors.New(errors.TpsInvalidFormatError).
				AppendMessage("Malformed extension segment.")
		}
		key, err := buffer.DecodeURI(segment[:i])
		if err != nil {
			return nil, errors.TpsErr(err).AppendMessage("Unable to decode extension key.")
		}
		value, err := buffer.DecodeURI(segment[i+1:])
		if err != nil {
			return nil, errors.TpsErr(err).AppendMessage("Unable to decode extension value.")
		}
		tmp.Set(string(key.Bytes()), string(value.Bytes()))
	}
	return tmp, nil
}
