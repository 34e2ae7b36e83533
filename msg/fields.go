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
	"fmt"
	"strconv"
	"strings"

	"github.com/dogtagpki/gotps/errors"
	"github.com/dogtagpki/gotps/log"
)

// fields is the ordered key value mapping backing a wire message. Values are held in their
// wire form, already %XX escaped where required. Insertion order is preserved for stable
// encoding, setting an existing key overwrites the value in place.
type fields struct {
	keys []string
	vals map[string]string
}

func newFields() *fields {
	return &fields{
		vals: make(map[string]string),
	}
}

func (f *fields) set(key, value string) {
	if _, ok := f.vals[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.vals[key] = value
}

func (f *fields) get(key string) (string, bool) {
	v, ok := f.vals[key]
	return v, ok
}

// encode renders the mapping into the wire string. The message type key is serialized first,
// the remaining pairs follow in insertion order, and the whole string is prefixed with the
// advisory size token.
func (f *fields) encode() (string, error) {
	mt, ok := f.get(keyMsgType)
	if !ok {
		return "", errors.New(errors.TpsInvalidStateError).AppendMessage("Missing message type key.")
	}

	var b strings.Builder
	b.WriteString(keyMsgType)
	b.WriteString("=")
	b.WriteString(mt)
	for _, k := range f.keys {
		if k == keyMsgType {
			continue
		}
		b.WriteString("&")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(f.vals[k])
	}

	body := b.String()
	return fmt.Sprintf("s=%d&%s", len(body), body), nil
}

// parse splits a wire string into the ordered mapping. The leading size token is stripped and
// verified against the actual byte length, a mismatch is logged and ignored since the token is
// advisory only. A segment without a key value separator fails with
// errors.TpsInvalidFormatError.
func parse(raw string) (*fields, error) {
	body := raw
	if strings.HasPrefix(raw, "s=") {
		i := strings.Index(raw, "&")
		if i < 0 {
			return nil, errors.New(errors.TpsInvalidFormatError).
				AppendMessage("Message holds nothing beyond the size token.")
		}
		declared := raw[2:i]
		body = raw[i+1:]
		if n, err := strconv.Atoi(declared); err != nil || n != len(body) {
			log.Warning(fmt.Sprintf("Message size token mismatch: declared %q, actual %d.", declared, len(body)))
		}
	}
	if len(body) == 0 {
		return nil, errors.New(errors.TpsInvalidFormatError).AppendMessage("Empty message body.")
	}

	f := newFields()
	for _, segment := range strings.Split(body, "&") {
		i := strings.Index(segment, "=")
		if i < 0 {
			return nil, errors.New(errors.TpsInvalidFormatError).
				AppendMessage(fmt.Sprintf("Malformed key value segment: %q.", segment))
		}
		f.set(segment[:i], segment[i+1:])
	}
	return f, nil
}

// intField resolves a mandatory decimal field.
func (f *fields) intField(key string) (int, error) {
	v, ok := f.get(key)
	if !ok {
		return 0, errors.New(errors.TpsInvalidFormatError).
			AppendMessage(fmt.Sprintf("Missing mandatory key: %q.", key))
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(errors.TpsInvalidFormatError).SetExtError(err).
			AppendMessage(fmt.Sprintf("Invalid integer value for key %q: %q.", key, v))
	}
	return n, nil
}
