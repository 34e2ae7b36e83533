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

// Package buffer implements the growable byte sequence underlying APDU and message payloads.
package buffer

import (
	"fmt"
	"strings"

	"github.com/dogtagpki/gotps/errors"
)

// Buffer is an owned, growable sequence of bytes. The reported length always matches the
// number of meaningful bytes, there is no implicit null termination.
//
// The zero value is an empty buffer ready for use.
type Buffer struct {
	data []byte
}

// New returns a new buffer holding a copy of the provided bytes.
func New(raw []byte) *Buffer {
	tmp := &Buffer{}
	tmp.Append(raw)
	return tmp
}

// Append appends a copy of the provided bytes to the receiver buffer.
func (b *Buffer) Append(raw []byte) {
	if b == nil {
		return
	}
	b.data = append(b.data, raw...)
}

// AppendByte appends a single byte to the receiver buffer.
func (b *Buffer) AppendByte(c byte) {
	if b == nil {
		return
	}
	b.data = append(b.data, c)
}

// Len returns the count of meaningful bytes held by the receiver buffer.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

// Bytes returns the buffer content. The returned slice aliases the internal storage and must
// not be modified while the buffer is in use.
func (b *Buffer) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.data
}

// Clone returns a deep copy of the receiver buffer.
func (b *Buffer) Clone() *Buffer {
	if b == nil {
		return nil
	}
	return New(b.data)
}

// Hex renders a hex dump of the buffer content. Every line is prefixed with 'indent' space
// characters and holds at most 'lineLen' bytes, individual bytes are joined with 'separator'.
// In case lineLen is not positive, the whole dump is rendered as a single line.
func (b *Buffer) Hex(indent, lineLen int, separator string) string {
	if b == nil {
		return ""
	}
	if lineLen <= 0 {
		lineLen = len(b.data)
	}

	var out strings.Builder
	for i, c := range b.data {
		if i%lineLen == 0 {
			if i != 0 {
				out.WriteString("\n")
			}
			out.WriteString(strings.Repeat(" ", indent))
		} else {
			out.WriteString(separator)
		}
		out.WriteString(fmt.Sprintf("%02X", c))
	}
	return out.String()
}

const hexDigits = "0123456789ABCDEF"

// EncodeURI renders the provided bytes as URL-encoded ASCII. The reserved characters '&', '='
// and '%', as well as every byte outside the printable ASCII range, are escaped as uppercase
// %XX sequences. The encoding is applied to every value embedding binary or nested data before
// insertion into a wire message.
func EncodeURI(raw []byte) string {
	var out strings.Builder
	for _, c := range raw {
		if c < 0x20 || c > 0x7e || c == '&' || c == '=' || c == '%' {
			out.WriteByte('%')
			out.WriteByte(hexDigits[c>>4])
			out.WriteByte(hexDigits[c&0x0f])
		} else {
			out.WriteByte(c)
		}
	}
	return out.String()
}

// DecodeURI reverses EncodeURI. Both uppercase and lowercase hex digits are accepted.
// A truncated or non-hex escape sequence fails with errors.TpsInvalidFormatError.
func DecodeURI(s string) (*Buffer, error) {
	tmp := &Buffer{data: make([]byte, 0, len(s))}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '%' {
			tmp.data = append(tmp.data, c)
			continue
		}
		if i+2 >= len(s) {
			return nil, errors.New(errors.TpsInvalidFormatError).
				AppendMessage("Truncated %XX escape sequence.")
		}
		hi, ok1 := hexValue(s[i+1])
		lo, ok2 := hexValue(s[i+2])
		if !ok1 || !ok2 {
			return nil, errors.New(errors.TpsInvalidFormatError).
				AppendMessage(fmt.Sprintf("Invalid %%XX escape sequence: %q.", s[i:i+3]))
		}
		tmp.data = append(tmp.data, hi<<4|lo)
		i += 2
	}
	return tmp, nil
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
