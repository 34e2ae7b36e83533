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

package apdu

import (
	"fmt"

	"github.com/dogtagpki/gotps/buffer"
	"github.com/dogtagpki/gotps/errors"
)

// SWSuccess is the status word reported by the card for a successfully executed command.
const SWSuccess = uint16(0x9000)

// Response is a smart card response frame: the optional response data followed by the two
// status word bytes.
type Response struct {
	raw *buffer.Buffer
}

// NewResponse wraps a raw response buffer. A buffer shorter than the two status word bytes is
// rejected with errors.TpsMalformedResponseError.
func NewResponse(raw *buffer.Buffer) (*Response, error) {
	if raw == nil {
		return nil, errors.New(errors.TpsInvalidArgumentError)
	}
	if raw.Len() < 2 {
		return nil, errors.New(errors.TpsMalformedResponseError).
			AppendMessage(fmt.Sprintf("Response buffer too short to carry a status word: %d.", raw.Len()))
	}
	return &Response{raw: raw.Clone()}, nil
}

// SW returns the status word, the unsigned big-endian interpretation of the last two response
// bytes.
func (r *Response) SW() uint16 {
	if r == nil {
		return 0
	}
	raw := r.raw.Bytes()
	return uint16(raw[len(raw)-2])<<8 | uint16(raw[len(raw)-1])
}

// SW1 returns the first status word byte.
func (r *Response) SW1() byte {
	if r == nil {
		return 0
	}
	return byte(r.SW() >> 8)
}

// SW2 returns the second status word byte.
func (r *Response) SW2() byte {
	if r == nil {
		return 0
	}
	return byte(r.SW())
}

// Data returns the response payload, everything preceding the status word.
func (r *Response) Data() []byte {
	if r == nil {
		return nil
	}
	raw := r.raw.Bytes()
	return raw[:len(raw)-2]
}

// IsSuccess reports whether the status word equals SWSuccess.
func (r *Response) IsSuccess() bool {
	return r.SW() == SWSuccess
}

// Raw returns the complete response frame.
func (r *Response) Raw() *buffer.Buffer {
	if r == nil {
		return nil
	}
	return r.raw
}
