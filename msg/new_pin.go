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
	"strconv"

	"github.com/dogtagpki/gotps/buffer"
	"github.com/dogtagpki/gotps/errors"
)

// NewPinRequest asks the client for a new PIN within the given length bounds.
type NewPinRequest struct {
	minLen int
	maxLen int
}

// NewNewPinRequest constructs a new PIN request message.
func NewNewPinRequest(minLen, maxLen int) (*NewPinRequest, error) {
	if minLen < 0 || maxLen < minLen {
		return nil, errors.New(errors.TpsInvalidArgumentError).
			AppendMessage("Invalid PIN length bounds.")
	}
	return &NewPinRequest{
		minLen: minLen,
		maxLen: maxLen,
	}, nil
}

func newNewPinRequestFromFields(f *fields) (*NewPinRequest, error) {
	minLen, err := f.intField(keyMinimumLength)
	if err != nil {
		return nil, errors.TpsErr(err).AppendMessage("Unable to decode new PIN request.")
	}
	maxLen, err := f.intField(keyMaximumLength)
	if err != nil {
		return nil, errors.TpsErr(err).AppendMessage("Unable to decode new PIN request.")
	}

	return &NewPinRequest{
		minLen: minLen,
		maxLen: maxLen,
	}, nil
}

// Type implements Msg.Type().
func (m *NewPinRequest) Type() Type {
	return TypeNewPinRequest
}

// MinLength returns the minimum accepted PIN length.
func (m *NewPinRequest) MinLength() int {
	if m == nil {
		return 0
	}
	return m.minLen
}

// MaxLength returns the maximum accepted PIN length.
func (m *NewPinRequest) MaxLength() int {
	if m == nil {
		return 0
	}
	return m.maxLen
}

// Encode implements Msg.Encode().
func (m *NewPinRequest) Encode() (string, error) {
	if m == nil {
		return "", errors.New(errors.TpsInvalidArgumentError)
	}

	f := newFields()
	f.set(keyMsgType, strconv.Itoa(int(TypeNewPinRequest)))
	f.set(keyMinimumLength, strconv.Itoa(m.minLen))
	f.set(keyMaximumLength, strconv.Itoa(m.maxLen))
	return f.encode()
}

// NewPinResponse carries the new PIN chosen by the client.
type NewPinResponse struct {
	pin string
}

// NewNewPinResponse constructs a new PIN response message.
func NewNewPinResponse(pin string) (*NewPinResponse, error) {
	if len(pin) == 0 {
		return nil, errors.New(errors.TpsInvalidArgumentError).AppendMessage("Missing PIN value.")
	}
	return &NewPinResponse{pin: pin}, nil
}

func newNewPinResponseFromFields(f *fields) (*NewPinResponse, error) {
	pin, err := escapedField(f, keyNewPin)
	if err != nil {
		return nil, errors.TpsErr(err).AppendMessage("Unable to decode new PIN response.")
	}
	return &NewPinResponse{pin: pin}, nil
}

// Type implements Msg.Type().
func (m *NewPinResponse) Type() Type {
	return TypeNewPinResponse
}

// Pin returns the PIN chosen by the client.
func (m *NewPinResponse) Pin() string {
	if m == nil {
		return ""
	}
	return m.pin
}

// Encode implements Msg.Encode().
func (m *NewPinResponse) Encode() (string, error) {
	if m == nil {
		return "", errors.New(errors.TpsInvalidArgumentError)
	}

	f := newFields()
	f.set(keyMsgType, strconv.Itoa(int(TypeNewPinResponse)))
	f.set(keyNewPin, buffer.EncodeURI([]byte(m.pin)))
	return f.encode()
}
