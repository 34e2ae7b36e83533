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

// LoginRequest asks the client for login credentials, reporting how many invalid attempts
// have been made so far and whether further attempts are blocked.
type LoginRequest struct {
	invalidPW int
	blocked   bool
}

// NewLoginRequest constructs a new login request message.
func NewLoginRequest(invalidPW int, blocked bool) (*LoginRequest, error) {
	if invalidPW < 0 {
		return nil, errors.New(errors.TpsInvalidArgumentError).
			AppendMessage("Invalid password count can not be negative.")
	}
	return &LoginRequest{
		invalidPW: invalidPW,
		blocked:   blocked,
	}, nil
}

func newLoginRequestFromFields(f *fields) (*LoginRequest, error) {
	invalidPW, err := f.intField(keyInvalidPassword)
	if err != nil {
		return nil, errors.TpsErr(err).AppendMessage("Unable to decode login request.")
	}
	blocked, err := f.intField(keyBlocked)
	if err != nil {
		return nil, errors.TpsErr(err).AppendMessage("Unable to decode login request.")
	}

	return &LoginRequest{
		invalidPW: invalidPW,
		blocked:   blocked != 0,
	}, nil
}

// Type implements Msg.Type().
func (m *LoginRequest) Type() Type {
	return TypeLoginRequest
}

// InvalidPasswordCount returns the count of invalid login attempts made so far.
func (m *LoginRequest) InvalidPasswordCount() int {
	if m == nil {
		return 0
	}
	return m.invalidPW
}

// Blocked reports whether further login attempts are blocked.
func (m *LoginRequest) Blocked() bool {
	if m == nil {
		return false
	}
	return m.blocked
}

// Encode implements Msg.Encode().
func (m *LoginRequest) Encode() (string, error) {
	if m == nil {
		return "", errors.New(errors.TpsInvalidArgumentError)
	}

	f := newFields()
	f.set(keyMsgType, strconv.Itoa(int(TypeLoginRequest)))
	f.set(keyInvalidPassword, strconv.Itoa(m.invalidPW))
	f.set(keyBlocked, boolField(m.blocked))
	return f.encode()
}

// LoginResponse carries the login credentials entered by the client.
type LoginResponse struct {
	uid      string
	password string
}

// NewLoginResponse constructs a new login response message.
func NewLoginResponse(uid, password string) (*LoginResponse, error) {
	return &LoginResponse{
		uid:      uid,
		password: password,
	}, nil
}

func newLoginResponseFromFields(f *fields) (*LoginResponse, error) {
	uid, err := escapedField(f, keyScreenName)
	if err != nil {
		return nil, errors.TpsErr(err).AppendMessage("Unable to decode login response.")
	}
	password, err := escapedField(f, keyPassword)
	if err != nil {
		return nil, errors.TpsErr(err).AppendMessage("Unable to decode login response.")
	}

	return &LoginResponse{
		uid:      uid,
		password: password,
	}, nil
}

// Type implements Msg.Type().
func (m *LoginResponse) Type() Type {
	return TypeLoginResponse
}

// UID returns the login identifier.
func (m *LoginResponse) UID() string {
	if m == nil {
		return ""
	}
	return m.uid
}

// Password returns the login password.
func (m *LoginResponse) Password() string {
	if m == nil {
		return ""
	}
	return m.password
}

// Encode implements Msg.Encode().
func (m *LoginResponse) Encode() (string, error) {
	if m == nil {
		return "", errors.New(errors.TpsInvalidArgumentError)
	}

	f := newFields()
	f.set(keyMsgType, strconv.Itoa(int(TypeLoginResponse)))
	f.set(keyScreenName, buffer.EncodeURI([]byte(m.uid)))
	f.set(keyPassword, buffer.EncodeURI([]byte(m.password)))
	return f.encode()
}

func boolField(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// escapedField resolves a mandatory %XX escaped field.
func escapedField(f *fields, key string) (string, error) {
	raw, ok := f.get(key)
	if !ok {
		return "", errors.New(errors.TpsInvalidFormatError).
			AppendMessage("Missing mandatory key: " + key + ".")
	}
	decoded, err := buffer.DecodeURI(raw)
	if err != nil {
		return "", err
	}
	return string(decoded.Bytes()), nil
}
