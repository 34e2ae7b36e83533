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

	"github.com/dogtagpki/gotps/buffer"
	"github.com/dogtagpki/gotps/errors"
)

// ExtendedLoginRequest asks the client for a parameter driven login. Beyond the plain login
// request fields it carries an optional dialog title and description and the enumerated list
// of parameters the authentication plugin requires from the user.
type ExtendedLoginRequest struct {
	invalidPW   int
	blocked     bool
	title       string
	description string
	params      []string
}

// ExtendedLoginSetting is a functional option setter for the optional extended login fields.
type ExtendedLoginSetting func(*ExtendedLoginRequest) error

// NewExtendedLoginRequest constructs a new extended login request message with the required
// authentication parameter names.
func NewExtendedLoginRequest(invalidPW int, blocked bool, params []string, settings ...ExtendedLoginSetting) (*ExtendedLoginRequest, error) {
	if invalidPW < 0 {
		return nil, errors.New(errors.TpsInvalidArgumentError).
			AppendMessage("Invalid password count can not be negative.")
	}

	tmp := &ExtendedLoginRequest{
		invalidPW: invalidPW,
		blocked:   blocked,
		params:    append([]string(nil), params...),
	}
	for _, setter := range settings {
		if setter == nil {
			return nil, errors.New(errors.TpsInvalidArgumentError).AppendMessage("Provided setting is nil.")
		}
		if err := setter(tmp); err != nil {
			return nil, errors.TpsErr(err).AppendMessage("Unable to setup extended login request.")
		}
	}
	return tmp, nil
}

// ExtLoginSetTitle is setter for the login dialog title.
func ExtLoginSetTitle(title string) ExtendedLoginSetting {
	return func(m *ExtendedLoginRequest) error {
		if m == nil {
			return errors.New(errors.TpsInvalidArgumentError).AppendMessage("Missing extended login base object.")
		}
		m.title = title
		return nil
	}
}

// ExtLoginSetDescription is setter for the login dialog description.
func ExtLoginSetDescription(description string) ExtendedLoginSetting {
	return func(m *ExtendedLoginRequest) error {
		if m == nil {
			return errors.New(errors.TpsInvalidArgumentError).AppendMessage("Missing extended login base object.")
		}
		m.description = description
		return nil
	}
}

func newExtendedLoginRequestFromFields(f *fields) (*ExtendedLoginRequest, error) {
	invalidPW, err := f.intField(keyInvalidPassword)
	if err != nil {
		return nil, errors.TpsErr(err).AppendMessage("Unable to decode extended login request.")
	}
	blocked, err := f.intField(keyBlocked)
	if err != nil {
		return nil, errors.TpsErr(err).AppendMessage("Unable to decode extended login request.")
	}

	tmp := &ExtendedLoginRequest{
		invalidPW: invalidPW,
		blocked:   blocked != 0,
	}
	if _, ok := f.get(keyTitle); ok {
		if tmp.title, err = escapedField(f, keyTitle); err != nil {
			return nil, errors.TpsErr(err).AppendMessage("Unable to decode extended login request.")
		}
	}
	if _, ok := f.get(keyDescription); ok {
		if tmp.description, err = escapedField(f, keyDescription); err != nil {
			return nil, errors.TpsErr(err).AppendMessage("Unable to decode extended login request.")
		}
	}
	for i := 0; ; i++ {
		key := fmt.Sprintf("%s%d", keyRequiredParameter, i)
		if _, ok := f.get(key); !ok {
			break
		}
		param, err := escapedField(f, key)
		if err != nil {
			return nil, errors.TpsErr(err).AppendMessage("Unable to decode extended login request.")
		}
		tmp.params = append(tmp.params, param)
	}

	return tmp, nil
}

// Type implements Msg.Type().
func (m *ExtendedLoginRequest) Type() Type {
	return TypeExtendedLoginRequest
}

// InvalidPasswordCount returns the count of invalid login attempts made so far.
func (m *ExtendedLoginRequest) InvalidPasswordCount() int {
	if m == nil {
		return 0
	}
	return m.invalidPW
}

// Blocked reports whether further login attempts are blocked.
func (m *ExtendedLoginRequest) Blocked() bool {
	if m == nil {
		return false
	}
	return m.blocked
}

// Title returns the login dialog title.
func (m *ExtendedLoginRequest) Title() string {
	if m == nil {
		return ""
	}
	return m.title
}

// Description returns the login dialog description.
func (m *ExtendedLoginRequest) Description() string {
	if m == nil {
		return ""
	}
	return m.description
}

// RequiredParameters returns the enumerated parameter names the client must collect.
func (m *ExtendedLoginRequest) RequiredParameters() []string {
	if m == nil {
		return nil
	}
	return m.params
}

// Encode implements Msg.Encode().
func (m *ExtendedLoginRequest) Encode() (string, error) {
	if m == nil {
		return "", errors.New(errors.TpsInvalidArgumentError)
	}

	f := newFields()
	f.set(keyMsgType, strconv.Itoa(int(TypeExtendedLoginRequest)))
	f.set(keyInvalidPassword, strconv.Itoa(m.invalidPW))
	f.set(keyBlocked, boolField(m.blocked))
	if len(m.title) > 0 {
		f.set(keyTitle, buffer.EncodeURI([]byte(m.title)))
	}
	if len(m.description) > 0 {
		f.set(keyDescription, buffer.EncodeURI([]byte(m.description)))
	}
	for i, param := range m.params {
		f.set(fmt.Sprintf("%s%d", keyRequiredParameter, i), buffer.EncodeURI([]byte(param)))
	}
	return f.encode()
}
