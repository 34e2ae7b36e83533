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

// StatusUpdateRequest reports operation progress to the client: the numeric progress value
// and the name of the task being started next.
type StatusUpdateRequest struct {
	status   int
	nextTask string
}

// NewStatusUpdateRequest constructs a new status update request message.
func NewStatusUpdateRequest(status int, nextTask string) (*StatusUpdateRequest, error) {
	if status < 0 {
		return nil, errors.New(errors.TpsInvalidArgumentError).
			AppendMessage("Status value can not be negative.")
	}
	return &StatusUpdateRequest{
		status:   status,
		nextTask: nextTask,
	}, nil
}

func newStatusUpdateRequestFromFields(f *fields) (*StatusUpdateRequest, error) {
	status, err := f.intField(keyCurrentState)
	if err != nil {
		return nil, errors.TpsErr(err).AppendMessage("Unable to decode status update request.")
	}
	nextTask, err := escapedField(f, keyNextTaskName)
	if err != nil {
		return nil, errors.TpsErr(err).AppendMessage("Unable to decode status update request.")
	}

	return &StatusUpdateRequest{
		status:   status,
		nextTask: nextTask,
	}, nil
}

// Type implements Msg.Type().
func (m *StatusUpdateRequest) Type() Type {
	return TypeStatusUpdateRequest
}

// Status returns the numeric progress value.
func (m *StatusUpdateRequest) Status() int {
	if m == nil {
		return 0
	}
	return m.status
}

// NextTaskName returns the free-text name of the task being started next.
func (m *StatusUpdateRequest) NextTaskName() string {
	if m == nil {
		return ""
	}
	return m.nextTask
}

// Encode implements Msg.Encode().
func (m *StatusUpdateRequest) Encode() (string, error) {
	if m == nil {
		return "", errors.New(errors.TpsInvalidArgumentError)
	}

	f := newFields()
	f.set(keyMsgType, strconv.Itoa(int(TypeStatusUpdateRequest)))
	f.set(keyCurrentState, strconv.Itoa(m.status))
	f.set(keyNextTaskName, buffer.EncodeURI([]byte(m.nextTask)))
	return f.encode()
}

// StatusUpdateResponse acknowledges a status update request.
type StatusUpdateResponse struct {
	status int
}

// NewStatusUpdateResponse constructs a new status update response message.
func NewStatusUpdateResponse(status int) (*StatusUpdateResponse, error) {
	if status < 0 {
		return nil, errors.New(errors.TpsInvalidArgumentError).
			AppendMessage("Status value can not be negative.")
	}
	return &StatusUpdateResponse{status: status}, nil
}

func newStatusUpdateResponseFromFields(f *fields) (*StatusUpdateResponse, error) {
	status, err := f.intField(keyCurrentState)
	if err != nil {
		return nil, errors.TpsErr(err).AppendMessage("Unable to decode status update response.")
	}
	return &StatusUpdateResponse{status: status}, nil
}

// Type implements Msg.Type().
func (m *StatusUpdateResponse) Type() Type {
	return TypeStatusUpdateResponse
}

// Status returns the acknowledged progress value.
func (m *StatusUpdateResponse) Status() int {
	if m == nil {
		return 0
	}
	return m.status
}

// Encode implements Msg.Encode().
func (m *StatusUpdateResponse) Encode() (string, error) {
	if m == nil {
		return "", errors.New(errors.TpsInvalidArgumentError)
	}

	f := newFields()
	f.set(keyMsgType, strconv.Itoa(int(TypeStatusUpdateResponse)))
	f.set(keyCurrentState, strconv.Itoa(m.status))
	return f.encode()
}
