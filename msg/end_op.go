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

	"github.com/dogtagpki/gotps/errors"
)

// End-op result codes.
const (
	// ResultGood reports a successful operation.
	ResultGood = 0
	// ResultError reports a failed operation, the status carries the failure reason.
	ResultError = 1
)

// EndOp closes a token operation, reporting the overall result and the detailed status.
type EndOp struct {
	op     OpType
	result int
	status Status
}

// NewEndOp constructs a new end-op message.
func NewEndOp(op OpType, result int, status Status) (*EndOp, error) {
	if result != ResultGood && result != ResultError {
		return nil, errors.New(errors.TpsInvalidArgumentError).
			AppendMessage("Result must be either good or error.")
	}
	return &EndOp{
		op:     op,
		result: result,
		status: status,
	}, nil
}

func newEndOpFromFields(f *fields) (*EndOp, error) {
	op, err := f.intField(keyOperation)
	if err != nil {
		return nil, errors.TpsErr(err).AppendMessage("Unable to decode end-op message.")
	}
	result, err := f.intField(keyResult)
	if err != nil {
		return nil, errors.TpsErr(err).AppendMessage("Unable to decode end-op message.")
	}
	status, err := f.intField(keyMessage)
	if err != nil {
		return nil, errors.TpsErr(err).AppendMessage("Unable to decode end-op message.")
	}

	return &EndOp{
		op:     OpTypeFromInt(op),
		result: result,
		status: StatusFromCode(status),
	}, nil
}

// Type implements Msg.Type().
func (m *EndOp) Type() Type {
	return TypeEndOp
}

// Op returns the token operation type.
func (m *EndOp) Op() OpType {
	if m == nil {
		return OpUndefined
	}
	return m.op
}

// Result returns the overall result code, either ResultGood or ResultError.
func (m *EndOp) Result() int {
	if m == nil {
		return ResultError
	}
	return m.result
}

// Status returns the detailed operation status.
func (m *EndOp) Status() Status {
	if m == nil {
		return StatusNoError
	}
	return m.status
}

// Encode implements Msg.Encode().
func (m *EndOp) Encode() (string, error) {
	if m == nil {
		return "", errors.New(errors.TpsInvalidArgumentError)
	}

	f := newFields()
	f.set(keyMsgType, strconv.Itoa(int(TypeEndOp)))
	f.set(keyOperation, strconv.Itoa(int(m.op)))
	f.set(keyResult, strconv.Itoa(m.result))
	f.set(keyMessage, strconv.Itoa(int(m.status)))
	return f.encode()
}
