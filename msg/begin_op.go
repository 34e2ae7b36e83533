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

// BeginOp opens a token operation. The nested extensions mapping carries session and client
// metadata such as the token type, client version, ATR and feature flags.
type BeginOp struct {
	op   OpType
	exts *Extensions
}

// NewBeginOp constructs a new begin-op message. A nil extensions parameter is treated as an
// empty mapping.
func NewBeginOp(op OpType, exts *Extensions) (*BeginOp, error) {
	if exts == nil {
		exts = NewExtensions()
	}
	return &BeginOp{
		op:   op,
		exts: exts,
	}, nil
}

func newBeginOpFromFields(f *fields) (*BeginOp, error) {
	op, err := f.intField(keyOperation)
	if err != nil {
		return nil, errors.TpsErr(err).AppendMessage("Unable to decode begin-op message.")
	}

	exts := NewExtensions()
	if raw, ok := f.get(keyExtensions); ok {
		nested, err := buffer.DecodeURI(raw)
		if err != nil {
			return nil, errors.TpsErr(err).AppendMessage("Unable to decode begin-op extension block.")
		}
		if exts, err = parseExtensions(string(nested.Bytes())); err != nil {
			return nil, errors.TpsErr(err).AppendMessage("Unable to decode begin-op extension block.")
		}
	}

	return &BeginOp{
		op:   OpTypeFromInt(op),
		exts: exts,
	}, nil
}

// Type implements Msg.Type().
func (m *BeginOp) Type() Type {
	return TypeBeginOp
}

// Op returns the token operation type.
func (m *BeginOp) Op() OpType {
	if m == nil {
		return OpUndefined
	}
	return m.op
}

// Extensions returns the nested session metadata mapping.
func (m *BeginOp) Extensions() *Extensions {
	if m == nil {
		return nil
	}
	return m.exts
}

// Encode implements Msg.Encode().
func (m *BeginOp) Encode() (string, error) {
	if m == nil {
		return "", errors.New(errors.TpsInvalidArgumentError)
	}

	f := newFields()
	f.set(keyMsgType, strconv.Itoa(int(TypeBeginOp)))
	f.set(keyOperation, strconv.Itoa(int(m.op)))
	if m.exts.Len() > 0 {
		f.set(keyExtensions, buffer.EncodeURI([]byte(m.exts.encode())))
	}
	return f.encode()
}
