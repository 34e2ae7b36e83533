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

// Package apdu implements the ISO 7816-4 style smart card command and response framing that is
// carried inside TPS token PDU messages.
package apdu

import (
	"fmt"

	"github.com/dogtagpki/gotps/buffer"
	"github.com/dogtagpki/gotps/errors"
)

// APDU is a smart card command frame. All fields are unsigned bytes, no sign extension is
// applied anywhere.
type APDU struct {
	// Cla is the command class byte.
	Cla byte
	// Ins is the instruction byte.
	Ins byte
	// P1 is the first command parameter.
	P1 byte
	// P2 is the second command parameter.
	P2 byte
	// Data is the optional command payload.
	Data *buffer.Buffer
	// Le is the optional expected response length.
	Le *byte
}

// Setting is a functional option setter for optional APDU fields.
type Setting func(*APDU) error

// New constructs a new command APDU. Optional data and expected length fields can be added via
// the settings parameter.
func New(cla, ins, p1, p2 byte, settings ...Setting) (*APDU, error) {
	tmp := &APDU{
		Cla: cla,
		Ins: ins,
		P1:  p1,
		P2:  p2,
	}
	for _, setter := range settings {
		if setter == nil {
			return nil, errors.New(errors.TpsInvalidArgumentError).AppendMessage("Provided setting is nil.")
		}
		if err := setter(tmp); err != nil {
			return nil, errors.TpsErr(err).AppendMessage("Unable to setup APDU.")
		}
	}
	return tmp, nil
}

// WithData is setter for the command payload.
func WithData(raw []byte) Setting {
	return func(a *APDU) error {
		if a == nil {
			return errors.New(errors.TpsInvalidArgumentError).AppendMessage("Missing APDU base object.")
		}
		a.Data = buffer.New(raw)
		return nil
	}
}

// WithLe is setter for the expected response length.
func WithLe(le byte) Setting {
	return func(a *APDU) error {
		if a == nil {
			return errors.New(errors.TpsInvalidArgumentError).AppendMessage("Missing APDU base object.")
		}
		tmp := le
		a.Le = &tmp
		return nil
	}
}

// NewSelect constructs a Select command for the application identified by the provided AID.
func NewSelect(aid []byte) (*APDU, error) {
	if len(aid) == 0 {
		return nil, errors.New(errors.TpsInvalidArgumentError).AppendMessage("Missing application identifier.")
	}
	return New(0x00, 0xa4, 0x04, 0x00, WithData(aid))
}

// NewGetStatus constructs a Get Status command for the card manager.
func NewGetStatus() (*APDU, error) {
	return New(0x00, 0xf2, 0x00, 0x00, WithLe(0x00))
}

// Encode lays out the command in the fixed byte order: class, instruction, P1, P2, optional
// Lc with data, optional Le. The Lc and data bytes are omitted when the command carries no
// payload, the Le byte is omitted when no expected length has been set.
func (a *APDU) Encode() (*buffer.Buffer, error) {
	if a == nil {
		return nil, errors.New(errors.TpsInvalidArgumentError)
	}

	out := &buffer.Buffer{}
	out.AppendByte(a.Cla)
	out.AppendByte(a.Ins)
	out.AppendByte(a.P1)
	out.AppendByte(a.P2)
	if a.Data != nil && a.Data.Len() > 0 {
		if a.Data.Len() > 0xff {
			return nil, errors.New(errors.TpsBufferOverflow).
				AppendMessage(fmt.Sprintf("APDU data length does not fit into Lc: %d.", a.Data.Len()))
		}
		out.AppendByte(byte(a.Data.Len()))
		out.Append(a.Data.Bytes())
	}
	if a.Le != nil {
		out.AppendByte(*a.Le)
	}
	return out, nil
}
