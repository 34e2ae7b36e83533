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

	"github.com/dogtagpki/gotps/apdu"
	"github.com/dogtagpki/gotps/buffer"
	"github.com/dogtagpki/gotps/errors"
)

// TokenPDURequest carries a raw command APDU towards the token. The APDU bytes cross the wire
// as a %XX escaped payload alongside their declared decimal size.
type TokenPDURequest struct {
	pdu *buffer.Buffer
}

// NewTokenPDURequest constructs a token PDU request from a command APDU.
func NewTokenPDURequest(a *apdu.APDU) (*TokenPDURequest, error) {
	raw, err := a.Encode()
	if err != nil {
		return nil, errors.TpsErr(err).AppendMessage("Unable to frame command APDU.")
	}
	return &TokenPDURequest{pdu: raw}, nil
}

// NewTokenPDURequestRaw constructs a token PDU request from pre-framed APDU bytes.
func NewTokenPDURequestRaw(raw *buffer.Buffer) (*TokenPDURequest, error) {
	if raw == nil || raw.Len() == 0 {
		return nil, errors.New(errors.TpsInvalidArgumentError).AppendMessage("Missing PDU bytes.")
	}
	return &TokenPDURequest{pdu: raw.Clone()}, nil
}

func newTokenPDURequestFromFields(f *fields) (*TokenPDURequest, error) {
	pdu, err := pduPayload(f)
	if err != nil {
		return nil, errors.TpsErr(err).AppendMessage("Unable to decode token PDU request.")
	}
	return &TokenPDURequest{pdu: pdu}, nil
}

// Type implements Msg.Type().
func (m *TokenPDURequest) Type() Type {
	return TypeTokenPDURequest
}

// PDU returns the framed command APDU bytes.
func (m *TokenPDURequest) PDU() *buffer.Buffer {
	if m == nil {
		return nil
	}
	return m.pdu
}

// Encode implements Msg.Encode().
func (m *TokenPDURequest) Encode() (string, error) {
	if m == nil {
		return "", errors.New(errors.TpsInvalidArgumentError)
	}
	return encodePdu(TypeTokenPDURequest, m.pdu)
}

// TokenPDUResponse carries a raw response APDU from the token.
type TokenPDUResponse struct {
	pdu *buffer.Buffer
}

// NewTokenPDUResponse constructs a token PDU response from raw response bytes.
func NewTokenPDUResponse(raw *buffer.Buffer) (*TokenPDUResponse, error) {
	if raw == nil || raw.Len() == 0 {
		return nil, errors.New(errors.TpsInvalidArgumentError).AppendMessage("Missing PDU bytes.")
	}
	return &TokenPDUResponse{pdu: raw.Clone()}, nil
}

func newTokenPDUResponseFromFields(f *fields) (*TokenPDUResponse, error) {
	pdu, err := pduPayload(f)
	if err != nil {
		return nil, errors.TpsErr(err).AppendMessage("Unable to decode token PDU response.")
	}
	return &TokenPDUResponse{pdu: pdu}, nil
}

// Type implements Msg.Type().
func (m *TokenPDUResponse) Type() Type {
	return TypeTokenPDUResponse
}

// PDU returns the raw response APDU bytes.
func (m *TokenPDUResponse) PDU() *buffer.Buffer {
	if m == nil {
		return nil
	}
	return m.pdu
}

// Response interprets the carried bytes as a response APDU.
func (m *TokenPDUResponse) Response() (*apdu.Response, error) {
	if m == nil {
		return nil, errors.New(errors.TpsInvalidArgumentError)
	}
	return apdu.NewResponse(m.pdu)
}

// Encode implements Msg.Encode().
func (m *TokenPDUResponse) Encode() (string, error) {
	if m == nil {
		return "", errors.New(errors.TpsInvalidArgumentError)
	}
	return encodePdu(TypeTokenPDUResponse, m.pdu)
}

func encodePdu(t Type, pdu *buffer.Buffer) (string, error) {
	if pdu == nil || pdu.Len() == 0 {
		return "", errors.New(errors.TpsInvalidStateError).AppendMessage("Missing PDU bytes.")
	}

	f := newFields()
	f.set(keyMsgType, strconv.Itoa(int(t)))
	f.set(keyPduSize, strconv.Itoa(pdu.Len()))
	f.set(keyPduData, buffer.EncodeURI(pdu.Bytes()))
	return f.encode()
}

// pduPayload resolves the escaped PDU bytes and verifies them against the declared size. A
// mismatch fails with errors.TpsPduSizeMismatchError.
func pduPayload(f *fields) (*buffer.Buffer, error) {
	size, err := f.intField(keyPduSize)
	if err != nil {
		return nil, err
	}
	raw, ok := f.get(keyPduData)
	if !ok {
		return nil, errors.New(errors.TpsInvalidFormatError).
			AppendMessage("Missing mandatory key: " + keyPduData + ".")
	}
	pdu, err := buffer.DecodeURI(raw)
	if err != nil {
		return nil, err
	}
	if pdu.Len() != size {
		return nil, errors.New(errors.TpsPduSizeMismatchError).
			AppendMessage(fmt.Sprintf("Declared PDU size %d does not match decoded byte count %d.", size, pdu.Len()))
	}
	return pdu, nil
}
