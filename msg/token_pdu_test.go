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
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dogtagpki/gotps/apdu"
	"github.com/dogtagpki/gotps/buffer"
	"github.com/dogtagpki/gotps/errors"
	"github.com/dogtagpki/gotps/test"
)

func TestUnitTokenPdu(t *testing.T) {
	test.Suite{
		{Func: testTokenPduResponseVector},
		{Func: testTokenPduRequestRoundTrip},
		{Func: testTokenPduSizeMismatch},
		{Func: testTokenPduMissingData},
		{Func: testTokenPduEmptyPayload},
		{Func: testTokenPduNilReceiver},
	}.Runner(t)
}

// A captured select applet exchange. The escaped payload must resolve into the original
// six response bytes ending in the success status word.
func testTokenPduResponseVector(t *testing.T, _ ...interface{}) {
	decoded, err := Decode("s=46&msg_type=10&pdu_size=6&pdu_data=R%B3F%85%90%00")
	if err != nil {
		t.Fatal("Failed to decode token PDU response: ", err)
	}
	m, ok := decoded.(*TokenPDUResponse)
	if !ok {
		t.Fatal("Decoded message type mismatch.")
	}

	expected := []byte{0x52, 0xb3, 0x46, 0x85, 0x90, 0x00}
	if diff := cmp.Diff(expected, m.PDU().Bytes()); diff != "" {
		t.Error("PDU byte mismatch (-want +got):\n", diff)
	}
	resp, err := m.Response()
	if err != nil {
		t.Fatal("Failed to interpret response APDU: ", err)
	}
	if !resp.IsSuccess() {
		t.Error("Response status word mismatch: ", resp.SW())
	}
	if diff := cmp.Diff([]byte{0x52, 0xb3, 0x46, 0x85}, resp.Data()); diff != "" {
		t.Error("Response data mismatch (-want +got):\n", diff)
	}

	raw, err := m.Encode()
	if err != nil {
		t.Fatal("Failed to re-encode token PDU response: ", err)
	}
	if raw != "s=46&msg_type=10&pdu_size=6&pdu_data=R%B3F%85%90%00" {
		t.Error("Re-encoding mismatch: ", raw)
	}
}

func testTokenPduRequestRoundTrip(t *testing.T, _ ...interface{}) {
	aid := []byte{0xa0, 0x00, 0x00, 0x00, 0x03, 0x00, 0x00}
	a, err := apdu.NewSelect(aid)
	if err != nil {
		t.Fatal("Failed to create select APDU: ", err)
	}
	m, err := NewTokenPDURequest(a)
	if err != nil {
		t.Fatal("Failed to create token PDU request: ", err)
	}
	raw, err := m.Encode()
	if err != nil {
		t.Fatal("Failed to encode token PDU request: ", err)
	}

	decoded, err := Decode(raw)
	if err != nil {
		t.Fatal("Failed to decode token PDU request: ", err)
	}
	back, ok := decoded.(*TokenPDURequest)
	if !ok {
		t.Fatal("Decoded message type mismatch.")
	}

	framed, err := a.Encode()
	if err != nil {
		t.Fatal("Failed to frame select APDU: ", err)
	}
	if diff := cmp.Diff(framed.Bytes(), back.PDU().Bytes()); diff != "" {
		t.Error("PDU byte mismatch (-want +got):\n", diff)
	}
}

func testTokenPduSizeMismatch(t *testing.T, _ ...interface{}) {
	_, err := Decode("s=46&msg_type=10&pdu_size=5&pdu_data=R%B3F%85%90%00")
	if err == nil {
		t.Fatal("Declared size mismatch must not decode.")
	}
	if errors.TpsErr(err).Code() != errors.TpsPduSizeMismatchError {
		t.Error("Unexpected error code: ", errors.TpsErr(err).Code())
	}
}

func testTokenPduMissingData(t *testing.T, _ ...interface{}) {
	if _, err := Decode("s=21&msg_type=9&pdu_size=6"); err == nil {
		t.Error("Token PDU without payload must not decode.")
	}
	if _, err := Decode("s=22&msg_type=9&pdu_data=%90%00"); err == nil {
		t.Error("Token PDU without declared size must not decode.")
	}
}

func testTokenPduEmptyPayload(t *testing.T, _ ...interface{}) {
	if _, err := NewTokenPDURequestRaw(nil); err == nil {
		t.Error("Nil PDU bytes must be rejected.")
	}
	if _, err := NewTokenPDURequestRaw(&buffer.Buffer{}); err == nil {
		t.Error("Empty PDU bytes must be rejected.")
	}
	if _, err := NewTokenPDUResponse(nil); err == nil {
		t.Error("Nil response bytes must be rejected.")
	}
}

func testTokenPduNilReceiver(t *testing.T, _ ...interface{}) {
	var req *TokenPDURequest
	if req.PDU() != nil {
		t.Error("Nil receiver getter must return nil.")
	}
	if _, err := req.Encode(); err == nil {
		t.Error("Nil receiver encode must fail.")
	}

	var resp *TokenPDUResponse
	if _, err := resp.Response(); err == nil {
		t.Error("Nil receiver response must fail.")
	}
}
