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

	"github.com/dogtagpki/gotps/test"
)

func TestUnitStatusUpdate(t *testing.T) {
	test.Suite{
		{Func: testStatusUpdateRequestRoundTrip},
		{Func: testStatusUpdateResponseRoundTrip},
		{Func: testStatusUpdateNegativeValue},
		{Func: testNewPinRequestRoundTrip},
		{Func: testNewPinResponseRoundTrip},
		{Func: testNewPinInvalidBounds},
	}.Runner(t)
}

func testStatusUpdateRequestRoundTrip(t *testing.T, _ ...interface{}) {
	m, err := NewStatusUpdateRequest(60, "PROGRESS_KEY_GENERATION")
	if err != nil {
		t.Fatal("Failed to create status update request: ", err)
	}
	raw, err := m.Encode()
	if err != nil {
		t.Fatal("Failed to encode status update request: ", err)
	}

	decoded, err := Decode(raw)
	if err != nil {
		t.Fatal("Failed to decode status update request: ", err)
	}
	back, ok := decoded.(*StatusUpdateRequest)
	if !ok {
		t.Fatal("Decoded message type mismatch.")
	}
	if back.Status() != 60 || back.NextTaskName() != "PROGRESS_KEY_GENERATION" {
		t.Error("Status update request field mismatch.")
	}
}

func testStatusUpdateResponseRoundTrip(t *testing.T, _ ...interface{}) {
	m, err := NewStatusUpdateResponse(100)
	if err != nil {
		t.Fatal("Failed to create status update response: ", err)
	}
	raw, err := m.Encode()
	if err != nil {
		t.Fatal("Failed to encode status update response: ", err)
	}
	if raw != "s=29&msg_type=15&current_state=100" {
		t.Error("Encoding mismatch: ", raw)
	}

	decoded, err := Decode(raw)
	if err != nil {
		t.Fatal("Failed to decode status update response: ", err)
	}
	back, ok := decoded.(*StatusUpdateResponse)
	if !ok {
		t.Fatal("Decoded message type mismatch.")
	}
	if back.Status() != 100 {
		t.Error("Status update response field mismatch.")
	}
}

func testStatusUpdateNegativeValue(t *testing.T, _ ...interface{}) {
	if _, err := NewStatusUpdateRequest(-1, "task"); err == nil {
		t.Error("Negative progress value must be rejected.")
	}
	if _, err := NewStatusUpdateResponse(-1); err == nil {
		t.Error("Negative progress value must be rejected.")
	}
}

func testNewPinRequestRoundTrip(t *testing.T, _ ...interface{}) {
	m, err := NewNewPinRequest(4, 10)
	if err != nil {
		t.Fatal("Failed to create new PIN request: ", err)
	}
	raw, err := m.Encode()
	if err != nil {
		t.Fatal("Failed to encode new PIN request: ", err)
	}

	decoded, err := Decode(raw)
	if err != nil {
		t.Fatal("Failed to decode new PIN request: ", err)
	}
	back, ok := decoded.(*NewPinRequest)
	if !ok {
		t.Fatal("Decoded message type mismatch.")
	}
	if back.MinLength() != 4 || back.MaxLength() != 10 {
		t.Error("New PIN request field mismatch.")
	}
}

func testNewPinResponseRoundTrip(t *testing.T, _ ...interface{}) {
	m, err := NewNewPinResponse("12&4=5")
	if err != nil {
		t.Fatal("Failed to create new PIN response: ", err)
	}
	raw, err := m.Encode()
	if err != nil {
		t.Fatal("Failed to encode new PIN response: ", err)
	}

	decoded, err := Decode(raw)
	if err != nil {
		t.Fatal("Failed to decode new PIN response: ", err)
	}
	back, ok := decoded.(*NewPinResponse)
	if !ok {
		t.Fatal("Decoded message type mismatch.")
	}
	if back.Pin() != "12&4=5" {
		t.Error("New PIN response field mismatch: ", back.Pin())
	}
}

func testNewPinInvalidBounds(t *testing.T, _ ...interface{}) {
	if _, err := NewNewPinRequest(-1, 5); err == nil {
		t.Error("Negative minimum length must be rejected.")
	}
	if _, err := NewNewPinRequest(8, 4); err == nil {
		t.Error("Inverted length bounds must be rejected.")
	}
	if _, err := NewNewPinResponse(""); err == nil {
		t.Error("Empty PIN must be rejected.")
	}
}
