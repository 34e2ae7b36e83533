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

	"github.com/dogtagpki/gotps/test"
)

func TestUnitBeginOp(t *testing.T) {
	test.Suite{
		{Func: testBeginOpDefault},
		{Func: testBeginOpRoundTrip},
		{Func: testBeginOpHostileExtensionValues},
		{Func: testBeginOpMissingOperation},
		{Func: testBeginOpNilReceiver},
	}.Runner(t)
}

func extMap(e *Extensions) map[string]string {
	out := make(map[string]string)
	for _, k := range e.Keys() {
		v, _ := e.Get(k)
		out[k] = v
	}
	return out
}

func testBeginOpDefault(t *testing.T, _ ...interface{}) {
	m, err := NewBeginOp(OpFormat, nil)
	if err != nil {
		t.Fatal("Failed to create begin-op message: ", err)
	}
	if m.Op() != OpFormat {
		t.Error("Operation type mismatch.")
	}
	if m.Extensions().Len() != 0 {
		t.Error("Extensions must default to an empty mapping.")
	}
	raw, err := m.Encode()
	if err != nil {
		t.Fatal("Failed to encode begin-op message: ", err)
	}
	if raw != "s=22&msg_type=2&operation=5" {
		t.Error("Encoding mismatch: ", raw)
	}
}

func testBeginOpRoundTrip(t *testing.T, _ ...interface{}) {
	exts := NewExtensions()
	exts.Set("tokenType", "userKey")
	exts.Set("clientVersion", "ESC 1.1.0")
	exts.Set("tokenATR", "3B759400009000")
	exts.Set("extendedLoginRequest", "true")

	m, err := NewBeginOp(OpEnroll, exts)
	if err != nil {
		t.Fatal("Failed to create begin-op message: ", err)
	}
	raw, err := m.Encode()
	if err != nil {
		t.Fatal("Failed to encode begin-op message: ", err)
	}

	decoded, err := Decode(raw)
	if err != nil {
		t.Fatal("Failed to decode begin-op message: ", err)
	}
	back, ok := decoded.(*BeginOp)
	if !ok {
		t.Fatal("Decoded message type mismatch.")
	}
	if back.Op() != OpEnroll {
		t.Error("Operation type mismatch.")
	}
	if diff := cmp.Diff(extMap(exts), extMap(back.Extensions())); diff != "" {
		t.Error("Extension mapping mismatch (-want +got):\n", diff)
	}
	if diff := cmp.Diff(exts.Keys(), back.Extensions().Keys()); diff != "" {
		t.Error("Extension key order mismatch (-want +got):\n", diff)
	}
}

// Extension values carrying the wire grammar separators must survive the nested sub-encoding.
func testBeginOpHostileExtensionValues(t *testing.T, _ ...interface{}) {
	exts := NewExtensions()
	exts.Set("statusUpdate", "a=1&b=2")
	exts.Set("desc", "50% done & counting")
	exts.Set("k&v", "x=y")

	m, err := NewBeginOp(OpResetPin, exts)
	if err != nil {
		t.Fatal("Failed to create begin-op message: ", err)
	}
	raw, err := m.Encode()
	if err != nil {
		t.Fatal("Failed to encode begin-op message: ", err)
	}

	decoded, err := Decode(raw)
	if err != nil {
		t.Fatal("Failed to decode begin-op message: ", err)
	}
	back := decoded.(*BeginOp)
	if diff := cmp.Diff(extMap(exts), extMap(back.Extensions())); diff != "" {
		t.Error("Extension mapping mismatch (-want +got):\n", diff)
	}
}

func testBeginOpMissingOperation(t *testing.T, _ ...interface{}) {
	if _, err := Decode("s=10&msg_type=2"); err == nil {
		t.Error("Begin-op without operation type must not decode.")
	}
}

func testBeginOpNilReceiver(t *testing.T, _ ...interface{}) {
	var m *BeginOp
	if m.Op() != OpUndefined || m.Extensions() != nil {
		t.Error("Nil receiver getters must return zero values.")
	}
	if _, err := m.Encode(); err == nil {
		t.Error("Nil receiver encode must fail.")
	}
}
