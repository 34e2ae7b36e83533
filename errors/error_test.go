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

package errors

import (
	"errors"
	"strconv"
	"strings"
	"testing"
)

func TestUnitNewError(t *testing.T) {
	e := New(TpsNetworkError)
	if e.errorCode != TpsNetworkError {
		t.Error("Error code mismatch.")
	}
	if !strings.Contains(e.Error(), TpsNetworkError.String()) {
		t.Error("Error() output must contain error string.")
	}
}

func TestUnitErrorStack(t *testing.T) {
	e := New(TpsNotImplemented).AppendMessage("Token").AppendMessage("Processing")
	if e.Stack() == "" {
		t.Error("Error stack must be returned.")
	}
}

func TestUnitErrorSetters(t *testing.T) {
	const (
		errCode        = TpsNotImplemented
		msg            = "This is custom error message"
		extErrMsg      = "this is ext error"
		extErrCode int = 12345
	)
	e := New(errCode).AppendMessage(msg).SetExtError(errors.New(extErrMsg)).SetExtErrorCode(extErrCode)

	eString := e.Error()
	if !strings.Contains(eString, errCode.String()) {
		t.Error("Error() output must contain error string.")
	}
	if !strings.Contains(eString, msg) {
		t.Error("Error() output must contain message string.")
	}
	if !strings.Contains(eString, extErrMsg) {
		t.Error("Error() output must contain ext error string.")
	}
	if !strings.Contains(eString, strconv.Itoa(extErrCode)) {
		t.Error("Error() output must contain ext error code.")
	}
}

func TestUnitErrorAppendMessage(t *testing.T) {
	e := New(TpsNotImplemented).AppendMessage("Token").AppendMessage("Processing")
	eString := e.Error()
	if !(strings.Contains(eString, "1: Token") && strings.Contains(eString, "2: Processing")) {
		t.Error("Error() output error message mismatch.")
	}
}

func TestUnitErrorConvertTpsError(t *testing.T) {
	original := New(TpsInvalidArgumentError).AppendMessage("Dummy")
	processed := TpsErr(original)

	if original != processed {
		t.Error("TpsError pumped through TpsErr function must be exactly the same object.")
	}
	if len(processed.Message()) != 1 {
		t.Fatal("Size of the message list is altered: ", len(processed.Message()))
	}
	if processed.Code() != TpsInvalidArgumentError {
		t.Fatal("Error code is altered: ", int(processed.Code()))
	}
	if processed.ExtError() != nil {
		t.Fatal("It should have no external error appended but got: ", processed.ExtError())
	}
}

func TestUnitErrorConvertExternalError(t *testing.T) {
	myErr := errors.New("dummy")
	tpsErr := TpsErr(myErr)

	if tpsErr.ExtError() == nil {
		t.Fatal("External error must not be nil.")
	}
	if tpsErr.Code() != TpsExternalError {
		t.Fatal("External error must default to TpsExternalError code.")
	}
	if tpsErr.ExtError() != myErr {
		t.Fatal("External error must be carried unmodified.")
	}
}

func TestUnitErrorConvertExternalErrorWithCode(t *testing.T) {
	tpsErr := TpsErr(errors.New("dummy"), TpsNetworkError)
	if tpsErr.Code() != TpsNetworkError {
		t.Fatal("Provided error code must be applied to the wrapped error.")
	}
}

func TestUnitErrorConvertNilError(t *testing.T) {
	if TpsErr(nil) != nil {
		t.Fatal("Wrapping a nil error must return nil.")
	}
}

func TestUnitErrorNilReceiver(t *testing.T) {
	var e *TpsError
	if e.Error() != "" {
		t.Error("Nil receiver Error() must return empty string.")
	}
	if e.AppendMessage("msg") != nil {
		t.Error("Nil receiver AppendMessage() must return nil.")
	}
	if e.SetExtError(errors.New("dummy")) != nil {
		t.Error("Nil receiver SetExtError() must return nil.")
	}
	if e.Code() != TpsNoError {
		t.Error("Nil receiver Code() must return TpsNoError.")
	}
	if e.Stack() != "" || e.ExtCode() != 0 || e.ExtError() != nil || e.Message() != nil {
		t.Error("Nil receiver getters must return zero values.")
	}
}
