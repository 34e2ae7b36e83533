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

// Package errors implements functions to manipulate TPS errors.
package errors

import (
	"fmt"
	"runtime"
	"strings"
)

// TpsError is the error type returned by every fallible operation of the API.
type TpsError struct {
	errorCode    ErrorCode
	message      []string
	extError     error
	extErrorCode int
	errorStack   string
}

// New construct a new TpsError.
func New(code ErrorCode) *TpsError {
	return &TpsError{
		errorCode:  code,
		errorStack: stack(),
	}
}

// TpsErr wraps the provided error into TpsError, if the input is not TpsError. By default the error code is set to
// TpsExternalError. In case the 'err' parameter is of type TpsError, the original error is returned without any
// modification.
//
// Optionally an error code can be provided, which will be applied in case of external error. Note, despite the fact
// that 'code' parameter is a variadic value, only one error code should be provided.
func TpsErr(err error, code ...ErrorCode) *TpsError {
	if err == nil {
		return nil
	}

	errCode := TpsExternalError
	if len(code) != 0 {
		errCode = code[0]
	}

	tpsErr, ok := err.(*TpsError)
	if !ok {
		tpsErr = New(errCode).SetExtError(err)
	}
	return tpsErr
}

func stack() string {
	buf := make([]byte, 1024)
	n := 0
	for {
		n = runtime.Stack(buf, false)
		if n < len(buf) {
			break
		}
		buf = make([]byte, 2*len(buf))
	}

	return string(buf[:n])
}

// Error implements error interface.
func (e *TpsError) Error() string {
	if e == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%04x/%d] %s.\n", uint16(e.errorCode), e.extErrorCode, e.errorCode.String()))

	if len(e.message) > 0 {
		b.WriteString("Error message:")
		for i := len(e.message); i > 0; i-- {
			b.WriteString(fmt.Sprintf("\n  %d: %s", i, e.message[i-1]))
		}
		b.WriteString("\n")
	}

	if e.extError != nil {
		b.WriteString(fmt.Sprintf("Extended error: %s\n", e.extError))
	}

	if len(e.errorStack) != 0 {
		b.WriteString(e.errorStack)
	}

	b.WriteString("\n")
	return b.String()
}

// AppendMessage allows to add an additional descriptive message to the error.
// Returns an updated reference of the receiver TpsError.
func (e *TpsError) AppendMessage(msg string) *TpsError {
	if e == nil {
		return nil
	}
	e.message = append(e.message, msg)
	return e
}

// SetExtError allows to set an additional low-level error.
// Returns an updated reference of the receiver TpsError.
func (e *TpsError) SetExtError(err error) *TpsError {
	if e == nil {
		return nil
	}
	e.extError = err
	return e
}

// SetExtErrorCode allows to set an additional low-level error code.
// Returns an updated reference of the receiver TpsError.
func (e *TpsError) SetExtErrorCode(c int) *TpsError {
	if e == nil {
		return nil
	}
	e.extErrorCode = c
	return e
}

// Code returns the error code.
func (e *TpsError) Code() ErrorCode {
	if e == nil {
		return TpsNoError
	}
	return e.errorCode
}

// Stack returns the stack trace where the error occurred.
func (e *TpsError) Stack() string {
	if e == nil {
		return ""
	}
	return e.errorStack
}

// ExtCode returns extended error code.
func (e *TpsError) ExtCode() int {
	if e == nil {
		return 0
	}
	return e.extErrorCode
}

// ExtError returns extended error.
func (e *TpsError) ExtError() error {
	if e == nil {
		return nil
	}
	return e.extError
}

// Message returns additional appended messages.
func (e *TpsError) Message() []string {
	if e == nil {
		return nil
	}
	return e.message
}
