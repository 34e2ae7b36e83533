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

// ErrorCode represent the error code value.
type ErrorCode uint16

const (
	// TpsNoError represent a successful result.
	TpsNoError = ErrorCode(0)

	/*
		Syntax errors
	*/

	// TpsInvalidArgumentError is in case of invalid function input argument (eg. nil pointer).
	TpsInvalidArgumentError = ErrorCode(0x100)
	// TpsInvalidFormatError the provided value is invalid (eg. a malformed key=value segment, or a
	// broken %XX escape).
	TpsInvalidFormatError = ErrorCode(0x101)
	// TpsBufferOverflow is set in case of buffer or value overflow (eg. APDU data longer than one
	// unsigned length byte can describe).
	TpsBufferOverflow = ErrorCode(0x104)
	// TpsInvalidStateError is set in case the objects used are in an invalid state (eg. missing
	// mandatory member value, or encoding a message with an undefined type).
	TpsInvalidStateError = ErrorCode(0x10a)
	// TpsMalformedResponseError is set in case an APDU response buffer is too short to carry a
	// status word.
	TpsMalformedResponseError = ErrorCode(0x110)
	// TpsPduSizeMismatchError is set in case the declared token PDU size does not match the decoded
	// byte count.
	TpsPduSizeMismatchError = ErrorCode(0x111)

	/*
		System errors
	*/

	// TpsNetworkError is set in case a network error occurred.
	TpsNetworkError = ErrorCode(0x200)
	// TpsHttpError is set in case an HTTP error has been received.
	TpsHttpError = ErrorCode(0x201)
	// TpsPoolExhaustedError is set in case a connection can not be served from the connection pool.
	TpsPoolExhaustedError = ErrorCode(0x203)
	// TpsExternalError is set in case an external error from a 3rd party API (eg. std library) is
	// returned and wrapped automatically inside TpsError.
	TpsExternalError = ErrorCode(0x214)

	/*
		Service errors
	*/

	// TpsServiceRemoteError is set in case the remote authority rejected or canceled the request.
	TpsServiceRemoteError = ErrorCode(0x400)

	// TpsNotImplemented indicates an invalid API state.
	TpsNotImplemented = ErrorCode(0xffff)
)

var errStrings = map[ErrorCode]string{
	TpsNoError: "No Error",

	TpsInvalidArgumentError:   "Invalid Argument",
	TpsInvalidFormatError:     "Invalid Format",
	TpsBufferOverflow:         "Buffer overflow",
	TpsInvalidStateError:      "Invalid State",
	TpsMalformedResponseError: "Malformed APDU response",
	TpsPduSizeMismatchError:   "Token PDU size mismatch",

	TpsNetworkError:       "Network Error",
	TpsHttpError:          "HTTP error",
	TpsPoolExhaustedError: "No connection available",
	TpsExternalError:      "Common external error from 3rd party API",

	TpsServiceRemoteError: "Remote authority error",

	TpsNotImplemented: "Not Implemented",
}

func (c ErrorCode) String() string {
	return errStrings[c]
}
