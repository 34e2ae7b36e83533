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

// Package msg implements the TPS name-value message protocol.
//
// A message is rendered on the wire as URL-encoded ASCII:
//
//	s=<byte-length>&msg_type=<int>&<key1>=<val1>&<key2>=<val2>...
//
// The message type key is serialized first, the remaining key value pairs follow in insertion
// order. The leading size token states the byte length of the string following it and is
// advisory only, decoders sanity-check it but never rely on it for framing. Reserved and
// non-printable characters in values are escaped as uppercase %XX sequences (see the buffer
// package codec helpers).
//
// Incoming wire strings are turned into concrete message values with Decode(). A recognized
// but not implemented message type yields a nil message without an error, so that callers can
// distinguish corrupt input from a not yet supported exchange.
package msg

import (
	"fmt"
	"strconv"

	"github.com/dogtagpki/gotps/errors"
)

// Wire format key names.
const (
	keyMsgType           = "msg_type"
	keyOperation         = "operation"
	keyResult            = "result"
	keyMessage           = "message"
	keyExtensions        = "extensions"
	keyInvalidPassword   = "invalid_pw"
	keyBlocked           = "blocked"
	keyTitle             = "title"
	keyDescription       = "description"
	keyRequiredParameter = "required_parameter"
	keyScreenName        = "screen_name"
	keyPassword          = "password"
	keyPduSize           = "pdu_size"
	keyPduData           = "pdu_data"
	keyCurrentState      = "current_state"
	keyNextTaskName      = "next_task_name"
	keyNewPin            = "new_pin"
	keyMinimumLength     = "minimum_length"
	keyMaximumLength     = "maximum_length"
)

// Type is the wire message type. The ordinal values are wire format constants and must not be
// renumbered.
type Type int

const (
	// TypeUndefined marks an unknown message type. Ordinal 1 is unused by the protocol and
	// also maps to undefined.
	TypeUndefined Type = 0
	// TypeBeginOp opens a token operation.
	TypeBeginOp Type = 2
	// TypeLoginRequest asks the client for login credentials.
	TypeLoginRequest Type = 3
	// TypeLoginResponse carries the client login credentials.
	TypeLoginResponse Type = 4
	// TypeSecureIDRequest asks the client for a SecurID value.
	TypeSecureIDRequest Type = 5
	// TypeSecureIDResponse carries the client SecurID value.
	TypeSecureIDResponse Type = 6
	// TypeASQRequest asks the client an authentication security question.
	TypeASQRequest Type = 7
	// TypeASQResponse carries the client security question answer.
	TypeASQResponse Type = 8
	// TypeTokenPDURequest carries a command APDU towards the token.
	TypeTokenPDURequest Type = 9
	// TypeTokenPDUResponse carries a response APDU from the token.
	TypeTokenPDUResponse Type = 10
	// TypeNewPinRequest asks the client for a new PIN.
	TypeNewPinRequest Type = 11
	// TypeNewPinResponse carries the new PIN chosen by the client.
	TypeNewPinResponse Type = 12
	// TypeEndOp closes a token operation.
	TypeEndOp Type = 13
	// TypeStatusUpdateRequest reports operation progress to the client.
	TypeStatusUpdateRequest Type = 14
	// TypeStatusUpdateResponse acknowledges a status update.
	TypeStatusUpdateResponse Type = 15
	// TypeExtendedLoginRequest asks the client for an extended parameter driven login.
	TypeExtendedLoginRequest Type = 16
	// TypeExtendedLoginResponse carries the extended login parameters.
	TypeExtendedLoginResponse Type = 17
)

var typeStrings = map[Type]string{
	TypeUndefined:             "UNDEFINED",
	TypeBeginOp:               "BEGIN_OP",
	TypeLoginRequest:          "LOGIN_REQUEST",
	TypeLoginResponse:         "LOGIN_RESPONSE",
	TypeSecureIDRequest:       "SECUREID_REQUEST",
	TypeSecureIDResponse:      "SECUREID_RESPONSE",
	TypeASQRequest:            "ASQ_REQUEST",
	TypeASQResponse:           "ASQ_RESPONSE",
	TypeTokenPDURequest:       "TOKEN_PDU_REQUEST",
	TypeTokenPDUResponse:      "TOKEN_PDU_RESPONSE",
	TypeNewPinRequest:         "NEW_PIN_REQUEST",
	TypeNewPinResponse:        "NEW_PIN_RESPONSE",
	TypeEndOp:                 "END_OP",
	TypeStatusUpdateRequest:   "STATUS_UPDATE_REQUEST",
	TypeStatusUpdateResponse:  "STATUS_UPDATE_RESPONSE",
	TypeExtendedLoginRequest:  "EXTENDED_LOGIN_REQUEST",
	TypeExtendedLoginResponse: "EXTENDED_LOGIN_RESPONSE",
}

func (t Type) String() string {
	if s, ok := typeStrings[t]; ok {
		return s
	}
	return typeStrings[TypeUndefined]
}

// TypeFromInt maps a decoded integer to the message type enumeration. Values outside the
// table, including the unused ordinal 1, map to TypeUndefined.
func TypeFromInt(i int) Type {
	if _, ok := typeStrings[Type(i)]; ok && i != int(TypeUndefined) {
		return Type(i)
	}
	return TypeUndefined
}

// OpType is the token operation type. The ordinal values are wire format constants and must
// not be renumbered.
type OpType int

const (
	// OpUndefined marks an unknown operation.
	OpUndefined OpType = 0
	// OpEnroll enrolls certificates onto the token.
	OpEnroll OpType = 1
	// OpUnblock unblocks a blocked token PIN.
	OpUnblock OpType = 2
	// OpResetPin resets the token PIN.
	OpResetPin OpType = 3
	// OpRenew renews the certificates on the token.
	OpRenew OpType = 4
	// OpFormat formats the token.
	OpFormat OpType = 5
)

var opTypeStrings = map[OpType]string{
	OpUndefined: "UNDEFINED",
	OpEnroll:    "ENROLL",
	OpUnblock:   "UNBLOCK",
	OpResetPin:  "RESET_PIN",
	OpRenew:     "RENEW",
	OpFormat:    "FORMAT",
}

func (o OpType) String() string {
	if s, ok := opTypeStrings[o]; ok {
		return s
	}
	return opTypeStrings[OpUndefined]
}

// OpTypeFromInt maps a decoded integer to the operation type enumeration. Unknown values map
// to OpUndefined.
func OpTypeFromInt(i int) OpType {
	if _, ok := opTypeStrings[OpType(i)]; ok {
		return OpType(i)
	}
	return OpUndefined
}

// Msg is a concrete TPS protocol message.
type Msg interface {
	// Type returns the wire message type.
	Type() Type
	// Encode renders the message into its wire string form.
	Encode() (string, error)
}

// Decode parses a wire string and constructs the concrete message matching the decoded
// message type. A recognized but not implemented type returns a nil message without an error.
// Malformed input fails with errors.TpsInvalidFormatError.
func Decode(raw string) (Msg, error) {
	f, err := parse(raw)
	if err != nil {
		return nil, err
	}

	mt, ok := f.get(keyMsgType)
	if !ok {
		return nil, errors.New(errors.TpsInvalidFormatError).AppendMessage("Missing message type key.")
	}
	n, convErr := strconv.Atoi(mt)
	if convErr != nil {
		return nil, errors.New(errors.TpsInvalidFormatError).SetExtError(convErr).
			AppendMessage(fmt.Sprintf("Invalid message type value: %q.", mt))
	}

	switch TypeFromInt(n) {
	case TypeBeginOp:
		m, err := newBeginOpFromFields(f)
		if err != nil {
			return nil, err
		}
		return m, nil
	case TypeLoginRequest:
		m, err := newLoginRequestFromFields(f)
		if err != nil {
			return nil, err
		}
		return m, nil
	case TypeLoginResponse:
		m, err := newLoginResponseFromFields(f)
		if err != nil {
			return nil, err
		}
		return m, nil
	case TypeExtendedLoginRequest:
		m, err := newExtendedLoginRequestFromFields(f)
		if err != nil {
			return nil, err
		}
		return m, nil
	case TypeTokenPDURequest:
		m, err := newTokenPDURequestFromFields(f)
		if err != nil {
			return nil, err
		}
		return m, nil
	case TypeTokenPDUResponse:
		m, err := newTokenPDUResponseFromFields(f)
		if err != nil {
			return nil, err
		}
		return m, nil
	case TypeNewPinRequest:
		m, err := newNewPinRequestFromFields(f)
		if err != nil {
			return nil, err
		}
		return m, nil
	case TypeNewPinResponse:
		m, err := newNewPinResponseFromFields(f)
		if err != nil {
			return nil, err
		}
		return m, nil
	case TypeEndOp:
		m, err := newEndOpFromFields(f)
		if err != nil {
			return nil, err
		}
		return m, nil
	case TypeStatusUpdateRequest:
		m, err := newStatusUpdateRequestFromFields(f)
		if err != nil {
			return nil, err
		}
		return m, nil
	case TypeStatusUpdateResponse:
		m, err := newStatusUpdateResponseFromFields(f)
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		// The SecurID, security question and extended login response exchanges are not
		// implemented. The absent result is intentional, it is not an error.
		return nil, nil
	}
}
