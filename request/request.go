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

// Package request implements the certificate authority request abstraction the connectors
// operate on: a mutex guarded record with an identifier, a request type, a lifecycle status
// and open-ended extension data.
package request

import (
	"sync"

	"github.com/dogtagpki/gotps/errors"
)

// ID is the request identifier within its issuing authority.
type ID string

// Type is the certificate authority request type.
type Type int

// Request type constants.
const (
	TypeUndefined Type = iota
	TypeEnrollment
	TypeRenewal
	TypeRevocation
	TypeUnrevocation
	TypeKeyArchival
	TypeKeyRecovery
	TypeGetRevocationInfo
)

var typeStrings = map[Type]string{
	TypeUndefined:         "undefined",
	TypeEnrollment:        "enrollment",
	TypeRenewal:           "renewal",
	TypeRevocation:        "revocation",
	TypeUnrevocation:      "unrevocation",
	TypeKeyArchival:       "netkeyKeygen",
	TypeKeyRecovery:       "netkeyKeyRecovery",
	TypeGetRevocationInfo: "getRevocationInfo",
}

// String implements fmt.(Stringer) interface.
func (t Type) String() string {
	if s, ok := typeStrings[t]; ok {
		return s
	}
	return "undefined"
}

// Retryable reports whether a failed hand-off of this request type may be re-attempted.
// Revocation info lookups are queries, not state transitions, and are never queued for
// resend.
func (t Type) Retryable() bool {
	return t != TypeGetRevocationInfo
}

// Status is the request lifecycle state.
type Status int

// Request status constants.
const (
	StatusBegin Status = iota
	StatusPending
	StatusApproved
	StatusSvcPending
	StatusComplete
	StatusRejected
	StatusCanceled
)

var statusStrings = map[Status]string{
	StatusBegin:      "begin",
	StatusPending:    "pending",
	StatusApproved:   "approved",
	StatusSvcPending: "svc_pending",
	StatusComplete:   "complete",
	StatusRejected:   "rejected",
	StatusCanceled:   "canceled",
}

// String implements fmt.(Stringer) interface.
func (s Status) String() string {
	if str, ok := statusStrings[s]; ok {
		return str
	}
	return "unknown"
}

// StatusFromString resolves a serialized status name. Unknown names resolve to
// StatusBegin and ok is false.
func StatusFromString(s string) (Status, bool) {
	for status, str := range statusStrings {
		if str == s {
			return status, true
		}
	}
	return StatusBegin, false
}

// Terminal reports whether no further remote processing is expected for a request in this
// state.
func (s Status) Terminal() bool {
	return s == StatusComplete || s == StatusRejected || s == StatusCanceled
}

// Request is a single authority request record. All accessors are safe for concurrent use.
type Request struct {
	mutex sync.Mutex

	id     ID
	typ    Type
	status Status

	// Extension values are either plain strings or nested string maps.
	extStr map[string]string
	extMap map[string]map[string]string

	resultError bool
	errorMsg    string
	svcErrors   []string
}

// New constructs a request record in the begin state.
func New(id ID, typ Type) (*Request, error) {
	if len(id) == 0 {
		return nil, errors.New(errors.TpsInvalidArgumentError).AppendMessage("Missing request id.")
	}
	return &Request{
		id:     id,
		typ:    typ,
		status: StatusBegin,
		extStr: make(map[string]string),
		extMap: make(map[string]map[string]string),
	}, nil
}

// ID returns the request identifier.
func (r *Request) ID() ID {
	if r == nil {
		return ""
	}
	return r.id
}

// Type returns the request type.
func (r *Request) Type() Type {
	if r == nil {
		return TypeUndefined
	}
	return r.typ
}

// Status returns the current lifecycle state.
func (r *Request) Status() Status {
	if r == nil {
		return StatusBegin
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.status
}

// SetStatus updates the lifecycle state.
func (r *Request) SetStatus(s Status) {
	if r == nil {
		return
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.status = s
}

// SetExt stores a string extension value.
func (r *Request) SetExt(key, val string) {
	if r == nil || len(key) == 0 {
		return
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.extStr[key] = val
}

// Ext returns a string extension value.
func (r *Request) Ext(key string) (string, bool) {
	if r == nil {
		return "", false
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	val, ok := r.extStr[key]
	return val, ok
}

// SetExtMap stores a nested string map extension value. The map is copied.
func (r *Request) SetExtMap(key string, val map[string]string) {
	if r == nil || len(key) == 0 {
		return
	}
	tmp := make(map[string]string, len(val))
	for k, v := range val {
		tmp[k] = v
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.extMap[key] = tmp
}

// ExtMap returns a copy of a nested string map extension value.
func (r *Request) ExtMap(key string) (map[string]string, bool) {
	if r == nil {
		return nil, false
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	val, ok := r.extMap[key]
	if !ok {
		return nil, false
	}
	tmp := make(map[string]string, len(val))
	for k, v := range val {
		tmp[k] = v
	}
	return tmp, true
}

// ExtKeys returns the string extension keys present on the request.
func (r *Request) ExtKeys() []string {
	if r == nil {
		return nil
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	keys := make([]string, 0, len(r.extStr))
	for k := range r.extStr {
		keys = append(keys, k)
	}
	return keys
}

// SetError marks the request result as failed with a user-facing message.
func (r *Request) SetError(msg string) {
	if r == nil {
		return
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.resultError = true
	r.errorMsg = msg
}

// ResultError reports whether the request result has been marked as failed.
func (r *Request) ResultError() bool {
	if r == nil {
		return false
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.resultError
}

// ErrorMessage returns the user-facing failure message.
func (r *Request) ErrorMessage() string {
	if r == nil {
		return ""
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.errorMsg
}

// AddSvcError records a policy error reported by the servicing authority.
func (r *Request) AddSvcError(msg string) {
	if r == nil || len(msg) == 0 {
		return
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.svcErrors = append(r.svcErrors, msg)
}

// SvcErrors returns a copy of the recorded policy errors.
func (r *Request) SvcErrors() []string {
	if r == nil {
		return nil
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return append([]string(nil), r.svcErrors...)
}
