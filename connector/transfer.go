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

package connector

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dogtagpki/gotps/buffer"
	"github.com/dogtagpki/gotps/errors"
	"github.com/dogtagpki/gotps/log"
	"github.com/dogtagpki/gotps/request"
)

// Wire keys of the inter-authority transfer message.
const (
	keyRequestID   = "req_id"
	keyRequestType = "req_type"
	keyStatus      = "status"
	keyError       = "error"
)

// Reply is the decoded response of a remote authority to a transferred request.
type Reply struct {
	// RequestID is the identifier the remote authority assigned to the request.
	RequestID request.ID
	// Status is the request lifecycle state on the remote side.
	Status request.Status
	// Values holds the transferable extension fields returned by the remote side.
	Values map[string]string
	// PolicyErrors holds the enumerated policy rejection reasons, if any.
	PolicyErrors []string
}

// RequestEncoder translates between request records and the inter-authority wire message.
type RequestEncoder interface {
	// EncodeRequest serializes an outbound request.
	EncodeRequest(req *request.Request) ([]byte, error)
	// DecodeReply interprets the remote authority response.
	DecodeReply(raw []byte) (*Reply, error)
}

// wireEncoder speaks the size-prefixed key=value grammar shared with the token protocol.
type wireEncoder struct{}

// NewWireEncoder returns the default inter-authority message encoder.
func NewWireEncoder() RequestEncoder {
	return &wireEncoder{}
}

// EncodeRequest implements RequestEncoder.EncodeRequest().
func (e *wireEncoder) EncodeRequest(req *request.Request) ([]byte, error) {
	if e == nil || req == nil {
		return nil, errors.New(errors.TpsInvalidArgumentError)
	}

	var b strings.Builder
	b.WriteString(keyRequestType + "=" + strconv.Itoa(int(req.Type())))
	b.WriteString("&" + keyRequestID + "=" + buffer.EncodeURI([]byte(req.ID())))
	for _, key := range req.ExtKeys() {
		val, _ := req.Ext(key)
		b.WriteString("&" + buffer.EncodeURI([]byte(key)) + "=" + buffer.EncodeURI([]byte(val)))
	}
	body := b.String()
	return []byte(fmt.Sprintf("s=%d&%s", len(body), body)), nil
}

// DecodeReply implements RequestEncoder.DecodeReply().
func (e *wireEncoder) DecodeReply(raw []byte) (*Reply, error) {
	if e == nil || len(raw) == 0 {
		return nil, errors.New(errors.TpsInvalidArgumentError)
	}

	body := string(raw)
	// The leading size token is advisory.
	if strings.HasPrefix(body, "s=") {
		sep := strings.Index(body, "&")
		if sep < 0 {
			return nil, errors.New(errors.TpsInvalidFormatError).AppendMessage("Reply carries no payload.")
		}
		if declared, err := strconv.Atoi(body[2:sep]); err != nil || declared != len(body)-sep-1 {
			log.Warning("Reply size token mismatch: ", body[2:sep])
		}
		body = body[sep+1:]
	}

	tmp := &Reply{Values: make(map[string]string)}
	seenID, seenStatus := false, false
	for _, segment := range strings.Split(body, "&") {
		sep := strings.Index(segment, "=")
		if sep < 0 {
			return nil, errors.New(errors.TpsInvalidFormatError).
				AppendMessage("Malformed reply segment: " + segment + ".")
		}
		key, err := buffer.DecodeURI(segment[:sep])
		if err != nil {
			return nil, errors.TpsErr(err).AppendMessage("Unable to decode reply key.")
		}
		val, err := buffer.DecodeURI(segment[sep+1:])
		if err != nil {
			return nil, errors.TpsErr(err).AppendMessage("Unable to decode reply value.")
		}

		switch k, v := string(key.Bytes()), string(val.Bytes()); {
		case k == keyRequestID:
			tmp.RequestID = request.ID(v)
			seenID = true
		case k == keyStatus:
			status, ok := request.StatusFromString(v)
			if !ok {
				return nil, errors.New(errors.TpsInvalidFormatError).
					AppendMessage("Unknown reply status: " + v + ".")
			}
			tmp.Status = status
			seenStatus = true
		case strings.HasPrefix(k, keyError):
			tmp.PolicyErrors = append(tmp.PolicyErrors, v)
		default:
			tmp.Values[k] = v
		}
	}
	if !seenID || !seenStatus {
		return nil, errors.New(errors.TpsMalformedResponseError).
			AppendMessage("Reply is missing the request id or status.")
	}
	return tmp, nil
}
