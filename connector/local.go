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
	"strings"
	"sync"

	"github.com/dogtagpki/gotps/errors"
	"github.com/dogtagpki/gotps/log"
	"github.com/dogtagpki/gotps/request"
)

// SourceID correlates a destination request with the originating request of another
// authority. The string form <authority>:<request id> exists only on the wire, in process
// the value stays structured.
type SourceID struct {
	Authority string
	Request   request.ID
}

// String implements fmt.(Stringer) interface.
func (s SourceID) String() string {
	return s.Authority + ":" + string(s.Request)
}

// ParseSourceID resolves a serialized correlation value. The request id is everything past
// the last colon, authority names may carry colons themselves.
func ParseSourceID(s string) (SourceID, error) {
	sep := strings.LastIndex(s, ":")
	if sep <= 0 || sep == len(s)-1 {
		return SourceID{}, errors.New(errors.TpsInvalidFormatError).
			AppendMessage("Malformed source correlation value: " + s + ".")
	}
	return SourceID{
		Authority: s[:sep],
		Request:   request.ID(s[sep+1:]),
	}, nil
}

// LocalConnector hands requests to another authority living in the same process. The
// destination queue processes asynchronously and reports back through the completion
// listener, which maps the destination request to the originating one via the stamped
// source correlation value.
type LocalConnector struct {
	mutex     sync.Mutex
	authority string
	source    request.Queue
	dest      request.Queue
	messages  MessageFunc
	logger    log.Logger

	// Source requests awaiting completion, keyed by their own id.
	pending map[request.ID]*request.Request
}

// LocalConnectorSetting is a functional option setter for the optional local connector
// settings.
type LocalConnectorSetting func(*LocalConnector) error

// LocalSetMessages is setter for the user-facing message source.
func LocalSetMessages(messages MessageFunc) LocalConnectorSetting {
	return func(c *LocalConnector) error {
		if messages == nil {
			return errors.New(errors.TpsInvalidArgumentError).AppendMessage("Missing message source.")
		}
		c.messages = messages
		return nil
	}
}

// LocalSetLogger is setter for a connector-scoped logger. Without it the connector writes
// to the package level logging facade.
func LocalSetLogger(logger log.Logger) LocalConnectorSetting {
	return func(c *LocalConnector) error {
		c.logger = logger
		return nil
	}
}

// NewLocalConnector constructs an in-process connector between the source authority's
// queue and a destination queue.
func NewLocalConnector(authority string, source, dest request.Queue, settings ...LocalConnectorSetting) (*LocalConnector, error) {
	if len(authority) == 0 {
		return nil, errors.New(errors.TpsInvalidArgumentError).AppendMessage("Missing authority name.")
	}
	if source == nil || dest == nil {
		return nil, errors.New(errors.TpsInvalidArgumentError).AppendMessage("Missing request queue.")
	}

	tmp := &LocalConnector{
		authority: authority,
		source:    source,
		dest:      dest,
		messages:  DefaultMessages,
		pending:   make(map[request.ID]*request.Request),
	}
	for _, setter := range settings {
		if setter == nil {
			return nil, errors.New(errors.TpsInvalidArgumentError).AppendMessage("Provided setting is nil.")
		}
		if err := setter(tmp); err != nil {
			return nil, errors.TpsErr(err).AppendMessage("Unable to setup local connector.")
		}
	}
	return tmp, nil
}

// Authority returns the source authority name.
func (c *LocalConnector) Authority() string {
	if c == nil {
		return ""
	}
	return c.authority
}

// Send hands a request to the destination queue. The source request moves to the service
// pending state and stays registered until the completion listener fires, so Send always
// reports the hand-off as not complete.
func (c *LocalConnector) Send(req *request.Request) (bool, error) {
	if c == nil || req == nil {
		return false, errors.New(errors.TpsInvalidArgumentError)
	}

	destReq, err := c.dest.NewRequest(req.Type())
	if err != nil {
		return false, errors.TpsErr(err).AppendMessage("Unable to create destination request.")
	}
	for _, key := range req.ExtKeys() {
		val, _ := req.Ext(key)
		destReq.SetExt(key, val)
	}
	destReq.SetExt(ExtSourceID, SourceID{Authority: c.authority, Request: req.ID()}.String())

	req.SetStatus(request.StatusSvcPending)
	c.mutex.Lock()
	c.pending[req.ID()] = req
	c.mutex.Unlock()

	if err = c.dest.ProcessRequest(destReq); err != nil {
		c.mutex.Lock()
		delete(c.pending, req.ID())
		c.mutex.Unlock()
		return false, errors.TpsErr(err).AppendMessage("Unable to process destination request.")
	}
	return false, nil
}

// RequestComplete is the completion listener the destination authority fires when a
// transferred request finishes. Completions stamped with a foreign authority name are
// logged and ignored. The source request is marked serviced only when its state still is
// service pending, a repeated completion finds any other state and leaves the request
// alone.
func (c *LocalConnector) RequestComplete(destReq *request.Request) error {
	if c == nil || destReq == nil {
		return errors.New(errors.TpsInvalidArgumentError)
	}

	raw, ok := destReq.Ext(ExtSourceID)
	if !ok {
		c.warning("Completion without source correlation value, ignoring.")
		return nil
	}
	sid, err := ParseSourceID(raw)
	if err != nil {
		c.warning("Completion with malformed source correlation value, ignoring: ", raw)
		return nil
	}
	if sid.Authority != c.authority {
		c.warning("Completion for foreign authority ", sid.Authority, ", ignoring.")
		return nil
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()
	req, ok := c.pending[sid.Request]
	if !ok {
		c.warning("Completion for unknown source request ", sid.Request, ", ignoring.")
		return nil
	}
	if req.Status() != request.StatusSvcPending {
		c.warning("Completion for source request ", sid.Request, " in state ", req.Status(), ", releasing.")
		delete(c.pending, sid.Request)
		return c.source.ReleaseRequest(req)
	}

	for _, key := range destReq.ExtKeys() {
		if key == ExtSourceID {
			continue
		}
		val, _ := destReq.Ext(key)
		req.SetExt(key, val)
	}
	req.SetExt(ExtRemoteRequestID, string(destReq.ID()))
	if destStatus := destReq.Status(); destStatus == request.StatusRejected || destStatus == request.StatusCanceled {
		req.SetError(c.messages(MsgRemoteAuthorityError))
		for _, policyErr := range destReq.SvcErrors() {
			req.AddSvcError(policyErr)
		}
	}

	delete(c.pending, sid.Request)
	if err = c.source.MarkServiced(req); err != nil {
		return errors.TpsErr(err).AppendMessage("Unable to mark source request serviced.")
	}
	return nil
}

func (c *LocalConnector) warning(args ...interface{}) {
	if c.logger != nil {
		c.logger.Warning(args...)
		return
	}
	log.Warning(args...)
}
