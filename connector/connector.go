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

// Package connector implements the hand-off of authority requests to their servicing
// authority, either over HTTP or to another in-process request queue, with transparent
// re-delivery of requests the remote side has not finished.
package connector

import (
	"context"
	"time"

	"github.com/dogtagpki/gotps/errors"
	"github.com/dogtagpki/gotps/log"
	"github.com/dogtagpki/gotps/net"
	"github.com/dogtagpki/gotps/request"
)

// Extension keys stamped onto transferred requests.
const (
	// ExtRemoteRequestID carries the id the servicing authority assigned to the request.
	ExtRemoteRequestID = "remoteReqID"
	// ExtSourceID carries the serialized source correlation value on a destination request.
	ExtSourceID = "sourceRequestId"
)

const defaultResendInterval = time.Minute

// HttpConnector hands requests to a remote authority over a pooled HTTP transport.
type HttpConnector struct {
	nickname string
	pool     *net.HttpConnFactory
	encoder  RequestEncoder
	resender *Resender
	messages MessageFunc
	logger   log.Logger

	resendInterval time.Duration
}

// HttpConnectorSetting is a functional option setter for the optional connector settings.
type HttpConnectorSetting func(*HttpConnector) error

// ConnSetMessages is setter for the user-facing message source.
func ConnSetMessages(messages MessageFunc) HttpConnectorSetting {
	return func(c *HttpConnector) error {
		if messages == nil {
			return errors.New(errors.TpsInvalidArgumentError).AppendMessage("Missing message source.")
		}
		c.messages = messages
		return nil
	}
}

// ConnSetResendInterval is setter for the resend sweep interval.
func ConnSetResendInterval(d time.Duration) HttpConnectorSetting {
	return func(c *HttpConnector) error {
		if d <= 0 {
			return errors.New(errors.TpsInvalidArgumentError).AppendMessage("Sweep interval must be positive.")
		}
		c.resendInterval = d
		return nil
	}
}

// ConnSetEncoder is setter for the inter-authority message encoder.
func ConnSetEncoder(encoder RequestEncoder) HttpConnectorSetting {
	return func(c *HttpConnector) error {
		if encoder == nil {
			return errors.New(errors.TpsInvalidArgumentError).AppendMessage("Missing request encoder.")
		}
		c.encoder = encoder
		return nil
	}
}

// ConnSetLogger is setter for a connector-scoped logger. Without it the connector writes
// to the package level logging facade.
func ConnSetLogger(logger log.Logger) HttpConnectorSetting {
	return func(c *HttpConnector) error {
		c.logger = logger
		return nil
	}
}

// NewHttpConnector constructs a connector over the given connection pool.
func NewHttpConnector(nickname string, pool *net.HttpConnFactory, settings ...HttpConnectorSetting) (*HttpConnector, error) {
	if len(nickname) == 0 {
		return nil, errors.New(errors.TpsInvalidArgumentError).AppendMessage("Missing connector nickname.")
	}
	if pool == nil {
		return nil, errors.New(errors.TpsInvalidArgumentError).AppendMessage("Missing connection pool.")
	}

	tmp := &HttpConnector{
		nickname:       nickname,
		pool:           pool,
		encoder:        NewWireEncoder(),
		messages:       DefaultMessages,
		resendInterval: defaultResendInterval,
	}
	for _, setter := range settings {
		if setter == nil {
			return nil, errors.New(errors.TpsInvalidArgumentError).AppendMessage("Provided setting is nil.")
		}
		if err := setter(tmp); err != nil {
			return nil, errors.TpsErr(err).AppendMessage("Unable to setup connector.")
		}
	}

	resender, err := NewResender(tmp.Send, tmp.resendInterval)
	if err != nil {
		return nil, errors.TpsErr(err).AppendMessage("Unable to setup connector.")
	}
	tmp.resender = resender
	return tmp, nil
}

// Nickname returns the connector name used in log records.
func (c *HttpConnector) Nickname() string {
	if c == nil {
		return ""
	}
	return c.nickname
}

// Resender returns the connector's resend queue.
func (c *HttpConnector) Resender() *Resender {
	if c == nil {
		return nil
	}
	return c.resender
}

// Start launches the background resend worker. Idempotent.
func (c *HttpConnector) Start() {
	if c == nil {
		return
	}
	c.resender.Start()
}

// Stop halts the background resend worker. Idempotent.
func (c *HttpConnector) Stop() {
	if c == nil {
		return
	}
	c.resender.Stop()
}

// Send hands a request to the remote authority and applies the reply to it. A true result
// means the remote side reached a terminal state, including rejection, and no re-delivery
// will happen. A false result without error means the request stays queued for resend,
// except for non retryable request types.
//
// Exactly one pool checkout happens per call and the connection is returned on every exit
// path.
func (c *HttpConnector) Send(ctx context.Context, req *request.Request) (bool, error) {
	if c == nil || req == nil {
		return false, errors.New(errors.TpsInvalidArgumentError)
	}

	payload, err := c.encoder.EncodeRequest(req)
	if err != nil {
		return false, errors.TpsErr(err).AppendMessage("Unable to serialize request.")
	}

	conn, err := c.pool.Acquire(true)
	if err != nil {
		return c.sendFailed(req, err)
	}
	defer func() {
		if err := c.pool.Release(conn); err != nil {
			c.warning("Failed to return connection to pool: ", err)
		}
	}()

	raw, err := conn.Send(ctx, payload)
	if err != nil {
		return c.sendFailed(req, err)
	}
	reply, err := c.encoder.DecodeReply(raw)
	if err != nil {
		return c.sendFailed(req, err)
	}
	return c.applyReply(req, reply), nil
}

// sendFailed implements the transport failure path: retryable requests are queued for
// re-delivery and the failure stays inside the connector, non retryable ones surface it.
func (c *HttpConnector) sendFailed(req *request.Request, err error) (bool, error) {
	c.warning("Request ", req.ID(), " hand-off via ", c.nickname, " failed: ", err)
	if !req.Type().Retryable() {
		return false, errors.TpsErr(err).AppendMessage("Unable to hand off request.")
	}
	c.resender.Add(req)
	return false, nil
}

func (c *HttpConnector) applyReply(req *request.Request, reply *Reply) bool {
	if !reply.Status.Terminal() {
		// The remote side is still working on it.
		if req.Type().Retryable() {
			req.SetExt(ExtRemoteRequestID, string(reply.RequestID))
			c.resender.Add(req)
		}
		return false
	}

	req.SetExt(ExtRemoteRequestID, string(reply.RequestID))
	for key, val := range reply.Values {
		req.SetExt(key, val)
	}
	if reply.Status == request.StatusRejected || reply.Status == request.StatusCanceled {
		req.SetError(c.messages(MsgRemoteAuthorityError))
		for _, policyErr := range reply.PolicyErrors {
			req.AddSvcError(policyErr)
		}
	}
	c.resender.Remove(req.ID())
	return true
}

func (c *HttpConnector) warning(args ...interface{}) {
	if c.logger != nil {
		c.logger.Warning(args...)
		return
	}
	log.Warning(args...)
}
