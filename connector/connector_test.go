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
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dogtagpki/gotps/errors"
	"github.com/dogtagpki/gotps/log"
	"github.com/dogtagpki/gotps/net"
	"github.com/dogtagpki/gotps/request"
	"github.com/dogtagpki/gotps/test"
)

var testLogDir = filepath.Join("..", "test", "out")

func TestUnitConnector(t *testing.T) {
	logger, defFunc, err := test.InitLogger(t, testLogDir, log.DEBUG, t.Name())
	if err != nil {
		t.Fatal("Failed to initialize logger: ", err)
	}
	defer defFunc()
	// Apply logger.
	log.SetLogger(logger)
	defer log.SetLogger(nil)

	test.Suite{
		{Func: testWireEncoderRoundTrip},
		{Func: testWireEncoderMalformedReply},
		{Func: testSendPendingReply},
		{Func: testSendRejectedReply},
		{Func: testSendCompleteReply},
		{Func: testSendTransportFailure},
		{Func: testSendNonRetryableFailure},
		{Func: testResenderSweep},
		{Func: testStartStopIdempotent},
	}.Runner(t)
}

// scriptConn is a transport stub replying with a fixed payload or failure.
type scriptConn struct {
	reply []byte
	fail  bool
	sent  [][]byte
}

func (c *scriptConn) Send(_ context.Context, req []byte) ([]byte, error) {
	c.sent = append(c.sent, req)
	if c.fail {
		return nil, errors.New(errors.TpsNetworkError).AppendMessage("Transport down.")
	}
	return c.reply, nil
}

func (c *scriptConn) URI() string {
	return "stub:"
}

func newStubConnector(t *testing.T, conn *scriptConn) *HttpConnector {
	pool, err := net.NewHttpConnFactory(func() (net.Connection, error) { return conn, nil }, 1, 1)
	if err != nil {
		t.Fatal("Failed to create pool: ", err)
	}
	c, err := NewHttpConnector("ca1", pool, ConnSetResendInterval(10*time.Millisecond))
	if err != nil {
		t.Fatal("Failed to create connector: ", err)
	}
	return c
}

func replyPayload(body string) []byte {
	return []byte(fmt.Sprintf("s=%d&%s", len(body), body))
}

func testWireEncoderRoundTrip(t *testing.T, _ ...interface{}) {
	req, err := request.New("42", request.TypeEnrollment)
	if err != nil {
		t.Fatal("Failed to create request: ", err)
	}
	req.SetExt("profile", "userKey")
	req.SetExt("subject", "CN=John Doe, O=Example & Co")

	raw, err := NewWireEncoder().EncodeRequest(req)
	if err != nil {
		t.Fatal("Failed to encode request: ", err)
	}
	// Abuse the reply decoder to reverse the shared grammar.
	back, err := NewWireEncoder().DecodeReply(append(raw, []byte("&status=pending&req_id=remote-9")...))
	if err != nil {
		t.Fatal("Failed to decode payload: ", err)
	}
	expected := map[string]string{
		"req_type": "1",
		"profile":  "userKey",
		"subject":  "CN=John Doe, O=Example & Co",
	}
	if diff := cmp.Diff(expected, back.Values); diff != "" {
		t.Error("Transfer value mismatch (-want +got):\n", diff)
	}
	if back.RequestID != "remote-9" || back.Status != request.StatusPending {
		t.Error("Reply field mismatch.")
	}
}

func testWireEncoderMalformedReply(t *testing.T, _ ...interface{}) {
	enc := NewWireEncoder()
	if _, err := enc.DecodeReply(nil); err == nil {
		t.Error("Empty reply must not decode.")
	}
	if _, err := enc.DecodeReply(replyPayload("req_id=7")); err == nil {
		t.Error("Reply without status must not decode.")
	}
	if _, err := enc.DecodeReply(replyPayload("status=pending")); err == nil {
		t.Error("Reply without request id must not decode.")
	}
	if _, err := enc.DecodeReply(replyPayload("req_id=7&status=limbo")); err == nil {
		t.Error("Reply with unknown status must not decode.")
	}
	if _, err := enc.DecodeReply(replyPayload("req_id=7&status=pending&junk")); err == nil {
		t.Error("Reply with separator-less segment must not decode.")
	}
}

func testSendPendingReply(t *testing.T, _ ...interface{}) {
	c := newStubConnector(t, &scriptConn{reply: replyPayload("req_id=remote-1&status=pending")})
	req, err := request.New("10", request.TypeEnrollment)
	if err != nil {
		t.Fatal("Failed to create request: ", err)
	}

	complete, err := c.Send(nil, req)
	if err != nil {
		t.Fatal("Hand-off must not fail: ", err)
	}
	if complete {
		t.Error("Pending reply must report the hand-off as not complete.")
	}
	if !c.Resender().Contains(req.ID()) {
		t.Error("Pending request must be queued for resend.")
	}
	if remote, _ := req.Ext(ExtRemoteRequestID); remote != "remote-1" {
		t.Error("Remote request id mismatch: ", remote)
	}
}

func testSendRejectedReply(t *testing.T, _ ...interface{}) {
	c := newStubConnector(t, &scriptConn{
		reply: replyPayload("req_id=remote-2&status=rejected&error0=subject name not unique&error1=key usage mismatch"),
	})
	req, err := request.New("11", request.TypeEnrollment)
	if err != nil {
		t.Fatal("Failed to create request: ", err)
	}
	c.Resender().Add(req)

	complete, err := c.Send(nil, req)
	if err != nil {
		t.Fatal("Hand-off must not fail: ", err)
	}
	if !complete {
		t.Error("Rejection is terminal and must report the hand-off as complete.")
	}
	if !req.ResultError() || req.ErrorMessage() != DefaultMessages(MsgRemoteAuthorityError) {
		t.Error("Rejected request must carry the localized failure message.")
	}
	if diff := cmp.Diff([]string{"subject name not unique", "key usage mismatch"}, req.SvcErrors()); diff != "" {
		t.Error("Policy error mismatch (-want +got):\n", diff)
	}
	if c.Resender().Contains(req.ID()) {
		t.Error("Terminal request must leave the resend queue.")
	}
}

func testSendCompleteReply(t *testing.T, _ ...interface{}) {
	c := newStubConnector(t, &scriptConn{
		reply: replyPayload("req_id=remote-3&status=complete&serial=0x1b&cert=MIIB"),
	})
	req, err := request.New("12", request.TypeRenewal)
	if err != nil {
		t.Fatal("Failed to create request: ", err)
	}

	complete, err := c.Send(nil, req)
	if err != nil {
		t.Fatal("Hand-off must not fail: ", err)
	}
	if !complete {
		t.Error("Completed reply must report the hand-off as complete.")
	}
	if req.ResultError() {
		t.Error("Completed request must not carry a failed result.")
	}
	for key, expected := range map[string]string{"serial": "0x1b", "cert": "MIIB", ExtRemoteRequestID: "remote-3"} {
		if val, _ := req.Ext(key); val != expected {
			t.Error("Transferred field mismatch for ", key, ": ", val)
		}
	}
}

func testSendTransportFailure(t *testing.T, _ ...interface{}) {
	c := newStubConnector(t, &scriptConn{fail: true})
	req, err := request.New("13", request.TypeRevocation)
	if err != nil {
		t.Fatal("Failed to create request: ", err)
	}

	complete, err := c.Send(nil, req)
	if err != nil {
		t.Fatal("Transport failure of a retryable request must stay internal: ", err)
	}
	if complete {
		t.Error("Transport failure must report the hand-off as not complete.")
	}
	if !c.Resender().Contains(req.ID()) {
		t.Error("Failed retryable request must be queued for resend.")
	}
}

// Revocation info lookups are queries and must never be blindly re-delivered.
func testSendNonRetryableFailure(t *testing.T, _ ...interface{}) {
	c := newStubConnector(t, &scriptConn{fail: true})
	req, err := request.New("14", request.TypeGetRevocationInfo)
	if err != nil {
		t.Fatal("Failed to create request: ", err)
	}

	complete, err := c.Send(nil, req)
	if err == nil {
		t.Fatal("Transport failure of a non retryable request must surface.")
	}
	if complete || c.Resender().Contains(req.ID()) {
		t.Error("Non retryable request must not be queued for resend.")
	}
}

func testResenderSweep(t *testing.T, _ ...interface{}) {
	conn := &scriptConn{fail: true}
	c := newStubConnector(t, conn)
	req, err := request.New("15", request.TypeEnrollment)
	if err != nil {
		t.Fatal("Failed to create request: ", err)
	}

	if _, err = c.Send(nil, req); err != nil {
		t.Fatal("Hand-off must not fail: ", err)
	}
	if c.Resender().Len() != 1 {
		t.Fatal("Failed request must be queued for resend.")
	}

	// A sweep against a still failing transport keeps the entry queued.
	c.Resender().Sweep(context.Background())
	if !c.Resender().Contains(req.ID()) {
		t.Error("Failed resend attempt must keep the request queued.")
	}

	// The remote recovers and completes the request on the next sweep.
	conn.fail = false
	conn.reply = replyPayload("req_id=remote-5&status=complete")
	c.Resender().Sweep(context.Background())
	if c.Resender().Contains(req.ID()) {
		t.Error("Terminal resend outcome must remove the request.")
	}
}

func testStartStopIdempotent(t *testing.T, _ ...interface{}) {
	c := newStubConnector(t, &scriptConn{reply: replyPayload("req_id=r&status=complete")})
	c.Start()
	c.Start()
	c.Stop()
	c.Stop()
	c.Start()
	c.Stop()

	var nilConn *HttpConnector
	nilConn.Start()
	nilConn.Stop()
	if _, err := nilConn.Send(nil, nil); err == nil {
		t.Error("Nil receiver send must fail.")
	}
}
