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

// Package net provides the network I/O layer towards remote authorities.
package net

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dogtagpki/gotps/errors"
	"github.com/dogtagpki/gotps/log"
)

// Connection is an abstract blocking round-trip transport towards one remote authority
// endpoint.
type Connection interface {
	// Send places the request towards the endpoint and returns the raw response.
	// In case the context does not have a deadline set, the Connection's default timeout
	// is used.
	Send(context.Context, []byte) ([]byte, error)
	// URI returns the endpoint address.
	URI() string
}

// ConnectionOpt is the configuration option for a network connection.
type ConnectionOpt func(Connection) error

// Specifies the default request timeout.
// If changed, update the doc under ConnOptRequestTimeout.
const defaultRequestTimeout = 30 * time.Second

type httpConnection struct {
	url     string
	timeout time.Duration
}

// NewConnection returns a new network connection towards the given endpoint URI. Only HTTP
// and HTTPS schemes are supported.
func NewConnection(uri string, options ...ConnectionOpt) (Connection, error) {
	if len(uri) == 0 {
		return nil, errors.New(errors.TpsInvalidFormatError).AppendMessage("Missing endpoint URI.")
	}

	u, err := url.Parse(uri)
	if err != nil {
		return nil, errors.New(errors.TpsNetworkError).SetExtError(err).
			AppendMessage("Unable to parse URI.")
	}
	switch u.Scheme {
	case "http", "https":
	default:
		return nil, errors.New(errors.TpsInvalidFormatError).AppendMessage("Unknown URI scheme.")
	}

	tmp := &httpConnection{
		url:     u.String(),
		timeout: defaultRequestTimeout,
	}
	for _, setter := range options {
		if setter == nil {
			return nil, errors.New(errors.TpsInvalidArgumentError).AppendMessage("Provided option is nil.")
		}
		if err := setter(tmp); err != nil {
			return nil, errors.TpsErr(err).AppendMessage("Unable to apply connection option.")
		}
	}
	return tmp, nil
}

// ConnOptRequestTimeout is option that specifies the request timeout duration.
// A default request timeout duration is 30 seconds. In order to disable the timeout, set
// the duration to 0.
func ConnOptRequestTimeout(d time.Duration) ConnectionOpt {
	return func(c Connection) error {
		h, ok := c.(*httpConnection)
		if !ok || h == nil {
			return errors.New(errors.TpsInvalidArgumentError).AppendMessage("Missing connection base object.")
		}
		if d < 0 {
			return errors.New(errors.TpsInvalidArgumentError).AppendMessage("Timeout can not be negative.")
		}
		h.timeout = d
		return nil
	}
}

// setupClient returns a new HTTP Client.
//
// To use a proxy, configure the proxy on the operating system level via the
// `http_proxy=user:pass@server:port` environment variable.
func (c *httpConnection) setupClient() (*http.Client, error) {
	if c == nil {
		return nil, errors.New(errors.TpsInvalidArgumentError)
	}

	return &http.Client{
		Timeout: c.timeout,
		Transport: &http.Transport{
			Proxy:           http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{},
		},
	}, nil
}

// Send implements Connection.Send().
func (c *httpConnection) Send(ctx context.Context, request []byte) (b []byte, e error) {
	if c == nil {
		return nil, errors.New(errors.TpsInvalidArgumentError)
	}
	if request == nil {
		return nil, errors.New(errors.TpsInvalidArgumentError).AppendMessage("Missing request bytes.")
	}
	log.Debug(fmt.Sprintf("HTTP send (%s): %q", c.url, request))

	httpReq, err := http.NewRequest(http.MethodPost, c.url, bytes.NewBuffer(request))
	if err != nil {
		return nil, errors.New(errors.TpsNetworkError).SetExtError(err)
	}
	httpReq.Header.Set("Content-Type", "text/plain")
	// HTTP server might keep the connection open with "keep-alive" option, otherwise server
	// could run out of sockets.
	httpReq.Close = true

	if ctx == nil {
		ctx = context.Background()
	}
	if c.timeout > 0 {
		// Check that no deadline is already set.
		if _, ok := ctx.Deadline(); !ok {
			var reqCancel context.CancelFunc
			ctx, reqCancel = context.WithTimeout(ctx, c.timeout)
			defer reqCancel()
		}
	}
	httpReq = httpReq.WithContext(ctx)

	client, err := c.setupClient()
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, errors.New(errors.TpsNetworkError).SetExtError(err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Error("Closing HTTP response body returned error: ", err)
		}
	}()

	buf := bytes.Buffer{}
	// (Buffer).ReadFrom can panic if the amount of data gets too large.
	defer func() {
		if r := recover(); r != nil {
			tpsErr := errors.New(errors.TpsNetworkError).AppendMessage("Panic while reading HTTP response.")
			if err, ok := r.(error); ok {
				e = tpsErr.SetExtError(err)
			} else {
				e = tpsErr.AppendMessage(fmt.Sprintf("%s", r))
			}
		}
	}()
	if _, err = buf.ReadFrom(io.Reader(resp.Body)); err != nil {
		return nil, errors.New(errors.TpsNetworkError).SetExtError(err).
			AppendMessage("Failed to read response body.")
	}
	log.Debug(fmt.Sprintf("HTTP received (%s): %q", c.url, buf.Bytes()))

	var respErr error
	if resp.StatusCode >= 400 && resp.StatusCode < 600 {
		respErr = errors.New(errors.TpsHttpError).SetExtErrorCode(resp.StatusCode).
			AppendMessage(resp.Status)
	}
	return buf.Bytes(), respErr
}

// URI implements Connection.URI().
func (c *httpConnection) URI() string {
	if c == nil {
		return ""
	}
	return c.url
}
