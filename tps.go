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

/*

Package tps implements the Token Processing System wire-protocol core: the
name-value message format spoken between a token client and the TPS server,
the APDU framing carried inside token PDU messages, and the connector layer
that transfers PKI requests between cooperating authorities (CA, KRA, TKS)
with retry semantics.

The functionality is split into subpackages:

	buffer     growable byte sequence with hex-dump and %XX codec helpers
	apdu       ISO 7816-4 smart card command and response framing
	msg        the TPS name-value message protocol
	request    the request abstraction moved between authorities
	net        connection handles and the bounded connection pool
	connector  remote and in-process request hand-off with resend


Logging

The subpackage log defines the logging interface type log.Logger and a basic
implementation writing formatted lines to an io.Writer.

By default logging is disabled. To enable logging of the API internals,
register a logger implementation in the log package:

	logger, err := log.New(log.DEBUG, nil)
	if err != nil {
		return
	}
	log.SetLogger(logger)

The connectors also accept a logger instance via a functional option, which
takes precedence over the package level logger. Inject a dedicated logger to
keep components isolated, e.g. under test.


Errors

Almost every method of the API returns an error parameter alongside a value
(if applicable). All returned errors are of type errors.TpsError. For
troubleshooting, the TpsError provides the following information:

	error code     - for error verification and recovery logic;
	error message  - a stack of human readable descriptive messages;
	stack trace    - the stack trace of the error registration;
	extended error - an error code, or error from e.g. std library.

To resolve the error code of a returned error:

	if err != nil {
		code := errors.TpsErr(err).Code()
		...
	}

*/
package tps

// Version is the API version.
const Version = "1.0.0"
