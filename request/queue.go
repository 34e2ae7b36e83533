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

package request

// Queue is the processing interface an in-process authority exposes to connectors. The local
// connector hands requests to a destination queue and is called back when they complete.
type Queue interface {
	// NewRequest allocates a fresh request record of the given type.
	NewRequest(typ Type) (*Request, error)
	// ProcessRequest submits a request for asynchronous processing.
	ProcessRequest(req *Request) error
	// MarkServiced flags a request as serviced by the remote side.
	MarkServiced(req *Request) error
	// ReleaseRequest returns a request to the queue without servicing it.
	ReleaseRequest(req *Request) error
}
