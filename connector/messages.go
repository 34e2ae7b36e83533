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

// MessageFunc resolves a user-facing message by its key. Connectors attach resolved
// messages to failed requests, raw transport errors stay in the log.
type MessageFunc func(key string) string

// Message keys used by the connectors.
const (
	MsgRemoteAuthorityError = "remoteAuthorityError"
)

var defaultMessages = map[string]string{
	MsgRemoteAuthorityError: "Error: unable to process the request at the remote authority.",
}

// DefaultMessages is the built-in English message source.
func DefaultMessages(key string) string {
	if msg, ok := defaultMessages[key]; ok {
		return msg
	}
	return key
}
