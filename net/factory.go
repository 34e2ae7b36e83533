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

package net

import (
	"fmt"
	"sync"

	"github.com/dogtagpki/gotps/errors"
	"github.com/dogtagpki/gotps/log"
)

// Default pool bounds applied when the configured values are rejected.
const (
	defaultMinConns = 1
	defaultMaxConns = 30
)

// Dialer creates a new connection handle towards the remote authority.
type Dialer func() (Connection, error)

// HttpConnFactory is a bounded connection pool. Handles are created lazily up to the
// configured maximum and parked on an idle channel between uses.
type HttpConnFactory struct {
	mutex  sync.Mutex
	dialer Dialer

	min     int
	max     int
	live    int
	primed  bool
	idle    chan Connection
	idleSet map[Connection]bool
}

// NewHttpConnFactory constructs a connection pool over the given dialer. Bounds violating
// 0 < min <= max are logged and replaced with the defaults (1 and 30), not rejected.
func NewHttpConnFactory(dialer Dialer, min, max int) (*HttpConnFactory, error) {
	if dialer == nil {
		return nil, errors.New(errors.TpsInvalidArgumentError).AppendMessage("Missing connection dialer.")
	}
	if min <= 0 || max < min {
		log.Warning(fmt.Sprintf("Invalid pool bounds min=%d max=%d, falling back to defaults.", min, max))
		min = defaultMinConns
		max = defaultMaxConns
	}

	return &HttpConnFactory{
		dialer: dialer,
		min:    min,
		max:    max,
		// Twice the capacity so that duplicate releases can not wedge a releaser.
		idle:    make(chan Connection, 2*max),
		idleSet: make(map[Connection]bool),
	}, nil
}

// Min returns the effective lower pool bound.
func (f *HttpConnFactory) Min() int {
	if f == nil {
		return 0
	}
	return f.min
}

// Max returns the effective upper pool bound.
func (f *HttpConnFactory) Max() int {
	if f == nil {
		return 0
	}
	return f.max
}

// prime creates the initial min handles. Callers must hold the mutex.
func (f *HttpConnFactory) prime() error {
	if f.primed {
		return nil
	}
	for i := 0; i < f.min; i++ {
		conn, err := f.dialer()
		if err != nil {
			return errors.TpsErr(err).AppendMessage("Unable to prime connection pool.")
		}
		f.live++
		f.idleSet[conn] = true
		f.idle <- conn
	}
	f.primed = true
	return nil
}

// Acquire checks a connection handle out of the pool. With blocking set the caller waits
// for a handle to be released when the pool is exhausted, otherwise exhaustion yields a nil
// handle and no error.
func (f *HttpConnFactory) Acquire(blocking bool) (Connection, error) {
	if f == nil {
		return nil, errors.New(errors.TpsInvalidArgumentError)
	}

	f.mutex.Lock()
	if err := f.prime(); err != nil {
		f.mutex.Unlock()
		return nil, err
	}

	select {
	case conn := <-f.idle:
		delete(f.idleSet, conn)
		f.mutex.Unlock()
		return conn, nil
	default:
	}

	if f.live < f.max {
		conn, err := f.dialer()
		if err != nil {
			f.mutex.Unlock()
			return nil, errors.TpsErr(err).AppendMessage("Unable to grow connection pool.")
		}
		f.live++
		f.mutex.Unlock()
		return conn, nil
	}
	f.mutex.Unlock()

	if !blocking {
		log.Info("Connection pool exhausted.")
		return nil, nil
	}

	conn := <-f.idle
	f.mutex.Lock()
	delete(f.idleSet, conn)
	f.mutex.Unlock()
	return conn, nil
}

// Release returns a connection handle to the pool. Releasing a handle that is already idle
// is logged as a warning but the handle is still appended, preserving the behavior the
// deployed clients rely on even though it double-counts the handle.
func (f *HttpConnFactory) Release(conn Connection) error {
	if f == nil || conn == nil {
		return errors.New(errors.TpsInvalidArgumentError)
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.idleSet[conn] {
		log.Warning("Connection released twice: ", conn.URI())
	}
	f.idleSet[conn] = true
	select {
	case f.idle <- conn:
	default:
		return errors.New(errors.TpsInvalidStateError).AppendMessage("Idle connection overflow.")
	}
	return nil
}
