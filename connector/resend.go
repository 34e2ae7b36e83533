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
	"sync"
	"time"

	"github.com/dogtagpki/gotps/errors"
	"github.com/dogtagpki/gotps/log"
	"github.com/dogtagpki/gotps/request"
)

// SendFunc re-attempts the hand-off of a request. A true result means the remote side
// reached a terminal state and no further attempts are needed.
type SendFunc func(ctx context.Context, req *request.Request) (bool, error)

// Resender keeps the set of requests whose remote hand-off has not reached a terminal
// state and re-attempts them on a timer sweep. Entries are keyed by request id, the sweep
// order is not FIFO.
type Resender struct {
	mutex   sync.Mutex
	entries map[request.ID]*request.Request

	send     SendFunc
	interval time.Duration
	stop     chan struct{}
	done     sync.WaitGroup
}

// NewResender constructs a resend queue sweeping at the given interval.
func NewResender(send SendFunc, interval time.Duration) (*Resender, error) {
	if send == nil {
		return nil, errors.New(errors.TpsInvalidArgumentError).AppendMessage("Missing send callback.")
	}
	if interval <= 0 {
		return nil, errors.New(errors.TpsInvalidArgumentError).AppendMessage("Sweep interval must be positive.")
	}
	return &Resender{
		entries:  make(map[request.ID]*request.Request),
		send:     send,
		interval: interval,
	}, nil
}

// Add enqueues a request for re-delivery. Re-adding an already queued id overwrites the
// entry.
func (r *Resender) Add(req *request.Request) {
	if r == nil || req == nil {
		return
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.entries[req.ID()] = req
}

// Remove drops a request from the queue.
func (r *Resender) Remove(id request.ID) {
	if r == nil {
		return
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	delete(r.entries, id)
}

// Contains reports whether a request is queued for re-delivery.
func (r *Resender) Contains(id request.ID) bool {
	if r == nil {
		return false
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	_, ok := r.entries[id]
	return ok
}

// Len returns the count of queued requests.
func (r *Resender) Len() int {
	if r == nil {
		return 0
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.entries)
}

// Start launches the background sweep worker. Starting an already running resender is a
// no-op.
func (r *Resender) Start() {
	if r == nil {
		return
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.stop != nil {
		return
	}
	r.stop = make(chan struct{})
	r.done.Add(1)
	go r.worker(r.stop)
}

// Stop halts the sweep worker and waits for a sweep in progress to finish. Stopping an
// already stopped resender is a no-op.
func (r *Resender) Stop() {
	if r == nil {
		return
	}
	r.mutex.Lock()
	if r.stop == nil {
		r.mutex.Unlock()
		return
	}
	close(r.stop)
	r.stop = nil
	r.mutex.Unlock()
	r.done.Wait()
}

func (r *Resender) worker(stop chan struct{}) {
	defer r.done.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			r.Sweep(context.Background())
		}
	}
}

// Sweep re-attempts every queued request once, dropping the entries that reach a terminal
// remote state. Failed attempts stay queued for the next sweep.
func (r *Resender) Sweep(ctx context.Context) {
	if r == nil {
		return
	}
	r.mutex.Lock()
	pending := make([]*request.Request, 0, len(r.entries))
	for _, req := range r.entries {
		pending = append(pending, req)
	}
	r.mutex.Unlock()

	for _, req := range pending {
		complete, err := r.send(ctx, req)
		if err != nil {
			log.Warning("Resend attempt failed for request ", req.ID(), ": ", err)
			continue
		}
		if complete {
			r.Remove(req.ID())
		}
	}
}
