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

package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dogtagpki/gotps/errors"
)

// Priority is the logging priority. Only events with priority equal to or higher than the
// logger priority are written.
type Priority byte

const (
	// DEBUG priority.
	DEBUG Priority = iota
	// INFO priority.
	INFO
	// NOTICE priority.
	NOTICE
	// WARNING priority.
	WARNING
	// ERROR priority.
	ERROR

	priorityCount
)

var priorityPrefix = [priorityCount]string{"[D]", "[I]", "[N]", "[W]", "[E]"}

type basicLogger struct {
	priority Priority
	out      io.Writer
	mutex    sync.Mutex
}

// New returns a basic Logger implementation that writes formatted log lines into the provided
// io.Writer. In case the writer is nil, the output is written to stdout.
func New(priority Priority, writer io.Writer) (Logger, error) {
	if priority >= priorityCount {
		return nil, errors.New(errors.TpsInvalidArgumentError).AppendMessage("Unknown logging priority.")
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &basicLogger{
		priority: priority,
		out:      writer,
	}, nil
}

func (l *basicLogger) write(p Priority, v ...interface{}) {
	if l == nil || p < l.priority {
		return
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()
	fmt.Fprintf(l.out, "%s %s %s\n",
		time.Now().Format("15:04:05.000"), priorityPrefix[p], fmt.Sprint(v...))
}

// Debug implements Logger.Debug().
func (l *basicLogger) Debug(v ...interface{}) { l.write(DEBUG, v...) }

// Info implements Logger.Info().
func (l *basicLogger) Info(v ...interface{}) { l.write(INFO, v...) }

// Notice implements Logger.Notice().
func (l *basicLogger) Notice(v ...interface{}) { l.write(NOTICE, v...) }

// Warning implements Logger.Warning().
func (l *basicLogger) Warning(v ...interface{}) { l.write(WARNING, v...) }

// Error implements Logger.Error().
func (l *basicLogger) Error(v ...interface{}) { l.write(ERROR, v...) }
