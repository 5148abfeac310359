// Copyright 2019 eBay Inc.
// Primary authors: Simon Fell, Diego Ongaro,
//                  Raymond Kroeker, and Sathish Kandasamy.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package clocks

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/askgraph/askgraph/util/parallel"
)

func ExampleMock() {
	source := NewMock()
	fmt.Printf("start: %v\n", source.Now().UnixNano())
	source.Advance(time.Second)
	fmt.Printf("then: %v\n", source.Now().UnixNano())
	// Output:
	// start: 0
	// then: 1000000000
}

func TestMock_sleepUntil(t *testing.T) {
	assert := assert.New(t)
	source := NewMock()
	wake := source.Now().Add(10 * time.Millisecond)
	wait := parallel.GoCaptureError(func() error {
		return source.SleepUntil(context.Background(), wake)
	})
	source.Advance(5 * time.Millisecond)
	source.Advance(7 * time.Millisecond)
	assert.NoError(wait())
	assert.Equal(int64(12*time.Millisecond), source.Now().UnixNano())
}

func TestMock_sleepUntil_past(t *testing.T) {
	source := NewMock()
	err := source.SleepUntil(context.Background(), source.Now().Add(-time.Second))
	assert.NoError(t, err)
}

func TestMock_sleepUntil_cancel(t *testing.T) {
	source := NewMock()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := source.SleepUntil(ctx, source.Now().Add(time.Hour))
	assert.Equal(t, context.Canceled, err)
}
