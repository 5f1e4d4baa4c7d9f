// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stream

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/pdiddy/intel-engine/pkg/types"
)

// Source is one open agent stream. Recv returns the next chunk, or
// io.EOF when the stream has completed normally.
type Source interface {
	Recv() (Chunk, error)
}

// Agent is the upstream collaborator: it accepts a prompt and returns a
// lazy chunk sequence. Implementations must honor ctx cancellation in
// Submit and should stop producing when ctx is done; the consumer
// additionally enforces its own deadline regardless.
type Agent interface {
	Submit(ctx context.Context, prompt string) (Source, error)
}

// ProgressFunc observes consumption progress. Implementations must be
// fast or hand off to a buffered channel: the consumer invokes it
// inline between chunks.
type ProgressFunc func(chunks, contentChunks, bytes int)

// DefaultProgressInterval is the chunk interval between progress calls.
const DefaultProgressInterval = 50

// Consumer accumulates agent output under a deadline.
//
// State machine: Idle → Streaming → {Completed, TimedOut, Failed}.
// A malformed chunk never aborts the stream; it counts toward
// ChunkCount without contributing content. Transport errors and
// timeouts are captured into the StreamResult rather than returned, so
// callers always receive a usable result carrying whatever text was
// accumulated.
type Consumer struct {
	// Timeout bounds the whole streaming phase. Zero means one minute.
	Timeout time.Duration

	// ProgressEvery is the chunk interval between OnProgress calls.
	// Zero means DefaultProgressInterval.
	ProgressEvery int

	// OnProgress, when set, is called every ProgressEvery chunks.
	OnProgress ProgressFunc
}

// recvItem carries one Recv outcome from the pump goroutine.
type recvItem struct {
	chunk Chunk
	err   error
}

// Run submits prompt to the agent and consumes the resulting stream
// until completion, deadline, or cancellation. Partial text accumulated
// before a timeout or failure is kept, never discarded.
func (c Consumer) Run(ctx context.Context, agent Agent, prompt string) types.StreamResult {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	every := c.ProgressEvery
	if every <= 0 {
		every = DefaultProgressInterval
	}

	start := time.Now()
	var res types.StreamResult

	finish := func() types.StreamResult {
		res.ElapsedSeconds = time.Since(start).Seconds()
		return res
	}

	// The pump context backs the submission itself, so cancelling it on
	// return tears the transport down and unblocks a Recv parked in a
	// network read. Without that, every timed-out stream would leak the
	// pump goroutine and its open response body until ctx ends.
	pumpCtx, cancelPump := context.WithCancel(ctx)
	defer cancelPump()

	src, err := agent.Submit(pumpCtx, prompt)
	if err != nil {
		res.Err = err.Error()
		return finish()
	}

	items := make(chan recvItem)
	go func() {
		for {
			chunk, err := src.Recv()
			select {
			case items <- recvItem{chunk: chunk, err: err}:
			case <-pumpCtx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	var text []byte
	for {
		select {
		case <-deadline.C:
			res.TimedOut = true
			res.Text = string(text)
			return finish()

		case <-ctx.Done():
			res.Err = ctx.Err().Error()
			res.Text = string(text)
			return finish()

		case item := <-items:
			if item.err != nil {
				if !errors.Is(item.err, io.EOF) {
					res.Err = item.err.Error()
				}
				res.Text = string(text)
				return finish()
			}

			// Clock check before processing, so a flood of chunks
			// cannot outrun the deadline between timer fires.
			if time.Since(start) > timeout {
				res.TimedOut = true
				res.Text = string(text)
				return finish()
			}

			res.ChunkCount++
			if content, ok := item.chunk.Extract(); ok {
				text = append(text, content...)
				res.ContentChunkCount++
			}

			if c.OnProgress != nil && res.ChunkCount%every == 0 {
				c.OnProgress(res.ChunkCount, res.ContentChunkCount, len(text))
			}
		}
	}
}
