// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stream

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"
)

// scriptedSource replays a fixed chunk sequence then EOF.
type scriptedSource struct {
	chunks []Chunk
	next   int
	err    error // returned after the chunks instead of EOF when set
}

func (s *scriptedSource) Recv() (Chunk, error) {
	if s.next >= len(s.chunks) {
		if s.err != nil {
			return Chunk{}, s.err
		}
		return Chunk{}, io.EOF
	}
	c := s.chunks[s.next]
	s.next++
	return c, nil
}

// blockingSource never returns.
type blockingSource struct{}

func (blockingSource) Recv() (Chunk, error) {
	select {}
}

// endlessSource produces content forever.
type endlessSource struct{}

func (endlessSource) Recv() (Chunk, error) {
	return Chunk{Content: "x"}, nil
}

// sourceAgent returns a fixed source.
type sourceAgent struct {
	src Source
	err error
}

func (a sourceAgent) Submit(ctx context.Context, prompt string) (Source, error) {
	return a.src, a.err
}

func contentChunks(texts ...string) []Chunk {
	chunks := make([]Chunk, len(texts))
	for i, s := range texts {
		chunks[i] = Chunk{Content: s}
	}
	return chunks
}

func TestRunAccumulatesContent(t *testing.T) {
	src := &scriptedSource{chunks: contentChunks("Hello ", "world", ".")}
	res := Consumer{Timeout: time.Second}.Run(context.Background(), sourceAgent{src: src}, "prompt")

	if res.Text != "Hello world." {
		t.Errorf("Text = %q", res.Text)
	}
	if res.ChunkCount != 3 || res.ContentChunkCount != 3 {
		t.Errorf("counts = (%d, %d), want (3, 3)", res.ChunkCount, res.ContentChunkCount)
	}
	if res.TimedOut || res.Err != "" {
		t.Errorf("unexpected failure state: %+v", res)
	}
}

func TestRunCountsMalformedChunks(t *testing.T) {
	src := &scriptedSource{chunks: []Chunk{
		{Content: "a"},
		{}, // no extractable content
		{Content: "b"},
	}}
	res := Consumer{Timeout: time.Second}.Run(context.Background(), sourceAgent{src: src}, "prompt")

	if res.Text != "ab" {
		t.Errorf("Text = %q, want ab", res.Text)
	}
	if res.ChunkCount != 3 {
		t.Errorf("ChunkCount = %d, want 3", res.ChunkCount)
	}
	if res.ContentChunkCount != 2 {
		t.Errorf("ContentChunkCount = %d, want 2", res.ContentChunkCount)
	}
}

func TestRunTimeoutOnBlockingSource(t *testing.T) {
	start := time.Now()
	res := Consumer{Timeout: 50 * time.Millisecond}.Run(context.Background(), sourceAgent{src: blockingSource{}}, "prompt")

	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("Run took %v, deadline not enforced", elapsed)
	}
	if !res.TimedOut {
		t.Error("TimedOut should be set")
	}
	if res.Err != "" {
		t.Errorf("timeout is not a transport error, got %q", res.Err)
	}
}

func TestRunTimeoutKeepsPartialText(t *testing.T) {
	res := Consumer{Timeout: 50 * time.Millisecond}.Run(context.Background(), sourceAgent{src: endlessSource{}}, "prompt")

	if !res.TimedOut {
		t.Fatal("TimedOut should be set for an endless source")
	}
	if res.Text == "" {
		t.Error("partial text should be kept on timeout")
	}
	if res.ChunkCount == 0 {
		t.Error("chunks consumed before the deadline should be counted")
	}
}

func TestRunSubmitFailure(t *testing.T) {
	res := Consumer{Timeout: time.Second}.Run(context.Background(), sourceAgent{err: errors.New("connection refused")}, "prompt")

	if res.Err != "connection refused" {
		t.Errorf("Err = %q", res.Err)
	}
	if res.Text != "" || res.ChunkCount != 0 {
		t.Errorf("no consumption should happen on submit failure: %+v", res)
	}
}

func TestRunTransportFailureKeepsPartialText(t *testing.T) {
	src := &scriptedSource{
		chunks: contentChunks("partial "),
		err:    errors.New("connection reset"),
	}
	res := Consumer{Timeout: time.Second}.Run(context.Background(), sourceAgent{src: src}, "prompt")

	if res.Err != "connection reset" {
		t.Errorf("Err = %q", res.Err)
	}
	if res.Text != "partial " {
		t.Errorf("Text = %q, partial content should be kept", res.Text)
	}
}

// capturingAgent records the context its Submit receives and returns a
// source that blocks until that context is cancelled.
type capturingAgent struct {
	submitCtx context.Context
}

func (a *capturingAgent) Submit(ctx context.Context, prompt string) (Source, error) {
	a.submitCtx = ctx
	return ctxBoundSource{ctx: ctx}, nil
}

// ctxBoundSource behaves like a transport read: it parks until its
// backing context is done.
type ctxBoundSource struct {
	ctx context.Context
}

func (s ctxBoundSource) Recv() (Chunk, error) {
	<-s.ctx.Done()
	return Chunk{}, s.ctx.Err()
}

func TestRunTimeoutReleasesSubmission(t *testing.T) {
	agent := &capturingAgent{}
	res := Consumer{Timeout: 20 * time.Millisecond}.Run(context.Background(), agent, "prompt")

	if !res.TimedOut {
		t.Fatal("TimedOut should be set")
	}
	// The submission context must be cancelled once Run returns, so a
	// Recv parked in a network read is unblocked and the open response
	// body released instead of leaking until the caller's ctx ends.
	select {
	case <-agent.submitCtx.Done():
	case <-time.After(time.Second):
		t.Fatal("submission context still live after timeout")
	}
}

func TestRunCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	res := Consumer{Timeout: 10 * time.Second}.Run(ctx, sourceAgent{src: blockingSource{}}, "prompt")

	if res.Err == "" {
		t.Error("cancellation should surface in Err")
	}
	if res.TimedOut {
		t.Error("cancellation is not a timeout")
	}
}

func TestRunProgressCallback(t *testing.T) {
	chunks := make([]Chunk, 10)
	for i := range chunks {
		chunks[i] = Chunk{Content: "x"}
	}
	src := &scriptedSource{chunks: chunks}

	var calls int
	c := Consumer{
		Timeout:       time.Second,
		ProgressEvery: 4,
		OnProgress: func(chunks, contentChunks, bytes int) {
			calls++
		},
	}
	res := c.Run(context.Background(), sourceAgent{src: src}, "prompt")

	if res.ChunkCount != 10 {
		t.Fatalf("ChunkCount = %d", res.ChunkCount)
	}
	// Callbacks at chunk 4 and 8.
	if calls != 2 {
		t.Errorf("progress calls = %d, want 2", calls)
	}
}
