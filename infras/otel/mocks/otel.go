package mocks

import (
	"context"
	"shop/infras/otel"
	"sync"
)

// Span is what a Recorder remembers about one scope.
type Span struct {
	Scope      string
	Name       string
	Errors     []error
	Events     []string
	Attributes map[string]any
	Ended      bool
}

// Recorder is an otel.Otel that keeps every opened scope in memory instead of exporting it.
type Recorder struct {
	mu    sync.Mutex
	spans []*Span
}

func NewOtel() otel.Otel {
	return NewRecorder()
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) NewScope(ctx context.Context, scopeName, spanName string) (context.Context, otel.Scope) {
	span := &Span{Scope: scopeName, Name: spanName, Attributes: map[string]any{}}

	r.mu.Lock()
	r.spans = append(r.spans, span)
	r.mu.Unlock()

	return ctx, &scope{recorder: r, span: span}
}

func (r *Recorder) Shutdown(_ context.Context) error {
	return nil
}

// Spans returns a snapshot of the recorded spans in the order they were opened.
func (r *Recorder) Spans() []Span {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Span, 0, len(r.spans))
	for _, span := range r.spans {
		out = append(out, *span)
	}

	return out
}

// Span returns the first recorded span with the given name.
func (r *Recorder) Span(name string) (Span, bool) {
	for _, span := range r.Spans() {
		if span.Name == name {
			return span, true
		}
	}

	return Span{}, false
}

type scope struct {
	recorder *Recorder
	span     *Span
}

func (s *scope) with(fn func(span *Span)) {
	s.recorder.mu.Lock()
	defer s.recorder.mu.Unlock()

	fn(s.span)
}

func (s *scope) End() {
	s.with(func(span *Span) { span.Ended = true })
}

func (s *scope) TraceError(err error) {
	s.with(func(span *Span) { span.Errors = append(span.Errors, err) })
}

func (s *scope) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

func (s *scope) AddEvent(name string) {
	s.with(func(span *Span) { span.Events = append(span.Events, name) })
}

func (s *scope) SetAttribute(key string, value any) {
	s.with(func(span *Span) { span.Attributes[key] = value })
}

func (s *scope) SetAttributes(attributes map[string]any) {
	for key, value := range attributes {
		s.SetAttribute(key, value)
	}
}
