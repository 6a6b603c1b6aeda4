package websocket

import (
	"testing"

	"github.com/xpanvictor/rehearse/pkg/Logger"
)

func TestLifecycleTransitions(t *testing.T) {
	lc := newLifecycle(Logger.NewNop())
	s := &Session{state: lc}

	if s.State() != StateIdle {
		t.Fatalf("Expected idle, got %s", s.State())
	}
	if err := s.transition(evTranscribe); err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if err := s.transition(evRespond); err != nil {
		t.Fatalf("respond: %v", err)
	}
	if s.State() != StateResponding {
		t.Errorf("Expected responding, got %s", s.State())
	}
	s.settle()
	if s.State() != StateIdle {
		t.Errorf("Expected idle after settle, got %s", s.State())
	}
	// settling an idle session is a no-op
	s.settle()

	if err := s.transition(evRespond); err == nil {
		t.Error("Expected respond from idle to be rejected")
	}

	if err := s.transition(evReview); err != nil {
		t.Fatalf("review: %v", err)
	}
	if err := s.transition(evClose); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := s.transition(evTranscribe); err == nil {
		t.Error("Expected closed session to reject work")
	}
}

func TestDecodeAudio(t *testing.T) {
	cases := map[string]string{
		"aGVsbG8=":                        "hello",
		"aGVsbG8":                         "hello",
		"data:audio/webm;base64,aGVsbG8=": "hello",
	}
	for in, want := range cases {
		got, err := decodeAudio(in)
		if err != nil {
			t.Errorf("decodeAudio(%q) returned error: %v", in, err)
			continue
		}
		if string(got) != want {
			t.Errorf("decodeAudio(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := decodeAudio("%%%"); err == nil {
		t.Error("Expected error for invalid input")
	}
}
