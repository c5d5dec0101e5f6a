// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama provides the HTTP client for communicating with the Ollama API.
package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// =============================================================================
// CONFIG TESTS
// =============================================================================

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BaseURL != "http://127.0.0.1:11434" {
		t.Errorf("BaseURL = %q, want default", cfg.BaseURL)
	}
	if cfg.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want 15s", cfg.Timeout)
	}
	if cfg.Model == "" {
		t.Error("Expected a default model")
	}
}

func TestNewClientWithConfigFillsDefaults(t *testing.T) {
	client := NewClientWithConfig(&ClientConfig{BaseURL: "http://example.test"})

	if client.config.BaseURL != "http://example.test" {
		t.Errorf("BaseURL = %q, want http://example.test", client.config.BaseURL)
	}
	if client.config.Timeout == 0 {
		t.Error("Expected timeout default to be filled in")
	}
	if client.config.Model == "" {
		t.Error("Expected model default to be filled in")
	}
}

func TestNewClientWithNilConfig(t *testing.T) {
	client := NewClientWithConfig(nil)
	if client.config.BaseURL == "" {
		t.Error("Expected defaults with nil config")
	}
}

// =============================================================================
// HEALTH CHECK TESTS
// =============================================================================

func TestCheckRunning(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})
	if err := client.CheckRunning(context.Background()); err != nil {
		t.Errorf("CheckRunning failed against healthy server: %v", err)
	}
}

func TestCheckRunningNotReachable(t *testing.T) {
	// Closed server: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: url, Timeout: time.Second})
	err := client.CheckRunning(context.Background())
	if !errors.Is(err, ErrNotRunning) {
		t.Errorf("Expected ErrNotRunning, got %v", err)
	}
}

// =============================================================================
// CORRECTION CHECK TESTS
// =============================================================================

func TestCorrectionCheck(t *testing.T) {
	var gotReq ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("Unexpected path %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		resp := ChatResponse{
			Model:   gotReq.Model,
			Done:    true,
			Message: Message{Role: "assistant", Content: `{"corrected_text": "We girls are going to the park", "is_correction": true}`},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL, Model: "test-model"})
	result, err := client.CorrectionCheck(context.Background(), "We girls are going too the park", "We girls are going TO")
	if err != nil {
		t.Fatalf("CorrectionCheck failed: %v", err)
	}

	if !result.IsCorrection {
		t.Error("Expected IsCorrection true")
	}
	if result.CorrectedText != "We girls are going to the park" {
		t.Errorf("CorrectedText = %q", result.CorrectedText)
	}

	// The request must be a non-streaming JSON-format chat call carrying
	// both texts.
	if gotReq.Stream {
		t.Error("Correction checks must not stream")
	}
	if gotReq.Format != "json" {
		t.Errorf("Format = %q, want json", gotReq.Format)
	}
	if gotReq.Model != "test-model" {
		t.Errorf("Model = %q, want test-model", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 {
		t.Fatalf("Expected 2 messages (system + user), got %d", len(gotReq.Messages))
	}
	if gotReq.Messages[0].Role != "system" {
		t.Errorf("First message role = %q, want system", gotReq.Messages[0].Role)
	}
}

func TestCorrectionCheckNotACorrection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := ChatResponse{
			Done:    true,
			Message: Message{Role: "assistant", Content: `{"corrected_text": "", "is_correction": false}`},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})
	result, err := client.CorrectionCheck(context.Background(), "hello there", "how are you")
	if err != nil {
		t.Fatalf("CorrectionCheck failed: %v", err)
	}
	if result.IsCorrection {
		t.Error("Expected IsCorrection false")
	}
}

func TestCorrectionCheckCancelled(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the request body so the server can detect the client
		// disconnect; otherwise r.Context() is never cancelled and Close hangs.
		io.Copy(io.Discard, r.Body)
		close(started)
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		<-started
		cancel()
	}()

	_, err := client.CorrectionCheck(ctx, "prev", "typed")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestCorrectionCheckModelNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})
	_, err := client.CorrectionCheck(context.Background(), "prev", "typed")
	if !errors.Is(err, ErrModelNotFound) {
		t.Errorf("Expected ErrModelNotFound, got %v", err)
	}
}

// =============================================================================
// RESULT PARSING TESTS
// =============================================================================

func TestParseCorrectionResult(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    CorrectionResult
		wantErr bool
	}{
		{
			"plain json",
			`{"corrected_text": "fixed", "is_correction": true}`,
			CorrectionResult{CorrectedText: "fixed", IsCorrection: true},
			false,
		},
		{
			"fenced json",
			"```json\n{\"corrected_text\": \"fixed\", \"is_correction\": true}\n```",
			CorrectionResult{CorrectedText: "fixed", IsCorrection: true},
			false,
		},
		{
			"surrounding whitespace",
			"  {\"corrected_text\": \"\", \"is_correction\": false}\n",
			CorrectionResult{},
			false,
		},
		{
			"malformed",
			"I think this is a correction",
			CorrectionResult{},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCorrectionResult(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error")
				}
				var clientErr *ClientError
				if !errors.As(err, &clientErr) || clientErr.Type != ErrTypeInvalidResponse {
					t.Errorf("Expected ErrTypeInvalidResponse, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if *got != tt.want {
				t.Errorf("Got %+v, want %+v", *got, tt.want)
			}
		})
	}
}
