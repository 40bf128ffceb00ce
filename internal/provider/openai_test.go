package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestChatClientGenerate(t *testing.T) {
	var gotAuth, gotModel, gotContent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
			return
		}
		gotModel = req.Model
		if len(req.Messages) == 1 {
			gotContent = req.Messages[0].Content
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "  evaluation text  "}},
			},
		})
	}))
	defer server.Close()

	client := NewMistral("secret-token", "", zap.NewNop())
	client.URL = server.URL

	text, err := client.Generate(context.Background(), "evaluate this resume")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if text != "evaluation text" {
		t.Fatalf("unexpected text: %q", text)
	}
	if gotAuth != "Bearer secret-token" {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
	if gotModel != defaultMistralModel {
		t.Fatalf("unexpected model: %q", gotModel)
	}
	if gotContent != "evaluate this resume" {
		t.Fatalf("unexpected message content: %q", gotContent)
	}
}

func TestChatClientBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewOpenRouter("token", "", zap.NewNop())
	client.URL = server.URL

	if _, err := client.Generate(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

func TestChatClientMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	client := NewOpenRouter("token", "", zap.NewNop())
	client.URL = server.URL

	if _, err := client.Generate(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error on malformed payload")
	}
}

func TestChatClientNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	client := NewMistral("token", "", zap.NewNop())
	client.URL = server.URL

	if _, err := client.Generate(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error when response has no choices")
	}
}

func TestChatClientEmptyPrompt(t *testing.T) {
	client := NewOpenRouter("token", "", zap.NewNop())

	if _, err := client.Generate(context.Background(), "   "); err == nil {
		t.Fatal("expected error on empty prompt")
	}
}

func TestChatClientDefaults(t *testing.T) {
	or := NewOpenRouter("token", "", zap.NewNop())
	if or.Name() != "OpenRouter" {
		t.Fatalf("unexpected name: %q", or.Name())
	}
	if or.model != defaultOpenRouterModel {
		t.Fatalf("unexpected default model: %q", or.model)
	}

	mistral := NewMistral("token", "custom-model", zap.NewNop())
	if mistral.Name() != "Mistral" {
		t.Fatalf("unexpected name: %q", mistral.Name())
	}
	if mistral.model != "custom-model" {
		t.Fatalf("expected custom model to be kept, got %q", mistral.model)
	}
}
