package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSendTreatsSuccessStatusesAsDelivered(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusCreated, http.StatusConflict, http.StatusUnprocessableEntity} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))
		gateway := NewGateway(Config{BaseURL: server.URL, Token: "token", OwnerID: "owner-1"}, nil)

		if !gateway.Send(context.Background(), "msg-1", "ada@example.com", "Ada", "123456") {
			t.Errorf("status %d should count as delivered", status)
		}
		server.Close()
	}
}

func TestSendTreatsServerErrorsAsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()
	gateway := NewGateway(Config{BaseURL: server.URL, Token: "token", OwnerID: "owner-1"}, nil)

	if gateway.Send(context.Background(), "msg-1", "ada@example.com", "Ada", "123456") {
		t.Fatal("500 must count as a failed delivery")
	}
}

func TestSendTreatsTransportErrorsAsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()
	gateway := NewGateway(Config{BaseURL: server.URL, Token: "token", OwnerID: "owner-1"}, nil)

	if gateway.Send(context.Background(), "msg-1", "ada@example.com", "Ada", "123456") {
		t.Fatal("transport error must count as a failed delivery")
	}
}

func TestSendRequestBodyAndHeaders(t *testing.T) {
	var captured sendRequest
	var authorization string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorization = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decoding request body failed: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()
	gateway := NewGateway(Config{BaseURL: server.URL, Token: "secret", OwnerID: "owner-1"}, nil)

	if !gateway.Send(context.Background(), "msg-1", "ada@example.com", "Ada", "123456") {
		t.Fatal("send failed")
	}
	if authorization != "Bearer secret" {
		t.Fatalf("unexpected authorization header %q", authorization)
	}
	if captured.ID != "msg-1" || captured.OwnerID != "owner-1" || captured.Email != "ada@example.com" {
		t.Fatalf("unexpected request payload %+v", captured)
	}
	if !strings.Contains(captured.Message, "Ada") || !strings.Contains(captured.Message, "123456") {
		t.Fatalf("message must carry name and confirmation code, got %q", captured.Message)
	}
}
