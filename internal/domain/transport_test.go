package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

// TestStdioTransportReceive tests reading newline-delimited messages
func TestStdioTransportReceive(t *testing.T) {
	input := `{"jsonrpc":"2.0","id":1,"method":"tools/list"}` + "\n" +
		`{"jsonrpc":"2.0","id":"s1","result":{}}` + "\n"
	var output bytes.Buffer

	transport := NewStdioTransportWithIO(strings.NewReader(input), &output)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := transport.Start(ctx); err != nil {
		t.Fatalf("Failed to start transport: %v", err)
	}

	first := receiveOrTimeout(t, transport)
	if first.Method != "tools/list" {
		t.Errorf("Expected method 'tools/list', got '%s'", first.Method)
	}

	second := receiveOrTimeout(t, transport)
	if !second.IsResponse() {
		t.Errorf("Expected second message to be a response, got %+v", second)
	}
}

// TestStdioTransportSend tests single-line JSON framing on output
func TestStdioTransportSend(t *testing.T) {
	var output bytes.Buffer
	transport := NewStdioTransportWithIO(strings.NewReader(""), &output)

	msg, err := NewResponse(1, map[string]interface{}{"tools": []string{}})
	if err != nil {
		t.Fatalf("Failed to build response: %v", err)
	}

	if err := transport.Send(msg); err != nil {
		t.Fatalf("Failed to send message: %v", err)
	}

	written := output.String()
	if !strings.HasSuffix(written, "\n") {
		t.Error("Expected output to be newline-terminated")
	}
	if strings.Count(written, "\n") != 1 {
		t.Errorf("Expected exactly one line, got %d", strings.Count(written, "\n"))
	}

	var decoded Message
	if err := json.Unmarshal([]byte(strings.TrimSpace(written)), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if decoded.JSONRPC != "2.0" {
		t.Errorf("Expected jsonrpc '2.0' on the wire, got '%s'", decoded.JSONRPC)
	}
}

// TestStdioTransportParseError tests that invalid JSON produces an error reply
// without killing the read loop
func TestStdioTransportParseError(t *testing.T) {
	input := "this is not json\n" +
		`{"jsonrpc":"2.0","id":2,"method":"ping"}` + "\n"
	var output bytes.Buffer

	transport := NewStdioTransportWithIO(strings.NewReader(input), &output)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := transport.Start(ctx); err != nil {
		t.Fatalf("Failed to start transport: %v", err)
	}

	msg := receiveOrTimeout(t, transport)
	if msg.Method != "ping" {
		t.Errorf("Expected the valid message to survive, got method '%s'", msg.Method)
	}

	var reply Message
	line := strings.SplitN(output.String(), "\n", 2)[0]
	if err := json.Unmarshal([]byte(line), &reply); err != nil {
		t.Fatalf("Expected a parse error reply, got unparseable output: %v", err)
	}
	if reply.Error == nil || reply.Error.Code != ParseError {
		t.Errorf("Expected ParseError reply, got %+v", reply.Error)
	}
}

// TestStdioTransportRejectsWrongVersion tests the jsonrpc version check
func TestStdioTransportRejectsWrongVersion(t *testing.T) {
	input := `{"jsonrpc":"1.0","id":3,"method":"ping"}` + "\n"
	var output bytes.Buffer

	transport := NewStdioTransportWithIO(strings.NewReader(input), &output)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := transport.Start(ctx); err != nil {
		t.Fatalf("Failed to start transport: %v", err)
	}

	select {
	case msg, ok := <-transport.Receive():
		if ok {
			t.Errorf("Expected no message delivered, got %+v", msg)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("Timed out waiting for channel close")
	}

	var reply Message
	line := strings.SplitN(output.String(), "\n", 2)[0]
	if err := json.Unmarshal([]byte(line), &reply); err != nil {
		t.Fatalf("Expected an error reply, got unparseable output: %v", err)
	}
	if reply.Error == nil || reply.Error.Code != InvalidRequest {
		t.Errorf("Expected InvalidRequest reply, got %+v", reply.Error)
	}
}

// TestStdioTransportSendAfterClose tests the closed-transport guard
func TestStdioTransportSendAfterClose(t *testing.T) {
	transport := NewStdioTransportWithIO(strings.NewReader(""), &bytes.Buffer{})

	if err := transport.Close(); err != nil {
		t.Fatalf("Failed to close transport: %v", err)
	}

	msg := NewErrorResponse(nil, InternalError, "Internal error", nil)
	if err := transport.Send(msg); err == nil {
		t.Error("Expected error sending on a closed transport, got nil")
	}
}

// receiveOrTimeout pulls the next message or fails the test.
func receiveOrTimeout(t *testing.T, transport Transport) *Message {
	t.Helper()
	select {
	case msg, ok := <-transport.Receive():
		if !ok {
			t.Fatal("Transport channel closed unexpectedly")
		}
		return msg
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for message")
		return nil
	}
}
