package domain

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Transport carries JSON-RPC messages between the server and its single
// connected client. Because the server issues nested requests back to the
// client (sampling, elicitation), traffic flows in both directions: Send
// transmits server-originated messages of either kind, and Receive yields
// everything the client writes, requests and responses alike.
type Transport interface {
	// Start begins listening for incoming messages.
	Start(ctx context.Context) error

	// Send transmits a message to the client.
	Send(msg *Message) error

	// Receive returns the channel of incoming messages. The channel is
	// closed when the transport shuts down.
	Receive() <-chan *Message

	// Close gracefully shuts down the transport.
	Close() error
}

// StdioTransport implements Transport over newline-delimited JSON on
// stdin/stdout.
type StdioTransport struct {
	reader  *bufio.Reader
	writer  *bufio.Writer
	msgChan chan *Message
	mu      sync.Mutex
	closed  bool
}

// NewStdioTransport creates a StdioTransport bound to os.Stdin/os.Stdout.
func NewStdioTransport() *StdioTransport {
	return NewStdioTransportWithIO(os.Stdin, os.Stdout)
}

// NewStdioTransportWithIO creates a StdioTransport with custom IO streams.
// This is primarily used for testing.
func NewStdioTransportWithIO(reader io.Reader, writer io.Writer) *StdioTransport {
	return &StdioTransport{
		reader:  bufio.NewReader(reader),
		writer:  bufio.NewWriter(writer),
		msgChan: make(chan *Message, 16),
	}
}

// Start begins reading messages from the input stream.
func (t *StdioTransport) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return fmt.Errorf("transport is closed")
	}
	t.mu.Unlock()

	go t.readLoop(ctx)
	return nil
}

// readLoop continuously reads newline-delimited JSON-RPC messages.
func (t *StdioTransport) readLoop(ctx context.Context) {
	defer close(t.msgChan)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := t.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return
			}
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var msg Message
		if err := json.Unmarshal([]byte(line), &msg); err != nil {
			_ = t.Send(NewErrorResponse(nil, ParseError, "Parse error", err.Error()))
			continue
		}

		if msg.JSONRPC != "2.0" {
			_ = t.Send(NewErrorResponse(msg.ID, InvalidRequest, "Invalid Request", "invalid jsonrpc version"))
			continue
		}

		select {
		case t.msgChan <- &msg:
		case <-ctx.Done():
			return
		}
	}
}

// Send writes a message to the output stream as a single line of JSON.
func (t *StdioTransport) Send(msg *Message) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return fmt.Errorf("transport is closed")
	}

	if msg.JSONRPC == "" {
		msg.JSONRPC = "2.0"
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if strings.Contains(string(data), "\n") {
		return fmt.Errorf("message contains embedded newlines")
	}

	if _, err := t.writer.WriteString(string(data) + "\n"); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := t.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush message: %w", err)
	}

	return nil
}

// Receive returns the channel of incoming messages.
func (t *StdioTransport) Receive() <-chan *Message {
	return t.msgChan
}

// Close marks the transport closed. The message channel is closed by
// readLoop when the input stream ends.
func (t *StdioTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

// HTTPTransport implements Transport using HTTP with SSE:
// a GET endpoint streams server-to-client messages and a POST endpoint
// accepts client-to-server messages.
type HTTPTransport struct {
	host    string
	port    int
	server  *http.Server
	msgChan chan *Message
	mu      sync.Mutex
	closed  bool

	sessions   map[string]*sseSession
	sessionsMu sync.RWMutex
}

// sseSession represents one active SSE connection.
type sseSession struct {
	id       string
	outbound chan *Message
	done     chan struct{}
}

// NewHTTPTransport creates a new HTTPTransport instance.
func NewHTTPTransport(host string, port int) *HTTPTransport {
	return &HTTPTransport{
		host:     host,
		port:     port,
		msgChan:  make(chan *Message, 16),
		sessions: make(map[string]*sseSession),
	}
}

// Start begins the HTTP server.
func (t *HTTPTransport) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return fmt.Errorf("transport is closed")
	}
	t.mu.Unlock()

	mux := http.NewServeMux()
	mux.HandleFunc("/mcp", t.handleSSE)
	mux.HandleFunc("/mcp/message", t.handleMessage)

	t.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", t.host, t.port),
		Handler: mux,
	}

	go func() {
		_ = t.server.ListenAndServe()
	}()

	go func() {
		<-ctx.Done()
		_ = t.Close()
	}()

	return nil
}

// handleSSE serves the server-to-client event stream.
func (t *HTTPTransport) handleSSE(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	session := &sseSession{
		id:       uuid.NewString(),
		outbound: make(chan *Message, 16),
		done:     make(chan struct{}),
	}

	t.sessionsMu.Lock()
	t.sessions[session.id] = session
	t.sessionsMu.Unlock()

	defer func() {
		t.sessionsMu.Lock()
		delete(t.sessions, session.id)
		t.sessionsMu.Unlock()
	}()

	// Tell the client where to POST its messages.
	fmt.Fprintf(w, "event: endpoint\ndata: /mcp/message?sessionId=%s\n\n", session.id)
	flusher.Flush()

	keepAlive := time.NewTicker(30 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-session.done:
			return
		case msg := <-session.outbound:
			data, err := json.Marshal(msg)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: message\ndata: %s\n\n", string(data))
			flusher.Flush()
		case <-keepAlive.C:
			fmt.Fprintf(w, ": keep-alive\n\n")
			flusher.Flush()
		}
	}
}

// handleMessage accepts client-to-server messages via POST.
func (t *HTTPTransport) handleMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		http.Error(w, "Missing sessionId parameter", http.StatusBadRequest)
		return
	}

	t.sessionsMu.RLock()
	session, exists := t.sessions[sessionID]
	t.sessionsMu.RUnlock()
	if !exists {
		http.Error(w, "Invalid session", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var msg Message
	if err := json.Unmarshal(body, &msg); err != nil {
		t.sendToSession(session, NewErrorResponse(nil, ParseError, "Parse error", err.Error()))
		w.WriteHeader(http.StatusAccepted)
		return
	}

	if msg.JSONRPC != "2.0" {
		t.sendToSession(session, NewErrorResponse(msg.ID, InvalidRequest, "Invalid Request", "invalid jsonrpc version"))
		w.WriteHeader(http.StatusAccepted)
		return
	}

	select {
	case t.msgChan <- &msg:
		w.WriteHeader(http.StatusAccepted)
	default:
		t.sendToSession(session, NewErrorResponse(msg.ID, InternalError, "Internal error", "message queue full"))
		w.WriteHeader(http.StatusServiceUnavailable)
	}
}

// sendToSession delivers a message to one session, dropping it when the
// session's buffer is full.
func (t *HTTPTransport) sendToSession(session *sseSession, msg *Message) {
	select {
	case session.outbound <- msg:
	default:
	}
}

// Send transmits a message to all active SSE sessions.
func (t *HTTPTransport) Send(msg *Message) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return fmt.Errorf("transport is closed")
	}
	t.mu.Unlock()

	if msg.JSONRPC == "" {
		msg.JSONRPC = "2.0"
	}

	t.sessionsMu.RLock()
	defer t.sessionsMu.RUnlock()

	if len(t.sessions) == 0 {
		return fmt.Errorf("no active sessions")
	}

	for _, session := range t.sessions {
		t.sendToSession(session, msg)
	}

	return nil
}

// Receive returns the channel of incoming messages.
func (t *HTTPTransport) Receive() <-chan *Message {
	return t.msgChan
}

// Close shuts down the HTTP server and all SSE sessions.
func (t *HTTPTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true

	t.sessionsMu.Lock()
	for _, session := range t.sessions {
		close(session.done)
	}
	t.sessions = make(map[string]*sseSession)
	t.sessionsMu.Unlock()

	close(t.msgChan)

	if t.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return t.server.Shutdown(ctx)
	}

	return nil
}
