package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/ironsheep/chromakey-mcp/internal/imaging"
	"github.com/ironsheep/chromakey-mcp/internal/pipeline"
)

// Version is reported in the initialize handshake.
var Version = "0.1.0"

const (
	jsonrpcVersion  = "2.0"
	protocolVersion = "2024-11-05"

	// maxMessageSize bounds one request line. Tool arguments are paths, so
	// anything near this is a client error.
	maxMessageSize = 1 << 20
)

// JSON-RPC error codes used by the server.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeToolFailed     = -32000
)

// Server answers MCP requests over newline-delimited JSON-RPC. Requests are
// handled one at a time in arrival order.
type Server struct {
	cache    *imaging.ImageCache
	pipeline *pipeline.Pipeline

	// out is the writer of the Serve call in progress, nil outside Serve.
	out *messageWriter
}

// MCPRequest is an incoming JSON-RPC request or notification. A
// notification has no ID and never gets a response.
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse carries either Result or Error for the request with the same ID.
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError is the error member of a failed response.
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// MCPNotification is a server-initiated message, such as progress for a
// long tool call.
type MCPNotification struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

func reply(id, result interface{}) *MCPResponse {
	return &MCPResponse{JSONRPC: jsonrpcVersion, ID: id, Result: result}
}

func failure(id interface{}, code int, message string, data interface{}) *MCPResponse {
	return &MCPResponse{
		JSONRPC: jsonrpcVersion,
		ID:      id,
		Error:   &MCPError{Code: code, Message: message, Data: data},
	}
}

// New creates a server with pipeline logging discarded.
func New() *Server {
	return NewWithLogger(nil)
}

// NewWithLogger creates a server whose pipeline reports stage sizes to
// logger. A nil logger discards them.
func NewWithLogger(logger *log.Logger) *Server {
	return &Server{
		cache:    imaging.NewImageCache(),
		pipeline: pipeline.New(logger),
	}
}

// Run serves stdin and stdout until stdin closes.
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// messageWriter serializes responses and notifications onto one stream.
type messageWriter struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func (m *messageWriter) send(msg interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enc.Encode(msg); err != nil {
		log.Printf("Failed to write message: %v", err)
	}
}

// Serve reads one JSON-RPC message per line from r until EOF and writes
// responses and notifications to w, one per line. A line that is not JSON
// is answered with a parse error carrying a null ID.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	s.out = &messageWriter{enc: json.NewEncoder(w)}
	defer func() { s.out = nil }()

	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, 0, 64*1024), maxMessageSize)

	for lines.Scan() {
		line := bytes.TrimSpace(lines.Bytes())
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.out.send(failure(nil, codeParseError, "Parse error", err.Error()))
			continue
		}

		if resp := s.handleRequest(&req); resp != nil {
			s.out.send(resp)
		}
	}

	if err := lines.Err(); err != nil {
		return fmt.Errorf("failed to read request: %w", err)
	}
	return nil
}

// notify sends n on the current Serve stream. Outside Serve it is a no-op.
func (s *Server) notify(n MCPNotification) {
	if s.out != nil {
		s.out.send(n)
	}
}

func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return reply(req.ID, s.initializeResult())
	case "ping":
		return reply(req.ID, map[string]interface{}{})
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	}

	if req.ID == nil {
		// notifications/initialized, notifications/cancelled and any
		// other notification need no answer
		return nil
	}
	return failure(req.ID, codeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method), nil)
}

func (s *Server) initializeResult() map[string]interface{} {
	return map[string]interface{}{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]interface{}{
			"tools": map[string]interface{}{},
		},
		"serverInfo": map[string]interface{}{
			"name":    "chromakey-mcp",
			"version": Version,
		},
	}
}
