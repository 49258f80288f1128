// Package server implements the MCP (Model Context Protocol) server for the
// chroma-key and color space tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Color Space:
//   - colorspace_decompose: Original plus three normalized channels, tiled 2x2
//
// Green Screen:
//   - greenscreen_mask: Binary backdrop mask
//   - greenscreen_remove: Subject on black
//   - greenscreen_composite: Subject placed on a scenic photo, tiled 2x2
//
// Image results are returned as base64 PNG. Every image tool accepts an
// optional output_path that also writes the result to disk.
//
// # Image Caching
//
// Loaded images are cached by path for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, e.g. "empty foreground: ..." or
//     "invalid argument: unknown color space ..."
package server
