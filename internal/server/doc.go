// Package server implements the MCP (Model Context Protocol) server for color analysis tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the analysis package
// through the MCP protocol, so MCP-compatible clients can ask for the most
// frequent and the dominant colors of an image file.
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
// Color Analysis:
//   - image_exact_colors: Most frequent exact pixel colors with counts
//   - image_dominant_colors: Palette colors after quantization, with counts
//   - image_analyze_colors: Both lists as hex strings
//
// Color Helpers:
//   - color_hex_info: RGB and HSL breakdown of a #rrggbb string
//
// Every color analysis tool accepts an optional region that restricts the
// analysis to a rectangle of the image. The count argument defaults to the
// configured top_colors value.
//
// # Image Caching
//
// Decoded images are cached by path and reused across tool calls for the
// lifetime of the server process. Each analysis works on its own pixel copy.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string. Failures from image_analyze_colors start with
//     the stage that failed, "exact-frequency" or "palette-quantization".
//
// # Usage
//
//	srv, err := server.New(cfg, log.New(os.Stderr, "", log.LstdFlags))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
