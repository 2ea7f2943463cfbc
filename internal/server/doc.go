// Package server implements the MCP (Model Context Protocol) server for texture
// preprocessing tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the preprocessing
// pipeline (format conversion, resizing, guide maps, pyramids and histogram
// matching) to MCP-compatible clients. Every tool reads images from disk and
// writes its results back to disk; no image data travels over the protocol.
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
//   - texture_prepare: Convert and optionally resize one image
//   - texture_prepare_batch: Prepare several images concurrently
//   - texture_guide_map: Derive a blurred greyscale guide
//   - texture_pyramid: Write a same-resolution Gaussian pyramid
//   - texture_match_histogram: Match first-channel tone to a target
//   - texture_histogram: Report a first-channel histogram and CDF
//
// # Pixel Formats
//
// Each tool accepts a "format" argument (rgb, rgba, luma, luma_alpha). The
// format selects a pipeline instantiation once per call; the pixel loops
// themselves never branch on format.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv := server.New(server.Config{})
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
