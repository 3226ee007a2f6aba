// Package server implements the MCP (Model Context Protocol) server for
// answer sheet scanning.
//
// # Protocol
//
// The server communicates over a line-oriented stream using JSON-RPC 2.0,
// normally stdin and stdout:
//   - Input: JSON-RPC requests, one per line
//   - Output: JSON-RPC responses, one per line
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - sheet_scan: Scan one sheet into a candidate number and answers
//   - sheet_scan_batch: Scan files and directories in parallel
//   - sheet_decode: Decode confirmed mark coordinates without an image
//   - sheet_info: Dimensions, format and orientation of a sheet file
//   - sheet_profiles: List tuning profiles
//
// Arguments omitted from sheet_scan and sheet_scan_batch fall back to the
// config.Config the server was created with.
//
// # Image Caching
//
// Sheets are decoded once and cached by path for the lifetime of the
// server, so sheet_info followed by sheet_scan reads the file only once.
// sheet_scan_batch reads files directly and does not populate the cache.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(cfg, scanner.New(nil))
//	if err := srv.Run(os.Stdin, os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
package server
