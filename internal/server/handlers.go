package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ironsheep/sheet-scanner/internal/batch"
	"github.com/ironsheep/sheet-scanner/internal/config"
	"github.com/ironsheep/sheet-scanner/internal/geometry"
	"github.com/ironsheep/sheet-scanner/internal/imaging"
	"github.com/ironsheep/sheet-scanner/internal/scanner"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "sheet_scan", "sheet_info").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "sheet_scan":
		return s.handleSheetScan(args)
	case "sheet_scan_batch":
		return s.handleSheetScanBatch(args)
	case "sheet_decode":
		return s.handleSheetDecode(args)
	case "sheet_info":
		return s.handleSheetInfo(args)
	case "sheet_profiles":
		return s.handleSheetProfiles(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// scanSettings are the per-call overrides shared by the scan tools. Nil
// and empty values fall back to the server configuration.
type scanSettings struct {
	CandidateDigits *int   `json:"candidate_digits"`
	Columns         *int   `json:"columns"`
	Profile         string `json:"profile"`
}

func (s *Server) scanOptions(settings scanSettings) (scanner.Options, error) {
	opts := scanner.Options{
		CandidateDigits: s.config.CandidateDigits,
		Columns:         s.config.Columns,
	}
	if settings.CandidateDigits != nil {
		opts.CandidateDigits = *settings.CandidateDigits
	}
	if settings.Columns != nil {
		opts.Columns = *settings.Columns
	}

	name := settings.Profile
	if name == "" {
		name = s.config.Profile
	}
	profile, err := s.config.LookupProfile(name)
	if err != nil {
		return scanner.Options{}, err
	}
	opts.Profile = profile
	return opts, nil
}

type sheetScanArgs struct {
	scanSettings
	Path        string `json:"path"`
	DebugOutput string `json:"debug_output"`
}

func (s *Server) handleSheetScan(args json.RawMessage) (interface{}, error) {
	var a sheetScanArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	opts, err := s.scanOptions(a.scanSettings)
	if err != nil {
		return nil, err
	}
	opts.Debug = a.DebugOutput != ""
	opts.DebugPath = a.DebugOutput

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return s.scanner.ScanImage(img, opts)
}

type sheetScanBatchArgs struct {
	scanSettings
	Paths   []string `json:"paths"`
	Workers int      `json:"workers"`
}

func (s *Server) handleSheetScanBatch(args json.RawMessage) (interface{}, error) {
	var a sheetScanBatchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Paths) == 0 {
		return nil, fmt.Errorf("paths is required")
	}
	if a.Workers == 0 {
		a.Workers = s.config.Workers
	}

	opts, err := s.scanOptions(a.scanSettings)
	if err != nil {
		return nil, err
	}

	files, err := batch.Expand(a.Paths)
	if err != nil {
		return nil, err
	}
	return batch.Run(context.Background(), s.scanner, files, batch.Options{
		Workers: a.Workers,
		Scan:    opts,
	})
}

type sheetDecodeArgs struct {
	Points          []geometry.IntPoint `json:"points"`
	CandidateDigits int                 `json:"candidate_digits"`
	Columns         int                 `json:"columns"`
}

func (s *Server) handleSheetDecode(args json.RawMessage) (interface{}, error) {
	var a sheetDecodeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.CandidateDigits < 0 {
		return nil, fmt.Errorf("candidate_digits must not be negative")
	}

	points := make([]geometry.IntPoint, len(a.Points))
	copy(points, a.Points)
	scanner.SortPoints(points)
	return scanner.Decode(points, a.CandidateDigits, a.Columns)
}

type sheetInfoArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleSheetInfo(args json.RawMessage) (interface{}, error) {
	var a sheetInfoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	return imaging.LoadSheetInfo(s.cache, a.Path)
}

// ProfilesResult lists the profiles a scan can select.
type ProfilesResult struct {
	Default  string           `json:"default"`
	Profiles []config.Profile `json:"profiles"`
}

func (s *Server) handleSheetProfiles(args json.RawMessage) (interface{}, error) {
	def := s.config.Profile
	if def == "" {
		def = config.DefaultProfile
	}
	return &ProfilesResult{
		Default:  def,
		Profiles: s.config.AllProfiles(),
	}, nil
}
