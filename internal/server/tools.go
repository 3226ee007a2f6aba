package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the sheet image",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "sheet_scan",
			Description: "Scan an answer sheet image and return the candidate number and the answer letters per column. Omitted arguments fall back to the server configuration.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"candidate_digits": map[string]interface{}{
						"type":        "integer",
						"description": "Number of candidate-number digits printed above the answers (0 for none)",
						"minimum":     0,
					},
					"columns": map[string]interface{}{
						"type":        "integer",
						"description": "Number of printed answer columns",
						"enum":        []int{1, 2, 4},
					},
					"profile": map[string]interface{}{
						"type":        "string",
						"description": "Tuning profile name (see sheet_profiles)",
					},
					"debug_output": map[string]interface{}{
						"type":        "string",
						"description": "Optional path for a PNG overlay showing detected alignment and answer marks",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "sheet_scan_batch",
			Description: "Scan every sheet in the given files and directories in parallel. Failed sheets are reported individually.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"paths": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Sheet files or directories containing sheets",
					},
					"candidate_digits": map[string]interface{}{
						"type":        "integer",
						"description": "Number of candidate-number digits (0 for none)",
						"minimum":     0,
					},
					"columns": map[string]interface{}{
						"type":        "integer",
						"description": "Number of printed answer columns",
						"enum":        []int{1, 2, 4},
					},
					"profile": map[string]interface{}{
						"type":        "string",
						"description": "Tuning profile name",
					},
					"workers": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum sheets scanned at once",
						"minimum":     1,
					},
				},
				"required": []string{"paths"},
			},
		},
		{
			Name:        "sheet_decode",
			Description: "Decode confirmed mark coordinates on a rectified 1250x1900 sheet into a candidate number and answers, without image processing. Points are sorted top to bottom first.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"points": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x": map[string]interface{}{"type": "integer"},
								"y": map[string]interface{}{"type": "integer"},
							},
							"required": []string{"x", "y"},
						},
						"description": "Confirmed mark positions",
					},
					"candidate_digits": map[string]interface{}{
						"type":        "integer",
						"description": "Number of candidate-number digits (0 for none)",
						"minimum":     0,
					},
					"columns": map[string]interface{}{
						"type":        "integer",
						"description": "Number of printed answer columns",
						"enum":        []int{1, 2, 4},
					},
				},
				"required": []string{"points", "columns"},
			},
		},
		{
			Name:        "sheet_info",
			Description: "Report the dimensions, format and orientation of a sheet image before scanning it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "sheet_profiles",
			Description: "List the tuning profiles available to sheet_scan, including blob size filters and thresholds.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
