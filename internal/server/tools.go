package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// sceneProperties are the inputs shared by every scene-building tool.
func sceneProperties() map[string]interface{} {
	return map[string]interface{}{
		"shapes": map[string]interface{}{
			"type":        "array",
			"items":       map[string]interface{}{"type": "string"},
			"description": "Exact shape sequence in draw order (e.g. [\"triangle\", \"circle\"]). Overrides choices/min_shapes/max_shapes.",
		},
		"choices": map[string]interface{}{
			"type":        "array",
			"items":       map[string]interface{}{"type": "string"},
			"description": "Eligible shape types for a random scene. Defaults to the server configuration.",
		},
		"min_shapes": map[string]interface{}{
			"type":        "integer",
			"description": "Minimum number of shapes in a random scene",
		},
		"max_shapes": map[string]interface{}{
			"type":        "integer",
			"description": "Maximum number of shapes in a random scene",
		},
		"nominal_size": map[string]interface{}{
			"type":        "integer",
			"description": "Nominal shape size in pixels; controls the scale of every shape",
		},
		"seed": map[string]interface{}{
			"type":        "integer",
			"description": "Random seed. The same seed and inputs always give the same scene.",
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	generate := sceneProperties()
	generate["canvas_size"] = map[string]interface{}{
		"type":        "integer",
		"description": "Output resolution (square canvas, pixels)",
	}
	generate["include_preview"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Also return a colored preview of the instances over the image",
		"default":     false,
	}
	generate["preview_scale"] = map[string]interface{}{
		"type":        "number",
		"description": "Scale factor for the preview. Default 1.0",
		"default":     1.0,
	}

	return []Tool{
		{
			Name:        "shapes_list_types",
			Description: "List the supported shape types with their class ids and drawing category (round or polygon).",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "shapes_describe_scene",
			Description: "Build a scene and return its shape descriptors (type, class id, transform, canvas-space geometry) without rasterizing it.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": sceneProperties(),
			},
		},
		{
			Name:        "shapes_inspect_sample",
			Description: "Read a sample written by 'shapegen generate' back from disk, check that its instance and class masks agree, and recompute its instance statistics.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Sample directory (e.g. dataset/sample_00042)",
					},
					"reload": map[string]interface{}{
						"type":        "boolean",
						"description": "Drop cached masks for this sample and read them again",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "shapes_generate",
			Description: "Generate a labeled image: the picture, a 16-bit instance mask with dense ids, a 16-bit class mask, and per-instance statistics. Images are base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": generate,
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
