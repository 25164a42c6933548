package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the schema for the image path argument shared by every image tool.
func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// regionProperty is the schema for the optional analysis rectangle.
func regionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": "Optional rectangle to analyze instead of the whole image",
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{
				"type":        "integer",
				"description": "Left edge X coordinate (0-based)",
			},
			"y1": map[string]interface{}{
				"type":        "integer",
				"description": "Top edge Y coordinate (0-based)",
			},
			"x2": map[string]interface{}{
				"type":        "integer",
				"description": "Right edge X coordinate (exclusive)",
			},
			"y2": map[string]interface{}{
				"type":        "integer",
				"description": "Bottom edge Y coordinate (exclusive)",
			},
		},
		"required": []string{"x1", "y1", "x2", "y2"},
	}
}

// colorToolSchema builds the input schema shared by the color analysis tools.
func colorToolSchema(countDescription string) map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path": pathProperty(),
			"count": map[string]interface{}{
				"type":        "integer",
				"description": countDescription,
				"default":     5,
			},
			"region": regionProperty(),
		},
		"required": []string{"path"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The decoded image is cached for subsequent color analysis.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Color Analysis
		{
			Name:        "image_exact_colors",
			Description: "List the most frequent exact pixel colors, most frequent first, with pixel counts and percentages. Ties keep the order in which colors first appear.",
			InputSchema: colorToolSchema("Number of colors to return. Default is the configured top_colors"),
		},
		{
			Name:        "image_dominant_colors",
			Description: "Find the dominant colors by downsampling the image and quantizing it to a small palette. Returns palette colors ranked by how many pixels map to each.",
			InputSchema: colorToolSchema("Palette size. Default is the configured top_colors"),
		},
		{
			Name:        "image_analyze_colors",
			Description: "Return both the exact most frequent colors and the dominant palette colors as #rrggbb strings.",
			InputSchema: colorToolSchema("Number of colors in each list. Default is the configured top_colors"),
		},

		// Color Helpers
		{
			Name:        "color_hex_info",
			Description: "Break a #rrggbb color into RGB and HSL components.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"hex": map[string]interface{}{
						"type":        "string",
						"description": "Color in #rrggbb form",
					},
				},
				"required": []string{"hex"},
			},
		},
	}
}

func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
