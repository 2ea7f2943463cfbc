package server

import "fmt"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

func intProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

func formatProp() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Pixel format of the working buffer. Default rgba",
		"enum":        []string{FormatRGB, FormatRGBA, FormatLuma, FormatLumaAlpha},
		"default":     FormatRGBA,
	}
}

// prepareProperties is shared by texture_prepare and the items of
// texture_prepare_batch.
func prepareProperties() map[string]interface{} {
	return map[string]interface{}{
		"path":   stringProp("Absolute path to the source image"),
		"format": formatProp(),
		"width":  intProp("Optional target width; requires height"),
		"height": intProp("Optional target height; requires width"),
		"output": stringProp("Output file (.png, .jpg or .bmp)"),
		"matte":  stringProp("Background color \"#rrggbb\" behind transparent pixels for outputs without alpha. Default #ffffff"),
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Preparation
		{
			Name:        "texture_prepare",
			Description: "Load an image into a uniform pixel format, optionally resize it with a Catmull-Rom filter, and write the result.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": prepareProperties(),
				"required":   []string{"path", "output"},
			},
		},
		{
			Name:        "texture_prepare_batch",
			Description: "Prepare several independent images concurrently. Results are returned in input order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"format": formatProp(),
					"inputs": map[string]interface{}{
						"type":        "array",
						"description": "Images to prepare; each item may override format",
						"items": map[string]interface{}{
							"type":       "object",
							"properties": prepareProperties(),
							"required":   []string{"path", "output"},
						},
					},
				},
				"required": []string{"inputs"},
			},
		},

		// Guided synthesis
		{
			Name:        "texture_guide_map",
			Description: "Derive a blurred greyscale guide map from an image: optional linear resize, Gaussian blur, desaturation.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   stringProp("Absolute path to the source image"),
					"format": formatProp(),
					"width":  intProp("Optional guide width; requires height"),
					"height": intProp("Optional guide height; requires width"),
					"blur_sigma": map[string]interface{}{
						"type":        "number",
						"description": "Gaussian blur sigma in pixels. 0 disables the blur",
						"default":     0,
					},
					"output": stringProp("Output file (.png, .jpg or .bmp)"),
				},
				"required": []string{"path", "output"},
			},
		},

		// Multi-resolution
		{
			Name:        "texture_pyramid",
			Description: "Build a same-resolution Gaussian pyramid and write each level as level_NN.png, coarsest first. The last level is the original.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":       stringProp("Absolute path to the source image"),
					"format":     formatProp(),
					"width":      intProp("Optional resize width before decomposition; requires height"),
					"height":     intProp("Optional resize height before decomposition; requires width"),
					"levels":     intProp(fmt.Sprintf("Number of levels, at most %d. 0 derives floor(log2(max(width, height)))", MaxPyramidLevels)),
					"output_dir": stringProp("Directory that receives the level images"),
				},
				"required": []string{"path", "output_dir"},
			},
		},

		// Tone
		{
			Name:        "texture_match_histogram",
			Description: "Remap the first channel of the source so its intensity distribution matches the target, and write the flat grey result.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"source": stringProp("Absolute path to the image to remap"),
					"target": stringProp("Absolute path to the image whose distribution is matched"),
					"format": formatProp(),
					"output": stringProp("Output file (.png, .jpg or .bmp)"),
				},
				"required": []string{"source", "target", "output"},
			},
		},
		{
			Name:        "texture_histogram",
			Description: "Return the 256-bucket first-channel histogram and normalized cumulative distribution of an image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   stringProp("Absolute path to the image"),
					"format": formatProp(),
				},
				"required": []string{"path"},
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
