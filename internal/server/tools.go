package server

import "github.com/ironsheep/chromakey-mcp/internal/colorspace"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

var outputPathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Optional file path to also write the result to (.png, .jpg or .bmp)",
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and aspect ratio.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
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
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},

		// Color Space
		{
			Name: "colorspace_decompose",
			Description: "Split an image into the channels of XYZ, LAB, YCrCb or HSB/HSV and return a 2x2 view of the " +
				"original and each channel as grayscale, capped at 1280x720. HSB/HSV is ordered [original, V, H, S].",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
					"color_space": map[string]interface{}{
						"type":        "string",
						"enum":        colorspace.Flags(),
						"description": "Target color space (case-insensitive, leading dash optional)",
					},
					"output_path": outputPathProperty,
				},
				"required": []string{"path", "color_space"},
			},
		},

		// Green Screen
		{
			Name:        "greenscreen_mask",
			Description: "Return the binary green-screen mask of an image: white where the pixel is backdrop green.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        pathProperty("Absolute path to the green-screen photo"),
					"output_path": outputPathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "greenscreen_remove",
			Description: "Remove the green backdrop of a photo, leaving the subject on black.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        pathProperty("Absolute path to the green-screen photo"),
					"output_path": outputPathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name: "greenscreen_composite",
			Description: "Lift the subject off a green-screen photo and place it, horizontally centered and resting on the " +
				"bottom edge, on a scenic photo. Returns a 2x2 view: [original, subject on white; scenic, composite].",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"scenic_path":      pathProperty("Absolute path to the scenic background photo"),
					"greenscreen_path": pathProperty("Absolute path to the green-screen photo"),
					"match_scenic_size": map[string]interface{}{
						"type":        "boolean",
						"description": "Resize the final view to the scenic photo's dimensions. Default true",
						"default":     true,
					},
					"output_path": outputPathProperty,
				},
				"required": []string{"scenic_path", "greenscreen_path"},
			},
		},
	}
}

func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return reply(req.ID, map[string]interface{}{"tools": GetToolDefinitions()})
}
