package server

import (
	"encoding/json"
	"fmt"
	"image"

	"github.com/ironsheep/chromakey-mcp/internal/chromakey"
	"github.com/ironsheep/chromakey-mcp/internal/colorspace"
	"github.com/ironsheep/chromakey-mcp/internal/imaging"
	"github.com/ironsheep/chromakey-mcp/internal/pipeline"
)

// ToolCallParams is the params object of a tools/call request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "greenscreen_composite").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`

	// Meta carries the optional progress token. Only greenscreen_composite
	// reports progress.
	Meta *requestMeta `json:"_meta,omitempty"`
}

type requestMeta struct {
	ProgressToken interface{} `json:"progressToken,omitempty"`
}

// textContent is one item of a tool result's content list.
type textContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// toolResult is the result of a successful tools/call: the tool's own result
// as indented JSON text.
type toolResult struct {
	Content []textContent `json:"content"`
}

// progressFunc reports that step of total is done.
type progressFunc func(step, total int, desc string)

// handleToolsCall runs the named tool. Malformed params answer
// codeInvalidParams; any tool error answers codeToolFailed with the error
// text as data.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return failure(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments, s.progress(params.Meta))
	if err != nil {
		return failure(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	text, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return failure(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}
	return reply(req.ID, &toolResult{Content: []textContent{{Type: "text", Text: string(text)}}})
}

// progress returns a reporter sending notifications/progress for the token
// in meta, or nil when the client did not ask for progress.
func (s *Server) progress(meta *requestMeta) progressFunc {
	if meta == nil || meta.ProgressToken == nil {
		return nil
	}
	token := meta.ProgressToken
	return func(step, total int, desc string) {
		s.notify(MCPNotification{
			JSONRPC: jsonrpcVersion,
			Method:  "notifications/progress",
			Params: map[string]interface{}{
				"progressToken": token,
				"progress":      step,
				"total":         total,
				"message":       desc,
			},
		})
	}
}

func (s *Server) executeTool(name string, args json.RawMessage, progress progressFunc) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "colorspace_decompose":
		return s.handleColorspaceDecompose(args)
	case "greenscreen_mask":
		return s.handleGreenscreenMask(args)
	case "greenscreen_remove":
		return s.handleGreenscreenRemove(args)
	case "greenscreen_composite":
		return s.handleGreenscreenComposite(args, progress)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// respondImage encodes img and, when outputPath is set, also writes it
// there. A cached photo at outputPath is dropped so later calls read the
// new file.
func (s *Server) respondImage(img image.Image, outputPath string) (*imaging.ImageResult, error) {
	if outputPath != "" {
		if err := imaging.Save(outputPath, img); err != nil {
			return nil, err
		}
		s.cache.Evict(outputPath)
	}
	res, err := imaging.EncodeImage(img)
	if err != nil {
		return nil, err
	}
	res.OutputPath = outputPath
	return res, nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Color Space Handlers ===

// decomposeResult names the tiles of the view in reading order.
type decomposeResult struct {
	*imaging.ImageResult
	ColorSpace string    `json:"color_space"`
	Tiles      [4]string `json:"tiles"`
}

type colorspaceDecomposeArgs struct {
	Path       string `json:"path"`
	ColorSpace string `json:"color_space"`
	OutputPath string `json:"output_path,omitempty"`
}

func (s *Server) handleColorspaceDecompose(args json.RawMessage) (interface{}, error) {
	var a colorspaceDecomposeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	space, err := colorspace.Parse(a.ColorSpace)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	view, err := s.pipeline.Decompose(img, space)
	if err != nil {
		return nil, err
	}
	res, err := s.respondImage(view, a.OutputPath)
	if err != nil {
		return nil, err
	}
	return &decomposeResult{ImageResult: res, ColorSpace: space.String(), Tiles: pipeline.Layout(space)}, nil
}

// === Green Screen Handlers ===

type greenscreenArgs struct {
	Path       string `json:"path"`
	OutputPath string `json:"output_path,omitempty"`
}

func (s *Server) handleGreenscreenMask(args json.RawMessage) (interface{}, error) {
	var a greenscreenArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return s.respondImage(chromakey.Segment(img, chromakey.DefaultGreenBounds), a.OutputPath)
}

func (s *Server) handleGreenscreenRemove(args json.RawMessage) (interface{}, error) {
	var a greenscreenArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	removed, err := chromakey.RemoveGreen(img)
	if err != nil {
		return nil, err
	}
	return s.respondImage(removed, a.OutputPath)
}

type greenscreenCompositeArgs struct {
	ScenicPath      string `json:"scenic_path"`
	GreenscreenPath string `json:"greenscreen_path"`
	OutputPath      string `json:"output_path,omitempty"`
	MatchScenicSize *bool  `json:"match_scenic_size,omitempty"`
}

func (s *Server) handleGreenscreenComposite(args json.RawMessage, progress progressFunc) (interface{}, error) {
	var a greenscreenCompositeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	opts := pipeline.CompositeOptions{MatchScenicSize: true, Progress: progress}
	if a.MatchScenicSize != nil {
		opts.MatchScenicSize = *a.MatchScenicSize
	}

	scenic, err := s.cache.Load(a.ScenicPath)
	if err != nil {
		return nil, err
	}
	greenscreen, err := s.cache.Load(a.GreenscreenPath)
	if err != nil {
		return nil, err
	}
	res, err := s.pipeline.Composite(scenic, greenscreen, opts)
	if err != nil {
		return nil, err
	}
	return s.respondImage(res.View, a.OutputPath)
}
