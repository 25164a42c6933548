package server

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/ironsheep/palette-mcp/internal/analysis"
	"github.com/ironsheep/palette-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_analyze_colors").
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
		s.logger.Printf("tool %s failed: %v", params.Name, err)
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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads and optionally crops the image
//  4. Calls the analysis package
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Color Analysis
	case "image_exact_colors":
		return s.handleImageExactColors(args)
	case "image_dominant_colors":
		return s.handleImageDominantColors(args)
	case "image_analyze_colors":
		return s.handleImageAnalyzeColors(args)

	// Color Helpers
	case "color_hex_info":
		return s.handleColorHexInfo(args)

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
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
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

// === Color Analysis Handlers ===

type colorAnalysisArgs struct {
	Path   string          `json:"path"`
	Count  int             `json:"count"`
	Region *imaging.Region `json:"region,omitempty"`
}

// parseColorArgs decodes the shared arguments and applies the default count.
func (s *Server) parseColorArgs(args json.RawMessage) (colorAnalysisArgs, error) {
	var a colorAnalysisArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return a, err
	}
	if a.Count == 0 {
		a.Count = s.cfg.TopColors
	}
	return a, nil
}

// loadPixels loads the image at path through the cache, crops it to region
// when one is given, and returns a private pixel buffer.
func (s *Server) loadPixels(path string, region *imaging.Region) (*imaging.PixelImage, error) {
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	if region != nil {
		img, err = imaging.CropRegion(img, *region)
		if err != nil {
			return nil, err
		}
	}
	return imaging.FromImage(img), nil
}

// ColorFrequency is one ranked color with its share of the analyzed pixels.
type ColorFrequency struct {
	Hex        string       `json:"hex"`
	RGB        analysis.RGB `json:"rgb"`
	Count      int          `json:"count"`
	Percentage float64      `json:"percentage"` // Share of analyzed pixels (0-100)
}

// ColorFrequencyResult lists ranked colors, most frequent first.
type ColorFrequencyResult struct {
	Colors      []ColorFrequency `json:"colors"`
	TotalPixels int              `json:"total_pixels"`
}

// frequencies converts ranked counts into the reported form. total is the
// number of pixels the counts were taken over.
func frequencies(counts []analysis.ColorCount, limit, total int) (*ColorFrequencyResult, error) {
	if len(counts) > limit {
		counts = counts[:limit]
	}
	out := make([]ColorFrequency, 0, len(counts))
	for _, cc := range counts {
		h, err := analysis.ToHex(cc.Color)
		if err != nil {
			return nil, err
		}
		pct := 0.0
		if total > 0 {
			pct = math.Round(float64(cc.Count)/float64(total)*10000) / 100
		}
		out = append(out, ColorFrequency{Hex: h, RGB: cc.Color, Count: cc.Count, Percentage: pct})
	}
	return &ColorFrequencyResult{Colors: out, TotalPixels: total}, nil
}

func (s *Server) handleImageExactColors(args json.RawMessage) (interface{}, error) {
	a, err := s.parseColorArgs(args)
	if err != nil {
		return nil, err
	}
	if a.Count < 0 {
		return nil, fmt.Errorf("%w: count %d is negative", analysis.ErrInvalidPaletteSize, a.Count)
	}
	px, err := s.loadPixels(a.Path, a.Region)
	if err != nil {
		return nil, err
	}
	return frequencies(analysis.CountColors(px), a.Count, px.Width*px.Height)
}

func (s *Server) handleImageDominantColors(args json.RawMessage) (interface{}, error) {
	a, err := s.parseColorArgs(args)
	if err != nil {
		return nil, err
	}
	px, err := s.loadPixels(a.Path, a.Region)
	if err != nil {
		return nil, err
	}
	counts, err := analysis.DominantColorCounts(px, a.Count, s.opts...)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, cc := range counts {
		total += cc.Count
	}
	return frequencies(counts, a.Count, total)
}

func (s *Server) handleImageAnalyzeColors(args json.RawMessage) (interface{}, error) {
	a, err := s.parseColorArgs(args)
	if err != nil {
		return nil, err
	}
	px, err := s.loadPixels(a.Path, a.Region)
	if err != nil {
		return nil, err
	}
	return s.analyzer.Analyze(px, a.Count)
}

// === Color Helper Handlers ===

type colorHexInfoArgs struct {
	Hex string `json:"hex"`
}

func (s *Server) handleColorHexInfo(args json.RawMessage) (interface{}, error) {
	var a colorHexInfoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	c, err := analysis.ParseHex(a.Hex)
	if err != nil {
		return nil, err
	}
	return analysis.Describe(c)
}
