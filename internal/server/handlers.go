package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "texture_prepare", "texture_pyramid").
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
// Out-of-range arguments return -32602, a panicking tool returns -32603, and
// other tool execution errors return -32000.
func (s *Server) handleToolsCall(req *MCPRequest) (resp *MCPResponse) {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("tool %s panicked: %v", params.Name, r)
			resp = s.errorResponse(req.ID, -32603, "Internal error", fmt.Sprint(r))
		}
	}()

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if s.debug {
		log.Printf("tool %s finished in %s (err=%v)", params.Name, time.Since(start), err)
	}
	var pe *paramError
	if errors.As(err, &pe) {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}
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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Selects the pixel format pipeline
//  3. Runs the preprocessing step and writes its output
//  4. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "texture_prepare":
		return s.handleTexturePrepare(args)
	case "texture_prepare_batch":
		return s.handleTexturePrepareBatch(args)
	case "texture_guide_map":
		return s.handleTextureGuideMap(args)
	case "texture_pyramid":
		return s.handleTexturePyramid(args)
	case "texture_match_histogram":
		return s.handleTextureMatchHistogram(args)
	case "texture_histogram":
		return s.handleTextureHistogram(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// paramError marks a tool argument that is well-formed JSON but out of range.
type paramError struct {
	msg string
}

func (e *paramError) Error() string { return e.msg }

func invalidParams(format string, args ...interface{}) error {
	return &paramError{msg: fmt.Sprintf(format, args...)}
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

// decodeArgs unmarshals tool arguments, treating missing arguments as {}.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// === Preparation Handlers ===

type prepareArgs struct {
	Path   string `json:"path"`
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Output string `json:"output"`
	Matte  string `json:"matte"`
}

func (s *Server) handleTexturePrepare(args json.RawMessage) (interface{}, error) {
	var a prepareArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	r, err := runnerFor(a.Format)
	if err != nil {
		return nil, err
	}
	return r.prepare(a)
}

type prepareBatchArgs struct {
	Format string        `json:"format"`
	Inputs []prepareArgs `json:"inputs"`
}

// BatchResult holds one PrepareResult per input, in input order.
type BatchResult struct {
	Results []*PrepareResult `json:"results"`
}

// handleTexturePrepareBatch prepares independent inputs concurrently. Each
// input runs its own pipeline over its own buffers; at most maxWorkers run
// at once. The first error encountered is returned.
func (s *Server) handleTexturePrepareBatch(args json.RawMessage) (interface{}, error) {
	var a prepareBatchArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if len(a.Inputs) == 0 {
		return nil, fmt.Errorf("inputs must not be empty")
	}

	runners := make([]runner, len(a.Inputs))
	for i, in := range a.Inputs {
		format := in.Format
		if format == "" {
			format = a.Format
		}
		r, err := runnerFor(format)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		runners[i] = r
	}

	results := make([]*PrepareResult, len(a.Inputs))
	var g errgroup.Group
	g.SetLimit(s.maxWorkers)
	for i := range a.Inputs {
		i := i
		g.Go(func() error {
			res, err := runners[i].prepare(a.Inputs[i])
			if err != nil {
				return fmt.Errorf("input %d (%s): %w", i, a.Inputs[i].Path, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &BatchResult{Results: results}, nil
}

// === Guide Map Handler ===

type guideMapArgs struct {
	Path      string  `json:"path"`
	Format    string  `json:"format"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	BlurSigma float64 `json:"blur_sigma"`
	Output    string  `json:"output"`
}

func (s *Server) handleTextureGuideMap(args json.RawMessage) (interface{}, error) {
	var a guideMapArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.BlurSigma < 0 {
		return nil, fmt.Errorf("blur_sigma must not be negative")
	}
	r, err := runnerFor(a.Format)
	if err != nil {
		return nil, err
	}
	return r.guideMap(a)
}

// === Pyramid Handler ===

type pyramidArgs struct {
	Path      string `json:"path"`
	Format    string `json:"format"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Levels    int    `json:"levels"`
	OutputDir string `json:"output_dir"`
}

func (s *Server) handleTexturePyramid(args json.RawMessage) (interface{}, error) {
	var a pyramidArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	r, err := runnerFor(a.Format)
	if err != nil {
		return nil, err
	}
	return r.pyramid(a)
}

// === Histogram Handlers ===

type matchArgs struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	Output string `json:"output"`
}

func (s *Server) handleTextureMatchHistogram(args json.RawMessage) (interface{}, error) {
	var a matchArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	r, err := runnerFor(a.Format)
	if err != nil {
		return nil, err
	}
	return r.matchHistogram(a)
}

type histogramArgs struct {
	Path   string `json:"path"`
	Format string `json:"format"`
}

func (s *Server) handleTextureHistogram(args json.RawMessage) (interface{}, error) {
	var a histogramArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	r, err := runnerFor(a.Format)
	if err != nil {
		return nil, err
	}
	return r.histogram(a)
}
