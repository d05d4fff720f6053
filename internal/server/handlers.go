package server

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/ironsheep/shapegen/internal/dataset"
	"github.com/ironsheep/shapegen/internal/detection"
	"github.com/ironsheep/shapegen/internal/imaging"
	"github.com/ironsheep/shapegen/internal/raster"
	"github.com/ironsheep/shapegen/internal/shapes"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "shapes_generate").
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
		s.logger.Warn("tool failed", "tool", params.Name, "err", err)
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
	case "shapes_list_types":
		return s.handleListTypes()
	case "shapes_describe_scene":
		return s.handleDescribeScene(args)
	case "shapes_generate":
		return s.handleGenerate(args)
	case "shapes_inspect_sample":
		return s.handleInspectSample(args)
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

// === Shape Type Handlers ===

type shapeTypeInfo struct {
	Name     string `json:"name"`
	ClassID  int    `json:"class_id"`
	Category string `json:"category"`
}

type listTypesResult struct {
	Types []shapeTypeInfo `json:"types"`
}

func (s *Server) handleListTypes() (interface{}, error) {
	result := listTypesResult{Types: make([]shapeTypeInfo, 0)}
	for _, e := range s.classes.Entries() {
		t, err := shapes.ParseShapeType(e.Name)
		if err != nil {
			return nil, err
		}
		category := "polygon"
		if t.Category() == shapes.Round {
			category = "round"
		}
		result.Types = append(result.Types, shapeTypeInfo{Name: e.Name, ClassID: e.ID, Category: category})
	}
	return result, nil
}

// === Scene Handlers ===

type sceneArgs struct {
	Shapes      []string `json:"shapes"`
	Choices     []string `json:"choices"`
	MinShapes   *int     `json:"min_shapes"`
	MaxShapes   *int     `json:"max_shapes"`
	NominalSize int      `json:"nominal_size"`
	Seed        *uint64  `json:"seed"`
}

// buildScene applies server defaults to a and builds the scene. It returns
// the seed that was used.
func (s *Server) buildScene(a sceneArgs) (shapes.Scene, uint64, error) {
	if a.NominalSize == 0 {
		a.NominalSize = s.defaults.NominalSize
	}
	seed := s.defaults.Seed
	if a.Seed != nil {
		seed = *a.Seed
	}
	g := shapes.NewGenerator(s.classes, shapes.NewSource(seed))

	if len(a.Shapes) > 0 {
		types, err := shapes.ParseShapeTypes(a.Shapes)
		if err != nil {
			return nil, 0, err
		}
		scene, err := g.Scene(types, a.NominalSize)
		return scene, seed, err
	}

	names := a.Choices
	if len(names) == 0 {
		names = s.defaults.Shapes
	}
	choices, err := shapes.ParseShapeTypes(names)
	if err != nil {
		return nil, 0, err
	}
	minShapes, maxShapes := s.defaults.MinShapes, s.defaults.MaxShapes
	if a.MinShapes != nil {
		minShapes = *a.MinShapes
	}
	if a.MaxShapes != nil {
		maxShapes = *a.MaxShapes
	}
	scene, err := g.RandomScene(choices, minShapes, maxShapes, a.NominalSize)
	return scene, seed, err
}

type describeSceneResult struct {
	Seed   uint64       `json:"seed"`
	Count  int          `json:"count"`
	Shapes shapes.Scene `json:"shapes"`
}

func (s *Server) handleDescribeScene(args json.RawMessage) (interface{}, error) {
	var a sceneArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	scene, seed, err := s.buildScene(a)
	if err != nil {
		return nil, err
	}
	return describeSceneResult{Seed: seed, Count: len(scene), Shapes: scene}, nil
}

type generateArgs struct {
	sceneArgs
	CanvasSize     int     `json:"canvas_size"`
	IncludePreview bool    `json:"include_preview"`
	PreviewScale   float64 `json:"preview_scale"`
}

type generateResult struct {
	Seed         uint64                `json:"seed"`
	CanvasSize   int                   `json:"canvas_size"`
	Shapes       shapes.Scene          `json:"shapes"`
	Instances    []detection.Instance  `json:"instances"`
	Hidden       []int                 `json:"hidden"`
	Remap        map[int]int           `json:"remap"`
	Legend       map[int]string        `json:"legend"`
	Image        *imaging.EncodedImage `json:"image"`
	InstanceMask *imaging.EncodedImage `json:"instance_mask"`
	ClassMask    *imaging.EncodedImage `json:"class_mask"`
	Preview      *imaging.EncodedImage `json:"preview,omitempty"`
}

func (s *Server) handleGenerate(args json.RawMessage) (interface{}, error) {
	var a generateArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.CanvasSize == 0 {
		a.CanvasSize = s.defaults.CanvasSize
	}
	if a.PreviewScale == 0 {
		a.PreviewScale = 1.0
	}

	scene, seed, err := s.buildScene(a.sceneArgs)
	if err != nil {
		return nil, err
	}
	layers, err := raster.Rasterize(scene, a.CanvasSize)
	if err != nil {
		return nil, err
	}

	result := generateResult{
		Seed:       seed,
		CanvasSize: a.CanvasSize,
		Shapes:     scene,
		Remap:      layers.Remap,
		Legend:     imaging.Legend(layers.Instances),
	}
	stats := detection.Instances(layers, len(scene))
	result.Instances = stats.Instances
	result.Hidden = stats.Hidden

	if result.Image, err = imaging.EncodePNG(imaging.ImageFromGrid(layers.Image)); err != nil {
		return nil, err
	}
	if result.InstanceMask, err = encodeMask(layers.Instances); err != nil {
		return nil, err
	}
	if result.ClassMask, err = encodeMask(layers.Classes); err != nil {
		return nil, err
	}
	if a.IncludePreview {
		preview := imaging.Preview(layers, imaging.PreviewOptions{Scale: a.PreviewScale, Edges: true})
		if result.Preview, err = imaging.EncodePNG(preview); err != nil {
			return nil, err
		}
	}

	s.logger.Debug("generated scene", "seed", seed, "shapes", len(scene), "visible", stats.Count)
	return result, nil
}

// === Dataset Handlers ===

type inspectArgs struct {
	Path   string `json:"path"`
	Reload bool   `json:"reload"`
}

type inspectResult struct {
	Path        string                       `json:"path"`
	Seed        uint64                       `json:"seed"`
	CanvasSize  int                          `json:"canvas_size"`
	Files       map[string]*imaging.FileInfo `json:"files"`
	Consistent  bool                         `json:"consistent"`
	Problems    []string                     `json:"problems"`
	MatchesMeta bool                         `json:"matches_meta"`
	Instances   []detection.Instance         `json:"instances"`
	Hidden      []int                        `json:"hidden"`
}

func (s *Server) handleInspectSample(args json.RawMessage) (interface{}, error) {
	var a inspectArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if a.Reload {
		s.masks.Evict(filepath.Join(a.Path, dataset.InstanceMaskFile))
		s.masks.Evict(filepath.Join(a.Path, dataset.ClassMaskFile))
	}

	stored, err := dataset.ReadSample(a.Path, s.masks)
	if err != nil {
		return nil, err
	}

	files := make(map[string]*imaging.FileInfo)
	for _, name := range []string{dataset.ImageFile, dataset.InstanceMaskFile, dataset.ClassMaskFile} {
		info, err := imaging.StatFile(filepath.Join(a.Path, name))
		if err != nil {
			return nil, err
		}
		files[name] = info
	}

	return inspectResult{
		Path:        a.Path,
		Seed:        stored.Meta.Seed,
		CanvasSize:  stored.Meta.CanvasSize,
		Files:       files,
		Consistent:  stored.Report.Consistent,
		Problems:    stored.Report.Problems,
		MatchesMeta: stored.MatchesMeta(),
		Instances:   stored.Stats.Instances,
		Hidden:      stored.Stats.Hidden,
	}, nil
}

func encodeMask(g *raster.LabelGrid) (*imaging.EncodedImage, error) {
	mask, err := imaging.MaskImage(g)
	if err != nil {
		return nil, err
	}
	return imaging.EncodePNG(mask)
}

// unmarshalArgs decodes tool arguments; absent arguments decode as {}.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	return json.Unmarshal(args, v)
}
