// Package server implements the MCP (Model Context Protocol) server for synthetic
// shape scenes.
//
// The server speaks JSON-RPC 2.0 over stdio, one request per line, and lets an
// MCP client build labeled scenes on demand without writing a dataset to disk.
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - shapes_list_types: Shape types, class ids and drawing categories
//   - shapes_describe_scene: Build a scene and return its descriptors
//   - shapes_generate: Rasterize a scene into an image plus instance and
//     class masks, with per-instance statistics and an optional preview
//   - shapes_inspect_sample: Read a stored dataset sample back, verify its
//     masks and recompute its statistics
//
// Scene tools accept either an explicit "shapes" sequence or "choices" with
// "min_shapes"/"max_shapes" for a random scene. Omitted arguments fall back to
// the [generate] section of the server's config. A given seed always produces
// the same scene.
//
// # Response Format
//
// Tool results are returned as JSON text inside MCP's content envelope:
//
//	{
//	  "content": [{"type": "text", "text": "{...}"}]
//	}
//
// Images are base64-encoded PNG. Masks are 16-bit grayscale PNGs whose pixel
// values are the instance or class ids themselves.
//
// # Usage
//
//	cfg, _ := config.Load("shapegen.toml")
//	srv, err := server.New(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	return srv.Run()
package server
