// Package ast bridges the parsed message model (pkg/rawhttp) to
// github.com/shapestone/shape-core's generic AST node types (pkg/ast),
// the way shapestone-shape-http's internal/parser package bridges its own
// fastparser.Request/Response to the same AST. It is adapted from that
// package, generalized from fastparser's flat string fields to
// pkg/rawhttp's RequestLine/StatusLine/RawHTTPHeaders/Uri types.
package ast

import (
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"

	"github.com/rawhttpgo/core/internal/uri"
	"github.com/rawhttpgo/core/pkg/rawhttp"
)

var zeroPos = ast.Position{}

// RequestToNode renders a parsed request line, its headers and an
// optional body into a shape-core ObjectNode:
//
//	{ "type": "request", "method": "GET", "target": "/api",
//	  "version": "HTTP/1.1", "scheme": "http"?,
//	  "headers": [{"key": "Host", "value": "example.com"}, ...],
//	  "body": "..."? }
func RequestToNode(line rawhttp.RequestLine, headers rawhttp.RawHTTPHeaders, body []byte) ast.SchemaNode {
	props := map[string]ast.SchemaNode{
		"type":    ast.NewLiteralNode("request", zeroPos),
		"method":  ast.NewLiteralNode(line.Method, zeroPos),
		"target":  ast.NewLiteralNode(line.URI.String(), zeroPos),
		"version": ast.NewLiteralNode(line.HTTPVersion.String(), zeroPos),
		"headers": headersToNode(headers),
	}

	if line.URI.Scheme != "" {
		props["scheme"] = ast.NewLiteralNode(line.URI.Scheme, zeroPos)
	}
	if body != nil {
		props["body"] = ast.NewLiteralNode(string(body), zeroPos)
	}

	return ast.NewObjectNode(props, zeroPos)
}

// ResponseToNode renders a parsed status line, its headers and an
// optional body into a shape-core ObjectNode, mirroring RequestToNode.
func ResponseToNode(line rawhttp.StatusLine, headers rawhttp.RawHTTPHeaders, body []byte) ast.SchemaNode {
	props := map[string]ast.SchemaNode{
		"type":       ast.NewLiteralNode("response", zeroPos),
		"version":    ast.NewLiteralNode(line.HTTPVersion.String(), zeroPos),
		"statusCode": ast.NewLiteralNode(int64(line.StatusCode), zeroPos),
		"reason":     ast.NewLiteralNode(line.ReasonPhrase, zeroPos),
		"headers":    headersToNode(headers),
	}

	if body != nil {
		props["body"] = ast.NewLiteralNode(string(body), zeroPos)
	}

	return ast.NewObjectNode(props, zeroPos)
}

func headersToNode(headers rawhttp.RawHTTPHeaders) ast.SchemaNode {
	entries := headers.Entries()
	elements := make([]ast.SchemaNode, len(entries))
	for i, e := range entries {
		elements[i] = ast.NewObjectNode(map[string]ast.SchemaNode{
			"key":   ast.NewLiteralNode(e.Name, zeroPos),
			"value": ast.NewLiteralNode(e.Value, zeroPos),
		}, zeroPos)
	}
	return ast.NewArrayDataNode(elements, zeroPos)
}

// NodeToRequest reverses RequestToNode, re-decomposing the stored target
// string through the uri package rather than trusting a cached Uri value.
func NodeToRequest(node ast.SchemaNode) (rawhttp.RequestLine, rawhttp.RawHTTPHeaders, []byte, error) {
	obj, ok := node.(*ast.ObjectNode)
	if !ok {
		return rawhttp.RequestLine{}, rawhttp.RawHTTPHeaders{}, nil, fmt.Errorf("expected ObjectNode, got %T", node)
	}
	props := obj.Properties()

	var line rawhttp.RequestLine
	if v, ok := props["method"]; ok {
		if lit, ok := v.(*ast.LiteralNode); ok {
			line.Method, _ = lit.Value().(string)
		}
	}
	if v, ok := props["version"]; ok {
		if lit, ok := v.(*ast.LiteralNode); ok {
			if literal, ok := lit.Value().(string); ok {
				version, ok := parseVersionLiteral(literal)
				if !ok {
					return rawhttp.RequestLine{}, rawhttp.RawHTTPHeaders{}, nil, fmt.Errorf("unknown HTTP version %q", literal)
				}
				line.HTTPVersion = version
			}
		}
	}
	if v, ok := props["target"]; ok {
		if lit, ok := v.(*ast.LiteralNode); ok {
			if target, ok := lit.Value().(string); ok {
				parsed, err := uri.Parse(target, false)
				if err != nil {
					return rawhttp.RequestLine{}, rawhttp.RawHTTPHeaders{}, nil, err
				}
				line.URI = parsed
			}
		}
	}

	headers, err := nodeToHeaders(props["headers"])
	if err != nil {
		return rawhttp.RequestLine{}, rawhttp.RawHTTPHeaders{}, nil, err
	}

	body := bodyFromNode(props["body"])

	return line, headers, body, nil
}

// NodeToResponse reverses ResponseToNode.
func NodeToResponse(node ast.SchemaNode) (rawhttp.StatusLine, rawhttp.RawHTTPHeaders, []byte, error) {
	obj, ok := node.(*ast.ObjectNode)
	if !ok {
		return rawhttp.StatusLine{}, rawhttp.RawHTTPHeaders{}, nil, fmt.Errorf("expected ObjectNode, got %T", node)
	}
	props := obj.Properties()

	var line rawhttp.StatusLine
	if v, ok := props["version"]; ok {
		if lit, ok := v.(*ast.LiteralNode); ok {
			if literal, ok := lit.Value().(string); ok {
				version, ok := parseVersionLiteral(literal)
				if !ok {
					return rawhttp.StatusLine{}, rawhttp.RawHTTPHeaders{}, nil, fmt.Errorf("unknown HTTP version %q", literal)
				}
				line.HTTPVersion = version
			}
		}
	}
	if v, ok := props["statusCode"]; ok {
		if lit, ok := v.(*ast.LiteralNode); ok {
			switch code := lit.Value().(type) {
			case int64:
				line.StatusCode = int(code)
			case float64:
				line.StatusCode = int(code)
			}
		}
	}
	if v, ok := props["reason"]; ok {
		if lit, ok := v.(*ast.LiteralNode); ok {
			line.ReasonPhrase, _ = lit.Value().(string)
		}
	}

	headers, err := nodeToHeaders(props["headers"])
	if err != nil {
		return rawhttp.StatusLine{}, rawhttp.RawHTTPHeaders{}, nil, err
	}

	body := bodyFromNode(props["body"])

	return line, headers, body, nil
}

func nodeToHeaders(node ast.SchemaNode) (rawhttp.RawHTTPHeaders, error) {
	builder := rawhttp.NewHeadersBuilder()
	if node == nil {
		return builder.Build(), nil
	}

	arr, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return rawhttp.RawHTTPHeaders{}, fmt.Errorf("expected ArrayDataNode for headers, got %T", node)
	}

	for _, elem := range arr.Elements() {
		obj, ok := elem.(*ast.ObjectNode)
		if !ok {
			continue
		}
		props := obj.Properties()
		var key, value string
		if v, ok := props["key"]; ok {
			if lit, ok := v.(*ast.LiteralNode); ok {
				key, _ = lit.Value().(string)
			}
		}
		if v, ok := props["value"]; ok {
			if lit, ok := v.(*ast.LiteralNode); ok {
				value, _ = lit.Value().(string)
			}
		}
		builder.With(key, value)
	}

	return builder.Build(), nil
}

func bodyFromNode(node ast.SchemaNode) []byte {
	if node == nil {
		return nil
	}
	lit, ok := node.(*ast.LiteralNode)
	if !ok {
		return nil
	}
	s, ok := lit.Value().(string)
	if !ok {
		return nil
	}
	return []byte(s)
}

func parseVersionLiteral(literal string) (rawhttp.HTTPVersion, bool) {
	switch literal {
	case "HTTP/1.0":
		return rawhttp.HTTP10, true
	case "HTTP/1.1":
		return rawhttp.HTTP11, true
	}
	return rawhttp.HTTPVersion{}, false
}
