// Package mcp exposes the commutator pipeline as JSON tool calls for
// agent frameworks. Three tools are served: equations (the full
// pipeline), hierarchy (the almost-commuting basis), and ansatz (the
// polynomial coefficient ansatz).
package mcp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rldelgado/dalgebra/commutators"
)

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// HandleToolCall dispatches one tool request. Errors are reported in
// the response, never as panics.
func HandleToolCall(req ToolRequest) ToolResponse {
	getInt := func(key string) (int, error) {
		v, ok := req.Params[key]
		if !ok {
			return 0, fmt.Errorf("missing param: %s", key)
		}
		f, ok := v.(float64)
		if !ok || f != float64(int(f)) {
			return 0, fmt.Errorf("param %s must be an integer", key)
		}
		return int(f), nil
	}
	optInt := func(key string, def int) (int, error) {
		if _, ok := req.Params[key]; !ok {
			return def, nil
		}
		return getInt(key)
	}

	switch req.Tool {
	case "equations":
		n, err := getInt("order")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		m, err := getInt("bound")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		d, err := optInt("degree", 0)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		sys, err := commutators.PolynomialCommutator(n, m, d)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{
			Result: SystemResult(sys),
			LaTeX:  sys.Ideal.LaTeX(),
			String: sys.Ideal.String(),
		}

	case "hierarchy":
		n, err := getInt("order")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		top, err := getInt("top")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		if top < 1 {
			return ToolResponse{Error: "param top must be >= 1"}
		}
		basis := make([]map[string]interface{}, 0, top)
		var lines, latex []string
		for i := 1; i <= top; i++ {
			p, h, err := commutators.AlmostCommutingWilson(n, i)
			if err != nil {
				return ToolResponse{Error: err.Error()}
			}
			hs := make([]string, len(h))
			for j, hv := range h {
				hs[j] = hv.String()
			}
			basis = append(basis, map[string]interface{}{
				"order": i,
				"p":     p.String(),
				"h":     hs,
			})
			lines = append(lines, fmt.Sprintf("P_%d = %s", i, p))
			latex = append(latex, fmt.Sprintf("P_{%d} = %s", i, p.LaTeX()))
		}
		return ToolResponse{
			Result: basis,
			LaTeX:  strings.Join(latex, "\n"),
			String: strings.Join(lines, "\n"),
		}

	case "ansatz":
		n, err := getInt("order")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		d, err := optInt("degree", 0)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		values, err := commutators.GeneratePolynomialAnsatz(nil, n, d)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		strs := make([]string, len(values))
		latex := make([]string, len(values))
		for i, v := range values {
			strs[i] = v.String()
			latex[i] = v.LaTeX()
		}
		return ToolResponse{
			Result: map[string]interface{}{"values": strs},
			LaTeX:  strings.Join(latex, ", "),
			String: strings.Join(strs, ", "),
		}

	case "spec":
		return ToolResponse{Result: json.RawMessage(ToolSpec()), String: ToolSpec()}
	}

	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// SystemResult flattens a solved system into the JSON shape shared by
// the equations tool and the CLI.
func SystemResult(sys *commutators.System) map[string]interface{} {
	gens := sys.Ideal.Generators()
	genStrs := make([]string, len(gens))
	for i, g := range gens {
		genStrs[i] = g.String()
	}
	constStrs := make([]string, len(sys.Constants))
	for i, c := range sys.Constants {
		constStrs[i] = c.String()
	}
	return map[string]interface{}{
		"l":          sys.L.String(),
		"p":          sys.P.String(),
		"constants":  constStrs,
		"generators": genStrs,
		"ideal":      sys.Ideal.String(),
	}
}

// ToolSpec returns the tool schema for agent registration.
func ToolSpec() string {
	tools := []map[string]interface{}{
		ts("equations", "Commutation conditions for a degree-d polynomial ansatz against the order-n normal form. Requires order (n) and bound (m); degree defaults to 0",
			[]string{"order", "bound"},
			map[string]string{"order": "integer", "bound": "integer", "degree": "integer"}),
		ts("hierarchy", "Almost-commuting operators P_1..P_top for the order-n normal form, with their hierarchy vectors",
			[]string{"order", "top"},
			map[string]string{"order": "integer", "top": "integer"}),
		ts("ansatz", "Polynomial coefficient ansatz values for an order-n operator; degree defaults to 0",
			[]string{"order"},
			map[string]string{"order": "integer", "degree": "integer"}),
		ts("spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
