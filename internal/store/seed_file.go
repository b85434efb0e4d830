package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"filtertree/internal/model"
	"filtertree/internal/outline"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"gopkg.in/yaml.v3"
)

var ErrSeedFormat = errors.New("unsupported seed format")

// LoadSeed reads a tree from a .json, .yaml/.yml or .hcl file and validates it.
func LoadSeed(path string) (model.Tree, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultSeed(), nil
	}
	var (
		tree model.Tree
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		tree, err = loadSeedJSON(path)
	case ".yaml", ".yml":
		tree, err = loadSeedYAML(path)
	case ".hcl":
		tree, err = loadSeedHCL(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrSeedFormat, path)
	}
	if err != nil {
		return nil, err
	}
	tree = normalize(tree)
	if err := outline.Validate(tree); err != nil {
		return nil, fmt.Errorf("seed %s: %w", path, err)
	}
	return tree, nil
}

func loadSeedJSON(path string) (model.Tree, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tree model.Tree
	if err := json.Unmarshal(b, &tree); err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", path, err)
	}
	return tree, nil
}

func loadSeedYAML(path string) (model.Tree, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tree model.Tree
	if err := yaml.Unmarshal(b, &tree); err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", path, err)
	}
	return tree, nil
}

// normalize gives every node a non-nil Children slice.
func normalize(nodes []model.Node) []model.Node {
	out := make([]model.Node, len(nodes))
	for i, n := range nodes {
		n.Children = normalize(n.Children)
		out[i] = n
	}
	return out
}

// HCL seeds are written as nested blocks, in display order:
//
//	group "1" {
//	  root = true
//	  open = true
//	  attribute "1.4" {
//	    name     = "attribute 3"
//	    operator = "="
//	    value    = 3
//	  }
//	}
type hclAttribute struct {
	Name     string    `hcl:"name"`
	Operator *string   `hcl:"operator,optional"`
	Value    cty.Value `hcl:"value"`
}

func loadSeedHCL(path string) (model.Tree, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not native HCL syntax", ErrSeedFormat, path)
	}
	if len(body.Attributes) > 0 {
		return nil, fmt.Errorf("seed %s: top level may only contain blocks", path)
	}
	tree, diags := decodeHCLBlocks(body.Blocks)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}
	return tree, nil
}

func decodeHCLBlocks(blocks hclsyntax.Blocks) ([]model.Node, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	nodes := make([]model.Node, 0, len(blocks))
	for _, b := range blocks {
		if len(b.Labels) != 1 {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Missing node id",
				Detail:   fmt.Sprintf("A %q block needs exactly one label: its id.", b.Type),
				Subject:  b.DefRange().Ptr(),
			})
			continue
		}
		id := b.Labels[0]
		switch b.Type {
		case "group":
			n, d := decodeHCLGroup(id, b.Body)
			diags = append(diags, d...)
			nodes = append(nodes, n)
		case "attribute":
			var a hclAttribute
			d := gohcl.DecodeBody(b.Body, nil, &a)
			diags = append(diags, d...)
			if d.HasErrors() {
				continue
			}
			v, d := hclString(a.Value, b.Body.Attributes["value"])
			diags = append(diags, d...)
			op := "="
			if a.Operator != nil {
				op = *a.Operator
			}
			nodes = append(nodes, model.NewAttribute(id, model.Attribute{Name: a.Name, Value: v, Operator: op}))
		default:
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unsupported block type",
				Detail:   fmt.Sprintf("Blocks of type %q are not expected here; use \"group\" or \"attribute\".", b.Type),
				Subject:  b.TypeRange.Ptr(),
			})
		}
	}
	return nodes, diags
}

func decodeHCLGroup(id string, body *hclsyntax.Body) (model.Node, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	n := model.NewGroup(id)
	for name, attr := range body.Attributes {
		var flag bool
		switch name {
		case "open", "root":
			diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &flag)...)
		default:
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unsupported argument",
				Detail:   fmt.Sprintf("An argument named %q is not expected on a group.", name),
				Subject:  attr.NameRange.Ptr(),
			})
			continue
		}
		if name == "open" {
			n.Open = flag
		} else if flag {
			n.TreeRole = model.TreeRoleRoot
		}
	}
	kids, d := decodeHCLBlocks(body.Blocks)
	diags = append(diags, d...)
	n.Children = kids
	return n, diags
}

// hclString renders a primitive HCL value (string, number, bool) as text.
func hclString(v cty.Value, attr *hclsyntax.Attribute) (string, hcl.Diagnostics) {
	if v.IsNull() {
		return "", nil
	}
	s, err := convert.Convert(v, cty.String)
	if err != nil || !s.IsKnown() {
		d := &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid attribute value",
			Detail:   "value must be a string, number or bool.",
		}
		if attr != nil {
			d.Subject = attr.SrcRange.Ptr()
		}
		return "", hcl.Diagnostics{d}
	}
	return s.AsString(), nil
}
