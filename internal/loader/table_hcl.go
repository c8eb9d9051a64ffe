package loader

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/toolreg/internal/registry"
)

// hclTableFile is the top-level structure of an HCL table file.
type hclTableFile struct {
	Tools []*hclTool `hcl:"tool,block"`
}

// hclTool is one `tool "name" { ... }` block.
type hclTool struct {
	Name             string         `hcl:"name,label"`
	Fn               string         `hcl:"fn"`
	Type             string         `hcl:"type,optional"`
	Group            string         `hcl:"group,optional"`
	Icon             string         `hcl:"icon,optional"`
	Description      string         `hcl:"description,optional"`
	Aliases          []string       `hcl:"aliases,optional"`
	RequiredPackages []string       `hcl:"required_packages,optional"`
	Meta             hcl.Expression `hcl:"meta,optional"`
	Examples         []*hclExample  `hcl:"example,block"`
}

// hclExample is one `example "label" { ... }` block inside a tool block.
type hclExample struct {
	Name        string `hcl:"name,label"`
	Template    string `hcl:"template"`
	Title       string `hcl:"title,optional"`
	Description string `hcl:"description,optional"`
	Markdown    bool   `hcl:"markdown,optional"`
}

func parseHCLTable(path string) ([]declaration, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var parsed hclTableFile
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	decls := make([]declaration, 0, len(parsed.Tools))
	for _, block := range parsed.Tools {
		meta, err := decodeMetaExpr(block.Meta)
		if err != nil {
			return nil, fmt.Errorf("tool %q in %s: %w", block.Name, path, err)
		}

		decl := declaration{
			name:             block.Name,
			fn:               block.Fn,
			kind:             block.Type,
			group:            block.Group,
			icon:             block.Icon,
			description:      block.Description,
			aliases:          block.Aliases,
			requiredPackages: block.RequiredPackages,
			meta:             meta,
		}
		if len(block.Examples) > 0 {
			decl.examples = make(map[string]registry.Example, len(block.Examples))
			for _, ex := range block.Examples {
				decl.examples[ex.Name] = registry.Example{
					Template:    ex.Template,
					Title:       ex.Title,
					Description: ex.Description,
					Markdown:    ex.Markdown,
				}
			}
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

// decodeMetaExpr evaluates the free-form `meta` attribute into a string
// map. Values are converted to strings through cty so numbers and bools in
// the table come out as their textual form.
func decodeMetaExpr(expr hcl.Expression) (map[string]string, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid meta attribute: %w", diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	ty := val.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("meta attribute must be an object, got %s", ty.FriendlyName())
	}

	meta := make(map[string]string)
	for it := val.ElementIterator(); it.Next(); {
		key, elem := it.Element()
		str, err := convert.Convert(elem, cty.String)
		if err != nil {
			return nil, fmt.Errorf("meta value %q: %w", key.AsString(), err)
		}
		meta[key.AsString()] = str.AsString()
	}
	return meta, nil
}
