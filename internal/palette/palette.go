// Package palette supplies the preset colors shown next to the picker. A
// palette can be loaded from an HCL file, extracted from an image, or
// generated when neither is given.
package palette

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/zclconf/go-cty/cty"

	"huepick/internal/colorconv"
)

// Entry is one named preset.
type Entry struct {
	Name  string
	Color colorconv.RGB
}

// Palette is an ordered set of presets plus an optional startup seed.
type Palette struct {
	Name    string
	Entries []Entry

	// Seed is the hex color named by the picker block, or "" when absent.
	Seed string
}

// Load reads an HCL palette file of the form:
//
//	meta {
//	  name = "rose-pine"
//	}
//
//	palette {
//	  rose = "#ebbcba"
//	  pine = "#31748f"
//	}
//
//	picker {
//	  seed = palette.rose
//	}
//
// Entries are sorted by name. The picker block may reference palette entries
// or spell out a hex string directly.
func Load(path string) (*Palette, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading palette file: %w", err)
	}

	file, diags := hclsyntax.ParseConfig(src, path, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing palette file: %s", diags.Error())
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("unexpected HCL body type in %s", path)
	}

	pal := &Palette{Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))}
	colors := make(map[string]cty.Value)

	for _, block := range body.Blocks {
		switch block.Type {
		case "meta":
			if err := pal.parseMeta(block); err != nil {
				return nil, err
			}
		case "palette":
			if err := pal.parseColors(block, colors); err != nil {
				return nil, err
			}
		}
	}

	// Second pass so the picker block can reference any palette entry, no
	// matter the block order in the file.
	ctx := &hcl.EvalContext{
		Variables: map[string]cty.Value{"palette": cty.ObjectVal(colors)},
	}
	for _, block := range body.Blocks {
		if block.Type != "picker" {
			continue
		}
		if err := pal.parsePicker(block, ctx); err != nil {
			return nil, err
		}
	}
	return pal, nil
}

func (p *Palette) parseMeta(block *hclsyntax.Block) error {
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return fmt.Errorf("meta block: %s", diags.Error())
	}
	attr, ok := attrs["name"]
	if !ok {
		return nil
	}
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return fmt.Errorf("meta name: %s", diags.Error())
	}
	if val.Type() != cty.String {
		return fmt.Errorf("meta name: want a string")
	}
	p.Name = val.AsString()
	return nil
}

func (p *Palette) parseColors(block *hclsyntax.Block, out map[string]cty.Value) error {
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return fmt.Errorf("palette block: %s", diags.Error())
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		val, diags := attrs[name].Expr.Value(nil)
		if diags.HasErrors() {
			return fmt.Errorf("palette entry %q: %s", name, diags.Error())
		}
		if val.Type() != cty.String {
			return fmt.Errorf("palette entry %q: want a hex string", name)
		}
		c, err := colorconv.ParseHex(val.AsString())
		if err != nil {
			return fmt.Errorf("palette entry %q: %w", name, err)
		}
		p.Entries = append(p.Entries, Entry{Name: name, Color: c})
		out[name] = cty.StringVal(c.Hex())
	}
	return nil
}

func (p *Palette) parsePicker(block *hclsyntax.Block, ctx *hcl.EvalContext) error {
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return fmt.Errorf("picker block: %s", diags.Error())
	}
	attr, ok := attrs["seed"]
	if !ok {
		return nil
	}
	val, diags := attr.Expr.Value(ctx)
	if diags.HasErrors() {
		return fmt.Errorf("picker seed: %s", diags.Error())
	}
	if val.Type() != cty.String {
		return fmt.Errorf("picker seed: want a hex string")
	}
	c, err := colorconv.ParseHex(val.AsString())
	if err != nil {
		return fmt.Errorf("picker seed: %w", err)
	}
	p.Seed = c.Hex()
	return nil
}

// Generate returns n visually spread presets by walking the hue wheel in
// golden-ratio steps, the usual trick for distinguishable colors.
func Generate(n int) *Palette {
	const goldenRatio = 0.618033988749895

	pal := &Palette{Name: "generated"}
	hue := 0.0
	for i := 0; i < n; i++ {
		hue = math.Mod(hue+goldenRatio, 1.0)
		r, g, b := colorful.Hsl(hue*360, 0.7, 0.55).RGB255()
		pal.Entries = append(pal.Entries, Entry{
			Name:  fmt.Sprintf("preset-%d", i+1),
			Color: colorconv.RGB{R: r, G: g, B: b},
		})
	}
	return pal
}
