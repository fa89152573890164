// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"default_prefix":      cty.StringVal(DefaultPrefix),
			"default_destination": cty.StringVal(DefaultDestination),
		},
	}

	// optional attributes decode to nil so absent keys keep their default
	type hclConfig struct {
		Manifest    *string   `hcl:"manifest,optional"`
		Prefix      *string   `hcl:"prefix,optional"`
		Destination *string   `hcl:"destination,optional"`
		Exclude     *[]string `hcl:"exclude,optional"`
	}

	var raw hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &raw)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := Default()
	if raw.Manifest != nil {
		cfg.Manifest = *raw.Manifest
	}
	if raw.Prefix != nil {
		cfg.Prefix = *raw.Prefix
	}
	if raw.Destination != nil {
		cfg.Destination = *raw.Destination
	}
	if raw.Exclude != nil {
		cfg.Exclude = *raw.Exclude
	}

	return cfg, nil
}
