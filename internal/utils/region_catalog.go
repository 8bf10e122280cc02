/*
 *  Copyright (c) 2025, WSO2 LLC. (http://www.wso2.org) All Rights Reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 *
 */

package utils

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/rchristof/example-integration/internal/model"

	"gopkg.in/yaml.v3"
)

// RegionCatalog lists the cloud providers and regions instances may be created in
type RegionCatalog struct {
	providers []model.Region
}

type regionCatalogYAML struct {
	Providers []model.Region `yaml:"providers"`
}

// DefaultRegionCatalog returns the built-in provider and region list
func DefaultRegionCatalog() *RegionCatalog {
	return &RegionCatalog{providers: []model.Region{
		{Provider: "aws", Regions: []string{"ap-south-1", "eu-west-1", "us-east-1", "us-east-2", "us-west-2"}},
		{Provider: "gcp", Regions: []string{"asia-south1", "europe-west1", "me-west1", "us-central1", "us-east1"}},
	}}
}

// LoadRegionCatalog reads a catalog from a YAML file of the form
//
//	providers:
//	  - provider: aws
//	    regions: [us-east-1, eu-west-1]
//
// An empty path returns the built-in catalog.
func LoadRegionCatalog(path string) (*RegionCatalog, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultRegionCatalog(), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read region catalog %s: %w", path, err)
	}

	var doc regionCatalogYAML
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse region catalog %s: %w", path, err)
	}
	if len(doc.Providers) == 0 {
		return nil, fmt.Errorf("region catalog %s defines no providers", path)
	}
	for _, p := range doc.Providers {
		if strings.TrimSpace(p.Provider) == "" {
			return nil, fmt.Errorf("region catalog %s has a provider without a name", path)
		}
		if len(p.Regions) == 0 {
			return nil, fmt.Errorf("region catalog %s: provider %s has no regions", path, p.Provider)
		}
	}
	return &RegionCatalog{providers: doc.Providers}, nil
}

// Providers returns a copy of the catalog
func (c *RegionCatalog) Providers() []model.Region {
	out := make([]model.Region, len(c.providers))
	for i, p := range c.providers {
		out[i] = model.Region{Provider: p.Provider, Regions: slices.Clone(p.Regions)}
	}
	return out
}

// Supports reports whether region is offered for provider
func (c *RegionCatalog) Supports(provider, region string) bool {
	for _, p := range c.providers {
		if strings.EqualFold(p.Provider, provider) {
			return slices.Contains(p.Regions, region)
		}
	}
	return false
}
