// Atelier - Multi-Museum Artwork Discovery and Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package sources

import (
	"testing"

	"github.com/tomtom215/atelier/internal/config"
)

func TestNewRegistryKeyGating(t *testing.T) {
	cfg := testSourcesConfig("http://museum.test")

	// Harvard enabled but keyless stays out of the registry.
	cfg.Harvard = config.KeyedMuseumConfig{Enabled: true, BaseURL: "http://museum.test"}
	r := NewRegistry(cfg)
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (met + aic)", r.Len())
	}

	cfg.Harvard.APIKey = "key"
	r = NewRegistry(cfg)
	if r.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 with Harvard key present", r.Len())
	}

	names := make(map[string]bool)
	for _, s := range r.Sources() {
		names[s.Name()] = true
	}
	if !names["met"] || !names["aic"] || !names["harvard"] {
		t.Errorf("registered sources = %v", names)
	}
}

func TestNewRegistryDisabledSources(t *testing.T) {
	cfg := testSourcesConfig("http://museum.test")
	cfg.Met.Enabled = false

	r := NewRegistry(cfg)
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
	if r.Sources()[0].Name() != "aic" {
		t.Errorf("remaining source = %q, want aic", r.Sources()[0].Name())
	}
}

func TestDescribeReportsKeyGatedState(t *testing.T) {
	cfg := testSourcesConfig("http://museum.test")
	cfg.Rijksmuseum = config.KeyedMuseumConfig{Enabled: true} // no key

	infos := Describe(cfg)
	if len(infos) != 4 {
		t.Fatalf("len(infos) = %d, want 4", len(infos))
	}
	for _, info := range infos {
		switch info.Name {
		case "met", "aic":
			if !info.Enabled || info.RequiresKey {
				t.Errorf("%s: Enabled=%v RequiresKey=%v", info.Name, info.Enabled, info.RequiresKey)
			}
		case "rijksmuseum":
			if info.Enabled {
				t.Error("rijksmuseum without key must report disabled")
			}
			if !info.RequiresKey {
				t.Error("rijksmuseum must report RequiresKey")
			}
		}
	}
}
