// Atelier - Multi-Museum Artwork Discovery and Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

package validation

import (
	"strings"
	"testing"

	"github.com/tomtom215/atelier/internal/models"
)

func TestValidateStructAcceptsValidRequest(t *testing.T) {
	req := models.SearchRequest{Theme: "ocean", Limit: 10}
	if err := ValidateStruct(&req); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
}

func TestValidateStructRequiresTheme(t *testing.T) {
	req := models.SearchRequest{Limit: 10}
	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("missing theme accepted")
	}
	fields := err.Fields()
	if len(fields) != 1 {
		t.Fatalf("got %d field errors, want 1", len(fields))
	}
	if fields[0].Field != "Theme" || fields[0].Tag != "required" {
		t.Errorf("got field %q tag %q, want Theme/required", fields[0].Field, fields[0].Tag)
	}
	if !strings.Contains(err.Error(), "Theme is required") {
		t.Errorf("message %q should say the theme is required", err.Error())
	}
}

func TestValidateStructLimitBounds(t *testing.T) {
	req := models.SearchRequest{Theme: "ocean", Limit: 500}
	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("limit above maximum accepted")
	}
	if !strings.Contains(err.Error(), "at most 100") {
		t.Errorf("message %q should mention the limit maximum", err.Error())
	}

	// Zero limit means "use the default" and must pass.
	req = models.SearchRequest{Theme: "ocean"}
	if verr := ValidateStruct(&req); verr != nil {
		t.Fatalf("zero limit rejected: %v", verr)
	}
}

func TestValidateStructThemeLength(t *testing.T) {
	req := models.SearchRequest{Theme: strings.Repeat("x", 201)}
	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("oversized theme accepted")
	}
	if !strings.Contains(err.Error(), "at most 200 characters") {
		t.Errorf("message %q should mention the character cap", err.Error())
	}
}

func TestRequestErrorDetails(t *testing.T) {
	req := models.SearchRequest{Theme: "", Limit: 500}
	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("invalid request accepted")
	}
	details := err.Details()
	if _, ok := details["fields"]; !ok {
		t.Errorf("multi-error details = %v, want a fields list", details)
	}
}
