// Atelier - Multi-Museum Artwork Discovery and Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/atelier

// Package web embeds the single-page discovery UI served at the root.
package web

import _ "embed"

//go:embed index.html
var IndexHTML []byte
