// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes saved conversations out as Markdown or JSON.
//
// Markdown exports are meant for humans: they carry a YAML frontmatter
// block, per-message headings, and call out messages that were revised
// through an accepted correction (the original text is preserved under
// the revised one). JSON exports are a faithful dump of the stored
// conversation and can be re-imported.
package export
