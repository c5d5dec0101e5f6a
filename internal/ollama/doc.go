// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama provides the HTTP client for communicating with the Ollama API.
//
// The client covers the two calls redraft needs: a health probe and a
// single-shot structured "correction check" request. The correction check
// sends a fixed instruction prompt with the previous and newly typed message
// text and decodes a JSON record with the corrected sentence and a boolean
// correction flag.
//
// # Usage
//
//	client := ollama.NewClient()
//	if err := client.CheckRunning(ctx); err != nil {
//	    // Ollama is not reachable
//	}
//	result, err := client.CorrectionCheck(ctx, "We girls are going too", "We girls are going TO the park")
//	if err == nil && result.IsCorrection {
//	    // offer result.CorrectedText as a replacement
//	}
//
// All requests honor context cancellation; a cancelled check returns the
// context error and nothing else.
package ollama
