// SPDX-License-Identifier: MPL-2.0

// Package config handles cookdoc configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/cookdoc/config.cue (or the XDG equivalent on
// Linux, ~/Library/Application Support/cookdoc/config.cue on macOS,
// %APPDATA%\cookdoc\config.cue on Windows), falling back to ./config.cue. Any key can be
// overridden with a COOKDOC_ environment variable (COOKDOC_UI_PREVIEW_WIDTH for
// ui.preview_width).
//
// Files are checked against an embedded CUE schema (config_schema.cue); the merged result,
// environment overrides included, is checked again with struct validation tags.
package config
