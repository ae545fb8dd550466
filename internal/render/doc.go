// SPDX-License-Identifier: MPL-2.0

// Package render turns a documentation model into a README.
//
// Templates use text/template and see the model's evaluation context
// (name, description, platforms, attributes, recipes, ...). Besides the
// standard template functions they can call:
//
//	fragment "usage"        text of doc/usage.md, or ""
//	join .platforms ", "    join strings
//	code "x"                wrap in backticks
//	value .Default          JSON form of a default or choice value
//	values .Choices         value applied to each element
//	has .Choices            true for non-nil, non-empty values
//	anchor "webapp::tls"    GitHub heading anchor ("webapptls")
package render
