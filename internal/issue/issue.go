// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	MetadataNotFoundId Id = iota + 1
	MetadataParseErrorId
	ArtifactParseErrorId
	DirectoryNotAccessibleId
	TemplateErrorId
	ReadmeStaleId
	ConfigLoadFailedId
	InvalidQueryId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // reference documentation for the failing format
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Render renders the issue for the terminal with the named glamour style
// ("dark", "light", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("\n- <" + string(link) + ">")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	metadataNotFoundIssue = &Issue{
		id: MetadataNotFoundId,
		mdMsg: `
# No metadata file found!

cookdoc needs a metadata file at the root of the cookbook.

## Looked for (in order):
1. metadata.cue
2. metadata.hcl

## Things you can try:
- Run cookdoc from the cookbook root, or pass the directory:
~~~
$ cookdoc render path/to/cookbook
~~~

- Create a minimal metadata file:
~~~cue
name:        "webapp"
version:     "1.0.0"
description: "Installs the web tier"
~~~`,
	}

	metadataParseErrorIssue = &Issue{
		id: MetadataParseErrorId,
		mdMsg: `
# Failed to read the metadata file!

The metadata file exists but does not match the expected schema.

## Common causes:
- Missing ` + "`name`" + ` field
- A name with spaces or other characters outside ` + "`[A-Za-z0-9_.-]`" + `
- A recipe description that is not a string
- Syntax errors (unbalanced braces, missing quotes)

## Things you can try:
- Fix the field named in the error message above
- Check the file with the cue tool:
~~~
$ cue vet metadata.cue
~~~`,
		docLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	artifactParseErrorIssue = &Issue{
		id: ArtifactParseErrorId,
		mdMsg: `
# Failed to read an artifact file!

An attribute, resource or definition file is malformed. The whole README
is left untouched until the file is fixed.

## Expected shapes:
~~~cue
// attributes/*.cue
"webapp/port": {
	description: "Listen port"
	default:     8080
}

// resources/*.cue
description: "Manages a virtual host"
actions: ["create", "delete"]

// definitions/*.cue
params: path: description: "Destination path"
~~~`,
		docLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	directoryNotAccessibleIssue = &Issue{
		id: DirectoryNotAccessibleId,
		mdMsg: `
# Cannot read an artifact directory!

A cookbook directory exists but could not be listed.

## Things you can try:
- Check the directory permissions
- Make sure the path is a directory and not a file`,
	}

	templateErrorIssue = &Issue{
		id: TemplateErrorId,
		mdMsg: `
# Template error!

The README template could not be parsed or executed.

## Things you can try:
- Check the template syntax near the position in the error message
- Use only the fields of the model, for example:
~~~
{{ .name }} {{ range .recipes }}{{ .QualifiedName }}{{ end }}
~~~

- List the model fields with:
~~~
$ cookdoc model --format yaml
~~~`,
		docLinks: []HttpLink{"https://pkg.go.dev/text/template"},
	}

	readmeStaleIssue = &Issue{
		id: ReadmeStaleId,
		mdMsg: `
# README is out of date!

The README on disk differs from what the cookbook would render.

## Things you can try:
- Regenerate it:
~~~
$ cookdoc render
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or is invalid.

## Things you can try:
- Check the file location:
~~~
$ cookdoc config path
~~~

- Write a fresh default configuration:
~~~
$ cookdoc config init
~~~`,
		docLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	invalidQueryIssue = &Issue{
		id: InvalidQueryId,
		mdMsg: `
# Invalid query!

The expression could not be compiled or evaluated against the model.

## Examples:
~~~
$ cookdoc query 'len(recipes) > 0'
$ cookdoc query 'name + "@" + version'
$ cookdoc query 'map(attributes, .Path)'
~~~`,
		docLinks: []HttpLink{"https://expr-lang.org/docs/language-definition"},
	}

	issues = map[Id]*Issue{
		metadataNotFoundIssue.Id():       metadataNotFoundIssue,
		metadataParseErrorIssue.Id():     metadataParseErrorIssue,
		artifactParseErrorIssue.Id():     artifactParseErrorIssue,
		directoryNotAccessibleIssue.Id(): directoryNotAccessibleIssue,
		templateErrorIssue.Id():          templateErrorIssue,
		readmeStaleIssue.Id():            readmeStaleIssue,
		configLoadFailedIssue.Id():       configLoadFailedIssue,
		invalidQueryIssue.Id():           invalidQueryIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
