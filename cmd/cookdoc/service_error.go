// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/cookdoc/cookdoc/internal/issue"
	"github.com/cookdoc/cookdoc/internal/query"
	"github.com/cookdoc/cookdoc/pkg/artifact"
	"github.com/cookdoc/cookdoc/pkg/docmodel"
	"github.com/cookdoc/cookdoc/pkg/metadata"
)

// ServiceError is an error that carries optional rendering information for
// the CLI layer. When the CLI layer receives a ServiceError, it prints the
// issue catalog entry (if any) before the error itself is reported.
// Always create via newServiceError to enforce the Err-must-be-non-nil invariant.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID is the optional issue catalog ID for rendering help text.
	IssueID issue.Id
}

// newServiceError creates a ServiceError with a nil-Err panic guard.
func newServiceError(err error, issueID issue.Id) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{Err: err, IssueID: issueID}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// classifyError maps engine errors to the issue explaining them. It returns
// 0 when no catalog entry applies.
func classifyError(err error) issue.Id {
	var (
		loadErr     *docmodel.MetadataLoadError
		notFoundErr *docmodel.NotFoundError
	)
	switch {
	case errors.Is(err, metadata.ErrNotFound):
		return issue.MetadataNotFoundId
	case errors.As(err, &loadErr):
		return issue.MetadataParseErrorId
	case errors.Is(err, artifact.ErrParse):
		return issue.ArtifactParseErrorId
	case errors.As(err, &notFoundErr):
		return issue.DirectoryNotAccessibleId
	case errors.Is(err, query.ErrInvalidQuery):
		return issue.InvalidQueryId
	default:
		return 0
	}
}

// wrapBuildError turns a docmodel.Build failure into an actionable,
// classified error.
func wrapBuildError(err error, root string) error {
	id := classifyError(err)
	ec := issue.NewErrorContext().
		WithOperation("build documentation model").
		WithResource(root).
		Wrap(err)

	switch id {
	case issue.MetadataNotFoundId:
		ec.WithSuggestion("Run cookdoc from the package root or pass it as argument").
			WithSuggestion("Create a metadata.cue or metadata.hcl file")
	case issue.ArtifactParseErrorId, issue.MetadataParseErrorId:
		ec.WithSuggestion("Fix the syntax error reported above")
	case issue.DirectoryNotAccessibleId:
		ec.WithSuggestion("Make sure artifact directories are readable directories, not files")
	}

	return newServiceError(ec.Build(), id)
}

// renderServiceError prints the issue catalog entry of err, if err is a
// ServiceError with one.
func renderServiceError(stderr io.Writer, err error) {
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) || svcErr.IssueID == 0 {
		return
	}

	entry := issue.Get(svcErr.IssueID)
	if entry == nil {
		return
	}
	rendered, renderErr := entry.Render("dark")
	if renderErr != nil {
		log.Warn("failed to render issue catalog entry", "issue", svcErr.IssueID, "err", renderErr)
		return
	}
	fmt.Fprint(stderr, rendered)
}
