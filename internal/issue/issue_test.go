// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	t.Parallel()

	for id := MetadataNotFoundId; id <= InvalidQueryId; id++ {
		is := Get(id)
		if is == nil {
			t.Errorf("Get(%d) returned nil", id)
			continue
		}
		if is.Id() != id {
			t.Errorf("Get(%d).Id() = %d", id, is.Id())
		}
	}

	if Get(Id(0)) != nil {
		t.Error("Get(0) should return nil")
	}
}

func TestValues(t *testing.T) {
	t.Parallel()

	if got, want := len(Values()), int(InvalidQueryId); got != want {
		t.Errorf("len(Values()) = %d, want %d", got, want)
	}
}

func TestAllIssuesHaveContent(t *testing.T) {
	t.Parallel()

	for _, is := range Values() {
		if strings.TrimSpace(string(is.MarkdownMsg())) == "" {
			t.Errorf("issue %d has no message", is.Id())
		}
	}
}

func TestIssue_DocLinksIsCopy(t *testing.T) {
	t.Parallel()

	is := Get(InvalidQueryId)
	links := is.DocLinks()
	if len(links) == 0 {
		t.Fatal("InvalidQueryId should have doc links")
	}
	links[0] = "changed"
	if is.DocLinks()[0] == "changed" {
		t.Error("DocLinks() exposed internal state")
	}
}

func TestIssue_Render(t *testing.T) {
	t.Parallel()

	for _, is := range Values() {
		out, err := is.Render("notty")
		if err != nil {
			t.Errorf("issue %d: Render() error: %v", is.Id(), err)
			continue
		}
		if strings.TrimSpace(out) == "" {
			t.Errorf("issue %d: Render() returned empty output", is.Id())
		}
	}

	out, err := Get(MetadataNotFoundId).Render("notty")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "No metadata file found") {
		t.Errorf("rendered output missing heading:\n%s", out)
	}
}
