package github

import (
	"encoding/json"
	"testing"
)

func TestPRUnmarshal(t *testing.T) {
	t.Parallel()

	raw := `{"number": 42, "title": "Fix auth flow", "body": "Fixes ENG-123", "headRefName": "fix/auth-flow", "author": {"login": "octocat"}}`

	var pr PR
	if err := json.Unmarshal([]byte(raw), &pr); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if pr.Number != 42 || pr.HeadRefName != "fix/auth-flow" || pr.Author.Login != "octocat" {
		t.Errorf("unexpected PR: %+v", pr)
	}
}

func TestLinearID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		pr   PR
		want string
	}{
		{
			name: "from branch name",
			pr:   PR{HeadRefName: "eng-123-fix-login"},
			want: "ENG-123",
		},
		{
			name: "uppercase branch",
			pr:   PR{HeadRefName: "DOC-975-feature"},
			want: "DOC-975",
		},
		{
			name: "from body",
			pr:   PR{HeadRefName: "fix/auth", Body: "Fixes ENG-456 by rewriting the handler"},
			want: "ENG-456",
		},
		{
			name: "body linear url",
			pr:   PR{HeadRefName: "tweak", Body: "See https://linear.app/acme/issue/ABC-7/slug"},
			want: "ABC-7",
		},
		{
			name: "branch wins over body",
			pr:   PR{HeadRefName: "eng-1-x", Body: "Related to ENG-2"},
			want: "ENG-1",
		},
		{
			name: "no identifier",
			pr:   PR{HeadRefName: "fix/auth", Body: "plain description"},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := LinearID(tt.pr); got != tt.want {
				t.Errorf("LinearID() = %q, want %q", got, tt.want)
			}
		})
	}
}
