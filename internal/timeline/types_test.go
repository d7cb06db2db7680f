package timeline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestShortSHA(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"0123456789abcdef0123456789abcdef01234567", "0123456"},
		{"abc1234", "abc1234"},
		{"abc", "abc"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ShortSHA(tt.in); got != tt.want {
			t.Errorf("ShortSHA(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTitleAndBody(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		wantTitle string
		wantBody  string
	}{
		{"one line", "Fix typo", "Fix typo", ""},
		{"title and body", "Add parser\n\nHandles nested blocks.\nAnd comments.", "Add parser", "Handles nested blocks.\nAnd comments."},
		{"crlf", "Title\r\n\r\nBody\r\n", "Title", "Body"},
		{"empty", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Title(tt.message); got != tt.wantTitle {
				t.Errorf("Title = %q, want %q", got, tt.wantTitle)
			}
			if got := Body(tt.message); got != tt.wantBody {
				t.Errorf("Body = %q, want %q", got, tt.wantBody)
			}
		})
	}
}

func TestReverse(t *testing.T) {
	in := []CommitSummary{{SHA: "c"}, {SHA: "b"}, {SHA: "a"}}
	got := Reverse(in)
	want := []CommitSummary{{SHA: "a"}, {SHA: "b"}, {SHA: "c"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Reverse mismatch (-want +got):\n%s", diff)
	}
	if in[0].SHA != "c" {
		t.Error("Reverse must not modify its input")
	}
	if got := Reverse([]int(nil)); len(got) != 0 {
		t.Errorf("Reverse(nil) = %v, want empty", got)
	}
}

func TestDocumentFullName(t *testing.T) {
	d := &Document{Owner: "octo", Repo: "hello"}
	if got := d.FullName(); got != "octo/hello" {
		t.Errorf("FullName = %q", got)
	}
}
