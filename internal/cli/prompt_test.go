package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrompterLine(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("  ABC123  \n"), &out)
	if got := p.Line("Quiz code"); got != "ABC123" {
		t.Fatalf("expected trimmed line, got %q", got)
	}
	if !strings.Contains(out.String(), "Quiz code:") {
		t.Fatalf("expected label printed, got %q", out.String())
	}
}

func TestPrompterConfirm(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"maybe\n", false},
	}
	for _, tc := range cases {
		p := newPrompter(strings.NewReader(tc.input), &bytes.Buffer{})
		if got := p.Confirm("Submit anyway?"); got != tc.want {
			t.Fatalf("Confirm(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestPrompterNumberRetriesUntilValid(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("abc\n2\n"), &out)
	n, ok := p.Number("Answer")
	if !ok || n != 2 {
		t.Fatalf("expected 2 after retry, got %d %v", n, ok)
	}
	if !strings.Contains(out.String(), "Please enter a number.") {
		t.Fatalf("expected retry hint, got %q", out.String())
	}
}

func TestPrompterNumberBlankSkips(t *testing.T) {
	p := newPrompter(strings.NewReader("\n"), &bytes.Buffer{})
	if _, ok := p.Number("Answer"); ok {
		t.Fatalf("blank input must report no value")
	}
}
