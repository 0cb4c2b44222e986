package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "transport error",
			code:    "R101",
			wantMsg: "Remote request failed",
			wantCat: CategoryTransport,
		},
		{
			name:    "status error",
			code:    "R102",
			wantMsg: "Unexpected response status",
			wantCat: CategoryStatus,
		},
		{
			name:    "decode error",
			code:    "R103",
			wantMsg: "Malformed JSON response",
			wantCat: CategoryDecode,
		},
		{
			name:    "unknown error code",
			code:    "R999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "resource %q not configured", "country")
	if err.Message != `resource "country" not configured` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Category != CategoryCLI {
		t.Errorf("Category = %q, want %q", err.Category, CategoryCLI)
	}
}

func TestError_Error(t *testing.T) {
	if got, want := New("R102").Error(), "R102: Unexpected response status"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrapped := New("R101").Wrap(fmt.Errorf("dial tcp: connection refused"))
	if got, want := wrapped.Error(), "R101: Remote request failed: dial tcp: connection refused"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	plain := &Error{Message: "test error"}
	if plain.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", plain.Error(), "test error")
	}
}

func TestError_Wrap(t *testing.T) {
	inner := stderrors.New("boom")
	outer := New("R101").Wrap(inner)

	if !stderrors.Is(outer, inner) {
		t.Error("errors.Is should find wrapped error")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "R101") != nil {
		t.Error("FromError(nil, ...) should return nil")
	}

	e := New("R102")
	if FromError(fmt.Errorf("ctx: %w", e), "R101") != e {
		t.Error("FromError should return an *Error found in the chain")
	}

	std := stderrors.New("plain")
	if got := FromError(std, "R103"); got.Wrapped != std || got.Code != "R103" {
		t.Errorf("FromError should wrap plain errors, got %+v", got)
	}
}

func TestCodeOf(t *testing.T) {
	if CodeOf(fmt.Errorf("op: %w", New("R103"))) != "R103" {
		t.Error("CodeOf should find wrapped code")
	}
	if CodeOf(stderrors.New("x")) != "" {
		t.Error("CodeOf should return empty for plain errors")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("R102").
		WithDetail("POST /api/Country returned 500").
		WithSuggestion("Check the server logs").
		Wrap(stderrors.New("status 500"))

	out := err.Format()
	for _, want := range []string{
		"ERROR R102: Unexpected response status",
		"POST /api/Country returned 500",
		"Cause: status 500",
		"Hint: Check the server logs",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}

	if got := err.FormatCompact(); got != "R102: Unexpected response status" {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Fprint(&buf, stderrors.New("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText(strings.Repeat("word ", 40), 20)
	for _, l := range lines {
		if len(l) > 20 {
			t.Errorf("line too long: %q", l)
		}
	}
	if wrapText("", 10) != nil {
		t.Error("empty text should produce no lines")
	}
}
