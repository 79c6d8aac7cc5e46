package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNewFromRegistry(t *testing.T) {
	err := New("E100")
	if err.Code != "E100" {
		t.Errorf("Code = %q", err.Code)
	}
	if err.Category != CategoryConfig {
		t.Errorf("Category = %q", err.Category)
	}
	if err.Message == "" || err.Suggestion == "" || err.DocURL == "" {
		t.Errorf("registry fields not filled: %+v", err)
	}
	if got := err.Error(); !strings.HasPrefix(got, "E100: ") {
		t.Errorf("Error() = %q", got)
	}
}

func TestNewUnknownCode(t *testing.T) {
	err := New("E999")
	if err.Code != "E999" {
		t.Errorf("Code = %q", err.Code)
	}
	if err.Message != "unknown error" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := stderrors.New("open failed")
	err := New("E120").Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is does not see the wrapped cause")
	}
	if err.Detail != "open failed" {
		t.Errorf("Detail = %q, want the cause's message", err.Detail)
	}
}

func TestWrapKeepsExplicitDetail(t *testing.T) {
	err := New("E120").WithDetail("custom detail").Wrap(stderrors.New("cause"))
	if err.Detail != "custom detail" {
		t.Errorf("Detail = %q, want the explicit detail", err.Detail)
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "flag %s requires a value", "--stats")
	if err.Code != "" {
		t.Errorf("Code = %q, want empty", err.Code)
	}
	if err.Error() != "flag --stats requires a value" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestFormatStructured(t *testing.T) {
	err := New("E100").WithDetail("No loom.json found in /tmp/x")
	out := Format(err)

	for _, want := range []string{"E100", "configuration file not found", "No loom.json found", "Suggestion:", "loom-ui.dev"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatPlainHasNoANSI(t *testing.T) {
	out := FormatPlain(New("E101"))
	if strings.Contains(out, "\033[") {
		t.Errorf("FormatPlain contains ANSI escapes:\n%q", out)
	}
}

func TestFormatPlainError(t *testing.T) {
	out := FormatPlain(stderrors.New("boom"))
	if out != "Error: boom" {
		t.Errorf("FormatPlain = %q", out)
	}
}

func TestLookup(t *testing.T) {
	if _, _, ok := Lookup("E100"); !ok {
		t.Error("E100 missing from registry")
	}
	if _, _, ok := Lookup("E999"); ok {
		t.Error("E999 unexpectedly present")
	}
}
