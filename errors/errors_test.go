package errors

import (
	"fmt"
	"testing"
)

func TestSproutError(t *testing.T) {
	// Test basic error creation
	err := New(ErrCodeTemplateNotFound, "template not found")
	if err.Code != ErrCodeTemplateNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeTemplateNotFound, err.Code)
	}

	// Test error wrapping
	cause := fmt.Errorf("underlying error")
	wrapped := Wrap(cause, ErrCodeInstallFailed, "install failed")

	if wrapped.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	// Test Is function
	if !Is(wrapped, ErrCodeInstallFailed) {
		t.Error("Is should return true for matching code")
	}

	if Is(wrapped, ErrCodeTemplateNotFound) {
		t.Error("Is should return false for non-matching code")
	}

	// Test WithDetail
	detailed := err.WithDetail("template", "cra-template").WithDetail("path", "/tmp/app")
	if detailed.Details["template"] != "cra-template" {
		t.Error("WithDetail should add details")
	}
}

func TestErrorConstructors(t *testing.T) {
	// Test TemplateNotFound
	err := TemplateNotFound("cra-template", "/tmp/app/node_modules/cra-template")
	if err.Code != ErrCodeTemplateNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeTemplateNotFound, err.Code)
	}
	if err.Details["template"] != "cra-template" {
		t.Error("TemplateNotFound should include template detail")
	}

	// Test InstallFailed
	err = InstallFailed("npm", fmt.Errorf("exit status 1"))
	if err.Code != ErrCodeInstallFailed {
		t.Errorf("expected code %s, got %s", ErrCodeInstallFailed, err.Code)
	}
	if err.Details["manager"] != "npm" {
		t.Error("InstallFailed should include manager detail")
	}

	// Test TemplateRequired
	err = TemplateRequired()
	if err.Code != ErrCodeTemplateRequired {
		t.Errorf("expected code %s, got %s", ErrCodeTemplateRequired, err.Code)
	}
}
