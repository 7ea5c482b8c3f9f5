package filemgr

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsRequestError(t *testing.T) {
	if !IsRequestError(ErrInvalidMIME) {
		t.Error("ErrInvalidMIME should be a request error")
	}
	if !IsRequestError(fmt.Errorf("saving upload: %w", ErrFileTooLarge)) {
		t.Error("wrapped ErrFileTooLarge should be a request error")
	}
	if IsRequestError(errors.New("disk full")) {
		t.Error("storage failures are not request errors")
	}
}
