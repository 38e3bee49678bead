package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

func TestSentinels_MatchThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("db error: %w", ErrorNotFound)
	if !errors.Is(wrapped, ErrorNotFound) {
		t.Fatalf("wrapped error must match ErrorNotFound")
	}
	if errors.Is(wrapped, ErrorAlreadyExists) {
		t.Fatalf("wrapped error must not match ErrorAlreadyExists")
	}
}
