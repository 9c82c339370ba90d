package target

import (
	"strings"
	"testing"
)

func TestLayoutSanity(t *testing.T) {
	if Name == "" {
		t.Error("target name is empty")
	}
	if PointerBytes != 4 && PointerBytes != 8 {
		t.Errorf("pointer size %d bytes, want 4 or 8", PointerBytes)
	}
	if IntBytes > LongBytes || LongBytes > LongLongBytes {
		t.Errorf("integer sizes not nondecreasing: int %d, long %d, long long %d",
			IntBytes, LongBytes, LongLongBytes)
	}
	if WcharBytes <= 0 {
		t.Errorf("wchar_t size %d bytes, want positive", WcharBytes)
	}
}

func TestDescribe(t *testing.T) {
	var buf strings.Builder
	Describe(&buf)
	out := buf.String()

	for _, want := range []string{
		"target: x86_64-linux",
		"pointer: 8 bytes",
		"int: 4 bytes",
		"long: 8 bytes",
		"long long: 8 bytes",
		"wchar_t: 4 bytes",
		"char signed: true",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Describe output missing %q:\n%s", want, out)
		}
	}

	if got := strings.Count(out, "\n"); got != 7 {
		t.Errorf("Describe wrote %d lines, want 7", got)
	}
}
