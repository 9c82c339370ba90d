package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestIntegrationDParseBasic tests that -dparse round-trips basic inputs
func TestIntegrationDParseBasic(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect []string // Strings that must appear in output
	}{
		{
			name:   "empty function",
			input:  "int main() {}",
			expect: []string{"int main()", "{", "}"},
		},
		{
			name:   "return zero",
			input:  "int f() { return 0; }",
			expect: []string{"int f()", "return 0;"},
		},
		{
			name:   "arithmetic",
			input:  "int f() { return 1 + 2 * 3; }",
			expect: []string{"int f()", "return 1 + 2 * 3;"},
		},
		{
			name:   "function with params",
			input:  "int add(int a, int b) { return a + b; }",
			expect: []string{"int add(int a, int b)", "return a + b;"},
		},
		{
			name:   "if statement",
			input:  "int f(int x) { if (x) return 1; return 0; }",
			expect: []string{"if (x)", "return 1;", "return 0;"},
		},
		{
			name:   "while loop",
			input:  "int f(int x) { while (x) x--; return 0; }",
			expect: []string{"while (x)", "x--;"},
		},
		{
			name:   "for loop with declaration",
			input:  "int f(void) { for (int i = 0; i < 10; i++) ; return 0; }",
			expect: []string{"for (int i = 0; i < 10; i++)", "return 0;"},
		},
		{
			name:   "ternary",
			input:  "int f(int a) { return a ? 1 : 2; }",
			expect: []string{"return a ? 1 : 2;"},
		},
		{
			name:   "cast",
			input:  "int f(long x) { return (int)x; }",
			expect: []string{"return (int)x;"},
		},
		{
			name:   "sizeof type",
			input:  "int f(void) { return sizeof(int); }",
			expect: []string{"return sizeof(int);"},
		},
		{
			name:   "struct definition",
			input:  "struct point { int x; int y; };",
			expect: []string{"struct point {", "int x;", "int y;"},
		},
		{
			name:   "enum definition",
			input:  "enum color { RED, GREEN = 5 };",
			expect: []string{"enum color {", "RED,", "GREEN = 5"},
		},
		{
			name:   "typedef",
			input:  "typedef int myint;",
			expect: []string{"typedef int myint;"},
		},
		{
			name:   "typedef with const pointer",
			input:  "typedef const char *cstr;",
			expect: []string{"typedef const char *cstr;"},
		},
		{
			name:   "pointer declaration",
			input:  "int *p;",
			expect: []string{"int *p;"},
		},
		{
			name:   "K&R definition",
			input:  "int max(a, b) int a; int b; { return a; }",
			expect: []string{"int max(a, b)", "int a;", "int b;", "return a;"},
		},
		{
			name:   "comments are transparent",
			input:  "int /* size */ x = 1; // done",
			expect: []string{"int x = 1;"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			testFile := filepath.Join(tmpDir, "test.c")
			if err := os.WriteFile(testFile, []byte(tc.input), 0644); err != nil {
				t.Fatalf("failed to write test file: %v", err)
			}

			resetDebugFlags()
			var out, errOut bytes.Buffer
			cmd := newRootCmd(&out, &errOut)
			cmd.SetArgs([]string{"--dparse", testFile})
			if err := cmd.Execute(); err != nil {
				t.Fatalf("hazel-cc failed: %v\nStderr: %s", err, errOut.String())
			}

			output := out.String()
			for _, exp := range tc.expect {
				if !strings.Contains(output, exp) {
					t.Errorf("expected output to contain %q\nGot:\n%s", exp, output)
				}
			}
		})
	}
}

// TestIntegrationReparse feeds -dparse output back through the parser
// and checks the second rendering is identical.
func TestIntegrationReparse(t *testing.T) {
	inputs := []string{
		"int add(int a, int b) { return a + b; }",
		"struct node { struct node *next; int value; };",
		"int f(int n) { while (n > 1) n = n / 2; return n; }",
		"typedef unsigned long size_type; size_type total;",
	}

	for i, input := range inputs {
		tmpDir := t.TempDir()
		first := filepath.Join(tmpDir, "test.c")
		if err := os.WriteFile(first, []byte(input), 0644); err != nil {
			t.Fatalf("failed to write test file: %v", err)
		}

		resetDebugFlags()
		var out1, errOut1 bytes.Buffer
		cmd := newRootCmd(&out1, &errOut1)
		cmd.SetArgs([]string{"--dparse", first})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("inputs[%d] - first parse failed: %v\nStderr: %s", i, err, errOut1.String())
		}

		second := filepath.Join(tmpDir, "again.c")
		if err := os.WriteFile(second, out1.Bytes(), 0644); err != nil {
			t.Fatalf("failed to write reparse file: %v", err)
		}

		resetDebugFlags()
		var out2, errOut2 bytes.Buffer
		cmd = newRootCmd(&out2, &errOut2)
		cmd.SetArgs([]string{"--dparse", second})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("inputs[%d] - reparse failed: %v\nStderr: %s", i, err, errOut2.String())
		}

		if out1.String() != out2.String() {
			t.Errorf("inputs[%d] - reparse differs\nFirst:\n%s\nSecond:\n%s", i, out1.String(), out2.String())
		}
	}
}
