// Package target carries the data-model constants of the compilation
// target: the byte sizes of the basic C types and the signedness of
// plain char. The values live in target.go, which cmd/gentarget
// renders from testdata/target.yaml; edit the YAML and regenerate
// rather than editing target.go.
package target

//go:generate go run github.com/jcrawley/hazel-cc/cmd/gentarget --config ../../testdata/target.yaml --output target.go

import (
	"fmt"
	"io"
)

// Describe writes the target layout to w, one field per line.
func Describe(w io.Writer) {
	fmt.Fprintf(w, "target: %s\n", Name)
	fmt.Fprintf(w, "pointer: %d bytes\n", PointerBytes)
	fmt.Fprintf(w, "int: %d bytes\n", IntBytes)
	fmt.Fprintf(w, "long: %d bytes\n", LongBytes)
	fmt.Fprintf(w, "long long: %d bytes\n", LongLongBytes)
	fmt.Fprintf(w, "wchar_t: %d bytes\n", WcharBytes)
	fmt.Fprintf(w, "char signed: %v\n", CharSigned)
}
