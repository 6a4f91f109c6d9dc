package buildgen

import (
	"fmt"
	"io"
)

// Directives is the adapter between the generator and the invoking build
// system. The generator talks to the build system through prefixed lines
// on its stdout; the Makefile greps for them. Keeping the protocol behind
// this type keeps directive formatting out of the orchestration logic.
//
// Protocol:
//
//	build-gen:env:KEY=VALUE          make VALUE available as a build constant
//	build-gen:rerun-if-changed=PATH  re-run the generator when PATH changes
type Directives struct {
	w io.Writer
}

// NewDirectives creates a directive emitter writing to w.
func NewDirectives(w io.Writer) *Directives {
	return &Directives{w: w}
}

// SetEnv declares a build constant for the compiled program.
func (d *Directives) SetEnv(key, value string) error {
	_, err := fmt.Fprintf(d.w, "build-gen:env:%s=%s\n", key, value)
	return err
}

// RerunIfChanged declares a rebuild trigger for the generator itself.
func (d *Directives) RerunIfChanged(path string) error {
	_, err := fmt.Fprintf(d.w, "build-gen:rerun-if-changed=%s\n", path)
	return err
}
