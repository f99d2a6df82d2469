package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-terrain/raster"
)

// derivedOutput is the value an output flag takes when given without a path.
// The path is then derived from the input name.
const derivedOutput = "auto"

// outputFlag returns the path of an optional output flag: empty when unset,
// derive() when given bare.
func outputFlag(cmd *cobra.Command, name string, derive func() string) string {
	v, _ := cmd.Flags().GetString(name)
	if v == derivedOutput {
		return derive()
	}
	return v
}

// outputSet writes the outputs of one command as a unit. When a write fails,
// the files already written by the set are removed again.
type outputSet struct {
	rio     *raster.IO
	written []string
}

// check fails unless every non-empty path has a codec.
func (o *outputSet) check(paths ...string) error {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := o.rio.Codec(p); err != nil {
			return err
		}
	}
	return nil
}

func (o *outputSet) write(path string, r *raster.Raster) error {
	return o.track(path, o.rio.Write(path, r))
}

// track records path as written, or discards the set when err is non-nil.
func (o *outputSet) track(path string, err error) error {
	if err != nil {
		o.discard()
		return err
	}
	o.written = append(o.written, path)
	return nil
}

func (o *outputSet) discard() {
	for _, p := range o.written {
		_ = os.Remove(p)
	}
	o.written = nil
}
