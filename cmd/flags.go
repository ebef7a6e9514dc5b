package cmd

import (
	"github.com/spf13/pflag"
)

// changed points dst at value when the named flag was given.
func changed[T any](flags *pflag.FlagSet, name string, dst **T, value T) {
	if flags.Changed(name) {
		v := value
		*dst = &v
	}
}
