// Command seqgen-lint validates configuration, enum-set, and
// combined-histogram files offline (spec.md §6 file formats), without
// running a generation stage, plus two diagnostic subcommands over the
// bundled demo dataset: coverage (clustered-provider position coverage via a
// roaring bitmap) and filter (SetterChain.Filter over an EqualityPredicate
// that binds type A's x field to the given value).
package main

import (
	"github.com/alecthomas/kong"
)

// CLI is seqgen-lint's flag surface, grounded on erigon's dependency on
// alecthomas/kong — a second, smaller CLI in the corpus to exercise kong
// without duplicating cmd/seqgen's cobra surface.
var CLI struct {
	Validate ValidateCmd `cmd:"" help:"Validate config/enum-set/histogram files offline."`
	Coverage CoverageCmd `cmd:"" help:"Report clustered-provider position coverage for the demo dataset."`
	Filter   FilterCmd   `cmd:"" help:"Evaluate SetterChain.Filter for x=<value> against the demo dataset's type A."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("seqgen-lint"),
		kong.Description("Offline validator for seqgen configuration and data files."),
	)
	ctx.FatalIfErrorf(ctx.Run())
}
