package ioformat

import "flag"

// Options is the conventional key-value option bag every algorithm
// driver in cmd/ligra-run accepts, per spec section 6.
type Options struct {
	Symmetric  bool
	Compressed bool
	Mmap       bool
	Rounds     int
	Stats      bool
	Beta       float64
	Eps        float64
	Iters      int
	EdgeMap    string
	Delta      float64
	Permute    bool
	Pack       bool

	GraphPath string
	Src       uint32
}

// ParseOptions builds a flag.FlagSet wiring every conventional option
// from spec section 6 and parses args into an Options. Grounded on
// main.go's flag usage for CLI argument handling, generalized from a
// single hardcoded set of flags to the full conventional bag shared
// across every algorithm driver.
func ParseOptions(name string, args []string) (*Options, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	o := &Options{}
	fs.BoolVar(&o.Symmetric, "s", false, "treat the input graph as symmetric")
	fs.BoolVar(&o.Compressed, "c", false, "input graph is in compressed byte format (parsed; not used by ligra-run)")
	fs.BoolVar(&o.Mmap, "m", false, "mmap the input graph file instead of reading it fully (parsed; not used by ligra-run)")
	fs.IntVar(&o.Rounds, "rounds", 1, "number of timed rounds to run")
	fs.BoolVar(&o.Stats, "stats", false, "report per-round frontier/timing statistics")
	fs.Float64Var(&o.Beta, "beta", 0.2, "push/pull switch tuning parameter (parsed; not used by ligra-run)")
	fs.Float64Var(&o.Eps, "eps", 1e-6, "PageRank convergence epsilon")
	fs.IntVar(&o.Iters, "iters", 100, "maximum PageRank iteration count")
	fs.StringVar(&o.EdgeMap, "em", "", "edge-map flag overrides, comma-separated (parsed; not used by ligra-run)")
	fs.Float64Var(&o.Delta, "delta", 1.0, "weighted-BFS bucket width (parsed; not used by ligra-run)")
	fs.BoolVar(&o.Permute, "permute", false, "randomly permute vertex ids before running (parsed; not used by ligra-run)")
	fs.BoolVar(&o.Pack, "pack", false, "enable pack_edges during edge-map rounds")
	var src uint64
	fs.Uint64Var(&src, "src", 0, "source vertex for single-source algorithms")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	o.Src = uint32(src)
	rest := fs.Args()
	if len(rest) > 0 {
		o.GraphPath = rest[0]
	}
	return o, nil
}
