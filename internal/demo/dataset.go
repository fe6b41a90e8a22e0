// Package demo wires a small two-type dataset — type A clustered over a
// string domain, type B clustered-referencing A — end to end through
// config, the stage driver, and the output sinks (spec.md §8 scenarios 1
// and 2). It is the concrete generator bundled with cmd/seqgen, the way
// sixafter-nanoid-cli's "generate" command directly implements the one
// feature its library exists for rather than sitting behind a plugin
// layer spec.md never names.
package demo

import (
	"context"
	"fmt"

	"github.com/lattice-data/seqgen/internal/config"
	"github.com/lattice-data/seqgen/internal/output"
	"github.com/lattice-data/seqgen/internal/provider"
	"github.com/lattice-data/seqgen/internal/record"
	"github.com/lattice-data/seqgen/internal/reference"
	"github.com/lattice-data/seqgen/internal/rng"
	"github.com/lattice-data/seqgen/internal/setter"
	"github.com/lattice-data/seqgen/internal/stage"
)

// TypeA is the parent record type: a single clustered string field.
type TypeA struct {
	record.Base
	X string
}

// TypeB is the child record type: a clustered reference to TypeA.
type TypeB struct {
	record.Base
	Parent record.Ref[*TypeA]
	Slot   uint64
}

const (
	// FieldAX is type A's single field ID, exported so offline tooling
	// (cmd/seqgen-lint) can build EqualityPredicates against it without
	// duplicating the field numbering.
	FieldAX      record.FieldID = 0
	fieldBParent record.FieldID = 0

	// DomainAX and WeightsAX are type A's clustered field parameters,
	// shared between BuildStages and ChainA so lint tooling exercises the
	// exact same provider the real run would.
)

var (
	DomainAX  = []string{"low", "mid", "high"}
	WeightsAX = []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}

	// MaxChildren and ChildrenCount reproduce spec.md §8 Scenario 2
	// exactly: max_children=10, children_count constant 7.
	MaxChildren   = 10
	ChildrenCount = 7
)

// ChainA builds type A's SetterChain in the given mode — shared between
// BuildStages' sequential iterator chain, its ModeRandom Inspector chain,
// and cmd/seqgen-lint's offline Filter/coverage checks, so every caller
// exercises the identical provider.
func ChainA(mode setter.Mode, cardinality uint64) *setter.Chain[*TypeA] {
	chain := setter.NewChain[*TypeA](mode, cardinality)
	chain.Add(setter.FieldSetter[*TypeA, string]{
		FID:      FieldAX,
		VP:       provider.NewClustered[*TypeA](cardinality, DomainAX, WeightsAX),
		GetField: func(r *TypeA) string { return r.X },
		SetField: func(r *TypeA, v string) { r.X = v },
	})
	return chain
}

func encodeA(r *TypeA) []byte { return []byte(r.X) }
func encodeB(r *TypeB) []byte {
	return []byte(fmt.Sprintf("%d\t%d", r.Parent.ParentGenID, r.Slot))
}

// Dataset holds everything BuildStages resolved: the two stages to run in
// order and the output sinks they write through, so the caller can Close
// them once both stages finish.
type Dataset struct {
	Stages []stage.NamedStage
	Sinks  []output.OutputCollector
}

// Close flushes and closes every output sink, returning the first error.
func (d *Dataset) Close() error {
	var first error
	for _, s := range d.Sinks {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// BuildStages resolves cardinalities from cfg, builds the two record
// types' SetterChains, opens their output sinks, and returns one stage per
// type (A before B, since B's reference provider needs A's chain — not a
// strict data dependency here since Inspector recomputes on demand, but
// mirroring the ordering a real nested dataset would require).
func BuildStages(cfg *config.Config) (*Dataset, error) {
	cardA, err := cfg.Cardinality("A", nil)
	if err != nil {
		return nil, err
	}
	cardB, err := cfg.Cardinality("B", nil)
	if err != nil {
		return nil, err
	}

	root := rng.New(rng.KindCompound, cfg.MasterSeed)
	prngA := root.Clone()
	prngB := root.Clone()
	prngB.NextSubstream()
	prngAInspect := root.Clone()

	chainA := ChainA(setter.ModeSequential, cardA)
	inspectChainA := ChainA(setter.ModeRandom, cardA)
	insp := reference.NewInspector[*TypeA](func() *TypeA { return &TypeA{} }, prngAInspect, inspectChainA)

	clusteredRef := &reference.Clustered[*TypeB, *TypeA]{
		MaxChildren:   MaxChildren,
		ChildrenCount: provider.Const[*TypeA, int]{Value: ChildrenCount},
		Parent:        insp,
		SetSlot:       func(child *TypeB, slot uint64) { child.Slot = slot },
	}

	chainB := setter.NewChain[*TypeB](setter.ModeSequential, cardB)
	chainB.Add(setter.ReferenceSetter[*TypeB, *TypeA]{
		FID:       fieldBParent,
		RP:        clusteredRef,
		GetParent: func(r *TypeB) record.Ref[*TypeA] { return r.Parent },
		SetParent: func(r *TypeB, v record.Ref[*TypeA]) { r.Parent = v },
	})

	sinkA, err := openSink(cfg, "typeA")
	if err != nil {
		return nil, err
	}
	sinkB, err := openSink(cfg, "typeB")
	if err != nil {
		sinkA.Close()
		return nil, err
	}

	// A fixed-model type is owned entirely by node 0 (see Config.NodeSlice).
	slice := func(typeName string, card uint64) (uint64, uint64) {
		if cfg.Partitioning[typeName].Model != config.ModelFixed {
			return cfg.NodeSlice(card)
		}
		if cfg.NodeID == 0 {
			return 0, card
		}
		return 0, 0
	}
	beginA, endA := slice("A", cardA)
	beginB, endB := slice("B", cardB)

	taskA := func(ctx context.Context) error {
		var progress stage.Progress
		return stage.RunIterator[*TypeA](ctx, func() *TypeA { return &TypeA{} }, chainA, prngA, beginA, endA, encodeA, sinkA, &progress)
	}
	taskB := func(ctx context.Context) error {
		var progress stage.Progress
		return stage.RunIterator[*TypeB](ctx, func() *TypeB { return &TypeB{} }, chainB, prngB, beginB, endB, encodeB, sinkB, &progress)
	}

	return &Dataset{
		Stages: []stage.NamedStage{
			{Name: "typeA", Tasks: []stage.Task{taskA}},
			{Name: "typeB", Tasks: []stage.Task{taskB}},
		},
		Sinks: []output.OutputCollector{sinkA, sinkB},
	}, nil
}

func openSink(cfg *config.Config, generatorName string) (output.OutputCollector, error) {
	switch cfg.OutputType {
	case config.OutputFile:
		path := output.FilePath(cfg.OutputBase, cfg.JobID, cfg.NodeID, generatorName)
		return output.NewFileCollector(path, cfg.WriteBufferSize)
	case config.OutputSocket:
		return output.NewSocketCollector(cfg.OutputPort, 0)
	default:
		return &output.VoidCollector{}, nil
	}
}
