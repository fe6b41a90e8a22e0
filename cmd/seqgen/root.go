package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/lattice-data/seqgen/internal/config"
	"github.com/lattice-data/seqgen/internal/demo"
	"github.com/lattice-data/seqgen/internal/heartbeat"
	"github.com/lattice-data/seqgen/internal/stage"
)

var (
	flagScaling      float64
	flagNodeID       int
	flagNodeCount    int
	flagDatasetID    string
	flagOutputBase   string
	flagConfigDir    string
	flagStages       []string
	flagHeartbeatURL string
)

// RootCmd is the base command (spec.md §6 "CLI surface of the enclosing
// application"): flags -s/-i/-N/-m/-o/-c/-x, plus -h and -v (cobra
// defaults), grounded on sixafter-nanoid-cli/cmd's single-command layout.
var RootCmd = &cobra.Command{
	Use:     "seqgen",
	Short:   "Generate a deterministic, partitioned synthetic dataset",
	Version: "0.1.0",
	RunE:    runGenerate,
}

func init() {
	f := RootCmd.Flags()
	f.Float64VarP(&flagScaling, "scaling", "s", 1.0, "global scaling factor applied to base cardinalities")
	f.IntVarP(&flagNodeID, "node-id", "i", 0, "this node's index in [0, node-count)")
	f.IntVarP(&flagNodeCount, "node-count", "N", 1, "total number of nodes sharing the run")
	f.StringVarP(&flagDatasetID, "dataset-id", "m", "job1", "job/dataset identifier, used in output paths")
	f.StringVarP(&flagOutputBase, "output-base", "o", "./out", "base directory for file-sink output")
	f.StringVarP(&flagConfigDir, "config-dir", "c", "./config", "directory containing application.properties")
	f.StringArrayVarP(&flagStages, "stage", "x", nil, "run only this named stage (repeatable); default runs all")
	f.StringVar(&flagHeartbeatURL, "heartbeat-url", "", "coordinator base URL for HTTP heartbeats; empty disables")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfgPath := filepath.Join(flagConfigDir, "application.properties")
	f, err := os.Open(cfgPath)
	if err != nil {
		return fmt.Errorf("seqgen: opening %s: %w", cfgPath, err)
	}
	defer f.Close()

	cfg, err := config.Load(cfgPath, f)
	if err != nil {
		return err
	}

	// CLI flags override the config file's application.* keys.
	cfg.ScalingFactor = flagScaling
	cfg.NodeID = flagNodeID
	cfg.NodeCount = flagNodeCount
	cfg.JobID = flagDatasetID
	cfg.OutputBase = flagOutputBase
	cfg.ConfigDir = flagConfigDir

	ds, err := demo.BuildStages(cfg)
	if err != nil {
		return err
	}

	stages := ds.Stages
	if len(flagStages) > 0 {
		stages = filterStages(stages, flagStages)
	}
	log.Printf("Starting seqgen for node %d/%d, job %s", cfg.NodeID, cfg.NodeCount, cfg.JobID)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var hb *heartbeat.Client
	if flagHeartbeatURL != "" {
		hb = heartbeat.New(flagHeartbeatURL, fmt.Sprintf("%d", cfg.NodeID))
		go hb.Run(ctx, time.Second, func() (string, heartbeat.Status, float64) {
			return "generate", heartbeat.StatusRunning, 0
		})
	}

	start := time.Now()
	runErr := stage.RunStages(ctx, 0, stages)
	closeErr := ds.Close()

	if hb != nil {
		status := heartbeat.StatusDone
		if runErr != nil {
			status = heartbeat.StatusFailed
		}
		_ = hb.Send(context.Background(), "generate", status, 1.0)
	}

	if runErr != nil {
		log.Printf("Generation error: %v", runErr)
		return runErr
	}
	if closeErr != nil {
		return closeErr
	}

	log.Println("Generation stopped")
	elapsed := time.Since(start)
	fmt.Fprintf(cmd.OutOrStdout(), "completed %s stage(s) for node %d/%d in %s\n",
		humanize.Comma(int64(len(stages))), cfg.NodeID, cfg.NodeCount, elapsed)
	return nil
}

func filterStages(all []stage.NamedStage, names []string) []stage.NamedStage {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []stage.NamedStage
	for _, st := range all {
		if want[st.Name] {
			out = append(out, st)
		}
	}
	return out
}
