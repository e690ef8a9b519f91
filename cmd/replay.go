package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/semaphore"

	"github.com/Troublor/erebus-infoflow/alerts"
	"github.com/Troublor/erebus-infoflow/analysis/info_flow"
	"github.com/Troublor/erebus-infoflow/analysis/taint_store"
	"github.com/Troublor/erebus-infoflow/config"
	"github.com/Troublor/erebus-infoflow/global"
	"github.com/Troublor/erebus-infoflow/helpers"
	"github.com/Troublor/erebus-infoflow/trace"
)

var (
	cReplayPersist = config.Def{
		Type:    config.Bool,
		Key:     "persist",
		Default: false,
		Desc:    "save alerts to mongodb",
	}
	cReplayGraph = config.Def{
		Key:      "graph",
		KeyShort: "g",
		Default:  "",
		Desc:     "directory to write one provenance graph per trace into",
	}
	cReplayGraphviz = config.Def{
		Type:    config.Bool,
		Key:     "graphviz",
		Default: false,
		Desc:    "lay out the provenance graph with graphviz",
	}
	cReplayOpenFiles = config.Def{
		Type:    config.Int64,
		Key:     "open-files",
		Default: int64(8),
		Desc:    "maximum number of trace files open at once",
	}
)

var cReplayGroup = config.NewDefGroup("replay",
	cReplayPersist,
	cReplayGraph,
	cReplayGraphviz,
	cReplayOpenFiles,
)

var replayCmd = &cobra.Command{
	Use:   "replay <trace>...",
	Short: "Propagate taint through one binary trace per emulated core",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return replayTraces(args)
	},
}

func init() {
	replayCmd.Flags().AddFlagSet(cReplayGroup.FlagSet())
	cReplayGroup.BindToViper()
}

type replaySettings struct {
	engine      info_flow.Options
	dedupWindow time.Duration
	graphDir    string
	graphviz    bool
	sink        *alerts.MongoSink
}

type replayResult struct {
	path     string
	runID    string
	records  uint64
	rejected uint64
	extents  int
	alerts   []info_flow.Alert
	elapsed  time.Duration
	perOp    time.Duration
}

func replayTraces(paths []string) error {
	engineOpts, err := global.EngineOptions()
	if err != nil {
		return err
	}
	window, err := time.ParseDuration(viper.GetString(config.CAlertDedupWindow.Key))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", config.CAlertDedupWindow.Key, err)
	}
	settings := replaySettings{
		engine:      engineOpts,
		dedupWindow: window,
		graphDir:    viper.GetString(cReplayGroup.KeyOf(cReplayGraph)),
		graphviz:    viper.GetBool(cReplayGroup.KeyOf(cReplayGraphviz)),
	}
	if viper.GetBool(cReplayGroup.KeyOf(cReplayPersist)) {
		log.Info().Str("db", viper.GetString(config.CMongoDatabase.Key)).Msg("Connecting to mongo")
		settings.sink = alerts.NewMongoSink(global.AlertDatabase())
	}

	log.Info().
		Int("traces", len(paths)).
		Str("debug", engineOpts.Debug.String()).
		Bool("cache", engineOpts.CacheEnabled).
		Str("dedup-window", window.String()).
		Msg("Replaying traces")

	ctx := global.Ctx()
	pool := global.GoroutinePool()
	openFiles := semaphore.NewWeighted(viper.GetInt64(cReplayGroup.KeyOf(cReplayOpenFiles)))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures []error
	)
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		failures = append(failures, err)
	}
	for _, path := range paths {
		path := path
		if err := openFiles.Acquire(ctx, 1); err != nil {
			log.Error().Err(err).Msg("Failed to acquire trace semaphore")
			break
		}
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			defer openFiles.Release(1)
			res, err := replayTrace(path, settings)
			if err != nil {
				log.Error().Err(err).Str("trace", path).Msg("Failed to replay trace")
				fail(err)
				return
			}
			log.Info().
				Str("trace", res.path).
				Str("run", res.runID).
				Uint64("records", res.records).
				Uint64("rejected", res.rejected).
				Int("extents", res.extents).
				Int("alerts", len(res.alerts)).
				Str("elapsed", res.elapsed.String()).
				Str("per-record", res.perOp.String()).
				Msg("Trace replayed")
		})
		if err != nil {
			wg.Done()
			openFiles.Release(1)
			log.Error().Err(err).Str("trace", path).Msg("Failed to submit trace")
			fail(err)
		}
	}
	wg.Wait()

	if settings.sink != nil {
		if err := settings.sink.Flush(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to save alerts")
			fail(err)
		}
	}
	if len(failures) > 0 {
		return fmt.Errorf("%d of %d traces failed: %w", len(failures), len(paths), failures[0])
	}
	return nil
}

// recoverReplay turns a panic in a trace worker into that trace's error.
// The pool's panic handler would otherwise only log it.
func recoverReplay(path string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("replay of %s aborted: %v", path, r)
	}
}

// replayTrace runs one trace through its own engine and store. Rejected
// records are logged and skipped; a truncated stream ends the replay.
func replayTrace(path string, settings replaySettings) (_ *replayResult, err error) {
	defer recoverReplay(path, &err)

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	collector := &info_flow.AlertCollector{}
	next := []info_flow.AlertHandler{collector}
	if settings.sink != nil {
		next = append(next, settings.sink)
	}
	recorder, err := alerts.NewRecorder(settings.dedupWindow, next...)
	if err != nil {
		return nil, err
	}
	defer recorder.Close()

	var storeOpts []taint_store.Option
	var graph *taint_store.FlowGraph
	if settings.graphDir != "" {
		graph = taint_store.NewFlowGraph(info_flow.NewResolver(settings.engine.RegisterBase).Render)
		storeOpts = append(storeOpts, taint_store.WithFlowGraph(graph))
	}
	store := taint_store.New(storeOpts...)
	opts := settings.engine
	opts.Alerts = recorder
	engine := info_flow.NewEngine(store, opts)

	res := &replayResult{path: path, runID: engine.RunID()}
	overhead := &helpers.Overhead{}
	reader := trace.NewReader(f)
	for {
		op, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		res.records++
		overhead.Resume()
		err = engine.ProcessOperation(op)
		overhead.Pause()
		if errors.Is(err, info_flow.ErrInvalidInput) {
			res.rejected++
			log.Warn().Err(err).Str("trace", path).Msg("Record rejected")
			continue
		}
		if err != nil {
			return nil, err
		}
	}
	res.elapsed = overhead.Time()
	res.perOp = overhead.Mean()
	res.extents = store.Len()
	res.alerts = collector.Alerts

	if graph != nil {
		if err := writeGraph(graph, settings, path); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func writeGraph(graph *taint_store.FlowGraph, settings replaySettings, tracePath string) error {
	name := strings.TrimSuffix(filepath.Base(tracePath), filepath.Ext(tracePath))
	var (
		data []byte
		err  error
	)
	if settings.graphviz {
		data, err = helpers.ToGraphvizDot(graph.Graph())
	} else {
		data, err = graph.MarshalDOT(name)
	}
	if err != nil {
		return err
	}
	if err := os.MkdirAll(settings.graphDir, 0o755); err != nil {
		return err
	}
	out := filepath.Join(settings.graphDir, name+".dot")
	log.Info().Str("trace", tracePath).Str("graph", out).Msg("Writing provenance graph")
	return os.WriteFile(out, data, 0o644)
}
