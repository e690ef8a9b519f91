package info_flow

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Options struct {
	RegisterBase Address
	EnvBase      Address
	ScratchBase  Address
	CacheEnabled bool
	Debug        DebugLevel
	Alerts       AlertHandler
	// Policy overrides the default dispatch table when non-nil.
	Policy FlowPolicy
}

func DefaultOptions() Options {
	return Options{
		RegisterBase: DefaultRegisterBase,
		EnvBase:      DefaultEnvBase,
		ScratchBase:  DefaultScratchBase,
		CacheEnabled: true,
	}
}

// Validate rejects bases whose fake ranges would run past MaxAddress.
func (o Options) Validate() error {
	if err := checkRange(o.RegisterBase, NumRegisters*RegisterStride); err != nil {
		return fmt.Errorf("register base: %w", err)
	}
	if err := checkRange(o.EnvBase, RegisterWidth); err != nil {
		return fmt.Errorf("env base: %w", err)
	}
	if err := checkRange(o.ScratchBase, RegisterWidth); err != nil {
		return fmt.Errorf("scratch base: %w", err)
	}
	return nil
}

// Engine propagates taint for one emulated core. It is not safe for
// concurrent use; run one Engine with its own Store per core.
type Engine struct {
	store    Store
	cache    *RegisterCache
	resolver Resolver
	policy   FlowPolicy
	alerts   AlertHandler
	logger   zerolog.Logger
	debug    DebugLevel

	runID       string
	envBase     Address
	scratchBase Address

	// split disk transfer correlation
	hdPending bool
	hdSource  Address

	envSaved  bool
	processed uint64
	current   *Operation
}

func NewEngine(store Store, opts Options) *Engine {
	policy := opts.Policy
	if policy == nil {
		policy = GenDefaultFlowPolicy()
	}
	runID := uuid.NewString()
	return &Engine{
		store:       store,
		cache:       NewRegisterCache(opts.CacheEnabled),
		resolver:    NewResolver(opts.RegisterBase),
		policy:      policy,
		alerts:      opts.Alerts,
		logger:      log.With().Str("module", "infoflow").Str("run", runID).Logger(),
		debug:       opts.Debug,
		runID:       runID,
		envBase:     opts.EnvBase,
		scratchBase: opts.ScratchBase,
	}
}

func (e *Engine) Store() Store {
	return e.store
}

func (e *Engine) Cache() *RegisterCache {
	return e.cache
}

func (e *Engine) Resolver() Resolver {
	return e.resolver
}

func (e *Engine) RunID() string {
	return e.runID
}

// Processed returns the number of operations handled successfully.
func (e *Engine) Processed() uint64 {
	return e.processed
}

// ProcessOperation applies the taint effect of one operation record. A
// record rejected with ErrInvalidInput leaves the store and cache untouched.
func (e *Engine) ProcessOperation(op *Operation) error {
	if err := op.Validate(); err != nil {
		return err
	}
	flow, ok := e.policy[op.ID]
	if !ok {
		return fmt.Errorf("%w: no handler for %s", ErrUnknownOperation, op.ID)
	}
	if e.DebugAtLeast(DebugHigh) {
		e.logger.Debug().Uint64("index", op.Index).Stringer("op", op).Msg("process operation")
	}
	e.current = op
	defer func() { e.current = nil }()
	if err := flow(e, op); err != nil {
		return fmt.Errorf("operation %d %s: %w", op.Index, op.ID, err)
	}
	e.processed++
	return nil
}

// ProcessAll stops at the first rejected record.
func (e *Engine) ProcessAll(ops []*Operation) error {
	for _, op := range ops {
		if err := e.ProcessOperation(op); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) raise(kind AlertKind, addr Address, n uint64) {
	alert := Alert{
		Kind:     kind,
		RunID:    e.runID,
		Address:  addr,
		Location: e.resolver.Render(addr),
		Size:     n,
		Time:     time.Now(),
	}
	if e.current != nil {
		alert.OpIndex = e.current.Index
		alert.Op = e.current.ID.String()
	}
	if reader, ok := e.store.(LabelReader); ok {
		alert.Labels = reader.Labels(addr, n)
	}
	e.logger.Warn().
		Str("kind", string(kind)).
		Str("location", alert.Location).
		Uint64("size", n).
		Strs("labels", alert.Labels).
		Msg("taint alert")
	if e.alerts != nil {
		e.alerts.HandleAlert(alert)
	}
}
