package global

import (
	"context"
	"runtime"

	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/Troublor/erebus-infoflow/config"
)

var (
	ctx       context.Context
	ctxCancel context.CancelFunc
	pool      *ants.Pool
)

// Ctx is cancelled by Cleanup.
func Ctx() context.Context {
	if ctx == nil {
		ctx, ctxCancel = context.WithCancel(context.Background())
		RegisterCleanupTask(ctxCancel)
	}
	return ctx
}

func CtxCancel() context.CancelFunc {
	Ctx()
	return ctxCancel
}

// GoroutinePool is sized by the concurrency setting, one trace per worker; a
// non-positive setting means one worker per CPU. Replay workers recover their
// own panics, the handler here only catches what escapes them.
func GoroutinePool() *ants.Pool {
	if pool != nil {
		return pool
	}

	size := viper.GetInt(config.CConcurrency.Key)
	if size <= 0 {
		size = runtime.NumCPU()
	}
	var err error
	pool, err = ants.NewPool(size, ants.WithPanicHandler(func(p interface{}) {
		log.Error().Interface("panic", p).Msg("Worker panicked")
	}))
	if err != nil {
		log.Fatal().Err(err).Int("size", size).Msg("Failed to create goroutine pool")
	}
	RegisterCleanupTask(pool.Release)
	return pool
}
