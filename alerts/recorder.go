package alerts

import (
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/allegro/bigcache"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/blake2b"

	"github.com/Troublor/erebus-infoflow/analysis/info_flow"
)

// Recorder forwards alerts to the next handlers and drops an alert whose
// fingerprint was already seen within the dedup window.
type Recorder struct {
	seen *bigcache.BigCache
	next []info_flow.AlertHandler

	mu        sync.Mutex
	forwarded uint64
	dropped   uint64
}

// NewRecorder with a zero window forwards every alert.
func NewRecorder(window time.Duration, next ...info_flow.AlertHandler) (*Recorder, error) {
	r := &Recorder{next: next}
	if window <= 0 {
		return r, nil
	}
	cfg := bigcache.DefaultConfig(window)
	cfg.CleanWindow = window
	cfg.Shards = 64
	cfg.MaxEntriesInWindow = 1 << 12
	cfg.MaxEntrySize = 8
	cfg.Verbose = false
	cache, err := bigcache.NewBigCache(cfg)
	if err != nil {
		return nil, err
	}
	r.seen = cache
	return r, nil
}

// Close stops the dedup window's cleanup goroutine. Alerts handled after
// Close are forwarded without deduplication.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seen == nil {
		return nil
	}
	err := r.seen.Close()
	r.seen = nil
	return err
}

// Fingerprint identifies an alert by what leaked and where, ignoring when.
func Fingerprint(alert info_flow.Alert) string {
	h, _ := blake2b.New256(nil)
	_, _ = h.Write([]byte(alert.RunID))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(alert.Kind))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(alert.Location))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(strings.Join(alert.Labels, ",")))
	return hex.EncodeToString(h.Sum(nil))
}

func (r *Recorder) HandleAlert(alert info_flow.Alert) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seen != nil {
		key := Fingerprint(alert)
		if _, err := r.seen.Get(key); err == nil {
			r.dropped++
			return
		}
		if err := r.seen.Set(key, []byte{1}); err != nil {
			log.Error().Err(err).Msg("Failed to remember alert")
		}
	}
	r.forwarded++
	for _, h := range r.next {
		h.HandleAlert(alert)
	}
}

func (r *Recorder) Forwarded() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.forwarded
}

func (r *Recorder) Dropped() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}
