package tron

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// defaultWatchInterval is the fixed delay between the end of one event poll
// and the start of the next.
const defaultWatchInterval = 3 * time.Second

// Event is one decoded event occurrence delivered to a watch handler.
type Event struct {
	Name        string
	BlockNumber int64
	TxID        string
	Values      map[string]any
	Raw         *EventRecord
}

// EventHandler receives either a newly observed event or a fetch error.
// Exactly one of the two arguments is set per invocation.
type EventHandler func(*Event, error)

// Watch starts watching the event feed for this entry. The handler receives
// each new event exactly once; fetch failures are delivered as errors
// without ending the watch. Precondition violations are returned and no
// watcher starts. The watch ends when Stop is called or ctx is cancelled.
func (m *Method) Watch(ctx context.Context, handler EventHandler) (*Watcher, error) {
	if m.event == nil {
		return nil, ErrNotEvent
	}
	if m.contract.address.IsZero() {
		return nil, ErrNoAddress
	}
	if !m.contract.provider.HasEventServer() {
		return nil, ErrNoEventServer
	}
	if handler == nil {
		return nil, fmt.Errorf("tron: watch requires a handler")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	w := &Watcher{
		method:   m,
		handler:  handler,
		ctx:      ctx,
		interval: m.watchInterval,
		seen:     make(map[string]struct{}),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	// The first pass runs synchronously on the caller's goroutine.
	w.poll()
	go w.run()
	return w, nil
}

// Watcher is one active event watch. Its dedup set and block watermark are
// private to the watch and discarded when it ends.
type Watcher struct {
	method   *Method
	handler  EventHandler
	ctx      context.Context
	interval time.Duration

	mu        sync.Mutex
	stopped   bool
	seen      map[string]struct{}
	watermark int64
	hasMark   bool

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// Stop ends the watch. It is idempotent and safe to call from inside the
// handler. An in-flight fetch is not aborted, but no delivery starts after
// Stop returns.
func (w *Watcher) Stop() {
	w.mu.Lock()
	w.stopped = true
	w.mu.Unlock()
	w.stopOnce.Do(func() {
		close(w.stop)
	})
}

// Stopped reports whether Stop has been called.
func (w *Watcher) Stopped() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stopped
}

// Done is closed once the poll loop has exited.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

func (w *Watcher) run() {
	defer close(w.done)
	timer := time.NewTimer(w.interval)
	defer timer.Stop()
	for {
		select {
		case <-w.stop:
			return
		case <-w.ctx.Done():
			return
		case <-timer.C:
			w.poll()
			// Fixed-delay pacing: the next interval starts after the
			// pass completes.
			timer.Reset(w.interval)
		}
	}
}

// poll performs one fetch-and-deliver pass. Two independent filters decide
// delivery: full-record dedup against everything delivered so far, and the
// block watermark. Records at the watermark block pass the watermark test,
// so a same-block newcomer is not lost; dedup suppresses the re-fetched
// ones already delivered.
func (w *Watcher) poll() {
	records, err := w.method.contract.provider.ContractEvents(w.ctx, w.method.contract.address, w.method.event.RawName)
	if err != nil {
		w.deliver(nil, err)
		return
	}
	if len(records) == 0 {
		return
	}

	maxBlock := records[0].BlockNumber
	for _, r := range records[1:] {
		if r.BlockNumber > maxBlock {
			maxBlock = r.BlockNumber
		}
	}

	for i := range records {
		r := &records[i]
		fp := r.Fingerprint()

		w.mu.Lock()
		_, dup := w.seen[fp]
		old := w.hasMark && r.BlockNumber < w.watermark
		if !dup && !old {
			w.seen[fp] = struct{}{}
		}
		w.mu.Unlock()

		if dup || old {
			continue
		}
		if !w.deliver(w.decodeRecord(r), nil) {
			return
		}
	}

	w.mu.Lock()
	w.watermark = maxBlock
	w.hasMark = true
	w.mu.Unlock()
}

// deliver invokes the handler unless the watch has stopped. It reports
// whether the delivery happened.
func (w *Watcher) deliver(ev *Event, err error) bool {
	w.mu.Lock()
	stopped := w.stopped
	w.mu.Unlock()
	if stopped {
		return false
	}
	w.handler(ev, err)
	return true
}

// decodeRecord converts the event server's stringly-typed payload into
// typed values per the event's input declarations. Fields that fail to
// convert keep their raw form.
func (w *Watcher) decodeRecord(r *EventRecord) *Event {
	ev := &Event{
		Name:        w.method.event.RawName,
		BlockNumber: r.BlockNumber,
		TxID:        r.TransactionID,
		Values:      make(map[string]any, len(r.Result)),
		Raw:         r,
	}
	for k, v := range r.Result {
		ev.Values[k] = v
	}
	for _, in := range w.method.event.Inputs {
		if in.Name == "" {
			continue
		}
		s, ok := r.Result[in.Name].(string)
		if !ok {
			continue
		}
		if conv, err := convertEventValue(s, in.Type); err == nil {
			ev.Values[in.Name] = conv
		}
	}
	return ev
}

// convertEventValue maps one event-server string onto its declared ABI type.
func convertEventValue(s string, t abi.Type) (any, error) {
	switch t.T {
	case abi.UintTy, abi.IntTy:
		bi, ok := new(big.Int).SetString(s, 0)
		if !ok {
			return nil, fmt.Errorf("tron: non-numeric event value %q", s)
		}
		return bi, nil
	case abi.AddressTy:
		return ParseAddress(s)
	case abi.BoolTy:
		return s == "true", nil
	case abi.BytesTy, abi.FixedBytesTy:
		return hex.DecodeString(strings.TrimPrefix(s, "0x"))
	default:
		return s, nil
	}
}
