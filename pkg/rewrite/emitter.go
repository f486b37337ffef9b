package rewrite

import (
	"fmt"
	"os"
	"reflect"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// Emitter is the sink used by Debug, Log, and LogFail. Diagnostic lines
// carry the message, the subject term, the outcome, and on success the
// result term. The default implementation routes through a structured
// logger so callers who want queryable fields still get them.
type Emitter interface {
	Emit(s string)
	Emitf(format string, args ...any)
}

// hclogEmitter adapts an hclog.Logger to the flat Emitter contract. It is
// the default emitter: every line handed to Emit/Emitf is logged at Info
// level with the diagnostic text as the log message, unchanged; hclog
// adds its own timestamp and level prefix to the written line.
type hclogEmitter struct {
	logger hclog.Logger
}

// NewEmitter wraps logger as an Emitter. A nil logger uses a new hclog
// logger writing to standard output.
func NewEmitter(logger hclog.Logger) Emitter {
	if logger == nil {
		logger = hclog.New(&hclog.LoggerOptions{Output: os.Stdout})
	}
	return &hclogEmitter{logger: logger}
}

func (e *hclogEmitter) Emit(s string) {
	e.logger.Info(s)
}

func (e *hclogEmitter) Emitf(format string, args ...any) {
	e.logger.Info(fmt.Sprintf(format, args...))
}

var defaultEmitter = NewEmitter(nil)

// DefaultEmitter returns the engine's default Emitter, logging to standard
// output via hclog.
func DefaultEmitter() Emitter { return defaultEmitter }

// Debug always succeeds, emitting msg and the subject term before
// returning the subject unchanged.
func Debug(msg string, e Emitter) Strategy {
	if e == nil {
		e = defaultEmitter
	}
	return Mk("debug", func(t Term) (Term, bool) {
		e.Emitf("%s: %v", msg, t)
		return t, true
	})
}

// Log runs s, reporting both the attempt and its outcome (success with
// the result term, or failure) through e, and otherwise behaves exactly
// like s.
func Log(s Strategy, msg string, e Emitter) Strategy {
	if e == nil {
		e = defaultEmitter
	}
	return Mk("log", func(t Term) (Term, bool) {
		result, ok := s.Apply(t)
		if ok {
			e.Emitf("%s: %v -> %v", msg, t, result)
		} else {
			e.Emitf("%s: %v -> fail", msg, t)
		}
		return result, ok
	})
}

// LogFail runs s, reporting through e only when s fails, and otherwise
// behaves exactly like s.
func LogFail(s Strategy, msg string, e Emitter) Strategy {
	if e == nil {
		e = defaultEmitter
	}
	return Mk("logfail", func(t Term) (Term, bool) {
		result, ok := s.Apply(t)
		if !ok {
			e.Emitf("%s: %v -> fail", msg, t)
		}
		return result, ok
	})
}

// Memo wraps s in a cache keyed by the subject: the first time s is
// applied to a given subject, the result is computed and recorded; every
// later application to an equal key returns the cached result without
// re-running s. The key is the subject compared with ==, so pointers are
// keyed by identity while primitives and value structs are keyed by
// value. Cache lookups and insertions are serialized with a mutex, but
// the mutex is not held while s runs, so concurrent first applications
// to the same subject can each run s before one of them is cached.
func Memo(s Strategy) Strategy {
	type cached struct {
		result Term
		ok     bool
	}
	var mu sync.Mutex
	cache := make(map[any]cached)

	return Mk("memo", func(t Term) (Term, bool) {
		key, cacheable := memoKey(t)
		if cacheable {
			mu.Lock()
			if c, found := cache[key]; found {
				mu.Unlock()
				return c.result, c.ok
			}
			mu.Unlock()
		}

		result, ok := s.Apply(t)

		if cacheable {
			mu.Lock()
			cache[key] = cached{result: result, ok: ok}
			mu.Unlock()
		}
		return result, ok
	})
}

// memoKey derives a map key identifying the subject. Only comparable
// values (the overwhelming majority of terms: pointers, primitives, small
// value structs) can be used as a map key at all; an incomparable subject
// (a bare slice or map passed as Term) is reported as non-cacheable so
// Memo falls back to recomputing every time rather than panicking.
func memoKey(t Term) (key any, ok bool) {
	if t == nil {
		return nil, false
	}
	if !reflect.TypeOf(t).Comparable() {
		return nil, false
	}
	return t, true
}
