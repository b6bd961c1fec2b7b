package config

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher reloads a config file on change and hands the fresh value to
// every registered handler.
type Watcher[T any] struct {
	path     string
	debounce time.Duration
	loader   func(path string) (T, error)
	handlers []func(T)
	onError  func(error)
	mu       sync.RWMutex
	watcher  *fsnotify.Watcher
	log      zerolog.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

type WatcherOption[T any] func(*Watcher[T])

// WithDebounce sets how long the file must stay quiet before a reload.
// Default is 500ms.
func WithDebounce[T any](d time.Duration) WatcherOption[T] {
	return func(w *Watcher[T]) { w.debounce = d }
}

func WithErrorHandler[T any](h func(error)) WatcherOption[T] {
	return func(w *Watcher[T]) { w.onError = h }
}

func WithWatchLogger[T any](l zerolog.Logger) WatcherOption[T] {
	return func(w *Watcher[T]) { w.log = l }
}

func NewWatcher[T any](path string, loader func(string) (T, error), opts ...WatcherOption[T]) *Watcher[T] {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher[T]{
		path:     path,
		debounce: 500 * time.Millisecond,
		loader:   loader,
		log:      zerolog.Nop(),
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WatchFile watches a studio config file using Load.
func WatchFile(path string, opts ...WatcherOption[*Config]) *Watcher[*Config] {
	return NewWatcher(path, Load, opts...)
}

// OnReload registers h and returns a function removing it.
func (w *Watcher[T]) OnReload(h func(T)) func() {
	w.mu.Lock()
	w.handlers = append(w.handlers, h)
	idx := len(w.handlers) - 1
	w.mu.Unlock()

	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.handlers[idx] = nil
	}
}

func (w *Watcher[T]) Start() error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fw.Add(w.path); err != nil {
		fw.Close()
		return err
	}
	w.watcher = fw
	w.log.Info().Str("path", w.path).Dur("debounce", w.debounce).Msg("config watcher started")
	go w.watch()
	return nil
}

func (w *Watcher[T]) Stop() error {
	w.cancel()
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}

func (w *Watcher[T]) watch() {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			// editors that replace the file emit Create rather than Write
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if timer != nil {
					timer.Stop()
				}
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			}

		case <-timerC:
			timerC = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("config watcher error")
		}
	}
}

func (w *Watcher[T]) reload() {
	v, err := w.loader(w.path)
	if err != nil {
		w.log.Warn().Err(err).Str("path", w.path).Msg("config reload failed")
		if w.onError != nil {
			w.onError(err)
		}
		return
	}
	w.log.Info().Str("path", w.path).Msg("config reloaded")

	w.mu.RLock()
	hs := make([]func(T), 0, len(w.handlers))
	for _, h := range w.handlers {
		if h != nil {
			hs = append(hs, h)
		}
	}
	w.mu.RUnlock()

	for _, h := range hs {
		h(v)
	}
}
