package dictionary

import (
	"context"
	"fmt"
)

// EventKind identifies a loading lifecycle notification.
type EventKind int

// Loading lifecycle, in emission order.
const (
	LoadingStarted EventKind = iota
	DictionaryLoaded
	LoadingFinished
	LoadingFailed
)

func (k EventKind) String() string {
	switch k {
	case LoadingStarted:
		return "loading started"
	case DictionaryLoaded:
		return "dictionary loaded"
	case LoadingFinished:
		return "loading finished"
	case LoadingFailed:
		return "loading failed"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is sent by LoadAsync. Dictionary is set on DictionaryLoaded and Err on LoadingFailed.
type Event struct {
	Kind       EventKind
	Path       string
	Dictionary *Dictionary
	Err        error
}

// LoadAsync parses path on a separate goroutine and reports progress over the
// returned channel, which is closed after the final event.
func LoadAsync(ctx context.Context, reg *Registry, path string) <-chan Event {
	events := make(chan Event, 3)
	go func() {
		defer close(events)
		events <- Event{Kind: LoadingStarted, Path: path}

		dict, err := reg.ParseFile(path)
		if err == nil {
			err = dict.Validate()
		}
		if err == nil {
			err = ctx.Err()
		}
		if err != nil {
			events <- Event{Kind: LoadingFailed, Path: path, Err: err}
			return
		}
		events <- Event{Kind: DictionaryLoaded, Path: path, Dictionary: dict}
		events <- Event{Kind: LoadingFinished, Path: path}
	}()
	return events
}

// Await blocks until the loader delivers a dictionary or fails. observe, when
// non-nil, is called for every event in order.
func Await(ctx context.Context, events <-chan Event, observe func(Event)) (*Dictionary, error) {
	var dict *Dictionary
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case ev, ok := <-events:
			if !ok {
				if dict == nil {
					return nil, fmt.Errorf("loader stopped without a dictionary")
				}
				return dict, nil
			}
			if observe != nil {
				observe(ev)
			}
			switch ev.Kind {
			case LoadingFailed:
				return nil, ev.Err
			case DictionaryLoaded:
				dict = ev.Dictionary
			case LoadingFinished:
				if dict == nil {
					return nil, fmt.Errorf("loading finished before a dictionary was delivered")
				}
				return dict, nil
			}
		}
	}
}
