// Package feed implements the small push-based stream abstraction the card
// pipelines are built on. A Feed is a cold stream: subscribing returns a
// channel that delivers values until the stream completes (channel closed)
// or the context is cancelled.
package feed

import (
	"context"
	"sync"
)

// Feed is a subscribable stream of values.
type Feed[T any] func(ctx context.Context) <-chan T

// Of returns a feed that emits the given values in order and completes.
func Of[T any](values ...T) Feed[T] {
	return func(ctx context.Context) <-chan T {
		out := make(chan T, len(values))
		go func() {
			defer close(out)
			for _, value := range values {
				select {
				case out <- value:
				case <-ctx.Done():
					return
				}
			}
		}()
		return out
	}
}

// Map transforms every value of a feed.
func Map[A, B any](src Feed[A], fn func(A) B) Feed[B] {
	return func(ctx context.Context) <-chan B {
		out := make(chan B)
		go func() {
			defer close(out)
			for value := range src(ctx) {
				select {
				case out <- fn(value):
				case <-ctx.Done():
					return
				}
			}
		}()
		return out
	}
}

// StartWith prepends an initial value, so subscribers never see a pending
// state before the source's first emission.
func StartWith[T any](src Feed[T], initial T) Feed[T] {
	return func(ctx context.Context) <-chan T {
		out := make(chan T, 1)
		out <- initial
		go func() {
			defer close(out)
			for value := range src(ctx) {
				select {
				case out <- value:
				case <-ctx.Done():
					return
				}
			}
		}()
		return out
	}
}

// CombineLatest merges a list of feeds into a feed of positional snapshots.
// It emits once every source has produced at least one value, and again on
// every subsequent emission from any source; slot i always holds the latest
// value of feeds[i]. An empty feed list completes without emitting.
func CombineLatest[T any](feeds []Feed[T]) Feed[[]T] {
	return func(ctx context.Context) <-chan []T {
		out := make(chan []T)
		go func() {
			defer close(out)

			type update struct {
				index int
				value T
			}
			updates := make(chan update)

			var wg sync.WaitGroup
			for i, f := range feeds {
				wg.Add(1)
				go func(index int, f Feed[T]) {
					defer wg.Done()
					for value := range f(ctx) {
						select {
						case updates <- update{index: index, value: value}:
						case <-ctx.Done():
							return
						}
					}
				}(i, f)
			}
			go func() {
				wg.Wait()
				close(updates)
			}()

			latest := make([]T, len(feeds))
			seen := make([]bool, len(feeds))
			ready := 0
			for u := range updates {
				if !seen[u.index] {
					seen[u.index] = true
					ready++
				}
				latest[u.index] = u.value
				if ready < len(feeds) {
					continue
				}
				snapshot := make([]T, len(latest))
				copy(snapshot, latest)
				select {
				case out <- snapshot:
				case <-ctx.Done():
					return
				}
			}
		}()
		return out
	}
}

// Pair carries one snapshot from CombineLatest2.
type Pair[A, B any] struct {
	First  A
	Second B
}

// CombineLatest2 is CombineLatest over two differently typed feeds.
func CombineLatest2[A, B any](first Feed[A], second Feed[B]) Feed[Pair[A, B]] {
	return func(ctx context.Context) <-chan Pair[A, B] {
		out := make(chan Pair[A, B])
		go func() {
			defer close(out)

			firstCh := first(ctx)
			secondCh := second(ctx)

			var latest Pair[A, B]
			var haveFirst, haveSecond bool
			for firstCh != nil || secondCh != nil {
				var emit bool
				select {
				case value, ok := <-firstCh:
					if !ok {
						firstCh = nil
						continue
					}
					latest.First = value
					haveFirst = true
					emit = haveSecond
				case value, ok := <-secondCh:
					if !ok {
						secondCh = nil
						continue
					}
					latest.Second = value
					haveSecond = true
					emit = haveFirst
				case <-ctx.Done():
					return
				}
				if !emit {
					continue
				}
				select {
				case out <- latest:
				case <-ctx.Done():
					return
				}
			}
		}()
		return out
	}
}

// SwitchMap projects each source value into an inner feed and forwards only
// the most recent inner feed's values. A new source value cancels the
// superseded inner subscription; in-flight values from it are discarded
// rather than raced into the output (a generation tag guards ordering).
func SwitchMap[A, B any](src Feed[A], project func(A) Feed[B]) Feed[B] {
	return func(ctx context.Context) <-chan B {
		out := make(chan B)
		go func() {
			defer close(out)

			type tagged struct {
				gen   uint64
				value B
				done  bool
			}

			srcCh := src(ctx)
			inner := make(chan tagged)
			var (
				gen         uint64
				cancelInner context.CancelFunc
				innerLive   bool
			)
			defer func() {
				if cancelInner != nil {
					cancelInner()
				}
			}()

			for {
				select {
				case <-ctx.Done():
					return

				case value, ok := <-srcCh:
					if !ok {
						srcCh = nil
						if !innerLive {
							return
						}
						continue
					}
					if cancelInner != nil {
						cancelInner()
					}
					gen++
					myGen := gen
					innerCtx, cancel := context.WithCancel(ctx)
					cancelInner = cancel
					innerLive = true
					innerFeed := project(value)
					go func() {
						for innerValue := range innerFeed(innerCtx) {
							select {
							case inner <- tagged{gen: myGen, value: innerValue}:
							case <-innerCtx.Done():
								return
							}
						}
						select {
						case inner <- tagged{gen: myGen, done: true}:
						case <-innerCtx.Done():
						}
					}()

				case t := <-inner:
					if t.gen != gen {
						continue // superseded inner, drop
					}
					if t.done {
						innerLive = false
						if srcCh == nil {
							return
						}
						continue
					}
					select {
					case out <- t.value:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
		return out
	}
}
