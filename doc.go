// Package reactive is an in-process, push-based reactive streams toolkit:
// producers push values to consumers until a single terminal signal, with
// explicit cancellation handles and a small set of multi-stream operators.
//
// # Package Organization
//
// The module is organized the same way as its sibling toolkits:
//
//   - Core: the stream model, cancellation plumbing and schedulers
//   - Utilities: adapters from streams to blocking Go code
//
// # Getting Documentation
//
// For detailed documentation on any package, use the go doc command:
//
//	go doc github.com/dmitrymomot/reactive/core/rx
//	go doc -all github.com/dmitrymomot/reactive/core/subscription
//
// # Core Packages
//
//	github.com/dmitrymomot/reactive/core/rx           - Observable, Observer, subjects and operators
//	github.com/dmitrymomot/reactive/core/subscription - Cancellation handles: serial, composite, refcount
//	github.com/dmitrymomot/reactive/core/scheduler    - Immediate, goroutine, event-loop and virtual-time schedulers
//	github.com/dmitrymomot/reactive/core/logger       - Structured logging built on slog
//	github.com/dmitrymomot/reactive/core/config       - Type-safe environment variable loading
//
// # Utility Packages
//
//	github.com/dmitrymomot/reactive/pkg/blocking      - First, Last, ToSlice, iterators and futures over streams
//
// # Example Usage
//
//	import (
//		"context"
//		"fmt"
//
//		"github.com/dmitrymomot/reactive/core/rx"
//		"github.com/dmitrymomot/reactive/pkg/blocking"
//	)
//
//	func main() {
//		words := rx.Just("apple", "avocado", "banana", "blueberry", "cherry")
//
//		counts := rx.FlatMap(rx.GroupBy(words, func(w string) byte { return w[0] }),
//			func(g rx.GroupedObservable[byte, string]) rx.Observable[string] {
//				return rx.Map(rx.Count[string](g), func(n int) string {
//					return fmt.Sprintf("%c=%d", g.Key(), n)
//				})
//			})
//
//		for line, err := range blocking.All(context.Background(), counts) {
//			if err != nil {
//				panic(err)
//			}
//			fmt.Println(line)
//		}
//	}
package reactive
