// Package rx provides push-based reactive streams: producers ([Observable])
// that push values to consumers ([Observer]) until a single terminal signal,
// with explicit cancellation handles from package subscription.
//
// # Grammar
//
// Every subscription observes the sequence
//
//	OnNext* (OnError | OnCompleted)?
//
// with signals delivered one at a time. Producers written with [Create] may
// violate this grammar, call the observer from several goroutines or panic;
// the package wraps such producers and any caller-supplied observer in an
// enforcement wrapper that serializes delivery, drops everything after a
// terminal signal and turns panics into an error signal carrying a
// [*PanicError]. Observables and observers built by this package trust each
// other and skip the wrapper.
//
// # Core Components
//
// Sources: [Just], [FromSlice], [Range], [Empty], [Never], [Throw], [Defer],
// [FromFunc], [FromChannel], [Timer], [Interval].
//
// Subjects: [PublishSubject] forwards values to current subscribers only;
// [ReplaySubject] replays the whole history to every subscriber. Both are
// safe for concurrent pushes.
//
// Multi-stream operators: [GroupBy] and [GroupByMap] partition a stream by
// key; [Switch] follows the latest inner stream; [Merge] and
// [MergeDelayError] interleave several streams; [CombineLatest] combines
// their latest values; [Concat] plays them in turn.
//
// Error handling: [OnErrorResumeNext], [Catch], [OnErrorReturn], [Retry].
//
// Sharing: [Multicast], [Publish], [Replay] and [Share] return a
// [Connectable] that subscribes to its source once for many subscribers.
//
// Scheduling: [ObserveOn] and [SubscribeOn] move work onto a
// scheduler.Scheduler.
//
// # Basic Usage
//
//	src := rx.Create(func(o rx.Observer[int]) subscription.Subscription {
//		for i := range 3 {
//			o.OnNext(i)
//		}
//		o.OnCompleted()
//		return subscription.Empty()
//	})
//
//	evens := rx.Filter(rx.Map(src, func(v int) int { return v * 2 }), func(v int) bool {
//		return v > 0
//	})
//
//	sub := rx.Subscribe(evens,
//		func(v int) { fmt.Println(v) },
//		func(err error) { fmt.Println("error:", err) },
//		func() { fmt.Println("done") },
//	)
//	defer sub.Unsubscribe()
//
// # Subjects
//
//	s := rx.NewReplaySubject[string]()
//	s.OnNext("a")
//	s.OnNext("b")
//
//	// Receives "a", "b", then "c".
//	rx.Subscribe(s, func(v string) { fmt.Println(v) }, nil, nil)
//	s.OnNext("c")
//	s.OnCompleted()
//
// # Grouping
//
//	groups := rx.GroupBy(rx.Just("apple", "avocado", "banana"), func(s string) byte {
//		return s[0]
//	})
//	rx.Subscribe(groups, func(g rx.GroupedObservable[byte, string]) {
//		rx.Subscribe(g, func(v string) {
//			fmt.Printf("%c: %s\n", g.Key(), v)
//		}, nil, nil)
//	}, nil, nil)
//
// # Logging
//
// Signals dropped after termination and panics raised by terminal callbacks
// are reported through the logger installed with [SetLogger]. Nothing is
// logged by default.
package rx
