// Package libemit implements an in-process event emitter: listeners are registered under
// event names and invoked, in registration order, every time their event is emitted.
//
//	emitter := libemit.New()
//	greet, _ := emitter.OnFunc("greet", libemit.Func(func(args ...any) {
//		fmt.Println("hello", args[0])
//	}))
//	emitter.Emit("greet", "world") // true
//	_ = emitter.Off("greet", greet)
//	emitter.Emit("greet", "world") // false
//
// Listeners may complete later by returning a Pending result. Emit in FireAndForget mode
// does not wait for them, whereas EmitAwait returns only once every one of them settled.
// A failing listener never stops its siblings nor the dispatch; failures are logged and
// handed to the ErrorHandler configured with WithErrorHandler.
package libemit
