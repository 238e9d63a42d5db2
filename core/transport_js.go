//go:build js && wasm

package core

import (
	"context"
	"errors"
	"syscall/js"
)

// FetchTransport sends requests through the host's fetch primitive. It is the
// transport used on js/wasm targets, where sockets are unavailable and the
// browser (or worker) owns all networking.
type FetchTransport struct{}

// NewFetchTransport creates a fetch-backed transport.
func NewFetchTransport() *FetchTransport {
	return &FetchTransport{}
}

// Send implements [Transport].
func (t *FetchTransport) Send(ctx context.Context, req *PreparedRequest) (RawResponse, error) {
	global := js.Global()

	init := global.Get("Object").New()
	init.Set("method", req.verb)

	headers := global.Get("Object").New()
	for key, values := range req.header {
		for _, v := range values {
			headers.Set(key, v)
		}
	}
	init.Set("headers", headers)

	if req.body != nil {
		buf := global.Get("Uint8Array").New(len(req.body))
		js.CopyBytesToJS(buf, req.body)
		init.Set("body", buf)
	}

	controller := global.Get("AbortController").New()
	init.Set("signal", controller.Get("signal"))

	resp, err := await(ctx, global.Call("fetch", req.url, init), controller)
	if err != nil {
		return nil, err
	}
	return &fetchResponse{value: resp}, nil
}

type fetchResponse struct {
	value js.Value
}

func (r *fetchResponse) StatusCode() int {
	return r.value.Get("status").Int()
}

func (r *fetchResponse) BodyText(ctx context.Context) (string, error) {
	text, err := await(ctx, r.value.Call("text"), js.Undefined())
	if err != nil {
		return "", err
	}
	return text.String(), nil
}

// await blocks until the promise settles. A rejection or a context
// cancellation surfaces as a TransportError; cancellation additionally aborts
// the in-flight fetch through controller when one is supplied.
func await(ctx context.Context, promise js.Value, controller js.Value) (js.Value, error) {
	type settled struct {
		value js.Value
		err   error
	}
	done := make(chan settled, 1)

	onFulfilled := js.FuncOf(func(this js.Value, args []js.Value) any {
		value := js.Undefined()
		if len(args) > 0 {
			value = args[0]
		}
		done <- settled{value: value}
		return nil
	})
	defer onFulfilled.Release()

	onRejected := js.FuncOf(func(this js.Value, args []js.Value) any {
		reason := "promise rejected"
		if len(args) > 0 {
			reason = args[0].Call("toString").String()
		}
		done <- settled{err: &TransportError{Err: errors.New(reason)}}
		return nil
	})
	defer onRejected.Release()

	promise.Call("then", onFulfilled, onRejected)

	select {
	case s := <-done:
		return s.value, s.err
	case <-ctx.Done():
		if controller.Truthy() {
			controller.Call("abort")
		}
		return js.Undefined(), &TransportError{Err: ctx.Err()}
	}
}

// defaultTransport returns the build target's transport implementation.
func defaultTransport() Transport {
	return NewFetchTransport()
}
