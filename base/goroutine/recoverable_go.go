package goroutine

import (
	"runtime/debug"

	"github.com/x-xyz/nftmeta/base/ctx"
	"github.com/x-xyz/nftmeta/base/log"
)

type PanicEvent struct {
	Panic interface{}
	Stack []byte
}

type options struct {
	beforeStart    func()
	afterEnded     func()
	afterRecovered func(p interface{}, stack []byte)
}

type Option func(*options)

func WithBeforeStart(f func()) Option {
	return func(o *options) { o.beforeStart = f }
}

func WithAfterEnded(f func()) Option {
	return func(o *options) { o.afterEnded = f }
}

func WithAfterRecovered(f func(p interface{}, stack []byte)) Option {
	return func(o *options) { o.afterRecovered = f }
}

// RecoverableGo runs f in a new goroutine and logs a panic instead of
// crashing the process. The returned channel receives the panic, or is
// closed when f returns normally.
func RecoverableGo(c ctx.Ctx, f func(), optFns ...Option) <-chan *PanicEvent {
	opts := options{}
	for _, fn := range optFns {
		fn(&opts)
	}

	panicChan := make(chan *PanicEvent, 1)

	go func() {
		defer func() {
			if opts.afterEnded != nil {
				opts.afterEnded()
			}

			p := recover()
			if p == nil {
				close(panicChan)
				return
			}

			stack := debug.Stack()
			c.WithFields(log.Fields{
				"err":   p,
				"stack": string(stack),
			}).Error("panic")

			if opts.afterRecovered != nil {
				opts.afterRecovered(p, stack)
			}
			panicChan <- &PanicEvent{p, stack}
		}()

		if opts.beforeStart != nil {
			opts.beforeStart()
		}

		f()
	}()

	return panicChan
}
