package observe_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonwraymond/peekaboo/observe"
	"github.com/jonwraymond/peekaboo/sink"
)

func ExampleNewSink() {
	ctx := context.Background()
	obs, err := observe.NewObserver(ctx, observe.Config{
		ServiceName: "example-service",
		Tracing:     observe.TracingConfig{Enabled: true, Exporter: "none"},
	})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer func() { _ = obs.Shutdown(ctx) }()

	s, err := observe.NewSink(obs, sink.Func(func(level sink.Level, msg string) {
		fmt.Println(level, msg)
	}))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	s.Info("( Invoking: Calc#add with [1, 2] ==> Returning: 3 )")
	// Output:
	// info ( Invoking: Calc#add with [1, 2] ==> Returning: 3 )
}

func ExampleNewObserver_validation() {
	_, err := observe.NewObserver(context.Background(), observe.Config{})
	if errors.Is(err, observe.ErrMissingServiceName) {
		fmt.Println("Caught: missing service name")
	}
	// Output:
	// Caught: missing service name
}

func ExampleParseLine() {
	l := observe.ParseLine("main.go:7:in `main'\n\t( Invoking: Calc#div with [1, 0] !!! Raising: \"divide by zero\" )")
	fmt.Println(l.Method, l.Raised, l.Reason)
	// Output:
	// Calc#div true "divide by zero"
}
