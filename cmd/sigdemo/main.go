// Command sigdemo runs two small, runnable translations of
// original_source/examples/09_example (plain connect/emit) and
// original_source/examples/10_lazyBindingExample (deferred evaluation,
// translated from KDBindings' property-binding evaluator - out of scope
// for this core - to sigcore.ConnectionEvaluator/AutoDispatcher draining
// on a dedicated goroutine instead of a one-shot evaluateAll call).
package main

import (
	"fmt"
	"time"

	"github.com/zoobzio/sigcore"
)

func main() {
	basicConnectEmit()
	fmt.Println()
	deferredStockTotal()
}

// basicConnectEmit mirrors 09_example/main.cpp: two lambdas connected to
// the same multi-argument signal, both invoked by one emit.
func basicConnectEmit() {
	signal := sigcore.NewSignal2[string, float64]()

	signal.Connect(func(text string, number float64) {
		fmt.Printf("First handler says: %s %v\n", text, number)
	})
	signal.Connect(func(text string, number float64) {
		fmt.Printf("Second handler also got: %s %v\n", text, number)
	})

	signal.Emit("Pi approximately equals", 3.14159)
}

// stock mirrors 10_lazyBindingExample's Stock type, minus property
// bindings (out of this core's scope): totalValue is recomputed by a
// deferred slot instead of a bound property expression.
type stock struct {
	numberOfShares int
	pricePerShare  float64
	totalValue     float64

	recalculate  *sigcore.Signal0
	totalChanged *sigcore.Signal1[float64]
}

func newStock(evaluator *sigcore.ConnectionEvaluator) *stock {
	s := &stock{
		numberOfShares: 100,
		pricePerShare:  20.0,
		recalculate:    sigcore.NewSignal0(),
		totalChanged:   sigcore.NewSignal1[float64](),
	}
	s.totalValue = float64(s.numberOfShares) * s.pricePerShare
	s.recalculate.ConnectDeferred(evaluator, func() {
		newTotal := float64(s.numberOfShares) * s.pricePerShare
		if newTotal == s.totalValue {
			return
		}
		s.totalValue = newTotal
		s.totalChanged.Emit(newTotal)
	})
	return s
}

func (s *stock) setPricePerShare(price float64) {
	s.pricePerShare = price
	s.recalculate.Emit()
}

func (s *stock) setNumberOfShares(n int) {
	s.numberOfShares = n
	s.recalculate.Emit()
}

// deferredStockTotal mirrors 10_lazyBindingExample/main.cpp: changes don't
// take effect until the evaluator is drained, here by an AutoDispatcher
// running on its own goroutine instead of a one-shot evaluateAll() call.
func deferredStockTotal() {
	evaluator := sigcore.NewConnectionEvaluator()
	dispatcher := sigcore.NewAutoDispatcher(evaluator, sigcore.WithPollInterval(10*time.Millisecond))
	dispatcher.Start()
	defer dispatcher.Shutdown()

	s := newStock(evaluator)
	fmt.Printf("Initial total value = %v\n", s.totalValue)

	s.totalChanged.Connect(func(newVal float64) {
		fmt.Printf("Updated total value = %v\n", newVal)
	})

	s.setPricePerShare(25.0)
	fmt.Printf("Before the dispatcher catches up, totalValue = %v\n", s.totalValue)

	time.Sleep(50 * time.Millisecond)
	fmt.Printf("After the dispatcher catches up, totalValue = %v\n", s.totalValue)

	s.setNumberOfShares(120)
	s.setPricePerShare(30.0)
	time.Sleep(50 * time.Millisecond)
	fmt.Printf("Final totalValue = %v\n", s.totalValue)
}
