package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"hotstock/config"
	"hotstock/internal/dto"
	"hotstock/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimulatorForTest(stockRepo *stubStockRepo, broadcaster *fakeBroadcaster) *PriceSimulator {
	sim := NewPriceSimulator(
		config.Simulation{TickInterval: 5 * time.Second, MaxDelta: 1.0},
		testLogger(),
		stockRepo,
		broadcaster,
	)
	return sim
}

func TestPriceSimulator_Tick(t *testing.T) {
	t.Run("applies a bounded delta and accumulates change percent", func(t *testing.T) {
		stockRepo := &stubStockRepo{stocks: []model.Stock{
			{Symbol: "AAA", Price: 100, ChangePercent: 1.5},
		}}
		broadcaster := &fakeBroadcaster{}
		sim := newSimulatorForTest(stockRepo, broadcaster)
		// rand 0.25 maps to delta (0.25-0.5)*2*1.0 = -0.5.
		sim.randFn = func() float64 { return 0.25 }

		sim.Tick(context.Background())

		require.Len(t, stockRepo.stocks, 1)
		assert.InDelta(t, 99.5, stockRepo.stocks[0].Price, 1e-9)
		assert.InDelta(t, 1.5+(-0.5/100*100), stockRepo.stocks[0].ChangePercent, 1e-9)
	})

	t.Run("broadcasts the full snapshot after updating", func(t *testing.T) {
		stockRepo := &stubStockRepo{stocks: []model.Stock{
			{Symbol: "AAA", Price: 100, HeatScore: 90},
			{Symbol: "BBB", Price: 50, HeatScore: 80},
		}}
		broadcaster := &fakeBroadcaster{}
		sim := newSimulatorForTest(stockRepo, broadcaster)
		sim.randFn = func() float64 { return 0.25 }

		sim.Tick(context.Background())

		require.Len(t, broadcaster.events, 1)
		event := broadcaster.events[0]
		assert.Equal(t, dto.EventTypePriceUpdate, event.Type)

		snapshot, ok := event.Payload.([]model.Stock)
		require.True(t, ok)
		require.Len(t, snapshot, 2)
		assert.InDelta(t, 99.5, snapshot[0].Price, 1e-9)
		assert.InDelta(t, 49.5, snapshot[1].Price, 1e-9)
	})

	t.Run("one failed persist does not stop the others", func(t *testing.T) {
		stockRepo := &stubStockRepo{
			stocks: []model.Stock{
				{Symbol: "AAA", Price: 100},
				{Symbol: "BBB", Price: 50},
			},
			applyErrBySymbol: map[string]error{"AAA": fmt.Errorf("write conflict")},
		}
		broadcaster := &fakeBroadcaster{}
		sim := newSimulatorForTest(stockRepo, broadcaster)
		sim.randFn = func() float64 { return 0.25 }

		sim.Tick(context.Background())

		for _, stock := range stockRepo.stocks {
			switch stock.Symbol {
			case "AAA":
				assert.InDelta(t, 100, stock.Price, 1e-9)
			case "BBB":
				assert.InDelta(t, 49.5, stock.Price, 1e-9)
			}
		}
		assert.Len(t, broadcaster.events, 1)
	})

	t.Run("non-positive price is left alone", func(t *testing.T) {
		stockRepo := &stubStockRepo{stocks: []model.Stock{
			{Symbol: "AAA", Price: 0},
		}}
		broadcaster := &fakeBroadcaster{}
		sim := newSimulatorForTest(stockRepo, broadcaster)
		sim.randFn = func() float64 { return 0.99 }

		sim.Tick(context.Background())

		assert.Zero(t, stockRepo.stocks[0].Price)
		assert.Len(t, broadcaster.events, 1)
	})

	t.Run("snapshot re-read failure drops only the broadcast", func(t *testing.T) {
		stockRepo := &stubStockRepo{
			stocks:           []model.Stock{{Symbol: "AAA", Price: 100}},
			failGetAllOnCall: 2,
		}
		broadcaster := &fakeBroadcaster{}
		sim := newSimulatorForTest(stockRepo, broadcaster)
		sim.randFn = func() float64 { return 0.25 }

		sim.Tick(context.Background())

		assert.InDelta(t, 99.5, stockRepo.stocks[0].Price, 1e-9)
		assert.Empty(t, broadcaster.events)
	})
}

func TestPriceSimulator_DeltaRange(t *testing.T) {
	stockRepo := &stubStockRepo{stocks: []model.Stock{{Symbol: "AAA", Price: 100}}}
	sim := newSimulatorForTest(stockRepo, &fakeBroadcaster{})

	// Walk the rand range and confirm the price never moves more than
	// MaxDelta in a single tick.
	for _, r := range []float64{0, 0.1, 0.5, 0.9, 0.999999} {
		stockRepo.stocks[0].Price = 100
		sim.randFn = func() float64 { return r }
		sim.Tick(context.Background())

		moved := stockRepo.stocks[0].Price - 100
		assert.LessOrEqual(t, moved, 1.0)
		assert.GreaterOrEqual(t, moved, -1.0)
	}
}

func TestPriceSimulator_RunStopsOnCancel(t *testing.T) {
	stockRepo := &stubStockRepo{}
	sim := newSimulatorForTest(stockRepo, &fakeBroadcaster{})
	sim.cfg.TickInterval = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sim.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("simulator did not stop after cancel")
	}
}
