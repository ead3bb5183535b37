package subscription

import (
	"testing"
	"time"

	"github.com/mjkukula/tessgraph/broker"
	"github.com/mjkukula/tessgraph/database/inmem"
	"github.com/mjkukula/tessgraph/messages"
	"github.com/mjkukula/tessgraph/pipeline"
	"github.com/mjkukula/tessgraph/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionBackfill(t *testing.T) {
	backend := inmem.NewBackend()

	t0 := schema.FromBTJD(1000.0)
	for i := 0; i < 10; i++ {
		err := backend.InsertValue("wasp18",
			t0.Add(time.Duration(i)*time.Minute), 1.0+float64(i)*0.01)
		require.NoError(t, err)
	}

	req := &Request{Series: []string{"wasp18"}}
	start := req.Start(time.Now())

	sub, err := NewSubscription(pipeline.NewParser(), req, start)
	require.NoError(t, err)

	br := broker.NewBroker()
	go br.Start()
	defer br.Stop()

	done := make(chan struct{})
	defer close(done)

	msgCh := make(chan *messages.Data, 8)
	go sub.Run(done, backend, br, msgCh, start)

	initial := <-msgCh
	require.Empty(t, initial.Error)
	require.Len(t, initial.Series, 1)
	assert.Equal(t, 0, initial.Series[0].Pos)
	assert.Len(t, initial.Series[0].Values, 10)
}

func TestSubscriptionLiveUpdates(t *testing.T) {
	backend := inmem.NewBackend()

	req := &Request{Series: []string{"s", "s | add 10"}}
	start := req.Start(time.Now())

	sub, err := NewSubscription(pipeline.NewParser(), req, start)
	require.NoError(t, err)

	br := broker.NewBroker()
	go br.Start()
	defer br.Stop()

	done := make(chan struct{})
	defer close(done)

	msgCh := make(chan *messages.Data, 8)
	go sub.Run(done, backend, br, msgCh, start)

	// initial data is empty: nothing stored
	initial := <-msgCh
	require.Empty(t, initial.Error)
	require.Empty(t, initial.Series)

	// give the subscription time to attach to the broker
	time.Sleep(50 * time.Millisecond)

	br.Publish(schema.Series{
		SeriesName: "s",
		Values: []schema.Value{
			{Timestamp: time.Now(), Value: 1.5},
		},
	})

	select {
	case data := <-msgCh:
		require.Len(t, data.Series, 2)
		assert.Equal(t, 1.5, data.Series[0].Values[0])
		assert.Equal(t, 11.5, data.Series[1].Values[0])
	case <-time.After(2 * time.Second):
		t.Fatal("no live update received")
	}
}

func TestSubscriptionTeardown(t *testing.T) {
	backend := inmem.NewBackend()

	req := &Request{Series: []string{"s"}}
	start := req.Start(time.Now())

	sub, err := NewSubscription(pipeline.NewParser(), req, start)
	require.NoError(t, err)

	br := broker.NewBroker()
	go br.Start()
	defer br.Stop()

	done := make(chan struct{})
	msgCh := make(chan *messages.Data, 8)
	go sub.Run(done, backend, br, msgCh, start)

	<-msgCh // initial window

	require.Eventually(t, func() bool {
		return br.SubCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	close(done)

	require.Eventually(t, func() bool {
		return br.SubCount() == 0
	}, 2*time.Second, 10*time.Millisecond)

	select {
	case _, ok := <-msgCh:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("msgCh not closed after teardown")
	}
}

func TestSubscriptionBadExpression(t *testing.T) {
	_, err := NewSubscription(
		pipeline.NewParser(),
		&Request{Series: []string{"s | frobnicate"}},
		time.Now(),
	)
	require.Error(t, err)
}

func TestRequestStart(t *testing.T) {
	now := time.Now()

	// unset window means everything
	req := &Request{}
	assert.Equal(t, time.UnixMilli(0), req.Start(now))

	// trailing window
	req = &Request{WindowSize: 60_000}
	assert.Equal(t, now.Add(-time.Minute), req.Start(now))

	// reconnect after a last seen point inside the window
	last := now.Add(-time.Second)
	req = &Request{WindowSize: 60_000, LastPointMs: uint64(last.UnixMilli())}
	assert.Equal(t, time.UnixMilli(last.UnixMilli()+1), req.Start(now))

	// fixed BTJD range
	req = &Request{FromBTJD: 1000.0, ToBTJD: 1010.0}
	assert.Equal(t, schema.FromBTJD(1000.0), req.Start(now))
}
