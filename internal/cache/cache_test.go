// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/provenance-engine/pkg/types"
)

func sampleSources() []types.ExternalSource {
	doi := "10.1234/sample"
	return []types.ExternalSource{{Source: "Crossref", DOI: &doi}}
}

func TestSignatureDeterministic(t *testing.T) {
	// Order and duplicates must not change the signature.
	a := Signature([]string{"neural", "networks", "learn"})
	b := Signature([]string{"learn", "neural", "networks", "neural"})
	assert.Equal(t, a, b)

	c := Signature([]string{"neural", "networks"})
	assert.NotEqual(t, a, c)
}

func TestGetAfterPut(t *testing.T) {
	c := New(16, time.Hour)
	sig := Signature([]string{"quantum", "computing"})

	_, ok := c.Get(sig)
	assert.False(t, ok, "empty cache should miss")

	c.Put(sig, sampleSources())
	got, ok := c.Get(sig)
	require.True(t, ok)
	assert.Equal(t, sampleSources(), got)
}

func TestEntryExpires(t *testing.T) {
	c := New(16, 30*time.Millisecond)
	sig := Signature([]string{"ephemeral"})
	c.Put(sig, sampleSources())

	_, ok := c.Get(sig)
	require.True(t, ok)

	time.Sleep(60 * time.Millisecond)
	_, ok = c.Get(sig)
	assert.False(t, ok, "expired entry must be a miss")
}

func TestGetOrFetchCachesSuccess(t *testing.T) {
	c := New(16, time.Hour)
	var calls int32
	fetch := func(context.Context) ([]types.ExternalSource, error) {
		atomic.AddInt32(&calls, 1)
		return sampleSources(), nil
	}

	got, hit, err := c.GetOrFetch(context.Background(), []string{"alpha"}, fetch)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, sampleSources(), got)

	got, hit, err = c.GetOrFetch(context.Background(), []string{"alpha"}, fetch)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, sampleSources(), got)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetOrFetchNeverCachesFailure(t *testing.T) {
	c := New(16, time.Hour)
	var calls int32
	fetch := func(context.Context) ([]types.ExternalSource, error) {
		atomic.AddInt32(&calls, 1)
		return nil, errors.New("upstream down")
	}

	_, _, err := c.GetOrFetch(context.Background(), []string{"beta"}, fetch)
	require.Error(t, err)

	// The failure left nothing behind; the next call fetches again.
	_, ok := c.Get(Signature([]string{"beta"}))
	assert.False(t, ok)

	_, _, err = c.GetOrFetch(context.Background(), []string{"beta"}, fetch)
	require.Error(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGetOrFetchDeduplicatesConcurrentMisses(t *testing.T) {
	c := New(16, time.Hour)
	var calls int32
	release := make(chan struct{})
	fetch := func(context.Context) ([]types.ExternalSource, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return sampleSources(), nil
	}

	const workers = 8
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, _, err := c.GetOrFetch(context.Background(), []string{"gamma"}, fetch)
			assert.NoError(t, err)
			assert.Equal(t, sampleSources(), got)
		}()
	}

	// Give every worker time to reach the flight group, then let the
	// single fetch finish.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "concurrent misses must share one fetch")
}

func TestBoundedCapacity(t *testing.T) {
	c := New(2, time.Hour)
	c.Put("a", sampleSources())
	c.Put("b", sampleSources())
	c.Put("c", sampleSources())
	assert.LessOrEqual(t, c.Len(), 2)
}
