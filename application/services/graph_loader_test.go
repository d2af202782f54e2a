package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"socialgraph/application/ports"
	domainservices "socialgraph/domain/services"
	"socialgraph/infrastructure/persistence/memory"
	pkgerrors "socialgraph/pkg/errors"
	"socialgraph/pkg/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// fakeSource serves canned pages and records the order they were requested in
type fakeSource struct {
	pages     map[int][]ports.Person
	failOn    int
	requested []int
}

func (f *fakeSource) FetchPage(ctx context.Context, page int) ([]ports.Person, error) {
	f.requested = append(f.requested, page)
	if page == f.failOn {
		return nil, pkgerrors.NewNetworkError(fmt.Sprintf("fetch people page %d", page), errors.New("connection reset"))
	}
	return f.pages[page], nil
}

func peoplePages(perPage, pages int) map[int][]ports.Person {
	out := map[int][]ports.Person{}
	for p := 1; p <= pages; p++ {
		for i := 0; i < perPage; i++ {
			out[p] = append(out[p], ports.Person{Name: fmt.Sprintf("person-%d-%d", p, i)})
		}
	}
	return out
}

func newTestLoader(source ports.PeopleSource, store ports.GraphStore, seed int64) *GraphLoader {
	opts := domainservices.DefaultSynthesisOptions()
	opts.Seed = seed
	return NewGraphLoader(
		source,
		store,
		opts,
		3,
		observability.NewCollector("loader_test"),
		observability.NewTracer("loader-test"),
		zap.NewNop(),
	)
}

func TestGraphLoader_Build(t *testing.T) {
	ctx := context.Background()
	source := &fakeSource{pages: peoplePages(10, 4)}
	store := memory.NewGraphStore(zap.NewNop())

	snapshot, err := newTestLoader(source, store, 42).Build(ctx, 0)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, source.requested)
	assert.Equal(t, ports.StatusReady, snapshot.Status)
	assert.Equal(t, 30, snapshot.Graph.NodeCount())
	assert.Equal(t, "person-1-0", snapshot.Graph.NodeIDs()[0].String())
	assert.Equal(t, "person-3-9", snapshot.Graph.NodeIDs()[29].String())
	assert.Positive(t, snapshot.Graph.LinkCount())
	assert.Equal(t, int64(42), snapshot.Report.Seed)

	current, ok := store.Current(ctx)
	require.True(t, ok)
	assert.Same(t, snapshot, current)
}

func TestGraphLoader_SeedOverride(t *testing.T) {
	ctx := context.Background()
	store := memory.NewGraphStore(zap.NewNop())

	first, err := newTestLoader(&fakeSource{pages: peoplePages(10, 3)}, store, 1).Build(ctx, 77)
	require.NoError(t, err)
	second, err := newTestLoader(&fakeSource{pages: peoplePages(10, 3)}, store, 2).Build(ctx, 77)
	require.NoError(t, err)

	assert.Equal(t, int64(77), first.Report.Seed)
	assert.Equal(t, first.Graph.Links(), second.Graph.Links())
}

func TestGraphLoader_FailureAbortsLoad(t *testing.T) {
	ctx := context.Background()
	source := &fakeSource{pages: peoplePages(10, 3), failOn: 2}
	store := memory.NewGraphStore(zap.NewNop())

	snapshot, err := newTestLoader(source, store, 1).Build(ctx, 0)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeNetwork))

	assert.Equal(t, []int{1, 2}, source.requested)
	assert.Equal(t, ports.StatusFailed, snapshot.Status)
	assert.Equal(t, 10, snapshot.Graph.NodeCount())
	assert.Equal(t, 0, snapshot.Graph.LinkCount())
	assert.Nil(t, snapshot.Report)

	current, ok := store.Current(ctx)
	require.True(t, ok)
	assert.False(t, current.Ready())
	assert.Equal(t, 10, current.Graph.NodeCount())
}

func TestGraphLoader_FailedReloadKeepsReadyGraph(t *testing.T) {
	ctx := context.Background()
	store := memory.NewGraphStore(zap.NewNop())

	ready, err := newTestLoader(&fakeSource{pages: peoplePages(10, 3)}, store, 1).Build(ctx, 0)
	require.NoError(t, err)

	_, err = newTestLoader(&fakeSource{pages: peoplePages(10, 3), failOn: 1}, store, 1).Build(ctx, 0)
	require.Error(t, err)

	current, ok := store.Current(ctx)
	require.True(t, ok)
	assert.Same(t, ready, current)
}

func TestGraphLoader_SkipsDuplicateAndBlankNames(t *testing.T) {
	source := &fakeSource{pages: map[int][]ports.Person{
		1: {{Name: "Luke Skywalker"}, {Name: "C-3PO"}},
		2: {{Name: "Luke Skywalker"}, {Name: "  "}},
		3: {{Name: "R2-D2"}},
	}}

	graph, err := newTestLoader(source, memory.NewGraphStore(zap.NewNop()), 1).LoadNodes(context.Background())
	require.NoError(t, err)

	names := []string{}
	for _, id := range graph.NodeIDs() {
		names = append(names, id.String())
	}
	assert.Equal(t, []string{"Luke Skywalker", "C-3PO", "R2-D2"}, names)
}

func TestGraphLoader_FailureLoggedOnce(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	loader := NewGraphLoader(
		&fakeSource{pages: peoplePages(10, 3), failOn: 3},
		memory.NewGraphStore(zap.NewNop()),
		domainservices.DefaultSynthesisOptions(),
		3,
		nil,
		observability.NewTracer("loader-test"),
		zap.New(core),
	)

	_, err := loader.Build(context.Background(), 0)
	require.Error(t, err)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Error fetching people data", entry.Message)
	assert.Equal(t, int64(20), entry.ContextMap()["nodesLoaded"])
}
