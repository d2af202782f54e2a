package bus

import (
	"context"
	"errors"
	"testing"
	"time"

	pkgerrors "socialgraph/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type echoQuery struct {
	Value string
}

func (q echoQuery) Validate() error {
	if q.Value == "" {
		return pkgerrors.NewValidationError("value is required")
	}
	return nil
}

type otherQuery struct{}

func (otherQuery) Validate() error { return nil }

type observation struct {
	query string
	err   error
}

type recordingMetrics struct {
	observed []observation
}

func (m *recordingMetrics) ObserveQuery(query string, duration time.Duration, err error) {
	m.observed = append(m.observed, observation{query: query, err: err})
}

func echoHandler() QueryHandler {
	return QueryHandlerFunc(func(ctx context.Context, query Query) (interface{}, error) {
		return query.(echoQuery).Value, nil
	})
}

func TestQueryBus_Ask(t *testing.T) {
	b := NewQueryBus()
	require.NoError(t, b.Register(echoQuery{}, echoHandler()))

	result, err := b.Ask(context.Background(), echoQuery{Value: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", result)
}

func TestQueryBus_Errors(t *testing.T) {
	b := NewQueryBus()
	require.NoError(t, b.Register(echoQuery{}, echoHandler()))

	err := b.Register(echoQuery{}, echoHandler())
	assert.True(t, pkgerrors.IsConflict(err))

	_, err = b.Ask(context.Background(), echoQuery{})
	assert.True(t, pkgerrors.IsValidation(err), "validation error survives wrapping: %v", err)

	_, err = b.Ask(context.Background(), otherQuery{})
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeInternal))
}

func TestQueryBus_Middlewares(t *testing.T) {
	metrics := &recordingMetrics{}
	var order []string
	trace := func(name string) Middleware {
		return func(next QueryHandler) QueryHandler {
			return QueryHandlerFunc(func(ctx context.Context, query Query) (interface{}, error) {
				order = append(order, name)
				return next.Handle(ctx, query)
			})
		}
	}

	b := NewQueryBus(trace("outer"), MetricsMiddleware(metrics), LoggingMiddleware(zap.NewNop()), trace("inner"))
	require.NoError(t, b.Register(echoQuery{}, echoHandler()))
	failure := errors.New("boom")
	require.NoError(t, b.Register(otherQuery{}, QueryHandlerFunc(func(ctx context.Context, query Query) (interface{}, error) {
		return nil, failure
	})))

	_, err := b.Ask(context.Background(), echoQuery{Value: "x"})
	require.NoError(t, err)
	_, err = b.Ask(context.Background(), otherQuery{})
	assert.ErrorIs(t, err, failure)

	assert.Equal(t, []string{"outer", "inner", "outer", "inner"}, order)
	assert.Equal(t, []observation{
		{query: "echoQuery"},
		{query: "otherQuery", err: failure},
	}, metrics.observed)
}
