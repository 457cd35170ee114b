package ai_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aluiggi96/Doc-MYPE/internal/ai"
	"github.com/aluiggi96/Doc-MYPE/internal/core"
)

// fakeGenerator records every call. When release is set, Generate blocks until
// it is closed or ctx ends.
type fakeGenerator struct {
	mu      sync.Mutex
	calls   []ai.GenerateRequest
	text    string
	err     error
	release chan struct{}
	started chan struct{}
}

func (g *fakeGenerator) Generate(ctx context.Context, req ai.GenerateRequest) (string, error) {
	g.mu.Lock()
	g.calls = append(g.calls, req)
	g.mu.Unlock()

	if g.started != nil {
		g.started <- struct{}{}
	}
	if g.release != nil {
		select {
		case <-g.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return g.text, g.err
}

func (g *fakeGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func sale(kind core.Kind, date, total string, items int) core.Document {
	h := core.Header{
		ID:        date + string(kind),
		Type:      kind,
		IssueDate: date,
		Total:     decimal.RequireFromString(total),
		Status:    core.StatusIssued,
		Items:     make([]core.LineItem, items),
	}
	switch kind {
	case core.KindInvoice:
		return &core.Invoice{Header: h}
	case core.KindReceipt:
		return &core.Receipt{Header: h}
	case core.KindCreditNote:
		return &core.CreditNote{Header: h}
	}
	return &core.DispatchGuide{Header: h}
}

func TestAdvisor_NoQualifyingSalesSkipsTransport(t *testing.T) {
	gen := &fakeGenerator{text: "unused"}
	adv := ai.NewAdvisor(gen, ai.AdvisorConfig{Model: "test-model"})

	for _, docs := range [][]core.Document{
		nil,
		{sale(core.KindCreditNote, "2024-01-01", "50", 1), sale(core.KindDispatchGuide, "2024-01-02", "0", 2)},
	} {
		res := adv.RequestInsights(context.Background(), docs)
		assert.Equal(t, ai.StatusFailed, res.Status)
		assert.Equal(t, ai.ReasonInsufficientData, res.Reason)
		assert.Equal(t, ai.MessageInsufficientData, res.Text)
	}
	assert.Zero(t, gen.callCount())
	assert.Equal(t, ai.ReasonInsufficientData, adv.State().Reason)
}

func TestAdvisor_NoCredential(t *testing.T) {
	adv := ai.NewAdvisor(nil, ai.AdvisorConfig{Model: "test-model"})

	res := adv.RequestInsights(context.Background(), []core.Document{sale(core.KindInvoice, "2024-01-01", "100", 1)})
	assert.Equal(t, ai.StatusFailed, res.Status)
	assert.Equal(t, ai.ReasonUnavailable, res.Reason)
	assert.Equal(t, ai.MessageUnavailable, res.Text)
	assert.False(t, res.Succeeded())
}

func TestAdvisor_Success(t *testing.T) {
	gen := &fakeGenerator{text: "Las ventas crecieron en febrero."}
	adv := ai.NewAdvisor(gen, ai.AdvisorConfig{Model: "test-model", Timeout: time.Second})
	assert.Equal(t, ai.StatusIdle, adv.State().Status)

	res := adv.RequestInsights(context.Background(), []core.Document{
		sale(core.KindInvoice, "2024-01-15", "200", 2),
		sale(core.KindCreditNote, "2024-01-16", "20", 1),
		sale(core.KindReceipt, "2024-02-01", "100", 1),
	})

	require.True(t, res.Succeeded(), "result: %+v", res)
	assert.Equal(t, "Las ventas crecieron en febrero.", res.Text)
	assert.Equal(t, res, adv.State())

	require.Equal(t, 1, gen.callCount())
	req := gen.calls[0]
	assert.Equal(t, "test-model", req.Model)
	assert.Contains(t, req.Prompt, `"date": "2024-01-15"`)
	assert.Contains(t, req.Prompt, `"itemCount": 2`)
	assert.NotContains(t, req.Prompt, "2024-01-16")
}

func TestAdvisor_ServiceFailures(t *testing.T) {
	docs := []core.Document{sale(core.KindInvoice, "2024-01-15", "200", 2)}
	boom := errors.New("connection reset")

	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{"transport error", &fakeGenerator{err: boom}},
		{"empty text", &fakeGenerator{text: ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adv := ai.NewAdvisor(tt.gen, ai.AdvisorConfig{Model: "m"})
			res := adv.RequestInsights(context.Background(), docs)

			assert.Equal(t, ai.StatusFailed, res.Status)
			assert.Equal(t, ai.ReasonServiceError, res.Reason)
			assert.Equal(t, ai.MessageServiceError, res.Text)
			assert.Error(t, res.Err)
			assert.Equal(t, 1, tt.gen.callCount())
		})
	}
}

func TestAdvisor_CanceledResultIsDiscarded(t *testing.T) {
	gen := &fakeGenerator{text: "late", release: make(chan struct{}), started: make(chan struct{}, 1)}
	adv := ai.NewAdvisor(gen, ai.AdvisorConfig{Model: "m"})
	docs := []core.Document{sale(core.KindInvoice, "2024-01-15", "200", 2)}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan ai.Result, 1)
	go func() { done <- adv.RequestInsights(ctx, docs) }()

	<-gen.started
	assert.Equal(t, ai.StatusRequesting, adv.State().Status)
	cancel()

	res := <-done
	assert.Equal(t, ai.ReasonCanceled, res.Reason)
	assert.Equal(t, ai.StatusIdle, adv.State().Status)
}

func TestAdvisor_StaleResponseDoesNotOverwrite(t *testing.T) {
	slow := &fakeGenerator{text: "first", release: make(chan struct{}), started: make(chan struct{}, 1)}
	router := &routingGenerator{first: slow, rest: &fakeGenerator{text: "second"}}
	adv := ai.NewAdvisor(router, ai.AdvisorConfig{Model: "m"})
	docs := []core.Document{sale(core.KindInvoice, "2024-01-15", "200", 2)}

	done := make(chan ai.Result, 1)
	go func() { done <- adv.RequestInsights(context.Background(), docs) }()
	<-slow.started

	second := adv.RequestInsights(context.Background(), docs)
	assert.Equal(t, "second", second.Text)

	close(slow.release)
	first := <-done
	assert.Equal(t, "first", first.Text, "the stale caller still gets its own result")
	assert.Equal(t, "second", adv.State().Text)
}

// routingGenerator sends the first call to first and the others to rest.
type routingGenerator struct {
	mu    sync.Mutex
	n     int
	first ai.Generator
	rest  ai.Generator
}

func (r *routingGenerator) Generate(ctx context.Context, req ai.GenerateRequest) (string, error) {
	r.mu.Lock()
	r.n++
	n := r.n
	r.mu.Unlock()
	if n == 1 {
		return r.first.Generate(ctx, req)
	}
	return r.rest.Generate(ctx, req)
}

func TestBuildPrompt(t *testing.T) {
	points := ai.SalePoints([]core.Document{
		sale(core.KindReceipt, "2024-03-01", "59", 3),
		sale(core.KindInvoice, "2024-03-02", "118", 1),
	})
	require.Len(t, points, 2)

	prompt, err := ai.BuildPrompt(points)
	require.NoError(t, err)

	start := strings.Index(prompt, "[")
	require.GreaterOrEqual(t, start, 0)
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(prompt[start:]), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "2024-03-01", decoded[0]["date"])
	assert.Equal(t, "59", decoded[0]["total"])
	assert.EqualValues(t, 3, decoded[0]["itemCount"])
}
