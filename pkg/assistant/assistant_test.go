package assistant_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gnames/gnmarine/pkg/assistant"
	"github.com/gnames/gnmarine/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fake struct {
	reply string
	err   error
	block bool
	reqs  []assistant.Request
}

func (f *fake) Generate(ctx context.Context, req assistant.Request) (string, error) {
	f.reqs = append(f.reqs, req)
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.reply, f.err
}

func TestFindFishLocation(t *testing.T) {
	ctx := context.Background()
	gen := &fake{reply: `{"fishLocation": "Tuna gather near Lakshadweep in May."}`}
	a := assistant.New(gen)

	res, err := a.FindFishLocation(ctx, "  Where can I find Tuna? ")
	require.NoError(t, err)
	assert.Equal(t, "Tuna gather near Lakshadweep in May.", res.FishLocation)

	require.Len(t, gen.reqs, 1)
	req := gen.reqs[0]
	assert.NotEmpty(t, req.System)
	require.Len(t, req.Shape, 1)
	assert.Equal(t, "fishLocation", req.Shape[0].Name)
	require.Len(t, req.Turns, 1)
	assert.Contains(t, req.Turns[0].Text, "Where can I find Tuna?")
}

func TestStockTrend(t *testing.T) {
	tests := []struct {
		msg   string
		reply string
		res   assistant.Trend
	}{
		{"valid", `{"stockTrend": "Increasing", "confidence": 0.8}`,
			assistant.Trend{StockTrend: "increasing", Confidence: 0.8}},
		{"fenced", "```json\n{\"stockTrend\": \"stable\", \"confidence\": 0.5}\n```",
			assistant.Trend{StockTrend: "stable", Confidence: 0.5}},
		{"clamped", `{"stockTrend": "decreasing", "confidence": 7}`,
			assistant.Trend{StockTrend: "decreasing", Confidence: 1}},
		{"negative", `{"stockTrend": "stable", "confidence": -1}`,
			assistant.Trend{StockTrend: "stable", Confidence: 0}},
		{"unknown", `{"stockTrend": "unknown", "confidence": 0.9}`,
			assistant.Trend{StockTrend: assistant.Unknown}},
		{"odd trend", `{"stockTrend": "booming", "confidence": 0.9}`,
			assistant.Trend{StockTrend: assistant.Unknown}},
	}
	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			a := assistant.New(&fake{reply: v.reply})
			res, err := a.StockTrend(context.Background(), "Tuna", "Arabian Sea")
			require.NoError(t, err)
			assert.Equal(t, v.res, res)
		})
	}
}

func TestChat(t *testing.T) {
	gen := &fake{reply: "Sardines are coastal."}
	a := assistant.New(gen)
	history := []assistant.Turn{
		{Role: assistant.User, Text: "Hi"},
		{Role: assistant.Model, Text: "Hello!"},
		{Role: "system", Text: "ignored role"},
		{Role: assistant.User, Text: "  "},
	}
	res, err := a.Chat(context.Background(), history, "Where do sardines live?")
	require.NoError(t, err)
	assert.Equal(t, "Sardines are coastal.", res)

	turns := gen.reqs[0].Turns
	require.Len(t, turns, 4)
	assert.Equal(t, assistant.User, turns[2].Role)
	assert.Equal(t, assistant.Turn{Role: assistant.User, Text: "Where do sardines live?"}, turns[3])
	assert.Nil(t, gen.reqs[0].Shape)
}

func TestInvalidInput(t *testing.T) {
	ctx := context.Background()
	gen := &fake{reply: "x"}
	a := assistant.New(gen)

	_, err := a.FindFishLocation(ctx, " ")
	assert.Equal(t, errcode.InvalidInputError, assistant.Code(err))
	_, err = a.StockTrend(ctx, "", "Arabian Sea")
	assert.Equal(t, errcode.InvalidInputError, assistant.Code(err))
	_, err = a.StockTrend(ctx, "Tuna", "")
	assert.Equal(t, errcode.InvalidInputError, assistant.Code(err))
	_, err = a.Chat(ctx, nil, "")
	assert.Equal(t, errcode.InvalidInputError, assistant.Code(err))
	assert.Empty(t, gen.reqs)
}

func TestUnavailable(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		msg string
		a   *assistant.Assistant
	}{
		{"not configured", assistant.New(nil)},
		{"failure", assistant.New(&fake{err: errors.New("quota exceeded")})},
		{"empty reply", assistant.New(&fake{reply: "  "})},
		{"not json", assistant.New(&fake{reply: "I think tuna is fine"})},
		{"timeout", assistant.New(&fake{block: true},
			assistant.OptTimeout(10*time.Millisecond))},
	}
	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			_, err := v.a.FindFishLocation(ctx, "tuna")
			assert.Equal(t, errcode.AssistantUnavailableError, assistant.Code(err))
			_, err = v.a.StockTrend(ctx, "tuna", "Kochi")
			assert.Equal(t, errcode.AssistantUnavailableError, assistant.Code(err))
		})
	}

	_, err := assistant.New(&fake{reply: `{"fishLocation": ""}`}).
		FindFishLocation(ctx, "tuna")
	assert.Equal(t, errcode.AssistantUnavailableError, assistant.Code(err))

	_, err = assistant.New(&fake{err: errors.New("down")}).Chat(ctx, nil, "hi")
	assert.Equal(t, errcode.AssistantUnavailableError, assistant.Code(err))
}
