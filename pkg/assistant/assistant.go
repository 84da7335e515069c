// Package assistant answers natural-language questions of fishermen and
// marine scientists with a hosted text-generation model. The model is
// reached through a Generator, replies are checked for presence only and
// never retried.
package assistant

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/gnames/gnfmt"
)

// Role of a conversation turn.
type Role string

const (
	User  Role = "user"
	Model Role = "model"
)

// Turn is one message of a conversation.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Type of a property of a declared output shape.
type Type string

const (
	String Type = "string"
	Number Type = "number"
)

// Property describes one field of a structured reply.
type Property struct {
	Name        string
	Type        Type
	Description string
}

// Shape is a declared JSON object shape of a structured reply. All
// properties are required.
type Shape []Property

// Request is one call to a text-generation model. When Shape is set the
// reply must be a JSON object of that shape.
type Request struct {
	System string
	Turns  []Turn
	Shape  Shape
}

// Generator produces a reply for a request.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// FishLocation tells where a fish can be found.
type FishLocation struct {
	FishLocation string `json:"fishLocation"`
}

// Trend is a stock trend estimated by the model.
type Trend struct {
	StockTrend string  `json:"stockTrend"`
	Confidence float64 `json:"confidence"`
}

// Unknown is the stock trend given when there is not enough data.
const Unknown = "unknown"

// Assistant runs the question flows on a Generator.
type Assistant struct {
	gen     Generator
	timeout time.Duration
	enc     gnfmt.Encoder
}

// Option configures an Assistant.
type Option func(*Assistant)

// OptTimeout limits the time of one model call. Zero means no limit.
func OptTimeout(d time.Duration) Option {
	return func(a *Assistant) {
		if d >= 0 {
			a.timeout = d
		}
	}
}

// New creates an Assistant. A nil generator makes every flow
// unavailable.
func New(gen Generator, opts ...Option) *Assistant {
	res := &Assistant{gen: gen, enc: gnfmt.GNjson{}}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// FindFishLocation answers where a fish can be found, with stock trends
// and advice for the current season.
func (a *Assistant) FindFishLocation(
	ctx context.Context,
	query string,
) (FishLocation, error) {
	var res FishLocation
	query = strings.TrimSpace(query)
	if query == "" {
		return res, InvalidInputError("query")
	}

	req := Request{
		System: fishFinderSystem,
		Turns:  []Turn{{Role: User, Text: "The query is: " + query}},
		Shape:  fishLocationShape,
	}
	if err := a.structured(ctx, "fish location", req, &res); err != nil {
		return res, err
	}
	res.FishLocation = strings.TrimSpace(res.FishLocation)
	if res.FishLocation == "" {
		return res, EmptyReplyError("fish location")
	}
	return res, nil
}

// StockTrend estimates the stock trend of a fish in a region. Without
// enough data the trend is Unknown with zero confidence.
func (a *Assistant) StockTrend(
	ctx context.Context,
	fishName, region string,
) (Trend, error) {
	var res Trend
	fishName = strings.TrimSpace(fishName)
	region = strings.TrimSpace(region)
	if fishName == "" {
		return res, InvalidInputError("fishName")
	}
	if region == "" {
		return res, InvalidInputError("region")
	}

	req := Request{
		System: stockTrendSystem,
		Turns: []Turn{{
			Role: User,
			Text: "Determine the stock trend of " + fishName + " in " + region + ".",
		}},
		Shape: trendShape,
	}
	if err := a.structured(ctx, "stock trend", req, &res); err != nil {
		return res, err
	}
	return normalizeTrend(res), nil
}

// Chat continues a free-form conversation with a new query.
func (a *Assistant) Chat(
	ctx context.Context,
	history []Turn,
	query string,
) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", InvalidInputError("query")
	}

	turns := make([]Turn, 0, len(history)+1)
	for _, t := range history {
		if strings.TrimSpace(t.Text) == "" {
			continue
		}
		if t.Role != Model {
			t.Role = User
		}
		turns = append(turns, t)
	}
	turns = append(turns, Turn{Role: User, Text: query})

	res, err := a.generate(ctx, "chat", Request{System: chatSystem, Turns: turns})
	if err != nil {
		return "", err
	}
	return res, nil
}

func (a *Assistant) structured(
	ctx context.Context,
	op string,
	req Request,
	out any,
) error {
	reply, err := a.generate(ctx, op, req)
	if err != nil {
		return err
	}
	if err = a.enc.Decode([]byte(stripFence(reply)), out); err != nil {
		return ReplyError(op, err)
	}
	return nil
}

func (a *Assistant) generate(ctx context.Context, op string, req Request) (string, error) {
	if a.gen == nil {
		return "", NotConfiguredError()
	}
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	reply, err := a.gen.Generate(ctx, req)
	if err != nil {
		return "", UnavailableError(op, err)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", EmptyReplyError(op)
	}
	return reply, nil
}

// stripFence removes a markdown code fence around a JSON reply.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func normalizeTrend(t Trend) Trend {
	trend := strings.ToLower(strings.TrimSpace(t.StockTrend))
	switch trend {
	case "increasing", "decreasing", "stable":
	default:
		return Trend{StockTrend: Unknown}
	}
	conf := t.Confidence
	if math.IsNaN(conf) {
		conf = 0
	}
	return Trend{StockTrend: trend, Confidence: min(1, max(0, conf))}
}
