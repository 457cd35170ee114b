package ai

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/aluiggi96/Doc-MYPE/internal/core"
	"github.com/aluiggi96/Doc-MYPE/internal/logger"
)

// Status is the lifecycle state of an insight request.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusRequesting Status = "requesting"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

// Reason tells failed results apart.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonInsufficientData Reason = "insufficient_data"
	ReasonUnavailable      Reason = "unavailable"
	ReasonServiceError     Reason = "service_error"
	ReasonCanceled         Reason = "canceled"
)

// User-facing messages of failed results.
const (
	MessageInsufficientData = "There is not enough sales data to generate an analysis."
	MessageUnavailable      = "The AI service is not configured. Insights cannot be generated."
	MessageServiceError     = "There was an error contacting the AI service. Please try again later."
	MessageCanceled         = "The insight request was canceled."
)

// Result is the outcome of an insight request. Text holds the generated
// summary on success and a fixed message on failure; Err keeps the cause of
// service errors for logs and is never shown to users.
type Result struct {
	Status Status    `json:"status"`
	Reason Reason    `json:"reason,omitempty"`
	Text   string    `json:"text,omitempty"`
	Err    error     `json:"-"`
	At     time.Time `json:"at"`
}

// Succeeded reports whether Text is generated content.
func (r Result) Succeeded() bool { return r.Status == StatusSucceeded }

type AdvisorConfig struct {
	Model string
	// Timeout bounds one generation call. Zero means no extra bound beyond ctx.
	Timeout time.Duration
}

// Advisor requests narrative insights over sales documents and keeps the
// state of the latest request for views that poll it.
//
// Requests may overlap. Each request gets a sequence number when it starts and
// only the most recently started one may publish its result; older responses
// are returned to their caller but never overwrite the shared state.
type Advisor struct {
	gen Generator
	cfg AdvisorConfig
	log zerolog.Logger

	mu    sync.Mutex
	seq   uint64
	state Result
}

// NewAdvisor returns an Advisor. A nil gen means no credential is configured:
// every request then fails as unavailable without any network call.
func NewAdvisor(gen Generator, cfg AdvisorConfig) *Advisor {
	return &Advisor{
		gen:   gen,
		cfg:   cfg,
		log:   logger.WithComponent("insights"),
		state: Result{Status: StatusIdle},
	}
}

// State returns the published state of the latest request.
func (a *Advisor) State() Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// RequestInsights runs one request to completion and returns its result.
// It never panics or returns a bare error: every failure is a Result with
// StatusFailed and a Reason.
func (a *Advisor) RequestInsights(ctx context.Context, docs []core.Document) Result {
	seq := a.begin()

	res := a.run(ctx, docs)
	res.At = time.Now().UTC()

	a.finish(seq, res)
	return res
}

func (a *Advisor) begin() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seq++
	a.state = Result{Status: StatusRequesting, At: time.Now().UTC()}
	return a.seq
}

func (a *Advisor) finish(seq uint64, res Result) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if seq != a.seq {
		a.log.Debug().Uint64("seq", seq).Uint64("latest", a.seq).Msg("discarding stale insight result")
		return
	}
	if res.Reason == ReasonCanceled {
		// Canceled requests leave no result behind.
		a.state = Result{Status: StatusIdle}
		return
	}
	a.state = res
}

func (a *Advisor) run(ctx context.Context, docs []core.Document) Result {
	if a.gen == nil {
		return failed(ReasonUnavailable, MessageUnavailable, nil)
	}

	points := SalePoints(docs)
	if len(points) == 0 {
		return failed(ReasonInsufficientData, MessageInsufficientData, nil)
	}

	prompt, err := BuildPrompt(points)
	if err != nil {
		a.log.Error().Err(err).Msg("failed to build insights prompt")
		return failed(ReasonServiceError, MessageServiceError, err)
	}

	callCtx := ctx
	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := a.gen.Generate(callCtx, GenerateRequest{Model: a.cfg.Model, Prompt: prompt})
	if ctx.Err() != nil {
		a.log.Info().Dur("elapsed", time.Since(start)).Msg("insight request canceled")
		return failed(ReasonCanceled, MessageCanceled, ctx.Err())
	}
	if err == nil && text == "" {
		err = errors.New("empty response content")
	}
	if err != nil {
		a.log.Error().Err(err).Str("model", a.cfg.Model).Dur("elapsed", time.Since(start)).Msg("insight generation failed")
		return failed(ReasonServiceError, MessageServiceError, err)
	}

	a.log.Info().Str("model", a.cfg.Model).Int("sales", len(points)).Dur("elapsed", time.Since(start)).Msg("insights generated")
	return Result{Status: StatusSucceeded, Text: text}
}

func failed(reason Reason, message string, err error) Result {
	return Result{Status: StatusFailed, Reason: reason, Text: message, Err: err}
}
