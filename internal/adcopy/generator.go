package adcopy

import (
	"context"
	"strings"

	"github.com/jonathan/brand-ad-studio/internal/llm"
	"github.com/jonathan/brand-ad-studio/internal/logger"
	"github.com/jonathan/brand-ad-studio/internal/prompts"
	"github.com/jonathan/brand-ad-studio/internal/types"
)

// MaxRetries is how many corrective attempts follow the first generation
const MaxRetries = 3

// State is a step of the generate/validate loop
type State string

// Loop states. VALID and TRUNCATED are terminal.
const (
	StateGenerating State = "GENERATING"
	StateValidating State = "VALIDATING"
	StateValid      State = "VALID"
	StateInvalid    State = "INVALID"
	StateTruncated  State = "TRUNCATED"
)

// Result is the outcome of one generation request
type Result struct {
	TaskType types.TaskType `json:"task_type"`
	Copy     *types.AdCopy  `json:"copy,omitempty"`
	// Text is the markdown rendering for ads and the cleaned text otherwise
	Text     string   `json:"text"`
	State    State    `json:"state"`
	Attempts int      `json:"attempts"`
	Errors   []string `json:"errors,omitempty"`
}

// Generator drives the text model for ads, copy and emails
type Generator struct {
	client llm.Client
	log    *logger.Logger
	tier   llm.ModelTier

	// OnTransition, when set, observes every state change of the ad loop
	OnTransition func(state State, attempt int)
}

// NewGenerator creates a generator backed by client
func NewGenerator(client llm.Client, log *logger.Logger) *Generator {
	if log == nil {
		log = logger.Nop()
	}
	return &Generator{client: client, log: log, tier: llm.TierAdvanced}
}

// Generate produces text for task. userPrompt is the already resolved request text.
func (g *Generator) Generate(ctx context.Context, gc *types.GenerationContext, task types.TaskType, userPrompt string) (*Result, error) {
	switch task {
	case types.TaskAd:
		return g.generateAd(ctx, gc, userPrompt)
	case types.TaskCopy:
		return g.generateText(ctx, gc, task, "copy-task", userPrompt)
	case types.TaskEmail:
		return g.generateText(ctx, gc, task, "email-task", userPrompt)
	default:
		return nil, ErrUnknownTask
	}
}

func (g *Generator) generateAd(ctx context.Context, gc *types.GenerationContext, userPrompt string) (*Result, error) {
	base := g.buildPrompt(gc, "ad-task", userPrompt)
	prompt := base

	var (
		candidate types.AdCopy
		errs      []string
	)
	for attempt := 1; attempt <= MaxRetries+1; attempt++ {
		g.transition(StateGenerating, attempt)
		raw, err := g.client.GenerateContent(ctx, prompt, g.tier)
		if err != nil {
			g.log.Error("ad copy generation failed", "attempt", attempt, "error", err)
			return nil, &GenerationError{Message: "text model call failed", Attempt: attempt, Cause: err}
		}

		g.transition(StateValidating, attempt)
		parsed, strategy := parseNamed(raw)
		candidate = CleanCopy(parsed)
		errs = Validate(candidate)
		if len(errs) == 0 {
			g.transition(StateValid, attempt)
			return adResult(candidate, StateValid, attempt, nil), nil
		}

		g.transition(StateInvalid, attempt)
		g.log.Warn("ad copy failed validation", "attempt", attempt, "strategy", strategy, "errors", errs)
		prompt = base + retrySuffix(errs)
	}

	g.transition(StateTruncated, MaxRetries+1)
	return adResult(Truncate(candidate), StateTruncated, MaxRetries+1, errs), nil
}

func (g *Generator) generateText(ctx context.Context, gc *types.GenerationContext, task types.TaskType, promptKey, userPrompt string) (*Result, error) {
	raw, err := g.client.GenerateContent(ctx, g.buildPrompt(gc, promptKey, userPrompt), g.tier)
	if err != nil {
		g.log.Error("text generation failed", "task", task, "error", err)
		return nil, &GenerationError{Message: "text model call failed", Attempt: 1, Cause: err}
	}
	return &Result{TaskType: task, Text: Clean(raw), State: StateValid, Attempts: 1}, nil
}

func (g *Generator) transition(state State, attempt int) {
	g.log.Debug("ad copy state", "state", state, "attempt", attempt)
	if g.OnTransition != nil {
		g.OnTransition(state, attempt)
	}
}

func adResult(c types.AdCopy, state State, attempts int, errs []string) *Result {
	return &Result{
		TaskType: types.TaskAd,
		Copy:     &c,
		Text:     Markdown(c),
		State:    state,
		Attempts: attempts,
		Errors:   errs,
	}
}

// buildPrompt joins the brand system context and the task prompt
func (g *Generator) buildPrompt(gc *types.GenerationContext, taskKey, userPrompt string) string {
	vars := prompts.Vars(gc)
	vars[prompts.Key("brandContext")] = BrandContext(gc)
	vars[prompts.Key("userPrompt")] = strings.TrimSpace(userPrompt)
	if _, ok := vars[prompts.Key("brandName")]; !ok {
		vars[prompts.Key("brandName")] = "the brand"
	}

	system := prompts.Substitute(prompts.MustGet("adcopy.json", "system-context"), vars)
	task := prompts.Substitute(prompts.MustGet("adcopy.json", taskKey), vars)
	return system + "\n\n" + task
}

func retrySuffix(errs []string) string {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = "- " + e
	}
	return prompts.Substitute(prompts.MustGet("adcopy.json", "ad-retry"), map[string]string{
		prompts.Key("errors"): strings.Join(lines, "\n"),
	})
}

// BrandContext renders the brand rules, instructions and stored assets as prompt text
func BrandContext(gc *types.GenerationContext) string {
	if gc == nil {
		return ""
	}
	vars := prompts.Vars(gc)

	var sb strings.Builder
	section := func(title, body string) {
		body = strings.TrimSpace(body)
		if body == "" {
			return
		}
		sb.WriteString(title)
		sb.WriteString(":\n")
		sb.WriteString(body)
		sb.WriteString("\n\n")
	}

	if gc.Instructions != nil {
		section("Brand instructions", prompts.Substitute(gc.Instructions.SystemPrompt, vars))
		section("Tone rules", gc.Instructions.ToneRules)
	}
	section("Tone of voice", vars[prompts.Key("toneOfVoice")])
	section("Key messaging", vars[prompts.Key("keyMessaging")])
	section("Target audience", vars[prompts.Key("targetAudience")])
	section("Brand values", vars[prompts.Key("values")])
	section("Dos and don'ts", vars[prompts.Key("dosAndDonts")])
	if gc.Guideline != nil && len(gc.Guideline.Colors.All) > 0 {
		section("Brand colors", strings.Join(gc.Guideline.Colors.All, ", "))
	}
	section("Guideline excerpts", vars[prompts.Key("guidelineText")])
	section("Reference copy (match this style)", vars[prompts.Key("referenceCopy")])
	section("Competitor ads (do not imitate)", vars[prompts.Key("competitorAds")])

	return strings.TrimSpace(sb.String())
}
