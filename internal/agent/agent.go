package agent

import (
	"context"
	"errors"
	"fmt"

	"leavedesk/internal/config"
	"leavedesk/internal/llm"
	"leavedesk/internal/shared/contextutil"
	"leavedesk/internal/tools"

	"go.uber.org/zap"
)

type Status string

const (
	StatusComplete   Status = "complete"
	StatusIncomplete Status = "incomplete"
)

const (
	ReasonHalted        = "Agent halted."
	ReasonStepLimit     = "Agent reached step limit."
	ReasonNotConfigured = "Completion client not configured."
)

// Result is what a workflow invocation reports back. The runner never raises
// for model misbehavior; everything the model can get wrong ends up here as
// an incomplete status with a reason.
type Result struct {
	Status    Status `json:"status"`
	Reason    string `json:"reason,omitempty"`
	FinalStep any    `json:"final_step,omitempty"`
	Steps     int    `json:"steps"`
}

// Runner drives the bounded think-act-observe loop against the completion
// client, executing matched actions through the tool adapters.
type Runner struct {
	client llm.CompletionClient
	hris   *tools.HRISTool
	email  *tools.EmailTool
	cfg    config.AgentConfig
	logger *zap.Logger
}

func NewRunner(
	client llm.CompletionClient,
	hris *tools.HRISTool,
	email *tools.EmailTool,
	cfg config.AgentConfig,
	logger ...*zap.Logger,
) *Runner {
	l := zap.L().Named("agent.runner")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("agent.runner")
	}
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = 5
	}
	return &Runner{client: client, hris: hris, email: email, cfg: cfg, logger: l}
}

func primingPrompt(goal string) string {
	availableTools := []string{
		"get_leave_balance(employee_id)",
		"submit_leave_application(employee_id, days_requested)",
		"send_email(recipient_email, subject, body)",
	}
	return fmt.Sprintf(
		"You are an HR assistant. Your goal is to completely fulfill the user's request. "+
			"User's request: '%s'.\n"+
			"Available tools: %v.\n"+
			"Follow these steps: 1. Check balance. 2. If sufficient, submit application. 3. Finish by composing and sending a confirmation email.\n"+
			"What is the first tool call you should make? Only respond with the function call.",
		goal, availableTools,
	)
}

// Run resolves a single natural-language goal. Exit conditions: a send_email
// action (complete), unrecognized output or an extraction failure (halted),
// a completion error, or the step budget.
func (r *Runner) Run(ctx context.Context, goal string) Result {
	rid := contextutil.GetRequestID(ctx)
	r.logger.Info("agent activated",
		zap.String("request_id", rid),
		zap.String("goal", goal),
	)

	if r.client == nil {
		return Result{Status: StatusIncomplete, Reason: ReasonNotConfigured}
	}

	transcript := NewTranscript(primingPrompt(goal), r.cfg.MaxTranscriptLen)
	// The email action does not parse a recipient from model output; it goes
	// to the employee seen earlier in this run, else the configured default.
	recipientID := r.cfg.DefaultEmployeeID

	for step := 1; step <= r.cfg.MaxSteps; step++ {
		// Think.
		raw, err := r.complete(ctx, transcript.Render())
		if err != nil {
			r.logger.Error("completion failed",
				zap.String("request_id", rid),
				zap.Int("step", step),
				zap.Error(err),
			)
			return Result{Status: StatusIncomplete, Reason: fmt.Sprintf("completion failed: %v", err), Steps: step}
		}

		// Act.
		action, err := ParseAction(raw)
		var extractionErr *ExtractionError
		if errors.As(err, &extractionErr) {
			r.logger.Warn("action extraction failed",
				zap.String("request_id", rid),
				zap.Int("step", step),
				zap.String("call", extractionErr.Call),
				zap.String("field", extractionErr.Field),
			)
			return Result{Status: StatusIncomplete, Reason: extractionErr.Error(), Steps: step}
		}

		var observation string
		switch action.Kind {
		case ActionBalanceLookup:
			result := r.hris.GetLeaveBalance(ctx, action.EmployeeID)
			if result.Found {
				recipientID = action.EmployeeID
			}
			observation = result.String()

		case ActionSubmit:
			result := r.hris.SubmitLeaveApplication(ctx, action.EmployeeID, action.Days)
			if result.Success {
				recipientID = action.EmployeeID
			}
			observation = result.String()

		case ActionSendEmail:
			emp, ok := r.hris.GetEmployee(recipientID)
			if !ok {
				r.logger.Error("email recipient not resolvable",
					zap.String("request_id", rid),
					zap.String("employee_id", recipientID),
				)
				return Result{Status: StatusIncomplete, Reason: "email recipient could not be resolved", Steps: step}
			}
			outcome := r.email.SendEmail(ctx, emp.Email, action.Subject, action.Body)
			r.logger.Info("agent workflow complete",
				zap.String("request_id", rid),
				zap.Int("steps", step),
				zap.String("email_status", string(outcome.Status)),
			)
			return Result{Status: StatusComplete, FinalStep: outcome, Steps: step}

		default:
			r.logger.Warn("agent produced no recognizable action",
				zap.String("request_id", rid),
				zap.Int("step", step),
			)
			return Result{Status: StatusIncomplete, Reason: ReasonHalted, Steps: step}
		}

		// Observe.
		r.logger.Debug("tool executed",
			zap.String("request_id", rid),
			zap.Int("step", step),
			zap.String("action", action.Kind.String()),
			zap.String("observation", observation),
		)
		transcript.Observe(action.Raw, observation)
	}

	return Result{Status: StatusIncomplete, Reason: ReasonStepLimit, Steps: r.cfg.MaxSteps}
}

func (r *Runner) complete(ctx context.Context, prompt string) (string, error) {
	if r.cfg.CompletionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.CompletionTimeout)
		defer cancel()
	}
	return r.client.Complete(ctx, prompt)
}
