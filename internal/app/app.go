package app

import (
	"context"
	"errors"

	"leavedesk/internal/agent"
	"leavedesk/internal/config"
	"leavedesk/internal/employee"
	"leavedesk/internal/leave"
	"leavedesk/internal/llm"
	"leavedesk/internal/mailer"
	"leavedesk/internal/middleware"
	"leavedesk/internal/tools"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// BuildApp wires stores, tools, services and routes onto the router. Both the
// stateful workflow and the agent path share the one employee store.
func BuildApp(ctx context.Context, router *gin.Engine, cfg *config.Config) error {
	logger := zap.L()

	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimitByIP(rate.Limit(10), 20))

	employees := employee.NewStore(employee.SeedData()...)
	requests := leave.NewRequestStore()
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP, logger)
	signer := leave.NewApprovalSigner(cfg.Approval.Secret, cfg.Approval.TokenTTL)

	root := router.Group("")

	leaveService := leave.NewService(employees, requests, smtpMailer, signer, cfg.Approval.BaseURL, logger)
	leave.RegisterRoutes(root, leave.NewHandler(leaveService))

	hrisTool := tools.NewHRISTool(employees, logger)
	emailTool := tools.NewEmailTool(smtpMailer)

	// A missing API key degrades the agent endpoint to a configuration
	// result instead of failing startup; the stateful workflow is unaffected.
	var completionClient llm.CompletionClient
	client, err := llm.NewGeminiClient(ctx, cfg.Agent.Model)
	switch {
	case err == nil:
		completionClient = client
	case errors.Is(err, llm.ErrAPIKeyMissing):
		logger.Warn("agent completion client not configured", zap.Error(err))
	default:
		return err
	}

	runner := agent.NewRunner(completionClient, hrisTool, emailTool, cfg.Agent, logger)
	agent.RegisterRoutes(root, agent.NewHandler(runner))

	logger.Info("application wired",
		zap.String("model", cfg.Agent.Model),
		zap.Bool("agent_enabled", completionClient != nil),
		zap.Bool("smtp_configured", cfg.SMTP.Configured()),
	)
	return nil
}
