// Package handler implements the scheduled Lambda entry point that keeps the
// per-user Service Catalog budgets in sync with Synapse team membership.
package handler

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"go.uber.org/zap"

	"github.com/synapsehq/budgetmaker/bmlambda"
	"github.com/synapsehq/budgetmaker/internal/appconfig"
	"github.com/synapsehq/budgetmaker/internal/synapse"
)

// Response is the invocation result payload. Errors are reported in the body
// rather than as invocation failures so the scheduler does not retry a run
// that may already have made partial progress.
type Response struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// MembershipLister resolves team ids into the users belonging to them.
type MembershipLister interface {
	UsersByTeam(ctx context.Context, teamIDs []string) (map[string][]string, error)
}

// Provisioner is the budget service surface the handler drives.
type Provisioner interface {
	CompareBudgetsAndUsers(ctx context.Context, userIDs []string) (missing, stale []string, err error)
	CreateBudgets(ctx context.Context, userIDs []string, teamsByUser map[string][]string) (string, error)
	DeleteBudgets(ctx context.Context, userIDs []string) (string, error)
}

// ReportPublisher is the subset of the SNS API used to publish run reports.
type ReportPublisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Handler runs one budget sync per invocation.
type Handler struct {
	cfg     appconfig.Config
	members MembershipLister
	budgets Provisioner
	reports ReportPublisher
	log     *zap.Logger
}

// New creates a Handler.
func New(cfg appconfig.Config, members MembershipLister, budgets Provisioner, reports ReportPublisher, log *zap.Logger) *Handler {
	return &Handler{cfg: cfg, members: members, budgets: budgets, reports: reports, log: log}
}

// Handle is the Lambda entry. The event payload is ignored beyond debug
// logging; every invocation performs a full sync.
func (h *Handler) Handle(ctx context.Context, event json.RawMessage) (Response, error) {
	log := bmlambda.WithTrace(ctx, h.log)
	log.Debug("event received", zap.ByteString("event", event))

	message, err := h.run(ctx, log)
	if err != nil {
		log.Error("budget maker run failed", zap.Error(err))
		return Response{Error: err.Error()}, nil
	}

	log.Info(message)
	return Response{Message: message}, nil
}

func (h *Handler) run(ctx context.Context, log *zap.Logger) (string, error) {
	teamsByUser, err := h.members.UsersByTeam(ctx, h.cfg.Rules.TeamIDs())
	if err != nil {
		return "", err
	}

	if report := synapse.DuplicateReport(teamsByUser); report != "" {
		log.Warn("one or more duplicate team memberships was found", zap.String("report", report))
	}

	userIDs := make([]string, 0, len(teamsByUser))
	for id := range teamsByUser {
		userIDs = append(userIDs, id)
	}
	sort.Strings(userIDs)

	missing, stale, err := h.budgets.CompareBudgetsAndUsers(ctx, userIDs)
	if err != nil {
		return "", err
	}

	created, err := h.budgets.CreateBudgets(ctx, missing, teamsByUser)
	if err != nil {
		return "", err
	}

	removed, err := h.budgets.DeleteBudgets(ctx, stale)
	if err != nil {
		return "", err
	}

	message := "Budget maker run complete; " + created + "; " + removed

	if err := h.publishReport(ctx, message); err != nil {
		// The sync itself succeeded; a failed report must not fail the run.
		log.Warn("publishing run report failed", zap.Error(err))
	}

	return message, nil
}

func (h *Handler) publishReport(ctx context.Context, message string) error {
	if h.cfg.ReportTopicARN == "" {
		return nil
	}
	_, err := h.reports.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(h.cfg.ReportTopicARN),
		Subject:  aws.String("Budget maker run report"),
		Message:  aws.String(message),
	})
	return err
}
