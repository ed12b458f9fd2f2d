// Package budget builds and provisions per-user AWS Budgets for Service
// Catalog end users.
//
// Each Synapse user gets one cost budget named after their user id, scoped to
// the spend of the IAM role they assume through the Service Catalog, plus a
// set of threshold notifications derived from the configured threshold tiers.
package budget

import (
	"context"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/budgets"
	"github.com/aws/aws-sdk-go-v2/service/budgets/types"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/synapsehq/budgetmaker/internal/appconfig"
)

// NamePrefix marks budgets managed by this service. Reconciliation only ever
// touches budgets carrying this prefix.
const NamePrefix = "service-catalog_"

// Name returns the budget name for a Synapse user id.
func Name(userID string) string {
	return NamePrefix + userID
}

// UserID extracts the Synapse user id from a budget name. The second return
// is false when the name does not carry the service catalog prefix.
func UserID(budgetName string) (string, bool) {
	if !strings.HasPrefix(budgetName, NamePrefix) {
		return "", false
	}
	return strings.TrimPrefix(budgetName, NamePrefix), true
}

// BudgetsAPI is the subset of the AWS Budgets API used by the Service.
// *budgets.Client satisfies it; tests substitute a recording double.
type BudgetsAPI interface {
	CreateBudget(ctx context.Context, params *budgets.CreateBudgetInput, optFns ...func(*budgets.Options)) (*budgets.CreateBudgetOutput, error)
	DescribeBudgets(ctx context.Context, params *budgets.DescribeBudgetsInput, optFns ...func(*budgets.Options)) (*budgets.DescribeBudgetsOutput, error)
	DeleteBudget(ctx context.Context, params *budgets.DeleteBudgetInput, optFns ...func(*budgets.Options)) (*budgets.DeleteBudgetOutput, error)
}

// Service provisions budgets against a single AWS account. The configuration
// is read-only for the lifetime of the service.
type Service struct {
	api BudgetsAPI
	cfg appconfig.Config
	log *zap.Logger
}

// NewService creates a Service.
func NewService(api BudgetsAPI, cfg appconfig.Config, log *zap.Logger) *Service {
	return &Service{api: api, cfg: cfg, log: log}
}

// Submit creates a budget and its notifications in a single CreateBudget call
// and returns the raw API response. API errors propagate unmodified; there is
// no retry.
func (s *Service) Submit(ctx context.Context, def types.Budget, notifs []types.NotificationWithSubscribers) (*budgets.CreateBudgetOutput, error) {
	return s.api.CreateBudget(ctx, &budgets.CreateBudgetInput{
		AccountId:                    aws.String(s.cfg.AccountID),
		Budget:                       &def,
		NotificationsWithSubscribers: notifs,
	})
}

// CreateBudgets provisions a budget for each user id, in input order, using
// the user's team memberships from teamsByUser. The first submission failure
// aborts the remaining batch. Returns a summary of the processed user ids.
func (s *Service) CreateBudgets(ctx context.Context, userIDs []string, teamsByUser map[string][]string) (string, error) {
	created := make([]string, 0, len(userIDs))
	for _, userID := range userIDs {
		teams := teamsByUser[userID]
		if len(teams) == 0 {
			return "", errors.Newf("no team membership for synapse user %s", userID)
		}
		for _, team := range teams {
			def, err := s.Definition(userID, team)
			if err != nil {
				return "", err
			}
			notifs, err := s.NotificationDefinitions(userID, team)
			if err != nil {
				return "", err
			}
			if _, err := s.Submit(ctx, def, notifs); err != nil {
				return "", err
			}
			s.log.Info("budget created",
				zap.String("synapse_id", userID),
				zap.String("team", team),
				zap.String("budget_name", Name(userID)),
			)
		}
		created = append(created, userID)
	}
	return "Budgets created for synapse ids: " + JoinOrNone(created), nil
}

// CompareBudgetsAndUsers lists the existing service catalog budgets and
// splits the difference against the given user ids: users that still need a
// budget (in input order) and stale budget user ids that no longer correspond
// to any user (sorted, for deterministic removal).
func (s *Service) CompareBudgetsAndUsers(ctx context.Context, userIDs []string) (missing, stale []string, err error) {
	existing := make(map[string]bool)
	input := &budgets.DescribeBudgetsInput{AccountId: aws.String(s.cfg.AccountID)}
	for {
		out, err := s.api.DescribeBudgets(ctx, input)
		if err != nil {
			return nil, nil, err
		}
		for _, b := range out.Budgets {
			if b.BudgetName == nil {
				continue
			}
			if id, ok := UserID(*b.BudgetName); ok {
				existing[id] = true
			}
		}
		if out.NextToken == nil {
			break
		}
		input.NextToken = out.NextToken
	}

	want := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		want[id] = true
	}
	for _, id := range userIDs {
		if !existing[id] {
			missing = append(missing, id)
		}
	}
	for id := range existing {
		if !want[id] {
			stale = append(stale, id)
		}
	}
	sort.Strings(stale)

	return missing, stale, nil
}

// DeleteBudgets removes the budget of each given user id. The first API
// failure aborts the batch. Returns a summary of the removed user ids.
func (s *Service) DeleteBudgets(ctx context.Context, userIDs []string) (string, error) {
	removed := make([]string, 0, len(userIDs))
	for _, userID := range userIDs {
		_, err := s.api.DeleteBudget(ctx, &budgets.DeleteBudgetInput{
			AccountId:  aws.String(s.cfg.AccountID),
			BudgetName: aws.String(Name(userID)),
		})
		if err != nil {
			return "", err
		}
		s.log.Info("budget removed", zap.String("synapse_id", userID))
		removed = append(removed, userID)
	}
	return "Budgets removed for synapse ids: " + JoinOrNone(removed), nil
}

// JoinOrNone formats an id list for run summaries, with "none" standing in
// for the empty list. Every summary that names user ids goes through this so
// the sentinel cannot drift between call sites.
func JoinOrNone(ids []string) string {
	if len(ids) == 0 {
		return "none"
	}
	return strings.Join(ids, ", ")
}
