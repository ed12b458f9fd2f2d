package appconfig_test

import (
	"strings"
	"testing"

	"github.com/synapsehq/budgetmaker/internal/appconfig"
)

const validRules = `
teams:
  "12345":
    amount: "100"
    period: ANNUALLY
    community_manager_emails:
      - manager@example.org
  "67890":
    amount: "25"
    period: MONTHLY
    community_manager_emails: []
`

const validThresholds = `
notify_user_only: [25.0, 50.0, 80.0]
notify_admins_too: [90.0, 100.0, 110.0]
`

func setValidEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AWS_ACCOUNT_ID", "012345678901")
	t.Setenv("END_USER_ROLE_NAME", "ServiceCatalogEndusers")
	t.Setenv("NOTIFICATION_TOPIC_ARN", "arn:aws:sns:us-east-1:012345678901:budget-alerts")
	t.Setenv("BUDGET_RULES", validRules)
	t.Setenv("THRESHOLDS", validThresholds)
}

func TestLoad_Valid(t *testing.T) {
	setValidEnv(t)

	cfg, err := appconfig.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.AccountID != "012345678901" {
		t.Errorf("AccountID = %q", cfg.AccountID)
	}
	if cfg.SynapseBaseURL != "https://repo-prod.prod.sagebase.org/repo/v1" {
		t.Errorf("SynapseBaseURL default not applied, got %q", cfg.SynapseBaseURL)
	}

	rule, ok := cfg.Rules.Teams["12345"]
	if !ok {
		t.Fatal("team 12345 missing from rules")
	}
	if rule.Amount != "100" || rule.Period != "ANNUALLY" {
		t.Errorf("team 12345 rule = %+v", rule)
	}
	if len(rule.CommunityManagerEmails) != 1 || rule.CommunityManagerEmails[0] != "manager@example.org" {
		t.Errorf("community manager emails = %v", rule.CommunityManagerEmails)
	}

	got := cfg.Rules.TeamIDs()
	want := []string{"12345", "67890"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("TeamIDs() = %v, want %v", got, want)
	}

	if len(cfg.Thresholds.NotifyUserOnly) != 3 || cfg.Thresholds.NotifyUserOnly[0] != 25.0 {
		t.Errorf("NotifyUserOnly = %v", cfg.Thresholds.NotifyUserOnly)
	}
	if len(cfg.Thresholds.NotifyAdminsToo) != 3 || cfg.Thresholds.NotifyAdminsToo[2] != 110.0 {
		t.Errorf("NotifyAdminsToo = %v", cfg.Thresholds.NotifyAdminsToo)
	}
}

func TestLoad_MissingRequiredVariable(t *testing.T) {
	setValidEnv(t)
	t.Setenv("AWS_ACCOUNT_ID", "")

	if _, err := appconfig.Load(); err == nil {
		t.Fatal("expected error for missing AWS_ACCOUNT_ID")
	}
}

func TestLoad_MalformedRulesYAML(t *testing.T) {
	setValidEnv(t)
	t.Setenv("BUDGET_RULES", "teams: [not: a: map")

	_, err := appconfig.Load()
	if err == nil {
		t.Fatal("expected error for malformed BUDGET_RULES")
	}
	if !strings.Contains(err.Error(), "BUDGET_RULES") {
		t.Errorf("error should name BUDGET_RULES, got: %v", err)
	}
}

func TestLoad_UnknownPeriod(t *testing.T) {
	setValidEnv(t)
	t.Setenv("BUDGET_RULES", `
teams:
  "12345":
    amount: "100"
    period: WEEKLY
    community_manager_emails: []
`)

	_, err := appconfig.Load()
	if err == nil {
		t.Fatal("expected validation error for period WEEKLY")
	}
	if !strings.Contains(err.Error(), "Period") {
		t.Errorf("error should name the Period field, got: %v", err)
	}
}

func TestLoad_EmptyThresholdTier(t *testing.T) {
	setValidEnv(t)
	t.Setenv("THRESHOLDS", `
notify_user_only: []
notify_admins_too: [90.0]
`)

	if _, err := appconfig.Load(); err == nil {
		t.Fatal("expected validation error for empty notify_user_only")
	}
}

func TestLoad_InvalidManagerEmail(t *testing.T) {
	setValidEnv(t)
	t.Setenv("BUDGET_RULES", `
teams:
  "12345":
    amount: "100"
    period: ANNUALLY
    community_manager_emails:
      - not-an-email
`)

	if _, err := appconfig.Load(); err == nil {
		t.Fatal("expected validation error for malformed email")
	}
}

func TestLoad_BadAccountID(t *testing.T) {
	setValidEnv(t)
	t.Setenv("AWS_ACCOUNT_ID", "12345")

	_, err := appconfig.Load()
	if err == nil {
		t.Fatal("expected validation error for short account id")
	}
	if !strings.Contains(err.Error(), "AccountID") {
		t.Errorf("error should name AccountID, got: %v", err)
	}
}
