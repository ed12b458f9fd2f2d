// Package appconfig loads and validates the budget maker configuration.
//
// All configuration arrives through environment variables. The budget rules
// and notification thresholds are YAML documents embedded in single variables,
// so the whole configuration surface can be managed as Lambda environment
// without extra parameter-store round trips.
package appconfig

import (
	"fmt"
	"sort"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// TeamRule holds the per-team budget parameters. The rules are configured per
// team but applied per user: every member of a team gets their own budget with
// the team's amount and period.
type TeamRule struct {
	Amount                 string   `yaml:"amount" validate:"required,numeric"`
	Period                 string   `yaml:"period" validate:"required,oneof=DAILY MONTHLY QUARTERLY ANNUALLY"`
	CommunityManagerEmails []string `yaml:"community_manager_emails" validate:"dive,email"`
}

// BudgetRules maps team ids to their budget rules.
type BudgetRules struct {
	Teams map[string]TeamRule `yaml:"teams" validate:"required,min=1,dive"`
}

// TeamIDs returns the configured team ids in sorted order.
func (r BudgetRules) TeamIDs() []string {
	ids := make([]string, 0, len(r.Teams))
	for id := range r.Teams {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Thresholds holds the two notification tiers as percentages of the budget
// limit. Values in NotifyUserOnly alert only the shared topic; values in
// NotifyAdminsToo additionally email the team's community managers.
type Thresholds struct {
	NotifyUserOnly  []float64 `yaml:"notify_user_only" validate:"required,min=1"`
	NotifyAdminsToo []float64 `yaml:"notify_admins_too" validate:"required,min=1"`
}

// Config is the validated, read-only configuration for one run. Load it once
// at startup and pass it by value.
type Config struct {
	AccountID            string `validate:"required,numeric,len=12"`
	EndUserRoleName      string `validate:"required"`
	NotificationTopicARN string `validate:"required,startswith=arn:"`
	ReportTopicARN       string `validate:"omitempty,startswith=arn:"`
	SynapseBaseURL       string `validate:"required,url"`

	Rules      BudgetRules
	Thresholds Thresholds
}

// rawEnv is the environment surface before the YAML documents are expanded.
type rawEnv struct {
	AccountID            string `env:"AWS_ACCOUNT_ID,required"`
	EndUserRoleName      string `env:"END_USER_ROLE_NAME,required"`
	NotificationTopicARN string `env:"NOTIFICATION_TOPIC_ARN,required"`
	ReportTopicARN       string `env:"REPORT_TOPIC_ARN"`
	SynapseBaseURL       string `env:"SYNAPSE_BASE_URL" envDefault:"https://repo-prod.prod.sagebase.org/repo/v1"`
	BudgetRules          string `env:"BUDGET_RULES,required"`
	Thresholds           string `env:"THRESHOLDS,required"`
}

// Load reads the environment, expands the YAML rule documents, and validates
// the result. Any missing or malformed value fails the load; nothing talks to
// AWS before this succeeds.
func Load() (Config, error) {
	var raw rawEnv
	if err := env.Parse(&raw); err != nil {
		return Config{}, errors.Wrap(err, "parsing environment")
	}

	cfg := Config{
		AccountID:            raw.AccountID,
		EndUserRoleName:      raw.EndUserRoleName,
		NotificationTopicARN: raw.NotificationTopicARN,
		ReportTopicARN:       raw.ReportTopicARN,
		SynapseBaseURL:       raw.SynapseBaseURL,
	}
	if err := yaml.Unmarshal([]byte(raw.BudgetRules), &cfg.Rules); err != nil {
		return Config{}, errors.Wrap(err, "parsing BUDGET_RULES")
	}
	if err := yaml.Unmarshal([]byte(raw.Thresholds), &cfg.Thresholds); err != nil {
		return Config{}, errors.Wrap(err, "parsing THRESHOLDS")
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the struct tags on Config and its nested rule documents.
// Returns a single error listing every failed field.
func Validate(cfg Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(cfg); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			msgs := make([]string, 0, len(validationErrs))
			for _, e := range validationErrs {
				msgs = append(msgs, formatValidationError(e))
			}
			return errors.Errorf("configuration validation errors:\n  - %s", strings.Join(msgs, "\n  - "))
		}
		return errors.Wrap(err, "configuration validation failed")
	}
	return nil
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Namespace())
	case "numeric":
		return fmt.Sprintf("%s must be numeric (got %q)", e.Namespace(), e.Value())
	case "len":
		return fmt.Sprintf("%s must have length %s (got %q)", e.Namespace(), e.Param(), e.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s] (got %q)", e.Namespace(), e.Param(), e.Value())
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", e.Namespace(), e.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address (got %q)", e.Namespace(), e.Value())
	case "url":
		return fmt.Sprintf("%s must be a valid URL (got %q)", e.Namespace(), e.Value())
	case "startswith":
		return fmt.Sprintf("%s must start with %q (got %q)", e.Namespace(), e.Param(), e.Value())
	default:
		return fmt.Sprintf("%s failed validation %q", e.Namespace(), e.Tag())
	}
}
