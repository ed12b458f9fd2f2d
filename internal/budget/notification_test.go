package budget_test

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/budgets/types"
	"go.uber.org/zap"

	"github.com/synapsehq/budgetmaker/internal/appconfig"
	"github.com/synapsehq/budgetmaker/internal/budget"
)

func TestNotificationDefinitions_CountAndOrder(t *testing.T) {
	svc := newTestService(&fakeBudgetsAPI{})

	defs, err := svc.NotificationDefinitions("3388489", "12345")
	if err != nil {
		t.Fatalf("NotificationDefinitions failed: %v", err)
	}
	if len(defs) != 6 {
		t.Fatalf("expected 6 definitions, got %d", len(defs))
	}

	wantThresholds := []float64{25.0, 50.0, 80.0, 90.0, 100.0, 110.0}
	for i, def := range defs {
		n := def.Notification
		if n.Threshold != wantThresholds[i] {
			t.Errorf("def[%d].Threshold = %v, want %v", i, n.Threshold, wantThresholds[i])
		}
		if n.NotificationType != types.NotificationTypeActual {
			t.Errorf("def[%d].NotificationType = %q, want ACTUAL", i, n.NotificationType)
		}
		if n.ComparisonOperator != types.ComparisonOperatorGreaterThan {
			t.Errorf("def[%d].ComparisonOperator = %q, want GREATER_THAN", i, n.ComparisonOperator)
		}
		if n.ThresholdType != types.ThresholdTypePercentage {
			t.Errorf("def[%d].ThresholdType = %q, want PERCENTAGE", i, n.ThresholdType)
		}
		if n.NotificationState != types.NotificationStateAlarm {
			t.Errorf("def[%d].NotificationState = %q, want ALARM", i, n.NotificationState)
		}
		// With no community manager emails configured, every tier has exactly
		// the shared topic subscriber.
		if len(def.Subscribers) != 1 {
			t.Errorf("def[%d] has %d subscribers, want 1", i, len(def.Subscribers))
		}
	}
}

func TestNotificationDefinitions_UserOnlySubscriber(t *testing.T) {
	svc := newTestService(&fakeBudgetsAPI{})

	defs, err := svc.NotificationDefinitions("3388489", "12345")
	if err != nil {
		t.Fatalf("NotificationDefinitions failed: %v", err)
	}

	sub := defs[0].Subscribers[0]
	if sub.SubscriptionType != types.SubscriptionTypeSns {
		t.Errorf("SubscriptionType = %q, want SNS", sub.SubscriptionType)
	}
	if aws.ToString(sub.Address) != testTopicARN {
		t.Errorf("Address = %q, want %q", aws.ToString(sub.Address), testTopicARN)
	}
}

func TestNotificationDefinitions_AdminEmailBeforeTopic(t *testing.T) {
	cfg := testConfig()
	cfg.Rules.Teams["12345"] = appconfig.TeamRule{
		Amount:                 "100",
		Period:                 "ANNUALLY",
		CommunityManagerEmails: []string{"manager@example.org"},
	}
	svc := budget.NewService(&fakeBudgetsAPI{}, cfg, zap.NewNop())

	defs, err := svc.NotificationDefinitions("3388489", "12345")
	if err != nil {
		t.Fatalf("NotificationDefinitions failed: %v", err)
	}

	// User-only tier is unaffected by admin emails.
	if len(defs[0].Subscribers) != 1 {
		t.Errorf("user-only tier has %d subscribers, want 1", len(defs[0].Subscribers))
	}

	// Admin tier: email subscriber inserted before the topic subscriber.
	admin := defs[3].Subscribers
	if len(admin) != 2 {
		t.Fatalf("admin tier has %d subscribers, want 2", len(admin))
	}
	if admin[0].SubscriptionType != types.SubscriptionTypeEmail || aws.ToString(admin[0].Address) != "manager@example.org" {
		t.Errorf("first subscriber = %+v, want EMAIL manager@example.org", admin[0])
	}
	if admin[1].SubscriptionType != types.SubscriptionTypeSns || aws.ToString(admin[1].Address) != testTopicARN {
		t.Errorf("second subscriber = %+v, want SNS topic", admin[1])
	}
}

func TestNotificationDefinitions_UnknownTeam(t *testing.T) {
	svc := newTestService(&fakeBudgetsAPI{})

	_, err := svc.NotificationDefinitions("3388489", "foo")
	if err == nil {
		t.Fatal("expected error for unknown team")
	}
	if want := "No budget rules available for team foo"; err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}
