package budget

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/budgets/types"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// NotificationDefinitions builds the notification set for one user's budget:
// one definition per configured threshold, the user-only tier first, then the
// admin-escalation tier, each in configured order.
func (s *Service) NotificationDefinitions(userID, team string) ([]types.NotificationWithSubscribers, error) {
	rule, ok := s.cfg.Rules.Teams[team]
	if !ok {
		return nil, errors.Newf("No budget rules available for team %s", team)
	}
	s.log.Debug("building notification definitions",
		zap.String("synapse_id", userID),
		zap.String("team", team),
	)

	th := s.cfg.Thresholds
	defs := make([]types.NotificationWithSubscribers, 0, len(th.NotifyUserOnly)+len(th.NotifyAdminsToo))
	for _, threshold := range th.NotifyUserOnly {
		defs = append(defs, s.notificationDefinition(threshold, nil))
	}
	for _, threshold := range th.NotifyAdminsToo {
		defs = append(defs, s.notificationDefinition(threshold, rule.CommunityManagerEmails))
	}
	return defs, nil
}

// notificationDefinition builds a single threshold alert. Community manager
// emails are subscribed directly; the user alert goes through the shared SNS
// topic because Synapse addresses only accept mail relayed by Synapse.
func (s *Service) notificationDefinition(threshold float64, adminEmails []string) types.NotificationWithSubscribers {
	subscribers := make([]types.Subscriber, 0, len(adminEmails)+1)
	for _, address := range adminEmails {
		subscribers = append(subscribers, types.Subscriber{
			SubscriptionType: types.SubscriptionTypeEmail,
			Address:          aws.String(address),
		})
	}
	subscribers = append(subscribers, types.Subscriber{
		SubscriptionType: types.SubscriptionTypeSns,
		Address:          aws.String(s.cfg.NotificationTopicARN),
	})

	return types.NotificationWithSubscribers{
		Notification: &types.Notification{
			NotificationType:   types.NotificationTypeActual,
			ComparisonOperator: types.ComparisonOperatorGreaterThan,
			Threshold:          threshold,
			ThresholdType:      types.ThresholdTypePercentage,
			NotificationState:  types.NotificationStateAlarm,
		},
		Subscribers: subscribers,
	}
}
