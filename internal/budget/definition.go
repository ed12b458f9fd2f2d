package budget

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/budgets/types"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// provisioningPrincipalTagKey is the tag the Service Catalog stamps on every
// resource a user provisions. Filtering spend on it binds the budget to that
// user's assumed role.
const provisioningPrincipalTagKey = "aws:servicecatalog:provisioningPrincipalArn"

// Definition builds the budget request fragment for one user based on their
// team's rules. An unknown team is a configuration error, never a silent skip.
func (s *Service) Definition(userID, team string) (types.Budget, error) {
	rule, ok := s.cfg.Rules.Teams[team]
	if !ok {
		return types.Budget{}, errors.Newf("No budget rules available for team %s", team)
	}
	s.log.Debug("building budget definition",
		zap.String("synapse_id", userID),
		zap.String("team", team),
	)

	roleSessionARN := fmt.Sprintf("arn:aws:sts::%s:assumed-role/%s/%s",
		s.cfg.AccountID, s.cfg.EndUserRoleName, userID)

	return types.Budget{
		BudgetName: aws.String(Name(userID)),
		BudgetLimit: &types.Spend{
			Amount: aws.String(rule.Amount),
			Unit:   aws.String("USD"),
		},
		CostFilters: map[string][]string{
			"TagKeyValue": {provisioningPrincipalTagKey + "$" + roleSessionARN},
		},
		CostTypes: &types.CostTypes{
			IncludeRefund: aws.Bool(false),
			IncludeCredit: aws.Bool(false),
		},
		TimeUnit:   types.TimeUnit(rule.Period),
		BudgetType: types.BudgetTypeCost,
	}, nil
}
