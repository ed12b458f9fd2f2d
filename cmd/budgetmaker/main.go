package main

import (
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/budgets"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/synapsehq/budgetmaker/bmlambda"
	"github.com/synapsehq/budgetmaker/internal/appconfig"
	budgetsvc "github.com/synapsehq/budgetmaker/internal/budget"
	"github.com/synapsehq/budgetmaker/internal/handler"
	"github.com/synapsehq/budgetmaker/internal/synapse"
)

func main() {
	bmlambda.NewApp[bmlambda.BaseEnvironment](
		fx.Provide(appconfig.Load),
		bmlambda.WithAWSClient(func(cfg aws.Config) *budgets.Client {
			return budgets.NewFromConfig(cfg)
		}),
		bmlambda.WithAWSClient(func(cfg aws.Config) *sns.Client {
			return sns.NewFromConfig(cfg)
		}),
		fx.Provide(
			func(c *budgets.Client) budgetsvc.BudgetsAPI { return c },
			func(c *sns.Client) handler.ReportPublisher { return c },
			budgetsvc.NewService,
			func(svc *budgetsvc.Service) handler.Provisioner { return svc },
			func(cfg appconfig.Config, httpc *http.Client, log *zap.Logger) *synapse.Client {
				return synapse.NewClient(cfg.SynapseBaseURL, httpc, log)
			},
			func(c *synapse.Client) handler.MembershipLister { return c },
			handler.New,
		),
		bmlambda.Handle(func(h *handler.Handler) any { return h.Handle }),
	).Run()
}
