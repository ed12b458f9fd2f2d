package main

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/budgets"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/synapsehq/budgetmaker/bmlambda"
	"github.com/synapsehq/budgetmaker/internal/appconfig"
	budgetsvc "github.com/synapsehq/budgetmaker/internal/budget"
	"github.com/synapsehq/budgetmaker/internal/handler"
	"github.com/synapsehq/budgetmaker/internal/synapse"
)

// deps bundles everything a command needs for one local run.
type deps struct {
	cfg appconfig.Config
	svc *budgetsvc.Service
	syn *synapse.Client
	sns *sns.Client
	log *zap.Logger
}

func newDeps(ctx context.Context) (*deps, error) {
	cfg, err := appconfig.Load()
	if err != nil {
		return nil, err
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	awsCfg, err := bmlambda.NewAWSConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "loading AWS configuration")
	}
	httpc := &http.Client{Timeout: 30 * time.Second}
	return &deps{
		cfg: cfg,
		svc: budgetsvc.NewService(budgets.NewFromConfig(awsCfg), cfg, log),
		syn: synapse.NewClient(cfg.SynapseBaseURL, httpc, log),
		sns: sns.NewFromConfig(awsCfg),
		log: log,
	}, nil
}

type RunCmd struct{}

func (c *RunCmd) Run() error {
	ctx := context.Background()
	d, err := newDeps(ctx)
	if err != nil {
		return err
	}

	h := handler.New(d.cfg, d.syn, d.svc, d.sns, d.log)
	resp, err := h.Handle(ctx, nil)
	if err != nil {
		return err
	}
	if resp.Error != "" {
		return errors.New(resp.Error)
	}
	fmt.Println(resp.Message)
	return nil
}

type PlanCmd struct{}

func (c *PlanCmd) Run() error {
	ctx := context.Background()
	d, err := newDeps(ctx)
	if err != nil {
		return err
	}

	teamsByUser, err := d.syn.UsersByTeam(ctx, d.cfg.Rules.TeamIDs())
	if err != nil {
		return err
	}
	if report := synapse.DuplicateReport(teamsByUser); report != "" {
		fmt.Println("Duplicate team memberships:")
		fmt.Println(report)
	}

	userIDs := make([]string, 0, len(teamsByUser))
	for id := range teamsByUser {
		userIDs = append(userIDs, id)
	}
	sort.Strings(userIDs)

	missing, stale, err := d.svc.CompareBudgetsAndUsers(ctx, userIDs)
	if err != nil {
		return err
	}

	fmt.Printf("Would create budgets for synapse ids: %s\n", budgetsvc.JoinOrNone(missing))
	fmt.Printf("Would remove budgets for synapse ids: %s\n", budgetsvc.JoinOrNone(stale))
	return nil
}
