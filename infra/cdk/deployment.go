// Package cdk defines the budget maker deployment: the alert topics, the
// scheduled Lambda function that reconciles budgets with Synapse team
// membership, and the IAM permissions the function needs.
package cdk

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsevents"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssns"
	"github.com/aws/jsii-runtime-go"

	"github.com/synapsehq/budgetmaker/bmcdk/bmcdkschedfn"
	"github.com/synapsehq/budgetmaker/bmcdk/bmcdkutil"
)

// Context keys read at synth time. Rules and thresholds are YAML documents,
// passed through to the function verbatim.
const (
	contextKeyBudgetRules = "budgetmaker-rules"
	contextKeyThresholds  = "budgetmaker-thresholds"
	contextKeyEndUserRole = "budgetmaker-end-user-role"
)

// defaultEndUserRole is the Service Catalog end user role whose assumed-role
// sessions the per-user budgets filter on.
const defaultEndUserRole = "ServiceCatalogEndusers"

// NewDeployment adds all budget maker resources to the stack.
func NewDeployment(stack awscdk.Stack) {
	notifyTopic := awssns.NewTopic(stack, jsii.String("BudgetAlerts"), &awssns.TopicProps{
		TopicName:   jsii.String(bmcdkutil.ResourceName(stack, "budget-alerts", bmcdkutil.CasingKebab)),
		DisplayName: jsii.String("Service Catalog budget alerts"),
	})
	reportTopic := awssns.NewTopic(stack, jsii.String("RunReports"), &awssns.TopicProps{
		TopicName:   jsii.String(bmcdkutil.ResourceName(stack, "run-reports", bmcdkutil.CasingKebab)),
		DisplayName: jsii.String("Budget maker run reports"),
	})

	fn := bmcdkschedfn.New(stack, bmcdkschedfn.Props{
		Entry: jsii.String("../../cmd/budgetmaker"),
		// Once a day, after the nightly Service Catalog provisioning window.
		Schedule: awsevents.Schedule_Cron(&awsevents.CronOptions{
			Minute: jsii.String("0"),
			Hour:   jsii.String("6"),
		}),
		Environment: &map[string]*string{
			"AWS_ACCOUNT_ID":         stack.Account(),
			"END_USER_ROLE_NAME":     jsii.String(bmcdkutil.OptionalStringContext(stack, contextKeyEndUserRole, defaultEndUserRole)),
			"NOTIFICATION_TOPIC_ARN": notifyTopic.TopicArn(),
			"REPORT_TOPIC_ARN":       reportTopic.TopicArn(),
			"BUDGET_RULES":           jsii.String(bmcdkutil.StringContext(stack, contextKeyBudgetRules)),
			"THRESHOLDS":             jsii.String(bmcdkutil.StringContext(stack, contextKeyThresholds)),
		},
	})

	// The Budgets API has no resource-level ARNs for these actions.
	fn.Function().AddToRolePolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Actions: jsii.Strings(
			"budgets:ModifyBudget",
			"budgets:ViewBudget",
		),
		Resources: jsii.Strings("*"),
	}))

	reportTopic.GrantPublish(fn.Function())

	// Budget notifications publish to the alert topic from the Budgets
	// service principal, not from the function.
	notifyTopic.AddToResourcePolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Principals: &[]awsiam.IPrincipal{
			awsiam.NewServicePrincipal(jsii.String("budgets.amazonaws.com"), nil),
		},
		Actions:   jsii.Strings("sns:Publish"),
		Resources: &[]*string{notifyTopic.TopicArn()},
	}))

	awscdk.NewCfnOutput(stack, jsii.String("BudgetAlertsTopicArn"), &awscdk.CfnOutputProps{
		Description: jsii.String("SNS topic that receives budget threshold alerts"),
		Value:       notifyTopic.TopicArn(),
	})
}
