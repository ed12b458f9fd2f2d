package main

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"

	"github.com/synapsehq/budgetmaker/bmcdk/bmcdkutil"
	"github.com/synapsehq/budgetmaker/infra/cdk"
)

func main() {
	defer jsii.Close()
	app := awscdk.NewApp(nil)

	stackName := bmcdkutil.FormatName(bmcdkutil.Qualifier(app), "budgetmaker", bmcdkutil.CasingKebab)
	stack := awscdk.NewStack(app, jsii.String(stackName), &awscdk.StackProps{
		Description: jsii.String("Per-user AWS budgets for Service Catalog users"),
	})

	cdk.NewDeployment(stack)

	app.Synth(nil)
}
