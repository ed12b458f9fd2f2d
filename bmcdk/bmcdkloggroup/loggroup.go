// Package bmcdkloggroup provides the CloudWatch Log Group construct used by
// the budget maker stacks. Each log group exports its name as a stack output
// so runs can be inspected with AWS CLI queries.
package bmcdkloggroup

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslogs"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// LogGroup provides access to a CloudWatch Log Group with standardized configuration.
type LogGroup interface {
	// LogGroup returns the underlying CDK log group.
	LogGroup() awslogs.ILogGroup
}

// Props configures the LogGroup construct.
type Props struct {
	// Purpose describes what this log group is for (e.g., "budget sync runs").
	// Used in the CfnOutput description.
	// Required.
	Purpose *string
	// Retention overrides the default ONE_MONTH retention. The budget maker
	// runs on a schedule, so a month of runs is the useful audit window.
	// Optional.
	Retention awslogs.RetentionDays
}

type logGroup struct {
	lg awslogs.ILogGroup
}

// New creates a LogGroup construct.
//
// The log group defaults to ONE_MONTH retention and is removed with the
// stack. A CfnOutput named "{id}LogGroup" exports the log group name.
func New(scope constructs.Construct, id string, props Props) LogGroup {
	scope = constructs.NewConstruct(scope, jsii.String(id))
	con := &logGroup{}

	retention := props.Retention
	if retention == "" {
		retention = awslogs.RetentionDays_ONE_MONTH
	}

	con.lg = awslogs.NewLogGroup(scope, jsii.String("LogGroup"), &awslogs.LogGroupProps{
		Retention:     retention,
		RemovalPolicy: awscdk.RemovalPolicy_DESTROY,
	})

	awscdk.NewCfnOutput(scope, jsii.String("LogGroupOutput"), &awscdk.CfnOutputProps{
		Key:         jsii.String(id + "LogGroup"),
		Description: jsii.String("CloudWatch Log Group for " + *props.Purpose),
		Value:       con.lg.LogGroupName(),
	})

	return con
}

func (l *logGroup) LogGroup() awslogs.ILogGroup {
	return l.lg
}
