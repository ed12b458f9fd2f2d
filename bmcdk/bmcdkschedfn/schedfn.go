// Package bmcdkschedfn provides a reusable construct for Go Lambda functions
// that run on an EventBridge schedule instead of serving requests.
//
// The construct handles Go bundling with reproducible builds, creates the
// function's log group, and wires an EventBridge rule that invokes the
// function on the given schedule.
package bmcdkschedfn

import (
	"maps"
	"path/filepath"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsevents"
	"github.com/aws/aws-cdk-go/awscdk/v2/awseventstargets"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslogs"
	"github.com/aws/aws-cdk-go/awscdklambdagoalpha/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/cockroachdb/errors"
	"github.com/iancoleman/strcase"

	"github.com/synapsehq/budgetmaker/bmcdk/bmcdkloggroup"
	"github.com/synapsehq/budgetmaker/bmcdk/bmcdkutil"
)

// ScheduledFunction provides access to a scheduled Go Lambda function.
type ScheduledFunction interface {
	// Function returns the underlying Lambda function.
	Function() awscdklambdagoalpha.GoFunction
	// LogGroup returns the CloudWatch Log Group for the function.
	LogGroup() awslogs.ILogGroup
	// Rule returns the EventBridge rule that triggers the function.
	Rule() awsevents.Rule
	// Name returns the construct name derived from the entry path.
	Name() string
}

// Props configures the ScheduledFunction construct.
type Props struct {
	// Entry is the path to the Go command directory.
	// Must end in "cmd/<command>" (e.g., "../../cmd/budgetmaker"); the
	// command is used to name the construct for AWS Console visibility.
	// Required.
	Entry *string
	// Schedule determines when EventBridge invokes the function.
	// Required.
	Schedule awsevents.Schedule
	// Environment variables to pass to the function.
	// SERVICE_NAME and OTEL_EXPORTER are set automatically.
	Environment *map[string]*string
	// Timeout overrides the default of 5 minutes.
	Timeout awscdk.Duration
}

// ParseEntry extracts the command name from an entry path.
// Validates that the path ends in "cmd/<command>".
func ParseEntry(entry string) (command string, err error) {
	parts := strings.Split(filepath.ToSlash(entry), "/")
	if len(parts) >= 2 && parts[len(parts)-2] == "cmd" && parts[len(parts)-1] != "" {
		return parts[len(parts)-1], nil
	}
	return "", errors.Newf("entry must end in cmd/<command>, got %q", entry)
}

type scheduledFunction struct {
	function awscdklambdagoalpha.GoFunction
	logGroup awslogs.ILogGroup
	rule     awsevents.Rule
	name     string
}

// New creates a ScheduledFunction construct.
//
// The function uses arm64 architecture with reproducible Go builds, JSON
// structured logging, and active X-Ray tracing. An EventBridge rule invokes
// it on the configured schedule.
func New(scope constructs.Construct, props Props) ScheduledFunction {
	command, err := ParseEntry(*props.Entry)
	if err != nil {
		panic(err)
	}
	scopeName := strcase.ToCamel(command)
	scope = constructs.NewConstruct(scope, jsii.String(scopeName))
	con := &scheduledFunction{name: scopeName}

	functionName := bmcdkutil.ResourceName(scope, scopeName, bmcdkutil.CasingKebab)

	env := make(map[string]*string)
	if props.Environment != nil {
		maps.Copy(env, *props.Environment)
	}
	env["SERVICE_NAME"] = jsii.String(functionName)
	env["OTEL_EXPORTER"] = jsii.String("xrayudp")

	timeout := props.Timeout
	if timeout == nil {
		timeout = awscdk.Duration_Minutes(jsii.Number(5))
	}

	con.logGroup = bmcdkloggroup.New(scope, scopeName+"Logs", bmcdkloggroup.Props{
		Purpose: jsii.String("Lambda function " + scopeName),
	}).LogGroup()

	con.function = awscdklambdagoalpha.NewGoFunction(scope, jsii.String("Function"),
		&awscdklambdagoalpha.GoFunctionProps{
			FunctionName:  jsii.String(functionName),
			Entry:         props.Entry,
			Architecture:  awslambda.Architecture_ARM_64(),
			Runtime:       awslambda.Runtime_PROVIDED_AL2023(),
			MemorySize:    jsii.Number(128),
			Timeout:       timeout,
			Environment:   &env,
			Bundling:      bmcdkutil.ReproducibleGoBundling(),
			Tracing:       awslambda.Tracing_ACTIVE,
			LogGroup:      con.logGroup,
			LoggingFormat: awslambda.LoggingFormat_JSON,
		})

	con.rule = awsevents.NewRule(scope, jsii.String("Schedule"), &awsevents.RuleProps{
		RuleName: jsii.String(functionName + "-schedule"),
		Schedule: props.Schedule,
		Targets: &[]awsevents.IRuleTarget{
			awseventstargets.NewLambdaFunction(con.function, nil),
		},
	})

	return con
}

func (s *scheduledFunction) Function() awscdklambdagoalpha.GoFunction {
	return s.function
}

func (s *scheduledFunction) LogGroup() awslogs.ILogGroup {
	return s.logGroup
}

func (s *scheduledFunction) Rule() awsevents.Rule {
	return s.rule
}

func (s *scheduledFunction) Name() string {
	return s.name
}
