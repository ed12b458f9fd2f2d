// Package bmcdkutil provides small shared helpers for the budget maker's CDK
// stacks: context reading, resource naming, and reproducible Go bundling.
package bmcdkutil

import (
	"fmt"

	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/iancoleman/strcase"
)

// Casing specifies how to format a resource identifier string.
type Casing int

const (
	// CasingCamel formats as CamelCase (e.g., "BudgetmakerAlerts").
	CasingCamel Casing = iota
	// CasingLowerCamel formats as lowerCamelCase (e.g., "budgetmakerAlerts").
	CasingLowerCamel
	// CasingSnake formats as snake_case (e.g., "budgetmaker_alerts").
	CasingSnake
	// CasingScreamingSnake formats as SCREAMING_SNAKE_CASE (e.g., "BUDGETMAKER_ALERTS").
	CasingScreamingSnake
	// CasingKebab formats as kebab-case (e.g., "budgetmaker-alerts").
	CasingKebab
)

// contextKeyQualifier is the CDK context key carrying the resource qualifier.
const contextKeyQualifier = "budgetmaker-qualifier"

// Qualifier retrieves the resource qualifier from CDK context. The qualifier
// must be at most 10 characters per AWS CDK limits.
func Qualifier(scope constructs.Construct) string {
	val, ok := scope.Node().TryGetContext(jsii.String(contextKeyQualifier)).(string)
	if !ok || val == "" {
		panic(fmt.Sprintf("CDK context key %q is not set", contextKeyQualifier))
	}
	if len(val) > 10 {
		panic(fmt.Sprintf("CDK qualifier too long (>10): %q", val))
	}
	return val
}

// ResourceName generates a resource identifier for the construct's stack,
// formatted as "{qualifier}-{label}" in the requested casing.
func ResourceName(scope constructs.Construct, label string, casing Casing) string {
	return FormatName(Qualifier(scope), label, casing)
}

// FormatName joins qualifier and label and applies the casing. Split out of
// ResourceName so it can be exercised without a construct tree.
func FormatName(qualifier, label string, casing Casing) string {
	base := qualifier + "-" + label
	switch casing {
	case CasingCamel:
		return strcase.ToCamel(base)
	case CasingLowerCamel:
		return strcase.ToLowerCamel(base)
	case CasingSnake:
		return strcase.ToSnake(base)
	case CasingScreamingSnake:
		return strcase.ToScreamingSnake(base)
	case CasingKebab:
		return strcase.ToKebab(base)
	default:
		return strcase.ToCamel(base)
	}
}
