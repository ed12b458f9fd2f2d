package bmcdkutil

import (
	"fmt"

	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// StringContext retrieves a required string value from CDK context, panicking
// when the key is missing or empty. Deploys fail fast on incomplete context
// instead of synthesizing a broken template.
func StringContext(scope constructs.Construct, key string) string {
	val, ok := scope.Node().TryGetContext(jsii.String(key)).(string)
	if !ok || val == "" {
		panic(fmt.Sprintf("CDK context key %q is not set", key))
	}
	return val
}

// OptionalStringContext retrieves a string value from CDK context, returning
// fallback when the key is absent.
func OptionalStringContext(scope constructs.Construct, key, fallback string) string {
	val, ok := scope.Node().TryGetContext(jsii.String(key)).(string)
	if !ok || val == "" {
		return fallback
	}
	return val
}
