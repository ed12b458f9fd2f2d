package bmcdkutil

import (
	"github.com/aws/aws-cdk-go/awscdklambdagoalpha/v2"
	"github.com/aws/jsii-runtime-go"
)

// ReproducibleGoBundling returns BundlingOptions for byte-identical builds:
// the same source always produces the same binary, so unchanged functions are
// not redeployed.
func ReproducibleGoBundling() *awscdklambdagoalpha.BundlingOptions {
	return &awscdklambdagoalpha.BundlingOptions{
		GoBuildFlags: jsii.Strings(
			"-trimpath",          // removes filesystem paths from binary
			"-ldflags=-buildid=", // clears timestamp-based build ID
			"-buildvcs=false",    // excludes git commit hash
		),
		Environment: &map[string]*string{
			"CGO_ENABLED": jsii.String("0"),
		},
	}
}
