// Command bmctl is the operator CLI for the Service Catalog budget maker.
// It runs the same sync the Lambda performs, against the credentials and
// environment of the local shell, which is useful for verification after a
// rule change and for one-off runs outside the schedule.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

var version = "dev"

type App struct {
	Version kong.VersionFlag `help:"Show version."`

	Run  RunCmd  `cmd:"" help:"Run one budget sync against AWS."`
	Plan PlanCmd `cmd:"" help:"Show which budgets would be created and removed, without changing anything."`
}

func main() {
	var app App
	ctx := kong.Parse(&app,
		kong.Name("bmctl"),
		kong.Description("Operator CLI for the Service Catalog budget maker."),
		kong.Vars{"version": version},
	)
	if err := ctx.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "bmctl:", err)
		os.Exit(1)
	}
}
