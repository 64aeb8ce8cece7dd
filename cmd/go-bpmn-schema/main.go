/*
go-bpmn-schema is a CLI for validating, converting and managing BPMN diagrams.

Usage:

	go-bpmn-schema [flags]
	go-bpmn-schema [command]

Available Commands:

	completion  Generate the autocompletion script for the specified shell
	convert     Convert a diagram file to JSON or YAML
	diagram     Manage and query stored diagrams
	help        Help about any command
	sample      Create a sample diagram
	stats       Count the elements of a diagram file or a stored diagram
	validate    Validate a diagram file or a stored diagram
	version     Show version

Flags:

	    --debug              Log HTTP requests and responses
	-h, --help               help for go-bpmn-schema
	    --timeout duration   Time limit for requests made by the HTTP client (default 40s)
	    --url string         HTTP server URL

Use "go-bpmn-schema [command] --help" for more information about a command.
*/
package main

import (
	"os"

	"github.com/gclaussn/go-bpmn-schema/cli"
)

var (
	version = "unknown-version"
)

func main() {
	cli := cli.New(version)
	os.Exit(cli.Execute())
}
