// Package main provides the CLI entrypoint for numgen.
//
// numgen reads a job file describing sparsity patterns and numeric kernels and
// emits one self-contained C source file implementing them:
//   - gen    validates the job and writes the C file (-o=out.c overrides
//     the job's output)
//   - check  validates the job and prints its diagnostics
//   - aux    lists the auxiliary C routines or prints one of them
//   - version
package main

import (
	"os"

	"github.com/ComedicChimera/olive"

	"numgen/internal/logging"
)

// Version is the numgen release printed by the version command.
const Version = "0.3.0"

func main() {
	os.Exit(execute(os.Args))
}

func execute(args []string) int {
	cli := olive.NewCLI("numgen", "numgen generates C source for sparse numeric kernels", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the log level", false, logging.LogLevels)
	logLvlArg.SetDefaultValue("verbose")

	genCmd := cli.AddSubcommand("gen", "generate the C file for a job", true)
	genCmd.AddPrimaryArg("job-path", "the path to the job file (.yaml or .toml)", true)
	genCmd.AddStringArg("output", "o", "the output file, overriding the job's output", false)
	genCmd.AddFlag("stdout", "s", "print the generated code instead of writing a file")

	checkCmd := cli.AddSubcommand("check", "validate a job without generating code", true)
	checkCmd.AddPrimaryArg("job-path", "the path to the job file (.yaml or .toml)", true)

	auxCmd := cli.AddSubcommand("aux", "list auxiliary routines or print one", true)
	auxCmd.AddPrimaryArg("routine", "the routine to print, e.g. copy_n", false)

	cli.AddSubcommand("version", "print the numgen version", false)

	result, err := olive.ParseArgs(cli, args)
	if err != nil {
		logging.PrintErrorMessage("CLI Usage Error", err)
		return 2
	}

	logLevel, err := logging.ParseLogLevel(result.Arguments["loglevel"].(string))
	if err != nil {
		logging.PrintErrorMessage("CLI Usage Error", err)
		return 2
	}

	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "gen":
		return execGenCommand(subResult, logging.NewLogger(logLevel))
	case "check":
		return execCheckCommand(subResult, logging.NewLogger(logLevel))
	case "aux":
		return execAuxCommand(subResult)
	case "version":
		logging.PrintInfoMessage("numgen Version", Version)
	}

	return 0
}
