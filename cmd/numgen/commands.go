package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ComedicChimera/olive"
	"github.com/samber/lo"

	"numgen/internal/auxiliary"
	"numgen/internal/job"
	"numgen/internal/logging"
	"numgen/internal/match"
)

var errUnknownRoutine = errors.New("unknown routine")

// execGenCommand runs the gen subcommand and reports the process exit code.
func execGenCommand(result *olive.ArgParseResult, log *logging.Logger) int {
	jobPath, _ := result.PrimaryArg()

	log.BeginPhase("Generating")

	res, err := job.Run(jobPath)
	if res != nil {
		log.Diagnostics(res.Diagnostics, jobPath)
	}

	if err != nil {
		log.EndPhase(false)

		if !errors.Is(err, job.ErrInvalidJob) {
			log.Fatal(err)
		}

		log.Finish()

		return 1
	}

	log.EndPhase(true)

	if result.HasFlag("stdout") {
		fmt.Print(res.Generator.Serialize())
		return 0
	}

	override := ""
	if v, ok := result.Arguments["output"]; ok {
		override = v.(string)
	}

	out := job.OutputPath(jobPath, res.Plan.Output, override)

	log.BeginPhase("Writing")

	if err := res.Generator.WriteFile(out); err != nil {
		log.EndPhase(false)
		log.Fatal(err)
		log.Finish()

		return 1
	}

	log.EndPhase(true)
	log.Info("Output", fmt.Sprintf("%s (%s)", out, strings.Join(res.Generator.Functions(), ", ")))

	return exitCode(log.Finish())
}

// execCheckCommand validates a job and prints its diagnostics.
func execCheckCommand(result *olive.ArgParseResult, log *logging.Logger) int {
	jobPath, _ := result.PrimaryArg()

	log.BeginPhase("Checking")

	f, err := job.Load(jobPath)
	if err != nil {
		log.EndPhase(false)
		log.Fatal(err)
		log.Finish()

		return 1
	}

	plan, diags := job.Compile(f)
	log.EndPhase(!diags.HasErrors())
	log.Diagnostics(diags, jobPath)

	if plan != nil {
		log.Info("Exports", strings.Join(plan.Exports, ", "))
	}

	return exitCode(log.Finish())
}

// execAuxCommand lists every auxiliary routine, or prints the C source of
// the named one together with the routines it needs.
func execAuxCommand(result *olive.ArgParseResult) int {
	name, ok := result.PrimaryArg()
	if !ok || name == "" {
		names := lo.Map(auxiliary.Tags(), func(t auxiliary.Tag, _ int) string {
			return t.Routine()
		})
		logging.PrintInfoMessage("Routines", strings.Join(names, " "))

		return 0
	}

	src, err := routineSource(name)
	if err != nil {
		logging.PrintErrorMessage("Routine Error", err)
		return 1
	}

	fmt.Print(src)

	return 0
}

// routineSource renders a routine, its dependencies and the headers they
// include.
func routineSource(name string) (string, error) {
	names := lo.Map(auxiliary.Tags(), func(t auxiliary.Tag, _ int) string {
		return t.String()
	})

	found, ok := match.Find(strings.TrimPrefix(name, auxiliary.Prefix), names)
	if !ok {
		if s, near := match.Closest(name, names, 3); near {
			return "", fmt.Errorf("%w %q (did you mean %q?)", errUnknownRoutine, name, s)
		}

		return "", fmt.Errorf("%w %q", errUnknownRoutine, name)
	}

	tag, _ := auxiliary.Parse(found)

	var headers, body strings.Builder

	lib := auxiliary.NewLibrary(&body, func(h string) {
		headers.WriteString("#include <" + h + ">\n")
	})
	lib.Ensure(tag)

	if headers.Len() > 0 {
		headers.WriteString("\n")
	}

	return headers.String() + body.String(), nil
}

func exitCode(success bool) int {
	if success {
		return 0
	}

	return 1
}
