package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/otterlite/cdclsat/internal/cdcl"
	"github.com/otterlite/cdclsat/internal/dimacs"
	"github.com/otterlite/cdclsat/internal/parsers"
	"github.com/otterlite/cdclsat/internal/proof"
)

var flagCPUProfile = flag.Bool(
	"cpuprof",
	false,
	"save pprof CPU profile in cpuprof",
)

var flagMemProfile = flag.Bool(
	"memprof",
	false,
	"save pprof memory profile in memprof",
)

var flagStopping = flag.String(
	"stopping",
	"first-uip",
	"conflict analysis stopping criterion: first-uip or none",
)

var flagVSIDS = flag.String(
	"vsids",
	"minisat",
	"VSIDS bump variant: minisat or chaff",
)

var flagMinimization = flag.String(
	"minimization",
	"recursive",
	"learned-clause minimization: none, local, or recursive",
)

var flagLubyU = flag.Int(
	"luby-u",
	128,
	"multiplier applied to the Luby sequence when scheduling restarts",
)

var flagPolarityLean = flag.Float64(
	"polarity-lean",
	0.0,
	"probability in [0,1] of leaning positive when phase saving gives no guidance",
)

var flagRandomBias = flag.Float64(
	"random-bias",
	0.0,
	"probability in [0,1] of making an entirely random decision",
)

var flagRestarts = flag.Bool("restarts", true, "enable Luby-scheduled restarts")
var flagReductions = flag.Bool("reductions", true, "enable LBD-scored clause database reduction")
var flagPhaseSaving = flag.Bool("phase-saving", true, "enable phase saving")
var flagSubsumption = flag.Bool("subsumption", true, "enable on-the-fly self-subsumption")
var flagPreprocessing = flag.Bool("preprocessing", false, "enable pure-literal preprocessing")

var flagTimeout = flag.Float64(
	"time-limit",
	-1,
	"time limit in seconds; <0 disables the limit",
)

var flagProofOut = flag.String(
	"proof",
	"",
	"FRAT proof output path; empty disables proof emission",
)

var flagStrict = flag.Bool(
	"strict",
	false,
	"use the internal line-numbered DIMACS reader instead of the fast external one",
)

var flagPrintModel = flag.Bool("print-model", false, "print the satisfying assignment, if SAT")
var flagPrintCore = flag.Bool("print-core", false, "print an unsatisfiable core, if UNSAT")
var flagVerbosity = flag.Int("verbosity", 1, "0 silences comment lines, 1 prints a summary with timing, 2 adds restart and learnt-clause counts")

func optionsFromFlags() (cdcl.Options, error) {
	opts := cdcl.DefaultOptions

	switch *flagStopping {
	case "first-uip":
		opts.StoppingCriteria = cdcl.FirstUIP
	case "none":
		opts.StoppingCriteria = cdcl.NoStoppingCriteria
	default:
		return opts, fmt.Errorf("unknown -stopping %q", *flagStopping)
	}

	switch *flagVSIDS {
	case "minisat":
		opts.VSIDSVariant = cdcl.VSIDSMiniSAT
	case "chaff":
		opts.VSIDSVariant = cdcl.VSIDSChaff
	default:
		return opts, fmt.Errorf("unknown -vsids %q", *flagVSIDS)
	}

	switch *flagMinimization {
	case "none":
		opts.Minimization = cdcl.MinimizationNone
	case "local":
		opts.Minimization = cdcl.MinimizationLocal
	case "recursive":
		opts.Minimization = cdcl.MinimizationRecursive
	default:
		return opts, fmt.Errorf("unknown -minimization %q", *flagMinimization)
	}

	opts.Scheduler.LubyU = *flagLubyU
	opts.PolarityLean = *flagPolarityLean
	opts.RandomDecisionBias = *flagRandomBias
	opts.Switch.Restart = *flagRestarts
	opts.Switch.PhaseSaving = *flagPhaseSaving
	opts.Switch.Subsumption = *flagSubsumption
	opts.Switch.Preprocessing = *flagPreprocessing
	if !*flagReductions {
		opts.Scheduler.InitialReductionThreshold = 1 << 62
	}

	if *flagTimeout >= 0 {
		opts.Timeout = time.Duration(*flagTimeout * float64(time.Second))
	} else {
		opts.Timeout = -1
	}

	return opts, nil
}

// exitCode maps a solve status to the SAT-competition convention:
// 10 SAT, 20 UNSAT, 30 UNKNOWN.
func exitCode(status cdcl.Status) int {
	switch status {
	case cdcl.StatusSatisfiable:
		return 10
	case cdcl.StatusUnsatisfiable:
		return 20
	default:
		return 30
	}
}

func printResult(ctx *cdcl.Context, status cdcl.Status) {
	fmt.Printf("s %s\n", status.String())
	if status == cdcl.StatusSatisfiable && *flagPrintModel {
		model := ctx.Model()
		fmt.Print("v")
		for i, v := range model {
			if v {
				fmt.Printf(" %d", i+1)
			} else {
				fmt.Printf(" -%d", i+1)
			}
		}
		fmt.Println(" 0")
	}
	if status == cdcl.StatusUnsatisfiable && *flagPrintCore {
		for _, key := range ctx.UnsatCore() {
			lits, ok := ctx.ClauseLiterals(key)
			if !ok && key.IsUnit() {
				// A unit that contradicted an already-fixed value is never
				// stored, but its key still names its literal.
				lits, ok = []cdcl.Literal{key.UnitLiteral()}, true
			}
			if !ok {
				continue
			}
			for _, l := range lits {
				fmt.Printf("%d ", l.Signed())
			}
			fmt.Println("0")
		}
	}
}

// solveInstance loads and solves a single DIMACS file, reporting the SAT
// competition c/s/v protocol on stdout.
func solveInstance(path string) (cdcl.Status, error) {
	opts, err := optionsFromFlags()
	if err != nil {
		return cdcl.StatusUnknown, err
	}
	ctx := cdcl.NewContext(opts)

	if *flagProofOut != "" {
		f, err := os.Create(*flagProofOut)
		if err != nil {
			return cdcl.StatusUnknown, fmt.Errorf("could not open proof output: %w", err)
		}
		defer f.Close()
		ctx.SetDispatcher(proof.NewTranscriber(f))
	}

	gzipped := len(path) > 3 && path[len(path)-3:] == ".gz"
	if *flagStrict {
		// The in-repo reader: slower, but every malformed-line/missing-
		// terminator case carries a line number. The problem header stays
		// optional here.
		if _, err := dimacs.LoadDIMACS(path, gzipped, ctx); err != nil {
			return cdcl.StatusUnknown, fmt.Errorf("could not parse instance %q: %w", path, err)
		}
	} else {
		// The external reader: the fast path for ordinary solving.
		if err := parsers.LoadDIMACS(path, gzipped, ctx); err != nil {
			return cdcl.StatusUnknown, fmt.Errorf("could not parse instance %q: %w", path, err)
		}
	}
	nAtoms := ctx.NumAtoms()

	if *flagVerbosity > 0 {
		fmt.Printf("c instance:   %s\n", path)
		fmt.Printf("c atoms:      %d\n", nAtoms)
	}

	if status := ctx.Status(); status == cdcl.StatusUnsatisfiable {
		// A contradiction was already derived while loading (e.g. two
		// complementary original units): no search needed.
		if *flagVerbosity > 0 {
			fmt.Println("c status derived at load time")
		}
		printResult(ctx, status)
		return status, nil
	}

	start := time.Now()
	status := ctx.Solve(nil)
	elapsed := time.Since(start)

	if *flagVerbosity > 0 {
		fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
		fmt.Printf("c conflicts:  %d\n", ctx.TotalConflicts)
		fmt.Printf("c decisions:  %d\n", ctx.TotalDecisions)
	}
	if *flagVerbosity > 1 {
		fmt.Printf("c restarts:   %d\n", ctx.TotalRestarts)
		fmt.Printf("c learnts:    %d\n", ctx.NumLearnts())
	}

	printResult(ctx, status)
	return status, nil
}

func run() int {
	flag.Parse()
	if flag.NArg() == 0 {
		log.Print("missing instance file")
		return 1
	}

	if *flagCPUProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			log.Print(err)
			return 1
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	code := 30
	for _, path := range flag.Args() {
		status, err := solveInstance(path)
		if err != nil {
			log.Print(err)
			return 1
		}
		code = exitCode(status)
	}

	if *flagMemProfile {
		f, err := os.Create("memprof")
		if err != nil {
			log.Print(err)
			return 1
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}

	return code
}

func main() {
	os.Exit(run())
}
