// Command ccreplay drives a recorded TWS solution stream against a CCL
// level set and reports whether each attempted solution still reaches
// the exit in the recorded tick count.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"ccengine/pkg/actor"
	"ccengine/pkg/ccl"
	"ccengine/pkg/engine"
	"ccengine/pkg/export"
	"ccengine/pkg/level"
	"ccengine/pkg/prng"
	"ccengine/pkg/tws"
)

const version = "1.0.0"

var (
	cclPath     = flag.String("ccl", "", "Path to the CCL level set (required)")
	twsPath     = flag.String("tws", "", "Path to the TWS solution file (required)")
	levelFlag   = flag.Uint("level", 0, "Replay only this level number (0 = replay every attempted solution)")
	configPath  = flag.String("config", "", "Path to a YAML config file (ruleset, pedantic_mode, overrides)")
	rulesetFlag = flag.String("ruleset", "", "Override the ruleset recorded in the TWS file (and in -config): ms or lynx")
	exportFmt   = flag.String("export", "none", "Export format for the final tick: none, json, svg, or tmj")
	outputDir   = flag.String("output", ".", "Output directory for exported files")
	verbose     = flag.Bool("verbose", false, "Enable verbose per-tick output")
	versionF    = flag.Bool("version", false, "Print version and exit")
	help        = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("ccreplay version %s\n", version)
		os.Exit(0)
	}
	if *help {
		printHelp()
		os.Exit(0)
	}
	if *cclPath == "" || *twsPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -ccl and -tws flags are required")
		printUsage()
		os.Exit(1)
	}

	validExports := map[string]bool{"none": true, "json": true, "svg": true, "tmj": true}
	if !validExports[*exportFmt] {
		fmt.Fprintf(os.Stderr, "Error: invalid -export value %q, must be one of: none, json, svg, tmj\n", *exportFmt)
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	levels, err := loadLevels(*cclPath)
	if err != nil {
		return fmt.Errorf("failed to load levels: %w", err)
	}

	set, err := loadSolutions(*twsPath)
	if err != nil {
		return fmt.Errorf("failed to load solutions: %w", err)
	}

	cfg := level.DefaultConfig()
	if *configPath != "" {
		cfg, err = level.LoadConfig(*configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	} else {
		cfg.Ruleset = set.Ruleset.String()
	}
	if *rulesetFlag != "" {
		cfg.Ruleset = *rulesetFlag
	}

	byLevel := make(map[uint16]*level.LevelMetadata, len(levels))
	for _, m := range levels {
		byLevel[m.LevelNumber] = m
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	passed, failed := 0, 0
	for _, sol := range set.Solutions {
		if !sol.Attempted {
			continue
		}
		if *levelFlag != 0 && uint(sol.LevelNumber) != *levelFlag {
			continue
		}

		meta, ok := byLevel[sol.LevelNumber]
		if !ok {
			fmt.Fprintf(os.Stderr, "level %d: no matching level in %s, skipping\n", sol.LevelNumber, *cclPath)
			continue
		}

		won, err := replayOne(meta, sol, cfg)
		if err != nil {
			fmt.Printf("level %3d: ERROR %v\n", sol.LevelNumber, err)
			failed++
			continue
		}
		if won {
			fmt.Printf("level %3d: PASSED (%d ticks)\n", sol.LevelNumber, sol.NumTicks)
			passed++
		} else {
			fmt.Printf("level %3d: FAILED (did not win within %d ticks)\n", sol.LevelNumber, sol.NumTicks)
			failed++
		}
	}

	fmt.Printf("\n%d passed, %d failed\n", passed, failed)
	if failed > 0 {
		return fmt.Errorf("%d solution(s) failed to replay", failed)
	}
	return nil
}

func loadLevels(path string) ([]*level.LevelMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ccl.Parse(data)
}

func loadSolutions(path string) (*tws.Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return tws.Parse(data)
}

// replayOne drives lvl through sol's recorded input stream and returns
// whether it reaches WinWon on or before the recorded tick count.
func replayOne(meta *level.LevelMetadata, sol tws.Solution, cfg level.Config) (bool, error) {
	lvl, err := engine.MakeLevel(meta, cfg)
	if err != nil {
		return false, fmt.Errorf("make level: %w", err)
	}
	lvl.PRNG = prng.NewSeeded(uint64(sol.PRNGSeed))

	for i, dir := range sol.Inputs {
		if lvl.Win() != level.WinPlaying {
			break
		}
		engine.SetInput(lvl, level.GameInput(dir))
		if err := engine.Tick(lvl); err != nil {
			return false, fmt.Errorf("tick %d: %w", i, err)
		}
		if *verbose {
			fmt.Printf("  tick %d: chip at %v, win=%v\n", lvl.CurrentTick, engine.ActorAt(lvl, actor.ChipIndex).Pos, lvl.Win())
		}
	}

	if *exportFmt != "none" {
		if err := exportFinalTick(lvl, meta.LevelNumber); err != nil {
			return false, fmt.Errorf("export: %w", err)
		}
	}

	return lvl.Win() == level.WinWon, nil
}

func exportFinalTick(lvl *level.Level, levelNumber uint16) error {
	base := filepath.Join(*outputDir, fmt.Sprintf("level_%d", levelNumber))
	switch *exportFmt {
	case "json":
		return export.SaveJSONToFile(lvl, base+".json")
	case "svg":
		opts := export.DefaultSVGOptions()
		opts.Title = fmt.Sprintf("Level %d", levelNumber)
		return export.SaveSVGToFile(lvl, base+".svg", opts)
	case "tmj":
		return export.SaveLevelToTMJFile(lvl, base+".tmj", true)
	}
	return nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "\nUsage: ccreplay -ccl <levels.ccl> -tws <solutions.tws> [options]")
	fmt.Fprintln(os.Stderr, "\nRun 'ccreplay -help' for detailed help")
}

func printHelp() {
	fmt.Printf("ccreplay version %s\n\n", version)
	fmt.Println("Replays recorded TWS solutions against a CCL level set and reports")
	fmt.Println("whether each solution still wins within its recorded tick count.")
	fmt.Println("\nUsage:")
	fmt.Println("  ccreplay -ccl <levels.ccl> -tws <solutions.tws> [options]")
	fmt.Println("\nRequired Flags:")
	fmt.Println("  -ccl string")
	fmt.Println("        Path to the CCL level set")
	fmt.Println("  -tws string")
	fmt.Println("        Path to the TWS solution file")
	fmt.Println("\nOptional Flags:")
	fmt.Println("  -level uint")
	fmt.Println("        Replay only this level number (default: 0, meaning every attempted solution)")
	fmt.Println("  -config string")
	fmt.Println("        Path to a YAML config file (ruleset, pedantic_mode, overrides)")
	fmt.Println("  -ruleset string")
	fmt.Println("        Override the ruleset recorded in the TWS file (and in -config): ms or lynx")
	fmt.Println("  -export string")
	fmt.Println("        Export format for the final tick: none, json, svg, or tmj (default: none)")
	fmt.Println("  -output string")
	fmt.Println("        Output directory for exported files (default: current directory)")
	fmt.Println("  -verbose")
	fmt.Println("        Enable verbose per-tick output")
	fmt.Println("  -version")
	fmt.Println("        Print version and exit")
	fmt.Println("  -help")
	fmt.Println("        Show this help message")
	fmt.Println("\nExamples:")
	fmt.Println("  # Replay every solution in a TWS file")
	fmt.Println("  ccreplay -ccl CHIPS.DAT -tws CHIPS.TWS")
	fmt.Println("\n  # Replay a single level and dump its final tick as SVG")
	fmt.Println("  ccreplay -ccl CHIPS.DAT -tws CHIPS.TWS -level 5 -export svg -output ./out")
}
