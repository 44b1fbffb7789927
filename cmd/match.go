package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tokmatch/tokmatch"
	"github.com/tokmatch/tokmatch/internal"
	"github.com/tokmatch/tokmatch/process"
	"github.com/tokmatch/tokmatch/rule"
	"github.com/tokmatch/tokmatch/scanner"
	"github.com/tokmatch/tokmatch/token"
)

var (
	matchExts       string
	matchJsonOutput bool
	matchOutPath    string
)

var matchCmd = &cobra.Command{
	Use:   "match [paths...]",
	Short: "Report every rule match in the given files",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		rules, err := process.Load(rulesFile)
		if err != nil {
			logger.Fatal("Failed to load rule file", zap.String("rules", rulesFile), zap.Error(err))
		}

		runMatchProcess(ctx, logger, rules, args, matchJsonOutput, matchOutPath)
	},
}

func init() {
	matchCmd.Flags().StringVar(&matchExts, "ext", "", "Comma-separated list of file extensions to scan (default: all files)")
	matchCmd.Flags().BoolVar(&matchJsonOutput, "json", false, "Output matches in JSON format")
	matchCmd.Flags().StringVarP(&matchOutPath, "output", "o", "", "Output path (when using JSON)")
}

// fileMatch is one reported occurrence, flattened for output.
type fileMatch struct {
	Rule     string   `json:"rule"`
	Filename string   `json:"filename"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Values   []string `json:"values"`

	match *rule.Match
}

func runMatchProcess(ctx context.Context, logger *zap.Logger, rules []process.CompiledRule, paths []string, isJson bool, jsonOutput string) {
	files, err := collectFiles(paths, splitExtensions(matchExts))
	if err != nil {
		logger.Error("Error collecting files", zap.Error(err))
		os.Exit(1)
	}

	var all []fileMatch
	for _, file := range files {
		select {
		case <-ctx.Done():
			logger.Error("Timed out", zap.Error(ctx.Err()))
			os.Exit(1)
		default:
		}

		found, err := matchFile(file, rules)
		if err != nil {
			logger.Error("Error processing file", zap.String("file", file), zap.Error(err))
			continue
		}
		all = append(all, found...)
	}

	printMatches(logger, all, isJson, jsonOutput)

	if len(all) > 0 {
		os.Exit(1)
	}
}

func matchFile(filename string, rules []process.CompiledRule) ([]fileMatch, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", filename, err)
	}
	tokens := scanner.Scan(string(data))

	var found []fileMatch
	for _, cr := range rules {
		matches, err := tokmatch.FindAll(cr.Rule, tokens)
		if err != nil {
			return nil, fmt.Errorf("error applying rule %s: %w", cr.Name, err)
		}
		for _, m := range matches {
			fm := fileMatch{
				Rule:     cr.Name,
				Filename: filename,
				Line:     -1,
				Column:   -1,
				Values:   lo.Map(m.Tokens, func(t token.Token, _ int) string { return t.Value() }),
				match:    m,
			}
			if len(m.Tokens) > 0 && m.Tokens[0].Pos().Known() {
				fm.Line = m.Tokens[0].Pos().Line
				fm.Column = m.Tokens[0].Pos().Column
			}
			found = append(found, fm)
		}
	}
	return found, nil
}

func printMatches(logger *zap.Logger, matches []fileMatch, isJson bool, jsonOutput string) {
	matchesByFile := make(map[string][]fileMatch)
	for _, m := range matches {
		matchesByFile[m.Filename] = append(matchesByFile[m.Filename], m)
	}

	sortedFiles := make([]string, 0, len(matchesByFile))
	for filename := range matchesByFile {
		sortedFiles = append(sortedFiles, filename)
	}
	sort.Strings(sortedFiles)

	if !isJson {
		// text output
		for _, filename := range sortedFiles {
			for _, m := range matchesByFile[filename] {
				fmt.Println(internal.FormatMatch(filename, m.Rule, m.match))
			}
		}
		return
	}

	// JSON output
	d, err := json.Marshal(matchesByFile)
	if err != nil {
		logger.Error("Error marshalling matches to JSON", zap.Error(err))
		return
	}
	if jsonOutput == "" {
		fmt.Println(string(d))
		return
	}
	f, err := os.Create(jsonOutput)
	if err != nil {
		logger.Error("Error creating JSON output file", zap.Error(err))
		return
	}
	defer f.Close()
	if _, err := f.Write(d); err != nil {
		logger.Error("Error writing JSON output file", zap.Error(err))
	}
}
