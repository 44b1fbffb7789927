package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tokmatch/tokmatch/internal"
	"github.com/tokmatch/tokmatch/process"
	"github.com/tokmatch/tokmatch/scanner"
	"github.com/tokmatch/tokmatch/token"
)

var (
	rewriteExts  string
	writeInPlace bool
	watchMode    bool
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [paths...]",
	Short: "Apply rewrite rules to the given files",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		proc, err := process.LoadProcessor(rulesFile)
		if err != nil {
			logger.Fatal("Failed to load rule file", zap.String("rules", rulesFile), zap.Error(err))
		}

		if watchMode {
			runWatchRewrite(logger, proc, args)
			return
		}

		runRewriteProcess(ctx, logger, proc, args, writeInPlace)
	},
}

func init() {
	rewriteCmd.Flags().StringVar(&rewriteExts, "ext", "", "Comma-separated list of file extensions to process (default: all files)")
	rewriteCmd.Flags().BoolVarP(&writeInPlace, "write", "w", false, "Write results back to the source files instead of stdout")
	rewriteCmd.Flags().BoolVar(&watchMode, "watch", false, "Watch the given paths and re-run the rewrite on changes")
}

func runRewriteProcess(ctx context.Context, logger *zap.Logger, proc *process.Processor, paths []string, write bool) {
	files, err := collectFiles(paths, splitExtensions(rewriteExts))
	if err != nil {
		logger.Error("Error collecting files", zap.Error(err))
		os.Exit(1)
	}

	// single file goes straight to stdout unless -w is set
	if len(files) == 1 && !write {
		res, err := rewriteFile(proc, files[0], false)
		if err != nil {
			logger.Error("Error rewriting file", zap.String("file", files[0]), zap.Error(err))
			os.Exit(1)
		}
		fmt.Print(res.out)
		return
	}

	resultChan := make(chan rewriteResult, len(files))
	errorChan := make(chan error, len(files))

	// limit the number of workers
	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("rewriting"),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	for _, filePath := range files {
		select {
		case <-ctx.Done():
			logger.Error("Timed out", zap.Error(ctx.Err()))
			os.Exit(1)
		default:
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(fp string) {
			defer wg.Done()
			defer func() { <-sem }()

			res, err := rewriteFile(proc, fp, write)
			if err != nil {
				errorChan <- fmt.Errorf("error rewriting %s: %w", fp, err)
			} else {
				resultChan <- res
			}
			bar.Add(1)
		}(filePath)
	}

	wg.Wait()
	close(errorChan)
	close(resultChan)
	fmt.Println()

	// without -w a multi-file run is a dry run: summaries only
	for res := range resultChan {
		if res.out != scanner.Render(res.before) {
			fmt.Println(internal.FormatRewriteSummary(res.filename, res.before, res.after))
		}
	}

	failed := false
	for err := range errorChan {
		logger.Error("Error rewriting file", zap.Error(err))
		failed = true
	}
	if failed {
		os.Exit(1)
	}
}

type rewriteResult struct {
	filename string
	out      string
	before   []token.Token
	after    []token.Token
}

// rewriteFile runs the processor over one file. With write set the result
// replaces the file contents; otherwise the caller decides what to print.
func rewriteFile(proc *process.Processor, filename string, write bool) (rewriteResult, error) {
	res := rewriteResult{filename: filename}

	data, err := os.ReadFile(filename)
	if err != nil {
		return res, fmt.Errorf("error reading %s: %w", filename, err)
	}

	res.before = scanner.Scan(string(data))
	res.after, err = proc.Process(res.before)
	if err != nil {
		return res, fmt.Errorf("error processing %s: %w", filename, err)
	}

	res.out = scanner.Render(res.after)
	if !write {
		return res, nil
	}

	info, err := os.Stat(filename)
	if err != nil {
		return res, err
	}
	if err := os.WriteFile(filename, []byte(res.out), info.Mode()); err != nil {
		return res, fmt.Errorf("error writing %s: %w", filename, err)
	}

	return res, nil
}

func runWatchRewrite(logger *zap.Logger, proc *process.Processor, paths []string) {
	exts := splitExtensions(rewriteExts)

	// the rules file is watched too so edits to it take effect live
	w, err := internal.NewWatcher(append(paths, rulesFile), func(path string) {
		if path == rulesFile {
			reloaded, err := process.LoadProcessor(rulesFile)
			if err != nil {
				logger.Error("Error reloading rule file", zap.String("rules", rulesFile), zap.Error(err))
				return
			}
			proc = reloaded
			fmt.Println("rule file reloaded")
			return
		}
		if !hasDesiredExtension(path, exts) {
			return
		}
		res, err := rewriteFile(proc, path, writeInPlace)
		if err != nil {
			logger.Error("Error rewriting file", zap.String("file", path), zap.Error(err))
			return
		}
		fmt.Println(internal.FormatRewriteSummary(path, res.before, res.after))
	})
	if err != nil {
		logger.Fatal("Failed to create watcher", zap.Error(err))
	}

	if err := w.Start(); err != nil {
		logger.Fatal("Failed to start watching", zap.Error(err))
	}
	defer w.Stop()

	fmt.Println("watching for changes, press Ctrl-C to stop")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
}
