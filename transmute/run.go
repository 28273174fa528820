package transmute

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"gcsst/state"
)

// RunPaths is the "paths" subcommand action: it expands glob patterns from
// the command line, reads and cleans the matched CSS files, transmutes the
// combined text and writes the JSON output.
func RunPaths(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("transmute")

	patterns := splitPatterns(cmd.Args().Slice())
	if len(patterns) == 0 {
		return errors.New("no CSS file patterns provided")
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("unable to get working directory: %w", err)
	}

	paths, err := ExpandPaths(cwd, patterns)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.New("no files found matching the provided patterns")
	}
	log.Debug("Input files expanded", zap.Strings("patterns", patterns), zap.Int("files", len(paths)))

	content, err := ReadAndCleanFiles(paths)
	if err != nil {
		return err
	}

	res, elapsed, err := Transmute(content, recognizer(env), log)
	if err != nil {
		return err
	}

	data, err := Assemble(res, withOneliner(env, cmd)).JSON()
	if err != nil {
		return fmt.Errorf("unable to serialize result: %w", err)
	}

	output := cmd.String("output")
	if len(output) == 0 {
		output = env.Cfg.Transmute.Output
	}
	if !filepath.IsAbs(output) {
		output = filepath.Join(cwd, output)
	}
	if err := writeOutput(output, data); err != nil {
		return err
	}

	log.Info("Transmutation completed",
		zap.Duration("elapsed", elapsed), zap.Int("files", len(paths)), zap.Int("classes", len(res)), zap.String("output", output))
	return nil
}

// RunContent is the "content" subcommand action: it transmutes the literal
// CSS argument and writes the JSON output to the requested file or stdout.
func RunContent(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("transmute")

	content := strings.Join(cmd.Args().Slice(), " ")
	if len(strings.TrimSpace(content)) == 0 {
		return errors.New("no CSS content provided")
	}

	res, elapsed, err := Transmute(CleanContent(content), recognizer(env), log)
	if err != nil {
		return err
	}

	data, err := Assemble(res, withOneliner(env, cmd)).JSON()
	if err != nil {
		return fmt.Errorf("unable to serialize result: %w", err)
	}

	output := cmd.String("output")
	if len(output) == 0 {
		// print to stdout for redirection, status goes to the log (stderr)
		if _, err := os.Stdout.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("unable to write result: %w", err)
		}
		log.Info("Transmutation completed", zap.Duration("elapsed", elapsed), zap.Int("classes", len(res)))
		return nil
	}

	if err := writeOutput(output, data); err != nil {
		return err
	}
	log.Info("Transmutation completed", zap.Duration("elapsed", elapsed), zap.Int("classes", len(res)), zap.String("output", output))
	return nil
}

func splitPatterns(args []string) []string {
	var patterns []string
	for _, arg := range args {
		for _, p := range strings.Split(arg, ",") {
			if p = strings.TrimSpace(p); len(p) > 0 {
				patterns = append(patterns, p)
			}
		}
	}
	return patterns
}

func recognizer(env *state.LocalEnv) Recognizer {
	if env.Recognize == nil {
		return nil
	}
	return RecognizerFunc(env.Recognize)
}

func withOneliner(env *state.LocalEnv, cmd *cli.Command) bool {
	return cmd.Bool("with-oneliner") || env.Cfg.Transmute.WithOneliner
}

func writeOutput(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("unable to write output file %q: %w", path, err)
	}
	return nil
}

// Elapsed formats a transmutation duration the way the CLI and the server
// report it.
func Elapsed(d time.Duration) string {
	return d.Round(time.Microsecond).String()
}
