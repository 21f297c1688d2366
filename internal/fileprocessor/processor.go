// Package fileprocessor handles the memory to schematic conversion workflow.
package fileprocessor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/memschem/internal/config"
	"github.com/retroenv/memschem/internal/generator"
	"github.com/retroenv/memschem/internal/memory"
	"github.com/retroenv/memschem/internal/options"
	"github.com/retroenv/memschem/internal/schematic"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile handles the complete conversion workflow: load and validate the
// memory image, place all pages into a schematic and write the output file.
// Validation happens before any output is produced, a failing run never
// leaves a partial .schem file behind.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program) error {
	mem, err := memory.LoadFile(opts.Input, opts.Strict)
	if err != nil {
		return fmt.Errorf("loading memory image: %w", err)
	}

	genOpts, err := createGeneratorOptions(opts)
	if err != nil {
		return err
	}

	schem := schematic.New(genOpts.DataVersion)
	gen := generator.New(logger, schem, genOpts)
	if err := gen.Generate(mem); err != nil {
		return fmt.Errorf("generating schematic: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	// encode into memory first so that an encoding error cannot corrupt the
	// output file
	var buf bytes.Buffer
	if err := schem.Encode(&buf); err != nil {
		return fmt.Errorf("encoding schematic: %w", err)
	}
	if err := os.WriteFile(opts.Output, buf.Bytes(), 0o666); err != nil {
		return fmt.Errorf("writing file %s: %w", opts.Output, err)
	}

	logger.Info("Schematic written",
		log.String("file", opts.Output),
		log.Int("blocks", schem.Len()),
		log.Int("containers", schem.Containers()),
	)

	if opts.Verify {
		if err := verifyOutput(opts.Output, schem); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		logger.Info("Verification successful")
	}
	return nil
}

func createGeneratorOptions(opts options.Program) (options.Generator, error) {
	genOpts := options.NewGenerator()
	genOpts.WriteRAM = opts.WriteRAM

	if opts.Layout == "" {
		return genOpts, nil
	}
	layout, err := config.LoadLayout(opts.Layout)
	if err != nil {
		return genOpts, fmt.Errorf("loading layout configuration: %w", err)
	}
	layout.Apply(&genOpts)
	return genOpts, nil
}

// verifyOutput re-encodes the schematic and compares it with the written
// file. The encoder is deterministic, any difference means the file on disk
// does not match the generated content.
func verifyOutput(path string, schem *schematic.Schematic) error {
	written, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file for comparison: %w", err)
	}

	var buf bytes.Buffer
	if err := schem.Encode(&buf); err != nil {
		return fmt.Errorf("re-encoding schematic: %w", err)
	}

	return checkBufferEqual(buf.Bytes(), written)
}

func checkBufferEqual(input, output []byte) error {
	if len(input) != len(output) {
		return fmt.Errorf("mismatched lengths, %d != %d", len(input), len(output))
	}

	var diffs uint64
	firstDiff := -1
	for i := range input {
		if input[i] == output[i] {
			continue
		}
		diffs++
		if firstDiff == -1 {
			firstDiff = i
		}
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%d offset mismatches, first at offset %d", diffs, firstDiff)
}

// PrintBanner prints application version information.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("memschem", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
