// hif_bench writes a stream of pseudo-random statements to a session
// directory, reads it back verifying the round-trip, and reports wall times
// and on-disk sizes. With --compress it additionally reports what each codec
// would save on the chunk files.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/hdlio/hif"
	"github.com/hdlio/hif/compress"
)

var (
	numStatements int
	seed          int64
	keepDir       bool
	codecNames    []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "hif_bench <directory>",
		Short:        "Round-trip a random statement stream and report timings and sizes.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(args[0])
		},
	}

	rootCmd.Flags().IntVarP(&numStatements, "count", "n", 100000, "number of random statements to write")
	rootCmd.Flags().Int64Var(&seed, "seed", 1, "random generator seed")
	rootCmd.Flags().BoolVar(&keepDir, "keep", false, "keep the session directory after the run")
	rootCmd.Flags().StringSliceVar(&codecNames, "compress", nil,
		fmt.Sprintf("report compressed chunk sizes for codecs (%s)", strings.Join(compress.Names(), ", ")))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runBench(dir string) error {
	rng := rand.New(rand.NewSource(seed))

	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	sp.Prefix = fmt.Sprintf("Writing %d statements to %s... ", numStatements, dir)
	sp.Start()

	stmts := make([]hif.Statement, numStatements)
	for i := range stmts {
		stmts[i] = randomStatement(rng, i)
	}

	writeStart := time.Now()
	wr, err := hif.Create(dir, "hif_bench", "0.0.1")
	if err != nil {
		sp.Stop()

		return err
	}
	for i := range stmts {
		if err := wr.Add(stmts[i]); err != nil {
			sp.Stop()

			return err
		}
	}
	if err := wr.Close(); err != nil {
		sp.Stop()

		return err
	}
	writeElapsed := time.Since(writeStart)
	sp.Stop()

	readStart := time.Now()
	rd, err := hif.Open(dir)
	if err != nil {
		return err
	}
	defer rd.Close()

	conta := 0
	mismatch := -1
	if err := rd.Each(func(stmt hif.Statement) {
		if conta < len(stmts) && mismatch < 0 && !stmt.Equal(stmts[conta]) {
			mismatch = conta
		}
		conta++
	}); err != nil {
		return err
	}
	if mismatch >= 0 {
		return fmt.Errorf("statement %d did not round-trip", mismatch)
	}
	if conta != len(stmts) {
		return fmt.Errorf("wrote %d statements, read back %d", len(stmts), conta)
	}
	readElapsed := time.Since(readStart)

	fmt.Printf("statements: %d\n", conta)
	fmt.Printf("write: %v (%.0f stmts/s)\n", writeElapsed, float64(conta)/writeElapsed.Seconds())
	fmt.Printf("read:  %v (%.0f stmts/s)\n", readElapsed, float64(conta)/readElapsed.Seconds())

	if err := reportSizes(dir); err != nil {
		return err
	}

	if !keepDir {
		return os.RemoveAll(dir)
	}

	return nil
}

func reportSizes(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var stSize, idSize int64
	var payload []byte
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			return err
		}
		if strings.HasSuffix(entry.Name(), ".st") {
			stSize += info.Size()
		} else {
			idSize += info.Size()
		}

		if len(codecNames) > 0 {
			data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
			if err != nil {
				return err
			}
			payload = append(payload, data...)
		}
	}
	fmt.Printf("size:  %d bytes statements, %d bytes identifiers\n", stSize, idSize)

	for _, name := range codecNames {
		codec, err := compress.GetCodec(name)
		if err != nil {
			return err
		}
		packed, err := codec.Compress(payload)
		if err != nil {
			return err
		}
		fmt.Printf("  %-4s %d bytes (%.1f%% of raw)\n",
			name, len(packed), 100*float64(len(packed))/float64(len(payload)))
	}

	return nil
}

// randomStatement mixes classes, instance names, string and int64 tuple
// entries, and attributes, with enough repeated identifiers to exercise the
// interner's dedup path.
func randomStatement(rng *rand.Rand, i int) hif.Statement {
	var stmt hif.Statement
	if i%2 == 0 {
		stmt = hif.NewNode()
	} else {
		stmt = hif.NewAssign()
	}
	stmt.Type = uint16(rng.Intn(4096))

	if rng.Intn(2) == 0 {
		stmt.Instance = []byte(randomName(rng, i))
	}

	inputs := 1 + rng.Intn(4)
	for j := 0; j < inputs; j++ {
		if rng.Intn(2) == 0 {
			stmt.AddInput(randomName(rng, j), fmt.Sprintf("%d", rng.Intn(64)))
		} else {
			stmt.AddInputInt64(randomName(rng, j), int64(i))
		}
	}
	stmt.AddOutput(randomName(rng, i+inputs), "")

	if rng.Intn(4) == 0 {
		stmt.AddAttr("loc", fmt.Sprintf("%d", i))
	}

	return stmt
}

func randomName(rng *rand.Rand, counter int) string {
	var sb strings.Builder
	if rng.Intn(2) == 0 {
		sb.WriteByte('$')
	}
	fmt.Fprintf(&sb, "%d", counter)
	if rng.Intn(2) == 0 {
		sb.WriteString("_something_quite_large_and_not_reusable")
	}

	return sb.String()
}
