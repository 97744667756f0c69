// Command acecodec transcodes AMM ARIs between their text and binary
// forms, one per input line (text, cborhex) or per CBOR item (cbor).
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dtn-ace/ace"
	"github.com/dtn-ace/ace/aceconfig"
	"github.com/dtn-ace/ace/admcat"
	"github.com/dtn-ace/ace/aricbor"
	"github.com/dtn-ace/ace/internal/aceclog"
	"github.com/dtn-ace/ace/internal/admfile"
)

var (
	inform       string
	outform      string
	inputPath    string
	outputPath   string
	admPaths     []string
	mustNickname bool
	mustLookup   bool
	indefiniteAM bool
	verbose      bool
)

func parseForm(s string) (ace.Form, error) {
	switch s {
	case "text":
		return ace.FormText, nil
	case "cbor":
		return ace.FormCBOR, nil
	case "cborhex":
		return ace.FormCBORHex, nil
	default:
		return 0, fmt.Errorf("unknown form %q, want text, cbor, or cborhex", s)
	}
}

func loadCatalog(paths []string) (*admcat.Catalog, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	cat := admcat.NewCatalog()
	for _, p := range paths {
		ns, err := admfile.Load(p)
		if err != nil {
			return nil, err
		}
		if err := cat.AddADM(ns); err != nil {
			return nil, err
		}
	}
	return cat, nil
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		if err == nil {
			fmt.Println()
		}
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func runTranscode(cmd *cobra.Command, args []string) error {
	in, err := parseForm(inform)
	if err != nil {
		return err
	}
	out, err := parseForm(outform)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(admPaths)
	if err != nil {
		return err
	}

	cfg := aceconfig.DefaultConfig()
	cfg.MustNickname = mustNickname
	cfg.MustLookup = mustLookup
	if indefiniteAM {
		cfg.CBORMapForm = aceconfig.IndefiniteLength
	}
	if err := cfg.Valid(); err != nil {
		return err
	}

	data, err := readInput(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	tc := ace.NewTranscoder(cat, cfg)
	if verbose {
		zl, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		defer zl.Sync()
		aceclog.SetLogger(zl)
		tc.SetLogProvider(aceclog.NewZapLogger(nil))
		tc.LogMode(true)
	}
	result, err := transcodeStream(tc, in, out, data)
	if err != nil {
		return err
	}
	return writeOutput(outputPath, result)
}

// frameInput splits the raw input into one slice per ARI: one per line for
// the text and cborhex forms, one per CBOR item for the binary form.
func frameInput(in ace.Form, data []byte) ([][]byte, error) {
	if in == ace.FormCBOR {
		var items [][]byte
		rest := data
		for len(rest) > 0 {
			_, n, err := aricbor.Decode(rest)
			if err != nil {
				return nil, err
			}
			items = append(items, rest[:n])
			rest = rest[n:]
		}
		return items, nil
	}
	var items [][]byte
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		items = append(items, []byte(line))
	}
	return items, nil
}

// transcodeStream runs each framed input ARI through the transcoder,
// joining the outputs one per line (text, cborhex) or back to back
// (cbor).
func transcodeStream(tc *ace.Transcoder, in, out ace.Form, data []byte) ([]byte, error) {
	items, err := frameInput(in, data)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	for i, item := range items {
		res, err := tc.Transcode(in, item, out)
		if err != nil {
			return nil, err
		}
		if out != ace.FormCBOR && i > 0 {
			buf.WriteByte('\n')
		}
		buf.Write(res)
	}
	return buf.Bytes(), nil
}

func main() {
	var rootCmd = &cobra.Command{
		Use:   "acecodec",
		Short: "Decode, resolve, and encode AMM ARIs",
		Long:  "acecodec transcodes an AMM ARI between its text (ari:) and binary (CBOR) forms.",
	}

	var transcodeCmd = &cobra.Command{
		Use:   "transcode",
		Short: "Transcode ARIs from --inform to --outform",
		RunE:  runTranscode,
	}
	transcodeCmd.Flags().StringVar(&inform, "inform", "text", "input form: text, cbor, or cborhex")
	transcodeCmd.Flags().StringVar(&outform, "outform", "cborhex", "output form: text, cbor, or cborhex")
	transcodeCmd.Flags().StringVar(&inputPath, "input", "-", "input file path, or - for stdin")
	transcodeCmd.Flags().StringVar(&outputPath, "output", "-", "output file path, or - for stdout")
	transcodeCmd.Flags().StringSliceVar(&admPaths, "adm", nil, "ADM definition file(s) to load into the catalog")
	transcodeCmd.Flags().BoolVar(&mustNickname, "must-nickname", false, "require a symbolic nickname on every resolved object")
	transcodeCmd.Flags().BoolVar(&mustLookup, "must-lookup", false, "fail on any namespace/object the catalog cannot resolve")
	transcodeCmd.Flags().BoolVar(&indefiniteAM, "indefinite-am", false, "encode AM values as indefinite-length CBOR maps")
	transcodeCmd.Flags().BoolVar(&verbose, "verbose", false, "log transcode progress to stderr")

	rootCmd.AddCommand(transcodeCmd)

	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
