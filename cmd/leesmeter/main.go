package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/tekstlab/leesmeter/internal/adapters"
	"github.com/tekstlab/leesmeter/internal/analysis"
	"github.com/tekstlab/leesmeter/internal/annotation"
	"github.com/tekstlab/leesmeter/internal/lexicon"
	"github.com/tekstlab/leesmeter/internal/preprocess"
	"github.com/tekstlab/leesmeter/internal/render"
)

func main() {
	app := &cli.App{
		Name:  "leesmeter",
		Usage: "leesbaarheidsanalyse voor Nederlandse teksten",
		Commands: []*cli.Command{
			analyzeCommand(),
			reportCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "leesmeter: %v\n", err)
		os.Exit(1)
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "lexicon",
			Usage:   "directory with lexicon data files",
			Value:   "./lexicon",
			EnvVars: []string{"LEXICON_DIR"},
		},
		&cli.StringFlag{
			Name:    "scoring",
			Usage:   "path to a scoring config file (defaults apply when empty)",
			EnvVars: []string{"SCORING_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "annotator",
			Usage:   "base URL of the annotation service",
			Value:   "http://localhost:9005",
			EnvVars: []string{"ANNOTATOR_URL"},
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "timeout per annotation request",
			Value: 30 * time.Second,
		},
		&cli.BoolFlag{
			Name:  "annotated",
			Usage: "input is an annotated document in JSON instead of raw text",
		},
	}
}

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "score a text read from a file or stdin",
		ArgsUsage: "[file]",
		Flags: append(commonFlags(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the full feature set as JSON",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "print per-sentence features",
			},
		),
		Action: func(c *cli.Context) error {
			features, err := analyzeInput(c)
			if err != nil {
				return err
			}

			if c.Bool("json") {
				enc := json.NewEncoder(c.App.Writer)
				enc.SetIndent("", "  ")
				return enc.Encode(features)
			}

			fmt.Fprint(c.App.Writer, formatPlain(features, c.Bool("verbose")))
			return nil
		},
	}
}

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "write an HTML report for a text read from a file or stdin",
		ArgsUsage: "[file]",
		Flags: append(commonFlags(),
			&cli.StringFlag{
				Name:     "out",
				Aliases:  []string{"o"},
				Usage:    "output path for the HTML report",
				Required: true,
			},
		),
		Action: func(c *cli.Context) error {
			features, err := analyzeInput(c)
			if err != nil {
				return err
			}

			page, err := render.HTML(render.Report{
				ID:        "cli",
				CreatedAt: time.Now(),
				Features:  *features,
			})
			if err != nil {
				return err
			}

			out := c.String("out")
			if err := os.WriteFile(out, page, 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}

			fmt.Fprintf(c.App.Writer, "rapport geschreven naar %s\n", out)
			return nil
		},
	}
}

// analyzeInput reads the input, runs annotation when needed and returns
// the document features.
func analyzeInput(c *cli.Context) (*analysis.DocumentFeatures, error) {
	input, err := readInput(c)
	if err != nil {
		return nil, err
	}

	var doc *annotation.Document
	if c.Bool("annotated") {
		doc, err = parseAnnotated(input)
		if err != nil {
			return nil, err
		}
	} else {
		text := preprocess.Text(input)
		if text == "" {
			return nil, fmt.Errorf("input contains no analyzable prose")
		}

		ctx, cancel := context.WithTimeout(context.Background(), c.Duration("timeout"))
		defer cancel()

		client := adapters.NewHTTPAnnotator(c.String("annotator"), c.Duration("timeout"))
		doc, err = client.Annotate(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("annotate: %w", err)
		}
	}

	lex, err := lexicon.Load(c.String("lexicon"))
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}

	cfg, err := analysis.LoadScoringConfig(c.String("scoring"))
	if err != nil {
		return nil, fmt.Errorf("load scoring config: %w", err)
	}

	analyzer := analysis.NewAnalyzer(lex, cfg)
	return analyzer.AnalyzeDocument(doc), nil
}

func readInput(c *cli.Context) ([]byte, error) {
	if c.Args().Len() > 0 {
		data, err := os.ReadFile(c.Args().First())
		if err != nil {
			return nil, err
		}
		return data, nil
	}
	return io.ReadAll(os.Stdin)
}

func parseAnnotated(input []byte) (*annotation.Document, error) {
	var doc annotation.Document
	if err := json.Unmarshal(input, &doc); err != nil {
		return nil, fmt.Errorf("parse annotated document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid annotated document: %w", err)
	}
	return &doc, nil
}

// formatPlain renders a short Dutch summary of the analysis.
func formatPlain(features *analysis.DocumentFeatures, verbose bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Zinnen:   %d\n", features.SentenceCount)
	fmt.Fprintf(&b, "Score:    %s\n", render.FormatScore(features.Score))
	fmt.Fprintf(&b, "Niveau:   %s\n", render.LevelLabel(features.Level))

	if verbose {
		b.WriteString("\n")
		for i, s := range features.Sentences {
			fmt.Fprintf(&b, "[%d] %s\n", i+1, s.Text)
			fmt.Fprintf(&b, "    woordfrequentie=%s afhankelijkheidslengte=%s"+
				" inhoudswoorden/deelzin=%s concreet=%s\n",
				fmtNullable(s.MeanLogFrequency), fmtNullableInt(s.MaxDependencyLength),
				fmtNullable(s.ContentWordsPerClause), fmtNullable(s.ProportionConcreteNouns))
		}
	}

	return b.String()
}

func fmtNullable(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}

func fmtNullableInt(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}
