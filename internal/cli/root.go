package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/deepltool"
	"github.com/ZaguanLabs/deepltool/internal/config"
	"github.com/ZaguanLabs/deepltool/internal/httpapi"
)

// NewRootCmd builds the deepltool command tree writing to stdout and stderr.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:   deepltool.Name,
		Short: deepltool.Description,
		Long: `deepltool translates text with DeepL on behalf of the Dify platform.

It runs as an HTTP tool server (serve) or as a one-shot command line translator.
Configuration comes from the environment, optionally seeded from a .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.LoadEnvFile(envFile); err != nil {
				return err
			}
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&envFile, "env", ".env", "path to a .env file (ignored when missing)")

	root.AddCommand(
		newServeCmd(stderr),
		newTranslateCmd(stdout, stderr),
		newValidateCmd(stdout, stderr),
		newLanguagesCmd(stdout),
		newVersionCmd(stdout),
	)
	return root
}

func newServeCmd(stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP tool server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := httpapi.NewServer(a.newTool(), a.logger, httpapi.Options{
				Host:            a.cfg.HTTPHost,
				Port:            a.cfg.HTTPPort,
				ShutdownTimeout: a.cfg.HTTPShutdownTimeout,
				DefaultAPIKey:   a.cfg.DeepLAPIKey,
				CacheStats:      a.cacheStats,
			})
			return server.Start(ctx)
		},
	}
}

type translateOutput struct {
	Text               string `json:"text"`
	DetectedSourceLang string `json:"detected_source_lang,omitempty"`
	TargetLang         string `json:"target_lang"`
	Cached             bool   `json:"cached"`
}

func newTranslateCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		target     string
		source     string
		noCache    bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "translate <text>",
		Short: "Translate text once and print the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			tool := a.newTool()
			creds := deepltool.Credentials{DeepLAPIKey: a.cfg.DeepLAPIKey}

			result, err := tool.Translate(cmd.Context(), creds, deepltool.TranslateRequest{
				Text:       strings.Join(args, " "),
				SourceLang: source,
				TargetLang: target,
				UseCache:   !noCache,
			})
			if err != nil {
				return errors.New(tool.FailureMessage(err))
			}

			if jsonOutput {
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				return enc.Encode(translateOutput{
					Text:               result.Text,
					DetectedSourceLang: result.DetectedSourceLang,
					TargetLang:         result.TargetLang,
					Cached:             result.Cached,
				})
			}
			_, err = fmt.Fprintln(stdout, result.Text)
			return err
		},
	}

	cmd.Flags().StringVar(&target, "target", deepltool.DefaultTargetLang, "target language code")
	cmd.Flags().StringVar(&source, "source", "", "source language code (empty for auto-detect)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the translation cache")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the result as JSON")
	return cmd
}

func newValidateCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check DEEPL_API_KEY against DeepL and show usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			creds := deepltool.Credentials{DeepLAPIKey: a.cfg.DeepLAPIKey}
			if err := a.newTool().ValidateCredentials(cmd.Context(), creds); err != nil {
				return err
			}
			fmt.Fprintln(stdout, "DeepL API key is valid")

			usage, err := a.deepl(a.cfg.DeepLAPIKey).Usage(cmd.Context())
			if err != nil {
				a.logger.Warn().Err(err).Msg("could not fetch DeepL usage")
				return nil
			}
			if usage.CharacterLimit > 0 {
				fmt.Fprintf(stdout, "Characters used: %d of %d (%.1f%%)\n",
					usage.CharacterCount, usage.CharacterLimit,
					float64(usage.CharacterCount)*100/float64(usage.CharacterLimit))
			} else {
				fmt.Fprintf(stdout, "Characters used: %d\n", usage.CharacterCount)
			}
			return nil
		},
	}
}

func newLanguagesCmd(stdout io.Writer) *cobra.Command {
	var source bool

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List supported language codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set := deepltool.TargetLanguages
			if source {
				set = deepltool.SourceLanguages
			}

			w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
			for _, code := range deepltool.SortedCodes(set) {
				fmt.Fprintf(w, "%s\t%s\n", code, deepltool.LanguageName(code))
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&source, "source", false, "list source languages instead of target languages")
	return cmd
}

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(stdout, "%s %s\n", deepltool.Name, deepltool.FullVersion())
			if deepltool.GitCommit != "unknown" && deepltool.GitCommit != "" {
				fmt.Fprintf(stdout, "  commit:  %s\n", deepltool.GitCommit)
			}
			if deepltool.BuildDate != "unknown" && deepltool.BuildDate != "" {
				fmt.Fprintf(stdout, "  built:   %s\n", deepltool.BuildDate)
			}
		},
	}
}

// Execute runs the command tree with args.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := NewRootCmd(stdout, stderr)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
