package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"zultys-gsm7/gsm7"
	"zultys-gsm7/smpp/coding"
)

// errIncompatible makes `check` exit non-zero without logging an error.
var errIncompatible = errors.New("text is not GSM 7-bit compatible")

// codecFlags are the per-command overrides of the configured codec.
type codecFlags struct {
	strict      bool
	replacement string
	maxLength   int
	validate    bool
	normalize   bool
}

func (f *codecFlags) register(cmd *cobra.Command, decoding bool) {
	flags := cmd.Flags()
	flags.BoolVar(&f.strict, "strict", false, "fail on characters or bytes outside the alphabet")
	flags.StringVar(&f.replacement, "replacement", "", "replacement character in lenient mode")
	flags.IntVar(&f.maxLength, "max-length", 0, "maximum input length, 0 for unbounded")
	if decoding {
		flags.BoolVar(&f.validate, "validate", false, "validate the whole input before decoding")
	} else {
		flags.BoolVar(&f.normalize, "normalize", false, "compose the text to NFC before encoding")
	}
}

// options returns only the flags set on the command line.
func (f *codecFlags) options(cmd *cobra.Command) codecOptions {
	var opts codecOptions
	flags := cmd.Flags()
	if flags.Changed("strict") {
		opts.Strict = &f.strict
	}
	if flags.Changed("replacement") {
		opts.Replacement = f.replacement
	}
	if flags.Changed("max-length") {
		opts.MaxLength = &f.maxLength
	}
	if flags.Changed("validate") {
		opts.Validate = &f.validate
	}
	if flags.Changed("normalize") {
		opts.Normalize = &f.normalize
	}
	return opts
}

func (f *codecFlags) config(cmd *cobra.Command, cfg *ServiceConfig) (gsm7.Config, error) {
	base, err := cfg.Codec()
	if err != nil {
		return base, err
	}
	return f.options(cmd).apply(base)
}

// newRootCmd builds gsm7ctl. A nil environment reads the process environment.
func newRootCmd(environment map[string]string) *cobra.Command {
	cfg := &ServiceConfig{}

	rootCmd := &cobra.Command{
		Use:           "gsm7ctl",
		Short:         "GSM 03.38 7-bit alphabet codec",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := LoadConfig(environment)
			if err != nil {
				return err
			}
			*cfg = loaded
			return setupLogging(loaded)
		},
	}

	rootCmd.AddCommand(
		newEncodeCmd(cfg),
		newDecodeCmd(cfg),
		newValidateCmd(cfg),
		newLengthCmd(),
		newCheckCmd(),
		newCleanCmd(),
		newServeCmd(cfg),
	)
	return rootCmd
}

func newEncodeCmd(cfg *ServiceConfig) *cobra.Command {
	var (
		flags  codecFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "encode <text>",
		Short: "Encode text to GSM 7-bit bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := flags.config(cmd, cfg)
			if err != nil {
				return err
			}
			encoded, err := gsm7.EncodeWithConfig(args[0], codec)
			if err != nil {
				return err
			}
			out, err := formatBytes(encoded, format)
			if err != nil {
				return err
			}
			if strings.EqualFold(format, FormatRaw) {
				_, err = cmd.OutOrStdout().Write(encoded)
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	flags.register(cmd, false)
	cmd.Flags().StringVar(&format, "format", FormatHex, "output format: hex, base64 or raw")
	return cmd
}

func newDecodeCmd(cfg *ServiceConfig) *cobra.Command {
	var (
		flags  codecFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "decode <data>",
		Short: "Decode GSM 7-bit bytes to text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := flags.config(cmd, cfg)
			if err != nil {
				return err
			}
			data, err := parseBytes(args[0], format)
			if err != nil {
				return err
			}
			text, err := gsm7.DecodeWithConfig(data, codec)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
	flags.register(cmd, true)
	cmd.Flags().StringVar(&format, "format", FormatHex, "input format: hex or base64")
	return cmd
}

func newValidateCmd(cfg *ServiceConfig) *cobra.Command {
	var (
		format    string
		maxLength int
	)
	cmd := &cobra.Command{
		Use:   "validate <data>",
		Short: "Check that GSM 7-bit bytes decode in strict mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := cfg.Codec()
			if err != nil {
				return err
			}
			var opts codecOptions
			if cmd.Flags().Changed("max-length") {
				opts.MaxLength = &maxLength
			}
			codec, err := opts.apply(base)
			if err != nil {
				return err
			}
			data, err := parseBytes(args[0], format)
			if err != nil {
				return err
			}
			if err := gsm7.ValidateWithConfig(data, codec); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", FormatHex, "input format: hex or base64")
	cmd.Flags().IntVar(&maxLength, "max-length", 0, "maximum input length in bytes, 0 for unbounded")
	return cmd
}

func newLengthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "length <text>",
		Short: "Report the encoded size of text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := coding.Measure(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "septets: %d\n", size.Septets)
			fmt.Fprintf(out, "packed octets: %d\n", size.PackedOctets)
			fmt.Fprintf(out, "ucs2 octets: %d\n", size.UCS2Octets)
			return nil
		},
	}
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <text>",
		Short: "Exit non-zero unless text is GSM 7-bit compatible",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := gsm7.EncodedLen(args[0]); err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), err.Error())
				return errIncompatible
			}
			fmt.Fprintln(cmd.OutOrStdout(), "compatible")
			return nil
		},
	}
}

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean <text>",
		Short: "Replace characters outside GSM 03.38 with '?'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), CleanSMS(args[0]))
			return err
		},
	}
}

func newServeCmd(cfg *ServiceConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP codec service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := prometheus.NewRegistry()
			metrics := NewMetricExporter()
			registry.MustRegister(metrics)

			srv, err := NewWebServer(*cfg, metrics, registry)
			if err != nil {
				return err
			}

			if cfg.MetricsListen != "" {
				exporter := &PrometheusExporter{Path: cfg.MetricsPath, Listen: cfg.MetricsListen, Gatherer: registry}
				go func() {
					logf := LoggingFormat{Type: LogType.Metrics, Path: "commands", Function: "serve"}
					logf.Level = logrus.InfoLevel
					logf.Message = fmt.Sprintf("Starting metrics exporter on %s%s", exporter.Listen, exporter.Path)
					logf.Print()

					if err := exporter.Start(); err != nil {
						logf.Level = logrus.ErrorLevel
						logf.Message = "Metrics exporter stopped"
						logf.Error = err
						logf.Print()
					}
				}()
			}

			return srv.Start()
		},
	}
}
