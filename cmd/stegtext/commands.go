package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"xdao.co/stegtext/config"
	"xdao.co/stegtext/model"
	"xdao.co/stegtext/stego"
)

func (a *app) encodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <message>",
		Short: "Print the invisible carrier text for a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := stego.Encode(args[0])
			if err != nil {
				return fail("encode: %w", model.FromError(err))
			}
			a.logger.Debug("encoded message", zap.Int("carriers", len([]rune(enc))))
			_, _ = fmt.Fprintln(a.out, enc)
			return nil
		},
	}
}

func (a *app) appendCommand() *cobra.Command {
	var host string
	cmd := &cobra.Command{
		Use:   "append --host <text> <message>",
		Short: "Print host text with a hidden message appended",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := stego.AppendSecretMessage(host, args[0])
			if err != nil {
				return fail("append: %w", model.FromError(err))
			}
			_, _ = fmt.Fprintln(a.out, s)
			return nil
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "Visible host text")
	_ = cmd.MarkFlagRequired("host")
	return cmd
}

func (a *app) scanCommand() *cobra.Command {
	var annotations bool
	cmd := &cobra.Command{
		Use:   "scan [file]",
		Short: "Report hidden messages per input line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := a.readLines(args)
			if err != nil {
				return err
			}
			rep, err := model.Scan(lines, model.ScanOptions{
				Units:       a.cfg.Output.RangeUnits,
				Annotations: annotations,
				Markers:     a.cfg.Markers(),
			})
			if err != nil {
				return fail("scan: %w", err)
			}
			a.logScanErrors(rep)
			if a.cfg.Output.Format == config.FormatJSON {
				return a.writeJSON(rep)
			}
			for _, l := range rep.Lines {
				for _, m := range l.Messages {
					fmt.Fprintf(a.out, "%d\t%d\t%d\t%s\n", l.Line, m.Range.Offset, m.Range.Length, m.Message)
				}
				for _, e := range l.Errors {
					var r model.Range
					if e.Range != nil {
						r = *e.Range
					}
					fmt.Fprintf(a.out, "%d\t%d\t%d\t!%s: %s\n", l.Line, r.Offset, r.Length, e.Code, e.Message)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&annotations, "annotations", false, "Also extract localization annotations")
	return cmd
}

func (a *app) stripCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "strip [file]",
		Short: "Remove every hidden message, keeping the visible text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := a.readLines(args)
			if err != nil {
				return err
			}
			for _, l := range lines {
				_, _ = fmt.Fprintln(a.out, stego.Strip(l))
			}
			return nil
		},
	}
}

func (a *app) describeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe [file]",
		Short: "List every character with its code point and name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := a.readLines(args)
			if err != nil {
				return err
			}
			_, _ = io.WriteString(a.out, stego.Describe(strings.Join(lines, "\n")))
			return nil
		},
	}
}

func (a *app) annotateCommand() *cobra.Command {
	var key, table string
	cmd := &cobra.Command{
		Use:   "annotate --key <key> [--table <table>] <ui string>",
		Short: "Tag a UI string with its localization key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.cfg.Markers().Annotate(args[0], key, table)
			if err != nil {
				return fail("annotate: %w", model.FromError(err))
			}
			_, _ = fmt.Fprintln(a.out, s)
			return nil
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "Localization key")
	cmd.Flags().StringVar(&table, "table", "", "String table (empty means the configured default)")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}

func (a *app) extractCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "extract [file]",
		Short: "List localization annotations per input line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := a.readLines(args)
			if err != nil {
				return err
			}
			rep, err := model.Scan(lines, model.ScanOptions{
				Units:       a.cfg.Output.RangeUnits,
				Annotations: true,
				Markers:     a.cfg.Markers(),
			})
			if err != nil {
				return fail("extract: %w", err)
			}
			a.logScanErrors(rep)
			if a.cfg.Output.Format == config.FormatJSON {
				type lineAnnotations struct {
					Line        int                      `json:"line"`
					Annotations []model.AnnotationReport `json:"annotations"`
				}
				out := []lineAnnotations{}
				for _, l := range rep.Lines {
					if len(l.Annotations) > 0 {
						out = append(out, lineAnnotations{Line: l.Line, Annotations: l.Annotations})
					}
				}
				return a.writeJSON(out)
			}
			for _, l := range rep.Lines {
				for _, an := range l.Annotations {
					fmt.Fprintf(a.out, "%d\t%s\t%s\t%s\n", l.Line, an.Key, an.Table, an.UIString)
				}
			}
			return nil
		},
	}
}

func (a *app) configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.cfg.Marshal()
			if err != nil {
				return fail("config: %w", err)
			}
			_, _ = a.out.Write(b)
			return nil
		},
	}
}

// readLines reads the named file, or stdin when no file or "-" is given.
func (a *app) readLines(args []string) ([]string, error) {
	r := a.in
	name := "stdin"
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, fail("read %s: %w", args[0], err)
		}
		defer f.Close()
		r = f
		name = args[0]
	}
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fail("read %s: %w", name, err)
	}
	a.logger.Debug("read input", zap.String("source", name), zap.Int("lines", len(lines)))
	return lines, nil
}

func (a *app) logScanErrors(rep *model.ScanReport) {
	for _, l := range rep.Lines {
		for _, e := range l.Errors {
			a.logger.Warn("scan problem",
				zap.Int("line", l.Line),
				zap.String("code", string(e.Code)),
				zap.String("message", e.Message))
		}
	}
}

func (a *app) writeJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fail("write json: %w", err)
	}
	return nil
}
