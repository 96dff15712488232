// Package app builds the pathex command tree.
package app

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/reoring/pathex/i18n"
	"github.com/reoring/pathex/templates"
)

// EnvPrefix is prepended to every configuration key read from the
// environment, e.g. PATHEX_LOG_LEVEL.
const EnvPrefix = "PATHEX"

// Version is set at build time with -ldflags "-X ...app.Version=...".
var Version = "dev"

type cli struct {
	v      *viper.Viper
	logger *zap.Logger
}

// NewRootCmd creates the root command with its own configuration instance.
func NewRootCmd() *cobra.Command {
	c := &cli{v: viper.New(), logger: zap.NewNop()}
	c.v.SetEnvPrefix(EnvPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	c.v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "pathex",
		Short:         "Extract typed parameters from URI templates",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(c.v.GetString("log-level"), c.v.GetString("log-format"), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			c.logger = logger
			i18n.SetLanguage(c.v.GetString("lang"))
			return nil
		},
	}
	pf := root.PersistentFlags()
	pf.String("log-level", "info", "Log level (debug, info, warn, error)")
	pf.String("log-format", "json", "Log format (json or console)")
	pf.String("lang", "en", "Message language (en or ja)")
	pf.String("templates", "", "YAML template table (defaults to the built-in demo table)")
	for _, name := range []string{"log-level", "log-format", "lang", "templates"} {
		cobra.CheckErr(c.v.BindPFlag(name, pf.Lookup(name)))
	}

	root.AddCommand(c.extractCmd(), c.resolveCmd(), c.serveCmd(), c.versionCmd())
	return root
}

// newLogger builds a zap logger writing to w. JSON output uses an ISO8601
// "ts" key; console output is meant for humans.
func newLogger(level, format string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	switch format {
	case "json", "":
		enc = zapcore.NewJSONEncoder(encCfg)
	case "console":
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), lvl)), nil
}

// loadSet returns the configured template table.
func (c *cli) loadSet() (*templates.Set, error) {
	path := c.v.GetString("templates")
	if path == "" {
		return templates.Default(templates.WithLogger(c.logger)), nil
	}
	c.logger.Debug("loading templates", zap.String("path", path))
	return templates.LoadFile(path, templates.WithLogger(c.logger))
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
