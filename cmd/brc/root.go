package main

import (
	"io"
	"strings"

	"github.com/go-kit/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/go-sif/brc/logging"
)

// envPrefix prefixes the environment variables which override flags,
// e.g. BRC_WORKERS for --workers
const envPrefix = "BRC"

type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func newRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	s := &streams{in: in, out: out, err: errOut}
	root := &cobra.Command{
		Use:           "brc",
		Short:         "Aggregate name;value measurement files into min/avg/max per name",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().String("log-level", logging.LogLevelToString(logging.InfoLevel), "one of "+strings.Join(levelNames(), ", "))
	root.PersistentFlags().String("config", "", "a configuration file providing defaults for any flag")
	root.AddCommand(newRunCommand(s), newMergeCommand(s), newGenerateCommand(s))
	return root
}

// configure binds a command's flags, environment and optional config file into
// a fresh viper instance, in increasing order of precedence: file, env, flags
func configure(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func levelNames() []string {
	names := make([]string, 0, logging.ErrorLevel+1)
	for lvl := logging.DebugLevel; lvl <= logging.ErrorLevel; lvl++ {
		names = append(names, logging.LogLevelToString(lvl))
	}
	return names
}

func newLogger(s *streams, v *viper.Viper) (log.Logger, error) {
	return logging.New(s.err, v.GetString("log-level"))
}
