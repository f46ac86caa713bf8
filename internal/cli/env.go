package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// envAliases are conventional variables read after TLESS_<FLAG> is found
// unset.
var envAliases = map[string]string{
	"no-color": "NO_COLOR",
}

// bindEnvVars sets every flag of cmd that was not given on the command line
// from TLESS_<FLAG>, with dashes turned into underscores:
//
//   - --poll-interval from TLESS_POLL_INTERVAL
//   - -F/--quit-if-one-screen from TLESS_QUIT_IF_ONE_SCREEN
//   - --no-color from TLESS_NO_COLOR, then NO_COLOR
//
// The variable names are appended to the flag usage.
func bindEnvVars(cmd *cobra.Command) {
	bind := func(flag *pflag.Flag) {
		bindFlag(flag, envNames(flag.Name)...)
	}

	cmd.Flags().VisitAll(bind)
	cmd.PersistentFlags().VisitAll(bind)
}

func envNames(flagName string) []string {
	names := []string{flagToEnvName(flagName)}
	if alias, ok := envAliases[flagName]; ok {
		names = append(names, alias)
	}

	return names
}

// bindFlag sets flag from the first of names that is set in the environment.
func bindFlag(flag *pflag.Flag, names ...string) {
	if !strings.Contains(flag.Usage, "$"+names[0]) {
		vars := make([]string, 0, len(names))
		for _, name := range names {
			vars = append(vars, "$"+name)
		}

		flag.Usage = fmt.Sprintf("%s (%s)", flag.Usage, strings.Join(vars, ", "))
	}

	if flag.Changed {
		return
	}

	for _, name := range names {
		value, ok := os.LookupEnv(name)
		if !ok {
			continue
		}

		// NO_COLOR is set to any non-empty value.
		if name == envAliases[flag.Name] && flag.Value.Type() == "bool" {
			value = fmt.Sprint(value != "")
		}

		err := flag.Value.Set(value)
		if err != nil {
			slog.Error("failed to set flag from environment variable",
				slog.String("flag", flag.Name),
				slog.String("env", name),
				slog.String("value", value),
				slog.Any("error", err),
			)
		}

		return
	}
}

// flagToEnvName converts a flag name to its TLESS_ variable,
// e.g. "poll-interval" -> "TLESS_POLL_INTERVAL".
func flagToEnvName(flagName string) string {
	return strings.ToUpper(cmdName + "_" + strings.ReplaceAll(flagName, "-", "_"))
}
