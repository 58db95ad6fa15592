package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcus/nexaflow/internal/config"
	"github.com/marcus/nexaflow/internal/output"
)

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Manage workspace settings in .nexaflow/config.json",
	GroupID: "system",
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		err := config.Update(getBaseDir(), func(c *config.Config) error {
			return c.Set(key, val)
		})
		if err != nil {
			return fail(false, fmt.Errorf("%w: %v", errBadArg, err))
		}
		output.Success("SET %s = %s", key, val)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the effective value of a config key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(getBaseDir())
		if err != nil {
			return fail(false, err)
		}
		v, err := cfg.Get(args[0])
		if err != nil {
			return fail(false, fmt.Errorf("%w: %v", errBadArg, err))
		}
		fmt.Println(v)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show every config key with its effective value",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut := jsonFlag(cmd)
		cfg, err := loadConfig(getBaseDir())
		if err != nil {
			return fail(jsonOut, err)
		}

		values := make(map[string]string, len(config.Keys()))
		for _, k := range config.Keys() {
			values[k], _ = cfg.Get(k)
		}
		if jsonOut {
			return output.JSON(values)
		}
		for _, k := range config.Keys() {
			fmt.Printf("%-22s %s\n", k, values[k])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd, configGetCmd, configListCmd)
	addJSONFlag(configListCmd)
}
