/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/valpere/localize/internal/localize"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the project's translation statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := localize.NewClient(cfg)

		stop := startSpinner(cmd.ErrOrStderr(), "Fetching stats...")
		data, err := client.Stats(cmd.Context())
		stop()
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}

		rows := flatten("", data)
		keys := make([]string, 0, len(rows))
		for k := range rows {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		table := borderlessTable(cmd.OutOrStdout())
		table.SetHeader([]string{"KEY", "VALUE"})
		for _, k := range keys {
			table.Append([]string{k, rows[k]})
		}
		table.Render()
		return nil
	},
}

// flatten turns a decoded JSON document into dotted keys. Arrays are
// indexed by position.
func flatten(prefix string, v interface{}) map[string]string {
	out := make(map[string]string)
	var walk func(key string, v interface{})
	walk = func(key string, v interface{}) {
		join := func(k string) string {
			if key == "" {
				return k
			}
			return key + "." + k
		}
		switch t := v.(type) {
		case map[string]interface{}:
			for k, child := range t {
				walk(join(k), child)
			}
		case []interface{}:
			for i, child := range t {
				walk(join(strconv.Itoa(i)), child)
			}
		case float64:
			out[key] = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			out[key] = strconv.FormatBool(t)
		case nil:
			out[key] = ""
		default:
			out[key] = fmt.Sprint(t)
		}
	}
	walk(prefix, v)
	return out
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
