// Copyright 2025 The Linq4Go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"github.com/spf13/cobra"
)

func newOptCmd() *cobra.Command {
	var indent string
	cmd := &cobra.Command{
		Use:   "opt <file.yaml>",
		Short: "optimize a tree and print the resulting block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stmt, err := readTree(args[0])
			if err != nil {
				return exitOnErr(cmd, err)
			}
			return exitOnErr(cmd, run(cmd.OutOrStdout(), stmt, true, indent))
		},
	}
	addOutputFlags(cmd.Flags(), &indent)
	return cmd
}
