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
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"linq4go.org/go/encoding/yamltree"
	"linq4go.org/go/linq/ast"
	"linq4go.org/go/linq/block"
	"linq4go.org/go/linq/format"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linq",
		Short: "linq builds, optimizes and prints expression-tree blocks",
		Long: `linq reads expression trees described as YAML documents, runs them
through the block builder, and prints the resulting block.`,

		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Usage()
		},
	}
	cmd.AddCommand(newOptCmd())
	cmd.AddCommand(newPrintCmd())
	return cmd
}

// addOutputFlags registers the flags shared by the printing commands.
func addOutputFlags(fs *pflag.FlagSet, indent *string) {
	fs.StringVar(indent, "indent", "  ", "indentation unit for printed blocks")
}

// readTree loads the statement document named by arg, with "-" meaning
// standard input.
func readTree(arg string) (ast.Stmt, error) {
	var data []byte
	var err error
	if arg == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(arg)
	}
	if err != nil {
		return nil, err
	}
	return yamltree.DecodeStmt(data)
}

// run builds a block from the statement and writes its printed form.
func run(w io.Writer, stmt ast.Stmt, optimizing bool, indent string) error {
	b := block.New(optimizing)
	b.Add(stmt)
	out, err := format.Node(b.ToBlock(), format.Indent(indent))
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func exitOnErr(cmd *cobra.Command, err error) error {
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "linq: %v\n", err)
	}
	return err
}
