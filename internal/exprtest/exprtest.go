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

// Package exprtest drives golden tests from txtar archives. An archive
// holds the input files of one case plus an "out/<name>" file with the
// expected output; running with LINQ_UPDATE=1 rewrites the golden files
// in place.
package exprtest

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rogpeppe/go-internal/diff"
	"github.com/rogpeppe/go-internal/txtar"
)

// UpdateGoldenFiles reports whether tests should rewrite their golden
// files instead of comparing against them.
var UpdateGoldenFiles = os.Getenv("LINQ_UPDATE") != ""

// A TxTarTest runs a function for each .txtar file under Root, comparing
// what the function writes against the archive's "out/<Name>" file.
type TxTarTest struct {
	Root string
	Name string
}

// A Test is the per-archive handle passed to the test function. Output
// written to it is compared against the golden file.
type Test struct {
	*testing.T

	Archive *txtar.Archive

	buf bytes.Buffer
}

func (t *Test) Write(b []byte) (int, error) {
	return t.buf.Write(b)
}

func (t *Test) WriteString(s string) (int, error) {
	return t.buf.WriteString(s)
}

// ReadFile returns the named file from the archive, failing the test when
// it is absent.
func (t *Test) ReadFile(name string) []byte {
	for _, f := range t.Archive.Files {
		if f.Name == name {
			return f.Data
		}
	}
	t.Fatalf("file %q not found in archive", name)
	return nil
}

// Run runs the test function for every archive under Root.
func (x *TxTarTest) Run(t *testing.T, f func(tc *Test)) {
	files, err := filepath.Glob(filepath.Join(x.Root, "*.txtar"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatalf("no txtar files under %s", x.Root)
	}
	outFile := filepath.Join("out", x.Name)
	for _, file := range files {
		file := file
		name := strings.TrimSuffix(filepath.Base(file), ".txtar")
		t.Run(name, func(t *testing.T) {
			a, err := txtar.ParseFile(file)
			if err != nil {
				t.Fatal(err)
			}
			tc := &Test{T: t, Archive: a}
			f(tc)
			got := tc.buf.Bytes()

			idx := -1
			for i, f := range a.Files {
				if filepath.ToSlash(f.Name) == filepath.ToSlash(outFile) {
					idx = i
					break
				}
			}
			if UpdateGoldenFiles {
				data := ensureNewline(got)
				if idx >= 0 {
					a.Files[idx].Data = data
				} else {
					a.Files = append(a.Files, txtar.File{Name: outFile, Data: data})
				}
				if err := os.WriteFile(file, txtar.Format(a), 0o666); err != nil {
					t.Fatal(err)
				}
				return
			}
			if idx < 0 {
				t.Fatalf("missing golden file %q; rerun with LINQ_UPDATE=1", outFile)
			}
			want := a.Files[idx].Data
			// Archives always end files with a newline; tolerate output
			// that does not.
			if !bytes.Equal(trimNewline(want), trimNewline(got)) {
				t.Errorf("output mismatch:\n%s", diff.Diff("want", want, "got", got))
			}
		})
	}
}

func trimNewline(b []byte) []byte {
	return bytes.TrimSuffix(b, []byte("\n"))
}

func ensureNewline(b []byte) []byte {
	if len(b) > 0 && !bytes.HasSuffix(b, []byte("\n")) {
		return append(append([]byte(nil), b...), '\n')
	}
	return b
}
