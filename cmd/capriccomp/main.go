// Copyright 2024 The Caprica-Go Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// The capriccomp command drives the Papyrus semantic core (lang/papyrus)
// over a set of .psc scripts: it wires command line flags into a
// papyrus.Config, and resolves and emits each script named on the command
// line. It does not write .pex files: serializing the emitted model to
// bytes is left to an external collaborator.
//
// It does not contain a Papyrus lexer or parser: parsing is an external
// collaborator wired in through papyrus.Parser, the same way a
// surrounding driver is expected to supply one. See parser.go.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/rethesda/Caprica/cmd/capriccomp/cliflags"
	"github.com/rethesda/Caprica/lang/diag"
	"github.com/rethesda/Caprica/lang/limits"
	"github.com/rethesda/Caprica/lang/papyrus"
)

var (
	importDirsFlag  = flag.String("import-dirs", "", cliflags.ImportDirsUsage)
	decompStructFlag = flag.Bool("enable-decompiled-struct-name-refs",
		cliflags.EnableDecompiledStructNameRefsDefault, cliflags.EnableDecompiledStructNameRefsUsage)
	disableWarningsFlag = flag.String("disable-warnings", "", cliflags.DisableWarningsUsage)
	warningsAsErrorsFlag = flag.String("warnings-as-errors", "", cliflags.WarningsAsErrorsUsage)
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() (err error) {
	flag.Parse()
	defer diag.Recover(&err)

	for _, s := range cliflags.SplitList(*importDirsFlag) {
		if !cliflags.IsAlphaNumericIsh(s) {
			return fmt.Errorf("capriccomp: bad -import-dirs entry %q", s)
		}
	}

	caps := limits.DefaultCaps()
	config := papyrus.Config{
		ImportDirectories:              cliflags.SplitList(*importDirsFlag),
		EnableDecompiledStructNameRefs: *decompStructFlag,
	}
	diagConfig := diag.Config{
		DisabledWarnings: parseWarningNumbers(*disableWarningsFlag),
		WarningsAsErrors: parseWarningNumbers(*warningsAsErrorsFlag),
	}
	sink := &diag.Sink{Config: diagConfig, Out: os.Stderr}

	args := flag.Args()
	if len(args) == 0 {
		return fmt.Errorf("capriccomp: no scripts given")
	}

	fsys := osFileSystem{}
	parser := newStubParser()
	for _, filename := range args {
		ctx := papyrus.NewContext(sink, caps, config, parser, fsys)
		src, ok, readErr := fsys.ReadFile(filename)
		if readErr != nil {
			return readErr
		}
		if !ok {
			return fmt.Errorf("capriccomp: cannot read %s", filename)
		}
		sc, parseErr := parser.Parse(filename, src)
		if parseErr != nil {
			return parseErr
		}
		ctx.ResolveScript(sc)
		sink.ExitIfErrors()
		file := ctx.Emit(sc)
		_ = file // serialization to .pex bytes is an external collaborator; wiring point for it.
	}
	return nil
}

func parseWarningNumbers(s string) map[int]bool {
	out := map[int]bool{}
	for _, part := range cliflags.SplitList(s) {
		n, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		out[n] = true
	}
	return out
}

// osFileSystem implements papyrus.FileSystem against the local disk.
type osFileSystem struct{}

func (osFileSystem) ReadFile(path string) ([]byte, bool, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

