// Package aquac is the driver: it wires SymbolResolver and
// CodeGenerator together and produces the final pragma-prefixed
// program text.
package aquac

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/optio-labs/aqua-compiler/ast"
	"github.com/optio-labs/aqua-compiler/codegen"
	"github.com/optio-labs/aqua-compiler/resolve"
)

// Options configures a single Compile call. The zero value is valid:
// MaxScratch and PragmaVersion fall back to codegen's and this
// package's own defaults.
type Options struct {
	MaxScratch    int
	PragmaVersion int
}

// DefaultPragmaVersion is used when Options.PragmaVersion is left zero.
const DefaultPragmaVersion = codegen.DefaultPragmaVersion

// Compile resolves root, lowers it to target assembly, and returns
// the result prefixed with the version pragma. The first error from
// either stage aborts the compilation.
func Compile(opts Options, root *ast.Node) (string, error) {
	if opts.PragmaVersion == 0 {
		opts.PragmaVersion = DefaultPragmaVersion
	}

	global, err := resolve.Resolve(root)
	if err != nil {
		return "", err
	}
	log.Debug().Int("globals", global.NumSymbols()).Msg("aquac: resolve stage complete")

	emitter, err := codegen.Generate(root, codegen.Options{
		MaxScratch:    opts.MaxScratch,
		PragmaVersion: opts.PragmaVersion,
	})
	if err != nil {
		return "", err
	}

	pragma := fmt.Sprintf("#pragma version %d", opts.PragmaVersion)
	return pragma + "\r\n" + emitter.Output(), nil
}
