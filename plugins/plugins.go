package plugins

import (
	"fmt"
	"io"

	"github.com/Yamashou/gqlir/codegen"
	"github.com/Yamashou/gqlir/config"
	"github.com/Yamashou/gqlir/plugins/irdump"
)

// GenerateCode runs the output plugins over the resolved IR. w receives
// whatever a plugin writes when cfg.Stdout is set.
func GenerateCode(cfg *config.Config, result *codegen.Result, w io.Writer) error {
	// irdump
	irDump := irdump.New(cfg, result, w)
	if err := irDump.Generate(); err != nil {
		return fmt.Errorf("%s failed: %w", irDump.Name(), err)
	}

	return nil
}
