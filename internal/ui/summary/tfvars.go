package summary

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/IBM/vmware-l4-automation/internal/reconcile"
)

// TFVars formats variables as Terraform assignments, one per line, with
// values quoted. Secure values are included.
func TFVars(vars []reconcile.Variable) []byte {
	var b strings.Builder
	for _, v := range vars {
		fmt.Fprintf(&b, "%s = %s\n", v.Name, strconv.Quote(v.Value))
	}
	return []byte(b.String())
}

// WriteTFVars writes vars to path readable only by the owner.
func WriteTFVars(path string, vars []reconcile.Variable) error {
	if err := os.WriteFile(path, TFVars(vars), 0o600); err != nil {
		return fmt.Errorf("failed to write tfvars file: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("failed to restrict tfvars file: %w", err)
	}
	return nil
}
