package clean

import (
	"fmt"
	"os"
	"strings"
)

// ReadRuleFile reads whitespace-separated cleaning tokens from a file, the
// same shape accepted on the command line. A missing filename is not an
// error here; callers pass "" when the flag was not set.
func ReadRuleFile(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule file: %w", err)
	}
	return strings.Fields(string(data)), nil
}
