package wizard

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/IBM/vmware-l4-automation/internal/config"
)

// confirmOverwrite is swappable in tests.
var confirmOverwrite = defaultConfirmOverwrite

// WriteSettings writes s as YAML to outputPath. The API key is never
// written.
func WriteSettings(s *config.Settings, outputPath string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	content := generateHeader(outputPath) + "\n" + string(data)

	if err := os.WriteFile(outputPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}

// generateHeader creates the YAML file header comment.
func generateHeader(outputPath string) string {
	return fmt.Sprintf(`# labctl settings
# Generated by: labctl init
# Generated at: %s
#
# Required environment variable:
#   IBMCLOUD_API_KEY - Your IBM Cloud API key
#
# Usage:
#   export IBMCLOUD_API_KEY=<your-key>
#   labctl apply --config %s
`, time.Now().Format(time.RFC3339), outputPath)
}

// FileExists checks if a file exists at the given path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ConfirmOverwrite prompts the user to confirm overwriting an existing file.
func ConfirmOverwrite(path string) (bool, error) {
	return confirmOverwrite(path)
}

func defaultConfirmOverwrite(path string) (bool, error) {
	fmt.Printf("\nFile already exists: %s\n", path)
	fmt.Print("Overwrite? (y/n): ")

	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		return false, err
	}

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes", nil
}
