package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/yangkit/internal/app"
	"github.com/specialistvlad/yangkit/internal/hcl"
	"github.com/specialistvlad/yangkit/internal/registry"
	"github.com/stretchr/testify/require"
)

// ConfigFile is the file name RunIntegrationTest treats as the run
// configuration instead of a YANG source.
const ConfigFile = "yangkit.hcl"

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Output    string
	Err       error
	App       *app.App
}

// RunIntegrationTest writes files into a temporary directory and runs the
// whole application over it. A file named ConfigFile becomes the run
// configuration; every other file is a source. configure may adjust the
// application config before the app is created.
func RunIntegrationTest(t *testing.T, files map[string]string, configure func(*app.Config), modules ...registry.Module) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	sourceDir := filepath.Join(tmpDir, "yang")
	require.NoError(t, os.Mkdir(sourceDir, 0755))

	appConfig := &app.Config{
		Paths:     []string{sourceDir},
		Output:    app.OutputText,
		LogLevel:  "debug",
		LogFormat: "text",
	}
	for name, content := range files {
		filePath := filepath.Join(sourceDir, name)
		if name == ConfigFile {
			filePath = filepath.Join(tmpDir, name)
			appConfig.ConfigPath = filePath
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}
	if configure != nil {
		configure(appConfig)
	}

	logBuffer := &SafeBuffer{}
	outBuffer := &SafeBuffer{}
	t.Cleanup(func() {
		if os.Getenv("YANGKIT_TEST_LOGS") == "1" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(outBuffer, logBuffer, appConfig, hcl.NewLoader(), modules...)
	}()
	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	runErr := testApp.Run(context.Background())
	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Output:    outBuffer.String(),
		Err:       runErr,
		App:       testApp,
	}
}
