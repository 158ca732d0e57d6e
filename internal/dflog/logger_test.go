/*
 *     Copyright 2023 The Dragonfly Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestInitExplorer(t *testing.T) {
	tests := []struct {
		name    string
		console bool
		verbose bool
		expect  func(t *testing.T, dir string)
	}{
		{
			name: "file logger",
			expect: func(t *testing.T, dir string) {
				assert := assert.New(t)
				WithEvaluation("Iris", "KNN").Infof("accuracy %f", 0.9)
				content, err := os.ReadFile(filepath.Join(dir, "explorer", CoreLogFileName))
				assert.NoError(err)
				assert.Contains(string(content), `"dataset":"Iris"`)
				assert.Contains(string(content), "accuracy 0.900000")
				assert.False(CoreLogger.Desugar().Core().Enabled(zapcore.DebugLevel))
			},
		},
		{
			name:    "verbose file logger",
			verbose: true,
			expect: func(t *testing.T, dir string) {
				assert := assert.New(t)
				assert.True(CoreLogger.Desugar().Core().Enabled(zapcore.DebugLevel))
			},
		},
		{
			name:    "console logger",
			console: true,
			expect: func(t *testing.T, dir string) {
				assert := assert.New(t)
				assert.NoDirExists(filepath.Join(dir, "explorer"))
				assert.NotNil(GinLogger)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			assert.NoError(t, InitExplorer(tc.verbose, tc.console, dir, LogRotateConfig{}))
			tc.expect(t, dir)
		})
	}

	// Restore the console logger for the other tests.
	assert.NoError(t, createConsoleLogger(false))
}

func TestLogRotateConfig_withDefaults(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(LogRotateConfig{
		MaxSize:    defaultRotateMaxSize,
		MaxAge:     defaultRotateMaxAge,
		MaxBackups: defaultRotateMaxBackups,
	}, LogRotateConfig{}.withDefaults())
	assert.Equal(LogRotateConfig{MaxSize: 1, MaxAge: 2, MaxBackups: 3}, LogRotateConfig{MaxSize: 1, MaxAge: 2, MaxBackups: 3}.withDefaults())
}
