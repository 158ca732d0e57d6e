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
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"d7y.io/explorer/pkg/types"
)

type logInitMeta struct {
	fileName             string
	setSugaredLoggerFunc func(*zap.SugaredLogger)
}

var (
	levels     []zap.AtomicLevel
	levelsLock sync.Mutex
	signalOnce sync.Once
)

// InitExplorer initializes the core and gin loggers of the explorer.
func InitExplorer(verbose, console bool, dir string, rotate LogRotateConfig) error {
	if console {
		return createConsoleLogger(verbose)
	}

	logDir := filepath.Join(dir, types.ExplorerName)

	var meta = []logInitMeta{
		{
			fileName:             CoreLogFileName,
			setSugaredLoggerFunc: SetCoreLogger,
		},
		{
			fileName:             GinLogFileName,
			setSugaredLoggerFunc: SetGinLogger,
		},
	}

	return createFileLogger(verbose, meta, logDir, rotate)
}

func createConsoleLogger(verbose bool) error {
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	log, err := config.Build(zap.AddCaller(), zap.AddStacktrace(zap.WarnLevel), zap.AddCallerSkip(1))
	if err != nil {
		return err
	}

	sugar := log.Sugar()
	SetCoreLogger(sugar)
	SetGinLogger(sugar)

	setLevels(config.Level)
	startLoggerSignalHandler()
	return nil
}

func createFileLogger(verbose bool, meta []logInitMeta, logDir string, rotate LogRotateConfig) error {
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return err
	}

	var atomicLevels []zap.AtomicLevel
	for _, m := range meta {
		log, level := CreateLogger(filepath.Join(logDir, m.fileName), verbose, rotate)
		m.setSugaredLoggerFunc(log.Sugar())
		atomicLevels = append(atomicLevels, level)
	}

	setLevels(atomicLevels...)
	startLoggerSignalHandler()
	return nil
}

func setLevels(l ...zap.AtomicLevel) {
	levelsLock.Lock()
	defer levelsLock.Unlock()
	levels = l
}

// startLoggerSignalHandler toggles debug level on SIGUSR1.
func startLoggerSignalHandler() {
	signalOnce.Do(func() {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, syscall.SIGUSR1)

		go func() {
			for range signals {
				levelsLock.Lock()
				for _, l := range levels {
					if l.Level() == zapcore.DebugLevel {
						l.SetLevel(zapcore.InfoLevel)
					} else {
						l.SetLevel(zapcore.DebugLevel)
					}
				}
				levelsLock.Unlock()
			}
		}()
	})
}
