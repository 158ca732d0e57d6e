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

package dfpath

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		options func(dir string) []Option
		expect  func(t *testing.T, dir string, d Dfpath, err error)
	}{
		{
			name: "new dfpath failed",
			options: func(dir string) []Option {
				return []Option{WithWorkHome(dir), WithLogDir(""), WithDataDir(filepath.Join(dir, "data"))}
			},
			expect: func(t *testing.T, dir string, d Dfpath, err error) {
				assert := assert.New(t)
				assert.Error(err)
				assert.Nil(d)
			},
		},
		{
			name: "new dfpath by workHome",
			options: func(dir string) []Option {
				return []Option{WithWorkHome(dir), WithLogDir(filepath.Join(dir, "logs")), WithDataDir(filepath.Join(dir, "data"))}
			},
			expect: func(t *testing.T, dir string, d Dfpath, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(dir, d.WorkHome())
				assert.Equal(filepath.Join(dir, "logs"), d.LogDir())
				assert.Equal(filepath.Join(dir, "data"), d.DataDir())
				assert.Equal(filepath.Join(dir, "data", "datasets"), d.DatasetDir())
				assert.DirExists(d.LogDir())
				assert.DirExists(d.DataDir())
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cache.Once = sync.Once{}
			cache.d = nil
			cache.err = &multierror.Error{}

			dir := t.TempDir()
			d, err := New(tc.options(dir)...)
			tc.expect(t, dir, d, err)
		})
	}
}
