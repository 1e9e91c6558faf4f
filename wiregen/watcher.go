/*
Copyright (c) Meta Platforms, Inc. and affiliates.
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at
    http://www.apache.org/licenses/LICENSE-2.0
Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package wiregen

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// settleDelay batches bursts of events from one editor save or rsync
// into a single regeneration.
const settleDelay = 500 * time.Millisecond

func filterEvent(op fsnotify.Op) bool {
	return op&fsnotify.Create != 0 ||
		op&fsnotify.Write != 0 ||
		op&fsnotify.Rename != 0 ||
		op&fsnotify.Chmod != 0
}

func prepareWatcher(watchPath string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("setting up fsnotify watcher: %w", err)
	}
	if err = watcher.Add(watchPath); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("adding %q to fsnotify watcher: %w", watchPath, err)
	}
	return watcher, nil
}

func watchAndRegen(watcher *fsnotify.Watcher, done <-chan struct{}, regen func()) error {
	settle := time.NewTimer(0)
	if !settle.Stop() {
		<-settle.C
	}
	for {
		select {
		case err := <-watcher.Errors:
			if err == nil {
				return nil
			}
			return fmt.Errorf("fsnotify watcher error: %w", err)
		case <-done:
			return nil
		case ev := <-watcher.Events:
			if filterEvent(ev.Op) {
				log.Debugf("Source change: %v", ev)
				settle.Reset(settleDelay)
			}
		case <-settle.C:
			regen()
		}
	}
}

// WatchAndRegen runs regen once, then again after every batch of
// changes under srcDir, until done is closed.
func WatchAndRegen(srcDir string, done <-chan struct{}, regen func()) error {
	watcher, err := prepareWatcher(srcDir)
	if err != nil {
		return err
	}
	defer watcher.Close()

	regen()
	return watchAndRegen(watcher, done, regen)
}
