// Package otfilewatch allows the Optistream client to reread settings files automatically when they
// change. It should be used in conjunction with the otfiledata package. The two packages are separate so
// as to avoid bringing additional dependencies for users who do not need automatic reloading.
package otfilewatch

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
)

const retryDuration = time.Second

type fileWatcher struct {
	watcher  *fsnotify.Watcher
	loggers  ldlog.Loggers
	reload   func()
	paths    []string
	absPaths map[string]bool
}

// WatchFiles sets up a mechanism for the file settings source to reload its source files whenever one of
// them has been modified. Use it as follows:
//
//	config := otclient.Config{
//	    Settings: otfiledata.SettingsSource().
//	        FilePaths("./settings/tracking.yaml").
//	        Reloader(otfilewatch.WatchFiles),
//	}
func WatchFiles(paths []string, loggers ldlog.Loggers, reload func(), closeCh <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("unable to create file watcher: %w", err)
	}
	fw := &fileWatcher{
		watcher:  watcher,
		loggers:  loggers,
		reload:   reload,
		paths:    paths,
		absPaths: make(map[string]bool),
	}
	go fw.run(closeCh)
	return nil
}

func (fw *fileWatcher) run(closeCh <-chan struct{}) {
	retryCh := make(chan struct{}, 1)
	scheduleRetry := func() {
		time.AfterFunc(retryDuration, func() {
			select {
			case retryCh <- struct{}{}:
			default:
			}
		})
	}
	for {
		if err := fw.setupWatches(); err != nil {
			fw.loggers.Error(err)
			scheduleRetry()
		}

		// The reload happens after the watches are set up, so that a change made in between is not missed.
		// This means the files are read once more than necessary at startup.
		fw.reload()

		if quit := fw.waitForEvents(closeCh, retryCh); quit {
			return
		}
	}
}

func (fw *fileWatcher) setupWatches() error {
	for _, p := range fw.paths {
		absDirPath := filepath.Dir(p)
		realDirPath, err := filepath.EvalSymlinks(absDirPath)
		if err != nil {
			return fmt.Errorf(`unable to evaluate symlinks for "%s": %w`, absDirPath, err)
		}

		realPath := filepath.Join(realDirPath, filepath.Base(p))
		fw.absPaths[realPath] = true
		if err = fw.watcher.Add(realPath); err != nil {
			return fmt.Errorf(`unable to watch path "%s": %w`, realPath, err)
		}
		if err = fw.watcher.Add(realDirPath); err != nil {
			return fmt.Errorf(`unable to watch path "%s": %w`, realDirPath, err)
		}
	}
	return nil
}

func (fw *fileWatcher) waitForEvents(closeCh <-chan struct{}, retryCh <-chan struct{}) bool {
	for {
		select {
		case <-closeCh:
			if err := fw.watcher.Close(); err != nil {
				fw.loggers.Errorf("Error closing file watcher: %s", err)
			}
			return true
		case event := <-fw.watcher.Events:
			if !fw.absPaths[event.Name] {
				break
			}
			fw.consumeExtraEvents()
			return false
		case err := <-fw.watcher.Errors:
			fw.loggers.Errorf("File watcher error: %s", err)
		case <-retryCh:
			consumeExtraRetries(retryCh)
			return false
		}
	}
}

func (fw *fileWatcher) consumeExtraEvents() {
	for {
		select {
		case <-fw.watcher.Events:
		default:
			return
		}
	}
}

func consumeExtraRetries(retryCh <-chan struct{}) {
	for {
		select {
		case <-retryCh:
		default:
			return
		}
	}
}
