package otfiledata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"gopkg.in/ghodss/yaml.v1"

	"github.com/optistream/go-tracking-sdk/subsystems"
)

type fileSettingsSource struct {
	absFilePaths    []string
	reloaderFactory ReloaderFactory
	loggers         ldlog.Loggers
	sink            subsystems.SettingsSink
	lock            sync.Mutex
	closeOnce       sync.Once
	closeReloaderCh chan struct{}
}

type fileData struct {
	DispatchIntervalSeconds *float64 `json:"dispatchIntervalSeconds"`
}

type settings struct {
	dispatchInterval *time.Duration
}

func newFileSettingsSourceImpl(
	context subsystems.ClientContext,
	filePaths []string,
	reloaderFactory ReloaderFactory,
) (subsystems.SettingsSource, error) {
	abs, err := absFilePaths(filePaths)
	if err != nil {
		// COVERAGE: there's no reliable cross-platform way to simulate an invalid path in unit tests
		return nil, err
	}

	fs := &fileSettingsSource{
		absFilePaths:    abs,
		reloaderFactory: reloaderFactory,
		loggers:         context.GetLogging().Loggers,
	}
	fs.loggers.SetPrefix("FileSettingsSource:")
	return fs, nil
}

func (fs *fileSettingsSource) Start(sink subsystems.SettingsSink) {
	fs.lock.Lock()
	fs.sink = sink
	fs.lock.Unlock()

	fs.reload()

	if fs.reloaderFactory == nil {
		return
	}
	fs.closeReloaderCh = make(chan struct{})
	err := fs.reloaderFactory(fs.absFilePaths, fs.loggers, fs.reload, fs.closeReloaderCh)
	if err != nil {
		fs.loggers.Errorf("Unable to start reloader: %s", err)
	}
}

// reload rereads all of the configured files and applies the settings they contain. If any file
// cannot be loaded or parsed, nothing is applied.
func (fs *fileSettingsSource) reload() {
	filesData := make([]fileData, 0, len(fs.absFilePaths))
	for _, path := range fs.absFilePaths {
		data, err := readFile(path)
		if err != nil {
			fs.loggers.Errorf("Unable to load settings: %s [%s]", err, path)
			return
		}
		filesData = append(filesData, data)
	}
	merged, err := mergeFileData(filesData...)
	if err != nil {
		fs.loggers.Error(err)
		return
	}

	fs.lock.Lock()
	sink := fs.sink
	fs.lock.Unlock()
	if sink == nil {
		return
	}
	if merged.dispatchInterval != nil {
		fs.loggers.Infof("Applying dispatch interval of %s", *merged.dispatchInterval)
		sink.SetDispatchInterval(*merged.dispatchInterval)
	}
}

func absFilePaths(paths []string) ([]string, error) {
	absPaths := make([]string, 0, len(paths))
	for _, p := range paths {
		absPath, err := filepath.Abs(p)
		if err != nil {
			// COVERAGE: there's no reliable cross-platform way to simulate an invalid path in unit tests
			return nil, fmt.Errorf("unable to determine absolute path for '%s'", p)
		}
		absPaths = append(absPaths, absPath)
	}
	return absPaths, nil
}

func readFile(path string) (fileData, error) {
	var data fileData
	rawData, err := os.ReadFile(path) // nolint:gosec // G304: ok to read file into variable
	if err != nil {
		return data, fmt.Errorf("unable to read file: %s", err)
	}
	if detectJSON(rawData) {
		err = json.Unmarshal(rawData, &data)
	} else {
		err = yaml.Unmarshal(rawData, &data)
	}
	if err != nil {
		err = fmt.Errorf("error parsing file: %s", err)
	}
	return data, err
}

func detectJSON(rawData []byte) bool {
	// A valid JSON file for our purposes must be an object, i.e. it must start with '{'
	return strings.HasPrefix(strings.TrimLeftFunc(string(rawData), unicode.IsSpace), "{")
}

func mergeFileData(allFileData ...fileData) (settings, error) {
	var ret settings
	for _, d := range allFileData {
		if d.DispatchIntervalSeconds == nil {
			continue
		}
		if ret.dispatchInterval != nil {
			return settings{}, fmt.Errorf("dispatchIntervalSeconds is specified by multiple files")
		}
		interval := time.Duration(*d.DispatchIntervalSeconds * float64(time.Second))
		ret.dispatchInterval = &interval
	}
	return ret, nil
}

// Close is called automatically when the client is closed.
func (fs *fileSettingsSource) Close() error {
	fs.closeOnce.Do(func() {
		if fs.closeReloaderCh != nil {
			close(fs.closeReloaderCh)
		}
	})
	return nil
}
