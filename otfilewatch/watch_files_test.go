package otfilewatch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	th "github.com/launchdarkly/go-test-helpers/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optistream/go-tracking-sdk/internal/sharedtest"
	"github.com/optistream/go-tracking-sdk/internal/sharedtest/mocks"
	"github.com/optistream/go-tracking-sdk/otfiledata"
)

func requireIntervalWithinDuration(t *testing.T, sink *mocks.CapturingSettingsSink, expected time.Duration) {
	deadline := time.After(time.Second * 10)
	for {
		select {
		case interval := <-sink.IntervalsCh:
			if interval == expected {
				return
			}
		case <-deadline:
			require.FailNowf(t, "Did not see expected change", "expected interval %s", expected)
		}
	}
}

func TestWatchedFileIsReloadedWhenChanged(t *testing.T) {
	sharedtest.WithTempFileContaining([]byte(`{"dispatchIntervalSeconds": 1}`), func(filename string) {
		source, err := otfiledata.SettingsSource().FilePaths(filename).Reloader(WatchFiles).
			Build(sharedtest.NewSimpleTestContext(""))
		require.NoError(t, err)
		defer source.Close()

		sink := mocks.NewCapturingSettingsSink()
		source.Start(sink)
		assert.Equal(t, time.Second, th.RequireValue(t, sink.IntervalsCh, time.Second))

		// Give the watcher time to set up before changing the file
		time.Sleep(time.Millisecond * 200)
		sharedtest.ReplaceFileContents(filename, []byte(`{"dispatchIntervalSeconds": 7}`))

		requireIntervalWithinDuration(t, sink, time.Second*7)
	})
}

func TestWatchedFileIsLoadedWhenCreated(t *testing.T) {
	dir, err := os.MkdirTemp("", "watch-test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	filename := filepath.Join(dir, "settings.yaml")

	source, err := otfiledata.SettingsSource().FilePaths(filename).Reloader(WatchFiles).
		Build(sharedtest.NewSimpleTestContext(""))
	require.NoError(t, err)
	defer source.Close()

	sink := mocks.NewCapturingSettingsSink()
	source.Start(sink)
	th.AssertNoMoreValues(t, sink.IntervalsCh, time.Millisecond*200)

	sharedtest.ReplaceFileContents(filename, []byte("dispatchIntervalSeconds: 4\n"))

	requireIntervalWithinDuration(t, sink, time.Second*4)
}

func TestWatcherStopsWhenClosed(t *testing.T) {
	sharedtest.WithTempFileContaining([]byte(`{"dispatchIntervalSeconds": 1}`), func(filename string) {
		source, err := otfiledata.SettingsSource().FilePaths(filename).Reloader(WatchFiles).
			Build(sharedtest.NewSimpleTestContext(""))
		require.NoError(t, err)

		sink := mocks.NewCapturingSettingsSink()
		source.Start(sink)
		time.Sleep(time.Millisecond * 200)
		require.NoError(t, source.Close())
		time.Sleep(time.Millisecond * 100)
		for len(sink.IntervalsCh) > 0 {
			<-sink.IntervalsCh
		}

		sharedtest.ReplaceFileContents(filename, []byte(`{"dispatchIntervalSeconds": 9}`))
		th.AssertNoMoreValues(t, sink.IntervalsCh, time.Millisecond*500)
	})
}
