package verify

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetsOrderAndContent(t *testing.T) {
	ts := Targets()
	require.Len(t, ts, 2)

	assert.Equal(t, "/history", ts[0].Route)
	assert.Equal(t, "পাল সাম্রাজ্যের প্রতিষ্ঠা", ts[0].Marker)
	assert.Equal(t, "history_page.png", ts[0].Screenshot)

	assert.Equal(t, "/literature", ts[1].Route)
	assert.Equal(t, "গীতাঞ্জলি", ts[1].Marker)
	assert.Equal(t, "literature_page.png", ts[1].Screenshot)

	// callers cannot mutate the built-in list
	ts[0].Route = "/changed"
	assert.Equal(t, "/history", Targets()[0].Route)
}

func TestTargetURL(t *testing.T) {
	tgt := Targets()[0]
	assert.Equal(t, "http://localhost:3000/history", tgt.URL("http://localhost:3000"))
	assert.Equal(t, "http://localhost:3000/history", tgt.URL("http://localhost:3000/"))
	assert.Equal(t, "https://example.test/app/history", tgt.URL("https://example.test/app"))
}

func TestTargetPaths(t *testing.T) {
	tgt := Targets()[1]
	assert.Equal(t, filepath.Join("verification", "literature_page.png"), tgt.ScreenshotPath("verification"))
	assert.Equal(t, filepath.Join("out", "literature_page.md"), tgt.DiagnosticPath("out"))
}

func TestSelect(t *testing.T) {
	all, err := Select(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// order follows the built-in list, not the argument order
	both, err := Select([]string{"Literature", " history "})
	require.NoError(t, err)
	require.Len(t, both, 2)
	assert.Equal(t, "history", both[0].Name)
	assert.Equal(t, "literature", both[1].Name)

	_, err = Select([]string{"technology"})
	assert.EqualError(t, err, "unknown target: technology")
}

func TestStepErrorMatching(t *testing.T) {
	cause := errors.New("net::ERR_NAME_NOT_RESOLVED")
	err := fmt.Errorf("wrapped: %w", stepError(Targets()[0], NavigationFailed, cause))

	assert.ErrorIs(t, err, ErrNavigation)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrSelectorTimeout)

	var se *StepError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "history", se.Target)
	assert.Equal(t, "navigation failed: net::ERR_NAME_NOT_RESOLVED", se.Error())
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "passed", Passed.String())
	assert.Equal(t, "selector_timeout", SelectorTimeout.String())
	assert.Equal(t, "outcome(42)", Outcome(42).String())

	text, err := ScreenshotFailed.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "screenshot_failed", string(text))
}
