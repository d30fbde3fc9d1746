package display

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkers(t *testing.T) {
	emoji := &TerminalReporter{opts: Options{Emoji: true}}
	assert.Equal(t, "✔", emoji.marker(true))
	assert.Equal(t, "❎", emoji.marker(false))

	plain := &TerminalReporter{}
	assert.Equal(t, "ok", plain.marker(true))
	assert.Equal(t, "FAIL", plain.marker(false))
}

func TestStepDonePlainOutput(t *testing.T) {
	var buf bytes.Buffer
	r := &TerminalReporter{out: &buf}

	r.StepStart("gg", "pull")
	r.StepDone("gg", "pull", true)
	r.StepDone("gg", "push", false)

	assert.Equal(t, "ok gg: pull\nFAIL gg: push\n", buf.String())
}

func TestQuietSuppressesOutput(t *testing.T) {
	var buf bytes.Buffer
	r := &TerminalReporter{opts: Options{Quiet: true}, out: &buf, tty: true}

	r.StepStart("gg", "pull")
	r.StepDone("gg", "pull", true)

	assert.Empty(t, buf.String())
	assert.Nil(t, r.spinner)
}
