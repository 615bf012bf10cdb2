package questions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerLifecycle(t *testing.T) {
	tracker := NewTracker(time.Minute)

	cand := tracker.Create("questions.csv", 2048)
	assert.NotEmpty(t, cand.ID)
	assert.Equal(t, StatusPending, cand.Status)
	assert.Zero(t, cand.Progress)

	tracker.SetReady(cand.ID)
	got, ok := tracker.Get(cand.ID)
	require.True(t, ok)
	assert.Equal(t, StatusReady, got.Status)

	tracker.SetUploading(cand.ID)
	got, _ = tracker.Get(cand.ID)
	assert.Equal(t, StatusUploading, got.Status)

	tracker.Complete(cand.ID, "Questions uploaded successfully")
	got, _ = tracker.Get(cand.ID)
	assert.Equal(t, StatusCompleted, got.Status)
	assert.Equal(t, 100, got.Progress)
	assert.Equal(t, "Questions uploaded successfully", got.Message)
}

func TestTrackerUploadingRequiresReady(t *testing.T) {
	tracker := NewTracker(time.Minute)

	cand := tracker.Create("questions.csv", 1)

	// Pending cannot jump straight to Uploading.
	tracker.SetUploading(cand.ID)
	got, _ := tracker.Get(cand.ID)
	assert.Equal(t, StatusPending, got.Status)

	tracker.SetReady(cand.ID)
	tracker.SetUploading(cand.ID)
	got, _ = tracker.Get(cand.ID)
	assert.Equal(t, StatusUploading, got.Status)
}

func TestTrackerProgressMonotonic(t *testing.T) {
	tracker := NewTracker(time.Minute)

	cand := tracker.Create("questions.csv", 1)
	tracker.SetReady(cand.ID)
	tracker.SetUploading(cand.ID)

	tracker.SetProgress(cand.ID, 40)
	tracker.SetProgress(cand.ID, 25) // late chunk report, must not regress
	got, _ := tracker.Get(cand.ID)
	assert.Equal(t, 40, got.Progress)

	tracker.SetProgress(cand.ID, 250)
	got, _ = tracker.Get(cand.ID)
	assert.Equal(t, 100, got.Progress)
}

func TestTrackerTerminalStatesStick(t *testing.T) {
	tracker := NewTracker(time.Minute)

	cand := tracker.Create("questions.csv", 1)
	tracker.Fail(cand.ID, "upload failed", []string{"missing columns: title"})

	tracker.SetReady(cand.ID)
	tracker.SetUploading(cand.ID)
	tracker.SetProgress(cand.ID, 90)

	got, ok := tracker.Get(cand.ID)
	require.True(t, ok)
	assert.Equal(t, StatusFailed, got.Status)
	assert.Zero(t, got.Progress)
	assert.Equal(t, []string{"missing columns: title"}, got.ValidationErrors)
}

func TestTrackerUnknownID(t *testing.T) {
	tracker := NewTracker(time.Minute)
	_, ok := tracker.Get("nope")
	assert.False(t, ok)
}
