package workflows

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/PolarWolf314/agentg/internal/audit"
	kerrors "github.com/PolarWolf314/agentg/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAuditLog(t *testing.T, rt *Runtime, lines ...string) {
	t.Helper()
	require.NoError(t, os.WriteFile(rt.Config.Paths.AuditLog, []byte(strings.Join(lines, "\n")+"\n"), 0600))
}

func TestLog_Filters(t *testing.T) {
	ctx := context.Background()
	rt := newTestRuntime(t)
	writeAuditLog(t, rt,
		`{"ts":"2026-03-01T10:00:00.000000Z","op":"session-opened","profile":"ana"}`,
		`{"ts":"2026-03-01T10:01:00.000000Z","op":"profile-saved","profile":"ana","turns":2}`,
		`{"ts":"2026-03-02T09:00:00.000000Z","op":"profile-saved","profile":"ben","turns":4}`,
		`{"ts":"2026-03-03T09:00:00.000000Z","op":"page-added","files":["Blue___Page001.txt.enc"]}`,
	)

	all, err := Log(ctx, rt, LogOptions{})
	require.NoError(t, err)
	assert.Equal(t, 4, all.TotalEntriesBeforeFilter)
	assert.Len(t, all.Entries, 4)

	byProfile, err := Log(ctx, rt, LogOptions{Profile: "ana"})
	require.NoError(t, err)
	assert.Len(t, byProfile.Entries, 2)

	byOp, err := Log(ctx, rt, LogOptions{Operations: "profile-saved, PAGE-ADDED"})
	require.NoError(t, err)
	assert.Len(t, byOp.Entries, 3)

	window, err := Log(ctx, rt, LogOptions{Since: "2026-03-02", Until: "2026-03-02"})
	require.NoError(t, err)
	require.Len(t, window.Entries, 1)
	assert.Equal(t, "ben", window.Entries[0].Profile)

	latest, err := Log(ctx, rt, LogOptions{Limit: 2, Reverse: true})
	require.NoError(t, err)
	require.Len(t, latest.Entries, 2)
	assert.Equal(t, audit.OpPageAdded, latest.Entries[0].Operation)
	assert.Equal(t, "ben", latest.Entries[1].Profile)
}

func TestLog_MissingLog(t *testing.T) {
	result, err := Log(context.Background(), newTestRuntime(t), LogOptions{})
	require.NoError(t, err)
	assert.Empty(t, result.Entries)
}

func TestLog_InvalidDate(t *testing.T) {
	rt := newTestRuntime(t)

	_, err := Log(context.Background(), rt, LogOptions{Since: "03/01/2026"})
	assert.ErrorIs(t, err, kerrors.ErrInvalidDateFormat)

	_, err = Log(context.Background(), rt, LogOptions{Until: "yesterday"})
	assert.ErrorIs(t, err, kerrors.ErrInvalidDateFormat)
}
