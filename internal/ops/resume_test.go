package ops

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hpungsan/scout/internal/errors"
	"github.com/hpungsan/scout/internal/session"
)

func TestResume_ByID(t *testing.T) {
	rt := testRuntime(t)
	initOut, err := Init(rt, InitInput{Topic: "vector databases"})
	require.NoError(t, err)
	_, err = Archive(rt, ArchiveInput{})
	require.NoError(t, err)

	out, err := Resume(rt, ResumeInput{SessionID: initOut.Session.SessionID})
	require.NoError(t, err)
	require.Equal(t, session.StatusResumed, out.Session.Status)
	require.NotEmpty(t, out.Session.ResumedAt)

	s := rt.Local.ReadSession()
	require.Equal(t, initOut.Session.SessionID, s.SessionID)
	require.Equal(t, session.StatusResumed, s.Status)
	require.FileExists(t, rt.Local.ScratchpadPath())
}

func TestResume_BreadcrumbFallback(t *testing.T) {
	rt := testRuntime(t)
	initOut, err := Init(rt, InitInput{Topic: "vector databases"})
	require.NoError(t, err)
	_, err = Archive(rt, ArchiveInput{})
	require.NoError(t, err)

	// No id: the breadcrumb left by the archive picks the session.
	out, err := Resume(rt, ResumeInput{})
	require.NoError(t, err)
	require.Equal(t, initOut.Session.SessionID, out.Session.SessionID)
}

func TestResume_MostRecentFallback(t *testing.T) {
	rt := testRuntime(t)
	initOut, err := Init(rt, InitInput{Topic: "vector databases"})
	require.NoError(t, err)
	_, err = Archive(rt, ArchiveInput{})
	require.NoError(t, err)

	// No breadcrumb either: the most recent global session wins.
	require.NoError(t, os.RemoveAll(rt.Local.Root))

	out, err := Resume(rt, ResumeInput{})
	require.NoError(t, err)
	require.Equal(t, initOut.Session.SessionID, out.Session.SessionID)
}

func TestResume_RecomputesPaths(t *testing.T) {
	rt := testRuntime(t)
	initOut, err := Init(rt, InitInput{Topic: "vector databases"})
	require.NoError(t, err)
	_, err = Archive(rt, ArchiveInput{})
	require.NoError(t, err)

	// Damage the stored paths as a pull from another machine would.
	globalTier := rt.Global.SessionTier(initOut.Session.SessionID)
	s := globalTier.ReadSession()
	s.Paths.Local = "/somewhere/else"
	require.NoError(t, globalTier.WriteSession(s))

	out, err := Resume(rt, ResumeInput{SessionID: initOut.Session.SessionID})
	require.NoError(t, err)
	require.Equal(t, rt.Local.Root, out.Session.Paths.Local)
}

func TestResume_NotFound(t *testing.T) {
	rt := testRuntime(t)

	_, err := Resume(rt, ResumeInput{SessionID: "nope-20250101-000000-abcdef"})
	require.True(t, errors.Is(err, errors.ErrSessionNotFound))

	_, err = Resume(rt, ResumeInput{})
	require.True(t, errors.Is(err, errors.ErrSessionNotFound))
}

func TestList_OrdersAndLimits(t *testing.T) {
	rt := testRuntime(t)

	for _, topic := range []string{"first topic", "second topic", "third topic"} {
		_, err := Init(rt, InitInput{Topic: topic})
		require.NoError(t, err)
		_, err = Archive(rt, ArchiveInput{})
		require.NoError(t, err)
	}

	out, err := List(rt, ListInput{Limit: 2})
	require.NoError(t, err)
	require.Len(t, out.Sessions, 2)
	require.Equal(t, 3, out.Total)

	full, err := List(rt, ListInput{})
	require.NoError(t, err)
	require.Len(t, full.Sessions, 3)
	require.Equal(t, session.StatusArchived, full.Sessions[0].Status)
}
