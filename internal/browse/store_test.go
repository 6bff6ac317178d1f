package browse

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	mt := httpmock.NewMockTransport()
	registerVenues(mt, &queryLog{}, nil)
	return NewStore(testDeps(t, mt))
}

func TestStore_CreateGetDelete(t *testing.T) {
	st := newTestStore(t)
	defer st.CloseAll()

	s := st.Create()
	_, err := uuid.Parse(s.ID)
	assert.NoError(t, err, "session ids are uuids")
	assert.Equal(t, 1, st.Len())

	got, err := st.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, st.Delete(s.ID))
	assert.Zero(t, st.Len())

	_, err = st.Get(s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, st.Delete(s.ID), ErrSessionNotFound)
}

func TestStore_SweepIdle(t *testing.T) {
	st := newTestStore(t)
	defer st.CloseAll()

	idle := st.Create()
	idle.lastSeen.Store(time.Now().Add(-time.Hour).UnixNano())
	active := st.Create()

	assert.Equal(t, 1, st.SweepIdle(30*time.Minute))
	assert.Equal(t, 1, st.Len())

	_, err := st.Get(idle.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = st.Get(active.ID)
	assert.NoError(t, err)
}

func TestStore_CloseAll(t *testing.T) {
	st := newTestStore(t)

	st.Create()
	st.Create()
	st.CloseAll()

	assert.Zero(t, st.Len())
}
