package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersAreRegistered(t *testing.T) {
	before := testutil.ToFloat64(GamesStarted.WithLabelValues("easy"))
	GamesStarted.WithLabelValues("easy").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(GamesStarted.WithLabelValues("easy")))

	GamesFinished.WithLabelValues("easy", "won").Inc()
	ActiveSessions.Set(3)

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	res, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `minesweeper_games_started_total{difficulty="easy"}`)
	assert.Contains(t, string(body), `minesweeper_games_finished_total{difficulty="easy",outcome="won"}`)
	assert.Contains(t, string(body), "minesweeper_active_sessions 3")
}
