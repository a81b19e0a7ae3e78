package rbook

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radiobridge/radiobridge/pkg/config"
)

const exportCSV = `Frequency,Offset,Tone,Call Sign,Location,County,State,Use,Operational Status
146.520,+0.600,100.0,W6ABC,San Jose,Santa Clara,CA,OPEN,On-air
147.000,-0.600,D023N,K6XYZ,Palo Alto,Santa Clara,CA,OPEN,On-air
146.520,+0.600,100.0,W6ABC,San Jose,Santa Clara,CA,OPEN,On-air
`

func searchHTML(rows string) string {
	return fmt.Sprintf(`<html><body>
<table class="w3-table">
<tr><th>Frequency</th><th>Offset</th><th>Tone Up / Down</th><th>Call Sign</th><th>Location</th><th>Use</th><th>Operational Status</th></tr>
%s
</table>
</body></html>`, rows)
}

func searchRow(id int, freq, call, loc string) string {
	return fmt.Sprintf(`<tr><td><a href="details.php?state_id=06&ID=%d">%s</a></td><td>+0.600</td><td>100.0 / 100.0</td><td>%s</td><td>%s</td><td>OPEN</td><td>On-air</td></tr>`, id, freq, call, loc)
}

func testScope() Scope {
	return Scope{
		State: "CA",
		Pacing: config.PacingConfig{
			Interval: time.Millisecond,
		},
		Retry: config.RetryConfig{
			MaxTries:       3,
			InitialBackoff: time.Millisecond,
			MaxElapsed:     2 * time.Second,
		},
		Timeout: 5 * time.Second,
	}
}

func TestAcquirePrimarySuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repeaters/downloads/index.php" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		fmt.Fprint(w, exportCSV)
	}))
	defer srv.Close()

	result, err := Acquire(context.Background(), testScope(), WithBaseURL(srv.URL))
	require.NoError(t, err)

	assert.Equal(t, ProvenancePrimary, result.Provenance)
	// The duplicate W6ABC row collapses under the natural key.
	require.Len(t, result.Records, 2)
	assert.Equal(t, "146.520000", result.Records[0].Frequency)
	assert.Equal(t, "W6ABC", result.Records[0].Callsign)
	assert.Equal(t, "K6XYZ", result.Records[1].Callsign)
	assert.Equal(t, "+0.600000", result.Records[0].Offset)
	assert.Equal(t, "100.0", result.Records[0].Tone)
	assert.Equal(t, "D023N", result.Records[1].Tone)
	assert.NotEmpty(t, result.SessionID)
}

func TestAcquireFallbackOnSchemaDrift(t *testing.T) {
	var exportHits, searchHits atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/repeaters/downloads/index.php", func(w http.ResponseWriter, r *http.Request) {
		exportHits.Add(1)
		// Export endpoint answers, but with a drifted payload.
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html>maintenance</html>")
	})
	mux.HandleFunc("/repeaters/location_search.php", func(w http.ResponseWriter, r *http.Request) {
		searchHits.Add(1)
		fmt.Fprint(w, searchHTML(
			searchRow(1, "146.520", "W6ABC", "San Jose")+
				searchRow(2, "147.000", "K6XYZ", "Palo Alto"),
		))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	result, err := Acquire(context.Background(), testScope(), WithBaseURL(srv.URL))
	require.NoError(t, err)

	// Drift is not retried within the strategy: one export attempt,
	// exactly one fallback attempt.
	assert.Equal(t, int32(1), exportHits.Load())
	assert.Equal(t, int32(1), searchHits.Load())

	assert.Equal(t, ProvenanceFallback, result.Provenance)
	require.Len(t, result.Records, 2)
	for _, rec := range result.Records {
		assert.Equal(t, ProvenanceFallback, rec.Provenance)
	}
	require.Len(t, result.Attempts, 1)
	assert.ErrorIs(t, result.Attempts[0].Err, ErrSchemaDrift)
}

func TestAcquireFailsWhenAllStrategiesExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := Acquire(context.Background(), testScope(), WithBaseURL(srv.URL))
	require.Error(t, err)

	var acqErr *AcquisitionError
	require.True(t, errors.As(err, &acqErr))
	assert.Len(t, acqErr.Attempts, 2)
	assert.Equal(t, ProvenancePrimary, acqErr.Attempts[0].Strategy)
	assert.Equal(t, ProvenanceFallback, acqErr.Attempts[1].Strategy)
}

func TestAcquireRetriesTransientFaults(t *testing.T) {
	var exportHits atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repeaters/downloads/index.php" {
			http.NotFound(w, r)
			return
		}
		if exportHits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		fmt.Fprint(w, exportCSV)
	}))
	defer srv.Close()

	result, err := Acquire(context.Background(), testScope(), WithBaseURL(srv.URL))
	require.NoError(t, err)

	assert.Equal(t, int32(3), exportHits.Load())
	assert.Equal(t, ProvenancePrimary, result.Provenance)
	assert.Empty(t, result.Attempts)
}

func TestAcquireBandFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		fmt.Fprint(w, `Frequency,Offset,Tone,Call Sign,Location
146.520,+0.600,100.0,W6ABC,San Jose
446.000,-5.000,123.0,K6UHF,San Jose
1296.100,-20.000,,N6SHF,San Jose
`)
	}))
	defer srv.Close()

	scope := testScope()
	scope.Bands = []string{"2m", "70cm"}

	result, err := Acquire(context.Background(), scope, WithBaseURL(srv.URL))
	require.NoError(t, err)

	require.Len(t, result.Records, 2)
	assert.Equal(t, "W6ABC", result.Records[0].Callsign)
	assert.Equal(t, "K6UHF", result.Records[1].Callsign)
}

func TestAcquireDropsUnparseableFrequency(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		fmt.Fprint(w, `Frequency,Offset,Tone,Call Sign,Location
146.520,+0.600,100.0,W6ABC,San Jose
see notes,+0.600,100.0,K6BAD,San Jose
`)
	}))
	defer srv.Close()

	result, err := Acquire(context.Background(), testScope(), WithBaseURL(srv.URL))
	require.NoError(t, err)

	require.Len(t, result.Records, 1)
	assert.Equal(t, 1, result.Dropped)
}

func TestAcquireScopeValidation(t *testing.T) {
	_, err := Acquire(context.Background(), Scope{})
	assert.ErrorContains(t, err, "state is required")

	_, err = Acquire(context.Background(), Scope{State: "CA", County: "Santa Clara", City: "San Jose"})
	assert.ErrorContains(t, err, "mutually exclusive")

	_, err = Acquire(context.Background(), Scope{State: "CA", Bands: []string{"13cm"}})
	assert.ErrorContains(t, err, "unsupported band")
}

func TestDetailPassPartialFailure(t *testing.T) {
	const detailBody = `<html><body>
Repeater ID: %d
Color Code: 1
Sponsor: Test Club
Grid Square: CM87xj
</body></html>`

	mux := http.NewServeMux()
	mux.HandleFunc("/repeaters/downloads/index.php", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/repeaters/location_search.php", func(w http.ResponseWriter, r *http.Request) {
		var rows strings.Builder
		for i := 1; i <= 5; i++ {
			rows.WriteString(searchRow(i, fmt.Sprintf("146.5%d0", i), fmt.Sprintf("W6TST%d", i), "San Jose"))
		}
		fmt.Fprint(w, searchHTML(rows.String()))
	})
	mux.HandleFunc("/repeaters/details.php", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("ID")
		// Records 2 and 4 fail their detail fetch.
		if id == "2" || id == "4" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, detailBody, 100)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	scope := testScope()
	scope.Detail = true

	result, err := Acquire(context.Background(), scope, WithBaseURL(srv.URL))
	require.NoError(t, err)

	// Per-record failures degrade the records, never the session.
	require.Len(t, result.Records, 5)
	assert.Equal(t, 2, result.PartialFailures())

	var complete, partial int
	for _, rec := range result.Records {
		switch rec.DetailState {
		case DetailComplete:
			complete++
			assert.Equal(t, "1", rec.Detail["color_code"])
			assert.Equal(t, "CM87xj", rec.Detail["grid_square"])
		case DetailPartialFailure:
			partial++
			assert.NotEmpty(t, rec.DetailError)
			// Baseline fields survive the failed enrichment.
			assert.NotEmpty(t, rec.Frequency)
			assert.NotEmpty(t, rec.Callsign)
		}
	}
	assert.Equal(t, 3, complete)
	assert.Equal(t, 2, partial)
}

func TestDetailPassFromPrimaryHarvestsLinks(t *testing.T) {
	var searchHits atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/repeaters/downloads/index.php", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		fmt.Fprint(w, `Frequency,Offset,Tone,Call Sign,Location
146.510,+0.600,100.0,W6TST1,San Jose
`)
	})
	mux.HandleFunc("/repeaters/location_search.php", func(w http.ResponseWriter, r *http.Request) {
		searchHits.Add(1)
		fmt.Fprint(w, searchHTML(searchRow(1, "146.510", "W6TST1", "San Jose")))
	})
	mux.HandleFunc("/repeaters/details.php", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>Repeater ID: 1\nColor Code: 3\n</body></html>")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	scope := testScope()
	scope.Detail = true

	result, err := Acquire(context.Background(), scope, WithBaseURL(srv.URL))
	require.NoError(t, err)

	// Primary records carry no links; one structural request harvests them.
	assert.Equal(t, int32(1), searchHits.Load())
	assert.Equal(t, ProvenancePrimary, result.Provenance)
	require.Len(t, result.Records, 1)
	assert.Equal(t, DetailComplete, result.Records[0].DetailState)
	assert.Equal(t, "3", result.Records[0].Detail["color_code"])
}

func TestDetailPassAbortMarksRemaining(t *testing.T) {
	scope := testScope()
	client := NewClient(&scope)

	records := []Record{
		{Callsign: "W6DONE", DetailState: DetailComplete, Detail: map[string]string{"color_code": "1"}, detailURL: "https://example.com/repeaters/details.php?ID=1"},
		{Callsign: "W6TWO", detailURL: "https://example.com/repeaters/details.php?ID=2"},
		{Callsign: "W6THREE", detailURL: "https://example.com/repeaters/details.php?ID=3"},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records = client.detailPass(ctx, &scope, records)

	// Already-complete records are untouched; the rest carry the
	// aborted marker without any request being issued.
	require.Len(t, records, 3)
	assert.Equal(t, DetailComplete, records[0].DetailState)
	assert.Equal(t, "1", records[0].Detail["color_code"])
	for _, rec := range records[1:] {
		assert.Equal(t, DetailPartialFailure, rec.DetailState)
		assert.Equal(t, ErrSessionAborted.Error(), rec.DetailError)
	}
}
