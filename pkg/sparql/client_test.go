package sparql

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/NCATS-Tangerine/rhea-beacon/pkg/common/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResults = `{
  "head": {"vars": ["subjectId", "subjectName"]},
  "results": {"bindings": [
    {"subjectId": {"type": "literal", "value": "CHEBI:15377"}, "subjectName": {"type": "literal", "value": "H2O"}},
    {"subjectId": {"type": "uri", "value": "http://purl.uniprot.org/enzyme/1.1.1.1"}}
  ]}
}`

func TestClientRecords(t *testing.T) {
	var gotQuery, gotFormat, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		gotQuery = r.URL.Query().Get("query")
		gotFormat = r.URL.Query().Get("format")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", ResultsFormat)
		_, _ = w.Write([]byte(sampleResults))
	}))
	defer srv.Close()

	c := NewClient(Options{Endpoint: srv.URL})
	records, err := c.Records(context.Background(), "SELECT ?s WHERE { ?s ?p ?o }")
	require.NoError(t, err)

	assert.Equal(t, "SELECT ?s WHERE { ?s ?p ?o }", gotQuery)
	assert.Equal(t, ResultsFormat, gotFormat)
	assert.Equal(t, ResultsFormat, gotAccept)

	require.Len(t, records, 2)
	assert.Equal(t, "H2O", records[0].Value("subjectName"))
	assert.Equal(t, "uri", records[1]["subjectId"].Type)
	assert.Equal(t, "", records[1].Value("subjectName"))
}

func TestClientClientErrorIsUpstream(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "Virtuoso 37000 Error SP030: SPARQL compiler", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(Options{Endpoint: srv.URL, RetryMax: 3, RetryWaitMin: time.Millisecond})
	_, err := c.Records(context.Background(), "SELECT")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUpstream))
	assert.Contains(t, err.Error(), "SP030")
	// 4xx responses are not retried
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(sampleResults))
	}))
	defer srv.Close()

	c := NewClient(Options{Endpoint: srv.URL, RetryMax: 2, RetryWaitMin: time.Millisecond})
	records, err := c.Records(context.Background(), "SELECT")
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClientGivesUpAfterRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(Options{Endpoint: srv.URL, RetryMax: 1, RetryWaitMin: time.Millisecond})
	_, err := c.Records(context.Background(), "SELECT")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUpstream))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClientBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}))
	defer srv.Close()

	c := NewClient(Options{Endpoint: srv.URL})
	_, err := c.Records(context.Background(), "SELECT")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUpstream))
}
