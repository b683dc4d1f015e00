package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	contractx "github.com/tanpawarit/vessel-deadline-agent/agent/contract"
)

// Commands share package-level flag state, so these tests run sequentially.

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func newMaerskServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Consumer-Key") != "cli-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/reference-data/vessels":
			fmt.Fprint(w, `[{"vesselIMONumber":"9839179"}]`)
		case "/shipment-deadlines":
			if r.URL.Query().Get("voyage") != "310W" {
				fmt.Fprint(w, `[]`)
				return
			}
			fmt.Fprint(w, `[{"shipmentDeadlines":{"terminalName":"APM Terminal","deadlines":[{"deadlineName":"VGM","deadlineLocal":"2024-05-01T12:00"}]}}]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestToolsCommand(t *testing.T) {
	out, err := execute(t, "tools")
	require.NoError(t, err)

	var tools []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &tools))
	require.Len(t, tools, 2)
	require.Equal(t, "get_vessel_info", tools[0].Name)
	require.Equal(t, "get_vessel_deadlines", tools[1].Name)
}

func TestVesselCommand(t *testing.T) {
	server := newMaerskServer(t)
	t.Setenv("MAERSK_BASE_URL", server.URL)
	t.Setenv("MAERSK_CONSUMER_KEY", "cli-key")

	out, err := execute(t, "vessel", "Maersk", "Edinburgh")
	require.NoError(t, err)
	require.Equal(t, "9839179\n", out)
}

func TestDeadlinesCommand(t *testing.T) {
	server := newMaerskServer(t)
	t.Setenv("MAERSK_BASE_URL", server.URL)
	t.Setenv("MAERSK_CONSUMER_KEY", "cli-key")

	out, err := execute(t, "deadlines", "--country", "NL", "--port", "Rotterdam", "--imo", "9839179", "--voyage", "310W")
	require.NoError(t, err)

	var report contractx.DeadlineReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Equal(t, contractx.DeadlineReport{
		Status: contractx.ReportSuccess,
		Report: "The vessel 9839179 is scheduled to arrive at APM Terminal with deadlines: VGM on 2024-05-01T12:00.",
	}, report)

	out, err = execute(t, "deadlines", "--country", "NL", "--port", "Rotterdam", "--imo", "9839179", "--voyage", "999X")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Equal(t, contractx.ReportError, report.Status)
	require.Equal(t, "No data found for the given parameters.", report.ErrorMessage)
}

func TestVesselCommandMissingConsumerKey(t *testing.T) {
	t.Setenv("MAERSK_CONSUMER_KEY", "")
	t.Setenv("CONSUMER_KEY", "")

	_, err := execute(t, "vessel", "Maersk Edinburgh")
	require.Error(t, err)
}
