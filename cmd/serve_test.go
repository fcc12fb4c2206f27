package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capacity-planner/capacity-planner/planner"
	"github.com/capacity-planner/capacity-planner/planner/memory"
	"github.com/capacity-planner/capacity-planner/planner/oracle"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()

	catalog := planner.NewCatalog(
		[]planner.PartCatalogEntry{{PartID: "P1001", MachineID: "M1", CycleTimeSeconds: 10, SetupTimeMinutes: 5}},
		[]planner.MachinePlan{{MachineID: "M1", MachineType: "CNC", UptimePercentage: 0.9}},
		[]planner.MachineAvailability{{MachineID: "M1", IsAvailable: true, CriticalityLevel: planner.CriticalityLow, RiskOfFailure: 0.05}},
		[]planner.OperatorProfile{{OperatorID: "O1", OperatorName: "Ana", PreferredMachineType: "CNC", EfficiencyScore: 1.0}},
	)
	store := memory.NewStore(filepath.Join(t.TempDir(), "memory.json"))
	p := planner.New(catalog, store, oracle.LowestTime{}, planner.NewWeightedCoin(planner.DefaultSuccessRate, 42))

	server := httptest.NewServer(newMux(p))
	t.Cleanup(server.Close)
	return server
}

func decodeBody(resp *http.Response, out any) error {
	return json.NewDecoder(resp.Body).Decode(out)
}

func TestServePlan_Feasible(t *testing.T) {
	server := testServer(t)

	resp, err := http.Post(server.URL+"/v1/plan", "application/json",
		strings.NewReader(`{"target_qty": 500, "deadline_hrs": 72, "part_id": "P1001"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result planner.PlanResult
	require.NoError(t, decodeBody(resp, &result))
	require.NotNil(t, result.Recommendation)
	assert.Equal(t, "M1", result.Recommendation.MachineID)
	assert.Equal(t, 1.64, result.Recommendation.FinalTime)
}

func TestServePlan_NoFeasiblePlanIsOK(t *testing.T) {
	server := testServer(t)

	resp, err := http.Post(server.URL+"/v1/plan", "application/json",
		strings.NewReader(`{"target_qty": 500, "deadline_hrs": 1, "part_id": "P1001"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	// no-feasible-plan is an outcome, not a server error
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result planner.PlanResult
	require.NoError(t, decodeBody(resp, &result))
	assert.Nil(t, result.Recommendation)
	assert.Equal(t, planner.NoFeasibleExplanation, result.Explanation)
}

func TestServePlan_InvalidRequest(t *testing.T) {
	server := testServer(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "target_qty=500"},
		{name: "zero quantity", body: `{"target_qty": 0, "deadline_hrs": 72, "part_id": "P1001"}`},
		{name: "empty part id", body: `{"target_qty": 500, "deadline_hrs": 72, "part_id": ""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(server.URL+"/v1/plan", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestServePlan_MethodNotAllowed(t *testing.T) {
	server := testServer(t)

	resp, err := http.Get(server.URL + "/v1/plan")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestServeHealth(t *testing.T) {
	server := testServer(t)

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
