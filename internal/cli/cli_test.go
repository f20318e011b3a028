package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Simplici0/cleanbid/internal/config"
	"github.com/Simplici0/cleanbid/internal/estimate"
	"github.com/Simplici0/cleanbid/internal/pricing"
	"github.com/Simplici0/cleanbid/internal/scope"
	"github.com/Simplici0/cleanbid/internal/workload"
)

const officeAreas = `areas:
  - id: a1
    name: Open Office
    floor_type: CARPET
    square_footage: 10000
    quantity: 1
    tasks:
      - task_code: VACUUM
        frequency_code: DAILY
`

const officeTerms = `schedule:
  days_per_week: 5
  visits_per_day: 1
  hours_per_shift: 8
labor_rates:
  cleaner_rate: 15
overhead:
  monthly_overhead_allocated: 100
pricing_strategy:
  method: COST_PLUS
  cost_plus_pct: 30
`

const officeYAML = officeAreas + officeTerms

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	chdirForTest(t, t.TempDir())

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCalcText(t *testing.T) {
	path := writeFile(t, "office.yaml", officeYAML)

	out, err := run(t, "calc", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Weekly minutes:      600.0")
	assert.Contains(t, out, "COST_PLUS")
}

func TestCalcJSON(t *testing.T) {
	path := writeFile(t, "office.yaml", officeYAML)

	out, err := run(t, "calc", path, "--format", "json")
	require.NoError(t, err)

	var est estimate.Estimate
	require.NoError(t, json.Unmarshal([]byte(out), &est))
	assert.InDelta(t, 600, est.Workload.WeeklyMinutes, 1e-9)
	assert.Equal(t, 1, est.Workload.CleanersNeeded)
}

func TestCalcRejectsBadSnapshots(t *testing.T) {
	tests := map[string]string{
		"unknown field":  officeYAML + "colour: blue\n",
		"missing markup": strings.Replace(officeYAML, "  cost_plus_pct: 30\n", "", 1),
		"no areas":       "areas: []\n" + officeTerms,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, "snap.yaml", content)
			_, err := run(t, "calc", path)
			assert.Error(t, err)
		})
	}
}

func TestCalcReadsJSONSnapshots(t *testing.T) {
	var snap scope.Snapshot
	require.NoError(t, yaml.Unmarshal([]byte(officeYAML), &snap))
	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	path := writeFile(t, "office.json", string(raw))

	out, err := run(t, "calc", path, "-f", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"weekly_minutes": 600`)
}

func TestExpress(t *testing.T) {
	out, err := run(t, "express", "--building-type", "office", "--sqft", "20000", "--occupancy", "80", "--template", scope.TemplateStandardJanitorial)
	require.NoError(t, err)

	var doc struct {
		Areas []scope.Area `yaml:"areas"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	require.NotEmpty(t, doc.Areas)

	var total float64
	for _, a := range doc.Areas {
		total += a.SquareFootage
		assert.Equal(t, "OFFICE", a.BuildingType)
		assert.NotEmpty(t, a.Tasks, "area %s", a.Name)
	}
	assert.InDelta(t, 20000, total, 1e-9)

	_, err = run(t, "express", "--building-type", "CASTLE", "--sqft", "100")
	assert.Error(t, err)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchRepricesOnSave(t *testing.T) {
	path := writeFile(t, "office.yaml", officeYAML)

	// Timer goroutines may still log after the test returns.
	log := zap.NewNop()
	a := &app{
		cfg:  config.Config{Preview: config.PreviewConfig{Debounce: 10 * time.Millisecond}},
		log:  log,
		calc: estimate.NewService(workload.DefaultPolicy(), pricing.DefaultPolicy(), log),
	}

	ctx, cancel := context.WithCancel(context.Background())
	out := &syncBuffer{}
	done := make(chan error, 1)
	go func() { done <- a.watch(ctx, path, out) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Recommended price")
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("areas: []\n"+officeTerms), 0o644))

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "insufficient data")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

// chdirForTest changes the working directory for the duration of the test
// and restores it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
