package planner

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// CatalogPaths names the four reference CSV files.
type CatalogPaths struct {
	PartCycleTime       string `yaml:"part_cycle_time"`
	PlanData            string `yaml:"plan_data"`
	MachineAvailability string `yaml:"machine_availability"`
	OperatorEfficiency  string `yaml:"operator_efficiency"`
}

// Catalog holds the four keyed reference tables. Loaded once at process
// start and treated as immutable for the process lifetime, so it is safe to
// share read-only across concurrent pipeline runs.
type Catalog struct {
	parts        map[string][]PartCatalogEntry
	plans        map[string]MachinePlan
	availability map[string]MachineAvailability
	operators    map[string][]OperatorProfile // keyed by preferred machine type
}

// NewCatalog builds a Catalog from in-memory tables.
func NewCatalog(parts []PartCatalogEntry, plans []MachinePlan, avail []MachineAvailability, ops []OperatorProfile) *Catalog {
	c := &Catalog{
		parts:        make(map[string][]PartCatalogEntry),
		plans:        make(map[string]MachinePlan, len(plans)),
		availability: make(map[string]MachineAvailability, len(avail)),
		operators:    make(map[string][]OperatorProfile),
	}
	for _, p := range parts {
		c.parts[p.PartID] = append(c.parts[p.PartID], p)
	}
	for _, p := range plans {
		c.plans[p.MachineID] = p
	}
	for _, a := range avail {
		c.availability[a.MachineID] = a
	}
	for _, op := range ops {
		if op.EfficiencyScore <= 0 {
			logrus.Warnf("skipping operator %s: efficiency_score %v is not positive", op.OperatorID, op.EfficiencyScore)
			continue
		}
		c.operators[op.PreferredMachineType] = append(c.operators[op.PreferredMachineType], op)
	}
	return c
}

// PartEntries returns all catalog entries for the given part id.
// A part with no entries yields an empty slice, never an error.
func (c *Catalog) PartEntries(partID string) []PartCatalogEntry {
	return c.parts[partID]
}

// Plan looks up a machine's operating plan by machine id.
func (c *Catalog) Plan(machineID string) (MachinePlan, bool) {
	p, ok := c.plans[machineID]
	return p, ok
}

// Availability looks up a machine's current operability by machine id.
func (c *Catalog) Availability(machineID string) (MachineAvailability, bool) {
	a, ok := c.availability[machineID]
	return a, ok
}

// OperatorsFor returns operators whose preferred machine type exactly
// matches machineType.
func (c *Catalog) OperatorsFor(machineType string) []OperatorProfile {
	return c.operators[machineType]
}

// LoadCatalog reads the four reference CSV files into a Catalog.
func LoadCatalog(paths CatalogPaths) (*Catalog, error) {
	parts, err := loadPartCycleTimes(paths.PartCycleTime)
	if err != nil {
		return nil, err
	}
	plans, err := loadMachinePlans(paths.PlanData)
	if err != nil {
		return nil, err
	}
	avail, err := loadMachineAvailability(paths.MachineAvailability)
	if err != nil {
		return nil, err
	}
	ops, err := loadOperatorEfficiency(paths.OperatorEfficiency)
	if err != nil {
		return nil, err
	}
	logrus.Infof("catalog loaded: %d part entries, %d plans, %d availability rows, %d operators",
		len(parts), len(plans), len(avail), len(ops))
	return NewCatalog(parts, plans, avail, ops), nil
}

// readRows opens a CSV file, skips the header row, and returns the data rows.
func readRows(path string, wantCols int) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// Skip header row
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read csv header of %s: %w", path, err)
	}

	var rows [][]string
	for i := 0; ; i++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading %s at row %d: %w", path, i, err)
		}
		if len(record) < wantCols {
			return nil, fmt.Errorf("%s row %d: expected %d columns, got %d", path, i, wantCols, len(record))
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func loadPartCycleTimes(path string) ([]PartCatalogEntry, error) {
	rows, err := readRows(path, 4)
	if err != nil {
		return nil, err
	}
	entries := make([]PartCatalogEntry, 0, len(rows))
	for i, r := range rows {
		cycle, err := strconv.ParseFloat(r[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid cycle_time_seconds: %w", path, i, err)
		}
		setup, err := strconv.ParseFloat(r[3], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid setup_time_minutes: %w", path, i, err)
		}
		entries = append(entries, PartCatalogEntry{
			PartID:           r[0],
			MachineID:        r[1],
			CycleTimeSeconds: cycle,
			SetupTimeMinutes: setup,
		})
	}
	return entries, nil
}

func loadMachinePlans(path string) ([]MachinePlan, error) {
	rows, err := readRows(path, 3)
	if err != nil {
		return nil, err
	}
	plans := make([]MachinePlan, 0, len(rows))
	for i, r := range rows {
		uptime, err := strconv.ParseFloat(r[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid uptime_percentage: %w", path, i, err)
		}
		plans = append(plans, MachinePlan{
			MachineID:        r[0],
			MachineType:      r[1],
			UptimePercentage: uptime,
		})
	}
	return plans, nil
}

func loadMachineAvailability(path string) ([]MachineAvailability, error) {
	rows, err := readRows(path, 4)
	if err != nil {
		return nil, err
	}
	avail := make([]MachineAvailability, 0, len(rows))
	for i, r := range rows {
		isAvailable, err := strconv.ParseBool(r[1])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid is_available: %w", path, i, err)
		}
		risk, err := strconv.ParseFloat(r[3], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid risk_of_failure: %w", path, i, err)
		}
		if risk < 0 || risk > 1 {
			return nil, fmt.Errorf("%s row %d: risk_of_failure %v outside [0,1]", path, i, risk)
		}
		avail = append(avail, MachineAvailability{
			MachineID:        r[0],
			IsAvailable:      isAvailable,
			CriticalityLevel: CriticalityLevel(r[2]),
			RiskOfFailure:    risk,
		})
	}
	return avail, nil
}

func loadOperatorEfficiency(path string) ([]OperatorProfile, error) {
	rows, err := readRows(path, 4)
	if err != nil {
		return nil, err
	}
	ops := make([]OperatorProfile, 0, len(rows))
	for i, r := range rows {
		eff, err := strconv.ParseFloat(r[3], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid efficiency_score: %w", path, i, err)
		}
		ops = append(ops, OperatorProfile{
			OperatorID:           r[0],
			OperatorName:         r[1],
			PreferredMachineType: r[2],
			EfficiencyScore:      eff,
		})
	}
	return ops, nil
}
