// Package storage persists completed runs: one directory per run holding
// metadata.json and the temperature trajectory as CSV.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/langevin/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID              string    `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	NAtoms          int       `json:"natoms"`
	Mass            float64   `json:"mass"`
	Temperature     float64   `json:"temperature"`
	Dt              float64   `json:"dt"`
	RelaxationTime  float64   `json:"relaxation_time"`
	Steps           int       `json:"steps"`
	Boundary        string    `json:"boundary"`
	Integrator      string    `json:"integrator"`
	Seed            int64     `json:"seed"`
	MeanTemperature float64   `json:"mean_temperature"`
}

// Save writes a run directory and returns its generated id.
func (s *Store) Save(cfg sim.Config, traj *sim.Trajectory) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:              runID,
		Timestamp:       time.Now(),
		NAtoms:          cfg.NAtoms,
		Mass:            cfg.Mass,
		Temperature:     cfg.Temperature,
		Dt:              cfg.Dt,
		RelaxationTime:  cfg.RelaxationTime,
		Steps:           traj.Len(),
		Boundary:        cfg.Boundary,
		Integrator:      cfg.Integrator,
		Seed:            cfg.Seed,
		MeanTemperature: traj.MeanTemperature(),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"time", "temperature"}); err != nil {
		return "", err
	}
	for i := range traj.Times {
		row := []string{
			strconv.FormatFloat(traj.Times[i], 'e', 9, 64),
			strconv.FormatFloat(traj.Temperatures[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrajectory reads the stored temperature series back.
func (s *Store) LoadTrajectory(runID string) (*sim.Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return &sim.Trajectory{}, nil
	}

	traj := &sim.Trajectory{
		Times:        make([]float64, 0, len(records)-1),
		Temperatures: make([]float64, 0, len(records)-1),
	}
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		tm, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		temp, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		traj.Times = append(traj.Times, tm)
		traj.Temperatures = append(traj.Temperatures, temp)
	}
	return traj, nil
}
