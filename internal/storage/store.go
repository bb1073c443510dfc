package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/terrasim/internal/eco"
	"github.com/san-kum/terrasim/internal/sim"
)

// Store persists Monte Carlo batches under a base directory, one
// subdirectory per batch holding metadata.json and results.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type BatchMetadata struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Seed      int64     `json:"seed"`
	Runs      int       `json:"runs"`
	DayCap    int       `json:"day_cap"`
	Survived  int       `json:"survived"`
}

// RunRecord is the flat CSV row for one run. Initial conditions are
// stored so a batch can be re-analyzed without re-simulating.
type RunRecord struct {
	Survived   bool    `csv:"survived"`
	DayReached int     `csv:"day_reached"`
	Cause      string  `csv:"cause"`
	Porous     bool    `csv:"porous_soil"`
	Plants     int     `csv:"plants"`
	SoilKg     float64 `csv:"soil_kg"`
	Proximity  int     `csv:"window_proximity"`
	Water      float64 `csv:"water_liters"`
	Rocks      int     `csv:"rocks"`
	Microbes   float64 `csv:"microbes"`
	Worms      float64 `csv:"worms"`
	Shrimp     float64 `csv:"shrimp"`
	SoilN      float64 `csv:"soil_nitrogen"`
	PH         float64 `csv:"ph"`
	Detritus   float64 `csv:"detritus"`
	Temp       float64 `csv:"temperature"`
	FinalO2    float64 `csv:"final_o2"`
	FinalTox   float64 `csv:"final_toxicity"`
}

func toRecord(r *sim.RunResult) RunRecord {
	return RunRecord{
		Survived:   r.Survived,
		DayReached: r.DayReached,
		Cause:      r.Cause.String(),
		Porous:     r.Setup.PorousSoil,
		Plants:     r.Setup.Plants,
		SoilKg:     r.Setup.SoilKg,
		Proximity:  r.Setup.WindowProximity,
		Water:      r.Setup.WaterLiters,
		Rocks:      r.Setup.Rocks,
		Microbes:   r.Initial.Microbes,
		Worms:      r.Initial.Worms,
		Shrimp:     r.Initial.Shrimp,
		SoilN:      r.Initial.SoilNitrogen,
		PH:         r.Initial.PH,
		Detritus:   r.Initial.Detritus,
		Temp:       r.Initial.Temperature,
		FinalO2:    r.Final.O2,
		FinalTox:   r.Final.Toxicity,
	}
}

// toResult rebuilds the analyzable parts of a run from its CSV row.
// Only fields the analyzer reads are restored.
func toResult(rec *RunRecord) sim.RunResult {
	setup := eco.Setup{
		PorousSoil:      rec.Porous,
		Plants:          rec.Plants,
		SoilKg:          rec.SoilKg,
		WindowProximity: rec.Proximity,
		WaterLiters:     rec.Water,
		Rocks:           rec.Rocks,
	}
	cause := eco.ParseCause(rec.Cause)
	return sim.RunResult{
		Survived:   rec.Survived,
		DayReached: rec.DayReached,
		Cause:      cause,
		Setup:      setup,
		Initial: eco.State{
			Setup:        setup,
			Microbes:     rec.Microbes,
			Worms:        rec.Worms,
			Shrimp:       rec.Shrimp,
			SoilNitrogen: rec.SoilN,
			PH:           rec.PH,
			Water:        rec.Water,
			Detritus:     rec.Detritus,
			Temperature:  rec.Temp,
		},
		Final: eco.State{
			Setup:    setup,
			O2:       rec.FinalO2,
			Toxicity: rec.FinalTox,
		},
	}
}

// Save writes one batch and returns its ID.
func (s *Store) Save(seed int64, dayCap int, results []sim.RunResult) (string, error) {
	batchID := fmt.Sprintf("batch_%d", time.Now().Unix())
	batchDir := filepath.Join(s.baseDir, batchID)

	if err := os.MkdirAll(batchDir, 0755); err != nil {
		return "", err
	}

	survived := 0
	records := make([]RunRecord, 0, len(results))
	for i := range results {
		if results[i].Survived {
			survived++
		}
		records = append(records, toRecord(&results[i]))
	}

	meta := BatchMetadata{
		ID:        batchID,
		Timestamp: time.Now(),
		Seed:      seed,
		Runs:      len(results),
		DayCap:    dayCap,
		Survived:  survived,
	}

	metaFile, err := os.Create(filepath.Join(batchDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(batchDir, "results.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := gocsv.MarshalFile(&records, csvFile); err != nil {
		return "", err
	}
	return batchID, nil
}

// List returns metadata for every stored batch, skipping unreadable
// entries.
func (s *Store) List() ([]BatchMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BatchMetadata{}, nil
		}
		return nil, err
	}

	batches := make([]BatchMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta BatchMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		batches = append(batches, meta)
	}
	return batches, nil
}

func (s *Store) Load(batchID string) (*BatchMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, batchID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta BatchMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadResults reads a batch's rows back as run results suitable for
// the analyzer.
func (s *Store) LoadResults(batchID string) ([]sim.RunResult, error) {
	file, err := os.Open(filepath.Join(s.baseDir, batchID, "results.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var records []RunRecord
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		return nil, err
	}

	results := make([]sim.RunResult, 0, len(records))
	for i := range records {
		results = append(results, toResult(&records[i]))
	}
	return results, nil
}
