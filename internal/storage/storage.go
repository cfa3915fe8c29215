package storage

import (
	"time"

	"github.com/LdDl/motion-estimator/motion"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const DefaultBatchSize = 500

// Store persists runs and their samples in SQLite.
// Samples are buffered and written in batches; Flush or Finish writes what is left.
type Store struct {
	db        *gorm.DB
	batchSize int
	pending   []Sample
}

// Open creates (or reuses) the database file and migrates the schema
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        DefaultBatchSize,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "Can't open sqlite database '%s'", path)
	}
	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
	}
	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, errors.Wrapf(err, "Can't set '%s'", pragma)
		}
	}
	if err := db.AutoMigrate(&Run{}, &Sample{}); err != nil {
		return nil, errors.Wrap(err, "Can't migrate schema")
	}
	return &Store{
		db:        db,
		batchSize: DefaultBatchSize,
		pending:   make([]Sample, 0, DefaultBatchSize),
	}, nil
}

// BeginRun records the run row before any sample arrives
func (store *Store) BeginRun(runID uuid.UUID, videoFile string, cfg motion.Config) error {
	if err := store.db.Create(newRun(runID, videoFile, cfg)).Error; err != nil {
		return errors.Wrapf(err, "Can't create run %s", runID)
	}
	return nil
}

// Add buffers one sample and writes the buffer when it is full
func (store *Store) Add(sample motion.MotionSample) error {
	store.pending = append(store.pending, newSample(sample))
	if len(store.pending) < store.batchSize {
		return nil
	}
	return store.Flush()
}

// Flush writes buffered samples
func (store *Store) Flush() error {
	if len(store.pending) == 0 {
		return nil
	}
	if err := store.db.CreateInBatches(store.pending, store.batchSize).Error; err != nil {
		return errors.Wrapf(err, "Can't insert %d samples", len(store.pending))
	}
	store.pending = store.pending[:0]
	return nil
}

// Finish flushes samples and stores the run summary
func (store *Store) Finish(summary motion.Summary) error {
	if err := store.Flush(); err != nil {
		return err
	}
	finished := time.Now().UTC()
	err := store.db.Model(&Run{ID: summary.RunID}).Updates(map[string]any{
		"finished_at":            &finished,
		"frames":                 summary.Frames,
		"detections":             summary.Detections,
		"gaps":                   summary.Gaps,
		"undefined_orientations": summary.UndefinedOrientations,
		"speed_updates":          summary.SpeedUpdates,
		"total_distance":         summary.TotalDistance,
		"total_time":             summary.TotalTime,
		"average_speed":          summary.AverageSpeed,
	}).Error
	if err != nil {
		return errors.Wrapf(err, "Can't update run %s", summary.RunID)
	}
	return nil
}

// Run loads a run by id
func (store *Store) Run(runID uuid.UUID) (Run, error) {
	var run Run
	if err := store.db.First(&run, "id = ?", runID).Error; err != nil {
		return Run{}, errors.Wrapf(err, "Can't load run %s", runID)
	}
	return run, nil
}

// Samples loads every stored sample of a run in frame order
func (store *Store) Samples(runID uuid.UUID) ([]Sample, error) {
	var samples []Sample
	err := store.db.Where("run_id = ?", runID).Order("frame_index").Find(&samples).Error
	if err != nil {
		return nil, errors.Wrapf(err, "Can't load samples of run %s", runID)
	}
	return samples, nil
}

// Close flushes pending samples and closes the database
func (store *Store) Close() error {
	flushErr := store.Flush()
	sqlDB, err := store.db.DB()
	if err != nil {
		return errors.Wrap(err, "Can't access sql interface")
	}
	if err := sqlDB.Close(); err != nil {
		return errors.Wrap(err, "Can't close database")
	}
	return flushErr
}
