// Package dataset loads the course catalog from a versioned JSON dump into
// the database at startup.
package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/cwngan/cu2m-backend/internal/interfaces"
	"github.com/cwngan/cu2m-backend/internal/repositories"
	"github.com/cwngan/cu2m-backend/internal/schemas"
)

// courseRecord mirrors one entry of the dataset dump, which uses snake_case
// keys.
type courseRecord struct {
	Code          string  `json:"code"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Units         float64 `json:"units"`
	Prerequisites string  `json:"prerequisites"`
	Corequisites  string  `json:"corequisites"`
	NotForMajor   string  `json:"not_for_major"`
	NotForTaken   string  `json:"not_for_taken"`
	IsGraded      bool    `json:"is_graded"`
	Original      string  `json:"original"`
	Parsed        bool    `json:"parsed"`
}

type datasetFile struct {
	Version int            `json:"version"`
	Courses []courseRecord `json:"courses"`
}

// Sync replaces the course catalog with the dump named by
// COURSE_DATA_FILENAME, but only when the dump's version is newer than the
// one already loaded. The swap is transactional; readers never observe a
// half-loaded catalog.
func Sync(ctx context.Context, pool interfaces.PgxPoolIface) error {
	path := os.Getenv("COURSE_DATA_FILENAME")
	if path == "" {
		log.Info("COURSE_DATA_FILENAME not set, skipping course dataset sync")
		return nil
	}

	file, err := parseFile(path)
	if err != nil {
		return fmt.Errorf("parsing course dataset: %w", err)
	}

	courseRepo := repositories.NewCourseRepository(pool)
	current, err := courseRepo.GetDatasetVersion(ctx)
	if err != nil {
		return fmt.Errorf("reading course dataset version: %w", err)
	}
	if file.Version <= current {
		log.WithFields(log.Fields{
			"loaded": current,
			"file":   file.Version,
		}).Info("Course dataset is up to date")
		return nil
	}

	courses := make([]*schemas.Course, 0, len(file.Courses))
	for _, record := range file.Courses {
		courses = append(courses, &schemas.Course{
			Code:          record.Code,
			Title:         record.Title,
			Description:   record.Description,
			Units:         record.Units,
			Prerequisites: record.Prerequisites,
			Corequisites:  record.Corequisites,
			NotForMajor:   record.NotForMajor,
			NotForTaken:   record.NotForTaken,
			IsGraded:      record.IsGraded,
			Original:      record.Original,
			Parsed:        record.Parsed,
		})
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	txRepo := courseRepo.WithTx(tx)
	if err := txRepo.DeleteAll(ctx); err != nil {
		return err
	}
	inserted, err := txRepo.BulkInsert(ctx, courses)
	if err != nil {
		return err
	}
	if err := txRepo.SetDatasetVersion(ctx, file.Version); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"version": file.Version,
		"courses": inserted,
	}).Info("Course dataset loaded")
	return nil
}

func parseFile(path string) (*datasetFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoder := json.NewDecoder(f)
	decoder.DisallowUnknownFields()

	file := &datasetFile{}
	if err := decoder.Decode(file); err != nil {
		return nil, err
	}
	if file.Version <= 0 {
		return nil, fmt.Errorf("dataset version must be positive, got %d", file.Version)
	}
	return file, nil
}
