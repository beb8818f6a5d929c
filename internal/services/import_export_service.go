package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/SAP-F-2025/assessment-console/internal/models"
)

const importCSVPath = questionsPath + "import_csv/"

func exportCSVPath(testID string) string {
	return questionsPath + "tests/" + url.PathEscape(testID) + "/export_questions/"
}

// ImportCSV uploads a question CSV for testID as multipart fields file and
// test_id. Row-level checks are the server's; the reply is returned as is.
func (s *questionService) ImportCSV(ctx context.Context, testID, fileName string, file io.Reader) (_ *models.ImportResult, err error) {
	defer s.logger.LogOperation(ctx, "import_csv", "test", testID, time.Now(), &err)

	if err = requireID("test_id", testID); err != nil {
		return nil, err
	}
	if file == nil {
		return nil, ErrEmptyFile
	}

	var result models.ImportResult
	fields := map[string]string{"test_id": testID}
	if err = s.api.Upload(ctx, importCSVPath, fields, "file", fileName, file, &result); err != nil {
		return nil, fmt.Errorf("failed to import questions: %w", err)
	}
	return &result, nil
}

// ExportCSV streams the test's questions in the import format to w.
func (s *questionService) ExportCSV(ctx context.Context, testID string, w io.Writer) (err error) {
	defer s.logger.LogOperation(ctx, "export_csv", "test", testID, time.Now(), &err)

	if err = requireID("test_id", testID); err != nil {
		return err
	}
	if err = s.api.Download(ctx, exportCSVPath(testID), nil, w); err != nil {
		return notFound(err, ErrTestNotFound, "test", testID)
	}
	return nil
}
