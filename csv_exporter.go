package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/grutapig/ytcomments/comments"
)

const (
	COLUMN_AUTHOR             = "author"
	COLUMN_TEXT               = "text"
	COLUMN_LIKE_COUNT         = "likeCount"
	COLUMN_ID                 = "id"
	COLUMN_PUBLISH_DATE       = "publishDate"
	COLUMN_AUTHOR_CHANNEL_URL = "authorChannelUrl"
	COLUMN_AUTHOR_CHANNEL_ID  = "authorChannelId"
	COLUMN_CAN_RATE           = "canRate"
	COLUMN_VIEWER_RATING      = "viewerRating"
	COLUMN_UPDATED_AT         = "updatedAt"
)

// CSVHeader is written as the first row of every export, in this order.
var CSVHeader = []string{
	COLUMN_AUTHOR,
	COLUMN_TEXT,
	COLUMN_LIKE_COUNT,
	COLUMN_ID,
	COLUMN_PUBLISH_DATE,
	COLUMN_AUTHOR_CHANNEL_URL,
	COLUMN_AUTHOR_CHANNEL_ID,
	COLUMN_CAN_RATE,
	COLUMN_VIEWER_RATING,
	COLUMN_UPDATED_AT,
}

var requiredColumns = []string{COLUMN_AUTHOR, COLUMN_TEXT, COLUMN_LIKE_COUNT, COLUMN_ID, COLUMN_PUBLISH_DATE}

type CSVExporter struct{}

func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Export writes rows to csvFilePath in dataset order, replacing any existing file.
func (c *CSVExporter) Export(csvFilePath string, rows []comments.CommentRow) error {
	file, err := os.Create(csvFilePath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}

	if err := c.Write(file, rows); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close CSV file: %w", err)
	}
	return nil
}

// Write emits the header and rows. CRLF inside author and text is written as LF.
func (c *CSVExporter) Write(w io.Writer, rows []comments.CommentRow) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			comments.NormalizeLineBreaks(row.Author),
			comments.NormalizeLineBreaks(row.Text),
			strconv.Itoa(row.LikeCount),
			row.ID,
			row.PublishDate,
			row.AuthorChannelURL,
			row.AuthorChannelID,
			strconv.FormatBool(row.CanRate),
			row.ViewerRating,
			row.UpdatedAt,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row %s: %w", row.ID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// ReadCommentsCSV reads an exported file back, resolving columns by header name.
func ReadCommentsCSV(csvFilePath string) ([]comments.CommentRow, error) {
	if _, err := os.Stat(csvFilePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("CSV file not found: %s", csvFilePath)
	}

	file, err := os.Open(csvFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	columnMap := mapColumns(records[0])
	if err := validateColumns(columnMap); err != nil {
		return nil, fmt.Errorf("CSV validation failed: %w", err)
	}

	rows := make([]comments.CommentRow, 0, len(records)-1)
	for i, record := range records[1:] {
		likeCount, err := strconv.Atoi(field(record, columnMap, COLUMN_LIKE_COUNT))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid %s: %w", i+2, COLUMN_LIKE_COUNT, err)
		}
		canRate, _ := strconv.ParseBool(field(record, columnMap, COLUMN_CAN_RATE))

		rows = append(rows, comments.CommentRow{
			Author:           field(record, columnMap, COLUMN_AUTHOR),
			Text:             field(record, columnMap, COLUMN_TEXT),
			LikeCount:        likeCount,
			ID:               field(record, columnMap, COLUMN_ID),
			PublishDate:      field(record, columnMap, COLUMN_PUBLISH_DATE),
			AuthorChannelURL: field(record, columnMap, COLUMN_AUTHOR_CHANNEL_URL),
			AuthorChannelID:  field(record, columnMap, COLUMN_AUTHOR_CHANNEL_ID),
			CanRate:          canRate,
			ViewerRating:     field(record, columnMap, COLUMN_VIEWER_RATING),
			UpdatedAt:        field(record, columnMap, COLUMN_UPDATED_AT),
		})
	}

	return rows, nil
}

func mapColumns(header []string) map[string]int {
	columnMap := make(map[string]int)
	for i, col := range header {
		columnMap[strings.TrimSpace(col)] = i
	}
	return columnMap
}

func validateColumns(columnMap map[string]int) error {
	var missing []string
	for _, col := range requiredColumns {
		if _, exists := columnMap[col]; !exists {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

func field(record []string, columnMap map[string]int, col string) string {
	idx, ok := columnMap[col]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}
