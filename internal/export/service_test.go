package export

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hqplabs/idcard-ocr/constants"
	"github.com/hqplabs/idcard-ocr/internal/corpus"
	"github.com/hqplabs/idcard-ocr/internal/extract"
)

func seedCorpus(t *testing.T, ids []string) *corpus.MemoryCorpus {
	t.Helper()
	mem := corpus.NewMemoryCorpus()
	for i, id := range ids {
		_, appended, err := mem.AppendIfAbsent(context.Background(), extract.ExtractedRecord{
			Name:        "Rohit Sharma",
			Gender:      constants.GenderMale,
			IDNumber:    id,
			UserID:      "user-1",
			ExtractedAt: time.Date(2025, 6, 1+i, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		require.True(t, appended)
	}
	return mem
}

func TestExportXLSXWritesAllRows(t *testing.T) {
	mem := seedCorpus(t, []string{"111122223333", "444455556666"})
	svc := NewService(mem, nil)

	raw, err := svc.ExportXLSX(context.Background(), nil, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	rows, err := f.GetRows("Records")
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, "ID Number", rows[0][5])
	assert.Equal(t, "111122223333", rows[1][5])
	assert.Equal(t, "444455556666", rows[2][5])
}

func TestExportXLSXDateWindow(t *testing.T) {
	mem := seedCorpus(t, []string{"111122223333", "444455556666"})
	svc := NewService(mem, nil)

	from := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	raw, err := svc.ExportXLSX(context.Background(), &from, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	rows, err := f.GetRows("Records")
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "444455556666", rows[1][5])
}
