package export

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type record struct {
	ID      string
	Name    string
	Balance *int64
}

var sheet = Spreadsheet[record]{
	Sheet:       "Users Data",
	Placeholder: "undefined",
	Columns: []Column[record]{
		{Header: "Id", Value: func(r record) any { return r.ID }},
		{Header: "Name", Value: func(r record) any { return r.Name }},
		{Header: "balance", Value: func(r record) any { return r.Balance }},
	},
}

func TestBuildWritesHeaderAndRows(t *testing.T) {
	balance := int64(42)
	data, err := sheet.Build([]record{
		{ID: "1", Name: "Ada", Balance: &balance},
		{ID: "2"},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Users Data")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Id", "Name", "balance"}, rows[0])
	assert.Equal(t, []string{"1", "Ada", "42"}, rows[1])
	assert.Equal(t, []string{"2", "undefined", "undefined"}, rows[2])
}

func TestBuildEmpty(t *testing.T) {
	data, err := sheet.Build(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Users Data")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestAttachment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Attachment(c, "users_data.xlsx", []byte("x"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="users_data.xlsx"`, rec.Header().Get("Content-Disposition"))
}
