package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/nttm-tools/sla-server/internal/httpapi/mocks"
	"github.com/nttm-tools/sla-server/internal/ingest"
	"github.com/nttm-tools/sla-server/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T, builder ReportBuilder, cache Cacher) *gin.Engine {
	t.Helper()
	h := NewHandlers(builder, cache, zap.NewNop(), time.Minute, 1<<20)
	r := gin.New()
	h.Register(r)
	return r
}

// workbookBytes builds a minimal decodable export with one eligible row.
func workbookBytes(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := []any{"3LTP flag", "Tier", "CE exclusion flag", "Service exclusion flag",
		"Service type", "SLA violation", "SLA violation without customer wait"}
	row := []any{"1", "Platinum", "no CE flag", "billable services", "Internet", "0", ""}
	require.NoError(t, f.SetSheetRow(sheet, "A3", &header))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &row))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func uploadRequest(t *testing.T, target, fileName string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestHealth(t *testing.T) {
	r := newRouter(t, &mocks.MockReportBuilder{}, &mocks.MissCache{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestCreateReportsMissingFileField(t *testing.T) {
	r := newRouter(t, &mocks.MockReportBuilder{}, &mocks.MissCache{})

	req := httptest.NewRequest(http.MethodPost, "/v1/reports", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateReportsWrongExtension(t *testing.T) {
	builder := &mocks.MockReportBuilder{}
	r := newRouter(t, builder, &mocks.MissCache{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "/v1/reports", "dwh_export.csv", []byte("a,b,c")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), ".xlsx")
	assert.Zero(t, builder.Calls)
}

func TestCreateReportsHappyPath(t *testing.T) {
	builder := &mocks.MockReportBuilder{
		BuildReportsFunc: func(ctx context.Context, ds *ingest.Dataset, sourceName string) ([]service.ReportBlock, error) {
			assert.Equal(t, "weekly_dwh.xlsx", sourceName)
			assert.Equal(t, 1, ds.Len())
			return []service.ReportBlock{{MacroRegion: "Volga", Text: "block one"}}, nil
		},
	}
	r := newRouter(t, builder, &mocks.MissCache{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "/v1/reports", "weekly_dwh.xlsx", workbookBytes(t)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Reports []service.ReportBlock `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Reports, 1)
	assert.Equal(t, "Volga", resp.Reports[0].MacroRegion)
	assert.Equal(t, "block one", resp.Reports[0].Text)
	assert.Equal(t, 1, builder.Calls)
}

func TestCreateReportsTextFormat(t *testing.T) {
	builder := &mocks.MockReportBuilder{
		BuildReportsFunc: func(ctx context.Context, ds *ingest.Dataset, sourceName string) ([]service.ReportBlock, error) {
			return []service.ReportBlock{{Text: "first"}, {Text: "second"}}, nil
		},
	}
	r := newRouter(t, builder, &mocks.MissCache{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "/v1/reports?format=text", "sla.xlsx", workbookBytes(t)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "first\n\nsecond", rec.Body.String())
}

func TestCreateReportsServedFromCache(t *testing.T) {
	data := workbookBytes(t)
	cached := []service.ReportBlock{{MacroRegion: "Center", Text: "cached block"}}

	cache := mocks.NewMemoryCache()
	require.NoError(t, cache.Seed(cacheKey(data, "sla.xlsx"), cached))

	builder := &mocks.MockReportBuilder{} // must not be called
	r := newRouter(t, builder, cache)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "/v1/reports", "sla.xlsx", data))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cached block")
	assert.Zero(t, builder.Calls)
}

func TestCreateReportsErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"unknown variant", service.ErrUnknownVariant, http.StatusBadRequest},
		{"schema", &service.SchemaError{Missing: []string{"Tier"}}, http.StatusBadRequest},
		{"empty result", service.ErrEmptyResult, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			builder := &mocks.MockReportBuilder{
				BuildReportsFunc: func(ctx context.Context, ds *ingest.Dataset, sourceName string) ([]service.ReportBlock, error) {
					return nil, tc.err
				},
			}
			r := newRouter(t, builder, &mocks.MissCache{})

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, uploadRequest(t, "/v1/reports", "sla.xlsx", workbookBytes(t)))

			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestCreateReportsUnreadableWorkbook(t *testing.T) {
	builder := &mocks.MockReportBuilder{}
	r := newRouter(t, builder, &mocks.MissCache{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "/v1/reports", "sla.xlsx", []byte("garbage bytes")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "workbook")
	assert.Zero(t, builder.Calls)
}

func TestCreateReportsUploadTooLarge(t *testing.T) {
	h := NewHandlers(&mocks.MockReportBuilder{}, &mocks.MissCache{}, zap.NewNop(), time.Minute, 64)
	r := gin.New()
	h.Register(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "/v1/reports", "sla.xlsx", bytes.Repeat([]byte("x"), 256)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
