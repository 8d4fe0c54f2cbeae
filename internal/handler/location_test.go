package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"standort-api/internal/models"
	"standort-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockLocationService is a mock implementation of the LocationService interface
type MockLocationService struct {
	mock.Mock
}

func (m *MockLocationService) Submit(ctx context.Context, sub service.Submission) (int64, error) {
	args := m.Called(ctx, sub)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLocationService) Recent(ctx context.Context, limit int) ([]models.Location, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.Location), args.Error(1)
}

func (m *MockLocationService) ExportCSV(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestLocationHandler_SaveLocation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		payload        gin.H
		mockID         int64
		mockError      error
		expectedStatus int
		expectedBody   gin.H
	}{
		{
			name: "successful save",
			payload: gin.H{
				"bezirk":           "Mitte",
				"x_coord":          13.4,
				"y_coord":          52.5,
				"erstellungsdatum": "2024-01-01",
			},
			mockID:         1,
			expectedStatus: http.StatusOK,
			expectedBody: gin.H{
				"status":  "success",
				"message": "Standort erfolgreich gespeichert!",
				"id":      float64(1),
			},
		},
		{
			name: "missing required fields",
			payload: gin.H{
				"x_coord": 13.4,
				"y_coord": 52.5,
			},
			mockError:      service.ErrMissingFields,
			expectedStatus: http.StatusBadRequest,
			expectedBody: gin.H{
				"status":  "error",
				"message": "Fehlende erforderliche Felder",
			},
		},
		{
			name: "persistence failure",
			payload: gin.H{
				"bezirk":           "Mitte",
				"x_coord":          13.4,
				"y_coord":          52.5,
				"erstellungsdatum": "2024-01-01",
			},
			mockError:      assert.AnError,
			expectedStatus: http.StatusInternalServerError,
			expectedBody: gin.H{
				"status":  "error",
				"message": "Interner Serverfehler beim Speichern des Standorts",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockLocationService)
			handler := NewLocationHandler(mockSvc)

			mockSvc.On("Submit", mock.Anything, mock.Anything).Return(tt.mockID, tt.mockError)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = jsonRequest(t, http.MethodPost, "/saveLocation", tt.payload)

			handler.SaveLocation(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var actualBody gin.H
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &actualBody))
			for key, expected := range tt.expectedBody {
				assert.Equal(t, expected, actualBody[key])
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestLocationHandler_LastLocations(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		mockLocations  []models.Location
		mockError      error
		expectedStatus int
		expectedLen    int
	}{
		{
			name: "returns recent rows",
			mockLocations: []models.Location{
				{ID: 2, Bezirk: "Pankow", Erstellungsdatum: "2024-01-02", XCoord: 13.41, YCoord: 52.57},
				{ID: 1, Bezirk: "Mitte", Erstellungsdatum: "2024-01-01", XCoord: 13.4, YCoord: 52.5},
			},
			expectedStatus: http.StatusOK,
			expectedLen:    2,
		},
		{
			name:           "empty table",
			mockLocations:  nil,
			expectedStatus: http.StatusOK,
			expectedLen:    0,
		},
		{
			name:           "repository failure",
			mockLocations:  nil,
			mockError:      assert.AnError,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockLocationService)
			handler := NewLocationHandler(mockSvc)

			mockSvc.On("Recent", mock.Anything, recentLimit).Return(tt.mockLocations, tt.mockError)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/last-locations", nil)

			handler.LastLocations(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.mockError == nil {
				var actual []models.Location
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &actual))
				assert.Len(t, actual, tt.expectedLen)
				if tt.expectedLen > 0 {
					assert.Equal(t, tt.mockLocations, actual)
				}
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestLocationHandler_DownloadCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("successful export", func(t *testing.T) {
		mockSvc := new(MockLocationService)
		handler := NewLocationHandler(mockSvc)

		csv := "ID,Bezirk\n1,Mitte"
		mockSvc.On("ExportCSV", mock.Anything).Return(csv, nil)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/download-csv", nil)

		handler.DownloadCSV(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename="standorte_`)
		assert.Equal(t, csv, w.Body.String())
	})

	t.Run("no records", func(t *testing.T) {
		mockSvc := new(MockLocationService)
		handler := NewLocationHandler(mockSvc)

		mockSvc.On("ExportCSV", mock.Anything).Return("", service.ErrNoRecords)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/download-csv", nil)

		handler.DownloadCSV(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Keine Daten in der Datenbank vorhanden.")
	})

	t.Run("export failure", func(t *testing.T) {
		mockSvc := new(MockLocationService)
		handler := NewLocationHandler(mockSvc)

		mockSvc.On("ExportCSV", mock.Anything).Return("", assert.AnError)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/download-csv", nil)

		handler.DownloadCSV(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Fehler beim Erstellen der CSV-Datei")
	})
}
