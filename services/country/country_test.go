package country

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdulWasayUl/go-country-browser/internal/catalog"
	"github.com/AbdulWasayUl/go-country-browser/internal/channels"
	"github.com/AbdulWasayUl/go-country-browser/internal/config"
	"github.com/AbdulWasayUl/go-country-browser/internal/workpool"
	"github.com/AbdulWasayUl/go-country-browser/models"
)

type memoryRecorder struct {
	mu    sync.Mutex
	items []models.Diagnostic
}

func (m *memoryRecorder) Record(_ context.Context, d models.Diagnostic) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, d)
}

func (m *memoryRecorder) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

const sampleDataset = `[
	{"name":{"common":"France","official":"French Republic"},"flags":{"png":"https://flagcdn.com/w320/fr.png","alt":"The flag of France"},"capital":["Paris"],"borders":["AND","BEL","DEU"]},
	{"name":{"common":"Antarctica"},"flags":{"png":"https://flagcdn.com/w320/aq.png"},"capital":[],"borders":[]},
	{"name":{"common":"South Africa"},"flags":{"png":"https://flagcdn.com/w320/za.png"},"capital":["Pretoria","Bloemfontein","Cape Town"]}
]`

func newTestService(baseURL string) (*Service, *memoryRecorder) {
	rec := &memoryRecorder{}
	cfg := &config.Config{RestCountriesAPIBaseURL: baseURL}
	return NewService(cfg, catalog.New(), rec), rec
}

func TestNewService(t *testing.T) {
	cfg := &config.Config{RestCountriesAPIBaseURL: "https://restcountries.com/v3.1"}
	cat := catalog.New()

	service := NewService(cfg, cat, nil)

	assert.NotNil(t, service)
	assert.Equal(t, cfg, service.Config)
	assert.NotNil(t, service.Client)
	assert.Same(t, cat, service.Catalog)
	assert.IsType(t, models.NopRecorder{}, service.Diag)
}

func TestParseData(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		emptyResult bool
		validate    func(*testing.T, []models.Country)
	}{
		{
			name:  "full dataset",
			input: sampleDataset,
			validate: func(t *testing.T, list []models.Country) {
				require.Len(t, list, 3)
				assert.Equal(t, "France", list[0].Name.Common)
				assert.Equal(t, "https://flagcdn.com/w320/fr.png", list[0].Flags.PNG)
				assert.Equal(t, []string{"Paris"}, list[0].Capital)
				assert.Equal(t, []string{"AND", "BEL", "DEU"}, list[0].Borders)
			},
		},
		{
			name:  "missing capital and borders stay empty",
			input: sampleDataset,
			validate: func(t *testing.T, list []models.Country) {
				assert.Empty(t, list[1].Capital)
				assert.Empty(t, list[1].Borders)
				assert.Nil(t, list[2].Borders)
			},
		},
		{
			name:  "order preserved",
			input: sampleDataset,
			validate: func(t *testing.T, list []models.Country) {
				assert.Equal(t, "South Africa", list[2].Name.Common)
				assert.Equal(t, "Pretoria", list[2].Capital[0])
			},
		},
		{
			name:  "special characters in names",
			input: `[{"name":{"common":"Côte d'Ivoire"},"flags":{"png":"x"},"capital":["Yamoussoukro"]}]`,
			validate: func(t *testing.T, list []models.Country) {
				assert.Equal(t, "Côte d'Ivoire", list[0].Name.Common)
			},
		},
		{
			name:        "empty response array",
			input:       `[]`,
			expectError: true,
			emptyResult: true,
		},
		{
			name:        "invalid json",
			input:       `{invalid json}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, rec := newTestService("http://unused")
			defer service.Client.Close()

			data, err := service.ParseData([]byte(tt.input))

			if tt.expectError {
				require.Error(t, err)
				assert.Equal(t, tt.emptyResult, errors.Is(err, models.ErrEmptyResult))
				assert.Equal(t, 1, rec.len())
				assert.Equal(t, catalog.Failed, service.Catalog.Snapshot().Status)
				return
			}

			require.NoError(t, err)
			list, ok := data.([]models.Country)
			require.True(t, ok, "expected []models.Country")
			tt.validate(t, list)
		})
	}
}

func TestFetchData(t *testing.T) {
	var gotPath, gotFields string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotFields = r.URL.Query().Get("fields")
		fmt.Fprint(w, sampleDataset)
	}))
	defer ts.Close()

	service, rec := newTestService(ts.URL)
	defer service.Client.Close()

	body, err := service.FetchData(context.Background(), "all")
	require.NoError(t, err)
	assert.Equal(t, sampleDataset, string(body))
	assert.Equal(t, "/all", gotPath)
	assert.Equal(t, "name,flags,capital,borders", gotFields)
	assert.Equal(t, 0, rec.len())
}

func TestFetchData_Failure(t *testing.T) {
	hits := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	service, rec := newTestService(ts.URL)
	defer service.Client.Close()

	_, err := service.FetchData(context.Background(), "all")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNetworkFailure))
	assert.Equal(t, 1, hits, "no retry")
	assert.Equal(t, 1, rec.len())

	snap := service.Catalog.Snapshot()
	assert.Equal(t, catalog.Failed, snap.Status)
	assert.Error(t, snap.Err)
}

func TestStoreData(t *testing.T) {
	service, _ := newTestService("http://unused")
	defer service.Client.Close()

	err := service.StoreData(context.Background(), "invalid data")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected []models.Country")

	list := []models.Country{models.NewCountry("France", "", []string{"Paris"}, nil)}
	require.NoError(t, service.StoreData(context.Background(), list))

	snap := service.Catalog.Snapshot()
	assert.Equal(t, catalog.Ready, snap.Status)
	assert.Equal(t, list, snap.Countries)
}

func TestRunBatchJob_LoadsCatalogThroughPool(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sampleDataset)
	}))
	defer ts.Close()

	service, _ := newTestService(ts.URL)
	defer service.Client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	chans := channels.New()
	wp := workpool.New(chans, 1)
	wp.Start(ctx)
	defer wp.Stop()

	require.NoError(t, service.RunBatchJob(ctx, chans))

	select {
	case <-service.Catalog.Settled():
	case <-ctx.Done():
		t.Fatal("catalog never settled")
	}
	chans.WG.Wait()

	snap := service.Catalog.Snapshot()
	require.Equal(t, catalog.Ready, snap.Status)
	assert.Len(t, snap.Countries, 3)
}
