package gateway

import (
	"context"
	"io"
	"nasne-exporter/internal/nasne"
	"nasne-exporter/internal/server"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fakeFetcher struct {
	names map[string]string
	// block delays identity reads of the given target until the channel is closed
	block map[string]chan struct{}
	// started receives the target of every blocked read once it is waiting
	started chan string
}

func (f *fakeFetcher) FetchIdentity(_ context.Context, address string) (nasne.DeviceIdentity, error) {
	if ch, found := f.block[address]; found {
		if f.started != nil {
			f.started <- address
		}
		<-ch
	}
	name, found := f.names[address]
	if !found {
		return nasne.DeviceIdentity{}, &nasne.TransportError{Address: address, Err: errors.New("connection refused")}
	}
	return nasne.DeviceIdentity{Name: name}, nil
}

func (f *fakeFetcher) FetchStorageStatus(context.Context, string) (nasne.StorageStatus, error) {
	return nasne.StorageStatus{HDD: nasne.HDDInfo{TotalVolumeSize: 5000000000, FreeVolumeSize: 2000000000, UsedVolumeSize: 3000000000}}, nil
}

func newRouter(fetcher nasne.Fetcher) *gin.Engine {
	router := server.NewRouter()
	NewHandler(fetcher).Register(router)
	return router
}

func get(router http.Handler, target string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))
	return recorder
}

const studyBody = `# TYPE nasne_total_volume_size gauge
nasne_total_volume_size{name="Study"} 5000000000

# TYPE nasne_free_volume_size gauge
nasne_free_volume_size{name="Study"} 2000000000

# TYPE nasne_used_volume_size gauge
nasne_used_volume_size{name="Study"} 3000000000

`

func TestHandleMetrics(t *testing.T) {
	router := newRouter(&fakeFetcher{names: map[string]string{"10.0.0.5": "Study"}})

	recorder := get(router, "/metrics?target=10.0.0.5")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, nasne.TextContentType, recorder.Header().Get("Content-Type"))
	assert.Equal(t, studyBody, recorder.Body.String())
}

func TestHandleMetricsErrors(t *testing.T) {
	router := newRouter(&fakeFetcher{names: map[string]string{}})

	tests := []struct {
		name     string
		target   string
		expected string
	}{
		{name: "unreachable device", target: "/metrics?target=10.0.0.9", expected: "failed to connect 10.0.0.9"},
		{name: "missing target", target: "/metrics", expected: "target parameter is missing"},
		{name: "empty target", target: "/metrics?target=", expected: "target parameter is missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := get(router, tt.target)

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Equal(t, tt.expected, recorder.Body.String())
		})
	}
}

func TestHandleMetricsConcurrentTargetsAreIndependent(t *testing.T) {
	release := make(chan struct{})
	started := make(chan string, 1)
	router := newRouter(&fakeFetcher{
		names:   map[string]string{"10.0.0.5": "Study"},
		block:   map[string]chan struct{}{"10.0.0.9": release},
		started: started,
	})

	var wg sync.WaitGroup
	var failed *httptest.ResponseRecorder
	wg.Add(1)
	go func() {
		defer wg.Done()
		failed = get(router, "/metrics?target=10.0.0.9")
	}()

	select {
	case target := <-started:
		require.Equal(t, "10.0.0.9", target)
	case <-time.After(2 * time.Second):
		t.Fatal("blocked request never reached the device")
	}

	// the healthy target answers while the other request is still waiting on its device
	succeeded := get(router, "/metrics?target=10.0.0.5")
	assert.Equal(t, http.StatusOK, succeeded.Code)
	assert.Equal(t, studyBody, succeeded.Body.String())

	close(release)
	wg.Wait()
	assert.Equal(t, http.StatusBadRequest, failed.Code)
	assert.Contains(t, failed.Body.String(), "10.0.0.9")
}

func TestHandleHealth(t *testing.T) {
	recorder := get(newRouter(&fakeFetcher{}), "/healthz")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "ok", recorder.Body.String())
}

func TestGatewayAgainstDevice(t *testing.T) {
	device := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/status/boxNameGet":
			_, _ = io.WriteString(w, `{"errorcode":0,"name":"Study"}`)
		case "/status/HDDInfoGet":
			_, _ = io.WriteString(w, `{"errorcode":0,"HDD":{"totalVolumeSize":5000000000,"freeVolumeSize":2000000000,`+
				`"usedVolumeSize":3000000000,"serialNumber":"S1","id":0,"internalFlag":0,"mountStatus":1,"registerFlag":1,`+
				`"format":"xfs","name":"internal","vendorID":"ATA","productID":"P1"}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer device.Close()
	u, err := url.Parse(device.URL)
	require.NoError(t, err)
	host, portText, err := net.SplitHostPort(u.Host)
	require.NoError(t, err)
	port, err := strconv.Atoi(portText)
	require.NoError(t, err)

	router := newRouter(nasne.NewClient(&http.Client{Timeout: 5 * time.Second}, port))

	recorder := get(router, "/metrics?target="+host)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, studyBody, recorder.Body.String())

	device.Close()
	recorder = get(router, "/metrics?target="+host)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "failed to connect "+host, recorder.Body.String())
}
