package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	. "github.com/onsi/gomega"
)

const (
	MockAPIKey    = "mock-key"
	MockAPISecret = "mock-secret"
	MockToken     = "mock-token"
)

func FileToBytes(fileName string) ([]byte, error) {
	_, thisFile, _, _ := runtime.Caller(0)

	urlPath, err := filepath.Abs(path.Join(thisFile, "..", "data", fileName))
	if err != nil {
		return nil, err
	}

	Expect(urlPath).To(BeAnExistingFile())

	return os.ReadFile(urlPath)
}

// MockServer imitates the parts of the Timeular API the CLI talks to and
// counts the calls it receives per path.
type MockServer struct {
	*httptest.Server
	signIns    atomic.Int32
	activities atomic.Int32
	entries    atomic.Int32
	lastPath   atomic.Value
}

func NewMockServer() *MockServer {
	activities, err := FileToBytes("activities.json")
	Expect(err).NotTo(HaveOccurred())
	entries, err := FileToBytes("time_entries.json")
	Expect(err).NotTo(HaveOccurred())

	m := &MockServer{}
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v3/developer/sign-in", func(w http.ResponseWriter, r *http.Request) {
		m.signIns.Add(1)
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var body struct {
			APIKey    string `json:"apiKey"`
			APISecret string `json:"apiSecret"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil ||
			body.APIKey != MockAPIKey || body.APISecret != MockAPISecret {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"invalid credentials"}`))
			return
		}

		_, _ = w.Write([]byte(`{"token":"` + MockToken + `"}`))
	})

	mux.HandleFunc("/api/v3/activities", func(w http.ResponseWriter, r *http.Request) {
		m.activities.Add(1)
		if !authorized(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write(activities)
	})

	mux.HandleFunc("/api/v3/time-entries/", func(w http.ResponseWriter, r *http.Request) {
		m.entries.Add(1)
		m.lastPath.Store(r.URL.Path)
		if !authorized(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write(entries)
	})

	m.Server = httptest.NewServer(mux)
	return m
}

// BaseURL is the value to configure as the service url.
func (m *MockServer) BaseURL() string {
	return m.URL + "/api/v3/"
}

func (m *MockServer) SignIns() int {
	return int(m.signIns.Load())
}

func (m *MockServer) ActivityCalls() int {
	return int(m.activities.Load())
}

func (m *MockServer) EntryCalls() int {
	return int(m.entries.Load())
}

func (m *MockServer) LastEntriesPath() string {
	p, _ := m.lastPath.Load().(string)
	return p
}

func authorized(r *http.Request) bool {
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ") == MockToken
}
