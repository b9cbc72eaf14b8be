package config_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/owenbush/timeular2noko/config"
	. "github.com/onsi/gomega"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
)

func TestUnitConfigManager(t *testing.T) {
	spec.Run(t, "Testing the Config Manager", testConfigManager, spec.Report(report.Terminal{}))
}

func testConfigManager(t *testing.T, when spec.G, it spec.S) {
	const (
		defaultName      = "timeular"
		defaultURL       = "https://api.timeular.com/api/v3/"
		defaultUserAgent = "timeular2noko"
	)

	var (
		mockCtrl        *gomock.Controller
		mockConfigStore *MockConfigStore
		defaultConfig   config.Config
	)

	it.Before(func() {
		RegisterTestingT(t)
		mockCtrl = gomock.NewController(t)
		mockConfigStore = NewMockConfigStore(mockCtrl)

		defaultConfig = config.Config{
			Name:           defaultName,
			URL:            defaultURL,
			ActivitiesPath: "activities",
			UserAgent:      defaultUserAgent,
		}

		for _, name := range []string{"TIMEULAR_API_KEY", "TIMEULAR_API_SECRET", "TIMEULAR_URL", "TIMEULAR_DEBUG"} {
			Expect(os.Unsetenv(name)).To(Succeed())
		}
	})

	newManager := func() *config.Manager {
		manager, err := config.NewManager(mockConfigStore)
		ExpectWithOffset(1, err).NotTo(HaveOccurred())
		return manager
	}

	it.After(func() {
		mockCtrl.Finish()
		for _, name := range []string{"TIMEULAR_API_KEY", "TIMEULAR_API_SECRET", "TIMEULAR_URL", "TIMEULAR_DEBUG"} {
			_ = os.Unsetenv(name)
		}
	})

	when("Constructing a new Manager", func() {
		it("returns a read error other than a missing file", func() {
			parseErr := errors.New("parse config: bad yaml")
			mockConfigStore.EXPECT().ReadDefaults().Return(defaultConfig).Times(1)
			mockConfigStore.EXPECT().Read().Return(config.Config{}, parseErr).Times(1)

			subject, err := config.NewManager(mockConfigStore)

			Expect(err).To(MatchError(parseErr))
			Expect(subject).To(BeNil())
		})

		it("treats a wrapped missing file as no user config", func() {
			missing := &fs.PathError{Op: "open", Path: "/nowhere/config.yaml", Err: fs.ErrNotExist}
			mockConfigStore.EXPECT().ReadDefaults().Return(defaultConfig).Times(1)
			mockConfigStore.EXPECT().Read().Return(config.Config{}, missing).Times(1)

			subject, err := config.NewManager(mockConfigStore)

			Expect(err).NotTo(HaveOccurred())
			Expect(subject.Config).To(Equal(defaultConfig))
		})

		it("applies the defaults when the user config is missing", func() {
			mockConfigStore.EXPECT().ReadDefaults().Return(defaultConfig).Times(1)
			mockConfigStore.EXPECT().Read().Return(config.Config{}, fs.ErrNotExist).Times(1)

			subject := newManager().WithEnvironment()

			Expect(subject.Config).To(Equal(defaultConfig))
		})

		it("lets the user config override the defaults", func() {
			mockConfigStore.EXPECT().ReadDefaults().Return(defaultConfig).Times(1)
			mockConfigStore.EXPECT().Read().Return(config.Config{
				URL:    "https://example.com/",
				APIKey: "file-key",
				Debug:  true,
			}, nil).Times(1)

			subject := newManager()

			Expect(subject.Config.URL).To(Equal("https://example.com/"))
			Expect(subject.Config.APIKey).To(Equal("file-key"))
			Expect(subject.Config.Debug).To(BeTrue())
			Expect(subject.Config.ActivitiesPath).To(Equal("activities"))
			Expect(subject.Config.UserAgent).To(Equal(defaultUserAgent))
		})

		it("lets the environment override the user config", func() {
			mockConfigStore.EXPECT().ReadDefaults().Return(defaultConfig).Times(1)
			mockConfigStore.EXPECT().Read().Return(config.Config{APIKey: "file-key"}, nil).Times(1)

			Expect(os.Setenv("TIMEULAR_API_KEY", "env-key")).To(Succeed())
			Expect(os.Setenv("TIMEULAR_URL", "http://localhost:8080/")).To(Succeed())
			Expect(os.Setenv("TIMEULAR_DEBUG", "true")).To(Succeed())

			subject := newManager().WithEnvironment()

			Expect(subject.Config.APIKey).To(Equal("env-key"))
			Expect(subject.Config.URL).To(Equal("http://localhost:8080/"))
			Expect(subject.Config.Debug).To(BeTrue())
			Expect(subject.Config.Name).To(Equal(defaultName))
		})
	})

	when("Credentials()", func() {
		it("names the missing environment variables", func() {
			mockConfigStore.EXPECT().ReadDefaults().Return(defaultConfig).Times(1)
			mockConfigStore.EXPECT().Read().Return(config.Config{}, fs.ErrNotExist).Times(1)

			_, _, err := newManager().Credentials()

			Expect(err).To(MatchError("missing credentials, set TIMEULAR_API_KEY and TIMEULAR_API_SECRET"))
		})

		it("returns the configured key and secret", func() {
			mockConfigStore.EXPECT().ReadDefaults().Return(defaultConfig).Times(1)
			mockConfigStore.EXPECT().Read().Return(config.Config{APIKey: "key", APISecret: "secret"}, nil).Times(1)

			key, secret, err := newManager().Credentials()

			Expect(err).NotTo(HaveOccurred())
			Expect(key).To(Equal("key"))
			Expect(secret).To(Equal("secret"))
		})
	})

	when("WithSecretFile()", func() {
		it("loads the secret from the configured file", func() {
			path := filepath.Join(t.TempDir(), "secret")
			Expect(os.WriteFile(path, []byte("from-file\n"), 0o600)).To(Succeed())

			mockConfigStore.EXPECT().ReadDefaults().Return(defaultConfig).Times(1)
			mockConfigStore.EXPECT().Read().Return(config.Config{APISecretFile: path}, nil).Times(1)

			subject, err := newManager().WithSecretFile()

			Expect(err).NotTo(HaveOccurred())
			Expect(subject.Config.APISecret).To(Equal("from-file"))
		})

		it("keeps a directly configured secret", func() {
			mockConfigStore.EXPECT().ReadDefaults().Return(defaultConfig).Times(1)
			mockConfigStore.EXPECT().Read().Return(config.Config{APISecret: "direct", APISecretFile: "/does/not/exist"}, nil).Times(1)

			subject, err := newManager().WithSecretFile()

			Expect(err).NotTo(HaveOccurred())
			Expect(subject.Config.APISecret).To(Equal("direct"))
		})
	})

	when("ShowConfig()", func() {
		it("masks the credentials", func() {
			mockConfigStore.EXPECT().ReadDefaults().Return(defaultConfig).Times(1)
			mockConfigStore.EXPECT().Read().Return(config.Config{APIKey: "key", APISecret: "secret"}, nil).Times(1)

			result, err := newManager().ShowConfig()

			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(ContainSubstring("********"))
			Expect(result).NotTo(ContainSubstring(": key"))
			Expect(result).NotTo(ContainSubstring(": secret"))
			Expect(result).To(ContainSubstring("user_agent: timeular2noko"))
		})
	})

	when("WriteCredentials()", func() {
		it("writes only the user config plus the credentials", func() {
			mockConfigStore.EXPECT().ReadDefaults().Return(defaultConfig).Times(1)
			mockConfigStore.EXPECT().Read().Return(config.Config{}, fs.ErrNotExist).Times(2)

			Expect(os.Setenv("TIMEULAR_URL", "http://localhost:8080/")).To(Succeed())

			expected := config.Config{APIKey: "key", APISecret: "secret"}
			mockConfigStore.EXPECT().Write(expected).Return(nil).Times(1)

			subject := newManager().WithEnvironment()
			Expect(subject.WriteCredentials("key", "secret")).To(Succeed())

			Expect(subject.Config.APIKey).To(Equal("key"))
			Expect(subject.Config.APISecret).To(Equal("secret"))
			Expect(subject.Config.URL).To(Equal("http://localhost:8080/"))
		})

		it("keeps the other settings of an existing file", func() {
			existing := config.Config{URL: "https://example.com/", APISecretFile: "/run/secret", Debug: true}

			mockConfigStore.EXPECT().ReadDefaults().Return(defaultConfig).Times(1)
			mockConfigStore.EXPECT().Read().Return(existing, nil).Times(2)

			expected := existing
			expected.APIKey = "key"
			expected.APISecret = "secret"
			expected.APISecretFile = ""
			mockConfigStore.EXPECT().Write(expected).Return(nil).Times(1)

			Expect(newManager().WriteCredentials("key", "secret")).To(Succeed())
		})

		it("refuses to overwrite a file it cannot parse", func() {
			parseErr := errors.New("parse config: bad yaml")

			mockConfigStore.EXPECT().ReadDefaults().Return(defaultConfig).Times(1)
			gomock.InOrder(
				mockConfigStore.EXPECT().Read().Return(config.Config{}, fs.ErrNotExist),
				mockConfigStore.EXPECT().Read().Return(config.Config{}, parseErr),
			)
			mockConfigStore.EXPECT().Write(gomock.Any()).Times(0)

			Expect(newManager().WriteCredentials("key", "secret")).To(MatchError(parseErr))
		})

		it("returns the write failure", func() {
			writeErr := errors.New("disk full")

			mockConfigStore.EXPECT().ReadDefaults().Return(defaultConfig).Times(1)
			mockConfigStore.EXPECT().Read().Return(config.Config{}, fs.ErrNotExist).Times(2)
			mockConfigStore.EXPECT().Write(gomock.Any()).Return(writeErr).Times(1)

			subject := newManager()
			Expect(subject.WriteCredentials("key", "secret")).To(MatchError(writeErr))
			Expect(subject.Config.APIKey).To(BeEmpty())
		})
	})
}
